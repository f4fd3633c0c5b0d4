package app

import (
	"net/http"

	"circlefin-go/internal/config"
	"circlefin-go/internal/db"
	bankdomain "circlefin-go/internal/domain/bank"
	budgetdomain "circlefin-go/internal/domain/budget"
	circledomain "circlefin-go/internal/domain/circle"
	profiledomain "circlefin-go/internal/domain/profile"
	transactiondomain "circlefin-go/internal/domain/transaction"
	bankrepo "circlefin-go/internal/repository/postgres/bank"
	budgetrepo "circlefin-go/internal/repository/postgres/budget"
	circlerepo "circlefin-go/internal/repository/postgres/circle"
	profilerepo "circlefin-go/internal/repository/postgres/profile"
	transactionrepo "circlefin-go/internal/repository/postgres/transaction"
	"circlefin-go/internal/transport/httpserver"
	"circlefin-go/internal/transport/httpserver/handler"
	"circlefin-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	circles := circledomain.NewService(circlerepo.NewPostgres(dbConn))
	profiles := profiledomain.NewService(profilerepo.NewPostgres(dbConn))
	banks := bankdomain.NewService(bankrepo.NewPostgres(dbConn))
	budgets := budgetdomain.NewService(budgetrepo.NewPostgres(dbConn))
	transactions := transactiondomain.NewService(transactionrepo.NewPostgres(dbConn))

	handlers := handler.New(circles, profiles, banks, budgets, transactions, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, profiles, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
