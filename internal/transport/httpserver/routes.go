package httpserver

import (
	"net/http"
	"time"

	"circlefin-go/internal/config"
	"circlefin-go/internal/transport/httpserver/handler"
	authmw "circlefin-go/internal/transport/httpserver/middleware"
	"circlefin-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, profiles authmw.ProfileSaver, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		auth := authmw.NewTokenAuth(cfg.Auth, profiles, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.AuthMe)
			if cfg.SyncEnabled {
				r.Post("/sync", handlers.SyncBatch)
			}

			r.Get("/circles/me", handlers.GetCircleMe)
			r.Post("/circles", handlers.CreateCircle)
			r.Post("/circles/join", handlers.JoinCircle)
			r.Post("/circles/leave", handlers.LeaveCircle)
			r.Patch("/circles/me", handlers.UpdateCircle)
			r.Get("/circles/me/members", handlers.ListCircleMembers)
			r.Delete("/circles/me/members/{user_id}", handlers.RemoveCircleMember)

			r.Get("/banks", handlers.ListBanks)
			r.Get("/banks/{id}", handlers.GetBank)
			r.Post("/banks", handlers.CreateBank)
			r.Put("/banks/{id}", handlers.UpdateBank)
			r.Delete("/banks/{id}", handlers.DeleteBank)
			r.Get("/banks/{id}/chart", handlers.BankChart)
			r.Get("/banks/{id}/chart.png", handlers.BankChartPNG)

			r.Get("/transactions", handlers.ListTransactions)
			r.Post("/transactions", handlers.CreateTransaction)
			r.Put("/transactions/{id}", handlers.UpdateTransaction)
			r.Delete("/transactions/{id}", handlers.DeleteTransaction)

			r.Get("/budgets", handlers.ListBudgets)
			r.Get("/budgets/{id}", handlers.GetBudget)
			r.Post("/budgets", handlers.CreateBudget)
			r.Put("/budgets/{id}", handlers.UpdateBudget)
			r.Delete("/budgets/{id}", handlers.DeleteBudget)
			r.Get("/budgets/{id}/chart", handlers.BudgetChart)
			r.Get("/budgets/{id}/chart.png", handlers.BudgetChartPNG)

			r.Get("/goals", handlers.ListGoals)
			r.Get("/goals/{id}", handlers.GetGoal)
			r.Post("/goals", handlers.CreateGoal)
			r.Put("/goals/{id}", handlers.UpdateGoal)
			r.Delete("/goals/{id}", handlers.DeleteGoal)
			r.Get("/goals/{id}/chart", handlers.GoalChart)
			r.Get("/goals/{id}/chart.png", handlers.GoalChartPNG)
		})
	})

	return r
}
