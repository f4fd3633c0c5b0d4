package handler

import (
	"errors"
	"net/http"

	bankdomain "circlefin-go/internal/domain/bank"
	budgetdomain "circlefin-go/internal/domain/budget"
	circledomain "circlefin-go/internal/domain/circle"
	profiledomain "circlefin-go/internal/domain/profile"
	transactiondomain "circlefin-go/internal/domain/transaction"
	"circlefin-go/internal/transport/httpserver/middleware"
	"circlefin-go/pkg/logger"
)

type Handlers struct {
	Circles      *circledomain.Service
	Profiles     *profiledomain.Service
	Banks        *bankdomain.Service
	Budgets      *budgetdomain.Service
	Transactions *transactiondomain.Service

	log logger.Logger
}

func New(
	circles *circledomain.Service,
	profiles *profiledomain.Service,
	banks *bankdomain.Service,
	budgets *budgetdomain.Service,
	transactions *transactiondomain.Service,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Circles:      circles,
		Profiles:     profiles,
		Banks:        banks,
		Budgets:      budgets,
		Transactions: transactions,
		log:          log,
	}
}

// circleScope resolves the caller and their circle, writing the error
// response itself when either is missing. Every circle-owned resource
// handler starts here.
func (h *Handlers) circleScope(w http.ResponseWriter, r *http.Request, op string) (middleware.User, *circledomain.Circle, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return middleware.User{}, nil, false
	}

	c, err := h.Circles.GetCircleByUser(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, circledomain.ErrCircleNotFound) {
			h.log.BusinessError(op+": circle not found", err, "user_id", user.ID)
			writeError(w, http.StatusNotFound, "circle_not_found", "circle not found")
			return middleware.User{}, nil, false
		}
		h.log.InternalError(op+": get circle failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return middleware.User{}, nil, false
	}

	return user, c, true
}
