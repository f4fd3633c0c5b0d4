package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	budgetdomain "circlefin-go/internal/domain/budget"
	"github.com/go-chi/chi/v5"
)

// endDatePlaceholder is what clients render when the period maths cannot
// produce a real end date.
const endDatePlaceholder = "--"

type budgetRequest struct {
	Name            string   `json:"name"`
	Scope           string   `json:"scope"`
	Type            string   `json:"type"`
	TargetAmount    string   `json:"target_amount"`
	RemainingAmount string   `json:"remaining_amount"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	Duration        int      `json:"duration"`
	Period          string   `json:"period"`
	Categories      []string `json:"categories"`
}

func (h *Handlers) ListBudgets(w http.ResponseWriter, r *http.Request) {
	user, c, ok := h.circleScope(w, r, "budgets.list")
	if !ok {
		return
	}

	budgets, err := h.Budgets.ListBudgets(r.Context(), c.ID)
	if err != nil {
		h.log.InternalError("budgets.list: list budgets failed", err, "user_id", user.ID, "circle_id", c.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]budgetResponse, 0, len(budgets))
	for _, b := range budgets {
		response = append(response, h.toBudgetResponse(b))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetBudget(w http.ResponseWriter, r *http.Request) {
	budgetID := strings.TrimSpace(chi.URLParam(r, "id"))
	if budgetID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	user, c, ok := h.circleScope(w, r, "budgets.get")
	if !ok {
		return
	}

	b, err := h.Budgets.GetBudget(r.Context(), c.ID, budgetID)
	if err != nil {
		if errors.Is(err, budgetdomain.ErrBudgetNotFound) {
			h.log.BusinessError("budgets.get: budget not found", err, "user_id", user.ID, "circle_id", c.ID, "budget_id", budgetID)
			writeError(w, http.StatusNotFound, "budget_not_found", "budget not found")
			return
		}
		h.log.InternalError("budgets.get: get budget failed", err, "user_id", user.ID, "circle_id", c.ID, "budget_id", budgetID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, h.toBudgetResponse(*b))
}

func (h *Handlers) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, c, ok := h.circleScope(w, r, "budgets.create")
	if !ok {
		return
	}

	start, duration, period, ok := h.resolveSchedule(w, req.StartDate, req.EndDate, req.Duration, req.Period)
	if !ok {
		return
	}

	created, err := h.Budgets.CreateBudget(r.Context(), budgetdomain.CreateBudgetInput{
		CircleID:        c.ID,
		Name:            req.Name,
		Scope:           req.Scope,
		BudgetType:      req.Type,
		TargetAmount:    req.TargetAmount,
		RemainingAmount: req.RemainingAmount,
		StartDate:       start,
		Duration:        duration,
		Period:          period,
		Categories:      req.Categories,
	})
	if err != nil {
		h.writeBudgetInputError(w, "budgets.create", err, user.ID, c.ID)
		return
	}

	writeJSON(w, http.StatusCreated, h.toBudgetResponse(*created))
}

func (h *Handlers) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	budgetID := strings.TrimSpace(chi.URLParam(r, "id"))
	if budgetID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	user, c, ok := h.circleScope(w, r, "budgets.update")
	if !ok {
		return
	}

	start, duration, period, ok := h.resolveSchedule(w, req.StartDate, req.EndDate, req.Duration, req.Period)
	if !ok {
		return
	}

	updated, err := h.Budgets.UpdateBudget(r.Context(), budgetdomain.UpdateBudgetInput{
		ID:              budgetID,
		CircleID:        c.ID,
		Name:            req.Name,
		Scope:           req.Scope,
		BudgetType:      req.Type,
		TargetAmount:    req.TargetAmount,
		RemainingAmount: req.RemainingAmount,
		StartDate:       start,
		Duration:        duration,
		Period:          period,
		Categories:      req.Categories,
	})
	if err != nil {
		if errors.Is(err, budgetdomain.ErrBudgetNotFound) {
			h.log.BusinessError("budgets.update: budget not found", err, "user_id", user.ID, "circle_id", c.ID, "budget_id", budgetID)
			writeError(w, http.StatusNotFound, "budget_not_found", "budget not found")
			return
		}
		h.writeBudgetInputError(w, "budgets.update", err, user.ID, c.ID)
		return
	}

	writeJSON(w, http.StatusOK, h.toBudgetResponse(*updated))
}

func (h *Handlers) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	budgetID := strings.TrimSpace(chi.URLParam(r, "id"))
	if budgetID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	user, c, ok := h.circleScope(w, r, "budgets.delete")
	if !ok {
		return
	}

	if err := h.Budgets.DeleteBudget(r.Context(), c.ID, budgetID); err != nil {
		if errors.Is(err, budgetdomain.ErrBudgetNotFound) {
			h.log.BusinessError("budgets.delete: budget not found", err, "user_id", user.ID, "circle_id", c.ID, "budget_id", budgetID)
			writeError(w, http.StatusNotFound, "budget_not_found", "budget not found")
			return
		}
		h.log.InternalError("budgets.delete: delete budget failed", err, "user_id", user.ID, "circle_id", c.ID, "budget_id", budgetID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// resolveSchedule parses the start date and settles on a duration/period
// pair. Clients that only know the end date omit duration and period; the
// pair is then recovered from the day span between the two dates.
func (h *Handlers) resolveSchedule(w http.ResponseWriter, startValue, endValue string, duration int, period string) (time.Time, int, string, bool) {
	start, err := parseDateRequired(startValue)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return time.Time{}, 0, "", false
	}

	if strings.TrimSpace(period) == "" && strings.TrimSpace(endValue) != "" {
		end, err := parseDateRequired(endValue)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
			return time.Time{}, 0, "", false
		}
		span := budgetdomain.InferPeriod(start, end)
		if span == nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "end_date must not precede start_date")
			return time.Time{}, 0, "", false
		}
		return start, span.Duration, span.Period, true
	}

	if duration <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "duration must be positive")
		return time.Time{}, 0, "", false
	}
	return start, duration, period, true
}

func (h *Handlers) writeBudgetInputError(w http.ResponseWriter, op string, err error, userID, circleID string) {
	switch {
	case errors.Is(err, budgetdomain.ErrInvalidScope):
		h.log.BusinessError(op+": invalid scope", err, "user_id", userID, "circle_id", circleID)
		writeError(w, http.StatusBadRequest, "invalid_request", "scope must be INCLUSIVE or EXCLUSIVE")
	case errors.Is(err, budgetdomain.ErrInvalidType):
		h.log.BusinessError(op+": invalid type", err, "user_id", userID, "circle_id", circleID)
		writeError(w, http.StatusBadRequest, "invalid_request", "type must be Savings or Expense")
	case errors.Is(err, budgetdomain.ErrInvalidPeriod):
		h.log.BusinessError(op+": invalid period", err, "user_id", userID, "circle_id", circleID)
		writeError(w, http.StatusBadRequest, "invalid_request", "period must be daily, weekly, monthly or yearly")
	default:
		h.log.InternalError(op+": save budget failed", err, "user_id", userID, "circle_id", circleID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

type budgetResponse struct {
	ID              string    `json:"id"`
	CircleID        string    `json:"circle_id"`
	Name            string    `json:"name"`
	Scope           string    `json:"scope"`
	Type            string    `json:"type"`
	TargetAmount    string    `json:"target_amount"`
	RemainingAmount string    `json:"remaining_amount"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	Duration        int       `json:"duration"`
	Period          string    `json:"period"`
	Progress        int       `json:"progress"`
	Categories      []string  `json:"categories"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (h *Handlers) toBudgetResponse(b budgetdomain.BudgetWithCategories) budgetResponse {
	categories := b.Categories
	if categories == nil {
		categories = []string{}
	}

	endDate := endDatePlaceholder
	if end, err := budgetdomain.PeriodEnd(b.StartDate, b.Duration, b.Period); err != nil {
		h.log.BusinessError("budgets: end date unavailable", err, "budget_id", b.ID)
	} else {
		endDate = end.Format("2006-01-02")
	}

	return budgetResponse{
		ID:              b.ID,
		CircleID:        b.CircleID,
		Name:            b.Name,
		Scope:           b.Scope,
		Type:            b.BudgetType,
		TargetAmount:    b.TargetAmount,
		RemainingAmount: b.RemainingAmount,
		StartDate:       b.StartDate.Format("2006-01-02"),
		EndDate:         endDate,
		Duration:        b.Duration,
		Period:          b.Period,
		Progress:        budgetdomain.Progress(b.TargetAmount, b.RemainingAmount, b.BudgetType, "budget"),
		Categories:      categories,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
