package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	budgetdomain "circlefin-go/internal/domain/budget"
	"github.com/go-chi/chi/v5"
)

type goalRequest struct {
	Name            string `json:"name"`
	Category        string `json:"category"`
	TargetAmount    string `json:"target_amount"`
	RemainingAmount string `json:"remaining_amount"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	Duration        int    `json:"duration"`
	Period          string `json:"period"`
}

func (h *Handlers) ListGoals(w http.ResponseWriter, r *http.Request) {
	user, c, ok := h.circleScope(w, r, "goals.list")
	if !ok {
		return
	}

	goals, err := h.Budgets.ListGoals(r.Context(), c.ID)
	if err != nil {
		h.log.InternalError("goals.list: list goals failed", err, "user_id", user.ID, "circle_id", c.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		response = append(response, h.toGoalResponse(g))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetGoal(w http.ResponseWriter, r *http.Request) {
	goalID := strings.TrimSpace(chi.URLParam(r, "id"))
	if goalID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	user, c, ok := h.circleScope(w, r, "goals.get")
	if !ok {
		return
	}

	g, err := h.Budgets.GetGoal(r.Context(), c.ID, goalID)
	if err != nil {
		if errors.Is(err, budgetdomain.ErrGoalNotFound) {
			h.log.BusinessError("goals.get: goal not found", err, "user_id", user.ID, "circle_id", c.ID, "goal_id", goalID)
			writeError(w, http.StatusNotFound, "goal_not_found", "goal not found")
			return
		}
		h.log.InternalError("goals.get: get goal failed", err, "user_id", user.ID, "circle_id", c.ID, "goal_id", goalID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, h.toGoalResponse(*g))
}

func (h *Handlers) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	user, c, ok := h.circleScope(w, r, "goals.create")
	if !ok {
		return
	}

	start, duration, period, ok := h.resolveSchedule(w, req.StartDate, req.EndDate, req.Duration, req.Period)
	if !ok {
		return
	}

	created, err := h.Budgets.CreateGoal(r.Context(), budgetdomain.CreateGoalInput{
		CircleID:        c.ID,
		Name:            req.Name,
		Category:        req.Category,
		TargetAmount:    req.TargetAmount,
		RemainingAmount: req.RemainingAmount,
		StartDate:       start,
		Duration:        duration,
		Period:          period,
	})
	if err != nil {
		if errors.Is(err, budgetdomain.ErrInvalidPeriod) {
			h.log.BusinessError("goals.create: invalid period", err, "user_id", user.ID, "circle_id", c.ID)
			writeError(w, http.StatusBadRequest, "invalid_request", "period must be daily, weekly, monthly or yearly")
			return
		}
		h.log.InternalError("goals.create: create goal failed", err, "user_id", user.ID, "circle_id", c.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, h.toGoalResponse(*created))
}

func (h *Handlers) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	goalID := strings.TrimSpace(chi.URLParam(r, "id"))
	if goalID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	user, c, ok := h.circleScope(w, r, "goals.update")
	if !ok {
		return
	}

	start, duration, period, ok := h.resolveSchedule(w, req.StartDate, req.EndDate, req.Duration, req.Period)
	if !ok {
		return
	}

	updated, err := h.Budgets.UpdateGoal(r.Context(), budgetdomain.UpdateGoalInput{
		ID:              goalID,
		CircleID:        c.ID,
		Name:            req.Name,
		Category:        req.Category,
		TargetAmount:    req.TargetAmount,
		RemainingAmount: req.RemainingAmount,
		StartDate:       start,
		Duration:        duration,
		Period:          period,
	})
	if err != nil {
		switch {
		case errors.Is(err, budgetdomain.ErrGoalNotFound):
			h.log.BusinessError("goals.update: goal not found", err, "user_id", user.ID, "circle_id", c.ID, "goal_id", goalID)
			writeError(w, http.StatusNotFound, "goal_not_found", "goal not found")
		case errors.Is(err, budgetdomain.ErrInvalidPeriod):
			h.log.BusinessError("goals.update: invalid period", err, "user_id", user.ID, "circle_id", c.ID, "goal_id", goalID)
			writeError(w, http.StatusBadRequest, "invalid_request", "period must be daily, weekly, monthly or yearly")
		default:
			h.log.InternalError("goals.update: update goal failed", err, "user_id", user.ID, "circle_id", c.ID, "goal_id", goalID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, h.toGoalResponse(*updated))
}

func (h *Handlers) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	goalID := strings.TrimSpace(chi.URLParam(r, "id"))
	if goalID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	user, c, ok := h.circleScope(w, r, "goals.delete")
	if !ok {
		return
	}

	if err := h.Budgets.DeleteGoal(r.Context(), c.ID, goalID); err != nil {
		if errors.Is(err, budgetdomain.ErrGoalNotFound) {
			h.log.BusinessError("goals.delete: goal not found", err, "user_id", user.ID, "circle_id", c.ID, "goal_id", goalID)
			writeError(w, http.StatusNotFound, "goal_not_found", "goal not found")
			return
		}
		h.log.InternalError("goals.delete: delete goal failed", err, "user_id", user.ID, "circle_id", c.ID, "goal_id", goalID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type goalResponse struct {
	ID              string    `json:"id"`
	CircleID        string    `json:"circle_id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	TargetAmount    string    `json:"target_amount"`
	RemainingAmount string    `json:"remaining_amount"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	Duration        int       `json:"duration"`
	Period          string    `json:"period"`
	Progress        int       `json:"progress"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (h *Handlers) toGoalResponse(g budgetdomain.Goal) goalResponse {
	endDate := endDatePlaceholder
	if end, err := budgetdomain.PeriodEnd(g.StartDate, g.Duration, g.Period); err != nil {
		h.log.BusinessError("goals: end date unavailable", err, "goal_id", g.ID)
	} else {
		endDate = end.Format("2006-01-02")
	}

	return goalResponse{
		ID:              g.ID,
		CircleID:        g.CircleID,
		Name:            g.Name,
		Category:        g.Category,
		TargetAmount:    g.TargetAmount,
		RemainingAmount: g.RemainingAmount,
		StartDate:       g.StartDate.Format("2006-01-02"),
		EndDate:         endDate,
		Duration:        g.Duration,
		Period:          g.Period,
		Progress:        budgetdomain.Progress(g.TargetAmount, g.RemainingAmount, g.Category, "goal"),
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
}
