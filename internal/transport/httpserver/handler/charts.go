package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	bankdomain "circlefin-go/internal/domain/bank"
	budgetdomain "circlefin-go/internal/domain/budget"
	"circlefin-go/internal/domain/derive"
	transactiondomain "circlefin-go/internal/domain/transaction"
	"circlefin-go/internal/render"
	"github.com/go-chi/chi/v5"
)

type chartResponse struct {
	Series []derive.Slice    `json:"series"`
	Key    []derive.KeyEntry `json:"key"`
	Total  float64           `json:"total"`
}

func toChartResponse(data derive.ChartData) chartResponse {
	return chartResponse{
		Series: data.Series,
		Key:    data.Key,
		Total:  data.Total(),
	}
}

func (h *Handlers) BudgetChart(w http.ResponseWriter, r *http.Request) {
	data, ok := h.budgetChartData(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toChartResponse(data))
}

func (h *Handlers) BudgetChartPNG(w http.ResponseWriter, r *http.Request) {
	data, ok := h.budgetChartData(w, r)
	if !ok {
		return
	}
	h.writeChartPNG(w, "budgets.chart_png", data)
}

func (h *Handlers) GoalChart(w http.ResponseWriter, r *http.Request) {
	data, ok := h.goalChartData(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toChartResponse(data))
}

func (h *Handlers) GoalChartPNG(w http.ResponseWriter, r *http.Request) {
	data, ok := h.goalChartData(w, r)
	if !ok {
		return
	}
	h.writeChartPNG(w, "goals.chart_png", data)
}

func (h *Handlers) BankChart(w http.ResponseWriter, r *http.Request) {
	data, ok := h.bankChartData(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toChartResponse(data))
}

func (h *Handlers) BankChartPNG(w http.ResponseWriter, r *http.Request) {
	data, ok := h.bankChartData(w, r)
	if !ok {
		return
	}
	h.writeChartPNG(w, "banks.chart_png", data)
}

// budgetChartData aggregates the budget's slice of the circle's spending.
// INCLUSIVE budgets see every circle transaction and match on categories;
// EXCLUSIVE budgets see only transactions explicitly assigned to them.
func (h *Handlers) budgetChartData(w http.ResponseWriter, r *http.Request) (derive.ChartData, bool) {
	budgetID := strings.TrimSpace(chi.URLParam(r, "id"))
	if budgetID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return derive.ChartData{}, false
	}

	user, c, ok := h.circleScope(w, r, "budgets.chart")
	if !ok {
		return derive.ChartData{}, false
	}

	b, err := h.Budgets.GetBudget(r.Context(), c.ID, budgetID)
	if err != nil {
		if errors.Is(err, budgetdomain.ErrBudgetNotFound) {
			h.log.BusinessError("budgets.chart: budget not found", err, "user_id", user.ID, "circle_id", c.ID, "budget_id", budgetID)
			writeError(w, http.StatusNotFound, "budget_not_found", "budget not found")
			return derive.ChartData{}, false
		}
		h.log.InternalError("budgets.chart: get budget failed", err, "user_id", user.ID, "circle_id", c.ID, "budget_id", budgetID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return derive.ChartData{}, false
	}

	filter := transactiondomain.ListFilter{}
	if policy, ok := derive.ParseScopePolicy(b.Scope); ok && policy == derive.ScopeExclusive {
		filter.BudgetID = &b.ID
	}

	items, _, err := h.Transactions.ListTransactions(r.Context(), c.ID, filter)
	if err != nil {
		h.log.InternalError("budgets.chart: list transactions failed", err, "user_id", user.ID, "circle_id", c.ID, "budget_id", budgetID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return derive.ChartData{}, false
	}

	return derive.BudgetChart(b.Scope, b.Categories, toDeriveTransactions(items), derive.NewColorAllocator()), true
}

func (h *Handlers) goalChartData(w http.ResponseWriter, r *http.Request) (derive.ChartData, bool) {
	goalID := strings.TrimSpace(chi.URLParam(r, "id"))
	if goalID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return derive.ChartData{}, false
	}

	user, c, ok := h.circleScope(w, r, "goals.chart")
	if !ok {
		return derive.ChartData{}, false
	}

	g, err := h.Budgets.GetGoal(r.Context(), c.ID, goalID)
	if err != nil {
		if errors.Is(err, budgetdomain.ErrGoalNotFound) {
			h.log.BusinessError("goals.chart: goal not found", err, "user_id", user.ID, "circle_id", c.ID, "goal_id", goalID)
			writeError(w, http.StatusNotFound, "goal_not_found", "goal not found")
			return derive.ChartData{}, false
		}
		h.log.InternalError("goals.chart: get goal failed", err, "user_id", user.ID, "circle_id", c.ID, "goal_id", goalID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return derive.ChartData{}, false
	}

	items, _, err := h.Transactions.ListTransactions(r.Context(), c.ID, transactiondomain.ListFilter{GoalID: &g.ID})
	if err != nil {
		h.log.InternalError("goals.chart: list transactions failed", err, "user_id", user.ID, "circle_id", c.ID, "goal_id", goalID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return derive.ChartData{}, false
	}

	return derive.TransactionsChart(toDeriveTransactions(items), derive.NewColorAllocator()), true
}

func (h *Handlers) bankChartData(w http.ResponseWriter, r *http.Request) (derive.ChartData, bool) {
	bankID := strings.TrimSpace(chi.URLParam(r, "id"))
	if bankID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return derive.ChartData{}, false
	}

	user, c, ok := h.circleScope(w, r, "banks.chart")
	if !ok {
		return derive.ChartData{}, false
	}

	b, err := h.Banks.GetBank(r.Context(), c.ID, bankID)
	if err != nil {
		if errors.Is(err, bankdomain.ErrBankNotFound) {
			h.log.BusinessError("banks.chart: bank not found", err, "user_id", user.ID, "circle_id", c.ID, "bank_id", bankID)
			writeError(w, http.StatusNotFound, "bank_not_found", "bank not found")
			return derive.ChartData{}, false
		}
		h.log.InternalError("banks.chart: get bank failed", err, "user_id", user.ID, "circle_id", c.ID, "bank_id", bankID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return derive.ChartData{}, false
	}

	items, _, err := h.Transactions.ListTransactions(r.Context(), c.ID, transactiondomain.ListFilter{BankID: &b.ID})
	if err != nil {
		h.log.InternalError("banks.chart: list transactions failed", err, "user_id", user.ID, "circle_id", c.ID, "bank_id", bankID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return derive.ChartData{}, false
	}

	return derive.TransactionsChart(toDeriveTransactions(items), derive.NewColorAllocator()), true
}

// writeChartPNG renders into a buffer first so a renderer failure can still
// produce a clean error response.
func (h *Handlers) writeChartPNG(w http.ResponseWriter, op string, data derive.ChartData) {
	var buf bytes.Buffer
	if err := render.Pie(&buf, data); err != nil {
		h.log.InternalError(op+": render failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func toDeriveTransactions(items []transactiondomain.TransactionWithCategories) []derive.Transaction {
	result := make([]derive.Transaction, 0, len(items))
	for _, tx := range items {
		result = append(result, derive.Transaction{
			Amount:     tx.Amount,
			Categories: tx.Categories,
		})
	}
	return result
}
