package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"circlefin-go/internal/domain/derive"
	transactiondomain "circlefin-go/internal/domain/transaction"
	"github.com/go-chi/chi/v5"
)

type transactionRequest struct {
	BankID     *string  `json:"bank_id"`
	BudgetID   *string  `json:"budget_id"`
	GoalID     *string  `json:"goal_id"`
	ClientID   *string  `json:"client_id"`
	Date       string   `json:"date"`
	Amount     string   `json:"amount"`
	Type       string   `json:"type"`
	Note       string   `json:"note"`
	Categories []string `json:"categories"`
}

func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	user, c, ok := h.circleScope(w, r, "transactions.list")
	if !ok {
		return
	}

	query := r.URL.Query()
	from, err := parseDateParam(query.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid from date")
		return
	}
	to, err := parseDateParam(query.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid to date")
		return
	}
	limit, err := parseIntParam(query.Get("limit"), 50)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}
	offset, err := parseIntParam(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid offset")
		return
	}

	filter := transactiondomain.ListFilter{
		From:     from,
		To:       to,
		BankID:   queryIDParam(query.Get("bank_id")),
		BudgetID: queryIDParam(query.Get("budget_id")),
		GoalID:   queryIDParam(query.Get("goal_id")),
		Limit:    limit,
		Offset:   offset,
	}

	items, total, err := h.Transactions.ListTransactions(r.Context(), c.ID, filter)
	if err != nil {
		h.log.InternalError("transactions.list: list transactions failed", err, "user_id", user.ID, "circle_id", c.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]transactionResponse, 0, len(items))
	for _, tx := range items {
		response = append(response, toTransactionResponse(tx))
	}

	writeJSON(w, http.StatusOK, transactionListResponse{
		Items: response,
		Total: total,
	})
}

func (h *Handlers) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	date, err := parseDateRequired(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}
	if strings.TrimSpace(req.Amount) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "amount is required")
		return
	}

	user, c, ok := h.circleScope(w, r, "transactions.create")
	if !ok {
		return
	}

	created, err := h.Transactions.CreateTransaction(r.Context(), transactiondomain.CreateTransactionInput{
		CircleID:   c.ID,
		UserID:     user.ID,
		BankID:     normalizeStringPtr(req.BankID),
		BudgetID:   normalizeStringPtr(req.BudgetID),
		GoalID:     normalizeStringPtr(req.GoalID),
		ClientID:   normalizeStringPtr(req.ClientID),
		Date:       date,
		Amount:     req.Amount,
		Type:       req.Type,
		Note:       req.Note,
		Categories: req.Categories,
	})
	if err != nil {
		if errors.Is(err, transactiondomain.ErrInvalidType) {
			h.log.BusinessError("transactions.create: invalid type", err, "user_id", user.ID, "circle_id", c.ID)
			writeError(w, http.StatusBadRequest, "invalid_request", "type must be Income or Expense")
			return
		}
		h.log.InternalError("transactions.create: create transaction failed", err, "user_id", user.ID, "circle_id", c.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(*created))
}

func (h *Handlers) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	transactionID := strings.TrimSpace(chi.URLParam(r, "id"))
	if transactionID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	date, err := parseDateRequired(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
		return
	}
	if strings.TrimSpace(req.Amount) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "amount is required")
		return
	}

	user, c, ok := h.circleScope(w, r, "transactions.update")
	if !ok {
		return
	}

	updated, err := h.Transactions.UpdateTransaction(r.Context(), transactiondomain.UpdateTransactionInput{
		ID:         transactionID,
		CircleID:   c.ID,
		BankID:     normalizeStringPtr(req.BankID),
		BudgetID:   normalizeStringPtr(req.BudgetID),
		GoalID:     normalizeStringPtr(req.GoalID),
		Date:       date,
		Amount:     req.Amount,
		Type:       req.Type,
		Note:       req.Note,
		Categories: req.Categories,
	})
	if err != nil {
		switch {
		case errors.Is(err, transactiondomain.ErrTransactionNotFound):
			h.log.BusinessError("transactions.update: transaction not found", err, "user_id", user.ID, "circle_id", c.ID, "transaction_id", transactionID)
			writeError(w, http.StatusNotFound, "transaction_not_found", "transaction not found")
		case errors.Is(err, transactiondomain.ErrInvalidType):
			h.log.BusinessError("transactions.update: invalid type", err, "user_id", user.ID, "circle_id", c.ID, "transaction_id", transactionID)
			writeError(w, http.StatusBadRequest, "invalid_request", "type must be Income or Expense")
		default:
			h.log.InternalError("transactions.update: update transaction failed", err, "user_id", user.ID, "circle_id", c.ID, "transaction_id", transactionID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(*updated))
}

func (h *Handlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := strings.TrimSpace(chi.URLParam(r, "id"))
	if transactionID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	user, c, ok := h.circleScope(w, r, "transactions.delete")
	if !ok {
		return
	}

	if err := h.Transactions.DeleteTransaction(r.Context(), c.ID, transactionID); err != nil {
		if errors.Is(err, transactiondomain.ErrTransactionNotFound) {
			h.log.BusinessError("transactions.delete: transaction not found", err, "user_id", user.ID, "circle_id", c.ID, "transaction_id", transactionID)
			writeError(w, http.StatusNotFound, "transaction_not_found", "transaction not found")
			return
		}
		h.log.InternalError("transactions.delete: delete transaction failed", err, "user_id", user.ID, "circle_id", c.ID, "transaction_id", transactionID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func queryIDParam(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

type transactionResponse struct {
	ID         string    `json:"id"`
	CircleID   string    `json:"circle_id"`
	UserID     string    `json:"user_id"`
	BankID     *string   `json:"bank_id"`
	BudgetID   *string   `json:"budget_id"`
	GoalID     *string   `json:"goal_id"`
	Date       string    `json:"date"`
	Amount     string    `json:"amount"`
	Currency   string    `json:"currency"`
	Type       string    `json:"type"`
	Note       string    `json:"note"`
	Categories []string  `json:"categories"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type transactionListResponse struct {
	Items []transactionResponse `json:"items"`
	Total int64                 `json:"total"`
}

func toTransactionResponse(tx transactiondomain.TransactionWithCategories) transactionResponse {
	categories := tx.Categories
	if categories == nil {
		categories = []string{}
	}
	return transactionResponse{
		ID:         tx.ID,
		CircleID:   tx.CircleID,
		UserID:     tx.UserID,
		BankID:     tx.BankID,
		BudgetID:   tx.BudgetID,
		GoalID:     tx.GoalID,
		Date:       tx.Date.Format("2006-01-02"),
		Amount:     tx.Amount,
		Currency:   derive.CurrencySymbol(tx.Amount),
		Type:       tx.Type,
		Note:       tx.Note,
		Categories: categories,
		CreatedAt:  tx.CreatedAt,
		UpdatedAt:  tx.UpdatedAt,
	}
}
