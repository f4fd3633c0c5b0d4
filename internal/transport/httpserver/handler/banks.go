package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	bankdomain "circlefin-go/internal/domain/bank"
	"circlefin-go/internal/domain/derive"
	"github.com/go-chi/chi/v5"
)

type bankRequest struct {
	Name    string `json:"name"`
	Balance string `json:"balance"`
}

func (h *Handlers) ListBanks(w http.ResponseWriter, r *http.Request) {
	user, c, ok := h.circleScope(w, r, "banks.list")
	if !ok {
		return
	}

	banks, err := h.Banks.ListBanks(r.Context(), c.ID)
	if err != nil {
		h.log.InternalError("banks.list: list banks failed", err, "user_id", user.ID, "circle_id", c.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]bankResponse, 0, len(banks))
	for _, b := range banks {
		response = append(response, toBankResponse(b))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetBank(w http.ResponseWriter, r *http.Request) {
	bankID := strings.TrimSpace(chi.URLParam(r, "id"))
	if bankID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	user, c, ok := h.circleScope(w, r, "banks.get")
	if !ok {
		return
	}

	b, err := h.Banks.GetBank(r.Context(), c.ID, bankID)
	if err != nil {
		if errors.Is(err, bankdomain.ErrBankNotFound) {
			h.log.BusinessError("banks.get: bank not found", err, "user_id", user.ID, "circle_id", c.ID, "bank_id", bankID)
			writeError(w, http.StatusNotFound, "bank_not_found", "bank not found")
			return
		}
		h.log.InternalError("banks.get: get bank failed", err, "user_id", user.ID, "circle_id", c.ID, "bank_id", bankID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toBankResponse(*b))
}

func (h *Handlers) CreateBank(w http.ResponseWriter, r *http.Request) {
	var req bankRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	user, c, ok := h.circleScope(w, r, "banks.create")
	if !ok {
		return
	}

	created, err := h.Banks.CreateBank(r.Context(), bankdomain.CreateBankInput{
		CircleID: c.ID,
		Name:     req.Name,
		Balance:  req.Balance,
	})
	if err != nil {
		h.log.InternalError("banks.create: create bank failed", err, "user_id", user.ID, "circle_id", c.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toBankResponse(*created))
}

func (h *Handlers) UpdateBank(w http.ResponseWriter, r *http.Request) {
	var req bankRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	bankID := strings.TrimSpace(chi.URLParam(r, "id"))
	if bankID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	user, c, ok := h.circleScope(w, r, "banks.update")
	if !ok {
		return
	}

	updated, err := h.Banks.UpdateBank(r.Context(), bankdomain.UpdateBankInput{
		ID:       bankID,
		CircleID: c.ID,
		Name:     req.Name,
		Balance:  req.Balance,
	})
	if err != nil {
		if errors.Is(err, bankdomain.ErrBankNotFound) {
			h.log.BusinessError("banks.update: bank not found", err, "user_id", user.ID, "circle_id", c.ID, "bank_id", bankID)
			writeError(w, http.StatusNotFound, "bank_not_found", "bank not found")
			return
		}
		h.log.InternalError("banks.update: update bank failed", err, "user_id", user.ID, "circle_id", c.ID, "bank_id", bankID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toBankResponse(*updated))
}

func (h *Handlers) DeleteBank(w http.ResponseWriter, r *http.Request) {
	bankID := strings.TrimSpace(chi.URLParam(r, "id"))
	if bankID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "id is required")
		return
	}

	user, c, ok := h.circleScope(w, r, "banks.delete")
	if !ok {
		return
	}

	if err := h.Banks.DeleteBank(r.Context(), c.ID, bankID); err != nil {
		if errors.Is(err, bankdomain.ErrBankNotFound) {
			h.log.BusinessError("banks.delete: bank not found", err, "user_id", user.ID, "circle_id", c.ID, "bank_id", bankID)
			writeError(w, http.StatusNotFound, "bank_not_found", "bank not found")
			return
		}
		h.log.InternalError("banks.delete: delete bank failed", err, "user_id", user.ID, "circle_id", c.ID, "bank_id", bankID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type bankResponse struct {
	ID        string    `json:"id"`
	CircleID  string    `json:"circle_id"`
	Name      string    `json:"name"`
	Balance   string    `json:"balance"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toBankResponse(b bankdomain.Bank) bankResponse {
	return bankResponse{
		ID:        b.ID,
		CircleID:  b.CircleID,
		Name:      b.Name,
		Balance:   b.Balance,
		Currency:  derive.CurrencySymbol(b.Balance),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
