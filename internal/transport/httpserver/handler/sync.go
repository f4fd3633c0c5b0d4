package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	transactiondomain "circlefin-go/internal/domain/transaction"
)

type syncBatchRequest struct {
	Items []syncItemRequest `json:"items"`
}

type syncItemRequest struct {
	ClientID   string   `json:"client_id"`
	BankID     *string  `json:"bank_id"`
	BudgetID   *string  `json:"budget_id"`
	GoalID     *string  `json:"goal_id"`
	Date       string   `json:"date"`
	Amount     string   `json:"amount"`
	Type       string   `json:"type"`
	Note       string   `json:"note"`
	Categories []string `json:"categories"`
}

type syncBatchResponse struct {
	Results []transactiondomain.SyncResult `json:"results"`
	Summary syncSummary                    `json:"summary"`
}

type syncSummary struct {
	Total     int `json:"total"`
	Applied   int `json:"applied"`
	Duplicate int `json:"duplicate"`
	Failed    int `json:"failed"`
}

// SyncBatch ingests an offline client's queued transactions. Items replay
// safely: a client_id the server has already seen reports duplicate instead
// of inserting a second row.
func (h *Handlers) SyncBatch(w http.ResponseWriter, r *http.Request) {
	startedAt := time.Now()

	var req syncBatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "items are required")
		return
	}
	if len(req.Items) > transactiondomain.MaxSyncBatch {
		writeError(w, http.StatusRequestEntityTooLarge, "sync_batch_too_large", "too many items in one batch")
		return
	}

	user, c, ok := h.circleScope(w, r, "sync.batch")
	if !ok {
		return
	}

	items := make([]transactiondomain.SyncItem, 0, len(req.Items))
	for i, item := range req.Items {
		date, err := parseDateRequired(item.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid date at index "+strconv.Itoa(i))
			return
		}
		items = append(items, transactiondomain.SyncItem{
			ClientID:   item.ClientID,
			BankID:     normalizeStringPtr(item.BankID),
			BudgetID:   normalizeStringPtr(item.BudgetID),
			GoalID:     normalizeStringPtr(item.GoalID),
			Date:       date,
			Amount:     item.Amount,
			Type:       item.Type,
			Note:       item.Note,
			Categories: item.Categories,
		})
	}

	results, err := h.Transactions.SyncBatch(r.Context(), c.ID, user.ID, items)
	if err != nil {
		logAttrs := []any{
			"user_id", user.ID,
			"circle_id", c.ID,
			"items", len(items),
			"duration_ms", time.Since(startedAt).Milliseconds(),
		}

		if errors.Is(err, transactiondomain.ErrSyncBatchTooLarge) {
			h.log.BusinessError("sync.batch: batch too large", err, logAttrs...)
			writeError(w, http.StatusRequestEntityTooLarge, "sync_batch_too_large", "too many items in one batch")
			return
		}
		h.log.InternalError("sync.batch: process batch failed", err, logAttrs...)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	summary := syncSummary{Total: len(results)}
	for _, result := range results {
		switch result.Status {
		case transactiondomain.SyncStatusApplied:
			summary.Applied++
		case transactiondomain.SyncStatusDuplicate:
			summary.Duplicate++
		case transactiondomain.SyncStatusFailed:
			summary.Failed++
		}
	}

	h.log.Info(
		"sync: completed",
		"user_id", user.ID,
		"circle_id", c.ID,
		"total", summary.Total,
		"applied", summary.Applied,
		"duplicate", summary.Duplicate,
		"failed", summary.Failed,
		"duration_ms", time.Since(startedAt).Milliseconds(),
	)

	writeJSON(w, http.StatusOK, syncBatchResponse{Results: results, Summary: summary})
}
