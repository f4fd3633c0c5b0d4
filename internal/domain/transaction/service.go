package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListTransactions(ctx context.Context, circleID string, filter ListFilter) ([]TransactionWithCategories, int64, error) {
	items, total, err := s.repo.ListTransactions(ctx, circleID, filter)
	if err != nil {
		return nil, 0, err
	}
	if len(items) == 0 {
		return []TransactionWithCategories{}, total, nil
	}

	ids := make([]string, 0, len(items))
	for _, tx := range items {
		ids = append(ids, tx.ID)
	}
	categories, err := s.repo.GetCategoriesByTransactionIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	result := make([]TransactionWithCategories, 0, len(items))
	for _, tx := range items {
		result = append(result, TransactionWithCategories{Transaction: tx, Categories: categories[tx.ID]})
	}
	return result, total, nil
}

func (s *Service) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*TransactionWithCategories, error) {
	txType, err := normalizeType(input.Type)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Amount) == "" {
		return nil, fmt.Errorf("amount is required")
	}

	categories := normalizeCategories(input.Categories)

	record := Transaction{
		ID:       uuid.NewString(),
		CircleID: input.CircleID,
		UserID:   input.UserID,
		BankID:   input.BankID,
		BudgetID: input.BudgetID,
		GoalID:   input.GoalID,
		ClientID: input.ClientID,
		Date:     input.Date,
		Amount:   strings.TrimSpace(input.Amount),
		Type:     txType,
		Note:     strings.TrimSpace(input.Note),
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateTransaction(ctx, &record); err != nil {
			return err
		}
		return tx.ReplaceCategories(ctx, record.ID, categories)
	})
	if err != nil {
		return nil, err
	}

	return &TransactionWithCategories{Transaction: record, Categories: categories}, nil
}

func (s *Service) UpdateTransaction(ctx context.Context, input UpdateTransactionInput) (*TransactionWithCategories, error) {
	txType, err := normalizeType(input.Type)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Amount) == "" {
		return nil, fmt.Errorf("amount is required")
	}

	categories := normalizeCategories(input.Categories)

	var updated Transaction
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		record, err := tx.GetTransactionByID(ctx, input.CircleID, input.ID)
		if err != nil {
			return err
		}

		record.BankID = input.BankID
		record.BudgetID = input.BudgetID
		record.GoalID = input.GoalID
		record.Date = input.Date
		record.Amount = strings.TrimSpace(input.Amount)
		record.Type = txType
		record.Note = strings.TrimSpace(input.Note)
		record.UpdatedAt = time.Now().UTC()

		if err := tx.UpdateTransaction(ctx, record); err != nil {
			return err
		}
		if err := tx.ReplaceCategories(ctx, record.ID, categories); err != nil {
			return err
		}

		updated = *record
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &TransactionWithCategories{Transaction: updated, Categories: categories}, nil
}

func (s *Service) DeleteTransaction(ctx context.Context, circleID, transactionID string) error {
	deleted, err := s.repo.DeleteTransaction(ctx, circleID, transactionID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTransactionNotFound
	}
	return nil
}

// SyncBatch applies an offline client's queued transactions. Each item is
// idempotent on ClientID: replays report duplicate instead of inserting
// twice. One bad item does not abort the rest of the batch.
func (s *Service) SyncBatch(ctx context.Context, circleID, userID string, items []SyncItem) ([]SyncResult, error) {
	if len(items) > MaxSyncBatch {
		return nil, ErrSyncBatchTooLarge
	}

	results := make([]SyncResult, 0, len(items))
	for _, item := range items {
		clientID := strings.TrimSpace(item.ClientID)
		if clientID == "" {
			results = append(results, SyncResult{Status: SyncStatusFailed, Error: "client_id is required"})
			continue
		}

		existing, err := s.repo.GetTransactionByClientID(ctx, circleID, clientID)
		if err != nil && !errors.Is(err, ErrTransactionNotFound) {
			return nil, err
		}
		if existing != nil {
			results = append(results, SyncResult{ClientID: clientID, Status: SyncStatusDuplicate, ID: existing.ID})
			continue
		}

		created, err := s.CreateTransaction(ctx, CreateTransactionInput{
			CircleID:   circleID,
			UserID:     userID,
			BankID:     item.BankID,
			BudgetID:   item.BudgetID,
			GoalID:     item.GoalID,
			ClientID:   &clientID,
			Date:       item.Date,
			Amount:     item.Amount,
			Type:       item.Type,
			Note:       item.Note,
			Categories: item.Categories,
		})
		if err != nil {
			results = append(results, SyncResult{ClientID: clientID, Status: SyncStatusFailed, Error: err.Error()})
			continue
		}
		results = append(results, SyncResult{ClientID: clientID, Status: SyncStatusApplied, ID: created.ID})
	}

	return results, nil
}

// normalizeType canonicalizes the case-insensitive wire value ("expense",
// "INCOME") the mobile clients send.
func normalizeType(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "income":
		return TypeIncome, nil
	case "expense":
		return TypeExpense, nil
	}
	return "", ErrInvalidType
}

func normalizeCategories(names []string) []string {
	if len(names) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		value := strings.TrimSpace(name)
		if value == "" {
			continue
		}
		key := strings.ToLower(value)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, value)
	}
	return result
}
