package transaction

import (
	"context"
	"errors"

	txdomain "circlefin-go/internal/domain/transaction"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(txdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListTransactions(ctx context.Context, circleID string, filter txdomain.ListFilter) ([]txdomain.Transaction, int64, error) {
	query := r.db.WithContext(ctx).Model(&txdomain.Transaction{}).Where("circle_id = ?", circleID)
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	if filter.BankID != nil {
		query = query.Where("bank_id = ?", *filter.BankID)
	}
	if filter.BudgetID != nil {
		query = query.Where("budget_id = ?", *filter.BudgetID)
	}
	if filter.GoalID != nil {
		query = query.Where("goal_id = ?", *filter.GoalID)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("date desc, created_at desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var items []txdomain.Transaction
	if err := query.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PostgresRepository) GetTransactionByID(ctx context.Context, circleID, transactionID string) (*txdomain.Transaction, error) {
	var tx txdomain.Transaction
	err := r.db.WithContext(ctx).
		Where("circle_id = ? AND id = ?", circleID, transactionID).
		First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, txdomain.ErrTransactionNotFound
		}
		return nil, err
	}
	return &tx, nil
}

func (r *PostgresRepository) GetTransactionByClientID(ctx context.Context, circleID, clientID string) (*txdomain.Transaction, error) {
	var tx txdomain.Transaction
	err := r.db.WithContext(ctx).
		Where("circle_id = ? AND client_id = ?", circleID, clientID).
		First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, txdomain.ErrTransactionNotFound
		}
		return nil, err
	}
	return &tx, nil
}

func (r *PostgresRepository) CreateTransaction(ctx context.Context, tx *txdomain.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *PostgresRepository) UpdateTransaction(ctx context.Context, tx *txdomain.Transaction) error {
	return r.db.WithContext(ctx).
		Model(&txdomain.Transaction{}).
		Where("id = ? AND circle_id = ?", tx.ID, tx.CircleID).
		Updates(map[string]interface{}{
			"bank_id":    tx.BankID,
			"budget_id":  tx.BudgetID,
			"goal_id":    tx.GoalID,
			"date":       tx.Date,
			"amount":     tx.Amount,
			"type":       tx.Type,
			"note":       tx.Note,
			"updated_at": tx.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteTransaction(ctx context.Context, circleID, transactionID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&txdomain.Transaction{}, "circle_id = ? AND id = ?", circleID, transactionID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ReplaceCategories(ctx context.Context, transactionID string, names []string) error {
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).Delete(&txdomain.TransactionCategory{}).Error; err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}

	rows := make([]txdomain.TransactionCategory, 0, len(names))
	for position, name := range names {
		rows = append(rows, txdomain.TransactionCategory{
			TransactionID: transactionID,
			Position:      position,
			Name:          name,
		})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *PostgresRepository) GetCategoriesByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(transactionIDs))
	if len(transactionIDs) == 0 {
		return result, nil
	}

	var rows []txdomain.TransactionCategory
	err := r.db.WithContext(ctx).
		Where("transaction_id IN ?", transactionIDs).
		Order("transaction_id, position").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.TransactionID] = append(result[row.TransactionID], row.Name)
	}
	return result, nil
}
