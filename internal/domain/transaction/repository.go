package transaction

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	ListTransactions(ctx context.Context, circleID string, filter ListFilter) ([]Transaction, int64, error)
	GetTransactionByID(ctx context.Context, circleID, transactionID string) (*Transaction, error)
	GetTransactionByClientID(ctx context.Context, circleID, clientID string) (*Transaction, error)
	CreateTransaction(ctx context.Context, tx *Transaction) error
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, circleID, transactionID string) (bool, error)
	ReplaceCategories(ctx context.Context, transactionID string, names []string) error
	GetCategoriesByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string][]string, error)
}
