package transaction

import "errors"

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidType         = errors.New("type must be Income or Expense")
	ErrSyncBatchTooLarge   = errors.New("sync batch too large")
)
