package transaction

import "time"

const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// Transaction is one movement of money inside a circle. Amount keeps the
// currency-formatted text the client submitted ("$12.50", "1 200 kr"); the
// derivation core parses it when aggregating. BudgetID/GoalID record
// explicit assignment, which is what EXCLUSIVE budget and goal charts
// aggregate over. ClientID is the mobile client's idempotency key for
// offline sync.
type Transaction struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	CircleID  string    `gorm:"type:uuid;index;not null"`
	UserID    string    `gorm:"type:uuid;index;not null"`
	BankID    *string   `gorm:"type:uuid;index"`
	BudgetID  *string   `gorm:"type:uuid;index"`
	GoalID    *string   `gorm:"type:uuid;index"`
	ClientID  *string   `gorm:"type:text;uniqueIndex"`
	Date      time.Time `gorm:"type:date;not null"`
	Amount    string    `gorm:"not null"`
	Type      string    `gorm:"type:varchar(16);not null"`
	Note      string    `gorm:""`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TransactionCategory keeps a transaction's category labels in submission
// order. Multi-category transactions are supported; a transaction with no
// rows here aggregates as "Uncategorized" under EXCLUSIVE scope.
type TransactionCategory struct {
	TransactionID string `gorm:"type:uuid;primaryKey"`
	Position      int    `gorm:"primaryKey"`
	Name          string `gorm:"not null"`
}

type TransactionWithCategories struct {
	Transaction
	Categories []string
}

type ListFilter struct {
	From     *time.Time
	To       *time.Time
	BankID   *string
	BudgetID *string
	GoalID   *string
	Limit    int
	Offset   int
}

type CreateTransactionInput struct {
	CircleID   string
	UserID     string
	BankID     *string
	BudgetID   *string
	GoalID     *string
	ClientID   *string
	Date       time.Time
	Amount     string
	Type       string
	Note       string
	Categories []string
}

type UpdateTransactionInput struct {
	ID         string
	CircleID   string
	BankID     *string
	BudgetID   *string
	GoalID     *string
	Date       time.Time
	Amount     string
	Type       string
	Note       string
	Categories []string
}

// Sync types cover the offline batch upload. Items are applied in order;
// a ClientID the server has already seen reports as duplicate rather than
// creating a second row.
type SyncItem struct {
	ClientID   string
	BankID     *string
	BudgetID   *string
	GoalID     *string
	Date       time.Time
	Amount     string
	Type       string
	Note       string
	Categories []string
}

const (
	SyncStatusApplied   = "applied"
	SyncStatusDuplicate = "duplicate"
	SyncStatusFailed    = "failed"
)

type SyncResult struct {
	ClientID string `json:"client_id"`
	Status   string `json:"status"`
	ID       string `json:"id,omitempty"`
	Error    string `json:"error,omitempty"`
}

const MaxSyncBatch = 100
