package budget

import "time"

const (
	TypeSavings = "Savings"
	TypeExpense = "Expense"
)

// Budget is a spending or savings envelope owned by a circle. Target and
// remaining amounts stay currency-formatted text exactly as the client
// submitted them; arithmetic happens at derivation time.
type Budget struct {
	ID              string    `gorm:"type:uuid;primaryKey"`
	CircleID        string    `gorm:"type:uuid;index;not null"`
	Name            string    `gorm:"not null"`
	Scope           string    `gorm:"type:varchar(16);not null"`
	BudgetType      string    `gorm:"type:varchar(16);not null"`
	TargetAmount    string    `gorm:"not null"`
	RemainingAmount string    `gorm:"not null"`
	StartDate       time.Time `gorm:"type:date;not null"`
	Duration        int       `gorm:"not null"`
	Period          string    `gorm:"type:varchar(16);not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

// BudgetCategory keeps the declared category set in display order. Only
// INCLUSIVE budgets consult it.
type BudgetCategory struct {
	BudgetID string `gorm:"type:uuid;primaryKey"`
	Position int    `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
}

type BudgetWithCategories struct {
	Budget
	Categories []string
}

// Goal is structurally a budget without the scope/declared-category
// concept: goal charts aggregate every associated transaction's own
// categories.
type Goal struct {
	ID              string    `gorm:"type:uuid;primaryKey"`
	CircleID        string    `gorm:"type:uuid;index;not null"`
	Name            string    `gorm:"not null"`
	Category        string    `gorm:"not null"`
	TargetAmount    string    `gorm:"not null"`
	RemainingAmount string    `gorm:"not null"`
	StartDate       time.Time `gorm:"type:date;not null"`
	Duration        int       `gorm:"not null"`
	Period          string    `gorm:"type:varchar(16);not null"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

type CreateBudgetInput struct {
	CircleID        string
	Name            string
	Scope           string
	BudgetType      string
	TargetAmount    string
	RemainingAmount string
	StartDate       time.Time
	Duration        int
	Period          string
	Categories      []string
}

type UpdateBudgetInput struct {
	ID              string
	CircleID        string
	Name            string
	Scope           string
	BudgetType      string
	TargetAmount    string
	RemainingAmount string
	StartDate       time.Time
	Duration        int
	Period          string
	Categories      []string
}

type CreateGoalInput struct {
	CircleID        string
	Name            string
	Category        string
	TargetAmount    string
	RemainingAmount string
	StartDate       time.Time
	Duration        int
	Period          string
}

type UpdateGoalInput struct {
	ID              string
	CircleID        string
	Name            string
	Category        string
	TargetAmount    string
	RemainingAmount string
	StartDate       time.Time
	Duration        int
	Period          string
}
