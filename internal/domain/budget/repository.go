package budget

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	ListBudgets(ctx context.Context, circleID string) ([]Budget, error)
	GetBudgetByID(ctx context.Context, circleID, budgetID string) (*Budget, error)
	CreateBudget(ctx context.Context, budget *Budget) error
	UpdateBudget(ctx context.Context, budget *Budget) error
	DeleteBudget(ctx context.Context, circleID, budgetID string) (bool, error)
	ReplaceBudgetCategories(ctx context.Context, budgetID string, names []string) error
	GetCategoriesByBudgetIDs(ctx context.Context, budgetIDs []string) (map[string][]string, error)

	ListGoals(ctx context.Context, circleID string) ([]Goal, error)
	GetGoalByID(ctx context.Context, circleID, goalID string) (*Goal, error)
	CreateGoal(ctx context.Context, goal *Goal) error
	UpdateGoal(ctx context.Context, goal *Goal) error
	DeleteGoal(ctx context.Context, circleID, goalID string) (bool, error)
}
