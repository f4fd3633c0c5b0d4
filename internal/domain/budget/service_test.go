package budget

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeBudgetRepo struct {
	budgets          map[string]*Budget
	goals            map[string]*Goal
	budgetCategories map[string][]string
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{
		budgets:          make(map[string]*Budget),
		goals:            make(map[string]*Goal),
		budgetCategories: make(map[string][]string),
	}
}

func (r *fakeBudgetRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeBudgetRepo) ListBudgets(ctx context.Context, circleID string) ([]Budget, error) {
	var items []Budget
	for _, b := range r.budgets {
		if b.CircleID == circleID {
			items = append(items, *b)
		}
	}
	return items, nil
}

func (r *fakeBudgetRepo) GetBudgetByID(ctx context.Context, circleID, budgetID string) (*Budget, error) {
	b, ok := r.budgets[budgetID]
	if !ok || b.CircleID != circleID {
		return nil, ErrBudgetNotFound
	}
	return b, nil
}

func (r *fakeBudgetRepo) CreateBudget(ctx context.Context, b *Budget) error {
	r.budgets[b.ID] = b
	return nil
}

func (r *fakeBudgetRepo) UpdateBudget(ctx context.Context, b *Budget) error {
	r.budgets[b.ID] = b
	return nil
}

func (r *fakeBudgetRepo) DeleteBudget(ctx context.Context, circleID, budgetID string) (bool, error) {
	b, ok := r.budgets[budgetID]
	if !ok || b.CircleID != circleID {
		return false, nil
	}
	delete(r.budgets, budgetID)
	delete(r.budgetCategories, budgetID)
	return true, nil
}

func (r *fakeBudgetRepo) ReplaceBudgetCategories(ctx context.Context, budgetID string, names []string) error {
	r.budgetCategories[budgetID] = names
	return nil
}

func (r *fakeBudgetRepo) GetCategoriesByBudgetIDs(ctx context.Context, budgetIDs []string) (map[string][]string, error) {
	result := make(map[string][]string)
	for _, id := range budgetIDs {
		if names, ok := r.budgetCategories[id]; ok {
			result[id] = names
		}
	}
	return result, nil
}

func (r *fakeBudgetRepo) ListGoals(ctx context.Context, circleID string) ([]Goal, error) {
	var items []Goal
	for _, g := range r.goals {
		if g.CircleID == circleID {
			items = append(items, *g)
		}
	}
	return items, nil
}

func (r *fakeBudgetRepo) GetGoalByID(ctx context.Context, circleID, goalID string) (*Goal, error) {
	g, ok := r.goals[goalID]
	if !ok || g.CircleID != circleID {
		return nil, ErrGoalNotFound
	}
	return g, nil
}

func (r *fakeBudgetRepo) CreateGoal(ctx context.Context, g *Goal) error {
	r.goals[g.ID] = g
	return nil
}

func (r *fakeBudgetRepo) UpdateGoal(ctx context.Context, g *Goal) error {
	r.goals[g.ID] = g
	return nil
}

func (r *fakeBudgetRepo) DeleteGoal(ctx context.Context, circleID, goalID string) (bool, error) {
	g, ok := r.goals[goalID]
	if !ok || g.CircleID != circleID {
		return false, nil
	}
	delete(r.goals, goalID)
	return true, nil
}

func TestCreateBudgetNormalizesFields(t *testing.T) {
	svc := NewService(newFakeBudgetRepo())

	created, err := svc.CreateBudget(context.Background(), CreateBudgetInput{
		CircleID:        "circle-1",
		Name:            "  Household ",
		Scope:           "inclusive",
		BudgetType:      "expense",
		TargetAmount:    " $500 ",
		RemainingAmount: "$500",
		StartDate:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Duration:        1,
		Period:          "Monthly",
		Categories:      []string{"Groceries", " groceries ", "", "Transit"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if created.Name != "Household" {
		t.Errorf("expected trimmed name, got %q", created.Name)
	}
	if created.Scope != "INCLUSIVE" {
		t.Errorf("expected canonical scope, got %q", created.Scope)
	}
	if created.BudgetType != TypeExpense {
		t.Errorf("expected canonical type, got %q", created.BudgetType)
	}
	if created.Period != PeriodMonthly {
		t.Errorf("expected canonical period, got %q", created.Period)
	}
	if created.TargetAmount != "$500" {
		t.Errorf("expected trimmed amount text, got %q", created.TargetAmount)
	}
	if len(created.Categories) != 2 || created.Categories[0] != "Groceries" || created.Categories[1] != "Transit" {
		t.Errorf("expected deduped ordered categories, got %v", created.Categories)
	}
}

func TestCreateBudgetRejectsInvalidInput(t *testing.T) {
	svc := NewService(newFakeBudgetRepo())
	base := CreateBudgetInput{
		CircleID:        "circle-1",
		Name:            "Household",
		Scope:           "INCLUSIVE",
		BudgetType:      "Expense",
		TargetAmount:    "$500",
		RemainingAmount: "$500",
		StartDate:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Duration:        1,
		Period:          "monthly",
	}

	bad := base
	bad.Scope = "both"
	if _, err := svc.CreateBudget(context.Background(), bad); !errors.Is(err, ErrInvalidScope) {
		t.Errorf("expected ErrInvalidScope, got %v", err)
	}

	bad = base
	bad.BudgetType = "fun"
	if _, err := svc.CreateBudget(context.Background(), bad); !errors.Is(err, ErrInvalidType) {
		t.Errorf("expected ErrInvalidType, got %v", err)
	}

	bad = base
	bad.Period = "fortnightly"
	if _, err := svc.CreateBudget(context.Background(), bad); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}

	bad = base
	bad.Name = "   "
	if _, err := svc.CreateBudget(context.Background(), bad); err == nil {
		t.Error("expected error for blank name")
	}
}

func TestUpdateBudgetReplacesCategories(t *testing.T) {
	repo := newFakeBudgetRepo()
	svc := NewService(repo)

	created, err := svc.CreateBudget(context.Background(), CreateBudgetInput{
		CircleID:        "circle-1",
		Name:            "Household",
		Scope:           "INCLUSIVE",
		BudgetType:      "Expense",
		TargetAmount:    "$500",
		RemainingAmount: "$500",
		StartDate:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Duration:        1,
		Period:          "monthly",
		Categories:      []string{"Groceries"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateBudget(context.Background(), UpdateBudgetInput{
		ID:              created.ID,
		CircleID:        "circle-1",
		Name:            "Household",
		Scope:           "EXCLUSIVE",
		BudgetType:      "Savings",
		TargetAmount:    "$600",
		RemainingAmount: "$100",
		StartDate:       time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Duration:        2,
		Period:          "weekly",
		Categories:      []string{"Transit", "Dining"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Scope != "EXCLUSIVE" || updated.BudgetType != TypeSavings {
		t.Errorf("unexpected updated budget: %+v", updated.Budget)
	}
	if len(repo.budgetCategories[created.ID]) != 2 {
		t.Errorf("expected categories replaced, got %v", repo.budgetCategories[created.ID])
	}
}

func TestDeleteBudgetNotFound(t *testing.T) {
	svc := NewService(newFakeBudgetRepo())
	if err := svc.DeleteBudget(context.Background(), "circle-1", "missing"); !errors.Is(err, ErrBudgetNotFound) {
		t.Fatalf("expected ErrBudgetNotFound, got %v", err)
	}
}

func TestGoalLifecycle(t *testing.T) {
	svc := NewService(newFakeBudgetRepo())

	created, err := svc.CreateGoal(context.Background(), CreateGoalInput{
		CircleID:        "circle-1",
		Name:            "Vacation",
		Category:        "Savings",
		TargetAmount:    "$2000",
		RemainingAmount: "$0",
		StartDate:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Duration:        6,
		Period:          "Monthly",
	})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if created.Period != PeriodMonthly {
		t.Errorf("expected canonical period, got %q", created.Period)
	}

	updated, err := svc.UpdateGoal(context.Background(), UpdateGoalInput{
		ID:              created.ID,
		CircleID:        "circle-1",
		Name:            "Vacation",
		Category:        "Savings",
		TargetAmount:    "$2000",
		RemainingAmount: "$450",
		StartDate:       created.StartDate,
		Duration:        6,
		Period:          "monthly",
	})
	if err != nil {
		t.Fatalf("update goal: %v", err)
	}
	if updated.RemainingAmount != "$450" {
		t.Errorf("expected remaining updated, got %q", updated.RemainingAmount)
	}

	if err := svc.DeleteGoal(context.Background(), "circle-1", created.ID); err != nil {
		t.Fatalf("delete goal: %v", err)
	}
	if err := svc.DeleteGoal(context.Background(), "circle-1", created.ID); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}
}
