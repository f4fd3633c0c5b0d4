package budget

import (
	"context"
	"fmt"
	"strings"
	"time"

	"circlefin-go/internal/domain/derive"
	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListBudgets(ctx context.Context, circleID string) ([]BudgetWithCategories, error) {
	budgets, err := s.repo.ListBudgets(ctx, circleID)
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return []BudgetWithCategories{}, nil
	}

	ids := make([]string, 0, len(budgets))
	for _, b := range budgets {
		ids = append(ids, b.ID)
	}
	categories, err := s.repo.GetCategoriesByBudgetIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]BudgetWithCategories, 0, len(budgets))
	for _, b := range budgets {
		items = append(items, BudgetWithCategories{Budget: b, Categories: categories[b.ID]})
	}
	return items, nil
}

func (s *Service) GetBudget(ctx context.Context, circleID, budgetID string) (*BudgetWithCategories, error) {
	b, err := s.repo.GetBudgetByID(ctx, circleID, budgetID)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.GetCategoriesByBudgetIDs(ctx, []string{b.ID})
	if err != nil {
		return nil, err
	}
	return &BudgetWithCategories{Budget: *b, Categories: categories[b.ID]}, nil
}

func (s *Service) CreateBudget(ctx context.Context, input CreateBudgetInput) (*BudgetWithCategories, error) {
	normalized, err := normalizeBudgetInput(input.Name, input.Scope, input.BudgetType, input.Period)
	if err != nil {
		return nil, err
	}

	categories := normalizeCategories(input.Categories)

	b := Budget{
		ID:              uuid.NewString(),
		CircleID:        input.CircleID,
		Name:            normalized.name,
		Scope:           normalized.scope,
		BudgetType:      normalized.budgetType,
		TargetAmount:    strings.TrimSpace(input.TargetAmount),
		RemainingAmount: strings.TrimSpace(input.RemainingAmount),
		StartDate:       input.StartDate,
		Duration:        input.Duration,
		Period:          normalized.period,
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateBudget(ctx, &b); err != nil {
			return err
		}
		return tx.ReplaceBudgetCategories(ctx, b.ID, categories)
	})
	if err != nil {
		return nil, err
	}

	return &BudgetWithCategories{Budget: b, Categories: categories}, nil
}

func (s *Service) UpdateBudget(ctx context.Context, input UpdateBudgetInput) (*BudgetWithCategories, error) {
	normalized, err := normalizeBudgetInput(input.Name, input.Scope, input.BudgetType, input.Period)
	if err != nil {
		return nil, err
	}

	categories := normalizeCategories(input.Categories)

	var updated Budget
	err = s.repo.Transaction(ctx, func(tx Repository) error {
		b, err := tx.GetBudgetByID(ctx, input.CircleID, input.ID)
		if err != nil {
			return err
		}

		b.Name = normalized.name
		b.Scope = normalized.scope
		b.BudgetType = normalized.budgetType
		b.TargetAmount = strings.TrimSpace(input.TargetAmount)
		b.RemainingAmount = strings.TrimSpace(input.RemainingAmount)
		b.StartDate = input.StartDate
		b.Duration = input.Duration
		b.Period = normalized.period
		b.UpdatedAt = time.Now().UTC()

		if err := tx.UpdateBudget(ctx, b); err != nil {
			return err
		}
		if err := tx.ReplaceBudgetCategories(ctx, b.ID, categories); err != nil {
			return err
		}

		updated = *b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &BudgetWithCategories{Budget: updated, Categories: categories}, nil
}

func (s *Service) DeleteBudget(ctx context.Context, circleID, budgetID string) error {
	deleted, err := s.repo.DeleteBudget(ctx, circleID, budgetID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBudgetNotFound
	}
	return nil
}

func (s *Service) ListGoals(ctx context.Context, circleID string) ([]Goal, error) {
	goals, err := s.repo.ListGoals(ctx, circleID)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		goals = []Goal{}
	}
	return goals, nil
}

func (s *Service) GetGoal(ctx context.Context, circleID, goalID string) (*Goal, error) {
	return s.repo.GetGoalByID(ctx, circleID, goalID)
}

func (s *Service) CreateGoal(ctx context.Context, input CreateGoalInput) (*Goal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	period, ok := NormalizePeriod(input.Period)
	if !ok {
		return nil, ErrInvalidPeriod
	}

	g := Goal{
		ID:              uuid.NewString(),
		CircleID:        input.CircleID,
		Name:            name,
		Category:        strings.TrimSpace(input.Category),
		TargetAmount:    strings.TrimSpace(input.TargetAmount),
		RemainingAmount: strings.TrimSpace(input.RemainingAmount),
		StartDate:       input.StartDate,
		Duration:        input.Duration,
		Period:          period,
	}
	if err := s.repo.CreateGoal(ctx, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Service) UpdateGoal(ctx context.Context, input UpdateGoalInput) (*Goal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	period, ok := NormalizePeriod(input.Period)
	if !ok {
		return nil, ErrInvalidPeriod
	}

	g, err := s.repo.GetGoalByID(ctx, input.CircleID, input.ID)
	if err != nil {
		return nil, err
	}

	g.Name = name
	g.Category = strings.TrimSpace(input.Category)
	g.TargetAmount = strings.TrimSpace(input.TargetAmount)
	g.RemainingAmount = strings.TrimSpace(input.RemainingAmount)
	g.StartDate = input.StartDate
	g.Duration = input.Duration
	g.Period = period
	g.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateGoal(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Service) DeleteGoal(ctx context.Context, circleID, goalID string) error {
	deleted, err := s.repo.DeleteGoal(ctx, circleID, goalID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrGoalNotFound
	}
	return nil
}

type normalizedBudget struct {
	name       string
	scope      string
	budgetType string
	period     string
}

func normalizeBudgetInput(name, scope, budgetType, period string) (normalizedBudget, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return normalizedBudget{}, fmt.Errorf("name is required")
	}

	policy, ok := derive.ParseScopePolicy(scope)
	if !ok {
		return normalizedBudget{}, ErrInvalidScope
	}

	normalizedType, ok := normalizeBudgetType(budgetType)
	if !ok {
		return normalizedBudget{}, ErrInvalidType
	}

	normalizedPeriod, ok := NormalizePeriod(period)
	if !ok {
		return normalizedBudget{}, ErrInvalidPeriod
	}

	return normalizedBudget{
		name:       name,
		scope:      string(policy),
		budgetType: normalizedType,
		period:     normalizedPeriod,
	}, nil
}

func normalizeBudgetType(value string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "savings":
		return TypeSavings, true
	case "expense":
		return TypeExpense, true
	}
	return "", false
}

// normalizeCategories trims, drops empties, and dedupes case-insensitively
// while keeping first-seen casing and order. The declared order matters: it
// is the display order the client renders before the chart re-sorts.
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
