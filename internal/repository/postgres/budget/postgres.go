package budget

import (
	"context"
	"errors"

	budgetdomain "circlefin-go/internal/domain/budget"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(budgetdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListBudgets(ctx context.Context, circleID string) ([]budgetdomain.Budget, error) {
	var budgets []budgetdomain.Budget
	err := r.db.WithContext(ctx).
		Where("circle_id = ?", circleID).
		Order("created_at asc").
		Find(&budgets).Error
	if err != nil {
		return nil, err
	}
	return budgets, nil
}

func (r *PostgresRepository) GetBudgetByID(ctx context.Context, circleID, budgetID string) (*budgetdomain.Budget, error) {
	var b budgetdomain.Budget
	err := r.db.WithContext(ctx).
		Where("circle_id = ? AND id = ?", circleID, budgetID).
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, budgetdomain.ErrBudgetNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PostgresRepository) CreateBudget(ctx context.Context, b *budgetdomain.Budget) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *PostgresRepository) UpdateBudget(ctx context.Context, b *budgetdomain.Budget) error {
	return r.db.WithContext(ctx).
		Model(&budgetdomain.Budget{}).
		Where("id = ? AND circle_id = ?", b.ID, b.CircleID).
		Updates(map[string]interface{}{
			"name":             b.Name,
			"scope":            b.Scope,
			"budget_type":      b.BudgetType,
			"target_amount":    b.TargetAmount,
			"remaining_amount": b.RemainingAmount,
			"start_date":       b.StartDate,
			"duration":         b.Duration,
			"period":           b.Period,
			"updated_at":       b.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteBudget(ctx context.Context, circleID, budgetID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&budgetdomain.Budget{}, "circle_id = ? AND id = ?", circleID, budgetID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ReplaceBudgetCategories(ctx context.Context, budgetID string, names []string) error {
	if err := r.db.WithContext(ctx).Where("budget_id = ?", budgetID).Delete(&budgetdomain.BudgetCategory{}).Error; err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}

	rows := make([]budgetdomain.BudgetCategory, 0, len(names))
	for position, name := range names {
		rows = append(rows, budgetdomain.BudgetCategory{
			BudgetID: budgetID,
			Position: position,
			Name:     name,
		})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *PostgresRepository) GetCategoriesByBudgetIDs(ctx context.Context, budgetIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(budgetIDs))
	if len(budgetIDs) == 0 {
		return result, nil
	}

	var rows []budgetdomain.BudgetCategory
	err := r.db.WithContext(ctx).
		Where("budget_id IN ?", budgetIDs).
		Order("budget_id, position").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.BudgetID] = append(result[row.BudgetID], row.Name)
	}
	return result, nil
}

func (r *PostgresRepository) ListGoals(ctx context.Context, circleID string) ([]budgetdomain.Goal, error) {
	var goals []budgetdomain.Goal
	err := r.db.WithContext(ctx).
		Where("circle_id = ?", circleID).
		Order("created_at asc").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *PostgresRepository) GetGoalByID(ctx context.Context, circleID, goalID string) (*budgetdomain.Goal, error) {
	var g budgetdomain.Goal
	err := r.db.WithContext(ctx).
		Where("circle_id = ? AND id = ?", circleID, goalID).
		First(&g).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, budgetdomain.ErrGoalNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *PostgresRepository) CreateGoal(ctx context.Context, g *budgetdomain.Goal) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *PostgresRepository) UpdateGoal(ctx context.Context, g *budgetdomain.Goal) error {
	return r.db.WithContext(ctx).
		Model(&budgetdomain.Goal{}).
		Where("id = ? AND circle_id = ?", g.ID, g.CircleID).
		Updates(map[string]interface{}{
			"name":             g.Name,
			"category":         g.Category,
			"target_amount":    g.TargetAmount,
			"remaining_amount": g.RemainingAmount,
			"start_date":       g.StartDate,
			"duration":         g.Duration,
			"period":           g.Period,
			"updated_at":       g.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteGoal(ctx context.Context, circleID, goalID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&budgetdomain.Goal{}, "circle_id = ? AND id = ?", circleID, goalID)
	return result.RowsAffected > 0, result.Error
}
