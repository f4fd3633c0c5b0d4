package bank

import (
	"context"
	"errors"

	bankdomain "circlefin-go/internal/domain/bank"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListBanks(ctx context.Context, circleID string) ([]bankdomain.Bank, error) {
	var banks []bankdomain.Bank
	err := r.db.WithContext(ctx).
		Where("circle_id = ?", circleID).
		Order("created_at asc").
		Find(&banks).Error
	if err != nil {
		return nil, err
	}
	return banks, nil
}

func (r *PostgresRepository) GetBankByID(ctx context.Context, circleID, bankID string) (*bankdomain.Bank, error) {
	var b bankdomain.Bank
	err := r.db.WithContext(ctx).
		Where("circle_id = ? AND id = ?", circleID, bankID).
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bankdomain.ErrBankNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PostgresRepository) CreateBank(ctx context.Context, b *bankdomain.Bank) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *PostgresRepository) UpdateBank(ctx context.Context, b *bankdomain.Bank) error {
	return r.db.WithContext(ctx).
		Model(&bankdomain.Bank{}).
		Where("id = ? AND circle_id = ?", b.ID, b.CircleID).
		Updates(map[string]interface{}{
			"name":       b.Name,
			"balance":    b.Balance,
			"updated_at": b.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteBank(ctx context.Context, circleID, bankID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&bankdomain.Bank{}, "circle_id = ? AND id = ?", circleID, bankID)
	return result.RowsAffected > 0, result.Error
}
