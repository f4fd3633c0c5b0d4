package circle

import (
	"context"
	"errors"

	circledomain "circlefin-go/internal/domain/circle"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(circledomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetCircleByUser(ctx context.Context, userID string) (*circledomain.Circle, error) {
	var member circledomain.Member
	err := r.db.WithContext(ctx).
		Preload("Circle").
		Where("user_id = ?", userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, circledomain.ErrCircleNotFound
		}
		return nil, err
	}
	return &member.Circle, nil
}

func (r *PostgresRepository) GetCircleByCode(ctx context.Context, code string) (*circledomain.Circle, error) {
	var c circledomain.Circle
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, circledomain.ErrCodeNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepository) GetMemberByUser(ctx context.Context, userID string) (*circledomain.Member, error) {
	var member circledomain.Member
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, circledomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context, circleID string) ([]circledomain.Member, error) {
	var members []circledomain.Member
	err := r.db.WithContext(ctx).
		Where("circle_id = ?", circleID).
		Order("joined_at asc").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) CreateCircle(ctx context.Context, c *circledomain.Circle) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *PostgresRepository) AddMember(ctx context.Context, member *circledomain.Member) error {
	return r.db.WithContext(ctx).Omit("Circle").Create(member).Error
}

func (r *PostgresRepository) UpdateCircleName(ctx context.Context, circleID, name string) error {
	return r.db.WithContext(ctx).
		Model(&circledomain.Circle{}).
		Where("id = ?", circleID).
		Update("name", name).Error
}

func (r *PostgresRepository) DeleteCircle(ctx context.Context, circleID string) error {
	return r.db.WithContext(ctx).Delete(&circledomain.Circle{}, "id = ?", circleID).Error
}

func (r *PostgresRepository) DeleteMember(ctx context.Context, circleID, userID string) error {
	return r.db.WithContext(ctx).
		Delete(&circledomain.Member{}, "circle_id = ? AND user_id = ?", circleID, userID).Error
}

func (r *PostgresRepository) DeleteMembersByCircle(ctx context.Context, circleID string) error {
	return r.db.WithContext(ctx).Delete(&circledomain.Member{}, "circle_id = ?", circleID).Error
}

func (r *PostgresRepository) CountMembers(ctx context.Context, circleID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&circledomain.Member{}).
		Where("circle_id = ?", circleID).
		Count(&count).Error
	return count, err
}

func (r *PostgresRepository) IsUserInCircle(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&circledomain.Member{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresRepository) IsCodeTaken(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&circledomain.Circle{}).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}
