package profile

import (
	"context"
	"fmt"
	"time"
)

// Profile mirrors the identity provider's view of a user. It is upserted on
// every authenticated request so member lists can show names and emails
// without another round-trip to the provider.
type Profile struct {
	UserID    string    `gorm:"type:uuid;primaryKey"`
	Email     *string   `gorm:"type:text"`
	Name      *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type Repository interface {
	UpsertProfile(ctx context.Context, p *Profile) error
	GetProfile(ctx context.Context, userID string) (*Profile, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) UpsertProfile(ctx context.Context, userID, email, name string) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}

	p := Profile{UserID: userID}
	if email != "" {
		p.Email = &email
	}
	if name != "" {
		p.Name = &name
	}

	return s.repo.UpsertProfile(ctx, &p)
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}
