package bank

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrBankNotFound = errors.New("bank not found")

// Bank is an account within a circle. Balance stays currency-formatted text
// exactly as synced from the client; the derivation core parses it on
// demand.
type Bank struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	CircleID  string    `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"not null"`
	Balance   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type Repository interface {
	ListBanks(ctx context.Context, circleID string) ([]Bank, error)
	GetBankByID(ctx context.Context, circleID, bankID string) (*Bank, error)
	CreateBank(ctx context.Context, b *Bank) error
	UpdateBank(ctx context.Context, b *Bank) error
	DeleteBank(ctx context.Context, circleID, bankID string) (bool, error)
}

type CreateBankInput struct {
	CircleID string
	Name     string
	Balance  string
}

type UpdateBankInput struct {
	ID       string
	CircleID string
	Name     string
	Balance  string
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListBanks(ctx context.Context, circleID string) ([]Bank, error) {
	banks, err := s.repo.ListBanks(ctx, circleID)
	if err != nil {
		return nil, err
	}
	if banks == nil {
		banks = []Bank{}
	}
	return banks, nil
}

func (s *Service) GetBank(ctx context.Context, circleID, bankID string) (*Bank, error) {
	return s.repo.GetBankByID(ctx, circleID, bankID)
}

func (s *Service) CreateBank(ctx context.Context, input CreateBankInput) (*Bank, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	b := Bank{
		ID:       uuid.NewString(),
		CircleID: input.CircleID,
		Name:     name,
		Balance:  strings.TrimSpace(input.Balance),
	}
	if err := s.repo.CreateBank(ctx, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Service) UpdateBank(ctx context.Context, input UpdateBankInput) (*Bank, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	b, err := s.repo.GetBankByID(ctx, input.CircleID, input.ID)
	if err != nil {
		return nil, err
	}

	b.Name = name
	b.Balance = strings.TrimSpace(input.Balance)
	b.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateBank(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) DeleteBank(ctx context.Context, circleID, bankID string) error {
	deleted, err := s.repo.DeleteBank(ctx, circleID, bankID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBankNotFound
	}
	return nil
}
