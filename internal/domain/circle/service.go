package circle

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	codeLength       = 6
	codeAttempts     = 10
	joinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetCircleByUser(ctx context.Context, userID string) (*Circle, error) {
	return s.repo.GetCircleByUser(ctx, userID)
}

func (s *Service) CreateCircle(ctx context.Context, userID, name string) (*Circle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	var result Circle
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		inCircle, err := tx.IsUserInCircle(ctx, userID)
		if err != nil {
			return err
		}
		if inCircle {
			return ErrAlreadyInCircle
		}

		code, err := generateUniqueCode(ctx, tx)
		if err != nil {
			return err
		}

		c := Circle{
			ID:      uuid.NewString(),
			Name:    name,
			Code:    code,
			OwnerID: userID,
		}
		if err := tx.CreateCircle(ctx, &c); err != nil {
			return err
		}

		member := Member{
			CircleID: c.ID,
			UserID:   userID,
			Role:     RoleOwner,
		}
		if err := tx.AddMember(ctx, &member); err != nil {
			return err
		}

		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (s *Service) JoinCircle(ctx context.Context, userID, code string) (*Circle, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("code is required")
	}

	var result Circle
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		inCircle, err := tx.IsUserInCircle(ctx, userID)
		if err != nil {
			return err
		}
		if inCircle {
			return ErrAlreadyInCircle
		}

		c, err := tx.GetCircleByCode(ctx, code)
		if err != nil {
			return err
		}

		member := Member{
			CircleID: c.ID,
			UserID:   userID,
			Role:     RoleMember,
		}
		if err := tx.AddMember(ctx, &member); err != nil {
			return err
		}

		result = *c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// LeaveCircle removes the caller from their circle. An owner may only leave
// when alone, and leaving then deletes the circle itself.
func (s *Service) LeaveCircle(ctx context.Context, userID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		member, err := tx.GetMemberByUser(ctx, userID)
		if err != nil {
			return err
		}

		if member.Role == RoleOwner {
			count, err := tx.CountMembers(ctx, member.CircleID)
			if err != nil {
				return err
			}
			if count > 1 {
				return ErrCannotRemoveOwner
			}

			if err := tx.DeleteMembersByCircle(ctx, member.CircleID); err != nil {
				return err
			}
			return tx.DeleteCircle(ctx, member.CircleID)
		}

		return tx.DeleteMember(ctx, member.CircleID, userID)
	})
}

func (s *Service) UpdateCircle(ctx context.Context, userID, name string) (*Circle, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	c, err := s.repo.GetCircleByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateCircleName(ctx, c.ID, name); err != nil {
		return nil, err
	}

	c.Name = name
	return c, nil
}

func (s *Service) ListMembers(ctx context.Context, userID string) ([]Member, error) {
	c, err := s.repo.GetCircleByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, c.ID)
}

// RemoveMember lets the owner remove another member.
func (s *Service) RemoveMember(ctx context.Context, ownerID, memberID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		owner, err := tx.GetMemberByUser(ctx, ownerID)
		if err != nil {
			return err
		}
		if owner.Role != RoleOwner {
			return ErrNotOwner
		}
		if memberID == ownerID {
			return ErrCannotRemoveOwner
		}

		target, err := tx.GetMemberByUser(ctx, memberID)
		if err != nil {
			return err
		}
		if target.CircleID != owner.CircleID {
			return ErrMemberNotFound
		}

		return tx.DeleteMember(ctx, target.CircleID, memberID)
	})
}

func generateUniqueCode(ctx context.Context, repo Repository) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code, err := generateCode(codeLength)
		if err != nil {
			return "", err
		}
		taken, err := repo.IsCodeTaken(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeGenerationFailed
}

func generateCode(length int) (string, error) {
	max := big.NewInt(int64(len(joinCodeAlphabet)))

	var builder strings.Builder
	builder.Grow(length)

	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		builder.WriteByte(joinCodeAlphabet[n.Int64()])
	}

	return builder.String(), nil
}
