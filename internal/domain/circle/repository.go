package circle

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetCircleByUser(ctx context.Context, userID string) (*Circle, error)
	GetCircleByCode(ctx context.Context, code string) (*Circle, error)
	GetMemberByUser(ctx context.Context, userID string) (*Member, error)
	ListMembers(ctx context.Context, circleID string) ([]Member, error)
	CreateCircle(ctx context.Context, c *Circle) error
	AddMember(ctx context.Context, member *Member) error
	UpdateCircleName(ctx context.Context, circleID, name string) error
	DeleteCircle(ctx context.Context, circleID string) error
	DeleteMember(ctx context.Context, circleID, userID string) error
	DeleteMembersByCircle(ctx context.Context, circleID string) error
	CountMembers(ctx context.Context, circleID string) (int64, error)
	IsUserInCircle(ctx context.Context, userID string) (bool, error)
	IsCodeTaken(ctx context.Context, code string) (bool, error)
}
