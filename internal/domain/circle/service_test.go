package circle

import (
	"context"
	"errors"
	"testing"
)

type fakeCircleRepo struct {
	circles map[string]*Circle
	members map[string]*Member // keyed by user id
}

func newFakeCircleRepo() *fakeCircleRepo {
	return &fakeCircleRepo{
		circles: make(map[string]*Circle),
		members: make(map[string]*Member),
	}
}

func (r *fakeCircleRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeCircleRepo) GetCircleByUser(ctx context.Context, userID string) (*Circle, error) {
	member, ok := r.members[userID]
	if !ok {
		return nil, ErrCircleNotFound
	}
	c, ok := r.circles[member.CircleID]
	if !ok {
		return nil, ErrCircleNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCircleRepo) GetCircleByCode(ctx context.Context, code string) (*Circle, error) {
	for _, c := range r.circles {
		if c.Code == code {
			copied := *c
			return &copied, nil
		}
	}
	return nil, ErrCodeNotFound
}

func (r *fakeCircleRepo) GetMemberByUser(ctx context.Context, userID string) (*Member, error) {
	member, ok := r.members[userID]
	if !ok {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

func (r *fakeCircleRepo) ListMembers(ctx context.Context, circleID string) ([]Member, error) {
	var items []Member
	for _, member := range r.members {
		if member.CircleID == circleID {
			items = append(items, *member)
		}
	}
	return items, nil
}

func (r *fakeCircleRepo) CreateCircle(ctx context.Context, c *Circle) error {
	r.circles[c.ID] = c
	return nil
}

func (r *fakeCircleRepo) AddMember(ctx context.Context, member *Member) error {
	r.members[member.UserID] = member
	return nil
}

func (r *fakeCircleRepo) UpdateCircleName(ctx context.Context, circleID, name string) error {
	if c, ok := r.circles[circleID]; ok {
		c.Name = name
	}
	return nil
}

func (r *fakeCircleRepo) DeleteCircle(ctx context.Context, circleID string) error {
	delete(r.circles, circleID)
	return nil
}

func (r *fakeCircleRepo) DeleteMember(ctx context.Context, circleID, userID string) error {
	delete(r.members, userID)
	return nil
}

func (r *fakeCircleRepo) DeleteMembersByCircle(ctx context.Context, circleID string) error {
	for userID, member := range r.members {
		if member.CircleID == circleID {
			delete(r.members, userID)
		}
	}
	return nil
}

func (r *fakeCircleRepo) CountMembers(ctx context.Context, circleID string) (int64, error) {
	var count int64
	for _, member := range r.members {
		if member.CircleID == circleID {
			count++
		}
	}
	return count, nil
}

func (r *fakeCircleRepo) IsUserInCircle(ctx context.Context, userID string) (bool, error) {
	_, ok := r.members[userID]
	return ok, nil
}

func (r *fakeCircleRepo) IsCodeTaken(ctx context.Context, code string) (bool, error) {
	for _, c := range r.circles {
		if c.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateCircleMakesOwner(t *testing.T) {
	repo := newFakeCircleRepo()
	svc := NewService(repo)

	created, err := svc.CreateCircle(context.Background(), "user-1", "Household")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.OwnerID != "user-1" {
		t.Errorf("expected owner user-1, got %q", created.OwnerID)
	}
	if len(created.Code) != codeLength {
		t.Errorf("expected %d-char join code, got %q", codeLength, created.Code)
	}
	if member := repo.members["user-1"]; member == nil || member.Role != RoleOwner {
		t.Errorf("expected owner membership, got %+v", member)
	}
}

func TestCreateCircleRejectsSecondCircle(t *testing.T) {
	svc := NewService(newFakeCircleRepo())

	if _, err := svc.CreateCircle(context.Background(), "user-1", "First"); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.CreateCircle(context.Background(), "user-1", "Second"); !errors.Is(err, ErrAlreadyInCircle) {
		t.Fatalf("expected ErrAlreadyInCircle, got %v", err)
	}
}

func TestJoinCircleByCode(t *testing.T) {
	svc := NewService(newFakeCircleRepo())

	created, err := svc.CreateCircle(context.Background(), "owner", "Household")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	joined, err := svc.JoinCircle(context.Background(), "joiner", " "+created.Code+" ")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if joined.ID != created.ID {
		t.Errorf("joined wrong circle: %q vs %q", joined.ID, created.ID)
	}

	if _, err := svc.JoinCircle(context.Background(), "stranger", "NOPE99"); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("expected ErrCodeNotFound, got %v", err)
	}
}

func TestLeaveCircleOwnerRules(t *testing.T) {
	repo := newFakeCircleRepo()
	svc := NewService(repo)

	created, err := svc.CreateCircle(context.Background(), "owner", "Household")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.JoinCircle(context.Background(), "joiner", created.Code); err != nil {
		t.Fatalf("join: %v", err)
	}

	if err := svc.LeaveCircle(context.Background(), "owner"); !errors.Is(err, ErrCannotRemoveOwner) {
		t.Fatalf("expected ErrCannotRemoveOwner while members remain, got %v", err)
	}

	if err := svc.LeaveCircle(context.Background(), "joiner"); err != nil {
		t.Fatalf("member leave: %v", err)
	}
	if err := svc.LeaveCircle(context.Background(), "owner"); err != nil {
		t.Fatalf("owner leave when alone: %v", err)
	}
	if len(repo.circles) != 0 {
		t.Error("expected circle deleted when last owner leaves")
	}
}

func TestRemoveMember(t *testing.T) {
	repo := newFakeCircleRepo()
	svc := NewService(repo)

	created, err := svc.CreateCircle(context.Background(), "owner", "Household")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.JoinCircle(context.Background(), "joiner", created.Code); err != nil {
		t.Fatalf("join: %v", err)
	}

	if err := svc.RemoveMember(context.Background(), "joiner", "owner"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := svc.RemoveMember(context.Background(), "owner", "owner"); !errors.Is(err, ErrCannotRemoveOwner) {
		t.Fatalf("expected ErrCannotRemoveOwner, got %v", err)
	}
	if err := svc.RemoveMember(context.Background(), "owner", "joiner"); err != nil {
		t.Fatalf("remove member: %v", err)
	}
	if _, ok := repo.members["joiner"]; ok {
		t.Error("expected joiner removed")
	}
}
