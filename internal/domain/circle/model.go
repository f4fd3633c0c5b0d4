package circle

import "time"

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Circle is a shared finance group: every bank, budget, goal and
// transaction belongs to exactly one circle, and members see everything the
// circle owns.
type Circle struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Code      string    `gorm:"size:6;not null;uniqueIndex"`
	OwnerID   string    `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type Member struct {
	CircleID string    `gorm:"type:uuid;primaryKey"`
	UserID   string    `gorm:"primaryKey;uniqueIndex"`
	Role     string    `gorm:"type:varchar(16);not null"`
	JoinedAt time.Time `gorm:"autoCreateTime"`

	Circle Circle `gorm:"foreignKey:CircleID;references:ID;constraint:OnDelete:CASCADE"`
}
