package auth

import (
	"time"

	"leavetrack/internal/user"

	"github.com/google/uuid"
)

// RefreshToken is the single live session anchor per user. The unique index
// on UserID is what ultimately arbitrates concurrent issuance races.
type RefreshToken struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	User   *user.User `gorm:"foreignKey:UserID"`

	Token      string    `gorm:"size:64;not null;uniqueIndex"`
	ExpiryDate time.Time `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (t RefreshToken) Expired(now time.Time) bool {
	return t.ExpiryDate.Before(now)
}
