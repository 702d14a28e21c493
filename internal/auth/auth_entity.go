package auth

import "time"

// RefreshToken rows are global, they are looked up by hash before any
// tenant context exists. Only the SHA-256 of the token is stored.
type RefreshToken struct {
	ID        int64  `gorm:"primaryKey"`
	UserID    int64  `gorm:"not null;index"`
	TokenHash string `gorm:"type:char(64);uniqueIndex;not null"`
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time `gorm:"not null;default:now()"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (t *RefreshToken) Usable(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
