package models

import "time"

// Pass records that a user swiped another user away from their discovery
// feed. It is one-way, permanent, and idempotent on the (user, passed) pair.
type Pass struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	UserID       string    `gorm:"type:uuid;not null;uniqueIndex:idx_pass_pair" json:"userId"`
	PassedUserID string    `gorm:"type:uuid;not null;uniqueIndex:idx_pass_pair" json:"passedUserId"`
	CreatedAt    time.Time `json:"createdAt"`
}
