package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// User is the identity anchor for the system. Authentication and every
// authorization decision key off its ID; display data lives in Profile.
type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`

	Profile *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
}

// BeforeCreate is a GORM hook that assigns a UUID when the ID is not set
// and normalizes the email so uniqueness is case-insensitive.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return
}

// Profile holds the display attributes rendered in discovery cards and
// conversation headers. It carries no authorization weight.
type Profile struct {
	UserID    string         `gorm:"primaryKey;type:uuid" json:"userId"`
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Major     string         `json:"major"`
	Bio       string         `gorm:"type:text" json:"bio"`
	AvatarURL string         `json:"avatarUrl"`
	Courses   pq.StringArray `gorm:"type:text[]" json:"courses"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
