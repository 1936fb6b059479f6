package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxMessageLength caps message content after trimming, in characters.
const MaxMessageLength = 10000

// Message is one chat message between two matched users. ReadAt stays nil
// until the receiver marks the conversation read, and is set exactly once.
type Message struct {
	ID         string     `gorm:"primaryKey" json:"id"`
	SenderID   string     `gorm:"type:uuid;not null;index:idx_msg_pair" json:"senderId"`
	ReceiverID string     `gorm:"type:uuid;not null;index:idx_msg_pair" json:"receiverId"`
	Content    string     `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time  `json:"createdAt"`
	ReadAt     *time.Time `json:"readAt"`
}

// BeforeCreate is a GORM hook that assigns a UUID when the ID is not set.
func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}
