package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Match lifecycle states. A match starts PENDING and only the receiver may
// move it to ACCEPTED or REJECTED. A REJECTED row can later be re-opened by
// a fresh proposal, which resets it to PENDING in place.
const (
	MatchPending  = "PENDING"
	MatchAccepted = "ACCEPTED"
	MatchRejected = "REJECTED"
)

// Match is a directed proposal between two users that converges to a
// symmetric relationship once accepted. At most one non-REJECTED row exists
// per unordered user pair.
type Match struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	InitiatorID string    `gorm:"type:uuid;not null;index:idx_match_pair" json:"initiatorId"`
	ReceiverID  string    `gorm:"type:uuid;not null;index:idx_match_pair" json:"receiverId"`
	Status      string    `gorm:"type:text;not null;default:PENDING" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Initiator *User `gorm:"foreignKey:InitiatorID" json:"initiator,omitempty"`
	Receiver  *User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// BeforeCreate is a GORM hook that assigns a UUID when the ID is not set.
func (m *Match) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Status == "" {
		m.Status = MatchPending
	}
	return
}

// IsActive reports whether the match still blocks a new proposal between
// the pair (PENDING or ACCEPTED).
func (m *Match) IsActive() bool {
	return m.Status == MatchPending || m.Status == MatchAccepted
}

// Involves reports whether the user participates in the match.
func (m *Match) Involves(userID string) bool {
	return m.InitiatorID == userID || m.ReceiverID == userID
}

// CounterpartID returns the other participant's ID relative to userID.
func (m *Match) CounterpartID(userID string) string {
	if m.InitiatorID == userID {
		return m.ReceiverID
	}
	return m.InitiatorID
}
