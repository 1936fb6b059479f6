package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studymatch/backend/internal/models"
)

func TestUserBeforeCreate(t *testing.T) {
	user := &models.User{Email: "  Taras@Example.COM "}
	assert.NoError(t, user.BeforeCreate(nil))
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "taras@example.com", user.Email)

	// An explicit ID is preserved.
	fixed := &models.User{ID: "user_1", Email: "a@b.com"}
	assert.NoError(t, fixed.BeforeCreate(nil))
	assert.Equal(t, "user_1", fixed.ID)
}

func TestMatchBeforeCreate(t *testing.T) {
	match := &models.Match{InitiatorID: "user_A", ReceiverID: "user_B"}
	assert.NoError(t, match.BeforeCreate(nil))
	assert.NotEmpty(t, match.ID)
	assert.Equal(t, models.MatchPending, match.Status)
}

func TestMatchHelpers(t *testing.T) {
	match := &models.Match{
		InitiatorID: "user_A",
		ReceiverID:  "user_B",
		Status:      models.MatchPending,
	}

	assert.True(t, match.IsActive())
	match.Status = models.MatchAccepted
	assert.True(t, match.IsActive())
	match.Status = models.MatchRejected
	assert.False(t, match.IsActive())

	assert.True(t, match.Involves("user_A"))
	assert.True(t, match.Involves("user_B"))
	assert.False(t, match.Involves("user_C"))

	assert.Equal(t, "user_B", match.CounterpartID("user_A"))
	assert.Equal(t, "user_A", match.CounterpartID("user_B"))
}

func TestMessageBeforeCreate(t *testing.T) {
	msg := &models.Message{SenderID: "user_A", ReceiverID: "user_B", Content: "hi"}
	assert.NoError(t, msg.BeforeCreate(nil))
	assert.NotEmpty(t, msg.ID)
	assert.Nil(t, msg.ReadAt)
}
