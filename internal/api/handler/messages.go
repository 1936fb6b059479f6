package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"studymatch/backend/internal/models"
)

type conversationUser struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	AvatarURL string `json:"avatarUrl"`
}

type conversationSummary struct {
	OtherUser   conversationUser `json:"otherUser"`
	LastMessage *models.Message  `json:"lastMessage"`
	UnreadCount int64            `json:"unreadCount"`
	Online      bool             `json:"online"`
}

// ListConversations returns one summary per accepted match: the other
// user, the newest message, the unread count and a best-effort presence
// flag.
func (h *Handler) ListConversations(c *gin.Context) {
	userID := c.GetString(ContextUserID)

	matches, err := h.Store.ListAcceptedMatchesForUser(userID)
	if err != nil {
		internalError(c, err)
		return
	}

	summaries := make([]conversationSummary, 0, len(matches))
	for _, m := range matches {
		other := m.Initiator
		if m.InitiatorID == userID {
			other = m.Receiver
		}
		if other == nil {
			continue
		}

		last, err := h.Store.LastMessageBetween(userID, other.ID)
		if err != nil {
			internalError(c, err)
			return
		}
		unread, err := h.Store.CountUnread(userID, other.ID)
		if err != nil {
			internalError(c, err)
			return
		}
		online, err := h.Store.IsUserOnline(other.ID)
		if err != nil {
			// Presence is cosmetic; the summary is still useful without it.
			log.Printf("WARNING: presence lookup for %s failed: %v", other.ID, err)
			online = false
		}

		summary := conversationSummary{
			OtherUser:   conversationUser{ID: other.ID},
			LastMessage: last,
			UnreadCount: unread,
			Online:      online,
		}
		if other.Profile != nil {
			summary.OtherUser.FirstName = other.Profile.FirstName
			summary.OtherUser.LastName = other.Profile.LastName
			summary.OtherUser.AvatarURL = other.Profile.AvatarURL
		}
		summaries = append(summaries, summary)
	}
	c.JSON(http.StatusOK, summaries)
}

// GetConversation returns the full ordered message history with the other
// user. Requires an accepted match.
func (h *Handler) GetConversation(c *gin.Context) {
	userID := c.GetString(ContextUserID)
	otherUserID := c.Param("otherUserId")

	if !h.requireAcceptedMatch(c, userID, otherUserID) {
		return
	}

	messages, err := h.Store.GetConversation(userID, otherUserID)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// MarkConversationRead is the HTTP fallback for the mark_read event: same
// bulk update, same message_read push to the original sender's room, so
// the observable effect is identical whichever path the client takes.
func (h *Handler) MarkConversationRead(c *gin.Context) {
	userID := c.GetString(ContextUserID)
	otherUserID := c.Param("otherUserId")

	if !h.requireAcceptedMatch(c, userID, otherUserID) {
		return
	}

	if _, err := h.Store.MarkConversationRead(userID, otherUserID, time.Now().UTC()); err != nil {
		internalError(c, err)
		return
	}
	h.Hub.SendToUser(otherUserID, models.EventMessageRead, models.ReadNotice{
		ReaderID:              userID,
		ConversationPartnerID: otherUserID,
	})
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteConversation removes the entire message history with the other
// user, both directions. Irreversible.
func (h *Handler) DeleteConversation(c *gin.Context) {
	userID := c.GetString(ContextUserID)
	otherUserID := c.Param("otherUserId")

	if !h.requireAcceptedMatch(c, userID, otherUserID) {
		return
	}

	if err := h.Store.DeleteConversation(userID, otherUserID); err != nil {
		internalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// requireAcceptedMatch runs the authorization gate and writes the 403 when
// it fails. Returns true when the request may proceed.
func (h *Handler) requireAcceptedMatch(c *gin.Context, userID, otherUserID string) bool {
	allowed, err := h.Store.HasAcceptedMatch(userID, otherUserID)
	if err != nil {
		internalError(c, err)
		return false
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view this conversation"})
		return false
	}
	return true
}
