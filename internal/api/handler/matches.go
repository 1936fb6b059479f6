package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studymatch/backend/internal/apperr"
	"studymatch/backend/internal/models"
)

type createMatchRequest struct {
	ReceiverID string `json:"receiverId" binding:"required"`
}

// CreateMatch proposes a match to another user. An existing PENDING or
// ACCEPTED match between the pair (either direction) is a conflict; a
// REJECTED one is re-opened in place with the caller as the new initiator.
func (h *Handler) CreateMatch(c *gin.Context) {
	userID := c.GetString(ContextUserID)

	var req createMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	if req.ReceiverID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot match with yourself"})
		return
	}

	if _, err := h.Store.GetUserByID(req.ReceiverID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		internalError(c, err)
		return
	}

	existing, err := h.Store.FindMatchBetween(userID, req.ReceiverID)
	if err != nil {
		internalError(c, err)
		return
	}
	if existing != nil {
		if existing.IsActive() {
			c.JSON(http.StatusConflict, gin.H{"error": "Match already exists"})
			return
		}
		reopened, err := h.Store.ReopenMatch(existing.ID, userID, req.ReceiverID)
		if err != nil {
			if errors.Is(err, apperr.ErrConflict) {
				c.JSON(http.StatusConflict, gin.H{"error": "Match already exists"})
				return
			}
			internalError(c, err)
			return
		}
		c.JSON(http.StatusCreated, reopened)
		return
	}

	match := &models.Match{InitiatorID: userID, ReceiverID: req.ReceiverID}
	if err := h.Store.CreateMatch(match); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, match)
}

// ListMatches returns every match the caller participates in, counterpart
// profiles included.
func (h *Handler) ListMatches(c *gin.Context) {
	userID := c.GetString(ContextUserID)
	matches, err := h.Store.ListMatchesForUser(userID)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

// AcceptMatch transitions a PENDING match to ACCEPTED. Receiver only.
func (h *Handler) AcceptMatch(c *gin.Context) {
	h.transitionMatch(c, models.MatchAccepted)
}

// RejectMatch transitions a PENDING match to REJECTED. Receiver only.
func (h *Handler) RejectMatch(c *gin.Context) {
	h.transitionMatch(c, models.MatchRejected)
}

func (h *Handler) transitionMatch(c *gin.Context, status string) {
	userID := c.GetString(ContextUserID)
	id := c.Param("id")

	match, err := h.Store.GetMatchByID(id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
			return
		}
		internalError(c, err)
		return
	}
	if match.ReceiverID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the receiver can act on a match"})
		return
	}

	// Conditional update: only a row still PENDING transitions, so a
	// concurrent accept/reject on the same match cannot both win.
	updated, err := h.Store.UpdateMatchStatusIfPending(id, status)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidState) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Match already processed"})
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
