package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studymatch/backend/internal/apperr"
)

type passRequest struct {
	PassedUserID string `json:"passedUserId" binding:"required"`
}

// Discover returns the candidate feed: every user except the caller, users
// in an active match with the caller, and users the caller has passed.
// Both exclusion sets are read before the candidate query so a concurrent
// match or pass cannot slip a just-excluded user back in.
func (h *Handler) Discover(c *gin.Context) {
	userID := c.GetString(ContextUserID)

	matched, err := h.Store.ActiveMatchUserIDs(userID)
	if err != nil {
		internalError(c, err)
		return
	}
	passed, err := h.Store.PassedUserIDs(userID)
	if err != nil {
		internalError(c, err)
		return
	}

	users, err := h.Store.ListCandidates(userID, append(matched, passed...))
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Pass permanently hides a user from the caller's discovery feed.
// Replaying the same pass is a no-op.
func (h *Handler) Pass(c *gin.Context) {
	userID := c.GetString(ContextUserID)

	var req passRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	if req.PassedUserID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot pass on yourself"})
		return
	}

	if _, err := h.Store.GetUserByID(req.PassedUserID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		internalError(c, err)
		return
	}

	if err := h.Store.CreatePass(userID, req.PassedUserID); err != nil {
		internalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
