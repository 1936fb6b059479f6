package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"studymatch/backend/internal/apperr"
	"studymatch/backend/internal/models"
)

type profileRequest struct {
	FirstName string   `json:"firstName" binding:"required"`
	LastName  string   `json:"lastName" binding:"required"`
	Major     string   `json:"major"`
	Bio       string   `json:"bio"`
	AvatarURL string   `json:"avatarUrl"`
	Courses   []string `json:"courses"`
}

// GetProfile returns the caller's profile.
func (h *Handler) GetProfile(c *gin.Context) {
	userID := c.GetString(ContextUserID)
	profile, err := h.Store.GetProfile(userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile replaces the caller's display attributes.
func (h *Handler) UpdateProfile(c *gin.Context) {
	userID := c.GetString(ContextUserID)

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	profile := &models.Profile{
		UserID:    userID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Major:     req.Major,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		Courses:   pq.StringArray(req.Courses),
	}
	if err := h.Store.SaveProfile(profile); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
