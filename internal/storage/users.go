package storage

import (
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"studymatch/backend/internal/apperr"
	"studymatch/backend/internal/models"
)

// CreateUser inserts a new user together with its profile, if set.
// A duplicate email surfaces as ErrConflict.
func (s *Service) CreateUser(user *models.User) error {
	err := s.DB.Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.ErrConflict
		}
		log.Printf("ERROR: failed to create user: %v", err)
		return err
	}
	return nil
}

// GetUserByEmail looks a user up by normalized email.
func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Preload("Profile").
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID returns the user with its profile preloaded.
func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.Preload("Profile").First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveProfile creates or updates the user's profile row.
func (s *Service) SaveProfile(profile *models.Profile) error {
	return s.DB.Save(profile).Error
}

// GetProfile returns the profile for a user, or ErrNotFound.
func (s *Service) GetProfile(userID string) (*models.Profile, error) {
	var profile models.Profile
	err := s.DB.First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
