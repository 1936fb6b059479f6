package storage

import (
	"log"

	"gorm.io/gorm/clause"

	"studymatch/backend/internal/models"
)

// CreatePass records a discovery pass. The insert is idempotent via the
// unique (user_id, passed_user_id) constraint: replaying a swipe is a no-op.
func (s *Service) CreatePass(userID, passedUserID string) error {
	pass := models.Pass{UserID: userID, PassedUserID: passedUserID}
	err := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&pass).Error
	if err != nil {
		log.Printf("ERROR: failed to record pass %s -> %s: %v", userID, passedUserID, err)
		return err
	}
	return nil
}

// PassedUserIDs returns every user the given user has passed on.
func (s *Service) PassedUserIDs(userID string) ([]string, error) {
	var ids []string
	err := s.DB.Model(&models.Pass{}).
		Where("user_id = ?", userID).
		Pluck("passed_user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListCandidates returns all users except the given user and the excluded
// set, with profiles joined. Callers compute the exclusion set (active
// matches plus passes) before this query runs.
func (s *Service) ListCandidates(userID string, excluded []string) ([]models.User, error) {
	var users []models.User
	q := s.DB.Preload("Profile").Where("id <> ?", userID)
	if len(excluded) > 0 {
		q = q.Where("id NOT IN ?", excluded)
	}
	if err := q.Find(&users).Error; err != nil {
		log.Printf("ERROR: failed to list discovery candidates for %s: %v", userID, err)
		return nil, err
	}
	return users, nil
}
