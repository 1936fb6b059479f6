package storage

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"studymatch/backend/internal/apperr"
	"studymatch/backend/internal/models"
)

// GetMatchByID returns the match row, or ErrNotFound.
func (s *Service) GetMatchByID(id string) (*models.Match, error) {
	var match models.Match
	err := s.DB.First(&match, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// FindMatchBetween returns the match row between the pair in either
// orientation, regardless of status, or nil when none exists.
func (s *Service) FindMatchBetween(userA, userB string) (*models.Match, error) {
	var match models.Match
	err := s.DB.
		Where("(initiator_id = ? AND receiver_id = ?) OR (initiator_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		First(&match).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// CreateMatch inserts a new PENDING match row.
func (s *Service) CreateMatch(m *models.Match) error {
	if err := s.DB.Create(m).Error; err != nil {
		log.Printf("ERROR: failed to create match %s -> %s: %v", m.InitiatorID, m.ReceiverID, err)
		return err
	}
	return nil
}

// ReopenMatch resets a REJECTED row back to PENDING in place, keeping its
// ID but re-orienting the roles toward the new proposer. The update is
// guarded on the REJECTED status so a concurrent proposal for the same pair
// cannot reset the row twice; the loser observes ErrConflict.
func (s *Service) ReopenMatch(id, initiatorID, receiverID string) (*models.Match, error) {
	res := s.DB.Model(&models.Match{}).
		Where("id = ? AND status = ?", id, models.MatchRejected).
		Updates(map[string]interface{}{
			"status":       models.MatchPending,
			"initiator_id": initiatorID,
			"receiver_id":  receiverID,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.ErrConflict
	}
	return s.GetMatchByID(id)
}

// UpdateMatchStatusIfPending performs the accept/reject transition as a
// conditional update: only a row still in PENDING is touched, so two
// concurrent calls cannot both win. Zero affected rows means the observed
// status changed underneath the caller, reported as ErrInvalidState.
func (s *Service) UpdateMatchStatusIfPending(id, status string) (*models.Match, error) {
	res := s.DB.Model(&models.Match{}).
		Where("id = ? AND status = ?", id, models.MatchPending).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.ErrInvalidState
	}
	return s.GetMatchByID(id)
}

// ListMatchesForUser returns every match the user participates in, with
// both counterpart users and their profiles joined.
func (s *Service) ListMatchesForUser(userID string) ([]models.Match, error) {
	var matches []models.Match
	err := s.DB.
		Preload("Initiator.Profile").Preload("Receiver.Profile").
		Where("initiator_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at desc").
		Find(&matches).Error
	if err != nil {
		log.Printf("ERROR: failed to list matches for %s: %v", userID, err)
		return nil, err
	}
	return matches, nil
}

// ListAcceptedMatchesForUser is ListMatchesForUser restricted to ACCEPTED.
func (s *Service) ListAcceptedMatchesForUser(userID string) ([]models.Match, error) {
	var matches []models.Match
	err := s.DB.
		Preload("Initiator.Profile").Preload("Receiver.Profile").
		Where("status = ?", models.MatchAccepted).
		Where("initiator_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at desc").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// HasAcceptedMatch is the authorization gate: true iff an ACCEPTED match
// exists between the two users in either orientation. Re-evaluated on every
// message, typing and read event; never cached.
func (s *Service) HasAcceptedMatch(userA, userB string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Match{}).
		Where("status = ?", models.MatchAccepted).
		Where("(initiator_id = ? AND receiver_id = ?) OR (initiator_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ActiveMatchUserIDs returns the counterpart IDs of every PENDING or
// ACCEPTED match the user participates in; feeds the discovery exclusions.
func (s *Service) ActiveMatchUserIDs(userID string) ([]string, error) {
	var matches []models.Match
	err := s.DB.
		Select("initiator_id", "receiver_id").
		Where("status IN ?", []string{models.MatchPending, models.MatchAccepted}).
		Where("initiator_id = ? OR receiver_id = ?", userID, userID).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.CounterpartID(userID))
	}
	return ids, nil
}
