package storage

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"studymatch/backend/internal/models"
)

// betweenPair scopes a query to messages exchanged between two users, in
// both directions.
func (s *Service) betweenPair(userA, userB string) *gorm.DB {
	return s.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA)
}

// SaveMessage persists a chat message. The row ID is generated by the
// BeforeCreate hook and written back into msg for delivery.
func (s *Service) SaveMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: failed to save message %s -> %s: %v", msg.SenderID, msg.ReceiverID, err)
		return err
	}
	return nil
}

// GetConversation returns every message between the pair ordered by
// creation time, with the row ID as a stable tie-break.
func (s *Service) GetConversation(userA, userB string) ([]models.Message, error) {
	var messages []models.Message
	err := s.betweenPair(userA, userB).
		Order("created_at asc, id asc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkConversationRead stamps read_at on every unread message sent by
// otherUserID to readerID, in one bulk update. Re-invoking when everything
// is already read matches zero rows and changes nothing.
func (s *Service) MarkConversationRead(readerID, otherUserID string, at time.Time) (int64, error) {
	res := s.DB.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read_at IS NULL", otherUserID, readerID).
		Update("read_at", at)
	if res.Error != nil {
		log.Printf("ERROR: failed to mark conversation %s/%s read: %v", readerID, otherUserID, res.Error)
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// DeleteConversation removes every message between the pair. Irreversible.
func (s *Service) DeleteConversation(userA, userB string) error {
	return s.betweenPair(userA, userB).Delete(&models.Message{}).Error
}

// LastMessageBetween returns the newest message between the pair, or nil
// when the conversation is empty.
func (s *Service) LastMessageBetween(userA, userB string) (*models.Message, error) {
	var msg models.Message
	err := s.betweenPair(userA, userB).
		Order("created_at desc, id desc").
		First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// CountUnread counts messages from senderID to receiverID not yet read.
func (s *Service) CountUnread(receiverID, senderID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND read_at IS NULL", senderID, receiverID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
