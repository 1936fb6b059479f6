package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"studymatch/backend/internal/models"
)

// Storage is the persistence boundary used by the handlers and the hub.
// PostgreSQL (via GORM) owns all durable state; Redis carries the ephemeral
// pieces: the presence set and the cross-instance event channel.
type Storage interface {
	// Users & profiles
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	SaveProfile(profile *models.Profile) error
	GetProfile(userID string) (*models.Profile, error)

	// Match state machine
	GetMatchByID(id string) (*models.Match, error)
	FindMatchBetween(userA, userB string) (*models.Match, error)
	CreateMatch(m *models.Match) error
	ReopenMatch(id, initiatorID, receiverID string) (*models.Match, error)
	UpdateMatchStatusIfPending(id, status string) (*models.Match, error)
	ListMatchesForUser(userID string) ([]models.Match, error)
	ListAcceptedMatchesForUser(userID string) ([]models.Match, error)

	// Authorization gate
	HasAcceptedMatch(userA, userB string) (bool, error)

	// Discovery
	ActiveMatchUserIDs(userID string) ([]string, error)
	PassedUserIDs(userID string) ([]string, error)
	CreatePass(userID, passedUserID string) error
	ListCandidates(userID string, excluded []string) ([]models.User, error)

	// Messages
	SaveMessage(msg *models.Message) error
	GetConversation(userA, userB string) ([]models.Message, error)
	MarkConversationRead(readerID, otherUserID string, at time.Time) (int64, error)
	DeleteConversation(userA, userB string) error
	LastMessageBetween(userA, userB string) (*models.Message, error)
	CountUnread(receiverID, senderID string) (int64, error)

	// Realtime fan-out & presence
	PublishEvent(env models.Envelope) error
	SubscribeEvents() *redis.PubSub
	SetUserOnline(userID string) error
	SetUserOffline(userID string) error
	IsUserOnline(userID string) (bool, error)
}

// Service implements Storage over GORM and go-redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewService constructs the storage service.
func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

var _ Storage = (*Service)(nil)
