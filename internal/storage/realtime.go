package storage

import (
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"studymatch/backend/internal/models"
)

// Redis keys for the realtime layer. Events flow through a single pub/sub
// channel shared by every backend instance; presence is a plain set.
const (
	eventsChannel  = "events:fanout"
	onlineUsersKey = "online:users"
)

// PublishEvent serializes the envelope onto the shared event channel. Every
// hub instance (this one included) receives it and delivers to whichever of
// the target's connections it holds.
func (s *Service) PublishEvent(env models.Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, eventsChannel, payload).Err()
}

// SubscribeEvents subscribes to the shared event channel.
func (s *Service) SubscribeEvents() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, eventsChannel)
}

// SetUserOnline adds the user to the presence set. Called when a user's
// first connection joins.
func (s *Service) SetUserOnline(userID string) error {
	return s.Redis.SAdd(s.Ctx, onlineUsersKey, userID).Err()
}

// SetUserOffline removes the user from the presence set. Called when a
// user's last connection leaves.
func (s *Service) SetUserOffline(userID string) error {
	return s.Redis.SRem(s.Ctx, onlineUsersKey, userID).Err()
}

// IsUserOnline reports whether the user currently has a live connection on
// any instance.
func (s *Service) IsUserOnline(userID string) (bool, error) {
	ok, err := s.Redis.SIsMember(s.Ctx, onlineUsersKey, userID).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return ok, nil
}
