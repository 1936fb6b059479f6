package chathub

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"studymatch/backend/internal/apperr"
	"studymatch/backend/internal/metrics"
	"studymatch/backend/internal/models"
	"studymatch/backend/internal/storage"
)

// EventHandler processes one client event for the authenticated user.
type EventHandler func(userID string, data json.RawMessage) error

// EventRouter maps event names to handlers and runs them behind a bounded
// semaphore, so storage latency on one connection cannot starve the rest.
// A failed handler produces an error event on the originating connection
// only; the connection itself stays open.
type EventRouter struct {
	hub      *ManagerService
	store    storage.Storage
	handlers map[string]EventHandler
	sem      chan struct{}
}

// NewEventRouter builds a router with the protocol's handlers registered.
func NewEventRouter(hub *ManagerService, store storage.Storage, workers int) *EventRouter {
	r := &EventRouter{
		hub:      hub,
		store:    store,
		handlers: make(map[string]EventHandler),
		sem:      make(chan struct{}, workers),
	}
	r.OnEvent(models.EventSendMessage, r.handleSendMessage)
	r.OnEvent(models.EventTypingStart, r.handleTypingStart)
	r.OnEvent(models.EventTypingStop, r.handleTypingStop)
	r.OnEvent(models.EventMarkRead, r.handleMarkRead)
	return r
}

// OnEvent registers a handler for an event name. Registration happens at
// construction time; the table is read-only afterwards.
func (r *EventRouter) OnEvent(name string, h EventHandler) {
	r.handlers[name] = h
}

// Dispatch routes one decoded client event. Called from the connection's
// read pump, so events from a single connection are handled in order.
func (r *EventRouter) Dispatch(client Client, evt models.ClientEvent) {
	metrics.EventsReceived.WithLabelValues(evt.Event).Inc()

	h, ok := r.handlers[evt.Event]
	if !ok {
		metrics.EventsRejected.WithLabelValues(evt.Event).Inc()
		r.replyError(client, "Unknown event")
		return
	}

	r.sem <- struct{}{}
	err := h(client.GetUserID(), evt.Data)
	<-r.sem

	if err != nil {
		metrics.EventsRejected.WithLabelValues(evt.Event).Inc()
		r.replyError(client, clientMessage(err))
	}
}

// replyError queues an error event for the originating connection only.
// A connection the hub has already dropped just discards the event.
func (r *EventRouter) replyError(client Client, message string) {
	client.TrySend(models.ServerEvent{
		Event: models.EventError,
		Data:  models.ErrorNotice{Message: message},
	})
}

// clientMessage maps an error kind to a client-safe message. Anything
// outside the taxonomy is logged with a trace ID and reported generically.
func clientMessage(err error) string {
	switch {
	case errors.Is(err, apperr.ErrInvalidPayload):
		return "Invalid payload"
	case errors.Is(err, apperr.ErrInvalidContent):
		return "Invalid content"
	case errors.Is(err, apperr.ErrForbidden):
		return "Not allowed to message this user"
	default:
		traceID := uuid.New().String()
		log.Printf("ERROR: event handler failed (trace %s): %v", traceID, err)
		return "Failed to process event"
	}
}

// handleSendMessage validates, authorizes and persists a chat message, then
// acks the sender's room and pushes the identical payload to the receiver's
// room. Delivery is best-effort: the message is durable regardless of who
// is connected.
func (r *EventRouter) handleSendMessage(senderID string, data json.RawMessage) error {
	var p models.SendMessagePayload
	if len(data) == 0 || json.Unmarshal(data, &p) != nil || p.ReceiverID == "" {
		return apperr.ErrInvalidPayload
	}

	content := strings.TrimSpace(p.Content)
	if content == "" || utf8.RuneCountInString(content) > models.MaxMessageLength {
		return apperr.ErrInvalidContent
	}

	allowed, err := r.store.HasAcceptedMatch(senderID, p.ReceiverID)
	if err != nil {
		return err
	}
	if !allowed {
		return apperr.ErrForbidden
	}

	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: p.ReceiverID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	if err := r.store.SaveMessage(msg); err != nil {
		return err
	}
	metrics.MessagesPersisted.Inc()

	r.hub.SendToUser(senderID, models.EventMessageSent, msg)
	r.hub.SendToUser(p.ReceiverID, models.EventNewMessage, msg)
	return nil
}

// handleTypingStart pushes a typing indicator to the partner's room. No
// state is kept server-side; authorization failure is a silent no-op.
func (r *EventRouter) handleTypingStart(userID string, data json.RawMessage) error {
	return r.notifyTyping(userID, data, models.EventUserTyping)
}

// handleTypingStop mirrors handleTypingStart for the stop signal.
func (r *EventRouter) handleTypingStop(userID string, data json.RawMessage) error {
	return r.notifyTyping(userID, data, models.EventUserStoppedTyping)
}

func (r *EventRouter) notifyTyping(userID string, data json.RawMessage, event string) error {
	var p models.ConversationPayload
	if len(data) == 0 || json.Unmarshal(data, &p) != nil || p.OtherUserID == "" {
		return nil
	}
	allowed, err := r.store.HasAcceptedMatch(userID, p.OtherUserID)
	if err != nil || !allowed {
		return nil
	}
	r.hub.SendToUser(p.OtherUserID, event, models.TypingNotice{UserID: userID})
	return nil
}

// handleMarkRead bulk-marks the conversation read and notifies the original
// sender's room so pending checkmarks flip. Idempotent; authorization
// failure is a silent no-op.
func (r *EventRouter) handleMarkRead(readerID string, data json.RawMessage) error {
	var p models.ConversationPayload
	if len(data) == 0 || json.Unmarshal(data, &p) != nil || p.OtherUserID == "" {
		return nil
	}
	allowed, err := r.store.HasAcceptedMatch(readerID, p.OtherUserID)
	if err != nil || !allowed {
		return nil
	}

	if _, err := r.store.MarkConversationRead(readerID, p.OtherUserID, time.Now().UTC()); err != nil {
		return err
	}

	r.hub.SendToUser(p.OtherUserID, models.EventMessageRead, models.ReadNotice{
		ReaderID:              readerID,
		ConversationPartnerID: p.OtherUserID,
	})
	return nil
}
