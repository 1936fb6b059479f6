package models

import "encoding/json"

// Event names received from clients over the live connection.
const (
	EventSendMessage = "send_message"
	EventTypingStart = "typing_start"
	EventTypingStop  = "typing_stop"
	EventMarkRead    = "mark_read"
)

// Event names pushed to clients.
const (
	EventMessageSent       = "message_sent"
	EventNewMessage        = "new_message"
	EventUserTyping        = "user_typing"
	EventUserStoppedTyping = "user_stopped_typing"
	EventMessageRead       = "message_read"
	EventError             = "error"
)

// ClientEvent is one decoded frame from a connected client. Data stays raw
// until the registered handler for Event unmarshals it.
type ClientEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ServerEvent is the frame written to a client socket.
type ServerEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Envelope is a ServerEvent addressed to one user's room. It is the unit
// published on the Redis fan-out channel; every hub instance delivers it to
// whichever of the target's connections it holds locally.
type Envelope struct {
	TargetUserID string `json:"targetUserId"`
	ServerEvent
}

// SendMessagePayload is the client payload for send_message.
type SendMessagePayload struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

// ConversationPayload addresses a conversation partner; used by
// typing_start, typing_stop and mark_read.
type ConversationPayload struct {
	OtherUserID string `json:"otherUserId"`
}

// TypingNotice is pushed as user_typing / user_stopped_typing.
type TypingNotice struct {
	UserID string `json:"userId"`
}

// ReadNotice is pushed as message_read to the original senders.
type ReadNotice struct {
	ReaderID              string `json:"readerId"`
	ConversationPartnerID string `json:"conversationPartnerId"`
}

// ErrorNotice is pushed as an error event; the message is generic and never
// carries internal detail.
type ErrorNotice struct {
	Message string `json:"message"`
}
