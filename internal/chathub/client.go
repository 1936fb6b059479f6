package chathub

import "studymatch/backend/internal/models"

// Client is the interface for one live connection. It abstracts the
// underlying transport so the hub can manage connections uniformly; the
// production implementation is WebSocketClient.
type Client interface {
	// GetUserID returns the authenticated user this connection belongs to.
	GetUserID() string

	// TrySend queues an outbound event without blocking. It reports false
	// when the write buffer is full or the connection is already closed.
	TrySend(evt models.ServerEvent) bool

	// Run starts the connection's read and write pumps.
	Run()
	// Close shuts down the outbound channel, stopping the write pump.
	// Safe to call more than once and concurrently with TrySend.
	Close()
}
