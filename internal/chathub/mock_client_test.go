package chathub_test

import (
	"sync"

	"studymatch/backend/internal/models"
)

// mockClient is an in-memory Client whose received events can be inspected.
type mockClient struct {
	userID string
	Recv   chan models.ServerEvent

	mu     sync.Mutex
	closed bool
}

func newMockClient(userID string) *mockClient {
	return &mockClient{
		userID: userID,
		Recv:   make(chan models.ServerEvent, 16),
	}
}

func (c *mockClient) GetUserID() string { return c.userID }
func (c *mockClient) Run()              {}

func (c *mockClient) TrySend(evt models.ServerEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Recv <- evt:
		return true
	default:
		return false
	}
}

func (c *mockClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Recv)
	}
}

func (c *mockClient) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
