package chathub

import (
	"encoding/json"
	"log"

	"studymatch/backend/internal/metrics"
	"studymatch/backend/internal/models"
	"studymatch/backend/internal/storage"
)

// ManagerService owns the room table: user ID -> set of live connections.
// All mutation happens inside the Run goroutine, fed by the register and
// unregister channels, so no lock is needed. Delivery flows through Redis
// pub/sub: SendToUser publishes an envelope, every instance's listener
// pushes it into PubSubCh, and Run fans it out to the target's local room.
type ManagerService struct {
	// Rooms maps a user ID to that user's live connections. Owned by Run.
	Rooms map[string]map[Client]bool

	RegisterCh   chan Client
	UnregisterCh chan Client
	PubSubCh     chan models.Envelope

	Storage storage.Storage
}

// NewManagerService constructs a hub bound to the given storage.
func NewManagerService(s storage.Storage) *ManagerService {
	return &ManagerService{
		Rooms:        make(map[string]map[Client]bool),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		PubSubCh:     make(chan models.Envelope, 64),
		Storage:      s,
	}
}

// Run is the hub's main loop. It must run in its own goroutine before any
// connection is registered.
func (m *ManagerService) Run() {
	for {
		select {
		case client := <-m.RegisterCh:
			m.addClient(client)
		case client := <-m.UnregisterCh:
			m.removeClient(client)
		case env := <-m.PubSubCh:
			m.deliverLocal(env)
		}
	}
}

// StartPubSubListener subscribes to the shared event channel and feeds
// received envelopes into the Run loop. Started once per process.
func (m *ManagerService) StartPubSubListener() {
	go func() {
		pubsub := m.Storage.SubscribeEvents()
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var env models.Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				log.Printf("hub: dropping malformed envelope from pubsub: %v", err)
				continue
			}
			m.PubSubCh <- env
		}
	}()
}

// SendToUser addresses an event to every live connection of the user, on
// this instance and any other. Fire-and-forget: a target with no
// connections simply receives nothing.
func (m *ManagerService) SendToUser(userID, event string, data interface{}) {
	env := models.Envelope{
		TargetUserID: userID,
		ServerEvent:  models.ServerEvent{Event: event, Data: data},
	}
	if err := m.Storage.PublishEvent(env); err != nil {
		log.Printf("hub: failed to publish %s for %s: %v", event, userID, err)
	}
}

func (m *ManagerService) addClient(client Client) {
	userID := client.GetUserID()
	room, ok := m.Rooms[userID]
	if !ok {
		room = make(map[Client]bool)
		m.Rooms[userID] = room
		metrics.RoomsActive.Inc()
		if err := m.Storage.SetUserOnline(userID); err != nil {
			log.Printf("hub: failed to mark %s online: %v", userID, err)
		}
	}
	room[client] = true
	metrics.ConnectionsActive.Inc()
	log.Printf("hub: user %s connected (%d connections)", userID, len(room))
}

// removeClient tears a connection down. Safe to invoke more than once for
// the same connection: a client no longer in its room is ignored.
func (m *ManagerService) removeClient(client Client) {
	userID := client.GetUserID()
	room, ok := m.Rooms[userID]
	if !ok || !room[client] {
		return
	}
	delete(room, client)
	client.Close()
	metrics.ConnectionsActive.Dec()

	if len(room) == 0 {
		delete(m.Rooms, userID)
		metrics.RoomsActive.Dec()
		if err := m.Storage.SetUserOffline(userID); err != nil {
			log.Printf("hub: failed to mark %s offline: %v", userID, err)
		}
	}
	log.Printf("hub: user %s disconnected", userID)
}

func (m *ManagerService) deliverLocal(env models.Envelope) {
	room, ok := m.Rooms[env.TargetUserID]
	if !ok {
		return
	}
	for client := range room {
		if client.TrySend(env.ServerEvent) {
			metrics.EventsDelivered.Inc()
		} else {
			// Write buffer full: the client stopped draining. Drop it.
			m.removeClient(client)
		}
	}
}
