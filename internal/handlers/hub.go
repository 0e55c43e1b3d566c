package handlers

import (
	"sync"

	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/models"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/room"
	"go.uber.org/zap"
)

// Hub tracks every live websocket client and sequences membership changes
// with their roster broadcasts. Membership mutation and broadcast enqueueing
// happen under the hub lock, so no member ever observes a roster that
// contradicts a join/leave notice it already received. Actual writes happen
// on each client's write pump, never under the lock.
type Hub struct {
	store  *room.Store
	logger *zap.SugaredLogger

	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub creates a hub over the given membership store.
func NewHub(store *room.Store, logger *zap.SugaredLogger) *Hub {
	return &Hub{
		store:   store,
		logger:  logger,
		clients: make(map[string]*Client),
	}
}

// register adds a connected (not yet joined) client.
func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

// join creates or replaces the client's membership, sends the full roster
// privately to the joining client, and notifies everyone else.
func (h *Hub) join(c *Client, name, targetLanguage string) (models.Participant, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	p, err := h.store.Join(c.id, name, targetLanguage)
	if err != nil {
		return models.Participant{}, err
	}
	users := h.store.Snapshot()

	c.enqueue(models.ServerMessage{Type: models.TypeUsersList, Payload: users})
	h.broadcastLocked(models.ServerMessage{
		Type:    models.TypeUserJoined,
		Payload: models.UserJoinedPayload{User: p, Users: users},
	}, c.id)
	return p, nil
}

// updateLanguage mutates the member's target language. Updates for ids that
// are no longer members are silently skipped.
func (h *Hub) updateLanguage(c *Client, targetLanguage string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.store.UpdateLanguage(c.id, targetLanguage) {
		h.logger.Debugw("language update for unknown member skipped", "userId", c.id)
	}
}

// remove drops the client from the hub and, if it was a member, removes it
// from the store and notifies the remaining members. Idempotent: duplicate
// close signals produce one broadcast. The send channel is closed under the
// hub lock: once the client is out of the map nothing can enqueue to it, so
// the close cannot race a send.
func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
	if !h.store.Leave(c.id) {
		return
	}
	h.broadcastLocked(models.ServerMessage{
		Type:    models.TypeUserLeft,
		Payload: models.UserLeftPayload{UserID: c.id, Users: h.store.Snapshot()},
	}, c.id)
}

// SendTranslation delivers a translation event to exactly one recipient.
// Implements the relay's Sender contract; per-recipient order follows call
// order because each client has a single buffered send channel.
func (h *Hub) SendTranslation(recipientID string, ev models.TranslationEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	c, ok := h.clients[recipientID]
	if !ok {
		return
	}
	c.enqueue(models.ServerMessage{Type: models.TypeTranslation, Payload: ev})
}

// broadcastLocked enqueues a message to every client except excludeID.
// Callers must hold h.mu.
func (h *Hub) broadcastLocked(msg models.ServerMessage, excludeID string) {
	for id, c := range h.clients {
		if id == excludeID {
			continue
		}
		c.enqueue(msg)
	}
}
