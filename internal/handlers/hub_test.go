package handlers

import (
	"testing"

	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/models"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/room"
	"go.uber.org/zap"
)

func drain(c *Client) []models.ServerMessage {
	var out []models.ServerMessage
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return out
			}
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestHubRemoveIdempotent(t *testing.T) {
	t.Parallel()

	logger := zap.NewNop().Sugar()
	store := room.NewStore()
	hub := NewHub(store, logger)

	a := newClient("a", nil, "", "", logger)
	b := newClient("b", nil, "", "", logger)
	hub.register(a)
	hub.register(b)
	if _, err := hub.join(a, "alice", "en"); err != nil {
		t.Fatalf("join a: %v", err)
	}
	if _, err := hub.join(b, "bob", "es"); err != nil {
		t.Fatalf("join b: %v", err)
	}
	drain(a)

	// duplicate close signals must produce exactly one roster broadcast
	hub.remove(b)
	hub.remove(b)

	var leftCount int
	for _, msg := range drain(a) {
		if msg.Type == models.TypeUserLeft {
			leftCount++
		}
	}
	if leftCount != 1 {
		t.Errorf("expected exactly 1 user-left broadcast, got %d", leftCount)
	}
	if store.Len() != 1 {
		t.Errorf("store has %d members, want 1", store.Len())
	}
}

func TestHubSendTranslationToUnknownRecipient(t *testing.T) {
	t.Parallel()

	hub := NewHub(room.NewStore(), zap.NewNop().Sugar())
	// must not panic or block
	hub.SendTranslation("ghost", models.TranslationEvent{TranslatedText: "hola"})
}
