package relay

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/models"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/room"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/translate"
	"go.uber.org/zap"
)

// countingTranslator records every call and delegates to the stub dictionary.
type countingTranslator struct {
	inner translate.Translator
	mu    sync.Mutex
	calls []string // target languages, in call order
}

func newCountingTranslator() *countingTranslator {
	return &countingTranslator{inner: translate.NewStubTranslator(nil)}
}

func (c *countingTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	c.mu.Lock()
	c.calls = append(c.calls, targetLang)
	c.mu.Unlock()
	return c.inner.Translate(ctx, text, sourceLang, targetLang)
}

func (c *countingTranslator) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

// failingTranslator fails for one language and delegates otherwise.
type failingTranslator struct {
	inner    translate.Translator
	failLang string
}

func (f *failingTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if targetLang == f.failLang {
		return "", errors.New("boom")
	}
	return f.inner.Translate(ctx, text, sourceLang, targetLang)
}

// recordingSender captures delivered events per recipient.
type recordingSender struct {
	mu     sync.Mutex
	events map[string][]models.TranslationEvent
}

func newRecordingSender() *recordingSender {
	return &recordingSender{events: make(map[string][]models.TranslationEvent)}
}

func (s *recordingSender) SendTranslation(recipientID string, ev models.TranslationEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[recipientID] = append(s.events[recipientID], ev)
}

func (s *recordingSender) received(id string) []models.TranslationEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events[id]
}

func (s *recordingSender) single(t *testing.T, id string) models.TranslationEvent {
	t.Helper()
	evs := s.received(id)
	if len(evs) != 1 {
		t.Fatalf("recipient %s received %d events, want 1", id, len(evs))
	}
	return evs[0]
}

// fourMemberRoom sets up A(en, sender), B(es), C(fr), D(es).
func fourMemberRoom(t *testing.T) *room.Store {
	t.Helper()
	store := room.NewStore()
	for _, m := range []struct{ id, name, lang string }{
		{"a", "alice", "en"},
		{"b", "bob", "es"},
		{"c", "carol", "fr"},
		{"d", "dave", "es"},
	} {
		if _, err := store.Join(m.id, m.name, m.lang); err != nil {
			t.Fatalf("Join %s failed: %v", m.id, err)
		}
	}
	return store
}

func newTestRelay(store *room.Store, translator translate.Translator, sender Sender) *Relay {
	return New(store, translator, sender, "en", time.Second, zap.NewNop().Sugar())
}

func TestDispatchFinalFanOut(t *testing.T) {
	t.Parallel()

	store := fourMemberRoom(t)
	translator := newCountingTranslator()
	sender := newRecordingSender()
	r := newTestRelay(store, translator, sender)

	r.Dispatch(context.Background(), models.SpeechEvent{
		ID: "ev1", SenderID: "a", Text: "hello", IsFinal: true,
	})

	// one translation call per distinct non-source language: es, fr
	if got := translator.callCount(); got != 2 {
		t.Errorf("expected 2 translation calls, got %d (%v)", got, translator.calls)
	}

	evB := sender.single(t, "b")
	evD := sender.single(t, "d")
	for _, ev := range []models.TranslationEvent{evB, evD} {
		if ev.TranslatedText != "hola" {
			t.Errorf("expected Spanish translation 'hola', got %q", ev.TranslatedText)
		}
	}
	evC := sender.single(t, "c")
	if evC.TranslatedText != "bonjour" {
		t.Errorf("expected French translation 'bonjour', got %q", evC.TranslatedText)
	}
	if evC.SenderName != "alice" || evC.OriginalText != "hello" || !evC.IsFinal {
		t.Errorf("unexpected event fields: %+v", evC)
	}
	if evC.TargetLanguage != "fr" || evC.SourceLanguage != "en" {
		t.Errorf("unexpected language fields: %+v", evC)
	}

	// the sender never hears their own speech back
	if evs := sender.received("a"); len(evs) != 0 {
		t.Errorf("sender received %d events, want 0", len(evs))
	}
}

func TestDispatchInterimSkipsTranslation(t *testing.T) {
	t.Parallel()

	store := fourMemberRoom(t)
	translator := newCountingTranslator()
	sender := newRecordingSender()
	r := newTestRelay(store, translator, sender)

	r.Dispatch(context.Background(), models.SpeechEvent{
		ID: "ev1", SenderID: "a", Text: "he", IsFinal: false,
	})

	if got := translator.callCount(); got != 0 {
		t.Errorf("interim events must not trigger translation, got %d calls", got)
	}
	for _, id := range []string{"b", "c", "d"} {
		ev := sender.single(t, id)
		if ev.TranslatedText != "he" || ev.IsFinal {
			t.Errorf("recipient %s got %+v, want verbatim interim text", id, ev)
		}
	}
	if evs := sender.received("a"); len(evs) != 0 {
		t.Errorf("sender received %d interim events, want 0", len(evs))
	}
}

func TestDispatchUnknownSenderDropped(t *testing.T) {
	t.Parallel()

	store := fourMemberRoom(t)
	translator := newCountingTranslator()
	sender := newRecordingSender()
	r := newTestRelay(store, translator, sender)

	r.Dispatch(context.Background(), models.SpeechEvent{
		ID: "ev1", SenderID: "ghost", Text: "hello", IsFinal: true,
	})

	if got := translator.callCount(); got != 0 {
		t.Errorf("expected no translation calls, got %d", got)
	}
	for _, id := range []string{"a", "b", "c", "d"} {
		if evs := sender.received(id); len(evs) != 0 {
			t.Errorf("recipient %s received %d events, want 0", id, len(evs))
		}
	}
}

func TestDispatchSelfLanguageShortcut(t *testing.T) {
	t.Parallel()

	store := room.NewStore()
	store.Join("a", "alice", "en")
	store.Join("e", "erin", "en") // same as source: no translation needed
	translator := newCountingTranslator()
	sender := newRecordingSender()
	r := newTestRelay(store, translator, sender)

	r.Dispatch(context.Background(), models.SpeechEvent{
		ID: "ev1", SenderID: "a", Text: "hello", IsFinal: true,
	})

	if got := translator.callCount(); got != 0 {
		t.Errorf("source-language recipients must not trigger calls, got %d", got)
	}
	ev := sender.single(t, "e")
	if ev.TranslatedText != "hello" {
		t.Errorf("expected original text, got %q", ev.TranslatedText)
	}
}

func TestDispatchGracefulDegradation(t *testing.T) {
	t.Parallel()

	store := fourMemberRoom(t)
	translator := &failingTranslator{inner: translate.NewStubTranslator(nil), failLang: "fr"}
	sender := newRecordingSender()
	r := newTestRelay(store, translator, sender)

	r.Dispatch(context.Background(), models.SpeechEvent{
		ID: "ev1", SenderID: "a", Text: "hello", IsFinal: true,
	})

	// the failed language falls back to the original text
	evC := sender.single(t, "c")
	if evC.TranslatedText != "hello" {
		t.Errorf("expected fallback to original text, got %q", evC.TranslatedText)
	}
	// other languages are unaffected
	evB := sender.single(t, "b")
	if evB.TranslatedText != "hola" {
		t.Errorf("expected 'hola', got %q", evB.TranslatedText)
	}
}

func TestDispatchTimeoutIsPerLanguageFailure(t *testing.T) {
	t.Parallel()

	store := room.NewStore()
	store.Join("a", "alice", "en")
	store.Join("b", "bob", "es")

	slow := translate.NewStubTranslator(&translate.StubTranslatorConfig{
		ProcessingDelay: 500 * time.Millisecond,
	})
	sender := newRecordingSender()
	r := New(store, slow, sender, "en", 20*time.Millisecond, zap.NewNop().Sugar())

	r.Dispatch(context.Background(), models.SpeechEvent{
		ID: "ev1", SenderID: "a", Text: "hello", IsFinal: true,
	})

	ev := sender.single(t, "b")
	if ev.TranslatedText != "hello" {
		t.Errorf("timed-out translation should fall back to original text, got %q", ev.TranslatedText)
	}
}

func TestDispatchPerSenderOrdering(t *testing.T) {
	t.Parallel()

	store := room.NewStore()
	store.Join("a", "alice", "en")
	store.Join("b", "bob", "es")
	translator := newCountingTranslator()
	sender := newRecordingSender()
	r := newTestRelay(store, translator, sender)

	texts := []string{"one", "two", "three", "four"}
	for _, text := range texts {
		r.Dispatch(context.Background(), models.SpeechEvent{
			ID: text, SenderID: "a", Text: text, IsFinal: true,
		})
	}

	evs := sender.received("b")
	if len(evs) != len(texts) {
		t.Fatalf("recipient got %d events, want %d", len(evs), len(texts))
	}
	for i, text := range texts {
		if evs[i].OriginalText != text {
			t.Errorf("event %d out of order: got %q, want %q", i, evs[i].OriginalText, text)
		}
	}
}
