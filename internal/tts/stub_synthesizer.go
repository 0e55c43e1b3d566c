package tts

import "context"

// StubSynthesizer returns deterministic pseudo-audio. Used in tests and as
// the dev-mode default when no external endpoint is configured.
type StubSynthesizer struct{}

// Synthesize returns a marker payload identifying the text and language.
func (StubSynthesizer) Synthesize(_ context.Context, text, language string) ([]byte, error) {
	return []byte("audio:" + language + ":" + text), nil
}
