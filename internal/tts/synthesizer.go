// Package tts converts translated text to audio via an external
// text-to-speech service. It is purely a downstream consumer of translation
// events; nothing here affects relay correctness.
package tts

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the text-to-speech service could not produce audio.
var ErrUnavailable = errors.New("tts service unavailable")

// Synthesizer turns text into a playable audio clip.
type Synthesizer interface {
	// Synthesize returns encoded audio for the text spoken in the given
	// language. Safe for concurrent use.
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}
