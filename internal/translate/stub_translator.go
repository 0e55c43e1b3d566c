package translate

import (
	"context"
	"time"
)

// StubTranslatorConfig configures the stub translator behavior.
type StubTranslatorConfig struct {
	// ProcessingDelay simulates translation processing time.
	ProcessingDelay time.Duration
	// Dictionary maps target language -> source text -> translated text.
	// Texts not in the dictionary get a "[lang] " prefix instead.
	Dictionary map[string]map[string]string
}

// DefaultStubTranslatorConfig returns defaults covering a few common phrases.
func DefaultStubTranslatorConfig() *StubTranslatorConfig {
	return &StubTranslatorConfig{
		Dictionary: map[string]map[string]string{
			"es": {
				"hello":        "hola",
				"good morning": "buenos días",
				"thank you":    "gracias",
			},
			"fr": {
				"hello":        "bonjour",
				"good morning": "bonjour",
				"thank you":    "merci",
			},
			"de": {
				"hello":        "hallo",
				"good morning": "guten Morgen",
				"thank you":    "danke",
			},
		},
	}
}

// StubTranslator is a deterministic in-process translator. It backs tests and
// serves as the dev-mode default when no external endpoint is configured.
type StubTranslator struct {
	config *StubTranslatorConfig
}

// NewStubTranslator creates a stub translator; a nil config selects defaults.
func NewStubTranslator(config *StubTranslatorConfig) *StubTranslator {
	if config == nil {
		config = DefaultStubTranslatorConfig()
	}
	return &StubTranslator{config: config}
}

// Translate returns the dictionary translation, or the text prefixed with the
// target language code when the phrase is unknown.
func (s *StubTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if s.config.ProcessingDelay > 0 {
		select {
		case <-time.After(s.config.ProcessingDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if langDict, ok := s.config.Dictionary[targetLang]; ok {
		if translated, ok := langDict[text]; ok {
			return translated, nil
		}
	}
	return "[" + targetLang + "] " + text, nil
}
