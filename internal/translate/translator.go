// Package translate provides the text translation client used by the relay,
// plus a cache layer that bounds calls to the external service.
package translate

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the external translation service could not be
// reached or returned an unusable response. The relay treats it like any
// other per-language failure.
var ErrUnavailable = errors.New("translation service unavailable")

// Translator converts text between languages. Implementations must be safe
// for concurrent use; the relay issues one call per distinct target language
// in parallel.
type Translator interface {
	// Translate converts text from sourceLang into targetLang. The call is
	// bounded by ctx; a timeout or cancellation is reported as an error.
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}
