package translate

import (
	"context"

	"go.uber.org/zap"
)

// CachedTranslator consults a Cache before delegating to the wrapped
// Translator. Cache failures are logged and ignored; the cache can only
// save calls, never fail one.
type CachedTranslator struct {
	inner  Translator
	cache  Cache
	logger *zap.SugaredLogger
}

// NewCachedTranslator wraps inner with the given cache.
func NewCachedTranslator(inner Translator, cache Cache, logger *zap.SugaredLogger) *CachedTranslator {
	return &CachedTranslator{inner: inner, cache: cache, logger: logger}
}

// Translate returns the cached translation when available, otherwise calls
// the wrapped translator and stores the result.
func (t *CachedTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if cached, ok, err := t.cache.Get(ctx, text, sourceLang, targetLang); err != nil {
		t.logger.Warnw("translation cache read failed", "target", targetLang, "error", err)
	} else if ok {
		return cached, nil
	}

	translated, err := t.inner.Translate(ctx, text, sourceLang, targetLang)
	if err != nil {
		return "", err
	}

	if err := t.cache.Set(ctx, text, sourceLang, targetLang, translated); err != nil {
		t.logger.Warnw("translation cache write failed", "target", targetLang, "error", err)
	}
	return translated, nil
}
