// Package relay fans one speech event out to every other room member in
// their own target language. It issues at most one translation call per
// distinct target language and degrades to the original text when a
// translation fails.
package relay

import (
	"context"
	"sync"
	"time"

	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/models"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/room"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/translate"
	"go.uber.org/zap"
)

// Sender delivers a personalized event to exactly one recipient. The gateway
// hub implements it; delivery order per recipient must follow call order.
type Sender interface {
	SendTranslation(recipientID string, ev models.TranslationEvent)
}

// Relay is the fan-out core. Dispatch must be called in order per sender
// (the gateway calls it synchronously from each connection's read loop),
// which gives per-(sender,recipient) ordering for free.
type Relay struct {
	store      *room.Store
	translator translate.Translator
	sender     Sender
	sourceLang string
	timeout    time.Duration
	logger     *zap.SugaredLogger
}

// New creates a relay. timeout bounds each per-language translation call.
func New(store *room.Store, translator translate.Translator, sender Sender, sourceLang string, timeout time.Duration, logger *zap.SugaredLogger) *Relay {
	return &Relay{
		store:      store,
		translator: translator,
		sender:     sender,
		sourceLang: sourceLang,
		timeout:    timeout,
		logger:     logger,
	}
}

// Dispatch transforms one inbound speech event into per-recipient
// translation events. Speech from an id that is not a current member is
// dropped: invalid input, not an error.
func (r *Relay) Dispatch(ctx context.Context, ev models.SpeechEvent) {
	sender, ok := r.store.Get(ev.SenderID)
	if !ok {
		r.logger.Debugw("dropping speech from unknown sender", "senderId", ev.SenderID)
		return
	}

	if !ev.IsFinal {
		r.fanOut(ev, sender, nil)
		return
	}

	langs := r.store.DistinctTargetLanguages(ev.SenderID, r.sourceLang)
	translations := r.translateAll(ctx, ev.Text, langs)
	r.fanOut(ev, sender, translations)
}

// translateAll runs one translation call per distinct language, in parallel,
// each under its own deadline. A failed language is simply absent from the
// returned map; failures never affect other languages.
func (r *Relay) translateAll(ctx context.Context, text string, langs []string) map[string]string {
	if len(langs) == 0 {
		return nil
	}

	var (
		mu  sync.Mutex
		out = make(map[string]string, len(langs))
		wg  sync.WaitGroup
	)
	for _, lang := range langs {
		wg.Add(1)
		go func(lang string) {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, r.timeout)
			defer cancel()

			translated, err := r.translator.Translate(callCtx, text, r.sourceLang, lang)
			if err != nil {
				r.logger.Warnw("translation failed, falling back to original text",
					"target", lang, "error", err)
				return
			}
			mu.Lock()
			out[lang] = translated
			mu.Unlock()
		}(lang)
	}
	wg.Wait()
	return out
}

// fanOut emits exactly one translation event per member other than the
// sender. For interim events (translations == nil) and for members whose
// target equals the source language the original text is passed through;
// a missing translation falls back to the original text as well.
func (r *Relay) fanOut(ev models.SpeechEvent, sender models.Participant, translations map[string]string) {
	for _, member := range r.store.Snapshot() {
		if member.ID == sender.ID {
			continue
		}

		text := ev.Text
		if ev.IsFinal && member.TargetLanguage != r.sourceLang {
			if translated, ok := translations[member.TargetLanguage]; ok {
				text = translated
			}
		}

		r.sender.SendTranslation(member.ID, models.TranslationEvent{
			EventID:        ev.ID,
			SenderID:       sender.ID,
			SenderName:     sender.Name,
			OriginalText:   ev.Text,
			TranslatedText: text,
			SourceLanguage: r.sourceLang,
			TargetLanguage: member.TargetLanguage,
			IsFinal:        ev.IsFinal,
		})
	}
}
