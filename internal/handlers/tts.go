package handlers

import (
	"net/http"

	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/tts"
	"go.uber.org/zap"
)

// TTSHandler proxies text-to-speech synthesis for clients, fronted by a
// bounded cache so a phrase spoken repeatedly is synthesized once.
type TTSHandler struct {
	synthesizer tts.Synthesizer
	cache       *tts.AudioCache
	logger      *zap.SugaredLogger
}

// NewTTSHandler creates the synthesis handler.
func NewTTSHandler(synthesizer tts.Synthesizer, cache *tts.AudioCache, logger *zap.SugaredLogger) *TTSHandler {
	return &TTSHandler{synthesizer: synthesizer, cache: cache, logger: logger}
}

type ttsRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Synthesize converts {text, language} to an audio clip.
func (h *TTSHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req ttsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Text = normalizeText(req.Text)
	if req.Text == "" || req.Language == "" {
		respondError(w, http.StatusBadRequest, "text and language required")
		return
	}

	audio, ok := h.cache.Get(req.Text, req.Language)
	if !ok {
		var err error
		audio, err = h.synthesizer.Synthesize(r.Context(), req.Text, req.Language)
		if err != nil {
			h.logger.Warnw("synthesis failed", "language", req.Language, "error", err)
			respondError(w, http.StatusBadGateway, "synthesis failed")
			return
		}
		h.cache.Put(req.Text, req.Language, audio)
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		h.logger.Debugw("audio write failed", "error", err)
	}
}
