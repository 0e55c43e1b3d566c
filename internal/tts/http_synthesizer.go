package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPSynthesizer posts {text, language} to an external endpoint and returns
// the audio body as-is.
type HTTPSynthesizer struct {
	url    string
	client *http.Client
}

// NewHTTPSynthesizer creates a synthesizer against the given endpoint. A nil
// client falls back to http.DefaultClient.
func NewHTTPSynthesizer(url string, client *http.Client) *HTTPSynthesizer {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSynthesizer{url: url, client: client}
}

type synthesizeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Synthesize performs one synthesis call.
func (s *HTTPSynthesizer) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	body, err := json.Marshal(synthesizeRequest{Text: text, Language: language})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
