package stt

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WebsocketRecognizer speaks the streaming transcription protocol: binary
// frames carry audio upstream, JSON frames carry results downstream.
type WebsocketRecognizer struct {
	endpoint string
	logger   *zap.SugaredLogger
}

// NewWebsocketRecognizer creates a recognizer against the given ws:// or
// wss:// endpoint.
func NewWebsocketRecognizer(endpoint string, logger *zap.SugaredLogger) *WebsocketRecognizer {
	return &WebsocketRecognizer{endpoint: endpoint, logger: logger}
}

type resultFrame struct {
	Text    string `json:"text"`
	IsFinal bool   `json:"is_final"`
}

type wsSession struct {
	conn      *websocket.Conn
	results   chan Result
	writeMu   sync.Mutex
	closeOnce sync.Once
	logger    *zap.SugaredLogger
}

// Start dials the recognition endpoint with the language hint and begins
// reading results.
func (r *WebsocketRecognizer) Start(ctx context.Context, language string) (Session, error) {
	u, err := url.Parse(r.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid stt endpoint: %w", err)
	}
	q := u.Query()
	q.Set("language", language)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial stt service: %w", err)
	}

	s := &wsSession{
		conn:    conn,
		results: make(chan Result, 16),
		logger:  r.logger,
	}
	go s.readLoop()
	return s, nil
}

func (s *wsSession) readLoop() {
	defer close(s.results)
	for {
		var frame resultFrame
		if err := s.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warnw("stt session closed unexpectedly", "error", err)
			}
			return
		}
		if frame.Text == "" {
			continue
		}
		s.results <- Result{Text: frame.Text, IsFinal: frame.IsFinal}
	}
}

// SendAudio forwards one audio chunk as a binary frame.
func (s *wsSession) SendAudio(data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}

// Results yields transcript results until the session ends.
func (s *wsSession) Results() <-chan Result {
	return s.results
}

// Close shuts the session down. Idempotent.
func (s *wsSession) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.conn.Close()
	})
	return err
}
