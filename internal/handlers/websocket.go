package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/idgen"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/models"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/relay"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/stt"
	"go.uber.org/zap"
)

// WebSocketHandler is the session gateway: it binds each websocket
// connection to a membership entry and routes inbound events into the relay.
type WebSocketHandler struct {
	hub        *Hub
	relay      *relay.Relay
	sttService stt.Service // nil when no recognition endpoint is configured
	sourceLang string
	upgrader   websocket.Upgrader
	logger     *zap.SugaredLogger
}

// NewWebSocketHandler creates the gateway handler. sttService may be nil;
// binary audio frames are then dropped and clients must send speech events
// as text.
func NewWebSocketHandler(hub *Hub, r *relay.Relay, sttService stt.Service, sourceLang string, logger *zap.SugaredLogger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:        hub,
		relay:      r,
		sttService: sttService,
		sourceLang: sourceLang,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// origin filtering is handled by the CORS middleware
				return true
			},
		},
		logger: logger,
	}
}

// HandleWebSocket upgrades the connection and runs its read loop. Flow:
// 1. upgrade and register the client (connected, anonymous)
// 2. process join / update-language / speech events
// 3. on disconnect, tear down exactly once: leave the room, notify the rest
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnw("websocket upgrade failed", "error", err)
		return
	}

	client := newClient(
		idgen.NewParticipantID(),
		conn,
		r.URL.Query().Get("name"),
		r.URL.Query().Get("targetLanguage"),
		h.logger,
	)
	h.hub.register(client)
	go client.writePump()
	defer h.teardown(client)

	h.logger.Infow("websocket connected", "userId", client.id)
	h.readLoop(r.Context(), client)
}

// teardown runs exactly once per connection, no matter how many close
// signals race in.
func (h *WebSocketHandler) teardown(client *Client) {
	client.closeOnce.Do(func() {
		client.closeSTT()
		h.hub.remove(client)
		h.logger.Infow("websocket disconnected", "userId", client.id)
	})
}

func (h *WebSocketHandler) readLoop(ctx context.Context, client *Client) {
	for {
		msgType, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				h.logger.Warnw("websocket read error", "userId", client.id, "error", err)
			}
			return
		}

		if msgType == websocket.BinaryMessage {
			h.handleAudio(ctx, client, data)
			continue
		}

		var msg models.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.logger.Debugw("malformed message dropped", "userId", client.id, "error", err)
			continue
		}

		switch msg.Type {
		case models.TypeJoin:
			h.handleJoin(client, msg.Payload)
		case models.TypeUpdateLanguage:
			h.handleUpdateLanguage(client, msg.Payload)
		case models.TypeSpeech:
			h.handleSpeech(ctx, client, msg.Payload)
		case models.TypePing:
			client.enqueue(models.ServerMessage{Type: models.TypePong})
		default:
			h.logger.Debugw("unknown message type dropped", "userId", client.id, "type", msg.Type)
		}
	}
}

// handleJoin transitions the connection to joined, creating or replacing its
// membership.
func (h *WebSocketHandler) handleJoin(client *Client, payload json.RawMessage) {
	var p models.JoinPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			h.logger.Debugw("malformed join payload dropped", "userId", client.id, "error", err)
			return
		}
	}
	if p.Name == "" {
		p.Name = client.defaultName
	}
	if p.TargetLanguage == "" {
		p.TargetLanguage = client.defaultLang
	}
	if p.TargetLanguage == "" {
		p.TargetLanguage = h.sourceLang
	}

	member, err := h.hub.join(client, p.Name, p.TargetLanguage)
	if err != nil {
		h.logger.Warnw("join failed", "userId", client.id, "error", err)
		return
	}
	client.joined.Store(true)
	h.logger.Infow("user joined", "userId", member.ID, "name", member.Name, "targetLanguage", member.TargetLanguage)
}

// handleUpdateLanguage is only accepted while joined; otherwise ignored.
func (h *WebSocketHandler) handleUpdateLanguage(client *Client, payload json.RawMessage) {
	if !client.joined.Load() {
		h.logger.Debugw("update-language before join ignored", "userId", client.id)
		return
	}
	var p models.UpdateLanguagePayload
	if err := json.Unmarshal(payload, &p); err != nil || p.TargetLanguage == "" {
		h.logger.Debugw("malformed update-language payload dropped", "userId", client.id)
		return
	}
	h.hub.updateLanguage(client, p.TargetLanguage)
	h.logger.Infow("user changed language", "userId", client.id, "targetLanguage", p.TargetLanguage)
}

// handleSpeech forwards one speech event into the relay. Dispatch runs
// synchronously on this connection's read loop, so a sender's events reach
// the relay in the order they were spoken.
func (h *WebSocketHandler) handleSpeech(ctx context.Context, client *Client, payload json.RawMessage) {
	if !client.joined.Load() {
		h.logger.Debugw("speech before join ignored", "userId", client.id)
		return
	}
	var p models.SpeechPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		h.logger.Debugw("malformed speech payload dropped", "userId", client.id, "error", err)
		return
	}
	if p.OriginalText == "" {
		return
	}

	h.relay.Dispatch(ctx, models.SpeechEvent{
		ID:       idgen.NewEventID(),
		SenderID: client.id,
		Text:     p.OriginalText,
		IsFinal:  p.IsFinal,
	})
}

// handleAudio feeds binary frames into the connection's recognition session,
// opening one on first use. A recognition failure stops speech events for
// this connection only; the member stays joined until the socket closes.
func (h *WebSocketHandler) handleAudio(ctx context.Context, client *Client, data []byte) {
	if h.sttService == nil {
		h.logger.Debugw("audio frame dropped, no stt service configured", "userId", client.id)
		return
	}
	if !client.joined.Load() {
		return
	}

	client.sttMu.Lock()
	session := client.sttSession
	if session == nil {
		var err error
		session, err = h.sttService.Start(ctx, h.sourceLang)
		if err != nil {
			client.sttMu.Unlock()
			h.logger.Warnw("stt session start failed", "userId", client.id, "error", err)
			return
		}
		client.sttSession = session
		go h.pumpTranscripts(ctx, client, session)
	}
	client.sttMu.Unlock()

	if err := session.SendAudio(data); err != nil {
		h.logger.Warnw("stt audio forward failed", "userId", client.id, "error", err)
		client.closeSTT()
	}
}

// pumpTranscripts turns recognition results into speech events until the
// session ends.
func (h *WebSocketHandler) pumpTranscripts(ctx context.Context, client *Client, session stt.Session) {
	for res := range session.Results() {
		if !client.joined.Load() {
			continue
		}
		h.relay.Dispatch(ctx, models.SpeechEvent{
			ID:       idgen.NewEventID(),
			SenderID: client.id,
			Text:     res.Text,
			IsFinal:  res.IsFinal,
		})
	}
}
