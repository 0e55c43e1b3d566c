package handlers

import (
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/models"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/stt"
	"go.uber.org/zap"
)

// sendBufferSize bounds the per-client outbound queue. A client that cannot
// drain this many messages is considered dead.
const sendBufferSize = 64

// Client is one websocket connection. Connection state machine:
// connected (anonymous) -> joined (member) -> closed.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan models.ServerMessage

	joined    atomic.Bool
	closeOnce sync.Once

	// join defaults taken from the connect URL, used when the join payload
	// omits them
	defaultName string
	defaultLang string

	sttMu      sync.Mutex
	sttSession stt.Session

	logger *zap.SugaredLogger
}

func newClient(id string, conn *websocket.Conn, defaultName, defaultLang string, logger *zap.SugaredLogger) *Client {
	return &Client{
		id:          id,
		conn:        conn,
		send:        make(chan models.ServerMessage, sendBufferSize),
		defaultName: defaultName,
		defaultLang: defaultLang,
		logger:      logger,
	}
}

// enqueue queues a message for the write pump without blocking. A full
// buffer means the client stopped draining; the connection is closed so the
// read loop tears it down, rather than stalling the room.
func (c *Client) enqueue(msg models.ServerMessage) {
	select {
	case c.send <- msg:
	default:
		c.logger.Warnw("send buffer full, closing slow client", "userId", c.id)
		c.conn.Close()
	}
}

// writePump is the single writer for this connection. It drains the send
// channel until it is closed at teardown, which keeps delivery order equal
// to enqueue order.
func (c *Client) writePump() {
	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			c.logger.Debugw("write failed", "userId", c.id, "error", err)
			c.conn.Close()
			// keep draining so enqueuers never block on a dead client
		}
	}
	c.conn.Close()
}

// closeSTT shuts down the recognition session, if one was opened.
func (c *Client) closeSTT() {
	c.sttMu.Lock()
	session := c.sttSession
	c.sttSession = nil
	c.sttMu.Unlock()

	if session != nil {
		if err := session.Close(); err != nil {
			c.logger.Debugw("stt session close failed", "userId", c.id, "error", err)
		}
	}
}
