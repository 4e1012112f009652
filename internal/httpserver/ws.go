// internal/httpserver/ws.go
//
// WebSocket transport for a single session: one connection plays the
// caller's rounds frame by frame.
//
// Client → server frames:
//   {"type":"submit","payload":{"word":"..."}}
//   {"type":"new_round","payload":{"mode":"random"|"daily"}}
//   {"type":"ping"}
//
// Server → client frames: connected, result, round_started, error, pong.
// Frames from one connection are handled strictly in order by the read loop.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Comtister/WordScramble/internal/game"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait).
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	sendBufferSize = 16
)

// MessageType identifies a websocket frame.
type MessageType string

// Client → server.
const (
	MsgSubmit   MessageType = "submit"
	MsgNewRound MessageType = "new_round"
	MsgPing     MessageType = "ping"
)

// Server → client.
const (
	MsgConnected    MessageType = "connected"
	MsgResult       MessageType = "result"
	MsgRoundStarted MessageType = "round_started"
	MsgError        MessageType = "error"
	MsgPong         MessageType = "pong"
)

// Error codes carried in error frames.
const (
	ErrCodeInvalidMessage = "INVALID_MESSAGE"
	ErrCodeNoRound        = "NO_ROUND"
	ErrCodeWordSource     = "WORD_SOURCE_UNAVAILABLE"
)

type clientMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type serverMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type roundStartedPayload struct {
	Mode  string        `json:"mode"`
	Round game.Snapshot `json:"round"`
}

func newServerMessage(t MessageType, payload interface{}) *serverMessage {
	return &serverMessage{
		Type:      t,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// checkOrigin accepts same-origin/non-browser clients and the configured
// client origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || origin == s.deps.ClientOrigin
}

// handleWS upgrades the request and serves the caller's session over it.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("sessionId", sess.ID).Msg("websocket upgrade failed")
		return
	}
	c := &wsClient{
		srv:    s,
		conn:   conn,
		sess:   sess,
		send:   make(chan []byte, sendBufferSize),
		closed: make(chan struct{}),
	}
	log.Info().Str("sessionId", sess.ID).Msg("websocket connected")
	go c.writePump()
	c.readPump()
	log.Info().Str("sessionId", sess.ID).Msg("websocket disconnected")
}

type wsClient struct {
	srv    *Server
	conn   *websocket.Conn
	sess   *game.Session
	send   chan []byte   // written only by readPump; closed when it returns
	closed chan struct{} // closed when writePump returns
}

// readPump handles frames one at a time until the peer goes away.
func (c *wsClient) readPump() {
	defer close(c.send)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	c.queue(newServerMessage(MsgConnected, c.sess.Snapshot()))

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("sessionId", c.sess.ID).Msg("websocket read")
			}
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.queueError(ErrCodeInvalidMessage, "malformed frame")
			continue
		}
		c.handle(msg)
	}
}

func (c *wsClient) handle(msg clientMessage) {
	switch msg.Type {
	case MsgSubmit:
		var p submitReq
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			c.queueError(ErrCodeInvalidMessage, "submit needs a word")
			return
		}
		res, err := c.srv.submit(c.sess, p.Word)
		if err != nil {
			c.queueError(ErrCodeNoRound, "start a round first")
			return
		}
		c.queue(newServerMessage(MsgResult, res))

	case MsgNewRound:
		var p newRoundReq
		if len(msg.Payload) > 0 {
			if err := json.Unmarshal(msg.Payload, &p); err != nil {
				c.queueError(ErrCodeInvalidMessage, "bad new_round payload")
				return
			}
		}
		mode, ok := c.srv.normalizeMode(p.Mode)
		if !ok {
			c.queueError(ErrCodeInvalidMessage, "unknown mode")
			return
		}
		if _, err := c.srv.startRound(c.sess, mode); err != nil {
			log.Error().Err(err).Str("sessionId", c.sess.ID).Msg("start round")
			c.queueError(ErrCodeWordSource, "no root word available")
			return
		}
		c.queue(newServerMessage(MsgRoundStarted, roundStartedPayload{Mode: mode, Round: c.sess.Snapshot()}))

	case MsgPing:
		c.queue(newServerMessage(MsgPong, nil))

	default:
		c.queueError(ErrCodeInvalidMessage, "unknown message type: "+string(msg.Type))
	}
}

func (c *wsClient) queueError(code, message string) {
	c.queue(newServerMessage(MsgError, errorPayload{Code: code, Message: message}))
}

// queue hands a frame to the writer; it gives up if the writer has exited.
func (c *wsClient) queue(msg *serverMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("marshal websocket frame")
		return
	}
	select {
	case c.send <- data:
	case <-c.closed:
	}
}

// writePump writes queued frames and keeps the connection alive with pings.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.closed)
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
