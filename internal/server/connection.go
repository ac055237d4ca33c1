package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/pokertexter/internal/texter"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

// ErrConnectionClosed is returned when sending on a closed connection.
var ErrConnectionClosed = errors.New("connection closed")

// Connection is one WebSocket client.
type Connection struct {
	conn        *websocket.Conn
	responder   *texter.Responder
	send        chan *Message
	logger      *log.Logger
	clock       quartz.Clock
	idleTimeout time.Duration
	ctx         context.Context
	cancel      context.CancelFunc
	closeOnce   sync.Once
}

// NewConnection wraps an upgraded connection.
func NewConnection(conn *websocket.Conn, responder *texter.Responder, logger *log.Logger, clock quartz.Clock, idleTimeout time.Duration) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	if idleTimeout <= 0 {
		idleTimeout = 60 * time.Second
	}

	return &Connection{
		conn:        conn,
		responder:   responder,
		send:        make(chan *Message, 64),
		logger:      logger.WithPrefix("conn"),
		clock:       clock,
		idleTimeout: idleTimeout,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start begins handling the connection.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Done is closed once the connection has shut down.
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close shuts the connection down. It is safe to call more than once.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client.
func (c *Connection) SendMessage(msg *Message) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close() // Ignore close errors
		return ErrConnectionClosed
	}
}

// readPump handles incoming messages. Deadlines are wall-clock because the
// network stack enforces them.
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.idleTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.idleTimeout))
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(c.idleTimeout))
		c.handleMessage(&msg)
	}
}

// writePump serialises writes and keeps the connection alive with pings.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.idleTimeout * 9 / 10)
	defer func() {
		ticker.Stop()
		_ = c.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type, "request_id", msg.RequestID)

	switch msg.Type {
	case MessageTypeQuery:
		var data QueryData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg.RequestID, "invalid_message", "Failed to parse query data")
			return
		}
		c.reply(msg.RequestID, data.Text)

	default:
		c.sendError(msg.RequestID, "unknown_type", "Unknown message type: "+string(msg.Type))
	}
}

func (c *Connection) reply(requestID, text string) {
	data := ReplyData{}
	if texter.IsExamplesRequest(text) {
		data.Text = texter.Examples
	} else {
		ans, err := c.responder.Answer(text)
		var userErr texter.Error
		switch {
		case err == nil:
			data.Text = ans.String()
			data.Answer = &AnswerData{
				Class:     ans.Query.Class.String(),
				Opponents: ans.Query.Opponents,
				Win:       ans.Row.Win,
				Tie:       ans.Row.Tie,
				Gain:      ans.Row.Gain,
			}
		case errors.As(err, &userErr):
			data.Text = userErr.Error()
		default:
			c.logger.Error("Lookup failed", "query", text, "error", err)
			c.sendError(requestID, "lookup_failed", "Lookup failed")
			return
		}
	}
	c.sendMessage(requestID, MessageTypeReply, data)
}

func (c *Connection) sendError(requestID, code, message string) {
	c.sendMessage(requestID, MessageTypeError, ErrorData{Code: code, Message: message})
}

func (c *Connection) sendMessage(requestID string, t MessageType, data any) {
	msg, err := NewMessage(t, data, c.clock.Now())
	if err != nil {
		c.logger.Error("Failed to encode message", "type", t, "error", err)
		return
	}
	msg.RequestID = requestID
	if err := c.SendMessage(msg); err != nil {
		c.logger.Debug("Dropped message", "type", t, "error", err)
	}
}
