package server

import (
	"encoding/json"
	"time"
)

// MessageType identifies a WebSocket message.
type MessageType string

const (
	// Client → Server
	MessageTypeQuery MessageType = "query"

	// Server → Client
	MessageTypeReply MessageType = "reply"
	MessageTypeError MessageType = "error"
)

// Message is the envelope for every WebSocket frame.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a message stamped with now.
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: now,
	}, nil
}

// QueryData is a free-text lookup, the same text an SMS would carry.
type QueryData struct {
	Text string `json:"text"`
}

// ReplyData is the text reply plus, for successful lookups, the row itself.
type ReplyData struct {
	Text   string      `json:"text"`
	Answer *AnswerData `json:"answer,omitempty"`
}

// AnswerData is a looked-up table row.
type AnswerData struct {
	Class     string  `json:"class"`
	Opponents int     `json:"opponents"`
	Win       float64 `json:"win"`
	Tie       float64 `json:"tie"`
	Gain      float64 `json:"gain"`
}

// ErrorData reports a malformed message or a server-side failure.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
