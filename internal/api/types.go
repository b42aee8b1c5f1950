package api

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who wrote a chat message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ResponseMode asks the backend for free prose or titled sections
type ResponseMode string

const (
	ModeFreeform   ResponseMode = "freeform"
	ModeStructured ResponseMode = "structured"
)

// Valid reports whether m is a known response mode
func (m ResponseMode) Valid() bool {
	return m == ModeFreeform || m == ModeStructured
}

// Toggle returns the other response mode
func (m ResponseMode) Toggle() ResponseMode {
	if m == ModeStructured {
		return ModeFreeform
	}
	return ModeStructured
}

// Message is one entry in a conversation
type Message struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Role      Role   `json:"role"`
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// NewMessage creates a message stamped with a fresh ID and the current time
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Content:   content,
		Role:      role,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Time returns the message timestamp
func (m Message) Time() time.Time {
	return time.UnixMilli(m.Timestamp)
}

// ChatMessage is the wire form of a message in a chat request
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest carries the whole conversation so far
type ChatRequest struct {
	Messages     []ChatMessage `json:"messages"`
	ResponseMode ResponseMode  `json:"response_mode"`
	Stream       bool          `json:"stream"`
}

// NewChatRequest builds a non-streaming request from a conversation
func NewChatRequest(history []Message, mode ResponseMode) *ChatRequest {
	msgs := make([]ChatMessage, 0, len(history))
	for _, m := range history {
		msgs = append(msgs, ChatMessage{Role: m.Role, Content: m.Content})
	}
	return &ChatRequest{
		Messages:     msgs,
		ResponseMode: mode,
		Stream:       false,
	}
}

// ChatResponse is the backend's reply with its source citations
type ChatResponse struct {
	Message Message  `json:"message"`
	Sources []string `json:"sources"`
}

// SummaryRequest asks for an encyclopedia entry
type SummaryRequest struct {
	Type         string       `json:"type"`
	Target       string       `json:"target"`
	ResponseMode ResponseMode `json:"response_mode"`
}

// HealthResponse reports the backend version
type HealthResponse struct {
	Version string `json:"version"`
}

// StatusResponse is returned by maintenance endpoints
type StatusResponse struct {
	Status string `json:"status"`
}
