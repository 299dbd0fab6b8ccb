// Package domain defines the core domain models for the chat gateway.
package domain

import (
	"encoding/json"
	"time"
)

// Role identifies who produced a conversation turn in the UI.
type Role string

const (
	RoleHuman Role = "human"
	RoleBot   Role = "bot"
)

// Wire message types accepted by the agent endpoint.
const (
	MessageTypeHuman = "human"
	MessageTypeAI    = "ai"
)

// ConversationMessage is a single turn as produced by the UI layer,
// newest-first. For bot turns Text holds the answer; a bot turn without
// answer text is an unanswered placeholder and is never transmitted.
type ConversationMessage struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// OutboundMessage is the normalized projection of a ConversationMessage,
// ordered oldest-to-newest on the wire.
type OutboundMessage struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

// ChatRequest is the exact payload for the agent's streamQuery endpoint.
// The double "input" nesting is fixed by the endpoint contract and must
// not be flattened.
type ChatRequest struct {
	Input ChatRequestInput `json:"input"`
}

// ChatRequestInput is the outer input wrapper.
type ChatRequestInput struct {
	Input ChatInput `json:"input"`
}

// ChatInput carries the conversation and session identity.
type ChatInput struct {
	Messages  []OutboundMessage `json:"messages"`
	SessionID string            `json:"session_id"`
	UserID    string            `json:"user_id,omitempty"`
}

// Session represents a conversation session.
type Session struct {
	SessionID string          `json:"session_id"`
	UserID    string          `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}

// Message is a persisted message in a session.
type Message struct {
	MessageID string          `json:"message_id"`
	SessionID string          `json:"session_id"`
	RunID     string          `json:"run_id,omitempty"`
	Role      string          `json:"role"` // human, ai
	Content   string          `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}

// Feedback is a user rating of a completed run.
type Feedback struct {
	Score    float64   `json:"score"`
	Text     string    `json:"text,omitempty"`
	RunID    string    `json:"run_id"`
	LogType  string    `json:"log_type,omitempty"` // always "feedback"
	LoggedAt time.Time `json:"logged_at,omitempty"`
}

// FeedbackLogType is the fixed log_type value for feedback records.
const FeedbackLogType = "feedback"

// ChatInvocation is one /chats call from the frontend: the visible
// conversation (newest-first) plus optional session identity.
type ChatInvocation struct {
	SessionID string                `json:"session_id,omitempty"`
	UserID    string                `json:"user_id,omitempty"`
	Messages  []ConversationMessage `json:"messages"`
}

// ChatResult summarizes a completed streaming turn.
type ChatResult struct {
	SessionID string `json:"session_id"`
	RunID     string `json:"run_id,omitempty"`
	Text      string `json:"text"`
}
