package chat

import (
	"strings"
	"time"
)

// Role indicates who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// Conversation represents a chat thread owned by a single user.
type Conversation struct {
	ID        uint      `json:"-"`
	PublicID  string    `json:"id"`
	UserID    uint      `json:"-"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is a single entry in a conversation transcript. Messages are
// append-only; Sequence reflects creation order within the conversation.
type Message struct {
	ID             uint      `json:"-"`
	PublicID       string    `json:"id"`
	ConversationID uint      `json:"-"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	Sequence       int       `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// StreamEventType discriminates the transient events emitted while an
// assistant reply is being generated.
type StreamEventType string

const (
	StreamEventContent StreamEventType = "content"
	StreamEventDone    StreamEventType = "done"
	StreamEventError   StreamEventType = "error"
)

// StreamEvent is one frame of an in-progress assistant reply. A stream is
// zero or more Content events followed by exactly one Done or Error.
type StreamEvent struct {
	Type StreamEventType
	Text string
	Err  string
}

// ContentEvent returns a content fragment event.
func ContentEvent(text string) StreamEvent {
	return StreamEvent{Type: StreamEventContent, Text: text}
}

// DoneEvent returns the successful terminal event.
func DoneEvent() StreamEvent {
	return StreamEvent{Type: StreamEventDone}
}

// ErrorEvent returns the failure terminal event.
func ErrorEvent(message string) StreamEvent {
	return StreamEvent{Type: StreamEventError, Err: message}
}

const titleMaxLen = 60

// TitleFromMessage derives a conversation title from the first user message,
// truncating at a word boundary when the text is long.
func TitleFromMessage(content string) string {
	title := strings.TrimSpace(content)
	if title == "" {
		return "New Conversation"
	}
	if len(title) <= titleMaxLen {
		return title
	}

	truncated := title[:titleMaxLen]
	if idx := strings.LastIndex(truncated, " "); idx > 0 {
		truncated = truncated[:idx]
	}
	return truncated + "..."
}
