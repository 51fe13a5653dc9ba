package chat

import (
	"context"
	"time"
)

// Recent-message limits. A limit outside [MinRecentLimit, MaxRecentLimit]
// is clamped, never rejected.
const (
	DefaultRecentLimit = 50
	MinRecentLimit     = 1
	MaxRecentLimit     = 200
)

// clampLimit bounds a requested history size to [MinRecentLimit, MaxRecentLimit].
func clampLimit(limit int) int {
	if limit < MinRecentLimit {
		return MinRecentLimit
	}
	if limit > MaxRecentLimit {
		return MaxRecentLimit
	}
	return limit
}

// SubmitMessageRequest is the request for submitting a chat message.
type SubmitMessageRequest struct {
	SenderID string `json:"sender_id"`
	Content  string `json:"content"`
}

// MessageResponse represents a chat message in responses.
type MessageResponse struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// RecentMessagesRequest is the request for recent messages.
type RecentMessagesRequest struct {
	Limit int `json:"limit,omitempty"`
}

// RecentMessagesResponse is the response for recent messages, newest first.
type RecentMessagesResponse struct {
	Messages []MessageResponse `json:"messages"`
	Total    int               `json:"total"`
}

// ChatPort defines the interface for chat operations.
type ChatPort interface {
	SubmitMessage(ctx context.Context, senderID, content string) (*MessageResponse, error)
	RecentMessages(ctx context.Context, limit int) ([]MessageResponse, error)
}
