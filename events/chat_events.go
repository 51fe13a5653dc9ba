package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// MessageSentEvent is emitted when a chat message is submitted.
type MessageSentEvent struct {
	MessageID string    `json:"message_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageSentV1 is the typed event definition for message submission.
// Subject: events.chat.v1.message-sent
var MessageSentV1 = helper.EventDefinition[MessageSentEvent](
	"chat", "MessageSent", "v1",
)
