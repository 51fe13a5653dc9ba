package chat

import (
	"context"
	"fmt"
	"log"

	"github.com/go-monolith/mono"

	domain "github.com/jabezasir421/Chat-app-api/domain/chat"
	"github.com/jabezasir421/Chat-app-api/events"
)

// submitMessage handles the chat.submit service request: persist the
// message, then broadcast it via the event bus.
func (m *ChatModule) submitMessage(_ context.Context, req SubmitMessageRequest, _ *mono.Msg) (MessageResponse, error) {
	if req.SenderID == "" {
		return MessageResponse{}, fmt.Errorf("sender_id is required")
	}
	if req.Content == "" {
		return MessageResponse{}, fmt.Errorf("content is required")
	}

	msg := &domain.Message{
		SenderID:  req.SenderID,
		Content:   req.Content,
		CreatedAt: m.now(),
	}

	if err := m.repo.Create(msg); err != nil {
		return MessageResponse{}, fmt.Errorf("failed to save message: %w", err)
	}

	if m.eventBus != nil {
		event := events.MessageSentEvent{
			MessageID: msg.ID,
			SenderID:  msg.SenderID,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		}
		if err := events.MessageSentV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[chat] Warning: failed to publish MessageSent event for message %s: %v", msg.ID, err)
		}
	}

	return toMessageResponse(msg), nil
}

// recentMessages handles the chat.recent service request. The limit is
// clamped to [MinRecentLimit, MaxRecentLimit]; callers that omit it get
// MinRecentLimit, so transports apply DefaultRecentLimit themselves.
func (m *ChatModule) recentMessages(_ context.Context, req RecentMessagesRequest, _ *mono.Msg) (RecentMessagesResponse, error) {
	limit := clampLimit(req.Limit)

	messages, err := m.repo.FindRecent(limit)
	if err != nil {
		return RecentMessagesResponse{}, err
	}

	response := RecentMessagesResponse{
		Messages: make([]MessageResponse, 0, len(messages)),
		Total:    len(messages),
	}
	for _, msg := range messages {
		response.Messages = append(response.Messages, toMessageResponse(msg))
	}
	return response, nil
}

// toMessageResponse converts a domain Message to a MessageResponse.
func toMessageResponse(msg *domain.Message) MessageResponse {
	return MessageResponse{
		ID:        msg.ID,
		SenderID:  msg.SenderID,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}
