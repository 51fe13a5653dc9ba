package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// chatAdapter wraps ServiceContainer for type-safe cross-module communication.
type chatAdapter struct {
	container mono.ServiceContainer
}

// NewChatAdapter creates a new adapter for chat services.
func NewChatAdapter(container mono.ServiceContainer) ChatPort {
	if container == nil {
		panic("chat adapter requires non-nil ServiceContainer")
	}
	return &chatAdapter{container: container}
}

// SubmitMessage persists and broadcasts a chat message via the submit service.
func (a *chatAdapter) SubmitMessage(ctx context.Context, senderID, content string) (*MessageResponse, error) {
	req := SubmitMessageRequest{SenderID: senderID, Content: content}
	var resp MessageResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"submit",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("submit service call failed: %w", err)
	}
	return &resp, nil
}

// RecentMessages retrieves the most recent messages via the recent service.
func (a *chatAdapter) RecentMessages(ctx context.Context, limit int) ([]MessageResponse, error) {
	req := RecentMessagesRequest{Limit: limit}
	var resp RecentMessagesResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"recent",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("recent service call failed: %w", err)
	}
	return resp.Messages, nil
}
