package api

import (
	"errors"
	"time"

	domain "github.com/jabezasir421/Chat-app-api/domain/task"
)

// Field length limits enforced at the API boundary.
const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 4000
	MaxCategoryLength    = 255
	MaxContentLength     = 4000
)

// Validation errors.
var (
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleTooLong       = errors.New("title exceeds maximum length")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
	ErrCategoryTooLong    = errors.New("category exceeds maximum length")
	ErrUnknownStatus      = errors.New("unknown status value")
	ErrContentRequired    = errors.New("content is required")
	ErrContentTooLong     = errors.New("content exceeds maximum length")
)

// CreateTaskRequest is the HTTP request for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// UpdateTaskRequest is the HTTP request for updating a task. Pointer fields
// distinguish "absent" from "present but empty": a supplied empty string
// clears the field, an omitted field preserves the prior value.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Status      *string `json:"status"`
}

// TaskResponse is the HTTP response for a single task.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListTasksResponse is the HTTP response for listing tasks.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
}

// SubmitMessageRequest is the HTTP request for submitting a chat message.
type SubmitMessageRequest struct {
	Content string `json:"content"`
}

// MessageResponse is the HTTP response for a single chat message.
type MessageResponse struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ListMessagesResponse is the HTTP response for recent messages.
type ListMessagesResponse struct {
	Messages []MessageResponse `json:"messages"`
	Total    int               `json:"total"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// validateCreateTask checks a create request before it reaches the core.
func validateCreateTask(req *CreateTaskRequest) error {
	if req.Title == "" {
		return ErrTitleRequired
	}
	if len(req.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if len(req.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if len(req.Category) > MaxCategoryLength {
		return ErrCategoryTooLong
	}
	return nil
}

// validateUpdateTask checks an update request. Only present fields are
// validated; a present-but-empty title is rejected because a task title
// can never be blank.
func validateUpdateTask(req *UpdateTaskRequest) error {
	if req.Title != nil {
		if *req.Title == "" {
			return ErrTitleRequired
		}
		if len(*req.Title) > MaxTitleLength {
			return ErrTitleTooLong
		}
	}
	if req.Description != nil && len(*req.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if req.Category != nil && len(*req.Category) > MaxCategoryLength {
		return ErrCategoryTooLong
	}
	if req.Status != nil {
		if _, ok := domain.ParseStatus(*req.Status); !ok {
			return ErrUnknownStatus
		}
	}
	return nil
}

// validateStatusFilter checks an optional status query parameter.
func validateStatusFilter(status string) error {
	if status == "" {
		return nil
	}
	if _, ok := domain.ParseStatus(status); !ok {
		return ErrUnknownStatus
	}
	return nil
}

// validateSubmitMessage checks a message submission before it reaches the
// chat service.
func validateSubmitMessage(req *SubmitMessageRequest) error {
	if req.Content == "" {
		return ErrContentRequired
	}
	if len(req.Content) > MaxContentLength {
		return ErrContentTooLong
	}
	return nil
}
