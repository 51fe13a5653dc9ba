package api

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateCreateTask(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateTaskRequest
		wantErr error
	}{
		{
			name: "valid minimal",
			req:  CreateTaskRequest{Title: "Buy milk"},
		},
		{
			name: "valid full",
			req:  CreateTaskRequest{Title: "Buy milk", Description: "2 liters", Category: "errands"},
		},
		{
			name:    "missing title",
			req:     CreateTaskRequest{Description: "no title"},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "title too long",
			req:     CreateTaskRequest{Title: strings.Repeat("a", MaxTitleLength+1)},
			wantErr: ErrTitleTooLong,
		},
		{
			name:    "description too long",
			req:     CreateTaskRequest{Title: "ok", Description: strings.Repeat("a", MaxDescriptionLength+1)},
			wantErr: ErrDescriptionTooLong,
		},
		{
			name:    "category too long",
			req:     CreateTaskRequest{Title: "ok", Category: strings.Repeat("a", MaxCategoryLength+1)},
			wantErr: ErrCategoryTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCreateTask(&tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateCreateTask() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateUpdateTask(t *testing.T) {
	tooLong := strings.Repeat("a", MaxDescriptionLength+1)
	empty := ""
	title := "Renamed"
	status := "completed"
	badStatus := "archived"

	tests := []struct {
		name    string
		req     UpdateTaskRequest
		wantErr error
	}{
		{
			name: "all fields absent",
			req:  UpdateTaskRequest{},
		},
		{
			name: "valid partial",
			req:  UpdateTaskRequest{Title: &title, Status: &status},
		},
		{
			name: "empty description clears",
			req:  UpdateTaskRequest{Description: &empty},
		},
		{
			name: "empty category clears",
			req:  UpdateTaskRequest{Category: &empty},
		},
		{
			name:    "empty title rejected",
			req:     UpdateTaskRequest{Title: &empty},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "description too long",
			req:     UpdateTaskRequest{Description: &tooLong},
			wantErr: ErrDescriptionTooLong,
		},
		{
			name:    "unknown status",
			req:     UpdateTaskRequest{Status: &badStatus},
			wantErr: ErrUnknownStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateUpdateTask(&tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateUpdateTask() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateStatusFilter(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		wantErr error
	}{
		{"empty means no filter", "", nil},
		{"pending", "pending", nil},
		{"in_progress", "in_progress", nil},
		{"completed", "completed", nil},
		{"unknown value", "archived", ErrUnknownStatus},
		{"case sensitive", "Pending", ErrUnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateStatusFilter(tt.status)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateStatusFilter(%q) = %v, want %v", tt.status, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSubmitMessage(t *testing.T) {
	tests := []struct {
		name    string
		req     SubmitMessageRequest
		wantErr error
	}{
		{
			name: "valid",
			req:  SubmitMessageRequest{Content: "hello"},
		},
		{
			name:    "missing content",
			req:     SubmitMessageRequest{},
			wantErr: ErrContentRequired,
		},
		{
			name:    "content too long",
			req:     SubmitMessageRequest{Content: strings.Repeat("a", MaxContentLength+1)},
			wantErr: ErrContentTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSubmitMessage(&tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("validateSubmitMessage() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
