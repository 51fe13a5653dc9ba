package notification

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jabezasir421/Chat-app-api/events"
)

func TestActivityLog(t *testing.T) {
	m := NewModule()
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	if err := m.handleTaskCreated(ctx, events.TaskCreatedEvent{
		TaskID:    "task-1",
		OwnerID:   "user-1",
		Title:     "Buy milk",
		CreatedAt: now,
	}, nil); err != nil {
		t.Fatalf("handleTaskCreated() error = %v", err)
	}

	if err := m.handleTaskUpdated(ctx, events.TaskUpdatedEvent{
		TaskID:    "task-1",
		OwnerID:   "user-1",
		Status:    "completed",
		UpdatedAt: now,
	}, nil); err != nil {
		t.Fatalf("handleTaskUpdated() error = %v", err)
	}

	if err := m.handleTaskDeleted(ctx, events.TaskDeletedEvent{
		TaskID:    "task-1",
		OwnerID:   "user-1",
		DeletedAt: now,
	}, nil); err != nil {
		t.Fatalf("handleTaskDeleted() error = %v", err)
	}

	activity := m.GetActivity()
	if len(activity) != 3 {
		t.Fatalf("activity entries = %d, want 3", len(activity))
	}

	wantTypes := []string{"task_created", "task_updated", "task_deleted"}
	for i, entry := range activity {
		if entry.Type != wantTypes[i] {
			t.Errorf("activity[%d].Type = %q, want %q", i, entry.Type, wantTypes[i])
		}
		if entry.TaskID != "task-1" || entry.OwnerID != "user-1" {
			t.Errorf("activity[%d] = %+v, want task-1 owned by user-1", i, entry)
		}
	}

	if !strings.Contains(activity[0].Message, "Buy milk") {
		t.Errorf("created message = %q, want it to mention the title", activity[0].Message)
	}
	if !strings.Contains(activity[1].Message, "completed") {
		t.Errorf("updated message = %q, want it to mention the status", activity[1].Message)
	}
}

func TestGetActivity_ReturnsCopy(t *testing.T) {
	m := NewModule()
	ctx := context.Background()

	if err := m.handleTaskCreated(ctx, events.TaskCreatedEvent{
		TaskID:  "task-1",
		OwnerID: "user-1",
		Title:   "Original",
	}, nil); err != nil {
		t.Fatalf("handleTaskCreated() error = %v", err)
	}

	activity := m.GetActivity()
	activity[0].Message = "mutated"

	if m.GetActivity()[0].Message == "mutated" {
		t.Error("GetActivity should return a copy, not the backing slice")
	}
}
