package task

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	domain "github.com/jabezasir421/Chat-app-api/domain/task"
)

// fakeClock hands out a strictly increasing time on every call, so
// created_at ordering and updated_at advancement are deterministic.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

// newTestModule builds a TaskModule wired to an in-memory database and a
// fake clock, without going through the mono lifecycle.
func newTestModule(t *testing.T) *TaskModule {
	t.Helper()
	db := setupTestDB(t)
	return &TaskModule{
		db:   db,
		repo: NewRepository(db),
		now:  newFakeClock().Now,
	}
}

func strPtr(s string) *string {
	return &s
}

func TestCreateTask(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	resp, err := m.createTask(ctx, CreateTaskRequest{
		OwnerID:     "user-1",
		Title:       "Buy milk",
		Description: "2 liters",
		Category:    "errands",
	}, nil)
	if err != nil {
		t.Fatalf("createTask() error = %v", err)
	}

	if resp.ID == "" {
		t.Error("expected a generated task ID")
	}
	if resp.Status != string(domain.StatusPending) {
		t.Errorf("new task status = %q, want %q", resp.Status, domain.StatusPending)
	}
	if !resp.CreatedAt.Equal(resp.UpdatedAt) {
		t.Errorf("new task should have created_at == updated_at, got %v and %v", resp.CreatedAt, resp.UpdatedAt)
	}
	if resp.OwnerID != "user-1" {
		t.Errorf("owner = %q, want %q", resp.OwnerID, "user-1")
	}
}

func TestCreateTask_Validation(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateTaskRequest
	}{
		{"missing owner", CreateTaskRequest{Title: "No owner"}},
		{"missing title", CreateTaskRequest{OwnerID: "user-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.createTask(ctx, tt.req, nil); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestGetTask_OwnershipIsolation(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	created, err := m.createTask(ctx, CreateTaskRequest{OwnerID: "user-1", Title: "Private"}, nil)
	if err != nil {
		t.Fatalf("createTask() error = %v", err)
	}

	t.Run("owner sees the task", func(t *testing.T) {
		resp, err := m.getTask(ctx, GetTaskRequest{OwnerID: "user-1", TaskID: created.ID}, nil)
		if err != nil {
			t.Fatalf("getTask() error = %v", err)
		}
		if !resp.Found {
			t.Fatal("expected Found = true for owner")
		}
		if resp.Task.Title != "Private" {
			t.Errorf("title = %q, want %q", resp.Task.Title, "Private")
		}
	})

	t.Run("other user gets not found", func(t *testing.T) {
		resp, err := m.getTask(ctx, GetTaskRequest{OwnerID: "user-2", TaskID: created.ID}, nil)
		if err != nil {
			t.Fatalf("getTask() error = %v", err)
		}
		if resp.Found {
			t.Error("expected Found = false for foreign owner")
		}
	})

	t.Run("missing id gets not found", func(t *testing.T) {
		resp, err := m.getTask(ctx, GetTaskRequest{OwnerID: "user-1", TaskID: "missing"}, nil)
		if err != nil {
			t.Fatalf("getTask() error = %v", err)
		}
		if resp.Found {
			t.Error("expected Found = false for missing task")
		}
	})
}

func TestListTasks(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	// The fake clock advances per call, so creation order fixes created_at.
	seed := []CreateTaskRequest{
		{OwnerID: "user-1", Title: "Report", Category: "work"},
		{OwnerID: "user-1", Title: "Dishes", Category: "home"},
		{OwnerID: "user-1", Title: "Laundry", Category: "home"},
		{OwnerID: "user-2", Title: "Not mine", Category: "home"},
	}
	ids := make([]string, 0, len(seed))
	for _, req := range seed {
		resp, err := m.createTask(ctx, req, nil)
		if err != nil {
			t.Fatalf("createTask(%q) error = %v", req.Title, err)
		}
		ids = append(ids, resp.ID)
	}

	// Complete "Laundry" so a status filter has something to match.
	if _, err := m.updateTask(ctx, UpdateTaskRequest{
		OwnerID: "user-1",
		TaskID:  ids[2],
		Status:  strPtr("completed"),
	}, nil); err != nil {
		t.Fatalf("updateTask() error = %v", err)
	}

	t.Run("no filters newest first", func(t *testing.T) {
		resp, err := m.listTasks(ctx, ListTasksRequest{OwnerID: "user-1"}, nil)
		if err != nil {
			t.Fatalf("listTasks() error = %v", err)
		}
		if resp.Total != 3 {
			t.Fatalf("total = %d, want 3", resp.Total)
		}
		wantTitles := []string{"Laundry", "Dishes", "Report"}
		for i, task := range resp.Tasks {
			if task.Title != wantTitles[i] {
				t.Errorf("task[%d].Title = %q, want %q", i, task.Title, wantTitles[i])
			}
		}
	})

	t.Run("status filter", func(t *testing.T) {
		resp, err := m.listTasks(ctx, ListTasksRequest{OwnerID: "user-1", Status: "completed"}, nil)
		if err != nil {
			t.Fatalf("listTasks() error = %v", err)
		}
		if resp.Total != 1 || resp.Tasks[0].Title != "Laundry" {
			t.Errorf("status filter returned %+v, want only Laundry", resp.Tasks)
		}
	})

	t.Run("category filter", func(t *testing.T) {
		resp, err := m.listTasks(ctx, ListTasksRequest{OwnerID: "user-1", Category: "home"}, nil)
		if err != nil {
			t.Fatalf("listTasks() error = %v", err)
		}
		if resp.Total != 2 {
			t.Errorf("category filter total = %d, want 2", resp.Total)
		}
	})

	t.Run("status and category filter", func(t *testing.T) {
		resp, err := m.listTasks(ctx, ListTasksRequest{OwnerID: "user-1", Status: "pending", Category: "home"}, nil)
		if err != nil {
			t.Fatalf("listTasks() error = %v", err)
		}
		if resp.Total != 1 || resp.Tasks[0].Title != "Dishes" {
			t.Errorf("combined filter returned %+v, want only Dishes", resp.Tasks)
		}
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		_, err := m.listTasks(ctx, ListTasksRequest{OwnerID: "user-1", Status: "archived"}, nil)
		if err == nil || !strings.Contains(err.Error(), "unknown status") {
			t.Errorf("expected unknown status error, got %v", err)
		}
	})

	t.Run("other owner's view is isolated", func(t *testing.T) {
		resp, err := m.listTasks(ctx, ListTasksRequest{OwnerID: "user-2"}, nil)
		if err != nil {
			t.Fatalf("listTasks() error = %v", err)
		}
		if resp.Total != 1 || resp.Tasks[0].Title != "Not mine" {
			t.Errorf("user-2 list = %+v, want only their own task", resp.Tasks)
		}
	})
}

func TestUpdateTask_FieldPresenceMerge(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	created, err := m.createTask(ctx, CreateTaskRequest{
		OwnerID:     "user-1",
		Title:       "Original",
		Description: "Keep or clear",
		Category:    "work",
	}, nil)
	if err != nil {
		t.Fatalf("createTask() error = %v", err)
	}

	t.Run("absent fields are preserved", func(t *testing.T) {
		resp, err := m.updateTask(ctx, UpdateTaskRequest{
			OwnerID: "user-1",
			TaskID:  created.ID,
			Status:  strPtr("in_progress"),
		}, nil)
		if err != nil {
			t.Fatalf("updateTask() error = %v", err)
		}
		if !resp.Found {
			t.Fatal("expected Found = true")
		}
		if resp.Task.Title != "Original" {
			t.Errorf("title changed to %q, expected preservation", resp.Task.Title)
		}
		if resp.Task.Description != "Keep or clear" {
			t.Errorf("description changed to %q, expected preservation", resp.Task.Description)
		}
		if resp.Task.Status != string(domain.StatusInProgress) {
			t.Errorf("status = %q, want %q", resp.Task.Status, domain.StatusInProgress)
		}
	})

	t.Run("present empty string clears the field", func(t *testing.T) {
		resp, err := m.updateTask(ctx, UpdateTaskRequest{
			OwnerID:     "user-1",
			TaskID:      created.ID,
			Description: strPtr(""),
		}, nil)
		if err != nil {
			t.Fatalf("updateTask() error = %v", err)
		}
		if resp.Task.Description != "" {
			t.Errorf("description = %q, want cleared", resp.Task.Description)
		}

		// The cleared value must survive a round trip through the store.
		got, err := m.getTask(ctx, GetTaskRequest{OwnerID: "user-1", TaskID: created.ID}, nil)
		if err != nil {
			t.Fatalf("getTask() error = %v", err)
		}
		if got.Task.Description != "" {
			t.Errorf("persisted description = %q, want cleared", got.Task.Description)
		}
	})

	t.Run("empty patch advances only updated_at", func(t *testing.T) {
		before, err := m.getTask(ctx, GetTaskRequest{OwnerID: "user-1", TaskID: created.ID}, nil)
		if err != nil {
			t.Fatalf("getTask() error = %v", err)
		}

		resp, err := m.updateTask(ctx, UpdateTaskRequest{OwnerID: "user-1", TaskID: created.ID}, nil)
		if err != nil {
			t.Fatalf("updateTask() error = %v", err)
		}

		if resp.Task.Title != before.Task.Title ||
			resp.Task.Description != before.Task.Description ||
			resp.Task.Category != before.Task.Category ||
			resp.Task.Status != before.Task.Status {
			t.Errorf("empty patch changed fields: before %+v, after %+v", before.Task, resp.Task)
		}
		if !resp.Task.CreatedAt.Equal(before.Task.CreatedAt) {
			t.Errorf("created_at moved from %v to %v", before.Task.CreatedAt, resp.Task.CreatedAt)
		}
		if !resp.Task.UpdatedAt.After(before.Task.UpdatedAt) {
			t.Errorf("updated_at did not advance: %v -> %v", before.Task.UpdatedAt, resp.Task.UpdatedAt)
		}
	})

	t.Run("persisted updated_at matches the response", func(t *testing.T) {
		resp, err := m.updateTask(ctx, UpdateTaskRequest{
			OwnerID:  "user-1",
			TaskID:   created.ID,
			Category: strPtr("chores"),
		}, nil)
		if err != nil {
			t.Fatalf("updateTask() error = %v", err)
		}

		got, err := m.getTask(ctx, GetTaskRequest{OwnerID: "user-1", TaskID: created.ID}, nil)
		if err != nil {
			t.Fatalf("getTask() error = %v", err)
		}
		if !got.Task.UpdatedAt.Equal(resp.Task.UpdatedAt) {
			t.Errorf("stored updated_at = %v, response reported %v", got.Task.UpdatedAt, resp.Task.UpdatedAt)
		}
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		_, err := m.updateTask(ctx, UpdateTaskRequest{
			OwnerID: "user-1",
			TaskID:  created.ID,
			Title:   strPtr(""),
		}, nil)
		if err == nil {
			t.Error("expected error for empty title")
		}
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		_, err := m.updateTask(ctx, UpdateTaskRequest{
			OwnerID: "user-1",
			TaskID:  created.ID,
			Status:  strPtr("done"),
		}, nil)
		if err == nil || !strings.Contains(err.Error(), "unknown status") {
			t.Errorf("expected unknown status error, got %v", err)
		}
	})

	t.Run("foreign owner gets not found", func(t *testing.T) {
		resp, err := m.updateTask(ctx, UpdateTaskRequest{
			OwnerID: "user-2",
			TaskID:  created.ID,
			Title:   strPtr("Hijack"),
		}, nil)
		if err != nil {
			t.Fatalf("updateTask() error = %v", err)
		}
		if resp.Found {
			t.Error("expected Found = false for foreign owner")
		}
	})
}

func TestUpdateTask_StatusTransitionsUnconstrained(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	created, err := m.createTask(ctx, CreateTaskRequest{OwnerID: "user-1", Title: "Reopenable"}, nil)
	if err != nil {
		t.Fatalf("createTask() error = %v", err)
	}

	// Any known status can follow any other, including moving backwards.
	transitions := []string{"completed", "pending", "in_progress", "pending", "completed"}
	for _, next := range transitions {
		resp, err := m.updateTask(ctx, UpdateTaskRequest{
			OwnerID: "user-1",
			TaskID:  created.ID,
			Status:  strPtr(next),
		}, nil)
		if err != nil {
			t.Fatalf("transition to %q error = %v", next, err)
		}
		if resp.Task.Status != next {
			t.Errorf("status = %q, want %q", resp.Task.Status, next)
		}
	}
}

func TestDeleteTask(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	created, err := m.createTask(ctx, CreateTaskRequest{OwnerID: "user-1", Title: "Doomed"}, nil)
	if err != nil {
		t.Fatalf("createTask() error = %v", err)
	}

	t.Run("foreign owner cannot delete", func(t *testing.T) {
		resp, err := m.deleteTask(ctx, DeleteTaskRequest{OwnerID: "user-2", TaskID: created.ID}, nil)
		if err != nil {
			t.Fatalf("deleteTask() error = %v", err)
		}
		if resp.Deleted {
			t.Error("expected Deleted = false for foreign owner")
		}

		// The task must still be there for its owner.
		got, err := m.getTask(ctx, GetTaskRequest{OwnerID: "user-1", TaskID: created.ID}, nil)
		if err != nil || !got.Found {
			t.Errorf("task disappeared after foreign delete attempt: found=%v err=%v", got.Found, err)
		}
	})

	t.Run("owner deletes and the task is gone", func(t *testing.T) {
		resp, err := m.deleteTask(ctx, DeleteTaskRequest{OwnerID: "user-1", TaskID: created.ID}, nil)
		if err != nil {
			t.Fatalf("deleteTask() error = %v", err)
		}
		if !resp.Deleted {
			t.Fatal("expected Deleted = true")
		}

		got, err := m.getTask(ctx, GetTaskRequest{OwnerID: "user-1", TaskID: created.ID}, nil)
		if err != nil {
			t.Fatalf("getTask() error = %v", err)
		}
		if got.Found {
			t.Error("expected task to be gone after delete")
		}
	})

	t.Run("second delete reports not deleted", func(t *testing.T) {
		resp, err := m.deleteTask(ctx, DeleteTaskRequest{OwnerID: "user-1", TaskID: created.ID}, nil)
		if err != nil {
			t.Fatalf("deleteTask() error = %v", err)
		}
		if resp.Deleted {
			t.Error("expected Deleted = false on repeat delete")
		}
	})
}
