package task

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-monolith/mono"

	domain "github.com/jabezasir421/Chat-app-api/domain/task"
	"github.com/jabezasir421/Chat-app-api/events"
)

// createTask handles the task.create service request. New tasks always
// start as pending with createdAt == updatedAt.
func (m *TaskModule) createTask(_ context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	if req.OwnerID == "" {
		return TaskResponse{}, fmt.Errorf("owner_id is required")
	}
	if req.Title == "" {
		return TaskResponse{}, fmt.Errorf("title is required")
	}

	now := m.now()
	newTask := &domain.Task{
		OwnerID:     req.OwnerID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := m.repo.Create(newTask); err != nil {
		return TaskResponse{}, fmt.Errorf("failed to save task: %w", err)
	}

	if m.eventBus != nil {
		event := events.TaskCreatedEvent{
			TaskID:    newTask.ID,
			OwnerID:   newTask.OwnerID,
			Title:     newTask.Title,
			Category:  newTask.Category,
			CreatedAt: newTask.CreatedAt,
		}
		if err := events.TaskCreatedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskCreated event for task %s: %v", newTask.ID, err)
		}
	}

	return toTaskResponse(newTask), nil
}

// getTask handles the task.get service request. Found is false for missing
// and foreign-owned tasks alike.
func (m *TaskModule) getTask(_ context.Context, req GetTaskRequest, _ *mono.Msg) (GetTaskResponse, error) {
	if req.OwnerID == "" || req.TaskID == "" {
		return GetTaskResponse{}, fmt.Errorf("owner_id and task_id are required")
	}

	found, err := m.repo.FindByIDAndOwner(req.TaskID, req.OwnerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return GetTaskResponse{Found: false}, nil
		}
		return GetTaskResponse{}, err
	}

	resp := toTaskResponse(found)
	return GetTaskResponse{Found: true, Task: &resp}, nil
}

// listTasks handles the task.list service request.
func (m *TaskModule) listTasks(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	if req.OwnerID == "" {
		return ListTasksResponse{}, fmt.Errorf("owner_id is required")
	}

	var filter ListFilter
	if req.Status != "" {
		status, ok := domain.ParseStatus(req.Status)
		if !ok {
			return ListTasksResponse{}, fmt.Errorf("unknown status: %q", req.Status)
		}
		filter.Status = &status
	}
	filter.Category = req.Category

	tasks, err := m.repo.FindByOwner(req.OwnerID, filter)
	if err != nil {
		return ListTasksResponse{}, err
	}

	response := ListTasksResponse{
		Tasks: make([]TaskResponse, 0, len(tasks)),
		Total: len(tasks),
	}
	for _, t := range tasks {
		response.Tasks = append(response.Tasks, toTaskResponse(t))
	}
	return response, nil
}

// updateTask handles the task.update service request. Only fields present
// in the request overwrite the existing values; absent fields are preserved
// verbatim. updatedAt advances on every successful update, even when the
// request carries no fields.
func (m *TaskModule) updateTask(_ context.Context, req UpdateTaskRequest, _ *mono.Msg) (UpdateTaskResponse, error) {
	if req.OwnerID == "" || req.TaskID == "" {
		return UpdateTaskResponse{}, fmt.Errorf("owner_id and task_id are required")
	}
	if req.Title != nil && *req.Title == "" {
		return UpdateTaskResponse{}, fmt.Errorf("title cannot be empty")
	}

	existing, err := m.repo.FindByIDAndOwner(req.TaskID, req.OwnerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return UpdateTaskResponse{Found: false}, nil
		}
		return UpdateTaskResponse{}, err
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Category != nil {
		existing.Category = *req.Category
	}
	if req.Status != nil {
		status, ok := domain.ParseStatus(*req.Status)
		if !ok {
			return UpdateTaskResponse{}, fmt.Errorf("unknown status: %q", *req.Status)
		}
		existing.Status = status
	}
	existing.UpdatedAt = m.now()

	if err := m.repo.Update(existing); err != nil {
		if errors.Is(err, ErrNotFound) {
			return UpdateTaskResponse{Found: false}, nil
		}
		return UpdateTaskResponse{}, fmt.Errorf("failed to update task: %w", err)
	}

	if m.eventBus != nil {
		event := events.TaskUpdatedEvent{
			TaskID:    existing.ID,
			OwnerID:   existing.OwnerID,
			Status:    string(existing.Status),
			UpdatedAt: existing.UpdatedAt,
		}
		if err := events.TaskUpdatedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskUpdated event for task %s: %v", existing.ID, err)
		}
	}

	resp := toTaskResponse(existing)
	return UpdateTaskResponse{Found: true, Task: &resp}, nil
}

// deleteTask handles the task.delete service request.
func (m *TaskModule) deleteTask(_ context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if req.OwnerID == "" || req.TaskID == "" {
		return DeleteTaskResponse{}, fmt.Errorf("owner_id and task_id are required")
	}

	if err := m.repo.Delete(req.TaskID, req.OwnerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return DeleteTaskResponse{Deleted: false, ID: req.TaskID}, nil
		}
		return DeleteTaskResponse{}, err
	}

	if m.eventBus != nil {
		event := events.TaskDeletedEvent{
			TaskID:    req.TaskID,
			OwnerID:   req.OwnerID,
			DeletedAt: m.now(),
		}
		if err := events.TaskDeletedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskDeleted event for task %s: %v", req.TaskID, err)
		}
	}

	return DeleteTaskResponse{Deleted: true, ID: req.TaskID}, nil
}

// toTaskResponse converts a domain Task to a TaskResponse.
func toTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		OwnerID:     task.OwnerID,
		Title:       task.Title,
		Description: task.Description,
		Category:    task.Category,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
