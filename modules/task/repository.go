package task

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/jabezasir421/Chat-app-api/domain/task"
)

// ErrNotFound is returned when a task does not exist for the requesting
// owner. A task owned by someone else produces the same error as a missing
// one, so existence never leaks across owners.
var ErrNotFound = errors.New("task not found")

// ListFilter narrows a FindByOwner query. A nil Status means no status
// filter; a Category that is blank after trimming means no category filter.
type ListFilter struct {
	Status   *domain.TaskStatus
	Category string
}

// Repository provides access to task storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new task, assigning its identifier.
func (r *Repository) Create(task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByIDAndOwner retrieves a task by ID, scoped to its owner. The owner
// predicate is part of the lookup itself, never a separate check.
func (r *Repository) FindByIDAndOwner(id, ownerID string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.First(&task, "id = ? AND owner_id = ?", id, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// FindByOwner retrieves an owner's tasks, newest first. The optional filter
// pair resolves to exactly one of four query shapes.
func (r *Repository) FindByOwner(ownerID string, filter ListFilter) ([]*domain.Task, error) {
	category := strings.TrimSpace(filter.Category)

	var query *gorm.DB
	switch {
	case filter.Status != nil && category != "":
		query = r.db.Where("owner_id = ? AND status = ? AND category = ?", ownerID, *filter.Status, category)
	case filter.Status != nil:
		query = r.db.Where("owner_id = ? AND status = ?", ownerID, *filter.Status)
	case category != "":
		query = r.db.Where("owner_id = ? AND category = ?", ownerID, category)
	default:
		query = r.db.Where("owner_id = ?", ownerID)
	}

	var tasks []*domain.Task
	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// Update persists all mutable fields of an existing task. UpdateColumns
// writes the listed columns verbatim: cleared values (empty description or
// category) are stored, and the caller's updated_at is kept instead of
// GORM's own update-time tracking.
func (r *Repository) Update(task *domain.Task) error {
	result := r.db.Model(&domain.Task{}).
		Where("id = ? AND owner_id = ?", task.ID, task.OwnerID).
		UpdateColumns(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"category":    task.Category,
			"status":      task.Status,
			"updated_at":  task.UpdatedAt,
		})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a task owned by the given owner.
func (r *Repository) Delete(id, ownerID string) error {
	result := r.db.Delete(&domain.Task{}, "id = ? AND owner_id = ?", id, ownerID)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
