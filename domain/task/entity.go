package task

import "time"

// TaskStatus classifies a task. Any status may follow any other; it is a
// plain label, not a workflow guard.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// ParseStatus converts a string into a known TaskStatus.
func ParseStatus(s string) (TaskStatus, bool) {
	switch status := TaskStatus(s); status {
	case StatusPending, StatusInProgress, StatusCompleted:
		return status, true
	default:
		return "", false
	}
}

// Task is the core domain entity: an owner-scoped todo item.
// A task is visible and mutable only through the owner that created it.
type Task struct {
	ID          string     `gorm:"primarykey;size:36" json:"id"`
	OwnerID     string     `gorm:"size:255;not null;index" json:"owner_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"size:4000" json:"description"`
	Category    string     `gorm:"size:255;index" json:"category"`
	Status      TaskStatus `gorm:"size:20;not null" json:"status"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

// TableName returns the table name for the Task model.
func (Task) TableName() string {
	return "tasks"
}
