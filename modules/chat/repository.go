package chat

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/jabezasir421/Chat-app-api/domain/chat"
)

// Repository provides access to chat message storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new chat message repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new message, assigning its identifier.
func (r *Repository) Create(msg *domain.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if err := r.db.Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// FindRecent retrieves the most recent messages, newest first.
func (r *Repository) FindRecent(limit int) ([]*domain.Message, error) {
	var messages []*domain.Message
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to find messages: %w", err)
	}
	return messages, nil
}
