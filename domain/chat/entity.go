package chat

import "time"

// Message is a broadcast chat message.
type Message struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	SenderID  string    `gorm:"size:255;not null" json:"sender_id"`
	Content   string    `gorm:"size:4000;not null" json:"content"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

// TableName returns the table name for the Message model.
func (Message) TableName() string {
	return "chat_messages"
}
