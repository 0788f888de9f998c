package models

import "time"

// QuizResponse is one completed attempt. It is never updated after creation.
type QuizResponse struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Comments  *string   `json:"comments"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	// Relationships
	User *User `json:"-" gorm:"constraint:OnDelete:RESTRICT"`
}
