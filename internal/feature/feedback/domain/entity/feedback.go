// Package entity defines messages sent through the contact form.
package entity

import "time"

// Feedback is a message a visitor sent to the site owners.
// It is stored as is; the model doubles as the table definition.
type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;not null" json:"email"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// TableName returns the table name for GORM.
func (Feedback) TableName() string {
	return "feedbacks"
}
