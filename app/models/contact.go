package models

import "gorm.io/gorm"

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	gorm.Model
	Name    string `gorm:"size:255;not null" json:"name"`
	Email   string `gorm:"size:255;not null" json:"email"`
	Subject string `gorm:"size:255"          json:"subject"`
	Body    string `gorm:"type:text;not null" json:"body"`
}
