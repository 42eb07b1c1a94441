package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Name      string    `json:"name" db:"name" example:"John Doe"`                        // Display name
	Email     string    `json:"email" db:"email" example:"john@example.com"`              // Unique, stored lower-cased
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created

	// Relations (nil and omitted from JSON unless loaded)
	Courses []Course `json:"courses,omitzero"`
}

// CreateUserInput is the validated input for creating a user.
type CreateUserInput struct {
	Name  string `json:"name" validate:"required,notblank,max=100" example:"John Doe"`
	Email string `json:"email" validate:"required,email,max=255" example:"john@example.com"`
}
