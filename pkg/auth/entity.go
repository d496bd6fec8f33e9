package auth

import (
	"time"

	"github.com/google/uuid"
)

// User owns preference rows and is identified by the JWT subject.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
