package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uint64
	UUID         uuid.UUID
	Username     string
	PasswordHash string
	Email        *string
	FullName     *string

	CreatedAt time.Time
}
