package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	UUID = uuid.UUID
	User struct {
		UUID         UUID
		Username     string
		PasswordHash string
		Email        string
		FullName     string

		CreatedAt time.Time
	}
	Users []*User
)
