package ports

import (
	"context"

	"github.com/Asror571/insta-server/internal/domain/user"
)

type RegisterRequest struct {
	Username string
	Password string
	Email    string
	FullName string
}

type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindUserByID(ctx context.Context, uuid user.UUID) (*user.User, error)
}
