package user

import (
	"context"
)

type Repository interface {
	// FetchUserByUUID returns (nil, nil) when no such user exists.
	FetchUserByUUID(ctx context.Context, uuid UUID) (*User, error)
	// FetchUserByUsername returns (nil, nil) when no such user exists.
	FetchUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, req User) (*User, error)
}
