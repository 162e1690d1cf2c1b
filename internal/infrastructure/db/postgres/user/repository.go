package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Asror571/insta-server/internal/domain/user"
	"github.com/Asror571/insta-server/internal/infrastructure/db/postgres"
)

var ErrUsernameTaken = errors.New("username already taken")

type Repository struct {
	db postgres.Querier
}

func NewRepository(db postgres.Querier) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUserByUUID(ctx context.Context, uuid user.UUID) (*user.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, SelectUserByUUID, uuid.String()).Scan(
		&u.ID,
		&u.UUID,
		&u.Username,
		&u.PasswordHash,
		&u.Email,
		&u.FullName,

		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), err
}

func (r *Repository) FetchUserByUsername(ctx context.Context, username string) (*user.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, SelectUserByUsername, username).Scan(
		&u.ID,
		&u.UUID,
		&u.Username,
		&u.PasswordHash,
		&u.Email,
		&u.FullName,

		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), err
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	u := new(User)

	err := r.db.QueryRow(
		ctx,
		InsertUser,
		uuid.New(), req.Username, req.PasswordHash, optional(req.Email), optional(req.FullName),
	).Scan(
		&u.ID,
		&u.UUID,
		&u.Username,
		&u.PasswordHash,
		&u.Email,
		&u.FullName,

		&u.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return fromDBModel(u), err
}
