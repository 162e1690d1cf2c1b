package user

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/Asror571/insta-server/internal/domain/user"
)

var userColumns = []string{"id", "uuid", "username", "password_hash", "email", "full_name", "created_at"}

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, domain.Repository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, NewRepository(mock)
}

func TestCreateUser_Success(t *testing.T) {
	mock, repo := newMockRepo(t)

	id := uuid.New()
	email := "alice@example.com"
	mock.ExpectQuery(regexp.QuoteMeta(InsertUser)).
		WithArgs(pgxmock.AnyArg(), "alice", "$2a$10$hash", &email, (*string)(nil)).
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(uint64(1), id, "alice", "$2a$10$hash", &email, (*string)(nil), time.Now()))

	u, err := repo.CreateUser(context.Background(), domain.User{
		Username:     "alice",
		PasswordHash: "$2a$10$hash",
		Email:        "alice@example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.Equal(t, id, u.UUID)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Empty(t, u.FullName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UsernameTaken(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(InsertUser)).
		WithArgs(pgxmock.AnyArg(), "alice", "$2a$10$hash", (*string)(nil), (*string)(nil)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	u, err := repo.CreateUser(context.Background(), domain.User{
		Username:     "alice",
		PasswordHash: "$2a$10$hash",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
	assert.Nil(t, u)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_OtherError(t *testing.T) {
	mock, repo := newMockRepo(t)

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(InsertUser)).
		WithArgs(pgxmock.AnyArg(), "alice", "h", (*string)(nil), (*string)(nil)).
		WillReturnError(boom)

	u, err := repo.CreateUser(context.Background(), domain.User{Username: "alice", PasswordHash: "h"})
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrUsernameTaken)
	assert.Nil(t, u)
}

func TestFetchUserByUsername_NotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(SelectUserByUsername)).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows(userColumns))

	u, err := repo.FetchUserByUsername(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, u)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchUserByUUID_Found(t *testing.T) {
	mock, repo := newMockRepo(t)

	id := uuid.New()
	full := "Alice A."
	mock.ExpectQuery(regexp.QuoteMeta(SelectUserByUUID)).
		WithArgs(id.String()).
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(uint64(7), id, "alice", "$2a$10$hash", (*string)(nil), &full, time.Now()))

	u, err := repo.FetchUserByUUID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "Alice A.", u.FullName)
	assert.Empty(t, u.Email)
}
