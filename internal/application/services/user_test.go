package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Asror571/insta-server/internal/application/ports"
	domain "github.com/Asror571/insta-server/internal/domain/user"
	userDB "github.com/Asror571/insta-server/internal/infrastructure/db/postgres/user"
)

type fakeUserRepo struct {
	mu        sync.Mutex
	byName    map[string]*domain.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byName: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) FetchUserByUUID(_ context.Context, id domain.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byName {
		if u.UUID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FetchUserByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byName[username], nil
}

func (r *fakeUserRepo) CreateUser(_ context.Context, req domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, ok := r.byName[req.Username]; ok {
		return nil, userDB.ErrUsernameTaken
	}
	u := req
	u.UUID = uuid.New()
	r.byName[u.Username] = &u
	return &u, nil
}

func newTestUserService(users *fakeUserRepo, posts *fakePostRepo) ports.UserService {
	return NewUserService(users, posts, bcrypt.MinCost, nil, testCounter())
}

func TestRegister_Success(t *testing.T) {
	users := newFakeUserRepo()
	posts := newFakePostRepo()
	us := newTestUserService(users, posts)

	u, err := us.Register(context.Background(), ports.RegisterRequest{
		Username: "alice",
		Password: "pw1",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.Equal(t, "alice", u.Username)
	assert.NotEqual(t, uuid.Nil, u.UUID)

	// password is stored only as a bcrypt hash
	assert.NotEqual(t, "pw1", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pw1")))

	// the empty post aggregate exists before Register returns
	images, err := posts.FetchImages(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, images)
	assert.Empty(t, images)
}

func TestRegister_UsernameTaken(t *testing.T) {
	users := newFakeUserRepo()
	us := newTestUserService(users, newFakePostRepo())

	_, err := us.Register(context.Background(), ports.RegisterRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	u, err := us.Register(context.Background(), ports.RegisterRequest{Username: "alice", Password: "other"})
	require.ErrorIs(t, err, userDB.ErrUsernameTaken)
	assert.Nil(t, u)
}

func TestFindByUsername(t *testing.T) {
	users := newFakeUserRepo()
	us := newTestUserService(users, newFakePostRepo())

	_, err := us.Register(context.Background(), ports.RegisterRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	u, err := us.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice", u.Username)

	ghost, err := us.FindByUsername(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, ghost)
}

func TestFindUserByID(t *testing.T) {
	users := newFakeUserRepo()
	us := newTestUserService(users, newFakePostRepo())

	created, err := us.Register(context.Background(), ports.RegisterRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	u, err := us.FindUserByID(context.Background(), created.UUID)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, created.UUID, u.UUID)

	missing, err := us.FindUserByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}
