package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Asror571/insta-server/internal/application/ports"
	"github.com/Asror571/insta-server/internal/application/services"
	domain "github.com/Asror571/insta-server/internal/domain/user"
	userDB "github.com/Asror571/insta-server/internal/infrastructure/db/postgres/user"
)

type fakeUserService struct {
	registerFn       func(ctx context.Context, req ports.RegisterRequest) (*domain.User, error)
	findByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	findUserByIDFn   func(ctx context.Context, uuid domain.UUID) (*domain.User, error)
}

func (f *fakeUserService) Register(ctx context.Context, req ports.RegisterRequest) (*domain.User, error) {
	return f.registerFn(ctx, req)
}

func (f *fakeUserService) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return f.findByUsernameFn(ctx, username)
}

func (f *fakeUserService) FindUserByID(ctx context.Context, uuid domain.UUID) (*domain.User, error) {
	return f.findUserByIDFn(ctx, uuid)
}

type fakeAuth struct {
	issueFn    func(u *domain.User) (string, error)
	generateFn func(u *domain.User, password string) (string, error)
}

func (f *fakeAuth) IssueToken(u *domain.User) (string, error) { return f.issueFn(u) }

func (f *fakeAuth) GenerateToken(u *domain.User, password string) (string, error) {
	return f.generateFn(u, password)
}

func newAuthRouter(us ports.UserService, as ports.Auth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewAuthController(r, zap.NewNop(), us, as)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, route string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, route, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestSignupHandler_Success(t *testing.T) {
	us := &fakeUserService{
		registerFn: func(_ context.Context, req ports.RegisterRequest) (*domain.User, error) {
			assert.Equal(t, "alice", req.Username)
			assert.Equal(t, "pw1", req.Password)
			return &domain.User{Username: req.Username}, nil
		},
	}
	as := &fakeAuth{
		issueFn: func(*domain.User) (string, error) { return "signed.jwt.token", nil },
	}
	r := newAuthRouter(us, as)

	w := postJSON(t, r, RouteSignup, gin.H{"username": "alice", "password": "pw1"})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "signed.jwt.token", body["token"])
}

func TestSignupHandler_InvalidJSON(t *testing.T) {
	r := newAuthRouter(&fakeUserService{}, &fakeAuth{})

	req := httptest.NewRequest(http.MethodPost, RouteSignup, bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignupHandler_MissingFields(t *testing.T) {
	called := false
	us := &fakeUserService{
		registerFn: func(context.Context, ports.RegisterRequest) (*domain.User, error) {
			called = true
			return nil, nil
		},
	}
	r := newAuthRouter(us, &fakeAuth{})

	tests := []struct {
		name string
		body gin.H
	}{
		{"no username", gin.H{"password": "pw1"}},
		{"no password", gin.H{"username": "alice"}},
		{"blank username", gin.H{"username": "   ", "password": "pw1"}},
		{"empty body", gin.H{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, r, RouteSignup, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, called, "validation failures must not reach the service")
		})
	}
}

func TestSignupHandler_UsernameTaken(t *testing.T) {
	us := &fakeUserService{
		registerFn: func(context.Context, ports.RegisterRequest) (*domain.User, error) {
			return nil, userDB.ErrUsernameTaken
		},
	}
	r := newAuthRouter(us, &fakeAuth{})

	w := postJSON(t, r, RouteSignup, gin.H{"username": "alice", "password": "pw1"})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, userDB.ErrUsernameTaken.Error(), decodeBody(t, w)["error"])
}

func TestSignupHandler_RepositoryError(t *testing.T) {
	us := &fakeUserService{
		registerFn: func(context.Context, ports.RegisterRequest) (*domain.User, error) {
			return nil, errors.New("connection refused")
		},
	}
	r := newAuthRouter(us, &fakeAuth{})

	w := postJSON(t, r, RouteSignup, gin.H{"username": "alice", "password": "pw1"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLoginHandler_Success(t *testing.T) {
	u := &domain.User{Username: "alice", PasswordHash: "$2a$10$hash"}
	us := &fakeUserService{
		findByUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
			assert.Equal(t, "alice", username)
			return u, nil
		},
	}
	as := &fakeAuth{
		generateFn: func(got *domain.User, password string) (string, error) {
			assert.Same(t, u, got)
			assert.Equal(t, "pw1", password)
			return "signed.jwt.token", nil
		},
	}
	r := newAuthRouter(us, as)

	w := postJSON(t, r, RouteLogin, gin.H{"username": "alice", "password": "pw1"})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "signed.jwt.token", body["token"])
}

// unknown username and wrong password must be indistinguishable to the client
func TestLoginHandler_NoEnumerationSignal(t *testing.T) {
	unknownUser := &fakeUserService{
		findByUsernameFn: func(context.Context, string) (*domain.User, error) { return nil, nil },
	}
	wrongPassword := &fakeUserService{
		findByUsernameFn: func(context.Context, string) (*domain.User, error) {
			return &domain.User{Username: "alice", PasswordHash: "$2a$10$hash"}, nil
		},
	}
	as := &fakeAuth{
		generateFn: func(*domain.User, string) (string, error) {
			return "", services.ErrInvalidCredentials
		},
	}

	w1 := postJSON(t, newAuthRouter(unknownUser, as), RouteLogin, gin.H{"username": "ghost", "password": "pw1"})
	w2 := postJSON(t, newAuthRouter(wrongPassword, as), RouteLogin, gin.H{"username": "alice", "password": "bad"})

	assert.Equal(t, http.StatusUnauthorized, w1.Code)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
	assert.Equal(t, w1.Body.String(), w2.Body.String())
}

func TestLoginHandler_MissingFields(t *testing.T) {
	r := newAuthRouter(&fakeUserService{}, &fakeAuth{})

	w := postJSON(t, r, RouteLogin, gin.H{"username": "alice"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginHandler_RepositoryError(t *testing.T) {
	us := &fakeUserService{
		findByUsernameFn: func(context.Context, string) (*domain.User, error) {
			return nil, errors.New("connection refused")
		},
	}
	r := newAuthRouter(us, &fakeAuth{})

	w := postJSON(t, r, RouteLogin, gin.H{"username": "alice", "password": "pw1"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
