package services

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Asror571/insta-server/internal/application/ports"
	"github.com/Asror571/insta-server/internal/domain/user"
	"github.com/Asror571/insta-server/internal/infrastructure/jwt"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)

// tokenTTL is the fixed credential lifetime; there is no refresh flow.
const tokenTTL = time.Hour

type AuthService struct {
	jwtService *jwt.Service
}

func NewAuthService(
	jwtService *jwt.Service,
) ports.Auth {
	return &AuthService{
		jwtService: jwtService,
	}
}

func (as *AuthService) IssueToken(u *user.User) (string, error) {
	token, err := as.jwtService.GenerateJWT(u.UUID.String(), tokenTTL)
	if err != nil {
		return "", ErrFailedToGenerateToken
	}

	return token, nil
}

func (as *AuthService) GenerateToken(u *user.User, requestPassword string) (string, error) {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(requestPassword))
	if err != nil {
		return "", ErrInvalidCredentials
	}

	return as.IssueToken(u)
}
