package ports

import (
	"github.com/Asror571/insta-server/internal/domain/user"
)

type Auth interface {
	// IssueToken signs a fresh credential for an already-verified user.
	IssueToken(u *user.User) (string, error)
	// GenerateToken verifies requestPassword against the stored hash and,
	// on match, issues a token.
	GenerateToken(u *user.User, requestPassword string) (string, error)
}
