package ports

import (
	"context"
	"time"

	"github.com/random-knowledge/knowledge-api/internal/core/domain"
)

// TokenPair is issued on every successful login or refresh. Access and
// refresh tokens share the same claim shape; only their TTLs differ.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time // expiration of the access token
}

type AuthService interface {
	// Login verifies the credentials and issues a fresh token pair.
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	// Refresh validates an existing token and issues a new pair. The
	// resolved user is returned so the transport layer can bind it as the
	// request principal.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, *domain.User, error)
	// ExtractSubject validates a bearer token and returns its subject.
	ExtractSubject(tokenString string) (string, error)
}
