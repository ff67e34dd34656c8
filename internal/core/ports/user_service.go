package ports

import (
	"context"

	"github.com/random-knowledge/knowledge-api/internal/core/domain"
)

// UserService handles account registration.
type UserService interface {
	// SignUp creates a USER-role account with a hashed password.
	SignUp(ctx context.Context, name, email, password string) (*domain.User, error)
}
