package ports

import (
	"context"

	"github.com/random-knowledge/knowledge-api/internal/core/domain"
)

// UserRepository is the credential store. Lookups inherit the caller's
// context deadline; the store is the only blocking dependency of the
// authentication core.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
