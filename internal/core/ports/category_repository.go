package ports

import (
	"context"

	"github.com/random-knowledge/knowledge-api/internal/core/domain"
)

// CategoryRepository persists categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindAll(ctx context.Context, req PageRequest) ([]domain.Category, int64, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id string) error
}
