package ports

import (
	"context"

	"github.com/random-knowledge/knowledge-api/internal/core/domain"
)

// CuriosityRepository persists curiosities.
type CuriosityRepository interface {
	Create(ctx context.Context, curiosity *domain.Curiosity) error
	FindAll(ctx context.Context, req PageRequest) ([]domain.Curiosity, int64, error)
	FindByID(ctx context.Context, id string) (*domain.Curiosity, error)
	FindByCategory(ctx context.Context, categoryID string, req PageRequest) ([]domain.Curiosity, int64, error)
	FindRandom(ctx context.Context) (*domain.Curiosity, error)
	ExistsByTextAndCategory(ctx context.Context, text, categoryID string) (bool, error)
	Update(ctx context.Context, curiosity *domain.Curiosity) error
	Delete(ctx context.Context, id string) error
	DeleteByCategory(ctx context.Context, categoryID string) error
}
