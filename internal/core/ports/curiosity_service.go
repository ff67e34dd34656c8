package ports

import (
	"context"

	"github.com/random-knowledge/knowledge-api/internal/core/domain"
)

type CuriosityService interface {
	Create(ctx context.Context, categoryID, text string) (*domain.Curiosity, error)
	List(ctx context.Context, req PageRequest) (Page[domain.Curiosity], error)
	Get(ctx context.Context, id string) (*domain.Curiosity, error)
	Random(ctx context.Context) (*domain.Curiosity, error)
	Update(ctx context.Context, id, text string) (*domain.Curiosity, error)
	Delete(ctx context.Context, id string) error
}
