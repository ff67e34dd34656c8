package ports

import (
	"context"

	"github.com/random-knowledge/knowledge-api/internal/core/domain"
)

type CategoryService interface {
	Create(ctx context.Context, name string) (*domain.Category, error)
	List(ctx context.Context, req PageRequest) (Page[domain.Category], error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	ListCuriosities(ctx context.Context, categoryID string, req PageRequest) (Page[domain.Curiosity], error)
	Update(ctx context.Context, id, name string) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}
