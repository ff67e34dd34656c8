package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/random-knowledge/knowledge-api/internal/core/domain"
	"github.com/random-knowledge/knowledge-api/internal/core/ports"
)

// CategoryService implements category CRUD. Deleting a category also drops
// its curiosities, matching the cascade semantics of the data model.
type CategoryService struct {
	categories  ports.CategoryRepository
	curiosities ports.CuriosityRepository
	log         zerolog.Logger
}

func NewCategoryService(
	categories ports.CategoryRepository,
	curiosities ports.CuriosityRepository,
	log zerolog.Logger,
) *CategoryService {
	return &CategoryService{categories: categories, curiosities: curiosities, log: log}
}

func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	exists, err := s.categories.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		s.log.Warn().Str("name", name).Msg("category name already in use")
		return nil, domain.ErrCategoryExists
	}

	category := &domain.Category{
		ID:   uuid.NewString(),
		Name: name,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	s.log.Debug().Str("name", name).Msg("category created")
	return category, nil
}

func (s *CategoryService) List(ctx context.Context, req ports.PageRequest) (ports.Page[domain.Category], error) {
	req = req.Normalize()
	items, total, err := s.categories.FindAll(ctx, req)
	if err != nil {
		return ports.Page[domain.Category]{}, err
	}
	return ports.NewPage(items, req, total), nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*domain.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CategoryService) ListCuriosities(ctx context.Context, categoryID string, req ports.PageRequest) (ports.Page[domain.Curiosity], error) {
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return ports.Page[domain.Curiosity]{}, err
	}

	req = req.Normalize()
	items, total, err := s.curiosities.FindByCategory(ctx, categoryID, req)
	if err != nil {
		return ports.Page[domain.Curiosity]{}, err
	}
	return ports.NewPage(items, req, total), nil
}

func (s *CategoryService) Update(ctx context.Context, id, name string) (*domain.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != category.Name {
		exists, err := s.categories.ExistsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if exists {
			s.log.Warn().Str("name", name).Msg("category rename rejected: name already in use")
			return nil, domain.ErrCategoryExists
		}
	}

	category.Name = name
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.curiosities.DeleteByCategory(ctx, id); err != nil {
		return err
	}
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Debug().Str("category_id", id).Msg("category deleted")
	return nil
}
