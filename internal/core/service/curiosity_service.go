package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/random-knowledge/knowledge-api/internal/core/domain"
	"github.com/random-knowledge/knowledge-api/internal/core/ports"
)

// RandomCache abstracts the short-lived cache in front of the random
// curiosity lookup (Redis). A miss is (nil, nil).
type RandomCache interface {
	Get(ctx context.Context) (*domain.Curiosity, error)
	Set(ctx context.Context, curiosity *domain.Curiosity) error
	Invalidate(ctx context.Context) error
}

// CuriosityService implements curiosity CRUD plus the random pick.
type CuriosityService struct {
	curiosities ports.CuriosityRepository
	categories  ports.CategoryRepository
	cache       RandomCache
	log         zerolog.Logger
}

func NewCuriosityService(
	curiosities ports.CuriosityRepository,
	categories ports.CategoryRepository,
	cache RandomCache,
	log zerolog.Logger,
) *CuriosityService {
	return &CuriosityService{
		curiosities: curiosities,
		categories:  categories,
		cache:       cache,
		log:         log,
	}
}

func (s *CuriosityService) Create(ctx context.Context, categoryID, text string) (*domain.Curiosity, error) {
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}

	exists, err := s.curiosities.ExistsByTextAndCategory(ctx, text, categoryID)
	if err != nil {
		return nil, err
	}
	if exists {
		s.log.Warn().Str("category_id", categoryID).Msg("curiosity already exists in category")
		return nil, domain.ErrCuriosityExists
	}

	curiosity := &domain.Curiosity{
		ID:         uuid.NewString(),
		Curiosity:  text,
		CategoryID: categoryID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.curiosities.Create(ctx, curiosity); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	s.log.Debug().Str("curiosity_id", curiosity.ID).Msg("curiosity created")
	return curiosity, nil
}

func (s *CuriosityService) List(ctx context.Context, req ports.PageRequest) (ports.Page[domain.Curiosity], error) {
	req = req.Normalize()
	items, total, err := s.curiosities.FindAll(ctx, req)
	if err != nil {
		return ports.Page[domain.Curiosity]{}, err
	}
	return ports.NewPage(items, req, total), nil
}

func (s *CuriosityService) Get(ctx context.Context, id string) (*domain.Curiosity, error) {
	return s.curiosities.FindByID(ctx, id)
}

// Random returns a uniformly random curiosity, served from the cache when a
// recent pick is available. Cache failures degrade to a repository read.
func (s *CuriosityService) Random(ctx context.Context) (*domain.Curiosity, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("random cache read failed, falling back to repository")
		} else if cached != nil {
			return cached, nil
		}
	}

	curiosity, err := s.curiosities.FindRandom(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, curiosity); err != nil {
			s.log.Warn().Err(err).Msg("failed to store random curiosity in cache")
		}
	}
	return curiosity, nil
}

func (s *CuriosityService) Update(ctx context.Context, id, text string) (*domain.Curiosity, error) {
	curiosity, err := s.curiosities.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if text != curiosity.Curiosity {
		exists, err := s.curiosities.ExistsByTextAndCategory(ctx, text, curiosity.CategoryID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrCuriosityExists
		}
	}

	curiosity.Curiosity = text
	if err := s.curiosities.Update(ctx, curiosity); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return curiosity, nil
}

func (s *CuriosityService) Delete(ctx context.Context, id string) error {
	if _, err := s.curiosities.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.curiosities.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	s.log.Debug().Str("curiosity_id", id).Msg("curiosity deleted")
	return nil
}

func (s *CuriosityService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to invalidate random curiosity cache")
	}
}
