package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"spacecatalog-backend/internal/domains/taxonomy"
	"spacecatalog-backend/internal/shared/apperror"
	"spacecatalog-backend/pkg/cache"
)

const listCacheTTL = 5 * time.Minute

// taxonomyService serves one kind. Three instances are wired in the
// container, all sharing the repository and cache.
type taxonomyService struct {
	kind  taxonomy.Kind
	repo  taxonomy.Repository
	cache cache.Cache
}

func NewTaxonomyService(kind taxonomy.Kind, repo taxonomy.Repository, c cache.Cache) taxonomy.Service {
	return &taxonomyService{kind: kind, repo: repo, cache: c}
}

func (s *taxonomyService) listCacheKey() string {
	return fmt.Sprintf("taxonomy:%s:list", s.kind)
}

func (s *taxonomyService) Create(ctx context.Context, req taxonomy.CreateTaxonomyRequest) (*taxonomy.TaxonomyResponse, error) {
	// 1. Validate payload
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.KindValidation, taxonomy.ErrCodeValidation, err.Error(), err)
	}

	// 2. Persist; a duplicate name surfaces as Conflict from the repository
	created, err := s.repo.Create(ctx, s.kind, &taxonomy.Taxonomy{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}

	s.invalidateList(ctx)
	return taxonomy.ToResponse(created), nil
}

func (s *taxonomyService) GetByID(ctx context.Context, id uuid.UUID) (*taxonomy.TaxonomyResponse, error) {
	t, err := s.repo.GetByID(ctx, s.kind, id)
	if err != nil {
		return nil, err
	}
	return taxonomy.ToResponse(t), nil
}

func (s *taxonomyService) List(ctx context.Context) ([]taxonomy.TaxonomyResponse, error) {
	// Cache hit path; a cache error just falls through to the database
	var cached []taxonomy.TaxonomyResponse
	if found, err := s.cache.Get(ctx, s.listCacheKey(), &cached); err == nil && found {
		return cached, nil
	}

	items, err := s.repo.List(ctx, s.kind)
	if err != nil {
		return nil, err
	}

	result := taxonomy.ToResponseList(items)
	if err := s.cache.Set(ctx, s.listCacheKey(), result, listCacheTTL); err != nil {
		log.Debug().Err(err).Str("kind", string(s.kind)).Msg("taxonomy list cache set failed")
	}
	return result, nil
}

func (s *taxonomyService) Update(ctx context.Context, id uuid.UUID, req taxonomy.UpdateTaxonomyRequest) (*taxonomy.TaxonomyResponse, error) {
	// 1. Validate payload
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.KindValidation, taxonomy.ErrCodeValidation, err.Error(), err)
	}
	if req.Empty() {
		return nil, apperror.New(apperror.KindValidation, taxonomy.ErrCodeValidation, "no fields to update")
	}

	// 2. Build the partial update from present fields only
	upd := taxonomy.Update{}
	if req.Name.Set {
		name := strings.TrimSpace(req.Name.Value)
		upd.Name = &name
	}
	if req.Description.Set {
		if req.Description.Null {
			upd.ClearDescription = true
		} else {
			upd.Description = &req.Description.Value
		}
	}

	updated, err := s.repo.Update(ctx, s.kind, id, upd)
	if err != nil {
		return nil, err
	}

	s.invalidateList(ctx)
	return taxonomy.ToResponse(updated), nil
}

func (s *taxonomyService) Delete(ctx context.Context, id uuid.UUID) error {
	// Delete is blocked with Conflict while any space still references the
	// row; the repository maps the restrict violation.
	if err := s.repo.Delete(ctx, s.kind, id); err != nil {
		return err
	}

	s.invalidateList(ctx)
	return nil
}

func (s *taxonomyService) invalidateList(ctx context.Context) {
	if err := s.cache.Delete(ctx, s.listCacheKey()); err != nil {
		log.Debug().Err(err).Str("kind", string(s.kind)).Msg("taxonomy list cache invalidation failed")
	}
}
