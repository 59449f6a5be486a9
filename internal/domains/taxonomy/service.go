package taxonomy

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business contract for taxonomy management. One instance
// serves a single kind.
type Service interface {
	Create(ctx context.Context, req CreateTaxonomyRequest) (*TaxonomyResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*TaxonomyResponse, error)
	List(ctx context.Context) ([]TaxonomyResponse, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateTaxonomyRequest) (*TaxonomyResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
