package space

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for spaces. Writes that touch the
// relations happen inside one transaction with the row write.
type Repository interface {
	Create(ctx context.Context, sp *Space, categoryIDs, featureIDs []uuid.UUID) (*Space, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Space, error)
	// GetByIdentifier resolves an id-or-slug path segment.
	GetByIdentifier(ctx context.Context, identifier string) (*Space, error)
	List(ctx context.Context) ([]Space, error)
	Update(ctx context.Context, id uuid.UUID, upd Update) (*Space, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}
