package taxonomy

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract shared by all three kinds.
type Repository interface {
	Create(ctx context.Context, kind Kind, t *Taxonomy) (*Taxonomy, error)
	GetByID(ctx context.Context, kind Kind, id uuid.UUID) (*Taxonomy, error)
	List(ctx context.Context, kind Kind) ([]Taxonomy, error)
	Update(ctx context.Context, kind Kind, id uuid.UUID, upd Update) (*Taxonomy, error)
	Delete(ctx context.Context, kind Kind, id uuid.UUID) error

	// ExistingIDs reports which of the given ids exist, as a set. Callers
	// diff against their input to name every missing id.
	ExistingIDs(ctx context.Context, kind Kind, ids []uuid.UUID) (map[uuid.UUID]struct{}, error)
}

// Update carries the fields of a partial taxonomy update. Nil name means
// untouched; Description uses presence flags because null clears it.
type Update struct {
	Name             *string
	Description      *string
	ClearDescription bool
}
