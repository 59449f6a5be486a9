package taxonomy

import (
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the three reference taxonomies. All of them share the
// same shape and behavior; only the table and the wording differ.
type Kind string

const (
	KindType     Kind = "type"
	KindCategory Kind = "category"
	KindFeature  Kind = "feature"
)

// Table returns the backing table name for the kind.
func (k Kind) Table() string {
	switch k {
	case KindType:
		return "space_types"
	case KindCategory:
		return "categories"
	default:
		return "features"
	}
}

// Label returns the human-readable singular name used in messages.
func (k Kind) Label() string {
	switch k {
	case KindType:
		return "space type"
	case KindCategory:
		return "category"
	default:
		return "feature"
	}
}

// Taxonomy is one row of a reference taxonomy.
type Taxonomy struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Ref is the id+name pair loaded when a space's relations are resolved.
type Ref struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
