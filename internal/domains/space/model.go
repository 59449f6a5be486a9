package space

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"spacecatalog-backend/internal/domains/taxonomy"
	"spacecatalog-backend/internal/shared/optional"
)

// Space is a catalogued point of interest. The four document fields are
// opaque JSON: the service stores and returns them without inspecting
// their shape.
type Space struct {
	ID                 uuid.UUID       `json:"id"`
	Name               string          `json:"name"`
	Slug               string          `json:"slug"`
	AlternateNames     []string        `json:"alternate_names"`
	Description        string          `json:"description"`
	Activities         []string        `json:"activities"`
	HistoricalContext  *string         `json:"historical_context,omitempty"`
	ArchitecturalStyle *string         `json:"architectural_style,omitempty"`
	OperatingHours     json.RawMessage `json:"operating_hours,omitempty"`
	EntranceFee        json.RawMessage `json:"entrance_fee,omitempty"`
	ContactInfo        json.RawMessage `json:"contact_info,omitempty"`
	Accessibility      json.RawMessage `json:"accessibility,omitempty"`
	TypeID             uuid.UUID       `json:"type_id"`
	SubmittedByID      uuid.UUID       `json:"submitted_by_id"`
	Categories         []taxonomy.Ref  `json:"categories"`
	Features           []taxonomy.Ref  `json:"features"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// IsAuthor reports whether userID submitted this space. Authorship never
// changes after creation.
func (s *Space) IsAuthor(userID uuid.UUID) bool {
	return s.SubmittedByID == userID
}

// Update is the merged field set handed to the repository. nil pointers
// mean untouched; optional fields carry an explicit null when the column
// should be cleared. Relation slices replace the full set when non-nil,
// including replacement with the empty set.
type Update struct {
	Name               *string
	Slug               *string
	Description        *string
	AlternateNames     *[]string
	Activities         *[]string
	HistoricalContext  optional.Field[string]
	ArchitecturalStyle optional.Field[string]
	OperatingHours     optional.Field[json.RawMessage]
	EntranceFee        optional.Field[json.RawMessage]
	ContactInfo        optional.Field[json.RawMessage]
	Accessibility      optional.Field[json.RawMessage]
	TypeID             *uuid.UUID
	CategoryIDs        *[]uuid.UUID
	FeatureIDs         *[]uuid.UUID
}
