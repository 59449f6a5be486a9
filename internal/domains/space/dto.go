package space

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"spacecatalog-backend/internal/domains/taxonomy"
	"spacecatalog-backend/internal/shared/optional"
)

type CreateSpaceRequest struct {
	Name               string          `json:"name"`
	Description        *string         `json:"description"`
	AlternateNames     []string        `json:"alternate_names"`
	Activities         []string        `json:"activities"`
	HistoricalContext  *string         `json:"historical_context"`
	ArchitecturalStyle *string         `json:"architectural_style"`
	OperatingHours     json.RawMessage `json:"operating_hours"`
	EntranceFee        json.RawMessage `json:"entrance_fee"`
	ContactInfo        json.RawMessage `json:"contact_info"`
	Accessibility      json.RawMessage `json:"accessibility"`
	TypeID             uuid.UUID       `json:"type_id"`
	CategoryIDs        []uuid.UUID     `json:"category_ids"`
	FeatureIDs         []uuid.UUID     `json:"feature_ids"`
}

func (r CreateSpaceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 200),
			validation.By(notBlank),
		),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.TypeID,
			validation.Required.Error("type_id is required"),
		),
	)
}

// UpdateSpaceRequest is a PATCH payload. Every member is tri-state: absent
// fields stay untouched, null clears where the column allows it, and a
// present list replaces the full relation set even when empty.
type UpdateSpaceRequest struct {
	Name               optional.Field[string]          `json:"name"`
	Description        optional.Field[string]          `json:"description"`
	AlternateNames     optional.Field[[]string]        `json:"alternate_names"`
	Activities         optional.Field[[]string]        `json:"activities"`
	HistoricalContext  optional.Field[string]          `json:"historical_context"`
	ArchitecturalStyle optional.Field[string]          `json:"architectural_style"`
	OperatingHours     optional.Field[json.RawMessage] `json:"operating_hours"`
	EntranceFee        optional.Field[json.RawMessage] `json:"entrance_fee"`
	ContactInfo        optional.Field[json.RawMessage] `json:"contact_info"`
	Accessibility      optional.Field[json.RawMessage] `json:"accessibility"`
	TypeID             optional.Field[uuid.UUID]       `json:"type_id"`
	CategoryIDs        optional.Field[[]uuid.UUID]     `json:"category_ids"`
	FeatureIDs         optional.Field[[]uuid.UUID]     `json:"feature_ids"`
}

func (r UpdateSpaceRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.By(func(interface{}) error {
			if !r.Name.Set {
				return nil
			}
			if r.Name.Null || strings.TrimSpace(r.Name.Value) == "" {
				return validation.NewError("validation_required", "name cannot be empty")
			}
			if len(r.Name.Value) > 200 {
				return validation.NewError("validation_length", "name must be at most 200 characters")
			}
			return nil
		})),
		validation.Field(&r.TypeID, validation.By(func(interface{}) error {
			if r.TypeID.Set && (r.TypeID.Null || r.TypeID.Value == uuid.Nil) {
				return validation.NewError("validation_required", "type_id cannot be null")
			}
			return nil
		})),
		validation.Field(&r.Description, validation.By(func(interface{}) error {
			if r.Description.Set && !r.Description.Null && len(r.Description.Value) > 5000 {
				return validation.NewError("validation_length", "description must be at most 5000 characters")
			}
			return nil
		})),
	)
}

// Empty reports whether the payload touches nothing.
func (r UpdateSpaceRequest) Empty() bool {
	return !r.Name.Set && !r.Description.Set && !r.AlternateNames.Set &&
		!r.Activities.Set && !r.HistoricalContext.Set && !r.ArchitecturalStyle.Set &&
		!r.OperatingHours.Set && !r.EntranceFee.Set && !r.ContactInfo.Set &&
		!r.Accessibility.Set && !r.TypeID.Set && !r.CategoryIDs.Set && !r.FeatureIDs.Set
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
}

// SpaceResponse is the client-facing shape: categories and features are
// flattened to sorted name lists.
type SpaceResponse struct {
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
	Categories         []string        `json:"categories"`
	Features           []string        `json:"features"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func ToResponse(s *Space) *SpaceResponse {
	return &SpaceResponse{
		ID:                 s.ID,
		Name:               s.Name,
		Slug:               s.Slug,
		AlternateNames:     emptyIfNil(s.AlternateNames),
		Description:        s.Description,
		Activities:         emptyIfNil(s.Activities),
		HistoricalContext:  s.HistoricalContext,
		ArchitecturalStyle: s.ArchitecturalStyle,
		OperatingHours:     s.OperatingHours,
		EntranceFee:        s.EntranceFee,
		ContactInfo:        s.ContactInfo,
		Accessibility:      s.Accessibility,
		TypeID:             s.TypeID,
		SubmittedByID:      s.SubmittedByID,
		Categories:         refNames(s.Categories),
		Features:           refNames(s.Features),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func ToResponseList(items []Space) []SpaceResponse {
	out := make([]SpaceResponse, 0, len(items))
	for i := range items {
		out = append(out, *ToResponse(&items[i]))
	}
	return out
}

func refNames(refs []taxonomy.Ref) []string {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		names = append(names, ref.Name)
	}
	sort.Strings(names)
	return names
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
