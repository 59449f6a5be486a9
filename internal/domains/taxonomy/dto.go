package taxonomy

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"spacecatalog-backend/internal/shared/optional"
)

type CreateTaxonomyRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (r CreateTaxonomyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 100),
			validation.By(notBlank),
		),
		validation.Field(&r.Description, validation.Length(0, 1000)),
	)
}

type UpdateTaxonomyRequest struct {
	Name        optional.Field[string] `json:"name"`
	Description optional.Field[string] `json:"description"`
}

func (r UpdateTaxonomyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.By(func(interface{}) error {
			if !r.Name.Set {
				return nil
			}
			if r.Name.Null || strings.TrimSpace(r.Name.Value) == "" {
				return validation.NewError("validation_required", "name cannot be empty")
			}
			if len(r.Name.Value) > 100 {
				return validation.NewError("validation_length", "name must be at most 100 characters")
			}
			return nil
		})),
		validation.Field(&r.Description, validation.By(func(interface{}) error {
			if r.Description.Set && !r.Description.Null && len(r.Description.Value) > 1000 {
				return validation.NewError("validation_length", "description must be at most 1000 characters")
			}
			return nil
		})),
	)
}

// Empty reports whether the request touches nothing.
func (r UpdateTaxonomyRequest) Empty() bool {
	return !r.Name.Set && !r.Description.Set
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
}

type TaxonomyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToResponse(t *Taxonomy) *TaxonomyResponse {
	return &TaxonomyResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func ToResponseList(items []Taxonomy) []TaxonomyResponse {
	out := make([]TaxonomyResponse, 0, len(items))
	for i := range items {
		out = append(out, *ToResponse(&items[i]))
	}
	return out
}
