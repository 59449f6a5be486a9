package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"spacecatalog-backend/internal/domains/space"
	"spacecatalog-backend/internal/domains/taxonomy"
	"spacecatalog-backend/internal/shared/apperror"
)

type spaceService struct {
	repo space.Repository
	refs *taxonomy.Reconciler
}

func NewSpaceService(repo space.Repository, refs *taxonomy.Reconciler) space.Service {
	return &spaceService{repo: repo, refs: refs}
}

// ===== CREATE =====

func (s *spaceService) Create(ctx context.Context, authorID uuid.UUID, req space.CreateSpaceRequest) (*space.SpaceResponse, error) {
	// 1. Validate payload
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.KindValidation, space.ErrCodeValidation, err.Error(), err)
	}

	// 2. Validate every reference before touching the store; each failure
	// names all missing ids of its kind. Relation lists are sets, so
	// repeated ids collapse before they reach the join tables.
	categoryIDs := taxonomy.DedupeIDs(req.CategoryIDs)
	featureIDs := taxonomy.DedupeIDs(req.FeatureIDs)

	if err := s.refs.ValidateRefs(ctx, taxonomy.KindType, []uuid.UUID{req.TypeID}); err != nil {
		return nil, err
	}
	if err := s.refs.ValidateRefs(ctx, taxonomy.KindCategory, categoryIDs); err != nil {
		return nil, err
	}
	if err := s.refs.ValidateRefs(ctx, taxonomy.KindFeature, featureIDs); err != nil {
		return nil, err
	}

	// 3. Derive a unique slug from the display name
	name := strings.TrimSpace(req.Name)
	slug, err := s.ensureUniqueSlug(ctx, name)
	if err != nil {
		return nil, err
	}

	// 4. Persist the row and both relation sets in one transaction
	now := time.Now()
	sp := &space.Space{
		ID:                 uuid.New(),
		Name:               name,
		Slug:               slug,
		AlternateNames:     sliceOrEmpty(req.AlternateNames),
		Description:        derefOr(req.Description, ""),
		Activities:         sliceOrEmpty(req.Activities),
		HistoricalContext:  req.HistoricalContext,
		ArchitecturalStyle: req.ArchitecturalStyle,
		OperatingHours:     normalizeRaw(req.OperatingHours),
		EntranceFee:        normalizeRaw(req.EntranceFee),
		ContactInfo:        normalizeRaw(req.ContactInfo),
		Accessibility:      normalizeRaw(req.Accessibility),
		TypeID:             req.TypeID,
		SubmittedByID:      authorID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := s.repo.Create(ctx, sp, categoryIDs, featureIDs)
	if err != nil {
		return nil, err
	}

	return space.ToResponse(created), nil
}

// ===== UPDATE =====

func (s *spaceService) Update(ctx context.Context, callerID uuid.UUID, identifier string, req space.UpdateSpaceRequest) (*space.SpaceResponse, error) {
	// 1. Resolve the target by id or slug
	existing, err := s.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	// 2. Authorship check comes before any payload validation
	if !existing.IsAuthor(callerID) {
		return nil, apperror.New(apperror.KindForbidden, space.ErrCodeForbidden,
			"only the author may modify this space")
	}

	// 3. Validate what the payload does carry
	if err := req.Validate(); err != nil {
		return nil, apperror.Wrap(apperror.KindValidation, space.ErrCodeValidation, err.Error(), err)
	}
	if req.Empty() {
		return nil, apperror.New(apperror.KindValidation, space.ErrCodeValidation, "no fields to update")
	}

	upd := space.Update{}

	// 4. The slug follows the name, but only when the name actually changes
	if req.Name.Set {
		name := strings.TrimSpace(req.Name.Value)
		upd.Name = &name
		if name != existing.Name {
			slug, err := s.ensureUniqueSlug(ctx, name)
			if err != nil {
				return nil, err
			}
			upd.Slug = &slug
		}
	}

	// 5. Validate new references before the write
	if req.TypeID.Set {
		if err := s.refs.ValidateRefs(ctx, taxonomy.KindType, []uuid.UUID{req.TypeID.Value}); err != nil {
			return nil, err
		}
		typeID := req.TypeID.Value
		upd.TypeID = &typeID
	}
	if req.CategoryIDs.Set {
		ids := taxonomy.DedupeIDs(idsOrEmpty(req.CategoryIDs.Value, req.CategoryIDs.Null))
		if err := s.refs.ValidateRefs(ctx, taxonomy.KindCategory, ids); err != nil {
			return nil, err
		}
		upd.CategoryIDs = &ids
	}
	if req.FeatureIDs.Set {
		ids := taxonomy.DedupeIDs(idsOrEmpty(req.FeatureIDs.Value, req.FeatureIDs.Null))
		if err := s.refs.ValidateRefs(ctx, taxonomy.KindFeature, ids); err != nil {
			return nil, err
		}
		upd.FeatureIDs = &ids
	}

	// 6. Merge the remaining present fields
	if req.Description.Set {
		// description is never null in storage; null normalizes to ""
		desc := ""
		if !req.Description.Null {
			desc = req.Description.Value
		}
		upd.Description = &desc
	}
	if req.AlternateNames.Set {
		names := sliceOrEmpty(req.AlternateNames.Value)
		upd.AlternateNames = &names
	}
	if req.Activities.Set {
		activities := sliceOrEmpty(req.Activities.Value)
		upd.Activities = &activities
	}
	upd.HistoricalContext = req.HistoricalContext
	upd.ArchitecturalStyle = req.ArchitecturalStyle
	upd.OperatingHours = req.OperatingHours
	upd.EntranceFee = req.EntranceFee
	upd.ContactInfo = req.ContactInfo
	upd.Accessibility = req.Accessibility

	// 7. Persist by the immutable id, never the identifier the client sent
	updated, err := s.repo.Update(ctx, existing.ID, upd)
	if err != nil {
		return nil, err
	}

	return space.ToResponse(updated), nil
}

// ===== DELETE =====

func (s *spaceService) Delete(ctx context.Context, callerID uuid.UUID, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !existing.IsAuthor(callerID) {
		return apperror.New(apperror.KindForbidden, space.ErrCodeForbidden,
			"only the author may delete this space")
	}

	return s.repo.Delete(ctx, id)
}

// ===== READS =====

func (s *spaceService) Get(ctx context.Context, identifier string) (*space.SpaceResponse, error) {
	sp, err := s.repo.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return space.ToResponse(sp), nil
}

func (s *spaceService) List(ctx context.Context) ([]space.SpaceResponse, error) {
	spaces, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return space.ToResponseList(spaces), nil
}

// ===== HELPERS =====

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func sliceOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func idsOrEmpty(ids []uuid.UUID, null bool) []uuid.UUID {
	if null || ids == nil {
		return []uuid.UUID{}
	}
	return ids
}

func normalizeRaw(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return raw
}
