package service

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacecatalog-backend/internal/domains/space"
	"spacecatalog-backend/internal/domains/taxonomy"
	"spacecatalog-backend/internal/shared/apperror"
	"spacecatalog-backend/internal/shared/optional"
)

// fakeRefStore answers taxonomy lookups from in-memory id→name maps. Only
// ExistingIDs is exercised by the space service.
type fakeRefStore struct {
	types      map[uuid.UUID]string
	categories map[uuid.UUID]string
	features   map[uuid.UUID]string
}

func newFakeRefStore() *fakeRefStore {
	return &fakeRefStore{
		types:      make(map[uuid.UUID]string),
		categories: make(map[uuid.UUID]string),
		features:   make(map[uuid.UUID]string),
	}
}

func (r *fakeRefStore) names(kind taxonomy.Kind) map[uuid.UUID]string {
	switch kind {
	case taxonomy.KindType:
		return r.types
	case taxonomy.KindCategory:
		return r.categories
	default:
		return r.features
	}
}

func (r *fakeRefStore) addType(name string) uuid.UUID {
	id := uuid.New()
	r.types[id] = name
	return id
}

func (r *fakeRefStore) addCategory(name string) uuid.UUID {
	id := uuid.New()
	r.categories[id] = name
	return id
}

func (r *fakeRefStore) addFeature(name string) uuid.UUID {
	id := uuid.New()
	r.features[id] = name
	return id
}

func (r *fakeRefStore) Create(context.Context, taxonomy.Kind, *taxonomy.Taxonomy) (*taxonomy.Taxonomy, error) {
	panic("not used")
}

func (r *fakeRefStore) GetByID(context.Context, taxonomy.Kind, uuid.UUID) (*taxonomy.Taxonomy, error) {
	panic("not used")
}

func (r *fakeRefStore) List(context.Context, taxonomy.Kind) ([]taxonomy.Taxonomy, error) {
	panic("not used")
}

func (r *fakeRefStore) Update(context.Context, taxonomy.Kind, uuid.UUID, taxonomy.Update) (*taxonomy.Taxonomy, error) {
	panic("not used")
}

func (r *fakeRefStore) Delete(context.Context, taxonomy.Kind, uuid.UUID) error {
	panic("not used")
}

func (r *fakeRefStore) ExistingIDs(_ context.Context, kind taxonomy.Kind, ids []uuid.UUID) (map[uuid.UUID]struct{}, error) {
	known := r.names(kind)
	out := make(map[uuid.UUID]struct{})
	for _, id := range ids {
		if _, ok := known[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out, nil
}

// fakeSpaceRepo mimics the transactional store: rows plus both relation
// sets, with slug uniqueness enforced on write.
type fakeSpaceRepo struct {
	refs        *fakeRefStore
	spaces      map[uuid.UUID]*space.Space
	categoryIDs map[uuid.UUID][]uuid.UUID
	featureIDs  map[uuid.UUID][]uuid.UUID
	slugProbes  int

	// raceSlugs simulates another writer grabbing a slug between the
	// existence probe and the insert: SlugExists answers free, the write
	// still hits the unique constraint.
	raceSlugs map[string]bool
}

func newFakeSpaceRepo(refs *fakeRefStore) *fakeSpaceRepo {
	return &fakeSpaceRepo{
		refs:        refs,
		spaces:      make(map[uuid.UUID]*space.Space),
		categoryIDs: make(map[uuid.UUID][]uuid.UUID),
		featureIDs:  make(map[uuid.UUID][]uuid.UUID),
	}
}

func (r *fakeSpaceRepo) resolve(id uuid.UUID) *space.Space {
	row := r.spaces[id]
	out := *row
	out.Categories = r.relationRefs(taxonomy.KindCategory, r.categoryIDs[id])
	out.Features = r.relationRefs(taxonomy.KindFeature, r.featureIDs[id])
	return &out
}

func (r *fakeSpaceRepo) relationRefs(kind taxonomy.Kind, ids []uuid.UUID) []taxonomy.Ref {
	names := r.refs.names(kind)
	out := make([]taxonomy.Ref, 0, len(ids))
	for _, id := range ids {
		out = append(out, taxonomy.Ref{ID: id, Name: names[id]})
	}
	return out
}

func (r *fakeSpaceRepo) slugTaken(slug string, exclude uuid.UUID) bool {
	for id, row := range r.spaces {
		if id != exclude && row.Slug == slug {
			return true
		}
	}
	return false
}

func (r *fakeSpaceRepo) Create(_ context.Context, sp *space.Space, categoryIDs, featureIDs []uuid.UUID) (*space.Space, error) {
	if r.raceSlugs[sp.Slug] || r.slugTaken(sp.Slug, sp.ID) {
		return nil, apperror.New(apperror.KindConflict, space.ErrCodeSlugConflict, "slug is already in use")
	}
	row := *sp
	r.spaces[row.ID] = &row
	r.categoryIDs[row.ID] = append([]uuid.UUID{}, categoryIDs...)
	r.featureIDs[row.ID] = append([]uuid.UUID{}, featureIDs...)
	return r.resolve(row.ID), nil
}

func (r *fakeSpaceRepo) GetByID(_ context.Context, id uuid.UUID) (*space.Space, error) {
	if _, ok := r.spaces[id]; !ok {
		return nil, apperror.New(apperror.KindNotFound, space.ErrCodeNotFound, "space not found")
	}
	return r.resolve(id), nil
}

func (r *fakeSpaceRepo) GetByIdentifier(_ context.Context, identifier string) (*space.Space, error) {
	if id, err := uuid.Parse(identifier); err == nil {
		if _, ok := r.spaces[id]; ok {
			return r.resolve(id), nil
		}
	}
	for id, row := range r.spaces {
		if row.Slug == identifier {
			return r.resolve(id), nil
		}
	}
	return nil, apperror.New(apperror.KindNotFound, space.ErrCodeNotFound, "space not found")
}

func (r *fakeSpaceRepo) List(_ context.Context) ([]space.Space, error) {
	out := make([]space.Space, 0, len(r.spaces))
	for id := range r.spaces {
		out = append(out, *r.resolve(id))
	}
	return out, nil
}

func (r *fakeSpaceRepo) Update(_ context.Context, id uuid.UUID, upd space.Update) (*space.Space, error) {
	row, ok := r.spaces[id]
	if !ok {
		return nil, apperror.New(apperror.KindNotFound, space.ErrCodeNotFound, "space not found")
	}
	if upd.Slug != nil && r.slugTaken(*upd.Slug, id) {
		return nil, apperror.New(apperror.KindConflict, space.ErrCodeSlugConflict, "slug is already in use")
	}

	if upd.Name != nil {
		row.Name = *upd.Name
	}
	if upd.Slug != nil {
		row.Slug = *upd.Slug
	}
	if upd.Description != nil {
		row.Description = *upd.Description
	}
	if upd.AlternateNames != nil {
		row.AlternateNames = *upd.AlternateNames
	}
	if upd.Activities != nil {
		row.Activities = *upd.Activities
	}
	if upd.HistoricalContext.Set {
		row.HistoricalContext = upd.HistoricalContext.Ptr()
	}
	if upd.ArchitecturalStyle.Set {
		row.ArchitecturalStyle = upd.ArchitecturalStyle.Ptr()
	}
	if upd.OperatingHours.Set {
		row.OperatingHours = upd.OperatingHours.Value
	}
	if upd.EntranceFee.Set {
		row.EntranceFee = upd.EntranceFee.Value
	}
	if upd.ContactInfo.Set {
		row.ContactInfo = upd.ContactInfo.Value
	}
	if upd.Accessibility.Set {
		row.Accessibility = upd.Accessibility.Value
	}
	if upd.TypeID != nil {
		row.TypeID = *upd.TypeID
	}
	if upd.CategoryIDs != nil {
		r.categoryIDs[id] = append([]uuid.UUID{}, (*upd.CategoryIDs)...)
	}
	if upd.FeatureIDs != nil {
		r.featureIDs[id] = append([]uuid.UUID{}, (*upd.FeatureIDs)...)
	}
	row.UpdatedAt = time.Now()
	return r.resolve(id), nil
}

func (r *fakeSpaceRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.spaces[id]; !ok {
		return apperror.New(apperror.KindNotFound, space.ErrCodeNotFound, "space not found")
	}
	delete(r.spaces, id)
	delete(r.categoryIDs, id)
	delete(r.featureIDs, id)
	return nil
}

func (r *fakeSpaceRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	r.slugProbes++
	return r.slugTaken(slug, uuid.Nil), nil
}

type fixture struct {
	svc     space.Service
	repo    *fakeSpaceRepo
	refs    *fakeRefStore
	author  uuid.UUID
	typeID  uuid.UUID
	parkID  uuid.UUID
	plazaID uuid.UUID
	wifiID  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	refs := newFakeRefStore()
	repo := newFakeSpaceRepo(refs)
	f := &fixture{
		svc:     NewSpaceService(repo, taxonomy.NewReconciler(refs)),
		repo:    repo,
		refs:    refs,
		author:  uuid.New(),
		typeID:  refs.addType("Public Space"),
		parkID:  refs.addCategory("Park"),
		plazaID: refs.addCategory("Plaza"),
		wifiID:  refs.addFeature("Free Wifi"),
	}
	return f
}

func (f *fixture) create(t *testing.T, req space.CreateSpaceRequest) *space.SpaceResponse {
	t.Helper()
	if req.TypeID == uuid.Nil {
		req.TypeID = f.typeID
	}
	created, err := f.svc.Create(context.Background(), f.author, req)
	require.NoError(t, err)
	return created
}

// ===== CREATE =====

func TestCreateSpace(t *testing.T) {
	f := newFixture(t)

	desc := "the old market square"
	created := f.create(t, space.CreateSpaceRequest{
		Name:        "Thành Nội Square",
		Description: &desc,
		CategoryIDs: []uuid.UUID{f.plazaID, f.parkID},
		FeatureIDs:  []uuid.UUID{f.wifiID},
	})

	assert.Equal(t, "Thành Nội Square", created.Name)
	assert.Equal(t, "thanh-noi-square", created.Slug)
	assert.Equal(t, "the old market square", created.Description)
	assert.Equal(t, f.author, created.SubmittedByID)
	assert.Equal(t, []string{"Park", "Plaza"}, created.Categories)
	assert.Equal(t, []string{"Free Wifi"}, created.Features)
}

func TestCreateSpaceDefaults(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, space.CreateSpaceRequest{Name: "City Park"})

	// Omitted collections come back as empty lists, never null.
	assert.Equal(t, "", created.Description)
	assert.Equal(t, []string{}, created.AlternateNames)
	assert.Equal(t, []string{}, created.Activities)
	assert.Equal(t, []string{}, created.Categories)
	assert.Equal(t, []string{}, created.Features)
	assert.Nil(t, created.HistoricalContext)
	assert.Nil(t, created.OperatingHours)
}

func TestCreateSpaceValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), f.author, space.CreateSpaceRequest{
		Name:   "   ",
		TypeID: f.typeID,
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = f.svc.Create(context.Background(), f.author, space.CreateSpaceRequest{
		Name: "City Park",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Empty(t, f.repo.spaces)
}

func TestCreateSpaceUnknownType(t *testing.T) {
	f := newFixture(t)
	bogus := uuid.New()

	_, err := f.svc.Create(context.Background(), f.author, space.CreateSpaceRequest{
		Name:   "City Park",
		TypeID: bogus,
	})
	require.Error(t, err)

	appErr := apperror.From(err)
	assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	assert.Equal(t, taxonomy.ErrCodeMissingRefs, appErr.Code)
	assert.Contains(t, appErr.Message, bogus.String())
	assert.Empty(t, f.repo.spaces)
}

func TestCreateSpaceNamesAllMissingCategories(t *testing.T) {
	f := newFixture(t)
	missing1 := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	missing2 := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	_, err := f.svc.Create(context.Background(), f.author, space.CreateSpaceRequest{
		Name:        "City Park",
		TypeID:      f.typeID,
		CategoryIDs: []uuid.UUID{f.parkID, missing2, missing1},
	})
	require.Error(t, err)

	appErr := apperror.From(err)
	assert.Equal(t, taxonomy.ErrCodeMissingRefs, appErr.Code)
	assert.Contains(t, appErr.Message, missing1.String())
	assert.Contains(t, appErr.Message, missing2.String())
	assert.NotContains(t, appErr.Message, f.parkID.String())
	assert.Empty(t, f.repo.spaces)
}

func TestCreateSpaceCollapsesDuplicateRelationIDs(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, space.CreateSpaceRequest{
		Name:        "City Park",
		CategoryIDs: []uuid.UUID{f.parkID, f.parkID},
		FeatureIDs:  []uuid.UUID{f.wifiID, f.wifiID, f.wifiID},
	})

	// Relation lists are sets; one join row per distinct id.
	assert.Equal(t, []string{"Park"}, created.Categories)
	assert.Equal(t, []string{"Free Wifi"}, created.Features)
	assert.Len(t, f.repo.categoryIDs[created.ID], 1)
	assert.Len(t, f.repo.featureIDs[created.ID], 1)
}

// ===== SLUG DERIVATION =====

func TestCreateSpaceSequentialSlugSuffixes(t *testing.T) {
	f := newFixture(t)

	first := f.create(t, space.CreateSpaceRequest{Name: "City Park"})
	second := f.create(t, space.CreateSpaceRequest{Name: "City Park"})
	third := f.create(t, space.CreateSpaceRequest{Name: "City Park"})

	assert.Equal(t, "city-park", first.Slug)
	assert.Equal(t, "city-park-1", second.Slug)
	// The suffix always hangs off the base slug, never off a previous
	// candidate.
	assert.Equal(t, "city-park-2", third.Slug)
}

func TestCreateSpaceSlugFallsBackToRandomSuffix(t *testing.T) {
	f := newFixture(t)

	// Occupy the base slug and all numeric candidates.
	for i := 0; i < maxSlugAttempts; i++ {
		slug := "city-park"
		if i > 0 {
			slug = fmt.Sprintf("city-park-%d", i)
		}
		id := uuid.New()
		f.repo.spaces[id] = &space.Space{ID: id, Name: "City Park", Slug: slug, TypeID: f.typeID, SubmittedByID: f.author}
	}

	created := f.create(t, space.CreateSpaceRequest{Name: "City Park"})
	assert.Regexp(t, regexp.MustCompile(`^city-park-[0-9a-f]{8}$`), created.Slug)
}

func TestCreateSpaceLosingSlugRaceSurfacesConflict(t *testing.T) {
	f := newFixture(t)
	f.repo.raceSlugs = map[string]bool{"city-park": true}

	_, err := f.svc.Create(context.Background(), f.author, space.CreateSpaceRequest{
		Name:   "City Park",
		TypeID: f.typeID,
	})
	require.Error(t, err)

	// The pre-check reported the slug free; the write-time conflict is
	// surfaced, not retried.
	appErr := apperror.From(err)
	assert.Equal(t, apperror.KindConflict, appErr.Kind)
	assert.Equal(t, space.ErrCodeSlugConflict, appErr.Code)
	assert.Empty(t, f.repo.spaces)
}

func TestCreateSpaceEmptySlugBase(t *testing.T) {
	f := newFixture(t)

	created := f.create(t, space.CreateSpaceRequest{Name: "公園"})
	assert.Equal(t, "space", created.Slug)
}

// ===== UPDATE =====

func TestUpdateSpaceByAuthor(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, space.CreateSpaceRequest{Name: "City Park"})

	updated, err := f.svc.Update(context.Background(), f.author, created.ID.String(), space.UpdateSpaceRequest{
		Description: optional.Of("renovated in 2024"),
	})
	require.NoError(t, err)
	assert.Equal(t, "renovated in 2024", updated.Description)
	assert.Equal(t, created.Slug, updated.Slug)
}

func TestUpdateSpaceBySlugIdentifier(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, space.CreateSpaceRequest{Name: "City Park"})

	updated, err := f.svc.Update(context.Background(), f.author, "city-park", space.UpdateSpaceRequest{
		Activities: optional.Of([]string{"jogging"}),
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, []string{"jogging"}, updated.Activities)
}

func TestUpdateSpaceForbiddenForNonAuthor(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, space.CreateSpaceRequest{Name: "City Park"})
	stranger := uuid.New()

	// The payload is also invalid; authorship is still checked first.
	_, err := f.svc.Update(context.Background(), stranger, created.ID.String(), space.UpdateSpaceRequest{
		Name: optional.Of("   "),
	})
	require.Error(t, err)

	appErr := apperror.From(err)
	assert.Equal(t, apperror.KindForbidden, appErr.Kind)
	assert.Equal(t, space.ErrCodeForbidden, appErr.Code)

	// Nothing was mutated.
	current, err := f.svc.Get(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "City Park", current.Name)
}

func TestUpdateSpaceNotFoundBeatsForbidden(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Update(context.Background(), uuid.New(), "no-such-space", space.UpdateSpaceRequest{
		Name: optional.Of("Anything"),
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestUpdateSpaceEmptyPayloadRejected(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, space.CreateSpaceRequest{Name: "City Park"})

	_, err := f.svc.Update(context.Background(), f.author, created.ID.String(), space.UpdateSpaceRequest{})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestUpdateSpaceRenameRegeneratesSlug(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, space.CreateSpaceRequest{Name: "City Park"})

	updated, err := f.svc.Update(context.Background(), f.author, created.ID.String(), space.UpdateSpaceRequest{
		Name: optional.Of("Riverside Park"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Riverside Park", updated.Name)
	assert.Equal(t, "riverside-park", updated.Slug)
}

func TestUpdateSpaceSameNameKeepsSlug(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, space.CreateSpaceRequest{Name: "City Park"})
	probesBefore := f.repo.slugProbes

	updated, err := f.svc.Update(context.Background(), f.author, created.ID.String(), space.UpdateSpaceRequest{
		Name: optional.Of("City Park"),
	})
	require.NoError(t, err)
	assert.Equal(t, "city-park", updated.Slug)
	// An unchanged name never probes for a new slug.
	assert.Equal(t, probesBefore, f.repo.slugProbes)
}

func TestUpdateSpaceRenameOntoTakenSlugGetsSuffix(t *testing.T) {
	f := newFixture(t)
	f.create(t, space.CreateSpaceRequest{Name: "Riverside Park"})
	created := f.create(t, space.CreateSpaceRequest{Name: "City Park"})

	updated, err := f.svc.Update(context.Background(), f.author, created.ID.String(), space.UpdateSpaceRequest{
		Name: optional.Of("Riverside Park"),
	})
	require.NoError(t, err)
	assert.Equal(t, "riverside-park-1", updated.Slug)
}

func TestUpdateSpaceRelationSetStates(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, space.CreateSpaceRequest{
		Name:        "City Park",
		CategoryIDs: []uuid.UUID{f.parkID},
		FeatureIDs:  []uuid.UUID{f.wifiID},
	})

	// Absent lists stay untouched.
	updated, err := f.svc.Update(context.Background(), f.author, created.ID.String(), space.UpdateSpaceRequest{
		Description: optional.Of("still here"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Park"}, updated.Categories)
	assert.Equal(t, []string{"Free Wifi"}, updated.Features)

	// A present list replaces the whole set.
	updated, err = f.svc.Update(context.Background(), f.author, created.ID.String(), space.UpdateSpaceRequest{
		CategoryIDs: optional.Of([]uuid.UUID{f.plazaID, f.parkID}),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Park", "Plaza"}, updated.Categories)

	// An empty list clears the set; features remain untouched.
	updated, err = f.svc.Update(context.Background(), f.author, created.ID.String(), space.UpdateSpaceRequest{
		CategoryIDs: optional.Of([]uuid.UUID{}),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{}, updated.Categories)
	assert.Equal(t, []string{"Free Wifi"}, updated.Features)

	// Explicit null behaves like the empty set.
	updated, err = f.svc.Update(context.Background(), f.author, created.ID.String(), space.UpdateSpaceRequest{
		FeatureIDs: optional.Null[[]uuid.UUID](),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{}, updated.Features)
}

func TestUpdateSpaceCollapsesDuplicateRelationIDs(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, space.CreateSpaceRequest{Name: "City Park"})

	updated, err := f.svc.Update(context.Background(), f.author, created.ID.String(), space.UpdateSpaceRequest{
		CategoryIDs: optional.Of([]uuid.UUID{f.plazaID, f.plazaID, f.parkID}),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Park", "Plaza"}, updated.Categories)
	assert.Len(t, f.repo.categoryIDs[created.ID], 2)
}

func TestUpdateSpaceMissingCategoryRefsNamed(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, space.CreateSpaceRequest{
		Name:        "City Park",
		CategoryIDs: []uuid.UUID{f.parkID},
	})
	missing1 := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	missing2 := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	_, err := f.svc.Update(context.Background(), f.author, created.ID.String(), space.UpdateSpaceRequest{
		CategoryIDs: optional.Of([]uuid.UUID{missing1, f.plazaID, missing2}),
	})
	require.Error(t, err)

	appErr := apperror.From(err)
	assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	assert.Equal(t, taxonomy.ErrCodeMissingRefs, appErr.Code)
	assert.Contains(t, appErr.Message, missing1.String())
	assert.Contains(t, appErr.Message, missing2.String())

	// The old relation set survives the failed update.
	current, err := f.svc.Get(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, []string{"Park"}, current.Categories)
}

func TestUpdateSpaceUnknownTypeRejected(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, space.CreateSpaceRequest{Name: "City Park"})

	_, err := f.svc.Update(context.Background(), f.author, created.ID.String(), space.UpdateSpaceRequest{
		TypeID: optional.Of(uuid.New()),
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestUpdateSpaceNullDescriptionNormalizesToEmpty(t *testing.T) {
	f := newFixture(t)
	desc := "original text"
	created := f.create(t, space.CreateSpaceRequest{Name: "City Park", Description: &desc})

	updated, err := f.svc.Update(context.Background(), f.author, created.ID.String(), space.UpdateSpaceRequest{
		Description: optional.Null[string](),
	})
	require.NoError(t, err)
	assert.Equal(t, "", updated.Description)
}

func TestUpdateSpaceNullableTextFields(t *testing.T) {
	f := newFixture(t)
	style := "brutalist"
	created := f.create(t, space.CreateSpaceRequest{Name: "City Park", ArchitecturalStyle: &style})

	updated, err := f.svc.Update(context.Background(), f.author, created.ID.String(), space.UpdateSpaceRequest{
		ArchitecturalStyle: optional.Null[string](),
		HistoricalContext:  optional.Of("built on the 1920s fairgrounds"),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.ArchitecturalStyle)
	require.NotNil(t, updated.HistoricalContext)
	assert.Equal(t, "built on the 1920s fairgrounds", *updated.HistoricalContext)
}

// ===== DELETE =====

func TestDeleteSpaceByAuthor(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, space.CreateSpaceRequest{Name: "City Park"})

	require.NoError(t, f.svc.Delete(context.Background(), f.author, created.ID))

	_, err := f.svc.Get(context.Background(), created.ID.String())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDeleteSpaceForbiddenForNonAuthor(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, space.CreateSpaceRequest{Name: "City Park"})

	err := f.svc.Delete(context.Background(), uuid.New(), created.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	_, err = f.svc.Get(context.Background(), created.ID.String())
	assert.NoError(t, err)
}

func TestDeleteSpaceNotFound(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Delete(context.Background(), f.author, uuid.New())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

// ===== READS =====

func TestGetSpaceByIDOrSlug(t *testing.T) {
	f := newFixture(t)
	created := f.create(t, space.CreateSpaceRequest{Name: "City Park"})

	byID, err := f.svc.Get(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	bySlug, err := f.svc.Get(context.Background(), "city-park")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)
}

func TestListSpaces(t *testing.T) {
	f := newFixture(t)
	f.create(t, space.CreateSpaceRequest{Name: "City Park"})
	f.create(t, space.CreateSpaceRequest{Name: "Old Town Square"})

	spaces, err := f.svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, spaces, 2)
}
