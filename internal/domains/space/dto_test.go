package space

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacecatalog-backend/internal/domains/taxonomy"
)

func TestUpdateSpaceRequestDecode(t *testing.T) {
	t.Run("empty object touches nothing", func(t *testing.T) {
		var req UpdateSpaceRequest
		require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
		assert.True(t, req.Empty())
	})

	t.Run("absent, null and empty lists are distinct", func(t *testing.T) {
		var req UpdateSpaceRequest
		require.NoError(t, json.Unmarshal([]byte(`{
			"category_ids": [],
			"feature_ids": null
		}`), &req))

		assert.True(t, req.CategoryIDs.Set)
		assert.False(t, req.CategoryIDs.Null)
		assert.Empty(t, req.CategoryIDs.Value)

		assert.True(t, req.FeatureIDs.Set)
		assert.True(t, req.FeatureIDs.Null)

		assert.False(t, req.AlternateNames.Set)
		assert.False(t, req.Empty())
	})

	t.Run("document fields pass through untouched", func(t *testing.T) {
		var req UpdateSpaceRequest
		require.NoError(t, json.Unmarshal([]byte(`{
			"operating_hours": {"mon": "08:00-18:00"},
			"entrance_fee": null
		}`), &req))

		assert.True(t, req.OperatingHours.Set)
		assert.JSONEq(t, `{"mon": "08:00-18:00"}`, string(req.OperatingHours.Value))
		assert.True(t, req.EntranceFee.Set)
		assert.True(t, req.EntranceFee.Null)
	})
}

func TestUpdateSpaceRequestValidate(t *testing.T) {
	t.Run("null name rejected", func(t *testing.T) {
		var req UpdateSpaceRequest
		require.NoError(t, json.Unmarshal([]byte(`{"name": null}`), &req))
		assert.Error(t, req.Validate())
	})

	t.Run("blank name rejected", func(t *testing.T) {
		var req UpdateSpaceRequest
		require.NoError(t, json.Unmarshal([]byte(`{"name": "   "}`), &req))
		assert.Error(t, req.Validate())
	})

	t.Run("null type rejected", func(t *testing.T) {
		var req UpdateSpaceRequest
		require.NoError(t, json.Unmarshal([]byte(`{"type_id": null}`), &req))
		assert.Error(t, req.Validate())
	})

	t.Run("null description allowed", func(t *testing.T) {
		var req UpdateSpaceRequest
		require.NoError(t, json.Unmarshal([]byte(`{"description": null}`), &req))
		assert.NoError(t, req.Validate())
	})
}

func TestCreateSpaceRequestValidate(t *testing.T) {
	valid := CreateSpaceRequest{Name: "City Park", TypeID: uuid.New()}
	assert.NoError(t, valid.Validate())

	missingType := CreateSpaceRequest{Name: "City Park"}
	assert.Error(t, missingType.Validate())

	blankName := CreateSpaceRequest{Name: "  ", TypeID: uuid.New()}
	assert.Error(t, blankName.Validate())
}

func TestToResponseFlattensSortedNames(t *testing.T) {
	sp := &Space{
		ID:   uuid.New(),
		Name: "City Park",
		Slug: "city-park",
	}
	sp.Categories = refsNamed("Plaza", "Garden", "Monument")
	sp.Features = refsNamed("Wifi")

	resp := ToResponse(sp)
	assert.Equal(t, []string{"Garden", "Monument", "Plaza"}, resp.Categories)
	assert.Equal(t, []string{"Wifi"}, resp.Features)
	assert.Equal(t, []string{}, resp.AlternateNames)
	assert.Equal(t, []string{}, resp.Activities)
}

func refsNamed(names ...string) []taxonomy.Ref {
	out := make([]taxonomy.Ref, 0, len(names))
	for _, name := range names {
		out = append(out, taxonomy.Ref{ID: uuid.New(), Name: name})
	}
	return out
}
