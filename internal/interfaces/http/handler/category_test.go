package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	catalogapp "github.com/snehagupta9582883065/recent-api/internal/application/catalog"
	"github.com/snehagupta9582883065/recent-api/internal/domain/catalog"
	"github.com/snehagupta9582883065/recent-api/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryHandler_CreateAndGet(t *testing.T) {
	f := newAPIFixture(t, catalogapp.CategoryServiceConfig{})

	root := f.createCategory(t, "Fresh Produce", nil)
	assert.Equal(t, "fresh-produce", root.Slug)
	assert.Equal(t, 0, root.Level)
	assert.Equal(t, "", root.Path)

	child := f.createCategory(t, "Leafy Greens!", &root.ID)
	assert.Equal(t, "leafy-greens", child.Slug)
	assert.Equal(t, 1, child.Level)
	assert.Equal(t, "fresh-produce", child.Path)

	w := f.do(t, http.MethodGet, "/api/v1/categories/"+child.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got catalogapp.CategoryResponse
	decodeData(t, w, &got)
	assert.Equal(t, child.ID, got.ID)

	w = f.do(t, http.MethodGet, "/api/v1/categories/slug/leafy-greens", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &got)
	assert.Equal(t, child.ID, got.ID)
}

func TestCategoryHandler_CreateErrors(t *testing.T) {
	f := newAPIFixture(t, catalogapp.CategoryServiceConfig{})

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{"missing name", map[string]any{}, http.StatusBadRequest, dto.ErrCodeValidation},
		{"name without slug characters", map[string]any{"name": "!!!"}, http.StatusBadRequest, dto.ErrCodeInvalidSlug},
		{"unknown parent", map[string]any{"name": "Orphan", "parent_id": uuid.New()}, http.StatusNotFound, dto.ErrCodeNotFound},
		{"malformed parent", map[string]any{"name": "Orphan", "parent_id": "nope"}, http.StatusBadRequest, dto.ErrCodeInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, "/api/v1/categories", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCode, decodeResponse(t, w).Error.Code)
		})
	}
}

func TestCategoryHandler_GetUnknown(t *testing.T) {
	f := newAPIFixture(t, catalogapp.CategoryServiceConfig{})

	w := f.do(t, http.MethodGet, "/api/v1/categories/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/categories/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidInput, decodeResponse(t, w).Error.Code)
}

func TestCategoryHandler_RenamePropagates(t *testing.T) {
	f := newAPIFixture(t, catalogapp.CategoryServiceConfig{})

	root := f.createCategory(t, "Dairy", nil)
	mid := f.createCategory(t, "Cheese", &root.ID)
	leaf := f.createCategory(t, "Soft Cheese", &mid.ID)

	w := f.do(t, http.MethodPut, "/api/v1/categories/"+root.ID.String(), map[string]any{"name": "Dairy & Eggs"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated catalogapp.CategoryResponse
	decodeData(t, w, &updated)
	assert.Equal(t, "dairy-eggs", updated.Slug)

	w = f.do(t, http.MethodGet, "/api/v1/categories/"+leaf.ID.String(), nil)
	var got catalogapp.CategoryResponse
	decodeData(t, w, &got)
	assert.Equal(t, "dairy-eggs/cheese", got.Path)
	assert.Equal(t, 2, got.Level)
}

func TestCategoryHandler_MoveRejectsCycle(t *testing.T) {
	f := newAPIFixture(t, catalogapp.CategoryServiceConfig{})

	a := f.createCategory(t, "A", nil)
	b := f.createCategory(t, "B", &a.ID)
	c := f.createCategory(t, "C", &b.ID)

	w := f.do(t, http.MethodPost, "/api/v1/categories/"+a.ID.String()+"/move", map[string]any{"parent_id": c.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, dto.ErrCodeCircularReference, decodeResponse(t, w).Error.Code)

	w = f.do(t, http.MethodPut, "/api/v1/categories/"+a.ID.String(), map[string]any{"parent_id": a.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/categories/"+c.ID.String()+"/move", map[string]any{"parent_id": nil})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var moved catalogapp.CategoryResponse
	decodeData(t, w, &moved)
	assert.Nil(t, moved.ParentID)
	assert.Equal(t, 0, moved.Level)
	assert.Equal(t, "", moved.Path)
}

func TestCategoryHandler_DeleteRefusesWithChildren(t *testing.T) {
	f := newAPIFixture(t, catalogapp.CategoryServiceConfig{DeletePolicy: catalog.DeletePolicyRefuse})

	root := f.createCategory(t, "Bakery", nil)
	child := f.createCategory(t, "Bread", &root.ID)

	w := f.do(t, http.MethodDelete, "/api/v1/categories/"+root.ID.String(), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, dto.ErrCodeHasChildren, decodeResponse(t, w).Error.Code)

	w = f.do(t, http.MethodDelete, "/api/v1/categories/"+child.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodDelete, "/api/v1/categories/"+root.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(t, http.MethodDelete, "/api/v1/categories/"+root.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryHandler_ActivateDeactivate(t *testing.T) {
	f := newAPIFixture(t, catalogapp.CategoryServiceConfig{})
	root := f.createCategory(t, "Snacks", nil)

	for _, tc := range []struct {
		action string
		want   bool
	}{
		{"deactivate", false},
		{"deactivate", false},
		{"activate", true},
	} {
		w := f.do(t, http.MethodPost, "/api/v1/categories/"+root.ID.String()+"/"+tc.action, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var got catalogapp.CategoryResponse
		decodeData(t, w, &got)
		assert.Equal(t, tc.want, got.IsActive, tc.action)
	}
}

func TestCategoryHandler_ListAndChildren(t *testing.T) {
	f := newAPIFixture(t, catalogapp.CategoryServiceConfig{})

	root := f.createCategory(t, "Beverages", nil)
	f.createCategory(t, "Tea", &root.ID)
	f.createCategory(t, "Coffee", &root.ID)
	f.createCategory(t, "Frozen", nil)

	w := f.do(t, http.MethodGet, "/api/v1/categories?parent_id="+root.ID.String()+"&page_size=1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(2), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.TotalPages)

	w = f.do(t, http.MethodGet, "/api/v1/categories?parent_id=root", nil)
	var roots []catalogapp.CategoryResponse
	decodeData(t, w, &roots)
	assert.Len(t, roots, 2)

	w = f.do(t, http.MethodGet, "/api/v1/categories?page_size=1000", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/categories/"+root.ID.String()+"/children", nil)
	var children []catalogapp.CategoryResponse
	decodeData(t, w, &children)
	assert.Len(t, children, 2)

	w = f.do(t, http.MethodGet, "/api/v1/categories/roots", nil)
	decodeData(t, w, &roots)
	assert.Len(t, roots, 2)
}

func TestCategoryHandler_Tree(t *testing.T) {
	f := newAPIFixture(t, catalogapp.CategoryServiceConfig{})

	root := f.createCategory(t, "Household", nil)
	hidden := f.createCategory(t, "Cleaning", &root.ID)
	f.createCategory(t, "Sponges", &hidden.ID)
	f.createCategory(t, "Paper", &root.ID)

	w := f.do(t, http.MethodPost, "/api/v1/categories/"+hidden.ID.String()+"/deactivate", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var all []*catalogapp.CategoryTreeNode
	decodeData(t, f.do(t, http.MethodGet, "/api/v1/categories/tree", nil), &all)
	require.Len(t, all, 1)
	assert.Len(t, all[0].Children, 2)

	var active []*catalogapp.CategoryTreeNode
	decodeData(t, f.do(t, http.MethodGet, "/api/v1/categories/tree?active_only=true", nil), &active)
	require.Len(t, active, 1)
	require.Len(t, active[0].Children, 1)
	assert.Equal(t, "paper", active[0].Children[0].Slug)
}

func TestCategoryHandler_SubtreeStreamsArray(t *testing.T) {
	f := newAPIFixture(t, catalogapp.CategoryServiceConfig{SubtreeBatchSize: 2})

	root := f.createCategory(t, "Pantry", nil)
	other := f.createCategory(t, "Pantryware", nil)
	grains := f.createCategory(t, "Grains", &root.ID)
	f.createCategory(t, "Rice", &grains.ID)
	f.createCategory(t, "Oats", &grains.ID)
	f.createCategory(t, "Spices", &root.ID)
	f.createCategory(t, "Jars", &other.ID)

	w := f.do(t, http.MethodGet, "/api/v1/categories/"+root.ID.String()+"/subtree", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	require.True(t, json.Valid(w.Body.Bytes()), w.Body.String())

	var nodes []catalogapp.CategoryResponse
	decodeData(t, w, &nodes)
	require.Len(t, nodes, 5)
	assert.Equal(t, root.ID, nodes[0].ID)

	names := make([]string, 0, len(nodes))
	for _, n := range nodes {
		names = append(names, n.Name)
		assert.NotEqual(t, "Jars", n.Name)
	}
	assert.ElementsMatch(t, []string{"Pantry", "Grains", "Spices", "Rice", "Oats"}, names)
}

func TestCategoryHandler_SubtreeOfLeafAndUnknown(t *testing.T) {
	f := newAPIFixture(t, catalogapp.CategoryServiceConfig{})
	leaf := f.createCategory(t, "Lonely", nil)

	w := f.do(t, http.MethodGet, "/api/v1/categories/"+leaf.ID.String()+"/subtree", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var nodes []catalogapp.CategoryResponse
	decodeData(t, w, &nodes)
	require.Len(t, nodes, 1)
	assert.Equal(t, leaf.ID, nodes[0].ID)

	w = f.do(t, http.MethodGet, "/api/v1/categories/"+uuid.NewString()+"/subtree", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeNotFound, decodeResponse(t, w).Error.Code)
}
