package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	catalogapp "github.com/snehagupta9582883065/recent-api/internal/application/catalog"
	marketingapp "github.com/snehagupta9582883065/recent-api/internal/application/marketing"
	"github.com/snehagupta9582883065/recent-api/internal/domain/marketing"
	"github.com/snehagupta9582883065/recent-api/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *apiFixture) createBanner(t *testing.T, body map[string]any) marketingapp.BannerResponse {
	t.Helper()

	w := f.do(t, http.MethodPost, "/api/v1/banners", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var out marketingapp.BannerResponse
	decodeData(t, w, &out)
	return out
}

func TestBannerHandler_CreateAndOrder(t *testing.T) {
	f := newAPIFixture(t, catalogapp.CategoryServiceConfig{})

	first := f.createBanner(t, map[string]any{"title": "Summer Sale", "image": "https://cdn.example.com/a.jpg"})
	second := f.createBanner(t, map[string]any{"title": "New Arrivals", "image": "https://cdn.example.com/b.jpg"})
	assert.Equal(t, 0, first.Order)
	assert.Equal(t, 1, second.Order)

	w := f.do(t, http.MethodPut, "/api/v1/banners/reorder", map[string]any{"ids": []uuid.UUID{second.ID, first.ID}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var live []marketingapp.BannerResponse
	decodeData(t, f.do(t, http.MethodGet, "/api/v1/banners/public", nil), &live)
	require.Len(t, live, 2)
	assert.Equal(t, second.ID, live[0].ID)
	assert.Equal(t, first.ID, live[1].ID)
}

func TestBannerHandler_LiveHonoursScheduleAndActive(t *testing.T) {
	f := newAPIFixture(t, catalogapp.CategoryServiceConfig{})
	now := time.Now().UTC()

	f.createBanner(t, map[string]any{"title": "Now", "image": "https://cdn.example.com/now.jpg"})
	f.createBanner(t, map[string]any{
		"title": "Later", "image": "https://cdn.example.com/later.jpg",
		"start_date": now.Add(24 * time.Hour), "end_date": now.Add(48 * time.Hour),
	})
	f.createBanner(t, map[string]any{
		"title": "Over", "image": "https://cdn.example.com/over.jpg",
		"start_date": now.Add(-48 * time.Hour), "end_date": now.Add(-24 * time.Hour),
	})
	f.createBanner(t, map[string]any{"title": "Off", "image": "https://cdn.example.com/off.jpg", "is_active": false})

	var live []marketingapp.BannerResponse
	decodeData(t, f.do(t, http.MethodGet, "/api/v1/banners/public", nil), &live)
	require.Len(t, live, 1)
	assert.Equal(t, "Now", live[0].Title)

	var stats marketing.BannerStats
	decodeData(t, f.do(t, http.MethodGet, "/api/v1/banners/stats", nil), &stats)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(1), stats.Inactive)
	assert.Equal(t, int64(1), stats.Scheduled)
	assert.Equal(t, int64(1), stats.Expired)

	w := f.do(t, http.MethodGet, "/api/v1/banners?status=inactive", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decodeResponse(t, w).Meta.Total)
}

func TestBannerHandler_Errors(t *testing.T) {
	f := newAPIFixture(t, catalogapp.CategoryServiceConfig{})
	now := time.Now().UTC()

	w := f.do(t, http.MethodPost, "/api/v1/banners", map[string]any{"title": "No image"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, decodeResponse(t, w).Error.Code)

	w = f.do(t, http.MethodPost, "/api/v1/banners", map[string]any{
		"title": "Backwards", "image": "https://cdn.example.com/x.jpg",
		"start_date": now, "end_date": now.Add(-time.Hour),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidSchedule, decodeResponse(t, w).Error.Code)

	w = f.do(t, http.MethodGet, "/api/v1/banners/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodPut, "/api/v1/banners/reorder", map[string]any{"ids": []uuid.UUID{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBannerHandler_UpdateAndDelete(t *testing.T) {
	f := newAPIFixture(t, catalogapp.CategoryServiceConfig{})
	banner := f.createBanner(t, map[string]any{
		"title": "Old", "image": "https://cdn.example.com/old.jpg",
		"start_date": time.Now().UTC().Add(-time.Hour),
	})

	w := f.do(t, http.MethodPut, "/api/v1/banners/"+banner.ID.String(), map[string]any{
		"title": "Fresh", "clear_schedule": true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated marketingapp.BannerResponse
	decodeData(t, w, &updated)
	assert.Equal(t, "Fresh", updated.Title)
	assert.Nil(t, updated.StartDate)

	w = f.do(t, http.MethodDelete, "/api/v1/banners/"+banner.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = f.do(t, http.MethodGet, "/api/v1/banners/"+banner.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
