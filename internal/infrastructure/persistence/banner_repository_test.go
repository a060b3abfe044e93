package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/snehagupta9582883065/recent-api/internal/domain/marketing"
	"github.com/snehagupta9582883065/recent-api/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveBanner(t *testing.T, repo *GormBannerRepository, title string, order int, start, end *time.Time) *marketing.Banner {
	t.Helper()

	b, err := marketing.NewBanner(marketing.BannerContent{Title: title}, "https://cdn.example.com/"+title+".jpg", "banners/"+title)
	require.NoError(t, err)
	b.SetOrder(order)
	require.NoError(t, b.Schedule(start, end))
	require.NoError(t, repo.Save(context.Background(), b))
	return b
}

func TestGormBannerRepository_LiveAndStats(t *testing.T) {
	repo := NewGormBannerRepository(setupTestDB(t))
	ctx := context.Background()

	now := time.Now().UTC()
	past := now.Add(-48 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)
	later := now.Add(48 * time.Hour)

	always := saveBanner(t, repo, "always", 1, nil, nil)
	window := saveBanner(t, repo, "window", 0, &yesterday, &tomorrow)
	saveBanner(t, repo, "future", 2, &tomorrow, &later)
	saveBanner(t, repo, "expired", 3, &past, &yesterday)
	off := saveBanner(t, repo, "off", 4, nil, nil)
	off.SetActive(false)
	require.NoError(t, repo.Save(ctx, off))

	live, err := repo.FindLive(ctx, now)
	require.NoError(t, err)
	require.Len(t, live, 2)
	assert.Equal(t, window.ID, live[0].ID)
	assert.Equal(t, always.ID, live[1].ID)

	stats, err := repo.Stats(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, &marketing.BannerStats{
		Total:     5,
		Active:    4,
		Inactive:  1,
		Scheduled: 1,
		Expired:   1,
	}, stats)

	total, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
}

func TestGormBannerRepository_FindAll(t *testing.T) {
	repo := NewGormBannerRepository(setupTestDB(t))
	ctx := context.Background()

	second := saveBanner(t, repo, "summer-sale", 1, nil, nil)
	first := saveBanner(t, repo, "new-arrivals", 0, nil, nil)
	inactive := saveBanner(t, repo, "winter-sale", 2, nil, nil)
	inactive.SetActive(false)
	require.NoError(t, repo.Save(ctx, inactive))

	all, err := repo.FindAll(ctx, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)

	filter := shared.Filter{Search: "SALE", Filters: map[string]interface{}{"is_active": true}}
	matched, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, second.ID, matched[0].ID)

	count, err := repo.Count(ctx, shared.Filter{Search: "sale"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	paged, err := repo.FindAll(ctx, shared.Filter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, inactive.ID, paged[0].ID)
}

func TestGormBannerRepository_Reorder(t *testing.T) {
	repo := NewGormBannerRepository(setupTestDB(t))
	ctx := context.Background()

	a := saveBanner(t, repo, "a", 0, nil, nil)
	b := saveBanner(t, repo, "b", 1, nil, nil)
	c := saveBanner(t, repo, "c", 2, nil, nil)

	require.NoError(t, repo.Reorder(ctx, []uuid.UUID{c.ID, a.ID, b.ID}))

	all, err := repo.FindAll(ctx, shared.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uuid.UUID{c.ID, a.ID, b.ID}, []uuid.UUID{all[0].ID, all[1].ID, all[2].ID})

	t.Run("unknown id rolls back", func(t *testing.T) {
		err := repo.Reorder(ctx, []uuid.UUID{a.ID, uuid.New()})
		assert.ErrorIs(t, err, shared.ErrNotFound)

		found, err := repo.FindByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, found.Order)
	})
}

func TestGormBannerRepository_Delete(t *testing.T) {
	repo := NewGormBannerRepository(setupTestDB(t))
	ctx := context.Background()

	b := saveBanner(t, repo, "gone", 0, nil, nil)
	require.NoError(t, repo.Delete(ctx, b.ID))

	_, err := repo.FindByID(ctx, b.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
