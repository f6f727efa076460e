package postgres

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cajun-local/ask-local/api/internal/asklocal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func ptr[T any](v T) *T { return &v }

func seedDirectory(t *testing.T, db *gorm.DB) {
	t.Helper()
	rows := []any{
		&BusinessModel{ID: "b1", Name: "Bayou Bistro", City: ptr("Lafayette"), Parish: ptr("lafayette"), CategoryID: ptr("c1"), Status: "approved"},
		&BusinessModel{ID: "b2", Name: "Pending Place", Status: "pending"},
		&BusinessModel{ID: "b3", Name: "Acadiana Eats", Status: "approved"},
		&CategoryModel{ID: "c1", Name: "Restaurants"},
		&BusinessParishModel{BusinessID: "b3", ParishID: "st-martin"},
		&HoursModel{BusinessID: "b1", DayOfWeek: "monday", OpenTime: ptr("11:00"), CloseTime: ptr("21:00")},
		&HoursModel{BusinessID: "b1", DayOfWeek: "sunday", IsClosed: true},
		&MenuSectionModel{ID: "s1", BusinessID: "b1", Name: "Mains", SortOrder: ptr(1)},
		&MenuItemModel{ID: "i1", SectionID: "s1", Name: "Gumbo", Price: ptr(9.5)},
		&MenuItemModel{ID: "i2", SectionID: "s1", Name: "Etouffee", IsAvailable: ptr(false)},
		&DealModel{ID: "d1", BusinessID: "b1", Title: "Happy hour", Status: "approved", IsActive: true},
		&DealModel{ID: "d2", BusinessID: "b1", Title: "Paused", Status: "approved", IsActive: false},
		&DealModel{ID: "d3", BusinessID: "b1", Title: "Unreviewed", Status: "pending", IsActive: true},
		&ReviewModel{ID: "r1", BusinessID: "b1", Rating: 5, Status: "approved"},
		&ReviewModel{ID: "r2", BusinessID: "b1", Rating: 1, Status: "rejected"},
		&EventModel{ID: "e1", BusinessID: "b1", Title: "Later", EventDate: time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC), Status: "approved"},
		&EventModel{ID: "e2", BusinessID: "b1", Title: "Sooner", EventDate: time.Date(2026, 3, 20, 18, 0, 0, 0, time.UTC), Status: "approved"},
		&EventModel{ID: "e3", BusinessID: "b1", Title: "Past", EventDate: time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC), Status: "approved"},
	}
	for _, row := range rows {
		require.NoError(t, db.Create(row).Error)
	}
}

func TestDirectoryRepository(t *testing.T) {
	db := newTestDB(t)
	seedDirectory(t, db)
	repo := NewDirectoryRepository(db)
	ctx := context.Background()

	businesses, err := repo.ApprovedBusinesses(ctx)
	require.NoError(t, err)
	require.Len(t, businesses, 2)
	byID := map[string]domain.Business{}
	for _, b := range businesses {
		byID[b.ID] = b
	}
	assert.Equal(t, "lafayette", byID["b1"].Region)
	assert.Equal(t, "Lafayette", byID["b1"].City)
	assert.Empty(t, byID["b3"].City)

	memberships, err := repo.RegionMemberships(ctx, []string{"b1", "b3"})
	require.NoError(t, err)
	assert.Equal(t, []domain.RegionMembership{{BusinessID: "b3", RegionID: "st-martin"}}, memberships)

	categories, err := repo.Categories(ctx, []string{"c1"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Category{{ID: "c1", Name: "Restaurants"}}, categories)

	hours, err := repo.Hours(ctx, []string{"b1"})
	require.NoError(t, err)
	assert.Len(t, hours, 2)

	items, err := repo.MenuItems(ctx, []string{"s1"})
	require.NoError(t, err)
	require.Len(t, items, 2)

	deals, err := repo.ActiveDeals(ctx, []string{"b1"})
	require.NoError(t, err)
	require.Len(t, deals, 1)
	assert.Equal(t, "Happy hour", deals[0].Title)

	reviews, err := repo.ApprovedReviews(ctx, []string{"b1"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Review{{BusinessID: "b1", Rating: 5}}, reviews)

	events, err := repo.UpcomingEvents(ctx, []string{"b1"}, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Sooner", events[0].Title)
	assert.Equal(t, "Later", events[1].Title)
}

func TestDirectoryRepositoryEmptyIDs(t *testing.T) {
	repo := NewDirectoryRepository(newTestDB(t))
	sections, err := repo.MenuSections(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, sections)
}

func TestPromotionRepository(t *testing.T) {
	db := newTestDB(t)
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	rows := []any{
		&BusinessPlanModel{ID: "p-premium", Tier: "premium"},
		&BusinessPlanModel{ID: "p-standard", Tier: "standard"},
		&BusinessSubscriptionModel{ID: "s1", BusinessID: "b1", PlanID: "p-premium", Status: "active"},
		&BusinessSubscriptionModel{ID: "s2", BusinessID: "b2", PlanID: "p-standard", Status: "active"},
		&BusinessSubscriptionModel{ID: "s3", BusinessID: "b3", PlanID: "p-premium", Status: "canceled"},
		&AdModel{ID: "a1", BusinessID: "b4", Placement: "directory_top", Status: "active", StartDate: at.Add(-time.Hour), EndDate: at.Add(time.Hour)},
		&AdModel{ID: "a2", BusinessID: "b5", Placement: "directory_top", Status: "active", StartDate: at.Add(time.Hour), EndDate: at.Add(2 * time.Hour)},
		&AdModel{ID: "a3", BusinessID: "b6", Placement: "directory_top", Status: "paused", StartDate: at.Add(-time.Hour), EndDate: at.Add(time.Hour)},
	}
	for _, row := range rows {
		require.NoError(t, db.Create(row).Error)
	}
	repo := NewPromotionRepository(db)

	subs, err := repo.ActiveSubscriptions(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []domain.BusinessSubscription{
		{BusinessID: "b1", PlanID: "p-premium", Tier: domain.PlanTierPremium},
		{BusinessID: "b2", PlanID: "p-standard", Tier: domain.PlanTierStandard},
	}, subs)

	ads, err := repo.ActiveAdvertisements(context.Background(), at)
	require.NoError(t, err)
	require.Len(t, ads, 1)
	assert.Equal(t, "b4", ads[0].BusinessID)
}

func TestEntitlementRepository(t *testing.T) {
	db := newTestDB(t)
	rows := []any{
		&UserPlanModel{ID: "plus", Tier: "plus"},
		&UserPlanModel{ID: "pro", Tier: "pro"},
		&UserSubscriptionModel{ID: "u1-plus", UserID: "u1", PlanID: "plus", Status: "active"},
		&UserSubscriptionModel{ID: "u1-pro", UserID: "u1", PlanID: "pro", Status: "active"},
		&UserSubscriptionModel{ID: "u2-pro", UserID: "u2", PlanID: "pro", Status: "canceled"},
	}
	for _, row := range rows {
		require.NoError(t, db.Create(row).Error)
	}
	repo := NewEntitlementRepository(db)

	tier, err := repo.ActiveUserTier(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.UserTierPro, tier)

	tier, err = repo.ActiveUserTier(context.Background(), "u2")
	require.NoError(t, err)
	assert.Empty(t, tier)

	tier, err = repo.ActiveUserTier(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, tier)
}
