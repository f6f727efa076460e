package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdvertisementActiveAt(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)
	ad := Advertisement{Status: AdStatusActive, StartDate: start, EndDate: end}

	assert.True(t, ad.ActiveAt(start), "window start is inclusive")
	assert.True(t, ad.ActiveAt(end), "window end is inclusive")
	assert.False(t, ad.ActiveAt(start.Add(-time.Second)))
	assert.False(t, ad.ActiveAt(end.Add(time.Second)))

	ad.Status = "expired"
	assert.False(t, ad.ActiveAt(start.Add(time.Hour)))
}

func TestPlacementLabel(t *testing.T) {
	assert.Equal(t, "Directory top", PlacementLabel(PlacementDirectoryTop))
	assert.Equal(t, "Homepage featured", PlacementLabel(PlacementHomepageFeatured))
	assert.Equal(t, "newsletter", PlacementLabel("newsletter"))
}

func TestTiers(t *testing.T) {
	assert.True(t, PlanTierPremium.TopTier())
	assert.True(t, PlanTierEnterprise.TopTier())
	assert.False(t, PlanTierStandard.TopTier())

	assert.True(t, UserTierPlus.Elevated())
	assert.True(t, UserTierPro.Elevated())
	assert.False(t, UserTierFree.Elevated())
	assert.False(t, UserTier("").Elevated())
}

func TestMenuDefaults(t *testing.T) {
	assert.Zero(t, MenuSection{}.Order())
	assert.True(t, MenuItem{}.Available())

	unavailable := false
	assert.False(t, MenuItem{IsAvailable: &unavailable}.Available())
}

func TestPrimaryRegion(t *testing.T) {
	assert.Equal(t, "acadia", Business{Region: "  acadia "}.PrimaryRegion())
}

func TestBestUserTier(t *testing.T) {
	assert.Equal(t, UserTierPro, BestUserTier([]UserTier{UserTierPlus, UserTierPro, UserTierFree}))
	assert.Equal(t, UserTierFree, BestUserTier([]UserTier{"legacy", UserTierFree}))
	assert.Equal(t, UserTier(""), BestUserTier([]UserTier{"legacy"}))
	assert.Equal(t, UserTier(""), BestUserTier(nil))
}
