package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cajun-local/ask-local/api/internal/asklocal/domain"
)

func activeAd(businessID, placement string, now time.Time) domain.Advertisement {
	return domain.Advertisement{
		BusinessID: businessID,
		Placement:  placement,
		Status:     domain.AdStatusActive,
		StartDate:  now.Add(-24 * time.Hour),
		EndDate:    now.Add(24 * time.Hour),
	}
}

func TestPromotionResolverResolve(t *testing.T) {
	now := fixedNow()
	repo := &fakePromotions{
		subs: []domain.BusinessSubscription{
			{BusinessID: "b1", Tier: domain.PlanTierPremium},
			{BusinessID: "b2", Tier: domain.PlanTierStandard},
			{BusinessID: "b3", Tier: domain.PlanTierEnterprise},
		},
		ads: []domain.Advertisement{
			activeAd("b1", domain.PlacementDirectoryTop, now),
			activeAd("b1", domain.PlacementCategoryBanner, now),
			activeAd("b1", domain.PlacementDirectoryTop, now),
			activeAd("b4", "sidebar_widget", now),
			{BusinessID: "b5", Placement: domain.PlacementDealSpotlight, Status: "paused", StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour)},
			{BusinessID: "b6", Placement: domain.PlacementDealSpotlight, Status: domain.AdStatusActive, StartDate: now.Add(time.Hour), EndDate: now.Add(2 * time.Hour)},
		},
	}

	promos := NewPromotionResolver(repo, func() time.Time { return now }, nil).Resolve(context.Background())

	assert.True(t, promos.Featured("b1"))
	assert.False(t, promos.Featured("b2"), "standard plans are not featured")
	assert.True(t, promos.Featured("b3"))
	assert.True(t, promos.Featured("b4"), "an active ad alone qualifies")
	assert.False(t, promos.Featured("b5"))
	assert.False(t, promos.Featured("b6"))

	assert.Equal(t, "premium partner; Directory top, Category banner", promos.Reason("b1"))
	assert.Equal(t, "enterprise partner", promos.Reason("b3"))
	assert.Equal(t, "sidebar_widget", promos.Reason("b4"))
	assert.Empty(t, promos.Reason("b2"))
}

func TestPromotionResolverDegradesOnFailure(t *testing.T) {
	now := fixedNow()

	t.Run("subscription lookup fails", func(t *testing.T) {
		repo := &fakePromotions{
			subErr: errors.New("boom"),
			ads:    []domain.Advertisement{activeAd("b1", domain.PlacementSearchResults, now)},
		}
		promos := NewPromotionResolver(repo, func() time.Time { return now }, nil).Resolve(context.Background())
		assert.Empty(t, promos.Tiers)
		assert.Equal(t, "Search results", promos.Reason("b1"))
	})

	t.Run("ad lookup fails", func(t *testing.T) {
		repo := &fakePromotions{
			subs:  []domain.BusinessSubscription{{BusinessID: "b1", Tier: domain.PlanTierPremium}},
			adErr: errors.New("boom"),
		}
		promos := NewPromotionResolver(repo, func() time.Time { return now }, nil).Resolve(context.Background())
		assert.Empty(t, promos.Placements)
		assert.Equal(t, "premium partner", promos.Reason("b1"))
	})

	t.Run("no repository", func(t *testing.T) {
		promos := NewPromotionResolver(nil, nil, nil).Resolve(context.Background())
		assert.False(t, promos.Featured("b1"))
	})
}
