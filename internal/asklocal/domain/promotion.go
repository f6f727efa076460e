package domain

import "time"

// PlanTier is the tier of a business plan.
type PlanTier string

const (
	PlanTierStandard   PlanTier = "standard"
	PlanTierPremium    PlanTier = "premium"
	PlanTierEnterprise PlanTier = "enterprise"
)

// TopTier reports whether the tier qualifies a business as a top partner.
func (t PlanTier) TopTier() bool {
	return t == PlanTierPremium || t == PlanTierEnterprise
}

// BusinessSubscription is an active business subscription joined with its plan tier.
type BusinessSubscription struct {
	BusinessID string
	PlanID     string
	Tier       PlanTier
}

// Placement kinds sold to advertisers.
const (
	PlacementDirectoryTop     = "directory_top"
	PlacementCategoryBanner   = "category_banner"
	PlacementSearchResults    = "search_results"
	PlacementDealSpotlight    = "deal_spotlight"
	PlacementHomepageFeatured = "homepage_featured"
)

var placementLabels = map[string]string{
	PlacementDirectoryTop:     "Directory top",
	PlacementCategoryBanner:   "Category banner",
	PlacementSearchResults:    "Search results",
	PlacementDealSpotlight:    "Deal spotlight",
	PlacementHomepageFeatured: "Homepage featured",
}

// PlacementLabel maps a placement kind to its display label. Unknown kinds are returned unchanged.
func PlacementLabel(kind string) string {
	if label, ok := placementLabels[kind]; ok {
		return label
	}
	return kind
}

// AdStatusActive marks a running advertisement.
const AdStatusActive = "active"

// Advertisement is a paid placement valid between StartDate and EndDate.
type Advertisement struct {
	BusinessID string
	Placement  string
	Status     string
	StartDate  time.Time
	EndDate    time.Time
}

// ActiveAt reports whether the ad is running at the given instant (inclusive window).
func (a Advertisement) ActiveAt(at time.Time) bool {
	if a.Status != AdStatusActive {
		return false
	}
	return !at.Before(a.StartDate) && !at.After(a.EndDate)
}
