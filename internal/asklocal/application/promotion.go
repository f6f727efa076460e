package application

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cajun-local/ask-local/api/internal/asklocal/domain"
)

// Promotions holds the per-request featured signals.
type Promotions struct {
	Tiers      map[string]domain.PlanTier
	Placements map[string][]string
}

// Featured reports whether the business holds a top-tier subscription or an active ad.
func (p Promotions) Featured(businessID string) bool {
	if _, ok := p.Tiers[businessID]; ok {
		return true
	}
	_, ok := p.Placements[businessID]
	return ok
}

// Reason renders the featured label, e.g. "premium partner; Directory top, Category banner".
// It returns "" when the business carries neither signal.
func (p Promotions) Reason(businessID string) string {
	parts := make([]string, 0, 2)
	if tier, ok := p.Tiers[businessID]; ok && tier != "" {
		parts = append(parts, string(tier)+" partner")
	}
	if labels := p.Placements[businessID]; len(labels) > 0 {
		parts = append(parts, strings.Join(labels, ", "))
	}
	return strings.Join(parts, "; ")
}

// PromotionResolver computes featured placement from subscriptions and ads.
type PromotionResolver struct {
	repo   PromotionRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewPromotionResolver creates a resolver. now defaults to time.Now.
func NewPromotionResolver(repo PromotionRepository, now func() time.Time, logger *zap.Logger) *PromotionResolver {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PromotionResolver{repo: repo, now: now, logger: logger}
}

// Resolve runs both lookups concurrently. Failures degrade to empty mappings.
func (r *PromotionResolver) Resolve(ctx context.Context) Promotions {
	promos := Promotions{
		Tiers:      map[string]domain.PlanTier{},
		Placements: map[string][]string{},
	}
	if r.repo == nil {
		return promos
	}

	var g errgroup.Group
	g.Go(func() error {
		subs, err := r.repo.ActiveSubscriptions(ctx)
		if err != nil {
			r.logger.Warn("top-tier lookup failed; continuing without it", zap.Error(err))
			return nil
		}
		promos.Tiers = topTierMapping(subs)
		return nil
	})
	g.Go(func() error {
		now := r.now()
		ads, err := r.repo.ActiveAdvertisements(ctx, now)
		if err != nil {
			r.logger.Warn("active ad lookup failed; continuing without it", zap.Error(err))
			return nil
		}
		promos.Placements = placementMapping(ads, now)
		return nil
	})
	_ = g.Wait()

	return promos
}

func topTierMapping(subs []domain.BusinessSubscription) map[string]domain.PlanTier {
	result := make(map[string]domain.PlanTier, len(subs))
	for _, sub := range subs {
		if sub.BusinessID == "" || !sub.Tier.TopTier() {
			continue
		}
		result[sub.BusinessID] = sub.Tier
	}
	return result
}

func placementMapping(ads []domain.Advertisement, now time.Time) map[string][]string {
	result := make(map[string][]string, len(ads))
	for _, ad := range ads {
		if ad.BusinessID == "" || !ad.ActiveAt(now) {
			continue
		}
		label := domain.PlacementLabel(ad.Placement)
		if containsString(result[ad.BusinessID], label) {
			continue
		}
		result[ad.BusinessID] = append(result[ad.BusinessID], label)
	}
	return result
}

func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
