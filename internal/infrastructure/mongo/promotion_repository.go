package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cajun-local/ask-local/api/internal/asklocal/domain"
)

// PromotionRepository implements application.PromotionRepository using MongoDB.
type PromotionRepository struct {
	db *mongo.Database
}

// NewPromotionRepository creates a new Mongo-backed promotion repository.
func NewPromotionRepository(db *mongo.Database) *PromotionRepository {
	return &PromotionRepository{db: db}
}

// ActiveSubscriptions joins active business subscriptions with their plan tier.
// Subscriptions whose plan is missing are dropped.
func (r *PromotionRepository) ActiveSubscriptions(ctx context.Context) ([]domain.BusinessSubscription, error) {
	subs, err := decodeAll[BusinessSubscriptionDocument](ctx, r.db.Collection(CollectionBusinessSubscriptions), bson.M{"status": statusActive})
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, nil
	}

	plans, err := decodeAll[PlanDocument](ctx, r.db.Collection(CollectionBusinessPlans), inFilter("_id", planIDs(subs)))
	if err != nil {
		return nil, err
	}
	return joinSubscriptions(subs, plans), nil
}

// ActiveAdvertisements returns active ads whose window contains at.
func (r *PromotionRepository) ActiveAdvertisements(ctx context.Context, at time.Time) ([]domain.Advertisement, error) {
	docs, err := decodeAll[AdDocument](ctx, r.db.Collection(CollectionBusinessAds), activeAdFilter(at))
	if err != nil {
		return nil, err
	}
	ads := make([]domain.Advertisement, 0, len(docs))
	for _, doc := range docs {
		ads = append(ads, mapAdDocument(doc))
	}
	return ads, nil
}

func activeAdFilter(at time.Time) bson.M {
	return bson.M{
		"status":     statusActive,
		"start_date": bson.M{"$lte": at},
		"end_date":   bson.M{"$gte": at},
	}
}

func planIDs(subs []BusinessSubscriptionDocument) []string {
	seen := make(map[string]struct{}, len(subs))
	ids := make([]string, 0, len(subs))
	for _, sub := range subs {
		if _, ok := seen[sub.PlanID]; ok || sub.PlanID == "" {
			continue
		}
		seen[sub.PlanID] = struct{}{}
		ids = append(ids, sub.PlanID)
	}
	return ids
}

func joinSubscriptions(subs []BusinessSubscriptionDocument, plans []PlanDocument) []domain.BusinessSubscription {
	tiers := make(map[string]domain.PlanTier, len(plans))
	for _, plan := range plans {
		tiers[plan.ID] = domain.PlanTier(plan.Tier)
	}
	joined := make([]domain.BusinessSubscription, 0, len(subs))
	for _, sub := range subs {
		tier, ok := tiers[sub.PlanID]
		if !ok {
			continue
		}
		joined = append(joined, domain.BusinessSubscription{BusinessID: sub.BusinessID, PlanID: sub.PlanID, Tier: tier})
	}
	return joined
}
