package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cajun-local/ask-local/api/internal/asklocal/domain"
)

// EntitlementRepository implements application.EntitlementRepository using MongoDB.
type EntitlementRepository struct {
	db *mongo.Database
}

// NewEntitlementRepository creates a new Mongo-backed entitlement repository.
func NewEntitlementRepository(db *mongo.Database) *EntitlementRepository {
	return &EntitlementRepository{db: db}
}

// ActiveUserTier returns the best tier among the user's active subscriptions,
// or "" when the user has none.
func (r *EntitlementRepository) ActiveUserTier(ctx context.Context, userID string) (domain.UserTier, error) {
	subs, err := decodeAll[UserSubscriptionDocument](ctx, r.db.Collection(CollectionUserSubscriptions),
		bson.M{"user_id": userID, "status": statusActive})
	if err != nil {
		return "", err
	}
	if len(subs) == 0 {
		return "", nil
	}

	ids := make([]string, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.PlanID)
	}
	plans, err := decodeAll[PlanDocument](ctx, r.db.Collection(CollectionUserPlans), inFilter("_id", ids))
	if err != nil {
		return "", err
	}

	tiers := make([]domain.UserTier, 0, len(plans))
	for _, plan := range plans {
		tiers = append(tiers, domain.UserTier(plan.Tier))
	}
	return domain.BestUserTier(tiers), nil
}
