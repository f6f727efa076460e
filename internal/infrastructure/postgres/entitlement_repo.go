package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/cajun-local/ask-local/api/internal/asklocal/domain"
)

// EntitlementRepository implements application.EntitlementRepository with gorm.
type EntitlementRepository struct {
	DB *gorm.DB
}

func NewEntitlementRepository(db *gorm.DB) *EntitlementRepository {
	return &EntitlementRepository{DB: db}
}

// ActiveUserTier returns the best tier among the user's active subscriptions,
// or "" when the user has none.
func (r *EntitlementRepository) ActiveUserTier(ctx context.Context, userID string) (domain.UserTier, error) {
	var raw []string
	err := r.DB.WithContext(ctx).
		Table("user_subscriptions AS s").
		Joins("JOIN user_plans p ON p.id = s.plan_id").
		Where("s.user_id = ? AND s.status = ?", userID, statusActive).
		Pluck("p.tier", &raw).Error
	if err != nil {
		return "", err
	}
	tiers := make([]domain.UserTier, len(raw))
	for i, t := range raw {
		tiers[i] = domain.UserTier(t)
	}
	return domain.BestUserTier(tiers), nil
}
