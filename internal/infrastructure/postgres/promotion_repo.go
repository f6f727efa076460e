package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cajun-local/ask-local/api/internal/asklocal/domain"
)

// PromotionRepository implements application.PromotionRepository with gorm.
type PromotionRepository struct {
	DB *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{DB: db}
}

type subscriptionRow struct {
	BusinessID string
	PlanID     string
	Tier       string
}

// ActiveSubscriptions joins active business subscriptions with their plan tier.
func (r *PromotionRepository) ActiveSubscriptions(ctx context.Context) ([]domain.BusinessSubscription, error) {
	var rows []subscriptionRow
	err := r.DB.WithContext(ctx).
		Table("business_subscriptions AS s").
		Select("s.business_id, s.plan_id, p.tier").
		Joins("JOIN business_plans p ON p.id = s.plan_id").
		Where("s.status = ?", statusActive).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	subs := make([]domain.BusinessSubscription, len(rows))
	for i, row := range rows {
		subs[i] = domain.BusinessSubscription{BusinessID: row.BusinessID, PlanID: row.PlanID, Tier: domain.PlanTier(row.Tier)}
	}
	return subs, nil
}

// ActiveAdvertisements returns active ads whose window contains at.
func (r *PromotionRepository) ActiveAdvertisements(ctx context.Context, at time.Time) ([]domain.Advertisement, error) {
	at = at.UTC()
	var rows []AdModel
	err := r.DB.WithContext(ctx).
		Where("status = ? AND start_date <= ? AND end_date >= ?", statusActive, at, at).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	ads := make([]domain.Advertisement, len(rows))
	for i, row := range rows {
		ads[i] = domain.Advertisement{
			BusinessID: row.BusinessID,
			Placement:  row.Placement,
			Status:     row.Status,
			StartDate:  row.StartDate,
			EndDate:    row.EndDate,
		}
	}
	return ads, nil
}
