package main

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cajun-local/ask-local/api/internal/infrastructure/postgres"
)

func seedPostgres(ctx context.Context, dsn string, data dataset, drop bool) error {
	db, err := postgres.Open(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = postgres.Close(db) }()

	db = db.WithContext(ctx)
	if drop {
		if err := db.Migrator().DropTable(postgres.AllModels()...); err != nil {
			return fmt.Errorf("drop tables: %w", err)
		}
	}
	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		upsert := tx.Clauses(clause.OnConflict{UpdateAll: true})
		for _, rows := range postgresRows(data) {
			if err := upsert.Create(rows).Error; err != nil {
				return fmt.Errorf("upsert %T: %w", rows, err)
			}
		}
		return nil
	})
}

// postgresRows returns one slice pointer per table in insertion order.
func postgresRows(data dataset) []any {
	var (
		categories []postgres.CategoryModel
		businesses []postgres.BusinessModel
		parishes   []postgres.BusinessParishModel
		hoursRows  []postgres.HoursModel
		sections   []postgres.MenuSectionModel
		items      []postgres.MenuItemModel
		deals      []postgres.DealModel
		reviews    []postgres.ReviewModel
		events     []postgres.EventModel
		plans      []postgres.BusinessPlanModel
		subs       []postgres.BusinessSubscriptionModel
		ads        []postgres.AdModel
		userPlans  []postgres.UserPlanModel
	)

	for key, name := range data.Categories {
		categories = append(categories, postgres.CategoryModel{ID: seedID("category/" + key), Name: name})
	}
	for _, b := range data.Businesses {
		businesses = append(businesses, postgres.BusinessModel{
			ID:          seedID("business/" + b.Key),
			Name:        b.Name,
			Description: optional(b.Description),
			City:        optional(b.City),
			State:       optional("LA"),
			Parish:      optional(b.Parish),
			Address:     optional(b.Address),
			Zip:         optional(b.Zip),
			Phone:       optional(b.Phone),
			Website:     optional(b.Website),
			CategoryID:  optional(seedID("category/" + b.Category)),
			Status:      b.Status,
		})
		for _, p := range b.Parishes {
			parishes = append(parishes, postgres.BusinessParishModel{BusinessID: seedID("business/" + b.Key), ParishID: p})
		}
	}
	for i, h := range data.Hours {
		hoursRows = append(hoursRows, postgres.HoursModel{
			ID:         uint(i + 1),
			BusinessID: seedID("business/" + h.Business),
			DayOfWeek:  h.Day,
			OpenTime:   optional(h.Open),
			CloseTime:  optional(h.Close),
			IsClosed:   h.Closed,
		})
	}
	for _, s := range data.Sections {
		order := s.Order
		sections = append(sections, postgres.MenuSectionModel{
			ID: seedID("section/" + s.Key), BusinessID: seedID("business/" + s.Business), Name: s.Name, SortOrder: &order,
		})
		for _, it := range s.Items {
			price, available := it.Price, it.Available
			items = append(items, postgres.MenuItemModel{
				ID: seedID("item/" + s.Key + "/" + it.Name), SectionID: seedID("section/" + s.Key),
				Name: it.Name, Price: &price, IsAvailable: &available,
			})
		}
	}
	for _, d := range data.Deals {
		deals = append(deals, postgres.DealModel{
			ID: seedID("deal/" + d.Key), BusinessID: seedID("business/" + d.Business), Title: d.Title,
			Description: optional(d.Description), DealType: optional(d.Type), Status: "approved", IsActive: true,
		})
	}
	for i, r := range data.Reviews {
		reviews = append(reviews, postgres.ReviewModel{
			ID: seedID(fmt.Sprintf("review/%d", i)), BusinessID: seedID("business/" + r.Business), Rating: r.Rating, Status: "approved",
		})
	}
	for _, e := range data.Events {
		events = append(events, postgres.EventModel{
			ID: seedID("event/" + e.Key), BusinessID: seedID("business/" + e.Business), Title: e.Title,
			Description: optional(e.Description), EventDate: e.Date.UTC(), Status: "approved",
		})
	}
	for _, p := range data.Plans {
		plans = append(plans, postgres.BusinessPlanModel{ID: seedID("plan/" + p.Key), Name: p.Name, Tier: p.Tier})
	}
	for _, s := range data.Subscriptions {
		subs = append(subs, postgres.BusinessSubscriptionModel{
			ID: seedID("subscription/" + s.Business), BusinessID: seedID("business/" + s.Business), PlanID: seedID("plan/" + s.Plan), Status: "active",
		})
	}
	for _, a := range data.Ads {
		ads = append(ads, postgres.AdModel{
			ID: seedID("ad/" + a.Key), BusinessID: seedID("business/" + a.Business), Placement: a.Placement,
			Status: "active", StartDate: a.Start.UTC(), EndDate: a.End.UTC(),
		})
	}
	for _, p := range data.UserPlans {
		userPlans = append(userPlans, postgres.UserPlanModel{ID: seedID("user-plan/" + p.Key), Name: p.Name, Tier: p.Tier})
	}
	userSubs := []postgres.UserSubscriptionModel{{
		ID: seedID("user-subscription/" + data.UserID), UserID: data.UserID, PlanID: seedID("user-plan/" + data.UserPlan), Status: "active",
	}}

	return []any{&categories, &businesses, &parishes, &hoursRows, &sections, &items, &deals, &reviews, &events, &plans, &subs, &ads, &userPlans, &userSubs}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
