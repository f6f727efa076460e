package main

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongodoc "github.com/cajun-local/ask-local/api/internal/infrastructure/mongo"
)

type mongoBatch struct {
	collection string
	docs       []any
	// keyed batches upsert by _id; the rest are replaced wholesale.
	keyed bool
}

func seedMongo(ctx context.Context, uri, database string, timeout time.Duration, data dataset, drop bool) error {
	client, err := mongodoc.Connect(ctx, uri, timeout)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(database)
	for _, batch := range mongoBatches(data) {
		coll := db.Collection(batch.collection)
		if drop {
			if err := coll.Drop(ctx); err != nil {
				return fmt.Errorf("drop %s: %w", batch.collection, err)
			}
		}
		if err := writeBatch(ctx, coll, batch); err != nil {
			return fmt.Errorf("seed %s: %w", batch.collection, err)
		}
	}
	return nil
}

func writeBatch(ctx context.Context, coll *mongo.Collection, batch mongoBatch) error {
	if !batch.keyed {
		if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
			return err
		}
		_, err := coll.InsertMany(ctx, batch.docs)
		return err
	}

	models := make([]mongo.WriteModel, 0, len(batch.docs))
	for _, doc := range batch.docs {
		raw, err := bson.Marshal(doc)
		if err != nil {
			return err
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": bson.Raw(raw).Lookup("_id")}).
			SetReplacement(doc).
			SetUpsert(true))
	}
	_, err := coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}

func mongoBatches(data dataset) []mongoBatch {
	var (
		categories, businesses, parishes, hoursDocs []any
		sections, items, deals, reviews, events     []any
		plans, subs, ads, userPlans                 []any
	)

	for key, name := range data.Categories {
		categories = append(categories, mongodoc.CategoryDocument{ID: seedID("category/" + key), Name: name})
	}
	for _, b := range data.Businesses {
		created := time.Now().UTC()
		businesses = append(businesses, mongodoc.BusinessDocument{
			ID: seedID("business/" + b.Key), Name: b.Name, Description: b.Description,
			City: b.City, State: "LA", Parish: b.Parish, Address: b.Address, Zip: b.Zip,
			Phone: b.Phone, Website: b.Website, CategoryID: seedID("category/" + b.Category),
			Status: b.Status, CreatedAt: &created,
		})
		for _, p := range b.Parishes {
			parishes = append(parishes, mongodoc.BusinessParishDocument{BusinessID: seedID("business/" + b.Key), ParishID: p})
		}
	}
	for _, h := range data.Hours {
		hoursDocs = append(hoursDocs, mongodoc.HoursDocument{
			BusinessID: seedID("business/" + h.Business), DayOfWeek: h.Day, OpenTime: h.Open, CloseTime: h.Close, IsClosed: h.Closed,
		})
	}
	for _, s := range data.Sections {
		order := s.Order
		sections = append(sections, mongodoc.MenuSectionDocument{
			ID: seedID("section/" + s.Key), BusinessID: seedID("business/" + s.Business), Name: s.Name, SortOrder: &order,
		})
		for _, it := range s.Items {
			price, available := it.Price, it.Available
			items = append(items, mongodoc.MenuItemDocument{
				ID: seedID("item/" + s.Key + "/" + it.Name), SectionID: seedID("section/" + s.Key),
				Name: it.Name, Price: &price, IsAvailable: &available,
			})
		}
	}
	for _, d := range data.Deals {
		deals = append(deals, mongodoc.DealDocument{
			ID: seedID("deal/" + d.Key), BusinessID: seedID("business/" + d.Business), Title: d.Title,
			Description: d.Description, DealType: d.Type, Status: "approved", IsActive: true,
		})
	}
	for i, r := range data.Reviews {
		reviews = append(reviews, mongodoc.ReviewDocument{
			ID: seedID(fmt.Sprintf("review/%d", i)), BusinessID: seedID("business/" + r.Business), Rating: r.Rating, Status: "approved",
		})
	}
	for _, e := range data.Events {
		events = append(events, mongodoc.EventDocument{
			ID: seedID("event/" + e.Key), BusinessID: seedID("business/" + e.Business), Title: e.Title,
			Description: e.Description, EventDate: e.Date.UTC(), Status: "approved",
		})
	}
	for _, p := range data.Plans {
		plans = append(plans, mongodoc.PlanDocument{ID: seedID("plan/" + p.Key), Name: p.Name, Tier: p.Tier})
	}
	for _, s := range data.Subscriptions {
		subs = append(subs, mongodoc.BusinessSubscriptionDocument{
			ID: seedID("subscription/" + s.Business), BusinessID: seedID("business/" + s.Business), PlanID: seedID("plan/" + s.Plan), Status: "active",
		})
	}
	for _, a := range data.Ads {
		ads = append(ads, mongodoc.AdDocument{
			ID: seedID("ad/" + a.Key), BusinessID: seedID("business/" + a.Business), Placement: a.Placement,
			Status: "active", StartDate: a.Start.UTC(), EndDate: a.End.UTC(),
		})
	}
	for _, p := range data.UserPlans {
		userPlans = append(userPlans, mongodoc.PlanDocument{ID: seedID("user-plan/" + p.Key), Name: p.Name, Tier: p.Tier})
	}
	userSubs := []any{mongodoc.UserSubscriptionDocument{
		ID: seedID("user-subscription/" + data.UserID), UserID: data.UserID, PlanID: seedID("user-plan/" + data.UserPlan), Status: "active",
	}}

	return []mongoBatch{
		{collection: mongodoc.CollectionBusinessCategories, docs: categories, keyed: true},
		{collection: mongodoc.CollectionBusinesses, docs: businesses, keyed: true},
		{collection: mongodoc.CollectionBusinessParishes, docs: parishes},
		{collection: mongodoc.CollectionBusinessHours, docs: hoursDocs},
		{collection: mongodoc.CollectionMenuSections, docs: sections, keyed: true},
		{collection: mongodoc.CollectionMenuItems, docs: items, keyed: true},
		{collection: mongodoc.CollectionDeals, docs: deals, keyed: true},
		{collection: mongodoc.CollectionReviews, docs: reviews, keyed: true},
		{collection: mongodoc.CollectionBusinessEvents, docs: events, keyed: true},
		{collection: mongodoc.CollectionBusinessPlans, docs: plans, keyed: true},
		{collection: mongodoc.CollectionBusinessSubscriptions, docs: subs, keyed: true},
		{collection: mongodoc.CollectionBusinessAds, docs: ads, keyed: true},
		{collection: mongodoc.CollectionUserPlans, docs: userPlans, keyed: true},
		{collection: mongodoc.CollectionUserSubscriptions, docs: userSubs, keyed: true},
	}
}
