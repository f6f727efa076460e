package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cajun-local/ask-local/api/internal/asklocal/domain"
)

const (
	statusApproved = "approved"
	statusActive   = "active"
)

// DirectoryRepository implements application.DirectoryRepository using MongoDB.
type DirectoryRepository struct {
	db *mongo.Database
}

// NewDirectoryRepository creates a new Mongo-backed directory repository.
func NewDirectoryRepository(db *mongo.Database) *DirectoryRepository {
	return &DirectoryRepository{db: db}
}

// ApprovedBusinesses returns every listing with status approved.
func (r *DirectoryRepository) ApprovedBusinesses(ctx context.Context) ([]domain.Business, error) {
	docs, err := decodeAll[BusinessDocument](ctx, r.db.Collection(CollectionBusinesses), bson.M{"status": statusApproved})
	if err != nil {
		return nil, err
	}
	businesses := make([]domain.Business, 0, len(docs))
	for _, doc := range docs {
		businesses = append(businesses, mapBusinessDocument(doc))
	}
	return businesses, nil
}

// RegionMemberships returns the additional parishes served by the businesses.
func (r *DirectoryRepository) RegionMemberships(ctx context.Context, businessIDs []string) ([]domain.RegionMembership, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	docs, err := decodeAll[BusinessParishDocument](ctx, r.db.Collection(CollectionBusinessParishes), inFilter("business_id", businessIDs))
	if err != nil {
		return nil, err
	}
	memberships := make([]domain.RegionMembership, 0, len(docs))
	for _, doc := range docs {
		memberships = append(memberships, domain.RegionMembership{BusinessID: doc.BusinessID, RegionID: doc.ParishID})
	}
	return memberships, nil
}

func (r *DirectoryRepository) Categories(ctx context.Context, ids []string) ([]domain.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	docs, err := decodeAll[CategoryDocument](ctx, r.db.Collection(CollectionBusinessCategories), inFilter("_id", ids))
	if err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, len(docs))
	for _, doc := range docs {
		categories = append(categories, domain.Category{ID: doc.ID, Name: doc.Name})
	}
	return categories, nil
}

func (r *DirectoryRepository) Hours(ctx context.Context, businessIDs []string) ([]domain.HoursEntry, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	docs, err := decodeAll[HoursDocument](ctx, r.db.Collection(CollectionBusinessHours), inFilter("business_id", businessIDs))
	if err != nil {
		return nil, err
	}
	hours := make([]domain.HoursEntry, 0, len(docs))
	for _, doc := range docs {
		hours = append(hours, mapHoursDocument(doc))
	}
	return hours, nil
}

func (r *DirectoryRepository) MenuSections(ctx context.Context, businessIDs []string) ([]domain.MenuSection, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	docs, err := decodeAll[MenuSectionDocument](ctx, r.db.Collection(CollectionMenuSections), inFilter("business_id", businessIDs))
	if err != nil {
		return nil, err
	}
	sections := make([]domain.MenuSection, 0, len(docs))
	for _, doc := range docs {
		sections = append(sections, mapMenuSectionDocument(doc))
	}
	return sections, nil
}

func (r *DirectoryRepository) MenuItems(ctx context.Context, sectionIDs []string) ([]domain.MenuItem, error) {
	if len(sectionIDs) == 0 {
		return nil, nil
	}
	docs, err := decodeAll[MenuItemDocument](ctx, r.db.Collection(CollectionMenuItems), inFilter("section_id", sectionIDs))
	if err != nil {
		return nil, err
	}
	items := make([]domain.MenuItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, mapMenuItemDocument(doc))
	}
	return items, nil
}

// ActiveDeals returns approved deals that are switched on.
func (r *DirectoryRepository) ActiveDeals(ctx context.Context, businessIDs []string) ([]domain.Deal, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	filter := inFilter("business_id", businessIDs)
	filter["status"] = statusApproved
	filter["is_active"] = true

	docs, err := decodeAll[DealDocument](ctx, r.db.Collection(CollectionDeals), filter)
	if err != nil {
		return nil, err
	}
	deals := make([]domain.Deal, 0, len(docs))
	for _, doc := range docs {
		deals = append(deals, mapDealDocument(doc))
	}
	return deals, nil
}

func (r *DirectoryRepository) ApprovedReviews(ctx context.Context, businessIDs []string) ([]domain.Review, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	filter := inFilter("business_id", businessIDs)
	filter["status"] = statusApproved

	docs, err := decodeAll[ReviewDocument](ctx, r.db.Collection(CollectionReviews), filter)
	if err != nil {
		return nil, err
	}
	reviews := make([]domain.Review, 0, len(docs))
	for _, doc := range docs {
		reviews = append(reviews, domain.Review{BusinessID: doc.BusinessID, Rating: doc.Rating})
	}
	return reviews, nil
}

// UpcomingEvents returns approved events dated on or after from, earliest first.
func (r *DirectoryRepository) UpcomingEvents(ctx context.Context, businessIDs []string, from time.Time) ([]domain.Event, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	docs, err := decodeAll[EventDocument](ctx, r.db.Collection(CollectionBusinessEvents), upcomingEventsFilter(businessIDs, from),
		findSorted("event_date", 1))
	if err != nil {
		return nil, err
	}
	events := make([]domain.Event, 0, len(docs))
	for _, doc := range docs {
		events = append(events, mapEventDocument(doc))
	}
	return events, nil
}

func inFilter(field string, values []string) bson.M {
	return bson.M{field: bson.M{"$in": values}}
}

func upcomingEventsFilter(businessIDs []string, from time.Time) bson.M {
	filter := inFilter("business_id", businessIDs)
	filter["status"] = statusApproved
	filter["event_date"] = bson.M{"$gte": from}
	return filter
}
