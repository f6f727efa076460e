package mongo

import (
	"time"

	"github.com/cajun-local/ask-local/api/internal/asklocal/domain"
)

// Collection names mirror the relational table names.
const (
	CollectionBusinesses            = "businesses"
	CollectionBusinessCategories    = "business_categories"
	CollectionBusinessParishes      = "business_parishes"
	CollectionBusinessHours         = "business_hours"
	CollectionMenuSections          = "menu_sections"
	CollectionMenuItems             = "menu_items"
	CollectionDeals                 = "deals"
	CollectionReviews               = "reviews"
	CollectionBusinessEvents        = "business_events"
	CollectionBusinessSubscriptions = "business_subscriptions"
	CollectionBusinessPlans         = "business_plans"
	CollectionBusinessAds           = "business_ads"
	CollectionUserSubscriptions     = "user_subscriptions"
	CollectionUserPlans             = "user_plans"
)

// BusinessDocument is the Mongo schema of a directory listing.
type BusinessDocument struct {
	ID          string     `bson:"_id"`
	Name        string     `bson:"name"`
	Description string     `bson:"description,omitempty"`
	City        string     `bson:"city,omitempty"`
	State       string     `bson:"state,omitempty"`
	Parish      string     `bson:"parish,omitempty"`
	Address     string     `bson:"address,omitempty"`
	Zip         string     `bson:"zip,omitempty"`
	Phone       string     `bson:"phone,omitempty"`
	Website     string     `bson:"website,omitempty"`
	Email       string     `bson:"email,omitempty"`
	CategoryID  string     `bson:"category_id,omitempty"`
	Status      string     `bson:"status"`
	CreatedAt   *time.Time `bson:"created_at,omitempty"`
}

type CategoryDocument struct {
	ID   string `bson:"_id"`
	Name string `bson:"name"`
}

type BusinessParishDocument struct {
	BusinessID string `bson:"business_id"`
	ParishID   string `bson:"parish_id"`
}

type HoursDocument struct {
	BusinessID string `bson:"business_id"`
	DayOfWeek  string `bson:"day_of_week"`
	OpenTime   string `bson:"open_time,omitempty"`
	CloseTime  string `bson:"close_time,omitempty"`
	IsClosed   bool   `bson:"is_closed"`
}

type MenuSectionDocument struct {
	ID         string `bson:"_id"`
	BusinessID string `bson:"business_id"`
	Name       string `bson:"name"`
	SortOrder  *int   `bson:"sort_order,omitempty"`
}

type MenuItemDocument struct {
	ID          string   `bson:"_id"`
	SectionID   string   `bson:"section_id"`
	Name        string   `bson:"name"`
	Price       *float64 `bson:"price,omitempty"`
	IsAvailable *bool    `bson:"is_available,omitempty"`
}

type DealDocument struct {
	ID          string `bson:"_id"`
	BusinessID  string `bson:"business_id"`
	Title       string `bson:"title"`
	Description string `bson:"description,omitempty"`
	DealType    string `bson:"deal_type,omitempty"`
	Status      string `bson:"status"`
	IsActive    bool   `bson:"is_active"`
}

type ReviewDocument struct {
	ID         string  `bson:"_id"`
	BusinessID string  `bson:"business_id"`
	Rating     float64 `bson:"rating"`
	Status     string  `bson:"status"`
}

type EventDocument struct {
	ID          string    `bson:"_id"`
	BusinessID  string    `bson:"business_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description,omitempty"`
	EventDate   time.Time `bson:"event_date"`
	Status      string    `bson:"status"`
}

// BusinessSubscriptionDocument links a business to a paid plan.
type BusinessSubscriptionDocument struct {
	ID         string `bson:"_id"`
	BusinessID string `bson:"business_id"`
	PlanID     string `bson:"plan_id"`
	Status     string `bson:"status"`
}

type PlanDocument struct {
	ID   string `bson:"_id"`
	Name string `bson:"name,omitempty"`
	Tier string `bson:"tier"`
}

type AdDocument struct {
	ID         string    `bson:"_id"`
	BusinessID string    `bson:"business_id"`
	Placement  string    `bson:"placement"`
	Status     string    `bson:"status"`
	StartDate  time.Time `bson:"start_date"`
	EndDate    time.Time `bson:"end_date"`
}

// UserSubscriptionDocument links an end-user to a member plan.
type UserSubscriptionDocument struct {
	ID     string `bson:"_id"`
	UserID string `bson:"user_id"`
	PlanID string `bson:"plan_id"`
	Status string `bson:"status"`
}

func mapBusinessDocument(doc BusinessDocument) domain.Business {
	return domain.Business{
		ID:          doc.ID,
		Name:        doc.Name,
		Description: doc.Description,
		City:        doc.City,
		State:       doc.State,
		Region:      doc.Parish,
		Address:     doc.Address,
		Zip:         doc.Zip,
		Phone:       doc.Phone,
		Website:     doc.Website,
		Email:       doc.Email,
		CategoryID:  doc.CategoryID,
	}
}

func mapHoursDocument(doc HoursDocument) domain.HoursEntry {
	return domain.HoursEntry{
		BusinessID: doc.BusinessID,
		DayOfWeek:  doc.DayOfWeek,
		OpenTime:   doc.OpenTime,
		CloseTime:  doc.CloseTime,
		IsClosed:   doc.IsClosed,
	}
}

func mapMenuSectionDocument(doc MenuSectionDocument) domain.MenuSection {
	return domain.MenuSection{ID: doc.ID, BusinessID: doc.BusinessID, Name: doc.Name, SortOrder: doc.SortOrder}
}

func mapMenuItemDocument(doc MenuItemDocument) domain.MenuItem {
	return domain.MenuItem{SectionID: doc.SectionID, Name: doc.Name, Price: doc.Price, IsAvailable: doc.IsAvailable}
}

func mapDealDocument(doc DealDocument) domain.Deal {
	return domain.Deal{BusinessID: doc.BusinessID, Title: doc.Title, Description: doc.Description, DealType: doc.DealType}
}

func mapEventDocument(doc EventDocument) domain.Event {
	return domain.Event{BusinessID: doc.BusinessID, Title: doc.Title, Description: doc.Description, EventDate: doc.EventDate}
}

func mapAdDocument(doc AdDocument) domain.Advertisement {
	return domain.Advertisement{
		BusinessID: doc.BusinessID,
		Placement:  doc.Placement,
		Status:     doc.Status,
		StartDate:  doc.StartDate,
		EndDate:    doc.EndDate,
	}
}
