package domain

import "time"

// BusinessStatusApproved is the only moderation status visible to ask-local.
const BusinessStatusApproved = "approved"

// Business represents an approved directory listing.
type Business struct {
	ID          string
	Name        string
	Description string
	City        string
	State       string
	Region      string
	Address     string
	Zip         string
	Phone       string
	Website     string
	Email       string
	CategoryID  string
}

// PrimaryRegion returns the trimmed region identifier stored on the listing itself.
func (b Business) PrimaryRegion() string {
	return trimSpace(b.Region)
}

// Category is the display grouping a business belongs to.
type Category struct {
	ID   string
	Name string
}

// RegionMembership links a business to an additional service region.
type RegionMembership struct {
	BusinessID string
	RegionID   string
}

// HoursEntry describes opening hours for one weekday.
type HoursEntry struct {
	BusinessID string
	DayOfWeek  string
	OpenTime   string
	CloseTime  string
	IsClosed   bool
}

// MenuSection groups menu items of a business.
type MenuSection struct {
	ID         string
	BusinessID string
	Name       string
	SortOrder  *int
}

// Order returns the section sort key, treating an unset order as zero.
func (s MenuSection) Order() int {
	if s.SortOrder == nil {
		return 0
	}
	return *s.SortOrder
}

// MenuItem is a single priced entry in a menu section.
type MenuItem struct {
	SectionID   string
	Name        string
	Price       *float64
	IsAvailable *bool
}

// Available reports whether the item may be shown; unknown availability counts as available.
func (i MenuItem) Available() bool {
	return i.IsAvailable == nil || *i.IsAvailable
}

// Deal is an active, approved promotion run by a business.
type Deal struct {
	BusinessID  string
	Title       string
	Description string
	DealType    string
}

// Review carries the rating of one approved review.
type Review struct {
	BusinessID string
	Rating     float64
}

// Event is an approved upcoming event hosted by a business.
type Event struct {
	BusinessID  string
	Title       string
	Description string
	EventDate   time.Time
}
