package main

import (
	"time"

	"github.com/google/uuid"
)

// Derived ids keep reseeding idempotent.
func seedID(key string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("cajun-local/"+key)).String()
}

type business struct {
	Key         string
	Name        string
	Description string
	City        string
	Parish      string
	Address     string
	Zip         string
	Phone       string
	Website     string
	Category    string
	Status      string
	Parishes    []string
}

type hours struct {
	Business string
	Day      string
	Open     string
	Close    string
	Closed   bool
}

type menuSection struct {
	Key      string
	Business string
	Name     string
	Order    int
	Items    []menuItem
}

type menuItem struct {
	Name      string
	Price     float64
	Available bool
}

type deal struct {
	Key         string
	Business    string
	Title       string
	Description string
	Type        string
}

type review struct {
	Business string
	Rating   float64
}

type event struct {
	Key         string
	Business    string
	Title       string
	Description string
	Date        time.Time
}

type plan struct {
	Key  string
	Name string
	Tier string
}

type subscription struct {
	Business string
	Plan     string
}

type ad struct {
	Key       string
	Business  string
	Placement string
	Start     time.Time
	End       time.Time
}

type dataset struct {
	Categories    map[string]string
	Businesses    []business
	Hours         []hours
	Sections      []menuSection
	Deals         []deal
	Reviews       []review
	Events        []event
	Plans         []plan
	Subscriptions []subscription
	Ads           []ad
	UserPlans     []plan
	UserID        string
	UserPlan      string
}

// demoDataset returns a small Acadiana directory. Event and ad dates are
// relative to now so the data stays current.
func demoDataset(now time.Time, userID string) dataset {
	day := 24 * time.Hour
	weekdays := []string{"monday", "tuesday", "wednesday", "thursday", "friday"}

	var hoursRows []hours
	for _, d := range weekdays {
		hoursRows = append(hoursRows,
			hours{Business: "bayou-bistro", Day: d, Open: "11:00", Close: "21:00"},
			hours{Business: "boudin-king", Day: d, Open: "06:00", Close: "14:00"},
		)
	}
	hoursRows = append(hoursRows,
		hours{Business: "bayou-bistro", Day: "saturday", Open: "10:00", Close: "22:00"},
		hours{Business: "bayou-bistro", Day: "sunday", Closed: true},
		hours{Business: "zydeco-hall", Day: "friday", Open: "19:00", Close: "01:00"},
		hours{Business: "zydeco-hall", Day: "saturday", Open: "19:00", Close: "01:00"},
	)

	return dataset{
		Categories: map[string]string{
			"restaurant": "Restaurant",
			"music":      "Live Music",
			"bakery":     "Bakery",
		},
		Businesses: []business{
			{
				Key: "bayou-bistro", Name: "Bayou Bistro", Category: "restaurant", Status: "approved",
				Description: "Gumbo, étouffée and crawfish boils on the Vermilion.",
				City:        "Lafayette", Parish: "Lafayette", Address: "101 Bayou Rd", Zip: "70501",
				Phone: "337-555-0101", Website: "https://bayoubistro.example", Parishes: []string{"lafayette"},
			},
			{
				Key: "boudin-king", Name: "Boudin King", Category: "restaurant", Status: "approved",
				Description: "Boudin links, cracklins and plate lunches.",
				City:        "Breaux Bridge", Parish: "St. Martin", Address: "22 Rees St", Zip: "70517",
				Phone: "337-555-0122", Parishes: []string{"st-martin", "lafayette"},
			},
			{
				Key: "zydeco-hall", Name: "Zydeco Hall", Category: "music", Status: "approved",
				Description: "Dance hall with live zydeco every weekend.",
				City:        "Lafayette", Parish: "Lafayette", Phone: "337-555-0190", Parishes: []string{"lafayette"},
			},
			{
				Key: "crescent-beignets", Name: "Crescent Beignets", Category: "bakery", Status: "approved",
				Description: "Beignets and café au lait all day.",
				City:        "New Orleans", Parish: "Orleans", Zip: "70116", Parishes: []string{"orleans"},
			},
			{
				Key: "pending-po-boys", Name: "Pending Po-Boys", Category: "restaurant", Status: "pending",
				City: "Lafayette", Parish: "Lafayette", Parishes: []string{"lafayette"},
			},
		},
		Hours: hoursRows,
		Sections: []menuSection{
			{Key: "bistro-mains", Business: "bayou-bistro", Name: "Mains", Order: 1, Items: []menuItem{
				{Name: "Chicken & Sausage Gumbo", Price: 12.5, Available: true},
				{Name: "Crawfish Étouffée", Price: 16, Available: true},
				{Name: "Blackened Redfish", Price: 24, Available: false},
			}},
			{Key: "bistro-sides", Business: "bayou-bistro", Name: "Sides", Order: 2, Items: []menuItem{
				{Name: "Maque Choux", Price: 5, Available: true},
			}},
			{Key: "king-links", Business: "boudin-king", Name: "Boudin", Order: 1, Items: []menuItem{
				{Name: "Pork Boudin (1 lb)", Price: 7.99, Available: true},
				{Name: "Boudin Balls", Price: 6.5, Available: true},
			}},
		},
		Deals: []deal{
			{Key: "bistro-happy-hour", Business: "bayou-bistro", Title: "Happy hour oysters", Description: "Half-price char-grilled oysters 3-6pm.", Type: "discount"},
			{Key: "king-dozen", Business: "boudin-king", Title: "Boudin ball dozen", Type: "bundle"},
		},
		Reviews: []review{
			{Business: "bayou-bistro", Rating: 5},
			{Business: "bayou-bistro", Rating: 4},
			{Business: "boudin-king", Rating: 5},
			{Business: "crescent-beignets", Rating: 3},
		},
		Events: []event{
			{Key: "zydeco-friday", Business: "zydeco-hall", Title: "Friday Night Zydeco", Description: "Live band from 8pm.", Date: now.Add(3 * day)},
			{Key: "zydeco-festival", Business: "zydeco-hall", Title: "Accordion Festival", Date: now.Add(20 * day)},
			{Key: "bistro-boil", Business: "bayou-bistro", Title: "Crawfish Boil", Date: now.Add(7 * day)},
			{Key: "bistro-past", Business: "bayou-bistro", Title: "Mardi Gras Brunch", Date: now.Add(-30 * day)},
		},
		Plans: []plan{
			{Key: "business-standard", Name: "Standard", Tier: "standard"},
			{Key: "business-premium", Name: "Premium", Tier: "premium"},
		},
		Subscriptions: []subscription{
			{Business: "bayou-bistro", Plan: "business-premium"},
			{Business: "boudin-king", Plan: "business-standard"},
		},
		Ads: []ad{
			{Key: "king-directory-top", Business: "boudin-king", Placement: "directory_top", Start: now.Add(-7 * day), End: now.Add(30 * day)},
			{Key: "beignets-expired", Business: "crescent-beignets", Placement: "homepage_featured", Start: now.Add(-60 * day), End: now.Add(-30 * day)},
		},
		UserPlans: []plan{
			{Key: "member-free", Name: "Free", Tier: "free"},
			{Key: "member-pro", Name: "Pro", Tier: "pro"},
		},
		UserID:   userID,
		UserPlan: "member-pro",
	}
}
