package application

import (
	"math"
	"sort"
	"sync"

	"github.com/cajun-local/ask-local/api/internal/asklocal/domain"
)

// RelatedData is the per-request arena of sub-entities keyed by business id.
// It is filled concurrently by the loaders and read-only afterwards.
type RelatedData struct {
	mu         sync.Mutex
	categories map[string]string
	hours      map[string][]domain.HoursEntry
	sections   map[string][]domain.MenuSection
	items      map[string][]domain.MenuItem
	deals      map[string][]domain.Deal
	ratings    map[string]float64
	events     map[string][]domain.Event
}

func newRelatedData() *RelatedData {
	return &RelatedData{
		categories: map[string]string{},
		hours:      map[string][]domain.HoursEntry{},
		sections:   map[string][]domain.MenuSection{},
		items:      map[string][]domain.MenuItem{},
		deals:      map[string][]domain.Deal{},
		ratings:    map[string]float64{},
		events:     map[string][]domain.Event{},
	}
}

func (d *RelatedData) addCategories(categories []domain.Category) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range categories {
		d.categories[c.ID] = c.Name
	}
}

func (d *RelatedData) addHours(hours []domain.HoursEntry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, h := range hours {
		d.hours[h.BusinessID] = append(d.hours[h.BusinessID], h)
	}
}

// addMenu keeps sections ordered by sort order, stable for equal keys.
func (d *RelatedData) addMenu(sections []domain.MenuSection, items []domain.MenuItem) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, s := range sections {
		d.sections[s.BusinessID] = append(d.sections[s.BusinessID], s)
	}
	for id := range d.sections {
		list := d.sections[id]
		sort.SliceStable(list, func(i, j int) bool { return list[i].Order() < list[j].Order() })
	}
	for _, item := range items {
		d.items[item.SectionID] = append(d.items[item.SectionID], item)
	}
}

func (d *RelatedData) addDeals(deals []domain.Deal) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, deal := range deals {
		d.deals[deal.BusinessID] = append(d.deals[deal.BusinessID], deal)
	}
}

// addReviews stores the average rating rounded to one decimal place.
func (d *RelatedData) addReviews(reviews []domain.Review) {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, r := range reviews {
		sums[r.BusinessID] += r.Rating
		counts[r.BusinessID]++
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	for id, count := range counts {
		avg := sums[id] / float64(count)
		d.ratings[id] = math.Round(avg*10) / 10
	}
}

func (d *RelatedData) addEvents(events []domain.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, e := range events {
		d.events[e.BusinessID] = append(d.events[e.BusinessID], e)
	}
}

// CategoryName returns the category display name, or "" when unknown.
func (d *RelatedData) CategoryName(categoryID string) string {
	return d.categories[categoryID]
}

// AverageRating returns the rounded average and whether any review exists.
func (d *RelatedData) AverageRating(businessID string) (float64, bool) {
	avg, ok := d.ratings[businessID]
	return avg, ok
}

func (d *RelatedData) sectionCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, list := range d.sections {
		n += len(list)
	}
	return n
}
