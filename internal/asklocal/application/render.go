package application

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cajun-local/ask-local/api/internal/asklocal/domain"
)

const (
	// MenuItemsCap bounds the number of menu items rendered per business.
	MenuItemsCap = 15
	// EventsCap bounds the number of upcoming events rendered per business.
	EventsCap = 5
	// Placeholder stands in for any missing field so every block has the same shape.
	Placeholder = "—"
)

var weekdayOrder = map[string]int{
	"monday":    0,
	"tuesday":   1,
	"wednesday": 2,
	"thursday":  3,
	"friday":    4,
	"saturday":  5,
	"sunday":    6,
}

var weekdayAbbrev = map[string]string{
	"monday":    "Mon",
	"tuesday":   "Tue",
	"wednesday": "Wed",
	"thursday":  "Thu",
	"friday":    "Fri",
	"saturday":  "Sat",
	"sunday":    "Sun",
}

// RenderBlock renders one business as a fixed-order markdown block.
func RenderBlock(b domain.Business, featuredReason string, data *RelatedData) string {
	lines := make([]string, 0, 15)
	lines = append(lines, "### "+b.Name)
	lines = append(lines, "- ID: "+b.ID)
	if featuredReason != "" {
		lines = append(lines, "- Featured: "+featuredReason)
	}
	lines = append(lines, "- Category: "+orPlaceholder(data.CategoryName(b.CategoryID)))
	lines = append(lines, strings.TrimSpace(fmt.Sprintf("- City: %s %s %s", orPlaceholder(b.City), b.State, b.Zip)))
	lines = append(lines, "- Address: "+orPlaceholder(b.Address))
	lines = append(lines, "- Phone: "+orPlaceholder(b.Phone))
	lines = append(lines, "- Website: "+orPlaceholder(b.Website))
	if email := strings.TrimSpace(b.Email); email != "" {
		lines = append(lines, "- Email: "+email)
	}
	if about := strings.TrimSpace(b.Description); about != "" {
		lines = append(lines, "- About: "+about)
	}
	lines = append(lines, "- Avg Rating: "+formatRating(data, b.ID))
	lines = append(lines, "- Hours: "+formatHours(data.hours[b.ID]))
	lines = append(lines, "- Menu: "+formatMenu(data, b.ID))
	lines = append(lines, "- Active Deals: "+formatDeals(data.deals[b.ID]))
	lines = append(lines, "- Upcoming Events: "+formatEvents(data.events[b.ID]))
	return strings.Join(lines, "\n")
}

func orPlaceholder(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return Placeholder
	}
	return value
}

func formatRating(data *RelatedData, businessID string) string {
	avg, ok := data.AverageRating(businessID)
	if !ok {
		return Placeholder
	}
	return strconv.FormatFloat(avg, 'f', -1, 64) + "/5"
}

// formatHours sorts Monday first; unrecognised day names follow in lexical order.
func formatHours(rows []domain.HoursEntry) string {
	if len(rows) == 0 {
		return Placeholder
	}
	sorted := append([]domain.HoursEntry(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := dayRank(sorted[i].DayOfWeek), dayRank(sorted[j].DayOfWeek)
		if a != b {
			return a < b
		}
		return sorted[i].DayOfWeek < sorted[j].DayOfWeek
	})

	parts := make([]string, 0, len(sorted))
	for _, h := range sorted {
		day := h.DayOfWeek
		if abbrev, ok := weekdayAbbrev[strings.ToLower(day)]; ok {
			day = abbrev
		}
		if h.IsClosed {
			parts = append(parts, day+": closed")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s-%s", day, orUnknown(h.OpenTime), orUnknown(h.CloseTime)))
	}
	return strings.Join(parts, ", ")
}

func dayRank(day string) int {
	if rank, ok := weekdayOrder[strings.ToLower(day)]; ok {
		return rank
	}
	return len(weekdayOrder)
}

func orUnknown(value string) string {
	if strings.TrimSpace(value) == "" {
		return "?"
	}
	return value
}

// formatMenu walks sections in order and stops after MenuItemsCap available items.
func formatMenu(data *RelatedData, businessID string) string {
	parts := make([]string, 0, MenuItemsCap)
	for _, section := range data.sections[businessID] {
		for _, item := range data.items[section.ID] {
			if len(parts) >= MenuItemsCap {
				break
			}
			if !item.Available() {
				continue
			}
			entry := item.Name
			if item.Price != nil {
				entry += fmt.Sprintf(" ($%.2f)", *item.Price)
			}
			parts = append(parts, entry)
		}
		if len(parts) >= MenuItemsCap {
			break
		}
	}
	if len(parts) == 0 {
		return Placeholder
	}
	return strings.Join(parts, ", ")
}

func formatDeals(deals []domain.Deal) string {
	if len(deals) == 0 {
		return Placeholder
	}
	parts := make([]string, 0, len(deals))
	for _, d := range deals {
		entry := d.Title
		if desc := strings.TrimSpace(d.Description); desc != "" {
			entry += " — " + desc
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, "; ")
}

// formatEvents prints event dates as UTC calendar days whatever zone the store decoded.
func formatEvents(events []domain.Event) string {
	if len(events) == 0 {
		return Placeholder
	}
	if len(events) > EventsCap {
		events = events[:EventsCap]
	}
	parts := make([]string, 0, len(events))
	for _, e := range events {
		entry := fmt.Sprintf("%s (%s)", e.Title, e.EventDate.UTC().Format("2006-01-02"))
		if desc := strings.TrimSpace(e.Description); desc != "" {
			entry += " — " + desc
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, "; ")
}
