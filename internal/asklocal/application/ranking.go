package application

import (
	"math/rand/v2"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/cajun-local/ask-local/api/internal/asklocal/domain"
)

// Ranking is the ordered listing sequence: featured first, then the rest.
type Ranking struct {
	Ordered       []domain.Business
	FeaturedCount int
}

// Featured returns the leading featured run.
func (r Ranking) Featured() []domain.Business {
	return r.Ordered[:r.FeaturedCount]
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) {
	rand.Shuffle(n, swap)
}

// DefaultShuffler uses the runtime's goroutine-safe generator.
var DefaultShuffler Shuffler = globalShuffler{}

// Rank partitions businesses by the featured set. Featured businesses are shuffled
// uniformly with shuffler; the rest are ordered by name using English collation,
// falling back to id so the order is total.
func Rank(businesses []domain.Business, promos Promotions, shuffler Shuffler) Ranking {
	if shuffler == nil {
		shuffler = DefaultShuffler
	}

	featured := make([]domain.Business, 0, len(businesses))
	rest := make([]domain.Business, 0, len(businesses))
	for _, b := range businesses {
		if promos.Featured(b.ID) {
			featured = append(featured, b)
		} else {
			rest = append(rest, b)
		}
	}

	shuffler.Shuffle(len(featured), func(i, j int) {
		featured[i], featured[j] = featured[j], featured[i]
	})
	sortByName(rest)

	return Ranking{
		Ordered:       append(featured, rest...),
		FeaturedCount: len(featured),
	}
}

func sortByName(businesses []domain.Business) {
	c := collate.New(language.English)
	sort.SliceStable(businesses, func(i, j int) bool {
		if cmp := c.CompareString(businesses[i].Name, businesses[j].Name); cmp != 0 {
			return cmp < 0
		}
		return businesses[i].ID < businesses[j].ID
	})
}

const featuredHeader = "=== FEATURED / TOP PROVIDERS (prioritize these when they match) ==="

// FeaturedPreamble lists the leading featured run with reason labels.
// It is empty when nothing is featured.
func FeaturedPreamble(ranking Ranking, promos Promotions) string {
	names := make([]string, 0, ranking.FeaturedCount)
	for _, b := range ranking.Ordered {
		if !promos.Featured(b.ID) {
			break
		}
		entry := b.Name
		if reason := promos.Reason(b.ID); reason != "" {
			entry += " (" + reason + ")"
		}
		names = append(names, entry)
	}
	if len(names) == 0 {
		return ""
	}
	return featuredHeader + "\n" + strings.Join(names, "\n") + "\n\n"
}
