package application

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cajun-local/ask-local/api/internal/asklocal/domain"
)

// RegionSet is the caller's set of preferred region identifiers.
type RegionSet map[string]struct{}

// NewRegionSet trims ids and drops blanks.
func NewRegionSet(ids []string) RegionSet {
	set := make(RegionSet, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		set[id] = struct{}{}
	}
	return set
}

// Has reports membership.
func (s RegionSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Assembler loads the directory snapshot used to build the prompt context.
type Assembler struct {
	repo     DirectoryRepository
	now      func() time.Time
	location *time.Location
	logger   *zap.Logger
}

// NewAssembler creates an assembler. location decides what "today" means for events.
func NewAssembler(repo DirectoryRepository, now func() time.Time, location *time.Location, logger *zap.Logger) *Assembler {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{repo: repo, now: now, location: location, logger: logger}
}

// LoadBusinesses returns approved businesses, keeping only those serving a preferred
// region when regions is non-empty. A business matches when its primary region or any
// of its region memberships is in the set.
func (a *Assembler) LoadBusinesses(ctx context.Context, regions RegionSet) ([]domain.Business, error) {
	businesses, err := a.repo.ApprovedBusinesses(ctx)
	if err != nil {
		return nil, storeError("load businesses", err)
	}
	if len(regions) == 0 || len(businesses) == 0 {
		return businesses, nil
	}

	memberships, err := a.repo.RegionMemberships(ctx, businessIDs(businesses))
	if err != nil {
		return nil, storeError("load region memberships", err)
	}
	return filterByRegion(businesses, memberships, regions), nil
}

func filterByRegion(businesses []domain.Business, memberships []domain.RegionMembership, regions RegionSet) []domain.Business {
	served := make(map[string]bool, len(memberships))
	for _, m := range memberships {
		if regions.Has(strings.TrimSpace(m.RegionID)) {
			served[m.BusinessID] = true
		}
	}

	filtered := make([]domain.Business, 0, len(businesses))
	for _, b := range businesses {
		if regions.Has(b.PrimaryRegion()) || served[b.ID] {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

// LoadRelated fans out the per-business reads and builds the related-data arena.
func (a *Assembler) LoadRelated(ctx context.Context, businesses []domain.Business) (*RelatedData, error) {
	ids := businessIDs(businesses)
	data := newRelatedData()
	from := startOfDay(a.now(), a.location)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		categories, err := a.repo.Categories(gctx, categoryIDs(businesses))
		if err != nil {
			return storeError("load categories", err)
		}
		data.addCategories(categories)
		return nil
	})
	g.Go(func() error {
		hours, err := a.repo.Hours(gctx, ids)
		if err != nil {
			return storeError("load hours", err)
		}
		data.addHours(hours)
		return nil
	})
	g.Go(func() error {
		sections, err := a.repo.MenuSections(gctx, ids)
		if err != nil {
			return storeError("load menu sections", err)
		}
		sectionIDs := make([]string, 0, len(sections))
		for _, s := range sections {
			sectionIDs = append(sectionIDs, s.ID)
		}
		items, err := a.repo.MenuItems(gctx, sectionIDs)
		if err != nil {
			return storeError("load menu items", err)
		}
		data.addMenu(sections, items)
		return nil
	})
	g.Go(func() error {
		deals, err := a.repo.ActiveDeals(gctx, ids)
		if err != nil {
			return storeError("load deals", err)
		}
		data.addDeals(deals)
		return nil
	})
	g.Go(func() error {
		reviews, err := a.repo.ApprovedReviews(gctx, ids)
		if err != nil {
			return storeError("load reviews", err)
		}
		data.addReviews(reviews)
		return nil
	})
	g.Go(func() error {
		events, err := a.repo.UpcomingEvents(gctx, ids, from)
		if err != nil {
			return storeError("load events", err)
		}
		data.addEvents(events)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.logger.Debug("directory context loaded",
		zap.Int("businesses", len(businesses)),
		zap.Int("menu_sections", data.sectionCount()),
	)
	return data, nil
}

func businessIDs(businesses []domain.Business) []string {
	ids := make([]string, 0, len(businesses))
	for _, b := range businesses {
		ids = append(ids, b.ID)
	}
	return ids
}

func categoryIDs(businesses []domain.Business) []string {
	seen := make(map[string]struct{}, len(businesses))
	ids := make([]string, 0, len(businesses))
	for _, b := range businesses {
		if b.CategoryID == "" {
			continue
		}
		if _, ok := seen[b.CategoryID]; ok {
			continue
		}
		seen[b.CategoryID] = struct{}{}
		ids = append(ids, b.CategoryID)
	}
	return ids
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
