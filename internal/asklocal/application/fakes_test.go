package application

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/cajun-local/ask-local/api/internal/asklocal/domain"
)

type fakeVerifier struct {
	identity domain.Identity
	err      error
	readyErr error
}

func (f *fakeVerifier) Ready() error { return f.readyErr }

func (f *fakeVerifier) Verify(_ context.Context, _ string) (domain.Identity, error) {
	return f.identity, f.err
}

type fakeEntitlements struct {
	tier  domain.UserTier
	err   error
	calls int
}

func (f *fakeEntitlements) ActiveUserTier(_ context.Context, _ string) (domain.UserTier, error) {
	f.calls++
	return f.tier, f.err
}

type fakeDirectory struct {
	mu          sync.Mutex
	calls       map[string]int
	businesses  []domain.Business
	memberships []domain.RegionMembership
	categories  []domain.Category
	hours       []domain.HoursEntry
	sections    []domain.MenuSection
	items       []domain.MenuItem
	deals       []domain.Deal
	reviews     []domain.Review
	events      []domain.Event
	errs        map[string]error
	eventsFrom  time.Time
}

func (f *fakeDirectory) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[op]++
	return f.errs[op]
}

func (f *fakeDirectory) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeDirectory) ApprovedBusinesses(context.Context) ([]domain.Business, error) {
	return f.businesses, f.record("businesses")
}

func (f *fakeDirectory) RegionMemberships(context.Context, []string) ([]domain.RegionMembership, error) {
	return f.memberships, f.record("memberships")
}

func (f *fakeDirectory) Categories(context.Context, []string) ([]domain.Category, error) {
	return f.categories, f.record("categories")
}

func (f *fakeDirectory) Hours(context.Context, []string) ([]domain.HoursEntry, error) {
	return f.hours, f.record("hours")
}

func (f *fakeDirectory) MenuSections(context.Context, []string) ([]domain.MenuSection, error) {
	return f.sections, f.record("sections")
}

func (f *fakeDirectory) MenuItems(context.Context, []string) ([]domain.MenuItem, error) {
	return f.items, f.record("items")
}

func (f *fakeDirectory) ActiveDeals(context.Context, []string) ([]domain.Deal, error) {
	return f.deals, f.record("deals")
}

func (f *fakeDirectory) ApprovedReviews(context.Context, []string) ([]domain.Review, error) {
	return f.reviews, f.record("reviews")
}

func (f *fakeDirectory) UpcomingEvents(_ context.Context, _ []string, from time.Time) ([]domain.Event, error) {
	f.mu.Lock()
	f.eventsFrom = from
	f.mu.Unlock()
	return f.events, f.record("events")
}

type fakePromotions struct {
	subs   []domain.BusinessSubscription
	ads    []domain.Advertisement
	subErr error
	adErr  error
}

func (f *fakePromotions) ActiveSubscriptions(context.Context) ([]domain.BusinessSubscription, error) {
	return f.subs, f.subErr
}

func (f *fakePromotions) ActiveAdvertisements(context.Context, time.Time) ([]domain.Advertisement, error) {
	return f.ads, f.adErr
}

type fakeProvider struct {
	mu       sync.Mutex
	status   int
	body     string
	nilBody  bool
	err      error
	readyErr error
	requests []CompletionRequest
}

func (f *fakeProvider) Ready() error { return f.readyErr }

func (f *fakeProvider) OpenStream(_ context.Context, req CompletionRequest) (*ProviderResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	resp := &ProviderResponse{StatusCode: f.status}
	if !f.nilBody {
		resp.Body = io.NopCloser(strings.NewReader(f.body))
	}
	return resp, nil
}

type recordingPublisher struct {
	impressions []FeaturedImpression
	err         error
}

func (p *recordingPublisher) PublishFeatured(_ context.Context, impressions []FeaturedImpression) error {
	p.impressions = append(p.impressions, impressions...)
	return p.err
}

// identityShuffler leaves the order untouched.
type identityShuffler struct{}

func (identityShuffler) Shuffle(int, func(i, j int)) {}

func fixedNow() time.Time {
	return time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }
