package application

import (
	"context"
	"io"
	"time"

	"github.com/cajun-local/ask-local/api/internal/asklocal/domain"
)

// SessionVerifier resolves a bearer credential into the acting identity.
// Ready reports ErrConfiguration when verification keys are missing.
type SessionVerifier interface {
	Ready() error
	Verify(ctx context.Context, token string) (domain.Identity, error)
}

// EntitlementRepository looks up the end-user's own active subscription tier.
// An empty tier with a nil error means the user holds no active subscription.
type EntitlementRepository interface {
	ActiveUserTier(ctx context.Context, userID string) (domain.UserTier, error)
}

// DirectoryRepository provides approval-scoped reads over the directory.
// Every method taking ids returns rows in store order and nil for an empty id set.
type DirectoryRepository interface {
	ApprovedBusinesses(ctx context.Context) ([]domain.Business, error)
	RegionMemberships(ctx context.Context, businessIDs []string) ([]domain.RegionMembership, error)
	Categories(ctx context.Context, ids []string) ([]domain.Category, error)
	Hours(ctx context.Context, businessIDs []string) ([]domain.HoursEntry, error)
	MenuSections(ctx context.Context, businessIDs []string) ([]domain.MenuSection, error)
	MenuItems(ctx context.Context, sectionIDs []string) ([]domain.MenuItem, error)
	ActiveDeals(ctx context.Context, businessIDs []string) ([]domain.Deal, error)
	ApprovedReviews(ctx context.Context, businessIDs []string) ([]domain.Review, error)
	UpcomingEvents(ctx context.Context, businessIDs []string, from time.Time) ([]domain.Event, error)
}

// PromotionRepository reads the paid-placement signals.
type PromotionRepository interface {
	// ActiveSubscriptions returns active business subscriptions joined with their plan tier.
	ActiveSubscriptions(ctx context.Context) ([]domain.BusinessSubscription, error)
	// ActiveAdvertisements returns ads with status active whose window contains at.
	ActiveAdvertisements(ctx context.Context, at time.Time) ([]domain.Advertisement, error)
}

// CompletionRequest is the composed prompt sent to the language-model provider.
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
}

// ProviderResponse is the raw answer of the provider's streaming endpoint.
// Body may be nil when the provider returned no stream.
type ProviderResponse struct {
	StatusCode int
	Body       io.ReadCloser
}

// CompletionProvider issues a single streaming completion request.
type CompletionProvider interface {
	Ready() error
	OpenStream(ctx context.Context, req CompletionRequest) (*ProviderResponse, error)
}

// FeaturedImpression records that a featured business was placed in a prompt.
type FeaturedImpression struct {
	BusinessID string
	Position   int
	Reason     string
	RequestID  string
	At         time.Time
}

// ImpressionPublisher reports featured placements for advertiser reporting.
type ImpressionPublisher interface {
	PublishFeatured(ctx context.Context, impressions []FeaturedImpression) error
}

// Shuffler permutes n elements through swap. *math/rand/v2.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type nopImpressionPublisher struct{}

func (nopImpressionPublisher) PublishFeatured(context.Context, []FeaturedImpression) error {
	return nil
}
