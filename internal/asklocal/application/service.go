package application

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cajun-local/ask-local/api/internal/asklocal/domain"
)

// AskCommand is one ask-local invocation.
type AskCommand struct {
	Token     string
	Question  string
	RegionIDs []string
	RequestID string
}

// Answer is the event stream to hand back to the caller.
type Answer struct {
	Identity domain.Identity
	Body     io.ReadCloser
	Canned   bool
	Listings int
	Featured int
}

// Dependencies are the collaborators of Service. Impressions, Shuffler, Now,
// Location and Logger are optional.
type Dependencies struct {
	Verifier     SessionVerifier
	Entitlements EntitlementRepository
	Directory    DirectoryRepository
	Promotions   PromotionRepository
	Provider     CompletionProvider
	Impressions  ImpressionPublisher
	Shuffler     Shuffler
	Now          func() time.Time
	Location     *time.Location
	Logger       *zap.Logger
}

// Service runs the ask-local pipeline: gate, promotions and directory load,
// context assembly, ranking, prompt building and the provider relay.
type Service struct {
	gate        *Gate
	promotions  *PromotionResolver
	assembler   *Assembler
	verifier    SessionVerifier
	provider    CompletionProvider
	impressions ImpressionPublisher
	shuffler    Shuffler
	now         func() time.Time
	logger      *zap.Logger
}

// NewService assembles the pipeline from its collaborators.
func NewService(deps Dependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	impressions := deps.Impressions
	if impressions == nil {
		impressions = nopImpressionPublisher{}
	}
	shuffler := deps.Shuffler
	if shuffler == nil {
		shuffler = DefaultShuffler
	}

	return &Service{
		gate:        NewGate(deps.Verifier, deps.Entitlements, logger),
		promotions:  NewPromotionResolver(deps.Promotions, now, logger),
		assembler:   NewAssembler(deps.Directory, now, deps.Location, logger),
		verifier:    deps.Verifier,
		provider:    deps.Provider,
		impressions: impressions,
		shuffler:    shuffler,
		now:         now,
		logger:      logger,
	}
}

// Ask runs the pipeline. Any returned error is terminal and no stream has started.
func (s *Service) Ask(ctx context.Context, cmd AskCommand) (*Answer, error) {
	question := strings.TrimSpace(cmd.Question)
	if question == "" {
		return nil, ErrQuestionRequired
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	identity, err := s.gate.Authorize(ctx, cmd.Token)
	if err != nil {
		return nil, err
	}
	logger := s.logger.With(zap.String("user_id", identity.UserID), zap.String("request_id", cmd.RequestID))

	regions := NewRegionSet(cmd.RegionIDs)

	var (
		promos     Promotions
		businesses []domain.Business
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		promos = s.promotions.Resolve(gctx)
		return nil
	})
	g.Go(func() error {
		var loadErr error
		businesses, loadErr = s.assembler.LoadBusinesses(gctx, regions)
		return loadErr
	})
	if err := g.Wait(); err != nil {
		logger.Error("directory load failed", zap.Error(err))
		return nil, err
	}

	if len(businesses) == 0 {
		message := NoListingsMessage
		if len(regions) > 0 {
			message = NoRegionListingsMessage
		}
		logger.Info("no listings for request", zap.Int("regions", len(regions)))
		return &Answer{Identity: identity, Body: CannedStream(message), Canned: true}, nil
	}

	related, err := s.assembler.LoadRelated(ctx, businesses)
	if err != nil {
		logger.Error("related data load failed", zap.Error(err))
		return nil, err
	}

	ranking := Rank(businesses, promos, s.shuffler)
	prompt := BuildPrompt(BuildContext(ranking, promos, related), question)
	s.publishImpressions(ctx, logger, ranking, promos, cmd.RequestID)

	body, err := NewRelay(s.provider, logger).Open(ctx, prompt)
	if err != nil {
		return nil, err
	}

	logger.Info("relaying provider stream",
		zap.Int("listings", len(ranking.Ordered)),
		zap.Int("featured", ranking.FeaturedCount),
	)
	return &Answer{
		Identity: identity,
		Body:     body,
		Listings: len(ranking.Ordered),
		Featured: ranking.FeaturedCount,
	}, nil
}

func (s *Service) ready() error {
	if s.verifier == nil || s.provider == nil {
		return fmt.Errorf("%w: collaborators not wired", ErrConfiguration)
	}
	if err := s.verifier.Ready(); err != nil {
		return err
	}
	return s.provider.Ready()
}

func (s *Service) publishImpressions(ctx context.Context, logger *zap.Logger, ranking Ranking, promos Promotions, requestID string) {
	featured := ranking.Featured()
	if len(featured) == 0 {
		return
	}
	at := s.now().UTC()
	impressions := make([]FeaturedImpression, 0, len(featured))
	for i, b := range featured {
		impressions = append(impressions, FeaturedImpression{
			BusinessID: b.ID,
			Position:   i + 1,
			Reason:     promos.Reason(b.ID),
			RequestID:  requestID,
			At:         at,
		})
	}
	if err := s.impressions.PublishFeatured(ctx, impressions); err != nil {
		logger.Warn("featured impression publish failed", zap.Error(err))
	}
}
