package application

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cajun-local/ask-local/api/internal/asklocal/domain"
)

const bearerPrefix = "Bearer "

// BearerToken extracts the credential from an Authorization header value.
func BearerToken(header string) (string, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", ErrAuthRequired
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", ErrAuthRequired
	}
	return token, nil
}

// Gate is the access-control boundary in front of the ask-local pipeline.
type Gate struct {
	verifier     SessionVerifier
	entitlements EntitlementRepository
	logger       *zap.Logger
}

// NewGate wires the session verifier and the entitlement store.
func NewGate(verifier SessionVerifier, entitlements EntitlementRepository, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{verifier: verifier, entitlements: entitlements, logger: logger}
}

// Authorize verifies the session and requires an elevated user tier.
// A failed entitlement lookup is treated as "no entitlement".
func (g *Gate) Authorize(ctx context.Context, token string) (domain.Identity, error) {
	if strings.TrimSpace(token) == "" {
		return domain.Identity{}, ErrAuthRequired
	}

	identity, err := g.verifier.Verify(ctx, token)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrAuthInvalid, err)
	}
	if strings.TrimSpace(identity.UserID) == "" {
		return domain.Identity{}, fmt.Errorf("%w: missing subject", ErrAuthInvalid)
	}

	tier, err := g.entitlements.ActiveUserTier(ctx, identity.UserID)
	if err != nil {
		g.logger.Warn("entitlement lookup failed", zap.String("user_id", identity.UserID), zap.Error(err))
		return identity, ErrSubscriptionRequired
	}
	if !tier.Elevated() {
		return identity, ErrSubscriptionRequired
	}
	return identity, nil
}
