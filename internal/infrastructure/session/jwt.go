package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cajun-local/ask-local/api/internal/asklocal/application"
	"github.com/cajun-local/ask-local/api/internal/asklocal/domain"
	"github.com/cajun-local/ask-local/api/internal/config"
)

const leeway = 30 * time.Second

var errTokenRejected = errors.New("access token is invalid")

// Claims are the access-token claims the gateway reads.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// JWTVerifier validates HS256 session tokens against each configured secret in turn.
type JWTVerifier struct {
	configs  []config.JWTConfig
	audience string
	now      func() time.Time
}

// NewJWTVerifier creates a verifier. now defaults to time.Now.
func NewJWTVerifier(configs []config.JWTConfig, audience string, now func() time.Time) *JWTVerifier {
	if now == nil {
		now = time.Now
	}
	return &JWTVerifier{
		configs:  configs,
		audience: strings.TrimSpace(audience),
		now:      now,
	}
}

// Ready reports ErrConfiguration when no signing secret is configured.
func (v *JWTVerifier) Ready() error {
	if len(v.configs) == 0 {
		return fmt.Errorf("%w: session secret not configured", application.ErrConfiguration)
	}
	return nil
}

// Verify returns the identity of a valid token. The first secret that accepts
// the signature and registered claims wins.
func (v *JWTVerifier) Verify(_ context.Context, token string) (domain.Identity, error) {
	if err := v.Ready(); err != nil {
		return domain.Identity{}, err
	}

	for _, cfg := range v.configs {
		claims, err := v.parse(token, cfg)
		if err != nil {
			continue
		}
		return domain.Identity{UserID: claims.Subject, Email: claims.Email}, nil
	}
	return domain.Identity{}, errTokenRejected
}

func (v *JWTVerifier) parse(token string, cfg config.JWTConfig) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(leeway),
		jwt.WithTimeFunc(v.now),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return cfg.Secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errTokenRejected
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, fmt.Errorf("%w: missing subject", errTokenRejected)
	}
	if v.audience != "" && !slices.Contains(claims.Audience, v.audience) {
		return nil, fmt.Errorf("%w: audience mismatch", errTokenRejected)
	}
	return claims, nil
}

// TokenRequest describes a token to mint for local development and tests.
type TokenRequest struct {
	UserID   string
	Email    string
	Issuer   string
	Audience string
	IssuedAt time.Time
	TTL      time.Duration
}

// Issue signs an HS256 access token with secret.
func Issue(secret []byte, req TokenRequest) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("%w: session secret not configured", application.ErrConfiguration)
	}
	issuedAt := req.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = time.Now()
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   req.UserID,
			Issuer:    req.Issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(req.TTL)),
		},
		Email: req.Email,
		Role:  "authenticated",
	}
	if req.Audience != "" {
		claims.Audience = jwt.ClaimStrings{req.Audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
