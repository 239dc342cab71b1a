package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

const (
	// BearerPrefix is the scheme label carried in the Authorization header.
	BearerPrefix = "Bearer "
	// DefaultIssuer is the issuer claim written into and required from every token.
	DefaultIssuer = "DevNice"
	// DefaultValidity is how long an issued token stays valid.
	DefaultValidity = 12 * time.Hour

	minSecretLength = 32
)

// TokenAuthority issues and validates HS256 signed identity tokens.
// It holds no mutable state and is safe for concurrent use.
type TokenAuthority struct {
	secret   []byte
	issuer   string
	validity time.Duration
	clock    clockwork.Clock
	parser   *jwt.Parser
}

// TokenOption configures a TokenAuthority.
type TokenOption func(*TokenAuthority)

// WithIssuer overrides the issuer claim.
func WithIssuer(issuer string) TokenOption {
	return func(a *TokenAuthority) {
		a.issuer = issuer
	}
}

// WithValidity overrides the token lifetime. Non-positive values keep the default.
func WithValidity(validity time.Duration) TokenOption {
	return func(a *TokenAuthority) {
		if validity > 0 {
			a.validity = validity
		}
	}
}

// WithClock sets the clock used for issue and expiry checks.
func WithClock(clock clockwork.Clock) TokenOption {
	return func(a *TokenAuthority) {
		a.clock = clock
	}
}

// NewTokenAuthority builds an authority around the shared secret.
func NewTokenAuthority(secret string, opts ...TokenOption) (*TokenAuthority, error) {
	if len(secret) < minSecretLength {
		return nil, ErrWeakSecret
	}

	a := &TokenAuthority{
		secret:   []byte(secret),
		issuer:   DefaultIssuer,
		validity: DefaultValidity,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.clock == nil {
		a.clock = clockwork.NewRealClock()
	}

	// Claims are checked by checkClaims against a.clock once the signature is verified.
	a.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	return a, nil
}

// IssuedToken is a freshly signed token.
type IssuedToken struct {
	Raw       string
	ExpiresAt time.Time
}

// Header returns the token in its Authorization header form.
func (t IssuedToken) Header() string {
	return BearerPrefix + t.Raw
}

// Validity returns the configured token lifetime.
func (a *TokenAuthority) Validity() time.Duration {
	return a.validity
}

// Issue signs a token asserting principal.
func (a *TokenAuthority) Issue(principal string) (IssuedToken, error) {
	if principal == "" {
		return IssuedToken{}, ErrEmptyPrincipal
	}

	now := a.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   principal,
		Issuer:    a.issuer,
		ExpiresAt: jwt.NewNumericDate(now.Add(a.validity)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return IssuedToken{}, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	return IssuedToken{Raw: signed, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Validate verifies an Authorization header value and returns the principal it asserts.
//
// Errors match ErrMalformed, ErrInvalidSignature or ErrRejected. Claims are only
// inspected once the signature has verified.
func (a *TokenAuthority) Validate(headerValue string) (string, error) {
	raw, ok := strings.CutPrefix(headerValue, BearerPrefix)
	if !ok || raw == "" {
		return "", ErrMalformed
	}

	var claims jwt.RegisteredClaims
	if _, err := a.parser.ParseWithClaims(raw, &claims, a.key); err != nil {
		return "", classifyParseError(err)
	}

	if err := a.checkClaims(&claims); err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (a *TokenAuthority) key(*jwt.Token) (interface{}, error) {
	return a.secret, nil
}

func (a *TokenAuthority) checkClaims(claims *jwt.RegisteredClaims) error {
	if claims.Subject == "" {
		return &ClaimError{Claim: ClaimSubject}
	}
	if claims.Issuer != a.issuer {
		return &ClaimError{Claim: ClaimIssuer}
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(a.clock.Now()) {
		return &ClaimError{Claim: ClaimExpiration}
	}
	return nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
