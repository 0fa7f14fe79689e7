package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Google publishes the signing keys for identity-platform ID tokens here.
const googleJWKSURL = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"

// IdentityClaims is what an identity-provider token vouches for. Name may be
// empty when the provider has no display name for the account.
type IdentityClaims struct {
	Email string
	Name  string
}

// TokenVerifier checks a third-party ID token and returns the identity it
// asserts, or an error if the token is not acceptable.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*IdentityClaims, error)
}

type idTokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleVerifier validates Firebase/Identity-Platform ID tokens for a single
// project against Google's published JWKS.
type GoogleVerifier struct {
	projectID string
	jwks      *keyfunc.JWKS
}

// NewGoogleVerifier fetches the Google JWKS and keeps it refreshed in the
// background until ctx is cancelled.
func NewGoogleVerifier(ctx context.Context, projectID string) (*GoogleVerifier, error) {
	jwks, err := keyfunc.Get(googleJWKSURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  time.Minute,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching identity provider JWKS: %w", err)
	}
	return &GoogleVerifier{projectID: projectID, jwks: jwks}, nil
}

func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*IdentityClaims, error) {
	claims := &idTokenClaims{}
	token, err := jwt.ParseWithClaims(idToken, claims, v.jwks.Keyfunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer("https://securetoken.google.com/"+v.projectID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" {
		return nil, errors.New("identity token carries no email")
	}
	return &IdentityClaims{Email: claims.Email, Name: claims.Name}, nil
}
