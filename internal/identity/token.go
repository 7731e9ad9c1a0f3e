// Package identity bridges the external login flow and this service. The
// provider OAuth dance happens elsewhere; what arrives here is a signed
// session token whose claims carry the provider profile snapshot captured at
// login.
package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
)

// Claims are the JWT claims for gatehouse session tokens. The profile fields
// mirror domain.Identity so the snapshot is available without a provider
// round-trip on every request.
type Claims struct {
	ProviderID       string    `json:"provider_id"`
	Username         string    `json:"username"`
	Discriminator    string    `json:"discriminator,omitempty"`
	Verified         bool      `json:"verified"`
	Email            string    `json:"email"`
	AccountCreatedAt time.Time `json:"account_created_at"`
	jwt.RegisteredClaims
}

// TokenService handles session token creation and validation.
type TokenService struct {
	signingKey []byte
	issuer     string
	audience   string
}

func NewTokenService(signingKey string, issuer string, audience string) *TokenService {
	return &TokenService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
	}
}

// MintSessionToken issues a token for a freshly authenticated identity. The
// login callback (out of process scope) calls this after the provider
// exchange completes.
func (s *TokenService) MintSessionToken(ident domain.Identity, expiresIn time.Duration) (string, error) {
	newToken := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		ProviderID:       ident.ProviderID,
		Username:         ident.Username,
		Discriminator:    ident.Discriminator,
		Verified:         ident.Verified,
		Email:            ident.Email,
		AccountCreatedAt: ident.AccountCreatedAt,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
			ID:        uuid.NewString(),
		},
	})

	signedToken, err := newToken.SignedString(s.signingKey)
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// ValidateToken parses a session token back into the identity snapshot.
func (s *TokenService) ValidateToken(tokenString string) (domain.Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return domain.Identity{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	if !parsed.Valid {
		return domain.Identity{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return domain.Identity{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	return domain.Identity{
		ProviderID:       claims.ProviderID,
		Username:         claims.Username,
		Discriminator:    claims.Discriminator,
		Verified:         claims.Verified,
		Email:            claims.Email,
		AccountCreatedAt: claims.AccountCreatedAt,
	}, nil
}
