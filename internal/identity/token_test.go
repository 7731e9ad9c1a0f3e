package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatehouse/pkg/domain"
	dErrors "gatehouse/pkg/domain-errors"
)

func testIdentity() domain.Identity {
	return domain.Identity{
		ProviderID:       "321004302661451776",
		Username:         "roadrunner",
		Verified:         true,
		Email:            "roadrunner@example.com",
		AccountCreatedAt: time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("test-signing-key", "gatehouse", "gatehouse-api")

	token, err := svc.MintSessionToken(testIdentity(), time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ident, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, testIdentity(), ident)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	svc := NewTokenService("test-signing-key", "gatehouse", "gatehouse-api")

	token, err := svc.MintSessionToken(testIdentity(), -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	minter := NewTokenService("key-one", "gatehouse", "gatehouse-api")
	validator := NewTokenService("key-two", "gatehouse", "gatehouse-api")

	token, err := minter.MintSessionToken(testIdentity(), time.Hour)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
