package auth_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sgladkov/storefront/internal/adapter/auth"
	"github.com/sgladkov/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasetoToken_RoundTrip(t *testing.T) {
	ts, err := auth.New()
	require.NoError(t, err)

	user := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin}

	token, err := ts.CreateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	payload, err := ts.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, payload.UserID)
	assert.Equal(t, domain.RoleAdmin, payload.Role)
}

func TestPasetoToken_RejectsGarbage(t *testing.T) {
	ts, err := auth.New()
	require.NoError(t, err)

	_, err = ts.VerifyToken("v4.local.garbage")
	assert.Equal(t, domain.ErrInvalidToken, err)
}

func TestPasetoToken_RejectsForeignKey(t *testing.T) {
	issuer, err := auth.New()
	require.NoError(t, err)
	verifier, err := auth.New()
	require.NoError(t, err)

	token, err := issuer.CreateToken(&domain.User{ID: uuid.New(), Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Equal(t, domain.ErrInvalidToken, err)
}
