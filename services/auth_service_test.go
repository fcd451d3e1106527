package services

import (
	"testing"
	"time"

	"cafe-menu-api/apperr"
	"cafe-menu-api/config"
	"cafe-menu-api/repository"
	"cafe-menu-api/testdb"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := testdb.New(t)
	require.NoError(t, config.SeedAdmin(db, "admin", "1025"))
	return NewAuthService(repository.NewUserRepository(db), []byte("test-secret"), 24*time.Hour)
}

func TestLoginIssuesUsableToken(t *testing.T) {
	svc := newAuthService(t)

	token, user, err := svc.Login("admin", "1025")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin", user.Username)

	caller, err := svc.Authenticate("Bearer " + token)
	require.NoError(t, err)
	require.NotNil(t, caller)
	assert.Equal(t, "admin", caller.Username)
}

func TestLoginFailures(t *testing.T) {
	svc := newAuthService(t)

	tests := []struct {
		name     string
		username string
		password string
		want     apperr.Kind
	}{
		{"missing username", "", "1025", apperr.KindBadRequest},
		{"missing password", "admin", "", apperr.KindBadRequest},
		{"unknown user", "nobody", "1025", apperr.KindUnauthorized},
		{"wrong password", "admin", "1026", apperr.KindUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(tt.username, tt.password)
			require.Error(t, err)
			assert.Equal(t, tt.want, apperr.KindOf(err))
		})
	}
}

func TestTokenExpiresAfterTTL(t *testing.T) {
	svc := newAuthService(t)
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	now := start
	svc.WithClock(func() time.Time { return now })

	token, _, err := svc.Login("admin", "1025")
	require.NoError(t, err)

	now = start.Add(23 * time.Hour)
	_, err = svc.Authenticate("Bearer " + token)
	assert.NoError(t, err)

	now = start.Add(24*time.Hour + time.Second)
	_, err = svc.Authenticate("Bearer " + token)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestTokenFromOtherSecretIsRejected(t *testing.T) {
	svc := newAuthService(t)
	other := NewAuthService(nil, []byte("another-secret"), time.Hour)

	token, err := other.GenerateToken("admin")
	require.NoError(t, err)

	_, err = svc.Authenticate("Bearer " + token)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestUnsignedTokenIsRejected(t *testing.T) {
	svc := newAuthService(t)
	claims := Claims{
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Authenticate("Bearer " + token)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestAuthenticateRejectsMalformedHeaders(t *testing.T) {
	svc := newAuthService(t)
	token, _, err := svc.Login("admin", "1025")
	require.NoError(t, err)

	for _, header := range []string{
		"",
		"   ",
		"Bearer",
		"Bearer ",
		token,
		"Token " + token,
		"Bearer " + token + " extra",
		"Bearer not-a-jwt",
	} {
		_, err := svc.Authenticate(header)
		assert.True(t, apperr.Is(err, apperr.KindUnauthorized), "header %q", header)
	}

	user, err := svc.Authenticate("bearer " + token)
	require.NoError(t, err)
	assert.NotNil(t, user)
}

func TestAuthenticateUnknownSubjectContinuesWithoutIdentity(t *testing.T) {
	svc := newAuthService(t)
	token, err := svc.GenerateToken("ghost")
	require.NoError(t, err)

	user, err := svc.Authenticate("Bearer " + token)
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestAuthenticateStorageFailureIsInternal(t *testing.T) {
	db := testdb.New(t)
	require.NoError(t, config.SeedAdmin(db, "admin", "1025"))
	svc := NewAuthService(repository.NewUserRepository(db), []byte("test-secret"), 24*time.Hour)
	token, err := svc.GenerateToken("admin")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = svc.Authenticate("Bearer " + token)
	assert.True(t, apperr.Is(err, apperr.KindInternal), "got %v", err)
}
