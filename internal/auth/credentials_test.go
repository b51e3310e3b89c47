package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/feedback-management-api/internal/models"
	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestCredentials(t *testing.T, ttl time.Duration) *Credentials {
	t.Helper()
	c, err := NewCredentials(Config{Secret: "test-secret", TokenTTL: ttl, BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	return c
}

func TestNewCredentials_RequiresSecret(t *testing.T) {
	_, err := NewCredentials(Config{})
	require.ErrorIs(t, err, ErrEmptySecret)
}

func TestNewCredentials_DefaultTTL(t *testing.T) {
	c, err := NewCredentials(Config{Secret: "s"})
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, c.TTL())
}

func TestPasswordHashing(t *testing.T) {
	c := newTestCredentials(t, time.Hour)

	hash, err := c.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	other, err := c.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "hashes must be salted")

	assert.True(t, c.VerifyPassword("correct horse", hash))
	assert.False(t, c.VerifyPassword("battery staple", hash))
	assert.False(t, c.VerifyPassword("correct horse", "not-a-hash"))
}

func TestIssueAndDecodeToken(t *testing.T) {
	c := newTestCredentials(t, time.Hour)

	token, issued, err := c.IssueToken(42, models.RoleManager)
	require.NoError(t, err)
	require.NotEmpty(t, issued.ID)

	claims, err := c.DecodeToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, models.RoleManager, claims.Role)
	assert.Equal(t, issued.ID, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestDecodeToken_FailsClosed(t *testing.T) {
	c := newTestCredentials(t, time.Hour)
	valid, _, err := c.IssueToken(1, models.RoleEmployee)
	require.NoError(t, err)

	expired, _, err := newTestCredentials(t, -time.Minute).IssueToken(1, models.RoleEmployee)
	require.NoError(t, err)

	otherSecret, err := NewCredentials(Config{Secret: "another-secret", BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	forged, _, err := otherSecret.IssueToken(1, models.RoleManager)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID:           1,
		Role:             models.RoleManager,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: 1, Role: models.RoleManager}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:           1,
		Role:             "admin",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"empty":        "",
		"garbage":      "not.a.token",
		"truncated":    valid[:len(valid)-4],
		"expired":      expired,
		"wrong secret": forged,
		"alg none":     noneAlg,
		"missing exp":  noExpiry,
		"unknown role": badRole,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			claims, err := c.DecodeToken(token)
			require.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

type fakeRedis struct {
	redis.Cmdable
	keys map[string]time.Duration
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.keys[key] = expiration
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeRedis) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	var n int64
	for _, k := range keys {
		if _, ok := f.keys[k]; ok {
			n++
		}
	}
	cmd.SetVal(n)
	return cmd
}

func TestRedisDenylist(t *testing.T) {
	ctx := context.Background()
	client := &fakeRedis{keys: map[string]time.Duration{}}
	denylist := NewRedisDenylist(client)

	revoked, err := denylist.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, denylist.Revoke(ctx, "abc", time.Now().Add(time.Hour)))
	revoked, err = denylist.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.InDelta(t, time.Hour.Seconds(), client.keys["revoked_token:abc"].Seconds(), 5)

	// Already expired tokens are not stored.
	require.NoError(t, denylist.Revoke(ctx, "old", time.Now().Add(-time.Minute)))
	_, stored := client.keys["revoked_token:old"]
	assert.False(t, stored)
}
