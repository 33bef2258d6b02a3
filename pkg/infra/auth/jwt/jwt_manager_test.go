package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signWith(t *testing.T, method jwtlib.SigningMethod, key interface{}, claims jwtlib.Claims) string {
	t.Helper()
	signed, err := jwtlib.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestCreateAndDecode(t *testing.T) {
	mgr := NewJwtManager("test-secret", time.Hour)
	userID := uuid.New()

	token, err := mgr.CreateToken(userID, "owner@example.com", true)
	require.NoError(t, err)

	claims, err := mgr.DecodeToken(token)
	require.NoError(t, err)
	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.True(t, claims.Admin)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestDefaultTTLIsSevenDays(t *testing.T) {
	mgr := NewJwtManager("s", 0).(*manager)
	assert.Equal(t, 7*24*time.Hour, mgr.ttl)
}

func TestDecode_WrongSecret(t *testing.T) {
	token, err := NewJwtManager("other", time.Hour).CreateToken(uuid.New(), "a@b.co", false)
	require.NoError(t, err)

	_, err = NewJwtManager("test-secret", time.Hour).DecodeToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecode_Expired(t *testing.T) {
	mgr := NewJwtManager("test-secret", time.Hour).(*manager)
	mgr.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := mgr.CreateToken(uuid.New(), "a@b.co", false)
	require.NoError(t, err)

	mgr.now = time.Now
	_, err = mgr.DecodeToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestDecode_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwtlib.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token := signWith(t, jwtlib.SigningMethodHS512, []byte("test-secret"), claims)

	_, err := NewJwtManager("test-secret", time.Hour).DecodeToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecode_RequiresExpiryAndSubject(t *testing.T) {
	mgr := NewJwtManager("test-secret", time.Hour)

	noExp := signWith(t, jwtlib.SigningMethodHS256, []byte("test-secret"), &Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{Subject: uuid.NewString()},
	})
	_, err := mgr.DecodeToken(noExp)
	assert.ErrorIs(t, err, ErrInvalidToken)

	badSub := signWith(t, jwtlib.SigningMethodHS256, []byte("test-secret"), &Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   "not-a-uuid",
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	_, err = mgr.DecodeToken(badSub)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMissingSecret(t *testing.T) {
	mgr := NewJwtManager("", time.Hour)
	_, err := mgr.CreateToken(uuid.New(), "a@b.co", false)
	assert.ErrorIs(t, err, ErrMissingKey)
	_, err = mgr.DecodeToken("x.y.z")
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := NewJwtManager("test-secret", time.Hour).DecodeToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
