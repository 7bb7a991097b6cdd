package security

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 30)

	redisMock.ExpectIncr("ratelimit:user:abc").SetVal(1)
	redisMock.ExpectExpire("ratelimit:user:abc", time.Minute).SetVal(true)

	ok, err := limiter.allow(context.Background(), "user:abc")

	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, redisMock.ExpectationsWereMet())
}

func TestRateLimiter_DeniesOverLimit(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 30)

	redisMock.ExpectIncr("ratelimit:user:abc").SetVal(31)

	ok, err := limiter.allow(context.Background(), "user:abc")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRateLimiter_ExpiresOnlyOnFirstHit(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 30)

	redisMock.ExpectIncr("ratelimit:10.0.0.1").SetVal(2)

	ok, err := limiter.allow(context.Background(), "10.0.0.1")

	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, redisMock.ExpectationsWereMet())
}

func TestRateLimiter_SurfacesRedisErrors(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, 30)

	redisMock.ExpectIncr("ratelimit:user:abc").SetErr(errors.New("connection refused"))

	_, err := limiter.allow(context.Background(), "user:abc")

	assert.Error(t, err)
}
