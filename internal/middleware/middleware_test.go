package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/concert-seat-reservation/internal/config"
)

func testContext(t *testing.T, target string, header map[string]string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(req.URL.Path)
	return c
}

func TestClientUserID(t *testing.T) {
	c := testContext(t, "/v1/reservations", map[string]string{"X-User-Id": "alice"})
	assert.Equal(t, "alice", clientUserID(c))

	c = testContext(t, "/v1/reservations?user_id=bob", nil)
	assert.Equal(t, "bob", clientUserID(c))

	// Header wins over the query parameter.
	c = testContext(t, "/v1/reservations?user_id=bob", map[string]string{"X-User-Id": "alice"})
	assert.Equal(t, "alice", clientUserID(c))

	c = testContext(t, "/v1/reservations", nil)
	assert.Equal(t, "anon", clientUserID(c))
}

func TestRateKeyStrategies(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}
	c := testContext(t, "/v1/reservations", map[string]string{"X-User-Id": "alice"})
	assert.Equal(t, "rl:user:alice", rateKey(cfg, c))

	cfg.KeyStrategy = "route"
	assert.Equal(t, "rl:route:GET /v1/reservations", rateKey(cfg, c))

	// Unknown strategies fall back to ip_user_route.
	cfg.KeyStrategy = "bogus"
	key := rateKey(cfg, c)
	assert.Contains(t, key, ":user:alice:")
	assert.Contains(t, key, "route:GET /v1/reservations")
}

func TestCacheKeyDistinguishesQueries(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	a := cacheKeyFrom(cfg, testContext(t, "/v1/reservations?user_id=alice", nil))
	b := cacheKeyFrom(cfg, testContext(t, "/v1/reservations?user_id=bob", nil))
	assert.NotEqual(t, a, b)

	// route strategy ignores the query string.
	cfg.KeyStrategy = "route"
	a = cacheKeyFrom(cfg, testContext(t, "/v1/reservations?user_id=alice", nil))
	b = cacheKeyFrom(cfg, testContext(t, "/v1/reservations?user_id=bob", nil))
	assert.Equal(t, a, b)
}

func TestTokenBucketDisabledIsPassThrough(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil)

	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	})

	c := testContext(t, "/v1/concerts", nil)
	require.NoError(t, h(c))
	assert.True(t, called)
	assert.Empty(t, c.Response().Header().Get("X-RateLimit-Limit"))
}

func TestRedisCacheDisabledIsPassThrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: true}, nil) // no client

	called := 0
	h := mw(func(c echo.Context) error {
		called++
		return c.String(http.StatusOK, "ok")
	})

	require.NoError(t, h(testContext(t, "/v1/concerts", nil)))
	require.NoError(t, h(testContext(t, "/v1/concerts", nil)))
	assert.Equal(t, 2, called)
}

func TestCachePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	body := []byte(`{"items":[]}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)

	// Truncated payloads are rejected rather than served.
	_, _, _, ok = decodePayload(payload[:4])
	assert.False(t, ok)
}
