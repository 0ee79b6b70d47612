package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/config"
)

func rateContext(method, target, routeTemplate, remoteAddr string) echo.Context {
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = remoteAddr
	c := echo.New().NewContext(req, httptest.NewRecorder())
	c.SetPath(routeTemplate)
	return c
}

func TestRateKeyStrategies(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		want     string
	}{
		{"ip only", "ip", "rl:ip:10.0.0.1"},
		{"route only", "route", "rl:route:POST /v1/auth/login"},
		{"ip and route", "ip_route", "rl:ip:10.0.0.1:route:POST /v1/auth/login"},
		{"unknown falls back to ip_route", "bogus", "rl:ip:10.0.0.1:route:POST /v1/auth/login"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: tc.strategy}
			c := rateContext(http.MethodPost, "/v1/auth/login", "/v1/auth/login", "10.0.0.1:4567")
			assert.Equal(t, tc.want, rateKey(cfg, c))
		})
	}
}

func TestRateKeySeparatesClientsAndRoutes(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip_route"}

	a := rateKey(cfg, rateContext(http.MethodGet, "/v1/recipes", "/v1/recipes", "10.0.0.1:1"))
	b := rateKey(cfg, rateContext(http.MethodGet, "/v1/recipes", "/v1/recipes", "10.0.0.2:1"))
	assert.NotEqual(t, a, b, "different clients must not share a bucket")

	a = rateKey(cfg, rateContext(http.MethodGet, "/v1/recipes", "/v1/recipes", "10.0.0.1:1"))
	b = rateKey(cfg, rateContext(http.MethodPost, "/v1/recipes", "/v1/recipes", "10.0.0.1:1"))
	assert.NotEqual(t, a, b, "different methods must not share a bucket")
}

func TestNewTokenBucketNilClientPassesThrough(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil)

	c := rateContext(http.MethodGet, "/v1/recipes", "/v1/recipes", "10.0.0.1:1")
	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, c.Response().Header().Get("X-RateLimit-Limit"))
}

func TestNewTokenBucketDisabledPassesThrough(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil)

	c := rateContext(http.MethodGet, "/v1/recipes", "/v1/recipes", "10.0.0.1:1")
	called := false
	require.NoError(t, mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c))
	assert.True(t, called)
}

func TestAsInt64(t *testing.T) {
	assert.EqualValues(t, 5, asInt64(int64(5)))
	assert.EqualValues(t, 5, asInt64(5))
	assert.EqualValues(t, 5, asInt64(5.0))
	assert.EqualValues(t, 5, asInt64("5"))
	assert.EqualValues(t, 0, asInt64("nope"))
	assert.EqualValues(t, 0, asInt64(nil))
}
