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

func cacheContext(method, target, routeTemplate string) echo.Context {
	req := httptest.NewRequest(method, target, nil)
	c := echo.New().NewContext(req, httptest.NewRecorder())
	c.SetPath(routeTemplate)
	return c
}

func TestCacheKeyDistinguishesParameterizedRoutes(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "pagecache", KeyStrategy: "route_query"}

	a := cacheKey(cfg, cacheContext(http.MethodGet, "/v1/recipes/5", "/v1/recipes/:id"))
	b := cacheKey(cfg, cacheContext(http.MethodGet, "/v1/recipes/7", "/v1/recipes/:id"))
	assert.NotEqual(t, a, b, "different recipe ids must not share a cache entry")

	a = cacheKey(cfg, cacheContext(http.MethodGet, "/v1/users/ann/recipes", "/v1/users/:username/recipes"))
	b = cacheKey(cfg, cacheContext(http.MethodGet, "/v1/users/bob/recipes", "/v1/users/:username/recipes"))
	assert.NotEqual(t, a, b, "different usernames must not share a cache entry")
}

func TestCacheKeyStrategies(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		a, b     echo.Context
		distinct bool
	}{
		{
			name:     "route_query separates queries",
			strategy: "route_query",
			a:        cacheContext(http.MethodGet, "/v1/recipes?tag=VEGAN", "/v1/recipes"),
			b:        cacheContext(http.MethodGet, "/v1/recipes?tag=KETO", "/v1/recipes"),
			distinct: true,
		},
		{
			name:     "route ignores queries",
			strategy: "route",
			a:        cacheContext(http.MethodGet, "/v1/recipes?tag=VEGAN", "/v1/recipes"),
			b:        cacheContext(http.MethodGet, "/v1/recipes?tag=KETO", "/v1/recipes"),
			distinct: false,
		},
		{
			name:     "route separates paths",
			strategy: "route",
			a:        cacheContext(http.MethodGet, "/v1/recipes/5", "/v1/recipes/:id"),
			b:        cacheContext(http.MethodGet, "/v1/recipes/7", "/v1/recipes/:id"),
			distinct: true,
		},
		{
			name:     "method_route separates methods",
			strategy: "method_route",
			a:        cacheContext(http.MethodGet, "/v1/recipes", "/v1/recipes"),
			b:        cacheContext(http.MethodHead, "/v1/recipes", "/v1/recipes"),
			distinct: true,
		},
		{
			name:     "method_route_query separates queries",
			strategy: "method_route_query",
			a:        cacheContext(http.MethodGet, "/v1/recipes?tag=VEGAN", "/v1/recipes"),
			b:        cacheContext(http.MethodGet, "/v1/recipes?tag=KETO", "/v1/recipes"),
			distinct: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.CacheConfig{Prefix: "pagecache", KeyStrategy: tc.strategy}
			ka := cacheKey(cfg, tc.a)
			kb := cacheKey(cfg, tc.b)
			if tc.distinct {
				assert.NotEqual(t, ka, kb)
			} else {
				assert.Equal(t, ka, kb)
			}
		})
	}
}

func TestCacheKeyIsDeterministicAndPrefixed(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "pagecache", KeyStrategy: "route_query"}
	a := cacheKey(cfg, cacheContext(http.MethodGet, "/v1/recipes/5", "/v1/recipes/:id"))
	b := cacheKey(cfg, cacheContext(http.MethodGet, "/v1/recipes/5", "/v1/recipes/:id"))
	assert.Equal(t, a, b)
	assert.Regexp(t, `^pagecache:[0-9a-f]{40}$`, a)
}

func TestNewRedisCacheNilClientPassesThrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}, nil)

	c := cacheContext(http.MethodGet, "/v1/recipes", "/v1/recipes")
	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	})(c)

	require.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, c.Response().Header().Get("X-Cache"))
}

func TestNewRedisCacheDisabledPassesThrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)

	c := cacheContext(http.MethodGet, "/v1/recipes", "/v1/recipes")
	called := false
	require.NoError(t, mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c))
	assert.True(t, called)
}
