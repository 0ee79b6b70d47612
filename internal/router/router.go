// Package router defines how HTTP routes are registered for the frontend
// service.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/config"
	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/handler"
	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/middleware"
	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/session"
)

// RegisterRoutes registers routes that do not need a visitor session.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterViews registers the page endpoints under /v1. Every route runs
// behind the session loader so handlers always see a resolved visitor
// session. Mutations additionally require an authenticated user, and the
// public browse routes sit behind the shared response cache.
func RegisterViews(e *echo.Echo, cfg config.Config, store session.Store, mgr *session.Manager,
	sh *handler.SessionHandler, rh *handler.RecipeHandler, rdb *redis.Client) {

	g := e.Group("/v1")
	g.Use(middleware.SessionLoader(cfg.SessionSecret, cfg.SessionTTL, store, mgr))

	// Session and auth endpoints. Login failures surface the backend's own
	// message; logout always answers with the guest state.
	g.GET("/session", sh.Current)
	g.POST("/session/refresh", sh.Refresh)
	g.POST("/auth/login", sh.Login)
	g.POST("/auth/logout", sh.Logout)
	g.POST("/auth/register", sh.Register)

	// Public browse routes. These payloads are identical for every visitor,
	// so they share one response cache.
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	g.GET("/recipes", rh.Browse, cache)
	g.GET("/recipes/:id", rh.Detail, cache)
	g.GET("/tags", rh.Tags, cache)
	g.GET("/users/:username/recipes", rh.UserRecipes, cache)

	// Mutations and the visitor's own listing require a signed-in user.
	auth := g.Group("", middleware.RequireUser())
	auth.POST("/recipes", rh.Create)
	auth.POST("/recipes/:id/comments", rh.AddComment)
	auth.POST("/recipes/:id/upvote", rh.Upvote)
	auth.GET("/me/recipes", rh.MyRecipes)
}
