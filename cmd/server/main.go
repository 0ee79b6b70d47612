package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/backend"
	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/config"
	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/handler"
	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/middleware"
	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/queue"
	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/router"
	"github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/session"
	queue_publisher "github.com/jackson-trader/CS442-Cooking-Recipe-Database-Project/internal/service"
)

func main() {
	cfg := config.Load()

	// Redis backs the session store, the response cache and the rate
	// limiter. Without it the service still runs: sessions fall back to
	// memory, caching and rate limiting switch off.
	rdb := config.NewRedisClient()
	var store session.Store
	if rdb != nil {
		store = session.NewRedisStore(rdb, cfg.SessionTTL)
	} else {
		log.Println("redis unavailable, using in-memory session store")
		store = session.NewMemoryStore()
	}

	bc, err := backend.New(cfg.BackendURL, cfg.BackendTimeout)
	if err != nil {
		log.Fatalf("backend client: %v", err)
	}
	mgr := session.NewManager(bc, store)

	cacheCfg := config.LoadCacheConfig()
	sh := handler.NewSessionHandler(mgr, bc)
	rh := handler.NewRecipeHandler(bc, rdb, cacheCfg.Prefix, queue_publisher.PublishRecipeActivity)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterViews(e, cfg, store, mgr, sh, rh, rdb)

	// Activity events are consumed in-process and appended to logs/activity.log.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, backend=%s)", addr, cfg.Env, bc.Origin())

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
