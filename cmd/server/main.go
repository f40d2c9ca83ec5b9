package main // Entry point package

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/streamtv/streamtv/internal/config"
	"github.com/streamtv/streamtv/internal/database"
	"github.com/streamtv/streamtv/internal/handler"
	"github.com/streamtv/streamtv/internal/middleware"
	"github.com/streamtv/streamtv/internal/queue"
	"github.com/streamtv/streamtv/internal/repository"
	"github.com/streamtv/streamtv/internal/router"
	"github.com/streamtv/streamtv/internal/session"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Redis backs sessions, the anonymous catalog cache and the login
	// rate limit. Without it, sessions fall back to the in-process store
	// and the two middlewares become no-ops.
	rdb := config.NewRedisClient()
	sessionTTL := time.Duration(cfg.SessionTTLMin) * time.Minute
	var sessions session.Store
	if rdb != nil {
		sessions = session.NewRedisStore(rdb, sessionTTL)
	} else {
		log.Printf("redis unavailable; using in-process session store")
		sessions = session.NewMemoryStore(sessionTTL)
	}

	customers := repository.NewCustomerRepo(db)
	shows := repository.NewShowRepo(db)
	actors := repository.NewActorRepo(db)
	episodes := repository.NewEpisodeRepo(db)
	custQueue := repository.NewQueueRepo(db)
	watched := repository.NewWatchedRepo(db)
	search := repository.NewSearchRepo(db)

	h := router.Handlers{
		Auth: handler.NewAuthHandler(cfg, customers, sessions),
		Catalog: &handler.CatalogHandler{
			Shows: shows, Actors: actors, Episodes: episodes,
			Queue: custQueue, Customers: customers,
		},
		Queue: &handler.QueueHandler{Queue: custQueue},
		Watched: &handler.WatchedHandler{
			Watched: watched, Episodes: episodes, Shows: shows,
			Customers: customers, PublishEvents: true,
		},
		Search: &handler.SearchHandler{Search: search},
	}

	e := echo.New()
	e.Use(middleware.ResolveSession(cfg.SessionSecret, sessions))
	router.Register(e, h, router.Middlewares{
		RateLimit:    middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		CatalogCache: middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	})

	// Background consumer for episode.watched events.
	go func() {
		if err := queue.StartWatchedConsumer(); err != nil {
			log.Printf("watched consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
