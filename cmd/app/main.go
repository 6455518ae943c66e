package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardclash/internal/arena"
	"cardclash/internal/config"
	"cardclash/internal/db"
	httpServer "cardclash/internal/http"
	"cardclash/internal/http/middleware"
	"cardclash/internal/ledger"
	"cardclash/internal/logger"
	"cardclash/internal/notify"
	"cardclash/internal/queue"
	"cardclash/internal/repository"
	"cardclash/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	profiles := repository.NewProfileRepository(dbPool, cfg.StartingCredits)
	matches := repository.NewMatchRepository(dbPool)
	history := repository.NewMatchHistoryRepository(dbPool)

	led := ledger.New(profiles)
	q := queue.New(led)

	hub := ws.NewHub()
	var notifier arena.Notifier = hub
	nats, err := notify.Connect(cfg.NatsURL)
	if err != nil {
		logger.Fatal("nats connect failed", "url", cfg.NatsURL, "error", err)
	}
	if nats != nil {
		defer nats.Close()
		notifier = arena.MultiNotifier{hub, nats}
	}

	ar := arena.New(arena.Config{
		ReadyDelay:   cfg.ReadyDelay,
		ResolveDelay: cfg.ResolveDelay,
		QueueTimeout: cfg.QueueTimeout,
	}, profiles, matches, history, led, q, notifier)

	r := gin.Default()

	// CORS for production (frontend on different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	httpServer.RegisterRoutes(r, httpServer.Deps{
		Cfg:      cfg,
		DB:       dbPool,
		Arena:    ar,
		Profiles: profiles,
		History:  history,
		Boards:   history,
		Hub:      hub,
		Version:  version,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ar.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
