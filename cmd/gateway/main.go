// The gateway orchestrates the dungeon-crawl domain services behind a
// single HTTP surface.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dungeonworks/gateway/internal/clients"
	"github.com/dungeonworks/gateway/internal/config"
	"github.com/dungeonworks/gateway/internal/httputil"
	"github.com/dungeonworks/gateway/internal/logging"
	"github.com/dungeonworks/gateway/internal/metrics"
	"github.com/dungeonworks/gateway/internal/middleware"
	"github.com/dungeonworks/gateway/internal/orchestrator"
	"github.com/dungeonworks/gateway/internal/server"
	"github.com/dungeonworks/gateway/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gateway: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New("gateway", cfg.Logging.Level, cfg.Logging.Format)
	m := metrics.New()

	store := buildSessionStore(cfg, logger)

	client := func(service, baseURL string) *httputil.Client {
		return httputil.NewClient(httputil.ClientConfig{
			Service: service,
			BaseURL: baseURL,
			Timeout: cfg.RequestTimeout,
			Metrics: m,
		})
	}

	players := clients.NewPlayer(client("player", cfg.Services.Player))
	rooms := clients.NewRoom(client("room", cfg.Services.Room))
	traversalClient := clients.NewTraversal(client("entering-room", cfg.Services.EnteringRoom))
	enemies := clients.NewEnemy(client("enemy", cfg.Services.Enemy))
	dice := clients.NewDice(client("dice", cfg.Services.Dice))
	inventoryClient := clients.NewInventory(
		client("pick-up-item", cfg.Services.PickUpItem),
		client("open-inventory", cfg.Services.OpenInventory),
	)
	items := clients.NewItem(client("item", cfg.Services.Item))
	activity := clients.NewActivityLog(client("activity-log", cfg.Services.ActivityLog))
	game := clients.NewGameManagement(client("manage-game", cfg.Services.ManageGame))

	sessions := session.NewManager(players, game, store, logger, cfg.Session.JWTSecret, cfg.Session.TTL)

	finalizer := orchestrator.NewFinalizer(game, logger)
	traversal := orchestrator.NewTraversal(traversalClient, rooms, players, finalizer, logger, cfg.Game.TerminalRoomThreshold)
	combat := orchestrator.NewCombat(enemies, players, dice, activity, logger, cfg.Game.DamageDieSides)
	inventory := orchestrator.NewInventory(inventoryClient, items, activity, logger)

	srv := server.New(server.Config{
		Logger:     logger,
		Sessions:   sessions,
		Players:    players,
		Game:       game,
		Activity:   activity,
		Traversal:  traversal,
		Combat:     combat,
		Inventory:  inventory,
		CookieName: cfg.Session.CookieName,
		SessionTTL: cfg.Session.TTL,
	})

	auth := middleware.NewSessionAuth(sessions, logger, cfg.Session.CookieName, server.PublicPaths())
	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, logger)
	limiter.StartCleanup(10 * time.Minute)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           srv.Router(auth, m, limiter),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithFields(map[string]interface{}{"port": cfg.Port}).Info("gateway listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("server stopped")
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	limiter.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
}

// buildSessionStore connects to redis when configured, otherwise
// falls back to the in-process store (single-instance deployments
// only).
func buildSessionStore(cfg *config.Config, logger *logging.Logger) session.Store {
	if cfg.Session.RedisAddr == "" {
		logger.Warn("no session redis configured, using in-memory store")
		return session.NewMemoryStore()
	}

	store := session.NewRedisStore(cfg.Session.RedisAddr, cfg.Session.RedisPassword)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "gateway: session redis unreachable: %v\n", err)
		os.Exit(1)
	}
	return store
}
