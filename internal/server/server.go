// Package server assembles the gateway's HTTP surface: the session
// routes, the orchestration routes, and the operational endpoints.
package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/dungeonworks/gateway/internal/clients"
	"github.com/dungeonworks/gateway/internal/logging"
	"github.com/dungeonworks/gateway/internal/metrics"
	"github.com/dungeonworks/gateway/internal/middleware"
	"github.com/dungeonworks/gateway/internal/orchestrator"
	"github.com/dungeonworks/gateway/internal/session"
)

// Server holds the gateway's handler dependencies.
type Server struct {
	logger   *logging.Logger
	sessions *session.Manager
	players  *clients.Player
	game     *clients.GameManagement
	activity *clients.ActivityLog

	traversal *orchestrator.Traversal
	combat    *orchestrator.Combat
	inventory *orchestrator.Inventory

	cookieName string
	sessionTTL time.Duration
}

// Config wires the server's collaborators.
type Config struct {
	Logger   *logging.Logger
	Sessions *session.Manager
	Players  *clients.Player
	Game     *clients.GameManagement
	Activity *clients.ActivityLog

	Traversal *orchestrator.Traversal
	Combat    *orchestrator.Combat
	Inventory *orchestrator.Inventory

	CookieName string
	SessionTTL time.Duration
}

// New creates a gateway server.
func New(cfg Config) *Server {
	return &Server{
		logger:     cfg.Logger,
		sessions:   cfg.Sessions,
		players:    cfg.Players,
		game:       cfg.Game,
		activity:   cfg.Activity,
		traversal:  cfg.Traversal,
		combat:     cfg.Combat,
		inventory:  cfg.Inventory,
		cookieName: cfg.CookieName,
		sessionTTL: cfg.SessionTTL,
	}
}

// publicPaths are reachable without a session.
var publicPaths = []string{"/login", "/logout", "/healthz", "/metrics"}

// Router builds the full middleware and route table.
func (s *Server) Router(auth *middleware.SessionAuth, m *metrics.Metrics, limiter *middleware.RateLimiter) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.CORS)
	r.Use(middleware.LoggingMiddleware(s.logger))
	r.Use(middleware.MetricsMiddleware("gateway", m))
	r.Use(mux.MiddlewareFunc(auth.Handler))
	r.Use(mux.MiddlewareFunc(limiter.Handler))

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/login", s.handleLoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.handleLogout).Methods(http.MethodGet)

	r.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	r.HandleFunc("/get_player_room", s.handleGetPlayerRoom).Methods(http.MethodGet)
	r.HandleFunc("/enter_room", s.handleEnterRoom).Methods(http.MethodPost)
	r.HandleFunc("/room_info/{room_id:[0-9]+}", s.handleRoomInfo).Methods(http.MethodGet)
	r.HandleFunc("/player_stats", s.handlePlayerStats).Methods(http.MethodGet)

	r.HandleFunc("/pick_up_item", s.handlePickUpItem).Methods(http.MethodPost)
	r.HandleFunc("/view_inventory", s.handleViewInventory).Methods(http.MethodGet)
	r.HandleFunc("/fetch_item_details", s.handleFetchItemDetails).Methods(http.MethodGet)
	r.HandleFunc("/fetch_item_details_batch", s.handleFetchItemDetailsBatch).Methods(http.MethodPost)

	r.HandleFunc("/combat/start/{enemy_id:[0-9]+}", s.handleCombatStart).Methods(http.MethodPost)
	r.HandleFunc("/combat/attack", s.handleCombatAttack).Methods(http.MethodPost)
	r.HandleFunc("/combat/enemy-turn", s.handleCombatEnemyTurn).Methods(http.MethodPost)
	r.HandleFunc("/combat/game-over/{player_id:[0-9]+}", s.handleCombatGameOver).Methods(http.MethodGet)

	r.HandleFunc("/hard_reset", s.handleHardReset).Methods(http.MethodPost)
	r.HandleFunc("/player_activity_logs", s.handleActivityLogs).Methods(http.MethodGet)
	r.HandleFunc("/player_activity_logs/{player_id:[0-9]+}", s.handleActivityLogs).Methods(http.MethodGet)

	return r
}

// PublicPaths returns the routes exempt from session auth.
func PublicPaths() []string { return publicPaths }

// sessionPlayerID returns the authenticated player's id for the
// request, or 0 when the session middleware did not run.
func sessionPlayerID(r *http.Request) int {
	if rec, ok := middleware.SessionFromContext(r.Context()); ok {
		return rec.PlayerID
	}
	return 0
}

// requestPlayerID prefers an explicit player_id query parameter and
// falls back to the session, mirroring the reference UI's calls.
func requestPlayerID(r *http.Request) int {
	if raw := r.URL.Query().Get("player_id"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			return id
		}
	}
	return sessionPlayerID(r)
}
