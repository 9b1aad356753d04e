// Package middleware provides HTTP middleware for the gateway.
package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dungeonworks/gateway/internal/httputil"
	"github.com/dungeonworks/gateway/internal/logging"
	"github.com/dungeonworks/gateway/internal/session"
)

type contextKey string

const sessionRecordKey contextKey = "session_record"

// SessionFromContext returns the resolved session record for the
// request, if the session middleware ran.
func SessionFromContext(ctx context.Context) (*session.Record, bool) {
	rec, ok := ctx.Value(sessionRecordKey).(*session.Record)
	return rec, ok
}

// SessionAuth resolves the inbound request to a player identity.
// Every route outside skipPaths requires a bound session: API-flavored
// requests get a structured 401, page requests are redirected to the
// login page.
type SessionAuth struct {
	manager    *session.Manager
	logger     *logging.Logger
	cookieName string
	skipPaths  map[string]bool
}

// NewSessionAuth creates the session middleware. skipPaths lists the
// routes reachable without a session (login, logout, health, metrics).
func NewSessionAuth(manager *session.Manager, logger *logging.Logger, cookieName string, skipPaths []string) *SessionAuth {
	skip := make(map[string]bool)
	for _, path := range skipPaths {
		skip[path] = true
	}
	return &SessionAuth{
		manager:    manager,
		logger:     logger,
		cookieName: cookieName,
		skipPaths:  skip,
	}
}

// Token extracts the session token from the request: the session
// cookie first, then a Bearer authorization header.
func (s *SessionAuth) Token(r *http.Request) string {
	if cookie, err := r.Cookie(s.cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[len("Bearer "):]
	}
	return ""
}

// Handler returns the middleware handler.
func (s *SessionAuth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.skipPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		rec, err := s.manager.Resolve(r.Context(), s.Token(r))
		if err != nil {
			if isAPIRequest(r) {
				httputil.Unauthorized(w, "Not logged in")
				return
			}
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), sessionRecordKey, rec)
		ctx = logging.WithPlayerID(ctx, strconv.Itoa(rec.PlayerID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// isAPIRequest distinguishes programmatic callers (structured 401)
// from browser page loads (redirect to login).
func isAPIRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	if r.Header.Get("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}
