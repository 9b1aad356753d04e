package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dungeonworks/gateway/internal/httputil"
	"github.com/dungeonworks/gateway/internal/middleware"
)

// loginRequest accepts both the JSON and form field names the
// reference UI used.
type loginRequest struct {
	PlayerName     string `json:"player_name"`
	CharacterClass string `json:"character_class"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "gateway",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleLoginPage serves the login entry point. A caller with a live
// session is sent home.
func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, err := s.sessions.Resolve(r.Context(), s.requestToken(r)); err == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "POST player_name and character_class to /login",
	})
}

// handleLogin logs in an existing player or creates a new one, then
// binds the session cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.BadRequest(w, "invalid request body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			httputil.BadRequest(w, "invalid form body")
			return
		}
		req.PlayerName = r.PostFormValue("player_name")
		req.CharacterClass = r.PostFormValue("character_class")
	}

	if req.PlayerName == "" {
		httputil.BadRequest(w, "Player name is required")
		return
	}

	sess, err := s.sessions.Login(r.Context(), req.PlayerName, req.CharacterClass)
	if err != nil {
		s.logger.WithContext(r.Context()).WithError(err).Error("login failed")
		httputil.Error(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   int(s.sessionTTL.Seconds()),
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	if strings.HasPrefix(contentType, "application/json") {
		httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"player_id":   sess.PlayerID,
			"player_name": sess.PlayerName,
		})
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// handleLogout resets the player's game and clears the session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := s.requestToken(r)
	s.sessions.Logout(r.Context(), token)

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/login", http.StatusFound)
}

// handleHome returns the session's player identity for the UI shell.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	rec, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"player_id":   rec.PlayerID,
		"player_name": rec.PlayerName,
	})
}

// requestToken extracts the raw session token from cookie or header.
func (s *Server) requestToken(r *http.Request) string {
	if cookie, err := r.Cookie(s.cookieName); err == nil {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[len("Bearer "):]
	}
	return ""
}
