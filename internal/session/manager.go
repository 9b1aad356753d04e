package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dungeonworks/gateway/internal/clients"
	"github.com/dungeonworks/gateway/internal/errors"
	"github.com/dungeonworks/gateway/internal/logging"
)

// Claims are the JWT claims carried by a session token. The token is
// only half of a session: the store record must also still exist, so
// logout and expiry invalidate tokens server-side.
type Claims struct {
	PlayerID int `json:"player_id"`
	jwt.RegisteredClaims
}

// Session is the result of a successful login.
type Session struct {
	Token      string
	PlayerID   int
	PlayerName string
	ExpiresAt  time.Time
}

// Manager owns login, logout and session resolution.
type Manager struct {
	players *clients.Player
	game    *clients.GameManagement
	store   Store
	logger  *logging.Logger
	secret  []byte
	ttl     time.Duration
}

// NewManager creates a session manager.
func NewManager(players *clients.Player, game *clients.GameManagement, store Store, logger *logging.Logger, secret string, ttl time.Duration) *Manager {
	return &Manager{
		players: players,
		game:    game,
		store:   store,
		logger:  logger,
		secret:  []byte(secret),
		ttl:     ttl,
	}
}

// lookupAction is the next step after the login name lookup. Keeping
// the mapping explicit makes every branch enumerable in tests.
type lookupAction int

const (
	actionBindExisting lookupAction = iota
	actionCreate
)

// lookupNext maps the lookup outcome to the next login step: a 200
// binds the existing player; a 404, a lookup transport failure, or any
// unexpected status falls through to creation.
func lookupNext(status int, err error) lookupAction {
	if err != nil {
		return actionCreate
	}
	if status == http.StatusOK {
		return actionBindExisting
	}
	return actionCreate
}

// Login resolves a (name, class) pair to a bound session, creating the
// player when no player with that name exists. A create conflict (409)
// means a concurrent login won the creation race; the manager re-reads
// the winner's id once and binds to it.
func (m *Manager) Login(ctx context.Context, name, characterClass string) (*Session, error) {
	if name == "" {
		return nil, errors.Validation("player name is required")
	}
	if characterClass == "" {
		characterClass = "Warrior"
	}

	resp, err := m.players.FindByName(ctx, name)
	var status int
	if err != nil {
		m.logger.WithContext(ctx).WithError(err).Error("player lookup failed, falling back to create")
	} else {
		status = resp.Status
	}

	switch lookupNext(status, err) {
	case actionBindExisting:
		var view clients.PlayerView
		if err := resp.Decode(&view); err != nil || view.PlayerID == 0 {
			return nil, errors.Internal("player id missing from lookup response")
		}
		// Returning players start over. A failed reset must not lock
		// the player out, so it only degrades.
		if err := m.game.FullReset(ctx, view.PlayerID); err != nil {
			m.logger.WithContext(ctx).WithError(err).Error("game reset failed during login")
		}
		return m.bind(ctx, view.PlayerID, name)
	default:
		return m.create(ctx, name, characterClass)
	}
}

// create registers a new player and binds a session to it.
func (m *Manager) create(ctx context.Context, name, characterClass string) (*Session, error) {
	resp, err := m.players.Create(ctx, name, characterClass)
	if err != nil {
		return nil, err
	}

	switch resp.Status {
	case http.StatusCreated:
		playerID, err := clients.ParseCreatedPlayer(resp.Body)
		if err != nil {
			return nil, errors.Internal("failed to extract player id from creation response").WithCause(err)
		}
		m.logger.WithContext(ctx).WithFields(map[string]interface{}{
			"player_id":   playerID,
			"player_name": name,
		}).Info("new player created")
		return m.bind(ctx, playerID, name)

	case http.StatusConflict:
		// A concurrent creator won the race. One deterministic
		// re-lookup, no backoff.
		retry, err := m.players.FindByName(ctx, name)
		if err != nil {
			return nil, errors.Internal("player name already exists but could not retrieve player").WithCause(err)
		}
		if retry.Status != http.StatusOK {
			return nil, errors.Internal("player name already exists but could not retrieve player")
		}
		var view clients.PlayerView
		if err := retry.Decode(&view); err != nil || view.PlayerID == 0 {
			return nil, errors.Internal("player id missing from lookup response")
		}
		return m.bind(ctx, view.PlayerID, name)

	default:
		return nil, errors.Upstream(http.StatusInternalServerError,
			fmt.Sprintf("failed to create new player: %s", resp.ErrorMessage()))
	}
}

// bind issues a token and persists the session record.
func (m *Manager) bind(ctx context.Context, playerID int, name string) (*Session, error) {
	expiresAt := time.Now().Add(m.ttl)

	claims := &Claims{
		PlayerID: playerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "dungeon-gateway",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, errors.Internal("failed to sign session token").WithCause(err)
	}

	rec := &Record{PlayerID: playerID, PlayerName: name, ExpiresAt: expiresAt}
	if err := m.store.Create(ctx, HashToken(token), rec); err != nil {
		return nil, errors.Internal("failed to store session").WithCause(err)
	}

	return &Session{Token: token, PlayerID: playerID, PlayerName: name, ExpiresAt: expiresAt}, nil
}

// Resolve maps a raw token to its session record. Any failure along
// the way is an authentication failure, never an internal error.
func (m *Manager) Resolve(ctx context.Context, token string) (*Record, error) {
	if token == "" {
		return nil, errors.Unauthorized("not logged in")
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.Unauthorized("invalid session token")
	}

	rec, err := m.store.Get(ctx, HashToken(token))
	if err != nil {
		return nil, errors.Unauthorized("session expired")
	}
	return rec, nil
}

// Logout resets the player's game state and clears the session
// binding. Reset failures are logged but never block logout.
func (m *Manager) Logout(ctx context.Context, token string) {
	rec, err := m.Resolve(ctx, token)
	if err == nil {
		if err := m.game.FullReset(ctx, rec.PlayerID); err != nil {
			m.logger.WithContext(ctx).WithError(err).Error("game reset failed during logout")
		}
	}
	if token != "" {
		_ = m.store.Delete(ctx, HashToken(token))
	}
}
