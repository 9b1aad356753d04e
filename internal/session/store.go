// Package session owns the gateway's only state: the binding between
// an opaque session token and a player identity. Records live in a
// process-external store with server-managed expiry, so any number of
// gateway instances can resolve the same token.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// ErrNotFound is returned when no record exists for a token hash.
var ErrNotFound = errors.New("session not found")

// Record binds a token to a player identity.
type Record struct {
	PlayerID   int       `json:"player_id"`
	PlayerName string    `json:"player_name"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Store is the session persistence boundary. Keys are token hashes,
// never raw tokens.
type Store interface {
	Create(ctx context.Context, tokenHash string, rec *Record) error
	Get(ctx context.Context, tokenHash string) (*Record, error)
	Delete(ctx context.Context, tokenHash string) error
}

// HashToken derives the store key from a raw token.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
