package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SESSION_JWT_SECRET", "test-secret")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if cfg.Port != 5050 {
		t.Errorf("Port = %d, want 5050", cfg.Port)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
	if cfg.Game.TerminalRoomThreshold != 3 {
		t.Errorf("TerminalRoomThreshold = %d, want 3", cfg.Game.TerminalRoomThreshold)
	}
	if cfg.Game.DamageDieSides != 6 {
		t.Errorf("DamageDieSides = %d, want 6", cfg.Game.DamageDieSides)
	}
	if cfg.Session.CookieName != "dungeon_session" {
		t.Errorf("CookieName = %q", cfg.Session.CookieName)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("Session TTL = %v, want 24h", cfg.Session.TTL)
	}
	if cfg.Services.Player != "http://player_service:5000" {
		t.Errorf("Player URL = %q", cfg.Services.Player)
	}
}

func TestLoadFromPath_FileOverridesDefaults(t *testing.T) {
	t.Setenv("SESSION_JWT_SECRET", "test-secret")

	path := filepath.Join(t.TempDir(), "gateway.yaml")
	content := `
port: 8080
services:
  player: http://localhost:9000
game:
  terminal_room_threshold: 5
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Services.Player != "http://localhost:9000" {
		t.Errorf("Player URL = %q", cfg.Services.Player)
	}
	if cfg.Game.TerminalRoomThreshold != 5 {
		t.Errorf("TerminalRoomThreshold = %d, want 5", cfg.Game.TerminalRoomThreshold)
	}
	// Values the file does not mention keep their defaults.
	if cfg.Services.Dice != "http://dice_service:5007" {
		t.Errorf("Dice URL = %q", cfg.Services.Dice)
	}
}

func TestLoadFromPath_EnvOverridesFile(t *testing.T) {
	t.Setenv("SESSION_JWT_SECRET", "test-secret")
	t.Setenv("PLAYER_SERVICE_URL", "http://player.internal:5000")
	t.Setenv("GATEWAY_PORT", "6000")
	t.Setenv("TERMINAL_ROOM_THRESHOLD", "4")

	path := filepath.Join(t.TempDir(), "gateway.yaml")
	if err := os.WriteFile(path, []byte("port: 8080\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.Port != 6000 {
		t.Errorf("Port = %d, want env override 6000", cfg.Port)
	}
	if cfg.Services.Player != "http://player.internal:5000" {
		t.Errorf("Player URL = %q", cfg.Services.Player)
	}
	if cfg.Game.TerminalRoomThreshold != 4 {
		t.Errorf("TerminalRoomThreshold = %d, want 4", cfg.Game.TerminalRoomThreshold)
	}
}

func TestLoadFromPath_MissingJWTSecretFails(t *testing.T) {
	t.Setenv("SESSION_JWT_SECRET", "")

	_, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error without a jwt secret")
	}
}
