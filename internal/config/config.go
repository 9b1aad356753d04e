// Package config loads gateway configuration from config/gateway.yaml
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Services holds the base URL of every downstream domain service.
type Services struct {
	Player        string `yaml:"player"`
	Room          string `yaml:"room"`
	EnteringRoom  string `yaml:"entering_room"`
	PickUpItem    string `yaml:"pick_up_item"`
	OpenInventory string `yaml:"open_inventory"`
	Item          string `yaml:"item"`
	Enemy         string `yaml:"enemy"`
	Dice          string `yaml:"dice"`
	ActivityLog   string `yaml:"activity_log"`
	ManageGame    string `yaml:"manage_game"`
}

// Session configures the session store and token signing.
type Session struct {
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	JWTSecret     string        `yaml:"jwt_secret"`
	CookieName    string        `yaml:"cookie_name"`
	TTL           time.Duration `yaml:"ttl"`
}

// Game holds gameplay tuning knobs.
type Game struct {
	// TerminalRoomThreshold is the room id at or beyond which a
	// failed advance means the dungeon is finished.
	TerminalRoomThreshold int `yaml:"terminal_room_threshold"`
	// DamageDieSides is the die rolled for player attack damage.
	DamageDieSides int `yaml:"damage_die_sides"`
}

// Logging configures log output.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// RateLimit configures the per-caller request budget.
type RateLimit struct {
	RequestsPerSecond int `yaml:"requests_per_second"`
	Burst             int `yaml:"burst"`
}

// Config is the full gateway configuration.
type Config struct {
	Port           int           `yaml:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Services       Services      `yaml:"services"`
	Session        Session       `yaml:"session"`
	Game           Game          `yaml:"game"`
	Logging        Logging       `yaml:"logging"`
	RateLimit      RateLimit     `yaml:"rate_limit"`
}

// Default returns the configuration matching the reference deployment.
func Default() *Config {
	return &Config{
		Port:           5050,
		RequestTimeout: 5 * time.Second,
		Services: Services{
			Player:        "http://player_service:5000",
			Room:          "http://room_service:5030",
			EnteringRoom:  "http://entering_room_service:5011",
			PickUpItem:    "http://pick_up_item_service:5019",
			OpenInventory: "http://open_inventory_service:5010",
			Item:          "http://item_service:5020",
			Enemy:         "http://enemy_service:5005",
			Dice:          "http://dice_service:5007",
			ActivityLog:   "http://activity_log_service:5013",
			ManageGame:    "http://manage_game_service:5014",
		},
		Session: Session{
			CookieName: "dungeon_session",
			TTL:        24 * time.Hour,
		},
		Game: Game{
			TerminalRoomThreshold: 3,
			DamageDieSides:        6,
		},
		Logging: Logging{
			Level:  "info",
			Format: "json",
		},
		RateLimit: RateLimit{
			RequestsPerSecond: 20,
			Burst:             40,
		},
	}
}

// Load reads configuration from the default path, falling back to
// defaults when the file is absent. Environment variables override
// file values in all cases.
func Load() (*Config, error) {
	return LoadFromPath(filepath.Join("config", "gateway.yaml"))
}

// LoadFromPath reads configuration from a specific file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse gateway config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read gateway config: %w", err)
	}

	cfg.applyEnv()

	if cfg.Session.JWTSecret == "" {
		return nil, fmt.Errorf("session jwt secret is required (set SESSION_JWT_SECRET)")
	}
	return cfg, nil
}

// applyEnv overlays environment variables. Service URL variables keep
// the names the reference deployment used.
func (c *Config) applyEnv() {
	overrideString(&c.Services.Player, "PLAYER_SERVICE_URL")
	overrideString(&c.Services.Room, "ROOM_SERVICE_URL")
	overrideString(&c.Services.EnteringRoom, "ENTERING_ROOM_SERVICE_URL")
	overrideString(&c.Services.PickUpItem, "PICK_UP_ITEM_SERVICE_URL")
	overrideString(&c.Services.OpenInventory, "OPEN_INVENTORY_SERVICE_URL")
	overrideString(&c.Services.Item, "ITEM_SERVICE_URL")
	overrideString(&c.Services.Enemy, "ENEMY_SERVICE_URL")
	overrideString(&c.Services.Dice, "DICE_SERVICE_URL")
	overrideString(&c.Services.ActivityLog, "ACTIVITY_LOG_SERVICE_URL")
	overrideString(&c.Services.ManageGame, "MANAGE_GAME_SERVICE_URL")

	overrideString(&c.Session.RedisAddr, "SESSION_REDIS_ADDR")
	overrideString(&c.Session.RedisPassword, "SESSION_REDIS_PASSWORD")
	overrideString(&c.Session.JWTSecret, "SESSION_JWT_SECRET")
	overrideString(&c.Logging.Level, "LOG_LEVEL")
	overrideString(&c.Logging.Format, "LOG_FORMAT")
	overrideInt(&c.Port, "GATEWAY_PORT")
	overrideInt(&c.Game.TerminalRoomThreshold, "TERMINAL_ROOM_THRESHOLD")
}

func overrideString(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func overrideInt(target *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}
