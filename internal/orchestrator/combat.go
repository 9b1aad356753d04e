package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dungeonworks/gateway/internal/clients"
	"github.com/dungeonworks/gateway/internal/errors"
	"github.com/dungeonworks/gateway/internal/logging"
)

// Combat drives combat exchanges. There is no server-held turn state:
// the player-attack and enemy-turn sequences are two independently
// callable transitions guarded only by liveness checks on the enemy
// and player projections.
type Combat struct {
	enemies  *clients.Enemy
	players  *clients.Player
	dice     *clients.Dice
	log      *clients.ActivityLog
	logger   *logging.Logger
	dieSides int
}

// NewCombat creates a combat orchestrator. dieSides is the damage die
// rolled for player attacks.
func NewCombat(enemies *clients.Enemy, players *clients.Player, dice *clients.Dice, log *clients.ActivityLog, logger *logging.Logger, dieSides int) *Combat {
	return &Combat{
		enemies:  enemies,
		players:  players,
		dice:     dice,
		log:      log,
		logger:   logger,
		dieSides: dieSides,
	}
}

// EnemySummary is the enemy projection reported to the client.
type EnemySummary struct {
	Name    string   `json:"name"`
	Health  int      `json:"health"`
	Attacks []string `json:"attacks"`
}

// StartResult reports whether entering a room triggered combat.
type StartResult struct {
	Message  string        `json:"message"`
	Enemy    *EnemySummary `json:"enemy,omitempty"`
	Combat   bool          `json:"combat"`
	LogError string        `json:"log_error,omitempty"`
}

// AttackResult reports one player attack.
type AttackResult struct {
	Message     string          `json:"message"`
	DamageDealt int             `json:"damage_dealt"`
	EnemyHealth string          `json:"enemy_health,omitempty"`
	Loot        json.RawMessage `json:"loot,omitempty"`
	CombatOver  bool            `json:"combat_over"`
	LogError    string          `json:"log_error,omitempty"`
}

// EnemyTurnResult reports one enemy turn.
type EnemyTurnResult struct {
	Message      string `json:"message"`
	PlayerHealth int    `json:"player_health"`
	EnemyHealth  int    `json:"enemy_health"`
	LogError     string `json:"log_error,omitempty"`
}

// GameOverResult reports the player's liveness.
type GameOverResult struct {
	Message  string `json:"message"`
	Restart  string `json:"restart,omitempty"`
	LogError string `json:"log_error,omitempty"`
}

// fetchEnemy loads the enemy occupying the room, or nil when the room
// is empty.
func (c *Combat) fetchEnemy(ctx context.Context, roomID int) (*clients.EnemyView, error) {
	resp, err := c.enemies.GetByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusOK {
		return nil, nil
	}
	var view clients.EnemyView
	if err := resp.Decode(&view); err != nil {
		return nil, errors.Internal("malformed enemy payload").WithCause(err)
	}
	return &view, nil
}

// appendLog records the action, capturing a failure into a diagnostic
// string instead of failing the combat action.
func (c *Combat) appendLog(ctx context.Context, playerID int, action string) string {
	if err := c.log.Append(ctx, playerID, action); err != nil {
		c.logger.WithContext(ctx).WithError(err).Error("activity log append failed")
		return err.Error()
	}
	return ""
}

// Start begins combat with the enemy in the room. An empty room is a
// normal state, reported as combat=false rather than an error.
func (c *Combat) Start(ctx context.Context, playerID, roomID int) (*StartResult, error) {
	enemy, err := c.fetchEnemy(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if enemy == nil {
		return &StartResult{Message: "No enemy found in this room.", Combat: false}, nil
	}

	logErr := c.appendLog(ctx, playerID, fmt.Sprintf("Engaged in combat with %s in Room %d", enemy.Name, roomID))

	return &StartResult{
		Message: fmt.Sprintf("You encountered a %s!", enemy.Name),
		Enemy: &EnemySummary{
			Name:    enemy.Name,
			Health:  enemy.Health,
			Attacks: enemy.Attacks,
		},
		Combat:   true,
		LogError: logErr,
	}, nil
}

// PlayerAttack runs one player attack: fetch enemy, roll damage,
// apply it, log. A roll or apply failure after the enemy fetch aborts
// the sequence; already-issued calls are not rolled back.
func (c *Combat) PlayerAttack(ctx context.Context, playerID, roomID int) (*AttackResult, error) {
	enemy, err := c.fetchEnemy(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if enemy == nil {
		return nil, errors.NotFound("No enemy found in this room")
	}

	damage, err := c.dice.Roll(ctx, c.dieSides)
	if err != nil {
		return nil, err
	}

	result, err := c.enemies.Damage(ctx, roomID, damage)
	if err != nil {
		return nil, err
	}

	logErr := c.appendLog(ctx, playerID, fmt.Sprintf("Attacked %s for %d damage", enemy.Name, damage))

	if result.Defeated() {
		return &AttackResult{
			Message:     fmt.Sprintf("You defeated %s!", enemy.Name),
			DamageDealt: damage,
			Loot:        result.Loot,
			CombatOver:  true,
			LogError:    logErr,
		}, nil
	}

	return &AttackResult{
		Message:     fmt.Sprintf("You attacked %s for %d damage!", enemy.Name, damage),
		DamageDealt: damage,
		EnemyHealth: result.Message,
		CombatOver:  false,
		LogError:    logErr,
	}, nil
}

// EnemyTurn runs one enemy turn: fetch enemy, roll its attack, apply
// the damage to the player as a negative health delta, log. The
// reported enemy health is the pre-turn snapshot; the enemy does not
// change during its own turn.
func (c *Combat) EnemyTurn(ctx context.Context, playerID, roomID int) (*EnemyTurnResult, error) {
	enemy, err := c.fetchEnemy(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if enemy == nil {
		return nil, errors.NotFound("No enemy found in this room")
	}

	roll, err := c.enemies.AttackRoll(ctx, roomID)
	if err != nil {
		return nil, err
	}

	resp, err := c.players.AdjustHealth(ctx, playerID, -roll.Damage)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusOK {
		return nil, errors.Upstream(resp.Status, "Failed to update player health")
	}
	playerHealth, err := clients.ParseAdjustedHealth(resp.Body)
	if err != nil {
		return nil, errors.Internal("malformed player health response").WithCause(err)
	}

	logErr := c.appendLog(ctx, playerID, fmt.Sprintf("Was attacked by %s for %d damage", enemy.Name, roll.Damage))

	return &EnemyTurnResult{
		Message:      fmt.Sprintf("%s attacked you with %s for %d damage!", enemy.Name, roll.Attack, roll.Damage),
		PlayerHealth: playerHealth,
		EnemyHealth:  enemy.Health,
		LogError:     logErr,
	}, nil
}

// GameOver checks whether the player is dead. Idempotent; the defeat
// log entry is appended on every invocation, not deduplicated.
func (c *Combat) GameOver(ctx context.Context, playerID int) (*GameOverResult, error) {
	resp, err := c.players.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusOK {
		return nil, errors.NotFound("Player not found")
	}
	var view clients.PlayerView
	if err := resp.Decode(&view); err != nil {
		return nil, errors.Internal("malformed player payload").WithCause(err)
	}

	if view.Health > 0 {
		return &GameOverResult{Message: "You are still alive! Keep fighting."}, nil
	}

	logErr := c.appendLog(ctx, playerID, "Game Over - Player defeated")

	return &GameOverResult{
		Message:  "Game Over! You have been defeated.",
		Restart:  "/game/restart",
		LogError: logErr,
	}, nil
}
