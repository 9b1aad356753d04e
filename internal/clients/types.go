// Package clients provides typed wrappers over the domain services the
// gateway orchestrates: player, room, enemy, item/inventory, dice,
// activity log and game management.
//
// The services disagree on payload key casing (PlayerID vs player_id,
// RoomID vs room_id), so the read projections here tolerate both
// spellings.
package clients

import (
	"encoding/json"
	"fmt"
)

// PlayerView is the read projection of a player.
type PlayerView struct {
	PlayerID int
	Name     string
	Health   int
	RoomID   int
}

// UnmarshalJSON accepts both the CamelCase and snake_case spellings
// the player service emits, and numeric values arriving as strings.
func (p *PlayerView) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.PlayerID = intField(raw, "PlayerID", "player_id")
	p.Health = intField(raw, "Health", "health")
	p.RoomID = intField(raw, "RoomID", "room_id")
	p.Name = stringField(raw, "Name", "name")
	return nil
}

// EnemyView is the read projection of an enemy.
type EnemyView struct {
	Name    string   `json:"Name"`
	Health  int      `json:"Health"`
	Attacks []string `json:"Attacks"`
}

// DamageResult is the enemy service's response to a damage
// application. A non-nil Loot payload signals defeat.
type DamageResult struct {
	Message string          `json:"message"`
	Loot    json.RawMessage `json:"loot,omitempty"`
}

// Defeated reports whether the damage application killed the enemy.
func (d *DamageResult) Defeated() bool { return len(d.Loot) > 0 }

// AttackRoll is the enemy service's attack selection for one enemy turn.
type AttackRoll struct {
	Attack string `json:"attack"`
	Damage int    `json:"damage"`
}

// ItemDetail is one enriched inventory entry, passed through to the
// caller unmodified.
type ItemDetail = json.RawMessage

func intField(raw map[string]json.RawMessage, keys ...string) int {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		var n int
		if err := json.Unmarshal(v, &n); err == nil {
			return n
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			var parsed int
			if _, err := fmt.Sscanf(s, "%d", &parsed); err == nil {
				return parsed
			}
		}
	}
	return 0
}

func stringField(raw map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	}
	return ""
}
