package clients

import (
	"encoding/json"
	"testing"
)

func TestPlayerView_UnmarshalTolerantKeys(t *testing.T) {
	tests := []struct {
		name string
		body string
		want PlayerView
	}{
		{
			name: "camel case keys",
			body: `{"PlayerID": 4, "Name": "Ari", "Health": 10, "RoomID": 2}`,
			want: PlayerView{PlayerID: 4, Name: "Ari", Health: 10, RoomID: 2},
		},
		{
			name: "snake case keys",
			body: `{"player_id": 4, "name": "Ari", "health": 10, "room_id": 2}`,
			want: PlayerView{PlayerID: 4, Name: "Ari", Health: 10, RoomID: 2},
		},
		{
			name: "room id as string",
			body: `{"PlayerID": 4, "RoomID": "3"}`,
			want: PlayerView{PlayerID: 4, RoomID: 3},
		},
		{
			name: "missing room id defaults to zero",
			body: `{"PlayerID": 4}`,
			want: PlayerView{PlayerID: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got PlayerView
			if err := json.Unmarshal([]byte(tt.body), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseCreatedPlayer(t *testing.T) {
	body := []byte(`{"message": "created", "player": {"player_id": 12, "name": "Ari"}}`)
	id, err := ParseCreatedPlayer(body)
	if err != nil {
		t.Fatalf("ParseCreatedPlayer() error = %v", err)
	}
	if id != 12 {
		t.Errorf("id = %d, want 12", id)
	}
}

func TestParseCreatedPlayer_MissingID(t *testing.T) {
	if _, err := ParseCreatedPlayer([]byte(`{"player": {}}`)); err == nil {
		t.Error("expected error for envelope without player id")
	}
}

func TestParseAdjustedHealth(t *testing.T) {
	health, err := ParseAdjustedHealth([]byte(`{"Player": {"Health": 7}}`))
	if err != nil {
		t.Fatalf("ParseAdjustedHealth() error = %v", err)
	}
	if health != 7 {
		t.Errorf("health = %d, want 7", health)
	}
}

func TestDamageResult_Defeated(t *testing.T) {
	var withLoot DamageResult
	if err := json.Unmarshal([]byte(`{"message":"dead","loot":{"gold":5}}`), &withLoot); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !withLoot.Defeated() {
		t.Error("Defeated() = false, want true when loot present")
	}

	var without DamageResult
	if err := json.Unmarshal([]byte(`{"message":"Enemy has 3 HP left"}`), &without); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if without.Defeated() {
		t.Error("Defeated() = true, want false without loot")
	}
}
