package wire

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/palmietopia/server/internal/model"
)

// roundTrip marshals in, unmarshals into a fresh zero value of the same
// type, and fails unless the result is identical to in. Every ServerMessage
// and ClientMessage kind must satisfy this, per the closed tag sets they
// implement.
func roundTrip[T any](t *testing.T, name string, in T) {
	t.Run(name, func(t *testing.T) {
		payload, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var out T
		if err := json.Unmarshal(payload, &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !reflect.DeepEqual(in, out) {
			t.Fatalf("round trip mismatch:\n in  = %#v\n out = %#v", in, out)
		}
	})
}

func sampleLobbyView() LobbyView {
	return LobbyView{
		ID:     "lobby-1",
		HostID: "p1",
		Players: []LobbyPlayer{
			{ID: "p1", Name: "Alice", Color: model.ColorRed},
			{ID: "p2", Name: "Bob", Color: model.ColorBlue},
		},
		MapSize:    model.MapTiny,
		MaxPlayers: 5,
		Status:     "Waiting",
	}
}

func sampleGameView() GameView {
	return GameView{
		ID:     "game-1",
		Radius: 2,
		Tiles:  []model.Tile{{Q: 0, R: 0, Terrain: model.TerrainGrassland}},
		Players: []model.Player{
			{ID: "p1", Name: "Alice", Color: model.ColorRed},
			{ID: "p2", Name: "Bob", Color: model.ColorBlue},
		},
		PlayerGold:    []int{100, 100},
		PlayerTimesMs: []int64{180_000, 180_000},
		Cities: []model.City{
			{ID: "c1", OwnerID: "p1", Q: 0, R: 0, Name: "Alice's Capitol", IsCapitol: true},
		},
		Units: []model.Unit{
			model.NewUnit("u1", "p1", model.UnitConscript, 0, 1),
		},
		CurrentTurn:     3,
		TurnStartedAtMs: 1_000,
		BaseTimeMs:      180_000,
		IncrementMs:     15_000,
		Status:          model.StatusInProgress,
	}
}

func TestServerMessageRoundTrips(t *testing.T) {
	roundTrip(t, "LobbyCreated", NewLobbyCreated("lobby-1", "p1"))
	roundTrip(t, "JoinedLobby", NewJoinedLobby(sampleLobbyView(), "p2"))
	roundTrip(t, "LobbyUpdated", NewLobbyUpdated(sampleLobbyView()))
	roundTrip(t, "LobbyList", NewLobbyList([]LobbyView{sampleLobbyView()}))
	roundTrip(t, "GameStarted", NewGameStarted(sampleGameView()))
	roundTrip(t, "GameRejoined", NewGameRejoined(sampleGameView()))
	roundTrip(t, "PlayerLeft", NewPlayerLeft("p2"))
	roundTrip(t, "Error", NewError("it is not your turn"))
	roundTrip(t, "TimeTick", NewTimeTick("game-1", 3, 1, 45_000))

	roundTrip(t, "TurnChanged", TurnChangedMsg{
		Type:          TypeTurnChanged,
		CurrentTurn:   4,
		PlayerTimesMs: []int64{165_000, 180_000},
		PlayerGold:    []int{110, 100},
		Units:         []model.Unit{model.NewUnit("u1", "p1", model.UnitConscript, 0, 1)},
		Cities:        []model.City{{ID: "c1", OwnerID: "p1", Q: 0, R: 0, IsCapitol: true}},
	})

	roundTrip(t, "UnitMoved", UnitMovedMsg{
		Type:              TypeUnitMoved,
		UnitID:            "u1",
		ToQ:               1,
		ToR:               -1,
		MovementRemaining: 0,
	})

	roundTrip(t, "CombatResult/noRelocation", CombatResultMsg{
		Type:             TypeCombatResult,
		AttackerID:       "u1",
		DefenderID:       "u2",
		AttackerHP:       42,
		DefenderHP:       36,
		DamageToAttacker: 8,
		DamageToDefender: 14,
	})

	relocQ, relocR := -2, 0
	roundTrip(t, "CombatResult/withRelocation", CombatResultMsg{
		Type:             TypeCombatResult,
		AttackerID:       "u1",
		DefenderID:       "u2",
		AttackerHP:       42,
		DefenderHP:       0,
		DamageToAttacker: 0,
		DamageToDefender: 50,
		DefenderDied:     true,
		AttackerNewQ:     &relocQ,
		AttackerNewR:     &relocR,
	})

	roundTrip(t, "UnitFortified", UnitFortifiedMsg{Type: TypeUnitFortified, UnitID: "u1", NewHP: 22})

	roundTrip(t, "UnitPurchased", UnitPurchasedMsg{
		Type:       TypeUnitPurchased,
		Unit:       model.NewUnit("u2", "p1", model.UnitConscript, 0, 0),
		CityID:     "c1",
		PlayerGold: 75,
	})

	roundTrip(t, "CitiesCaptured", CitiesCapturedMsg{
		Type:   TypeCitiesCaptured,
		Cities: []model.City{{ID: "c2", OwnerID: "p1", Q: -2, R: 0, IsCapitol: true}},
	})

	roundTrip(t, "PlayerEliminated", PlayerEliminatedMsg{
		Type:        TypePlayerEliminated,
		PlayerID:    "p2",
		ConquerorID: "p1",
	})

	roundTrip(t, "GameOver", GameOverMsg{Type: TypeGameOver, WinnerID: "p1"})
}

func TestClientMessageRoundTrips(t *testing.T) {
	roundTrip(t, "CreateLobby", ClientMessage{Type: TypeCreateLobby, PlayerName: "Alice", MapSize: model.MapTiny})
	roundTrip(t, "JoinLobby", ClientMessage{Type: TypeJoinLobby, LobbyID: "lobby-1", PlayerName: "Bob"})
	roundTrip(t, "LeaveLobby", ClientMessage{Type: TypeLeaveLobby})
	roundTrip(t, "StartGame", ClientMessage{Type: TypeStartGame})
	roundTrip(t, "ListLobbies", ClientMessage{Type: TypeListLobbies})
	roundTrip(t, "EndTurn", ClientMessage{Type: TypeEndTurn})
	roundTrip(t, "RejoinGame", ClientMessage{Type: TypeRejoinGame, GameID: "game-1", PlayerID: "p1"})
	roundTrip(t, "MoveUnit", ClientMessage{Type: TypeMoveUnit, UnitID: "u1", ToQ: 1, ToR: -1})
	roundTrip(t, "AttackUnit", ClientMessage{Type: TypeAttackUnit, AttackerID: "u1", DefenderID: "u2"})
	roundTrip(t, "FortifyUnit", ClientMessage{Type: TypeFortifyUnit, UnitID: "u1"})
	roundTrip(t, "BuyUnit", ClientMessage{Type: TypeBuyUnit, CityID: "c1", UnitType: model.UnitConscript})
}
