// Package wire defines the JSON message sets exchanged over the
// websocket endpoint and the translation between those messages and the
// rules engine's Command/Delta vocabulary.
package wire

import "github.com/palmietopia/server/internal/model"

// ClientMessage is the flat decode target for every client → server
// frame. Only the fields relevant to Type are populated; unused fields
// are left at their zero value.
type ClientMessage struct {
	Type string `json:"type"`

	PlayerName string        `json:"player_name,omitempty"`
	MapSize    model.MapSize `json:"map_size,omitempty"`

	LobbyID string `json:"lobby_id,omitempty"`
	GameID  string `json:"game_id,omitempty"`

	PlayerID string `json:"player_id,omitempty"`

	UnitID string `json:"unit_id,omitempty"`
	ToQ    int    `json:"to_q,omitempty"`
	ToR    int    `json:"to_r,omitempty"`

	AttackerID string `json:"attacker_id,omitempty"`
	DefenderID string `json:"defender_id,omitempty"`

	CityID   string         `json:"city_id,omitempty"`
	UnitType model.UnitKind `json:"unit_type,omitempty"`
}

// Client → server message type tags.
const (
	TypeCreateLobby = "CreateLobby"
	TypeJoinLobby   = "JoinLobby"
	TypeLeaveLobby  = "LeaveLobby"
	TypeStartGame   = "StartGame"
	TypeListLobbies = "ListLobbies"
	TypeEndTurn     = "EndTurn"
	TypeRejoinGame  = "RejoinGame"
	TypeMoveUnit    = "MoveUnit"
	TypeAttackUnit  = "AttackUnit"
	TypeFortifyUnit = "FortifyUnit"
	TypeBuyUnit     = "BuyUnit"
)
