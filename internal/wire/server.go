package wire

import "github.com/palmietopia/server/internal/model"

// LobbyPlayer is the roster entry shape clients see for a pre-game lobby.
type LobbyPlayer struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Color model.PlayerColor `json:"color"`
}

// LobbyView is the JSON shape of a lobby carried inside lobby-related
// server messages.
type LobbyView struct {
	ID         string        `json:"id"`
	HostID     string        `json:"host_id"`
	Players    []LobbyPlayer `json:"players"`
	MapSize    model.MapSize `json:"map_size"`
	MaxPlayers int           `json:"max_players"`
	Status     string        `json:"status"`
}

// GameView is the full authoritative state a client needs to render the
// board from scratch, used by GameStarted and GameRejoined.
type GameView struct {
	ID              string       `json:"id"`
	Radius          int          `json:"radius"`
	Tiles           []model.Tile `json:"tiles"`
	Players         []model.Player `json:"players"`
	PlayerGold      []int        `json:"player_gold"`
	PlayerTimesMs   []int64      `json:"player_times_ms"`
	Cities          []model.City `json:"cities"`
	Units           []model.Unit `json:"units"`
	CurrentTurn     int          `json:"current_turn"`
	TurnStartedAtMs int64        `json:"turn_started_at_ms"`
	BaseTimeMs      int64        `json:"base_time_ms"`
	IncrementMs     int64        `json:"increment_ms"`
	Status          model.Status `json:"status"`
	WinnerID        string       `json:"winner_id,omitempty"`
	EliminatedIDs   map[string]bool `json:"eliminated_ids,omitempty"`
}

// NewGameView builds the wire view of a GameState.
func NewGameView(id string, s model.GameState) GameView {
	return GameView{
		ID:              id,
		Radius:          s.Radius,
		Tiles:           s.Tiles,
		Players:         s.Players,
		PlayerGold:      s.PlayerGold,
		PlayerTimesMs:   s.PlayerTimesMs,
		Cities:          s.Cities,
		Units:           s.Units,
		CurrentTurn:     s.CurrentTurn,
		TurnStartedAtMs: s.TurnStartedAtMs,
		BaseTimeMs:      s.BaseTimeMs,
		IncrementMs:     s.IncrementMs,
		Status:          s.Status,
		WinnerID:        s.WinnerID,
		EliminatedIDs:   s.EliminatedIDs,
	}
}

// Server → client message type tags.
const (
	TypeLobbyCreated     = "LobbyCreated"
	TypeJoinedLobby      = "JoinedLobby"
	TypeLobbyUpdated     = "LobbyUpdated"
	TypeLobbyList        = "LobbyList"
	TypeGameStarted      = "GameStarted"
	TypeGameRejoined     = "GameRejoined"
	TypePlayerLeft       = "PlayerLeft"
	TypeError            = "Error"
	TypeTurnChanged      = "TurnChanged"
	TypeTimeTick         = "TimeTick"
	TypeUnitMoved        = "UnitMoved"
	TypeCombatResult     = "CombatResult"
	TypeUnitFortified    = "UnitFortified"
	TypeUnitPurchased    = "UnitPurchased"
	TypeCitiesCaptured   = "CitiesCaptured"
	TypePlayerEliminated = "PlayerEliminated"
	TypeGameOver         = "GameOver"
)

// ServerMessage is any value a session can hand the websocket layer to
// marshal as one frame. Each constructor below sets its own Type tag,
// so a plain json.Marshal of the returned value already carries it.
type ServerMessage interface{ MessageType() string }

type LobbyCreatedMsg struct {
	Type     string `json:"type"`
	LobbyID  string `json:"lobby_id"`
	PlayerID string `json:"player_id"`
}

func NewLobbyCreated(lobbyID, playerID string) LobbyCreatedMsg {
	return LobbyCreatedMsg{Type: TypeLobbyCreated, LobbyID: lobbyID, PlayerID: playerID}
}
func (LobbyCreatedMsg) MessageType() string { return TypeLobbyCreated }

type JoinedLobbyMsg struct {
	Type     string    `json:"type"`
	Lobby    LobbyView `json:"lobby"`
	PlayerID string    `json:"player_id"`
}

func NewJoinedLobby(lobby LobbyView, playerID string) JoinedLobbyMsg {
	return JoinedLobbyMsg{Type: TypeJoinedLobby, Lobby: lobby, PlayerID: playerID}
}
func (JoinedLobbyMsg) MessageType() string { return TypeJoinedLobby }

type LobbyUpdatedMsg struct {
	Type  string    `json:"type"`
	Lobby LobbyView `json:"lobby"`
}

func NewLobbyUpdated(lobby LobbyView) LobbyUpdatedMsg {
	return LobbyUpdatedMsg{Type: TypeLobbyUpdated, Lobby: lobby}
}
func (LobbyUpdatedMsg) MessageType() string { return TypeLobbyUpdated }

type LobbyListMsg struct {
	Type    string      `json:"type"`
	Lobbies []LobbyView `json:"lobbies"`
}

func NewLobbyList(lobbies []LobbyView) LobbyListMsg {
	return LobbyListMsg{Type: TypeLobbyList, Lobbies: lobbies}
}
func (LobbyListMsg) MessageType() string { return TypeLobbyList }

type GameStartedMsg struct {
	Type string   `json:"type"`
	Game GameView `json:"game"`
}

func NewGameStarted(game GameView) GameStartedMsg {
	return GameStartedMsg{Type: TypeGameStarted, Game: game}
}
func (GameStartedMsg) MessageType() string { return TypeGameStarted }

type GameRejoinedMsg struct {
	Type string   `json:"type"`
	Game GameView `json:"game"`
}

func NewGameRejoined(game GameView) GameRejoinedMsg {
	return GameRejoinedMsg{Type: TypeGameRejoined, Game: game}
}
func (GameRejoinedMsg) MessageType() string { return TypeGameRejoined }

type PlayerLeftMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"player_id"`
}

func NewPlayerLeft(playerID string) PlayerLeftMsg {
	return PlayerLeftMsg{Type: TypePlayerLeft, PlayerID: playerID}
}
func (PlayerLeftMsg) MessageType() string { return TypePlayerLeft }

type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewError builds the Error{message} frame sent to a single offending
// socket on a rejected or malformed command.
func NewError(message string) ErrorMsg {
	return ErrorMsg{Type: TypeError, Message: message}
}
func (ErrorMsg) MessageType() string { return TypeError }

type TurnChangedMsg struct {
	Type          string       `json:"type"`
	CurrentTurn   int          `json:"current_turn"`
	PlayerTimesMs []int64      `json:"player_times_ms"`
	PlayerGold    []int        `json:"player_gold"`
	Units         []model.Unit `json:"units"`
	Cities        []model.City `json:"cities"`
}

func (TurnChangedMsg) MessageType() string { return TypeTurnChanged }

type TimeTickMsg struct {
	Type        string `json:"type"`
	GameID      string `json:"game_id"`
	TurnNumber  int    `json:"turn_number"`
	PlayerIndex int    `json:"player_index"`
	RemainingMs int64  `json:"remaining_ms"`
}

func NewTimeTick(gameID string, turnNumber, playerIndex int, remainingMs int64) TimeTickMsg {
	return TimeTickMsg{Type: TypeTimeTick, GameID: gameID, TurnNumber: turnNumber, PlayerIndex: playerIndex, RemainingMs: remainingMs}
}
func (TimeTickMsg) MessageType() string { return TypeTimeTick }

type UnitMovedMsg struct {
	Type              string `json:"type"`
	UnitID            string `json:"unit_id"`
	ToQ               int    `json:"to_q"`
	ToR               int    `json:"to_r"`
	MovementRemaining int    `json:"movement_remaining"`
}

func (UnitMovedMsg) MessageType() string { return TypeUnitMoved }

type CombatResultMsg struct {
	Type             string `json:"type"`
	AttackerID       string `json:"attacker_id"`
	DefenderID       string `json:"defender_id"`
	AttackerHP       int    `json:"attacker_hp"`
	DefenderHP       int    `json:"defender_hp"`
	DamageToAttacker int    `json:"damage_to_attacker"`
	DamageToDefender int    `json:"damage_to_defender"`
	AttackerDied     bool   `json:"attacker_died"`
	DefenderDied     bool   `json:"defender_died"`
	AttackerNewQ     *int   `json:"attacker_new_q,omitempty"`
	AttackerNewR     *int   `json:"attacker_new_r,omitempty"`
}

func (CombatResultMsg) MessageType() string { return TypeCombatResult }

type UnitFortifiedMsg struct {
	Type   string `json:"type"`
	UnitID string `json:"unit_id"`
	NewHP  int    `json:"new_hp"`
}

func (UnitFortifiedMsg) MessageType() string { return TypeUnitFortified }

type UnitPurchasedMsg struct {
	Type       string     `json:"type"`
	Unit       model.Unit `json:"unit"`
	CityID     string     `json:"city_id"`
	PlayerGold int        `json:"player_gold"`
}

func (UnitPurchasedMsg) MessageType() string { return TypeUnitPurchased }

type CitiesCapturedMsg struct {
	Type   string       `json:"type"`
	Cities []model.City `json:"cities"`
}

func (CitiesCapturedMsg) MessageType() string { return TypeCitiesCaptured }

type PlayerEliminatedMsg struct {
	Type        string `json:"type"`
	PlayerID    string `json:"player_id"`
	ConquerorID string `json:"conquerer_id"`
}

func (PlayerEliminatedMsg) MessageType() string { return TypePlayerEliminated }

type GameOverMsg struct {
	Type     string `json:"type"`
	WinnerID string `json:"winner_id"`
}

func (GameOverMsg) MessageType() string { return TypeGameOver }
