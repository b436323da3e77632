package session

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/palmietopia/server/internal/model"
	"github.com/palmietopia/server/internal/persistence"
	"github.com/palmietopia/server/internal/worldgen"
	"github.com/palmietopia/server/internal/wire"
)

// ManagerMsg is the union of requests the session manager accepts. Every
// lobby and game registry mutation is serialized through this single
// actor, mirroring the discipline each individual Game enforces on its
// own state.
type ManagerMsg interface{ isManagerMsg() }

type CreateLobby struct {
	PlayerName string
	MapSize    model.MapSize
	Outbox     chan []wire.ServerMessage
	Reply      chan CreateLobbyReply
}

func (CreateLobby) isManagerMsg() {}

type CreateLobbyReply struct {
	LobbyID  string
	PlayerID string
	Err      error
}

type JoinLobby struct {
	LobbyID    string
	PlayerName string
	Outbox     chan []wire.ServerMessage
	Reply      chan JoinLobbyReply
}

func (JoinLobby) isManagerMsg() {}

type JoinLobbyReply struct {
	PlayerID string
	Lobby    wire.LobbyView
	Err      error
}

type LeaveLobby struct {
	LobbyID  string
	PlayerID string
}

func (LeaveLobby) isManagerMsg() {}

type StartGame struct {
	LobbyID  string
	PlayerID string
	Reply    chan StartGameReply
}

func (StartGame) isManagerMsg() {}

type StartGameReply struct {
	Game *Game
	Err  error
}

type ListLobbies struct {
	Reply chan []wire.LobbyView
}

func (ListLobbies) isManagerMsg() {}

type RejoinGame struct {
	GameID   string
	PlayerID string
	Reply    chan RejoinGameReply
}

func (RejoinGame) isManagerMsg() {}

type RejoinGameReply struct {
	Game *Game
	Err  error
}

type GetLobbyView struct {
	LobbyID string
	Reply   chan (*wire.LobbyView)
}

func (GetLobbyView) isManagerMsg() {}

// ShutdownManager stops every live game and the manager's own loop.
type ShutdownManager struct{}

func (ShutdownManager) isManagerMsg() {}

// Manager owns the lobby and game registries described as a single
// process-wide mapping id → session. Lobbies are plain data mutated only
// from this loop; games are independent actors the manager starts,
// hands subscribers to, and forgets about once they end.
type Manager struct {
	inbox chan ManagerMsg

	lobbies   map[string]*Lobby
	lobbySubs map[string]map[string]chan []wire.ServerMessage

	games map[string]*Game

	store  persistence.Store
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewManager starts the manager's actor loop.
func NewManager(parent context.Context, logger *zap.Logger, store persistence.Store) *Manager {
	ctx, cancel := context.WithCancel(parent)
	m := &Manager{
		inbox:     make(chan ManagerMsg, 256),
		lobbies:   make(map[string]*Lobby),
		lobbySubs: make(map[string]map[string]chan []wire.ServerMessage),
		games:     make(map[string]*Game),
		store:     store,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
	go m.loop()
	return m
}

// Inbox exposes the message channel so the websocket layer can drive
// the manager.
func (m *Manager) Inbox() chan<- ManagerMsg { return m.inbox }

func (m *Manager) loop() {
	for {
		select {
		case <-m.ctx.Done():
			return
		case raw := <-m.inbox:
			switch msg := raw.(type) {
			case CreateLobby:
				m.handleCreateLobby(msg)
			case JoinLobby:
				m.handleJoinLobby(msg)
			case LeaveLobby:
				m.handleLeaveLobby(msg)
			case StartGame:
				m.handleStartGame(msg)
			case ListLobbies:
				msg.Reply <- m.lobbyViews()
			case RejoinGame:
				m.handleRejoinGame(msg)
			case GetLobbyView:
				m.handleGetLobbyView(msg)
			case removeGame:
				delete(m.games, msg.id)
			case ShutdownManager:
				for _, g := range m.games {
					g.Inbox() <- Shutdown{}
				}
				clear(m.games)
				clear(m.lobbies)
				clear(m.lobbySubs)
				m.cancel()
				return
			}
		}
	}
}

func (m *Manager) handleCreateLobby(msg CreateLobby) {
	if !msg.MapSize.Valid() {
		msg.Reply <- CreateLobbyReply{Err: ErrInvalidMapSize}
		return
	}
	lobbyID := uuid.NewString()
	playerID := uuid.NewString()
	lobby := NewLobby(lobbyID, playerID, msg.PlayerName, msg.MapSize)
	m.lobbies[lobbyID] = lobby
	m.lobbySubs[lobbyID] = map[string]chan []wire.ServerMessage{playerID: msg.Outbox}
	msg.Reply <- CreateLobbyReply{LobbyID: lobbyID, PlayerID: playerID}
}

func (m *Manager) handleJoinLobby(msg JoinLobby) {
	lobby, ok := m.lobbies[msg.LobbyID]
	if !ok {
		msg.Reply <- JoinLobbyReply{Err: ErrNoSuchLobby}
		return
	}
	playerID := uuid.NewString()
	if _, err := lobby.Join(playerID, msg.PlayerName); err != nil {
		msg.Reply <- JoinLobbyReply{Err: err}
		return
	}
	m.lobbySubs[msg.LobbyID][playerID] = msg.Outbox
	view := m.lobbyView(lobby)
	msg.Reply <- JoinLobbyReply{PlayerID: playerID, Lobby: view}
	m.broadcastLobby(msg.LobbyID, []wire.ServerMessage{wire.NewLobbyUpdated(view)})
}

func (m *Manager) handleLeaveLobby(msg LeaveLobby) {
	lobby, ok := m.lobbies[msg.LobbyID]
	if !ok {
		return
	}
	delete(m.lobbySubs[msg.LobbyID], msg.PlayerID)
	_, empty := lobby.Leave(msg.PlayerID)
	if empty {
		delete(m.lobbies, msg.LobbyID)
		delete(m.lobbySubs, msg.LobbyID)
		return
	}
	m.broadcastLobby(msg.LobbyID, []wire.ServerMessage{
		wire.NewPlayerLeft(msg.PlayerID),
		wire.NewLobbyUpdated(m.lobbyView(lobby)),
	})
}

func (m *Manager) handleStartGame(msg StartGame) {
	lobby, ok := m.lobbies[msg.LobbyID]
	if !ok {
		msg.Reply <- StartGameReply{Err: ErrNoSuchLobby}
		return
	}
	if err := lobby.StartError(msg.PlayerID); err != nil {
		msg.Reply <- StartGameReply{Err: err}
		return
	}

	initial := newGameState(lobby.ID, lobby.MapSize, lobby.Players)

	subs := m.lobbySubs[lobby.ID]
	delete(m.lobbies, lobby.ID)
	delete(m.lobbySubs, lobby.ID)

	game := NewGame(m.ctx, lobby.ID, initial, m.logger, m.store, m.onGameEnded)
	m.games[lobby.ID] = game

	for playerID, ch := range subs {
		game.Inbox() <- Join{PlayerID: playerID, Outbox: ch, Fresh: true}
	}

	msg.Reply <- StartGameReply{Game: game}
}

func (m *Manager) handleRejoinGame(msg RejoinGame) {
	game, ok := m.games[msg.GameID]
	if !ok {
		msg.Reply <- RejoinGameReply{Err: ErrNoSuchGame}
		return
	}
	if !game.HasPlayer(msg.PlayerID) {
		msg.Reply <- RejoinGameReply{Err: ErrNoSuchPlayer}
		return
	}
	msg.Reply <- RejoinGameReply{Game: game}
}

func (m *Manager) handleGetLobbyView(msg GetLobbyView) {
	lobby, ok := m.lobbies[msg.LobbyID]
	if !ok {
		msg.Reply <- nil
		return
	}
	view := m.lobbyView(lobby)
	msg.Reply <- &view
}

func (m *Manager) onGameEnded(id string) {
	m.inbox <- removeGame{id: id}
}

type removeGame struct{ id string }

func (removeGame) isManagerMsg() {}

func (m *Manager) lobbyView(l *Lobby) wire.LobbyView {
	players := make([]wire.LobbyPlayer, len(l.Players))
	for i, p := range l.Players {
		players[i] = wire.LobbyPlayer{ID: p.ID, Name: p.Name, Color: p.Color}
	}
	return wire.LobbyView{
		ID:         l.ID,
		HostID:     l.HostID,
		Players:    players,
		MapSize:    l.MapSize,
		MaxPlayers: l.MaxPlayers,
		Status:     string(l.Status),
	}
}

func (m *Manager) lobbyViews() []wire.LobbyView {
	out := make([]wire.LobbyView, 0, len(m.lobbies))
	for _, l := range m.lobbies {
		out = append(out, m.lobbyView(l))
	}
	return out
}

func (m *Manager) broadcastLobby(lobbyID string, msgs []wire.ServerMessage) {
	for _, ch := range m.lobbySubs[lobbyID] {
		select {
		case ch <- msgs:
		default:
		}
	}
}

// newGameState builds the initial authoritative state for a lobby that
// just started: the map, one capitol city and one adjacent Conscript
// per player, and the default clock/gold banks.
func newGameState(gameID string, size model.MapSize, players []model.Player) model.GameState {
	radius := size.Radius()
	seed := seedFromID(gameID)
	tiles := worldgen.Generate(size, seed)
	starts := worldgen.StartingPositions(tiles, radius, len(players))

	state := model.GameState{
		ID:            gameID,
		Radius:        radius,
		Tiles:         tiles,
		Players:       players,
		PlayerGold:    make([]int, len(players)),
		PlayerTimesMs: make([]int64, len(players)),
		EliminatedIDs: map[string]bool{},
		BaseTimeMs:    model.BaseTimeMs,
		IncrementMs:   model.IncrementMs,
		Status:        model.StatusInProgress,
	}
	for i, p := range players {
		state.PlayerGold[i] = model.StartingGold
		state.PlayerTimesMs[i] = model.BaseTimeMs

		start := starts[i]
		state.Cities = append(state.Cities, model.City{
			ID:        uuid.NewString(),
			OwnerID:   p.ID,
			Q:         start.Q,
			R:         start.R,
			Name:      fmt.Sprintf("%s's Capitol", p.Name),
			IsCapitol: true,
		})

		if unitHex, ok := worldgen.AdjacentLandTile(tiles, start); ok {
			state.Units = append(state.Units, model.NewUnit(uuid.NewString(), p.ID, model.UnitConscript, unitHex.Q, unitHex.R))
		}
	}
	return state
}

// seedFromID derives a deterministic map seed from the game id, so the
// server and any replaying client produce the same map from the id
// alone.
func seedFromID(id string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return int64(h.Sum64())
}
