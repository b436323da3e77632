// Package ws is the websocket transport binding the session manager's
// actor registry to a single net/http endpoint. It owns socket framing
// only; every game and lobby rule lives in internal/session and
// internal/engine.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"github.com/palmietopia/server/internal/session"
	"github.com/palmietopia/server/internal/wire"
)

const writeTimeout = 5 * time.Second

// Handler upgrades every request to a websocket and routes its frames
// through mgr. Lobby creation, joining, and listing go to the session
// manager since they precede any Game existing; once a lobby starts,
// game commands are handed to the resolved *session.Game.
func Handler(mgr *session.Manager, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusInternalError, "closing")

		c := &client{
			conn:   conn,
			mgr:    mgr,
			logger: logger,
			out:    make(chan []wire.ServerMessage, 16),
		}
		defer c.leave()

		writeCtx, cancel := context.WithCancel(r.Context())
		defer cancel()
		go c.writeLoop(writeCtx)

		c.readLoop(r.Context())
	}
}

// client tracks the one socket's membership in at most one lobby and at
// most one game over its lifetime. A socket may belong to a lobby, then
// a game, but never both at once. playerID/lobbyID/game are read from
// the read loop and, for game handoff, written from the write loop
// (when it observes a game snapshot addressed to a socket that hasn't
// resolved its *session.Game yet), so mu guards all three.
type client struct {
	conn   *websocket.Conn
	mgr    *session.Manager
	logger *zap.Logger

	out chan []wire.ServerMessage

	mu       sync.Mutex
	playerID string
	lobbyID  string
	game     *session.Game
}

func (c *client) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msgs, ok := <-c.out:
			if !ok {
				return
			}
			for _, m := range msgs {
				c.maybeResolveGame(m)
				payload, err := json.Marshal(m)
				if err != nil {
					continue
				}
				wctx, cancel := context.WithTimeout(ctx, writeTimeout)
				err = c.conn.Write(wctx, websocket.MessageText, payload)
				cancel()
				if err != nil {
					return
				}
			}
		}
	}
}

// maybeResolveGame notices a game snapshot addressed to this socket
// before the socket itself requested one — the case for every lobby
// member other than whoever called StartGame, whose broadcast channel
// the manager migrates straight into the new Game's subscriber map.
func (c *client) maybeResolveGame(m wire.ServerMessage) {
	var gameID string
	switch msg := m.(type) {
	case wire.GameStartedMsg:
		gameID = msg.Game.ID
	case wire.GameRejoinedMsg:
		gameID = msg.Game.ID
	default:
		return
	}

	c.mu.Lock()
	known := c.game != nil
	playerID := c.playerID
	c.mu.Unlock()
	if known {
		return
	}

	reply := make(chan session.RejoinGameReply, 1)
	c.mgr.Inbox() <- session.RejoinGame{GameID: gameID, PlayerID: playerID, Reply: reply}
	res := <-reply
	if res.Err != nil {
		return
	}
	c.mu.Lock()
	c.game = res.Game
	c.lobbyID = ""
	c.mu.Unlock()
}

func (c *client) readLoop(ctx context.Context) {
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			var closeErr websocket.CloseError
			if !errors.As(err, &closeErr) {
				c.logger.Debug("websocket read failed", zap.Error(err))
			}
			return
		}

		var m wire.ClientMessage
		if err := json.Unmarshal(data, &m); err != nil {
			c.send(wire.NewError("malformed message"))
			continue
		}
		c.handle(m)
	}
}

func (c *client) send(msgs ...wire.ServerMessage) {
	select {
	case c.out <- msgs:
	default:
		c.logger.Warn("dropping message to slow client")
	}
}

func (c *client) handle(m wire.ClientMessage) {
	switch m.Type {
	case wire.TypeCreateLobby:
		c.handleCreateLobby(m)
	case wire.TypeJoinLobby:
		c.handleJoinLobby(m)
	case wire.TypeLeaveLobby:
		c.handleLeaveLobby()
	case wire.TypeStartGame:
		c.handleStartGame()
	case wire.TypeListLobbies:
		c.handleListLobbies()
	case wire.TypeRejoinGame:
		c.handleRejoinGame(m)
	case wire.TypeEndTurn, wire.TypeMoveUnit, wire.TypeAttackUnit, wire.TypeFortifyUnit, wire.TypeBuyUnit:
		c.handleGameCommand(m)
	default:
		c.send(wire.NewError("unknown message type"))
	}
}

func (c *client) handleCreateLobby(m wire.ClientMessage) {
	reply := make(chan session.CreateLobbyReply, 1)
	c.mgr.Inbox() <- session.CreateLobby{
		PlayerName: m.PlayerName,
		MapSize:    m.MapSize,
		Outbox:     c.out,
		Reply:      reply,
	}
	res := <-reply
	if res.Err != nil {
		c.send(wire.NewError(res.Err.Error()))
		return
	}
	c.mu.Lock()
	c.playerID = res.PlayerID
	c.lobbyID = res.LobbyID
	c.mu.Unlock()
	c.send(wire.NewLobbyCreated(res.LobbyID, res.PlayerID))
}

func (c *client) handleJoinLobby(m wire.ClientMessage) {
	reply := make(chan session.JoinLobbyReply, 1)
	c.mgr.Inbox() <- session.JoinLobby{
		LobbyID:    m.LobbyID,
		PlayerName: m.PlayerName,
		Outbox:     c.out,
		Reply:      reply,
	}
	res := <-reply
	if res.Err != nil {
		c.send(wire.NewError(res.Err.Error()))
		return
	}
	c.mu.Lock()
	c.playerID = res.PlayerID
	c.lobbyID = m.LobbyID
	c.mu.Unlock()
	c.send(wire.NewJoinedLobby(res.Lobby, res.PlayerID))
}

func (c *client) handleLeaveLobby() {
	c.mu.Lock()
	lobbyID, playerID := c.lobbyID, c.playerID
	c.lobbyID = ""
	c.mu.Unlock()
	if lobbyID == "" {
		return
	}
	c.mgr.Inbox() <- session.LeaveLobby{LobbyID: lobbyID, PlayerID: playerID}
}

func (c *client) handleStartGame() {
	c.mu.Lock()
	lobbyID, playerID := c.lobbyID, c.playerID
	c.mu.Unlock()
	if lobbyID == "" {
		c.send(wire.NewError("not in a lobby"))
		return
	}
	reply := make(chan session.StartGameReply, 1)
	c.mgr.Inbox() <- session.StartGame{LobbyID: lobbyID, PlayerID: playerID, Reply: reply}
	res := <-reply
	if res.Err != nil {
		c.send(wire.NewError(res.Err.Error()))
		return
	}
	c.mu.Lock()
	c.game = res.Game
	c.lobbyID = ""
	c.mu.Unlock()
}

func (c *client) handleListLobbies() {
	reply := make(chan []wire.LobbyView, 1)
	c.mgr.Inbox() <- session.ListLobbies{Reply: reply}
	c.send(wire.NewLobbyList(<-reply))
}

func (c *client) handleRejoinGame(m wire.ClientMessage) {
	reply := make(chan session.RejoinGameReply, 1)
	c.mgr.Inbox() <- session.RejoinGame{GameID: m.GameID, PlayerID: m.PlayerID, Reply: reply}
	res := <-reply
	if res.Err != nil {
		c.send(wire.NewError(res.Err.Error()))
		return
	}
	c.mu.Lock()
	c.playerID = m.PlayerID
	c.game = res.Game
	c.mu.Unlock()
	res.Game.Inbox() <- session.Join{PlayerID: m.PlayerID, Outbox: c.out}
}

func (c *client) handleGameCommand(m wire.ClientMessage) {
	c.mu.Lock()
	game, playerID := c.game, c.playerID
	c.mu.Unlock()
	if game == nil {
		c.send(wire.NewError("not in a game"))
		return
	}
	var newUnitID string
	if m.Type == wire.TypeBuyUnit {
		newUnitID = uuid.NewString()
	}
	cmd, ok := wire.ToCommand(m, playerID, newUnitID, time.Now().UnixMilli())
	if !ok {
		c.send(wire.NewError("unknown message type"))
		return
	}
	game.Inbox() <- session.FromClient{PlayerID: playerID, Cmd: cmd}
}

func (c *client) leave() {
	c.mu.Lock()
	lobbyID, playerID, game := c.lobbyID, c.playerID, c.game
	c.mu.Unlock()
	if lobbyID != "" {
		c.mgr.Inbox() <- session.LeaveLobby{LobbyID: lobbyID, PlayerID: playerID}
	}
	if game != nil {
		game.Inbox() <- session.Leave{PlayerID: playerID}
	}
}
