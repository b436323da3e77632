package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/palmietopia/server/internal/clock"
	"github.com/palmietopia/server/internal/engine"
	"github.com/palmietopia/server/internal/model"
	"github.com/palmietopia/server/internal/persistence"
	"github.com/palmietopia/server/internal/wire"
)

// Msg is the union of messages a Game's actor loop accepts. Every
// mutation to a Game's state flows through here — sockets never touch
// the state directly.
type Msg interface{ isGameMsg() }

// Join subscribes a socket to a game's broadcasts, identified by the
// player id it has already authenticated as (via StartGame's roster or
// a successful RejoinGame).
type Join struct {
	PlayerID string
	Outbox   chan []wire.ServerMessage
	// Fresh marks a subscriber being handed to a just-started game
	// (StartGame's subscriber migration) rather than an existing player
	// reconnecting to one already in progress, so the right snapshot
	// message — GameStarted vs. GameRejoined — goes out.
	Fresh bool
}

func (Join) isGameMsg() {}

// Leave unsubscribes a socket. It does not affect the player's standing
// in the game — disconnects never eliminate a player.
type Leave struct{ PlayerID string }

func (Leave) isGameMsg() {}

// FromClient carries a validated command for the rules engine, tagged
// with the player id it is attributed to so a rejection can be routed
// back to just that socket.
type FromClient struct {
	PlayerID string
	Cmd      engine.Command
}

func (FromClient) isGameMsg() {}

// GetState is a synchronous, test-only query of the current state.
type GetState struct {
	Reply chan model.GameState
}

func (GetState) isGameMsg() {}

type timerFired struct{ generation int }

func (timerFired) isGameMsg() {}

type tick struct{}

func (tick) isGameMsg() {}

// Shutdown stops the game's actor loop and timer.
type Shutdown struct{}

func (Shutdown) isGameMsg() {}

// Game is the post-start container spec describes: a GameState, the
// sockets subscribed to it, and the scheduled timer wake for the active
// player's deadline.
type Game struct {
	ID string

	inbox       chan Msg
	state       model.GameState
	subscribers map[string]chan []wire.ServerMessage

	// players is the game's fixed roster, captured once at construction.
	// It never changes after the game starts (eliminated players stay in
	// the slice), so it is safe to read from outside the actor loop.
	players []model.Player

	sched   clock.Scheduler
	version int
	store   persistence.Store

	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	onEnded func(id string)
}

// NewGame starts a game's actor loop and its periodic TimeTick ticker,
// and arms the first turn-clock deadline.
func NewGame(parent context.Context, id string, initial model.GameState, logger *zap.Logger, store persistence.Store, onEnded func(string)) *Game {
	ctx, cancel := context.WithCancel(parent)
	g := &Game{
		ID:          id,
		inbox:       make(chan Msg, 64),
		state:       initial,
		subscribers: make(map[string]chan []wire.ServerMessage),
		players:     initial.Players,
		store:       store,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		onEnded:     onEnded,
	}
	g.state.TurnStartedAtMs = nowMs()
	go g.loop()
	go g.tickLoop()
	g.rescheduleTimer()
	return g
}

// Inbox exposes the message channel so the websocket layer (or tests)
// can drive the game.
func (g *Game) Inbox() chan<- Msg { return g.inbox }

// HasPlayer reports whether playerID is part of this game's roster.
func (g *Game) HasPlayer(playerID string) bool {
	for _, p := range g.players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

func nowMs() int64 { return time.Now().UnixMilli() }

func (g *Game) loop() {
	for {
		select {
		case <-g.ctx.Done():
			return
		case m := <-g.inbox:
			if g.dispatch(m) {
				return
			}
		}
	}
}

// dispatch handles one inbox message, recovering from a panic raised
// inside it (an invariant violation surfaced by finish) rather than
// letting one corrupted command take down the process — the session is
// logged and torn down instead. It reports whether the loop should
// stop.
func (g *Game) dispatch(m Msg) (stop bool) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("game session panicked, shutting down",
				zap.String("game_id", g.ID), zap.Any("panic", r))
			g.shutdown()
			stop = true
		}
	}()

	switch msg := m.(type) {
	case Join:
		g.subscribers[msg.PlayerID] = msg.Outbox
		view := wire.NewGameView(g.ID, g.state)
		if msg.Fresh {
			g.sendTo(msg.PlayerID, []wire.ServerMessage{wire.NewGameStarted(view)})
		} else {
			g.sendTo(msg.PlayerID, []wire.ServerMessage{wire.NewGameRejoined(view)})
		}

	case Leave:
		delete(g.subscribers, msg.PlayerID)

	case FromClient:
		g.apply(msg.PlayerID, msg.Cmd)

	case GetState:
		msg.Reply <- g.state.Clone()

	case timerFired:
		if msg.generation != g.sched.Generation() {
			break
		}
		g.apply(g.state.ActivePlayer().ID, engine.Command{
			Type:     engine.CmdEndTurn,
			PlayerID: g.state.ActivePlayer().ID,
			NowMs:    nowMs(),
		})

	case tick:
		g.broadcastTick()

	case Shutdown:
		g.shutdown()
		return true
	}
	return false
}

// tickLoop feeds a tick message into the inbox roughly once a second.
// It is a separate goroutine purely for timing; all state access still
// happens on the actor loop.
func (g *Game) tickLoop() {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-g.ctx.Done():
			return
		case <-t.C:
			select {
			case g.inbox <- tick{}:
			default:
			}
		}
	}
}

func (g *Game) apply(playerID string, cmd engine.Command) {
	next, deltas, err := engine.Apply(g.state, cmd)
	if err != nil {
		g.sendTo(playerID, []wire.ServerMessage{wire.RejectionMessage(err)})
		return
	}
	g.state = next
	g.broadcast(wire.DeltaMessages(deltas))

	turnChanged := false
	for _, d := range deltas {
		if _, ok := d.(engine.DeltaTurnChanged); ok {
			turnChanged = true
		}
	}

	if g.state.Status == model.StatusVictory {
		g.sched.Stop()
	} else if turnChanged {
		g.rescheduleTimer()
	}

	if turnChanged && g.store != nil {
		g.version++
		if err := g.store.Save(g.ctx, g.ID, g.version, g.state); err != nil {
			g.logger.Warn("failed to persist game snapshot", zap.String("game_id", g.ID), zap.Error(err))
		}
	}
}

func (g *Game) rescheduleTimer() {
	bank := g.state.PlayerTimesMs[g.state.CurrentTurn]
	delay := clock.DeadlineDelay(bank, g.state.TurnStartedAtMs, nowMs())
	g.sched.Schedule(delay, func(gen int) {
		select {
		case g.inbox <- timerFired{generation: gen}:
		case <-g.ctx.Done():
		}
	})
}

func (g *Game) broadcastTick() {
	idx := g.state.CurrentTurn
	remaining := clock.RemainingMs(g.state.PlayerTimesMs[idx], g.state.TurnStartedAtMs, nowMs())
	g.broadcast([]wire.ServerMessage{wire.NewTimeTick(g.ID, g.state.CurrentTurn, idx, remaining)})
}

func (g *Game) broadcast(msgs []wire.ServerMessage) {
	if len(msgs) == 0 {
		return
	}
	for id, ch := range g.subscribers {
		select {
		case ch <- msgs:
		default:
			g.logger.Warn("dropping slow game subscriber", zap.String("game_id", g.ID), zap.String("player_id", id))
			close(ch)
			delete(g.subscribers, id)
		}
	}
}

func (g *Game) sendTo(playerID string, msgs []wire.ServerMessage) {
	ch, ok := g.subscribers[playerID]
	if !ok {
		return
	}
	select {
	case ch <- msgs:
	default:
	}
}

func (g *Game) shutdown() {
	g.sched.Stop()
	for id, ch := range g.subscribers {
		close(ch)
		delete(g.subscribers, id)
	}
	g.cancel()
	if g.onEnded != nil {
		g.onEnded(g.ID)
	}
}
