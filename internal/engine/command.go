// Package engine is the deterministic rules engine: a pure function of
// (GameState, Command) to (GameState, []Delta, error). It performs no
// I/O, reads no wall clock internally (a command that needs "now" carries
// it explicitly), and uses no randomness. The same engine runs
// unmodified inside the authoritative server and inside an optimistic
// client replica.
package engine

import "github.com/palmietopia/server/internal/model"

// CommandType names one of the five player actions the rules engine
// accepts.
type CommandType string

const (
	CmdMoveUnit    CommandType = "MoveUnit"
	CmdAttackUnit  CommandType = "AttackUnit"
	CmdFortifyUnit CommandType = "FortifyUnit"
	CmdBuyUnit     CommandType = "BuyUnit"
	CmdEndTurn     CommandType = "EndTurn"
)

// Command is the union of fields every command might need. Only the
// fields relevant to Type are read.
type Command struct {
	Type     CommandType
	PlayerID string

	UnitID string
	ToQ    int
	ToR    int

	AttackerID string
	DefenderID string

	CityID string
	Kind   model.UnitKind

	// NowMs is the caller-supplied wall-clock reading in unix
	// milliseconds. Only EndTurn reads it, to settle the chess clock;
	// every other command ignores it. Passing it explicitly — rather
	// than calling time.Now() inside the engine — is what keeps Apply a
	// pure function: the session layer (or a synthetic auto-end-turn
	// scheduler) decides what "now" means.
	NowMs int64
}
