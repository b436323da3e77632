package engine

import "github.com/palmietopia/server/internal/model"

// Apply validates cmd against state and, on success, returns a new state
// plus the ordered deltas that explain the transition. On rejection the
// original state is returned unchanged alongside a *Rejection error.
//
// Apply is a pure function: no field of state or cmd is read from
// anywhere but the arguments, and nothing here allocates randomness or
// touches a clock. Running the same command against the same state on
// two machines (or a server and a client replica) must produce
// byte-identical results.
func Apply(state model.GameState, cmd Command) (model.GameState, []Delta, error) {
	if state.Status == model.StatusVictory {
		return state, nil, reject(GameOver)
	}

	switch cmd.Type {
	case CmdMoveUnit:
		return applyMoveUnit(state, cmd)
	case CmdAttackUnit:
		return applyAttackUnit(state, cmd)
	case CmdFortifyUnit:
		return applyFortifyUnit(state, cmd)
	case CmdBuyUnit:
		return applyBuyUnit(state, cmd)
	case CmdEndTurn:
		return applyEndTurn(state, cmd)
	default:
		return state, nil, reject(NoSuchUnit)
	}
}

// isCurrentPlayer reports whether playerID is the one whose turn it is.
func isCurrentPlayer(state model.GameState, playerID string) bool {
	return state.ActivePlayer().ID == playerID
}

// finish runs the invariant check after every successful command,
// failing loudly (panicking) on internal corruption rather than letting
// bad state ship to clients.
func finish(state model.GameState, deltas []Delta) (model.GameState, []Delta, error) {
	if err := state.CheckInvariants(); err != nil {
		panic("palmietopia: invariant violated after a successful command: " + err.Error())
	}
	return state, deltas, nil
}
