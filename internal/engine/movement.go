package engine

import (
	"github.com/palmietopia/server/internal/hexgrid"
	"github.com/palmietopia/server/internal/model"
)

func applyMoveUnit(state model.GameState, cmd Command) (model.GameState, []Delta, error) {
	if !isCurrentPlayer(state, cmd.PlayerID) {
		return state, nil, reject(NotYourTurn)
	}

	unit, idx, ok := state.UnitByID(cmd.UnitID)
	if !ok {
		return state, nil, reject(NoSuchUnit)
	}
	if unit.OwnerID != cmd.PlayerID {
		return state, nil, reject(NotOwner)
	}

	from := hexgrid.Coord{Q: unit.Q, R: unit.R}
	to := hexgrid.Coord{Q: cmd.ToQ, R: cmd.ToR}
	if hexgrid.Distance(from, to) != 1 {
		return state, nil, reject(OutOfRange)
	}

	tile, ok := state.TileAt(cmd.ToQ, cmd.ToR)
	if !ok {
		return state, nil, reject(Impassable)
	}
	cost, passable := tile.Terrain.MovementCost()
	if !passable {
		return state, nil, reject(Impassable)
	}
	if _, occupied := state.UnitAt(cmd.ToQ, cmd.ToR); occupied {
		return state, nil, reject(Occupied)
	}
	if unit.MovementRemaining < cost {
		return state, nil, reject(InsufficientMovement)
	}

	next := state.Clone()
	next.Units[idx].Q = cmd.ToQ
	next.Units[idx].R = cmd.ToR
	next.Units[idx].MovementRemaining -= cost

	deltas := []Delta{DeltaUnitMoved{
		UnitID:            cmd.UnitID,
		ToQ:               cmd.ToQ,
		ToR:               cmd.ToR,
		MovementRemaining: next.Units[idx].MovementRemaining,
	}}
	deltas = append(deltas, tryCapture(&next, cmd.ToQ, cmd.ToR, cmd.PlayerID)...)

	return finish(next, deltas)
}
