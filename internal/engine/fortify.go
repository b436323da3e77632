package engine

import "github.com/palmietopia/server/internal/model"

func applyFortifyUnit(state model.GameState, cmd Command) (model.GameState, []Delta, error) {
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
	if unit.MovementRemaining < unit.Kind.Stats().Move {
		return state, nil, reject(AlreadyActed)
	}
	if unit.HP >= unit.MaxHP {
		return state, nil, reject(FullHealth)
	}

	next := state.Clone()
	healed := unit.HP + unit.MaxHP/4
	if healed > unit.MaxHP {
		healed = unit.MaxHP
	}
	next.Units[idx].HP = healed
	next.Units[idx].MovementRemaining = 0

	deltas := []Delta{DeltaUnitFortified{UnitID: cmd.UnitID, NewHP: healed}}
	return finish(next, deltas)
}
