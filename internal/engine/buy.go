package engine

import "github.com/palmietopia/server/internal/model"

func applyBuyUnit(state model.GameState, cmd Command) (model.GameState, []Delta, error) {
	if !isCurrentPlayer(state, cmd.PlayerID) {
		return state, nil, reject(NotYourTurn)
	}
	if !cmd.Kind.Valid() {
		return state, nil, reject(NoSuchUnit)
	}

	city, cityIdx, ok := state.CityByID(cmd.CityID)
	if !ok {
		return state, nil, reject(NoSuchCity)
	}
	if city.OwnerID != cmd.PlayerID {
		return state, nil, reject(NotOwner)
	}
	if city.ProducedThisTurn {
		return state, nil, reject(AlreadyProduced)
	}
	if _, occupied := state.UnitAt(city.Q, city.R); occupied {
		return state, nil, reject(CityOccupied)
	}

	playerIdx, _ := state.PlayerIndex(cmd.PlayerID)
	cost := cmd.Kind.Stats().Cost
	if state.PlayerGold[playerIdx] < cost {
		return state, nil, reject(InsufficientGold)
	}

	next := state.Clone()
	next.PlayerGold[playerIdx] -= cost
	next.Cities[cityIdx].ProducedThisTurn = true

	unit := model.NewUnit(cmd.UnitID, cmd.PlayerID, cmd.Kind, city.Q, city.R)
	unit.MovementRemaining = 0
	next.Units = append(next.Units, unit)

	deltas := []Delta{DeltaUnitPurchased{
		Unit:       unit,
		CityID:     cmd.CityID,
		PlayerGold: next.PlayerGold[playerIdx],
	}}
	return finish(next, deltas)
}
