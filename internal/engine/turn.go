package engine

import "github.com/palmietopia/server/internal/model"

func applyEndTurn(state model.GameState, cmd Command) (model.GameState, []Delta, error) {
	if !isCurrentPlayer(state, cmd.PlayerID) {
		return state, nil, reject(NotYourTurn)
	}

	next := state.Clone()

	curIdx := next.CurrentTurn
	elapsed := cmd.NowMs - next.TurnStartedAtMs
	bank := next.PlayerTimesMs[curIdx] - elapsed
	if bank < 0 {
		bank = 0
	}
	if bank > 0 {
		bank += next.IncrementMs
	}
	next.PlayerTimesMs[curIdx] = bank

	nextIdx := advancePlayer(next, curIdx)
	next.CurrentTurn = nextIdx
	next.TurnStartedAtMs = cmd.NowMs

	nextPlayerID := next.Players[nextIdx].ID
	for i := range next.Units {
		if next.Units[i].OwnerID == nextPlayerID {
			next.Units[i].MovementRemaining = next.Units[i].Kind.Stats().Move
		}
	}
	for i := range next.Cities {
		if next.Cities[i].OwnerID == nextPlayerID {
			next.Cities[i].ProducedThisTurn = false
		}
	}
	next.PlayerGold[nextIdx] += model.TurnIncomeGold

	deltas := []Delta{DeltaTurnChanged{
		CurrentTurn:   next.CurrentTurn,
		PlayerTimesMs: append([]int64(nil), next.PlayerTimesMs...),
		PlayerGold:    append([]int(nil), next.PlayerGold...),
		Units:         append([]model.Unit(nil), next.Units...),
		Cities:        append([]model.City(nil), next.Cities...),
	}}

	return finish(next, deltas)
}

// advancePlayer returns the roster index of the next non-eliminated
// player after cur, cycling the full roster.
func advancePlayer(state model.GameState, cur int) int {
	n := len(state.Players)
	for i := 1; i <= n; i++ {
		candidate := (cur + i) % n
		if !state.IsEliminated(state.Players[candidate].ID) {
			return candidate
		}
	}
	return cur
}
