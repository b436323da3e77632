package engine

import "github.com/palmietopia/server/internal/model"

// tryCapture checks whether (q, r) holds a city owned by a player other
// than newOwnerID and, if so, transfers it. If that city is a capitol,
// the old owner is eliminated outright: every remaining city of theirs
// transfers to newOwnerID and loses capitol status, every unit of
// theirs is removed from the board, and if exactly one player then
// remains the game ends in Victory.
//
// It mutates state in place (the caller already owns a working copy)
// and returns the deltas this capture produced, in order: CitiesCaptured,
// then PlayerEliminated, then GameOver.
func tryCapture(state *model.GameState, q, r int, newOwnerID string) []Delta {
	city, ok := state.CityAt(q, r)
	if !ok || city.OwnerID == newOwnerID {
		return nil
	}

	oldOwnerID := city.OwnerID
	wasCapitol := city.IsCapitol

	if !wasCapitol {
		for i := range state.Cities {
			if state.Cities[i].Q == q && state.Cities[i].R == r {
				state.Cities[i].OwnerID = newOwnerID
			}
		}
		return []Delta{DeltaCitiesCaptured{Cities: append([]model.City(nil), state.Cities...)}}
	}

	// Every city the eliminated player held transfers, losing capitol
	// status unconditionally; only the capturing player's own original
	// capitol keeps that flag.
	for i := range state.Cities {
		if state.Cities[i].OwnerID == oldOwnerID {
			state.Cities[i].OwnerID = newOwnerID
			state.Cities[i].IsCapitol = false
		}
	}

	kept := make([]model.Unit, 0, len(state.Units))
	for _, u := range state.Units {
		if u.OwnerID != oldOwnerID {
			kept = append(kept, u)
		}
	}
	state.Units = kept

	if state.EliminatedIDs == nil {
		state.EliminatedIDs = map[string]bool{}
	}
	state.EliminatedIDs[oldOwnerID] = true

	deltas := []Delta{
		DeltaCitiesCaptured{Cities: append([]model.City(nil), state.Cities...)},
		DeltaPlayerEliminated{PlayerID: oldOwnerID, ConquerorID: newOwnerID},
	}

	remaining := state.RemainingPlayers()
	if len(remaining) == 1 {
		state.Status = model.StatusVictory
		state.WinnerID = remaining[0]
		deltas = append(deltas, DeltaGameOver{WinnerID: remaining[0]})
	}

	return deltas
}
