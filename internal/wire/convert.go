package wire

import "github.com/palmietopia/server/internal/engine"

// ToCommand translates a decoded ClientMessage into an engine.Command.
// playerID is the id bound to this socket by the session layer (never
// trusted from the frame itself). newUnitID, when non-empty, is a
// pre-generated id for commands that create a new unit (BuyUnit);
// Apply never generates ids itself to stay pure.
func ToCommand(m ClientMessage, playerID, newUnitID string, nowMs int64) (engine.Command, bool) {
	switch m.Type {
	case TypeEndTurn:
		return engine.Command{Type: engine.CmdEndTurn, PlayerID: playerID, NowMs: nowMs}, true
	case TypeMoveUnit:
		return engine.Command{Type: engine.CmdMoveUnit, PlayerID: playerID, UnitID: m.UnitID, ToQ: m.ToQ, ToR: m.ToR}, true
	case TypeAttackUnit:
		return engine.Command{Type: engine.CmdAttackUnit, PlayerID: playerID, AttackerID: m.AttackerID, DefenderID: m.DefenderID}, true
	case TypeFortifyUnit:
		return engine.Command{Type: engine.CmdFortifyUnit, PlayerID: playerID, UnitID: m.UnitID}, true
	case TypeBuyUnit:
		return engine.Command{Type: engine.CmdBuyUnit, PlayerID: playerID, CityID: m.CityID, Kind: m.UnitType, UnitID: newUnitID}, true
	default:
		return engine.Command{}, false
	}
}

// DeltaMessages translates the ordered deltas a successful Apply call
// produced into the wire messages every subscriber of a game receives.
func DeltaMessages(deltas []engine.Delta) []ServerMessage {
	out := make([]ServerMessage, 0, len(deltas))
	for _, d := range deltas {
		switch delta := d.(type) {
		case engine.DeltaUnitMoved:
			out = append(out, UnitMovedMsg{
				Type:              TypeUnitMoved,
				UnitID:            delta.UnitID,
				ToQ:               delta.ToQ,
				ToR:               delta.ToR,
				MovementRemaining: delta.MovementRemaining,
			})
		case engine.DeltaCombatResult:
			out = append(out, CombatResultMsg{
				Type:             TypeCombatResult,
				AttackerID:       delta.AttackerID,
				DefenderID:       delta.DefenderID,
				AttackerHP:       delta.AttackerHP,
				DefenderHP:       delta.DefenderHP,
				DamageToAttacker: delta.DamageToAttacker,
				DamageToDefender: delta.DamageToDefender,
				AttackerDied:     delta.AttackerDied,
				DefenderDied:     delta.DefenderDied,
				AttackerNewQ:     delta.AttackerNewQ,
				AttackerNewR:     delta.AttackerNewR,
			})
		case engine.DeltaUnitFortified:
			out = append(out, UnitFortifiedMsg{Type: TypeUnitFortified, UnitID: delta.UnitID, NewHP: delta.NewHP})
		case engine.DeltaUnitPurchased:
			out = append(out, UnitPurchasedMsg{Type: TypeUnitPurchased, Unit: delta.Unit, CityID: delta.CityID, PlayerGold: delta.PlayerGold})
		case engine.DeltaCitiesCaptured:
			out = append(out, CitiesCapturedMsg{Type: TypeCitiesCaptured, Cities: delta.Cities})
		case engine.DeltaPlayerEliminated:
			out = append(out, PlayerEliminatedMsg{Type: TypePlayerEliminated, PlayerID: delta.PlayerID, ConquerorID: delta.ConquerorID})
		case engine.DeltaTurnChanged:
			out = append(out, TurnChangedMsg{
				Type:          TypeTurnChanged,
				CurrentTurn:   delta.CurrentTurn,
				PlayerTimesMs: delta.PlayerTimesMs,
				PlayerGold:    delta.PlayerGold,
				Units:         delta.Units,
				Cities:        delta.Cities,
			})
		case engine.DeltaGameOver:
			out = append(out, GameOverMsg{Type: TypeGameOver, WinnerID: delta.WinnerID})
		}
	}
	return out
}

// RejectionMessage renders an engine rejection as the human-readable
// Error frame the offending socket receives.
func RejectionMessage(err error) ServerMessage {
	if rej, ok := err.(*engine.Rejection); ok {
		return NewError(rej.Error())
	}
	return NewError(err.Error())
}
