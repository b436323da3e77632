package engine

import (
	"github.com/palmietopia/server/internal/hexgrid"
	"github.com/palmietopia/server/internal/model"
)

func applyAttackUnit(state model.GameState, cmd Command) (model.GameState, []Delta, error) {
	if !isCurrentPlayer(state, cmd.PlayerID) {
		return state, nil, reject(NotYourTurn)
	}

	attacker, atkIdx, ok := state.UnitByID(cmd.AttackerID)
	if !ok {
		return state, nil, reject(NoSuchUnit)
	}
	if attacker.OwnerID != cmd.PlayerID {
		return state, nil, reject(NotOwner)
	}
	defender, defIdx, ok := state.UnitByID(cmd.DefenderID)
	if !ok {
		return state, nil, reject(NoSuchUnit)
	}
	if defender.OwnerID == cmd.PlayerID {
		return state, nil, reject(SelfAttack)
	}
	if attacker.MovementRemaining <= 0 {
		return state, nil, reject(InsufficientMovement)
	}

	dist := hexgrid.Distance(attacker.Coord(), defender.Coord())
	attackerRange := attacker.Kind.Stats().Range
	if dist < 1 || dist > attackerRange {
		return state, nil, reject(OutOfRange)
	}
	melee := attackerRange == 1

	next := state.Clone()

	// Both HPs are computed from the pre-combat stats and applied
	// simultaneously: a melee exchange can kill both units at once, and
	// the counter-strike lands regardless of whether the defender dies.
	damage := attacker.Kind.Stats().Attack * 30 / (30 + next.EffectiveDefense(defender))
	defenderHP := defender.HP - damage
	defenderDied := defenderHP <= 0
	if defenderDied {
		defenderHP = 0
	}

	attackerHP := attacker.HP
	var damageToAttacker int
	attackerDied := false
	if melee {
		damageToAttacker = defender.Kind.Stats().Attack * 30 / (30 + attacker.Kind.Stats().Defense) / 2
		attackerHP -= damageToAttacker
		attackerDied = attackerHP <= 0
		if attackerDied {
			attackerHP = 0
		}
	}

	next.Units[atkIdx].MovementRemaining = 0
	next.Units[atkIdx].HP = attackerHP
	next.Units[defIdx].HP = defenderHP

	deltas := []Delta{DeltaCombatResult{
		AttackerID:       cmd.AttackerID,
		DefenderID:       cmd.DefenderID,
		AttackerHP:       attackerHP,
		DefenderHP:       defenderHP,
		DamageToAttacker: damageToAttacker,
		DamageToDefender: damage,
		AttackerDied:     attackerDied,
		DefenderDied:     defenderDied,
	}}

	if attackerDied && defenderDied {
		next.Units = removeUnits(next.Units, cmd.AttackerID, cmd.DefenderID)
	} else if attackerDied {
		next.Units = removeUnit(next.Units, atkIdx)
	} else if defenderDied {
		next.Units = removeUnit(next.Units, defIdx)
		if melee {
			toQ, toR := defender.Q, defender.R
			for i := range next.Units {
				if next.Units[i].ID == cmd.AttackerID {
					next.Units[i].Q = toQ
					next.Units[i].R = toR
					deltas[0] = withAttackerRelocation(deltas[0].(DeltaCombatResult), toQ, toR)
					deltas = append(deltas, tryCapture(&next, toQ, toR, cmd.PlayerID)...)
					break
				}
			}
		}
	}

	return finish(next, deltas)
}

func removeUnit(units []model.Unit, idx int) []model.Unit {
	out := make([]model.Unit, 0, len(units)-1)
	out = append(out, units[:idx]...)
	out = append(out, units[idx+1:]...)
	return out
}

// removeUnits drops both named units, for the simultaneous-death case
// where index-based removal would have to account for the first
// removal shifting the second index.
func removeUnits(units []model.Unit, idA, idB string) []model.Unit {
	out := make([]model.Unit, 0, len(units)-2)
	for _, u := range units {
		if u.ID == idA || u.ID == idB {
			continue
		}
		out = append(out, u)
	}
	return out
}

func withAttackerRelocation(d DeltaCombatResult, q, r int) DeltaCombatResult {
	d.AttackerNewQ = &q
	d.AttackerNewR = &r
	return d
}
