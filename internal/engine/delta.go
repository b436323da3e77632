package engine

import "github.com/palmietopia/server/internal/model"

// Delta is one entry in the ordered, minimal change list Apply emits
// alongside a new GameState. Deltas must be applied in sequence to
// reproduce the transition; the wire layer (internal/wire) maps each
// concrete type to its JSON-tagged server message.
type Delta interface {
	deltaKind() string
}

type DeltaUnitMoved struct {
	UnitID            string
	ToQ, ToR          int
	MovementRemaining int
}

func (DeltaUnitMoved) deltaKind() string { return "UnitMoved" }

type DeltaCombatResult struct {
	AttackerID, DefenderID             string
	AttackerHP, DefenderHP             int
	DamageToAttacker, DamageToDefender int
	AttackerDied, DefenderDied         bool
	AttackerNewQ, AttackerNewR         *int
}

func (DeltaCombatResult) deltaKind() string { return "CombatResult" }

type DeltaUnitFortified struct {
	UnitID string
	NewHP  int
}

func (DeltaUnitFortified) deltaKind() string { return "UnitFortified" }

type DeltaUnitPurchased struct {
	Unit       model.Unit
	CityID     string
	PlayerGold int
}

func (DeltaUnitPurchased) deltaKind() string { return "UnitPurchased" }

// DeltaCitiesCaptured carries the full city list, since a capture can
// cascade (capitol capture transfers every city of the eliminated
// player) and a minimal per-city diff would be as large as the list
// itself most of the time.
type DeltaCitiesCaptured struct {
	Cities []model.City
}

func (DeltaCitiesCaptured) deltaKind() string { return "CitiesCaptured" }

type DeltaPlayerEliminated struct {
	PlayerID    string
	ConquerorID string
}

func (DeltaPlayerEliminated) deltaKind() string { return "PlayerEliminated" }

// DeltaTurnChanged carries everything a client needs to refresh local
// state at the start of a new turn: the new active index, fresh time
// banks, fresh gold, and the post-refresh unit/city lists (movement
// points and produced_this_turn reset).
type DeltaTurnChanged struct {
	CurrentTurn   int
	PlayerTimesMs []int64
	PlayerGold    []int
	Units         []model.Unit
	Cities        []model.City
}

func (DeltaTurnChanged) deltaKind() string { return "TurnChanged" }

type DeltaGameOver struct {
	WinnerID string
}

func (DeltaGameOver) deltaKind() string { return "GameOver" }
