// Package model holds the Palmietopia domain types: players, tiles,
// cities, units, and the GameState aggregate. Nothing here performs I/O,
// reads the wall clock, or calls into randomness — it is plain data plus
// the lookup/derivation helpers the rules engine needs.
package model

import "github.com/palmietopia/server/internal/hexgrid"

// MapSize is one of the five supported board sizes.
type MapSize string

const (
	MapTiny   MapSize = "tiny"
	MapSmall  MapSize = "small"
	MapMedium MapSize = "medium"
	MapLarge  MapSize = "large"
	MapHuge   MapSize = "huge"
)

// Radius returns the hex radius for a map size.
func (m MapSize) Radius() int {
	switch m {
	case MapTiny:
		return 2
	case MapSmall:
		return 4
	case MapMedium:
		return 6
	case MapLarge:
		return 8
	case MapHuge:
		return 10
	default:
		return 0
	}
}

// Valid reports whether m is one of the five named sizes.
func (m MapSize) Valid() bool {
	return m.Radius() > 0
}

// PlayerColor is drawn from the fixed ordered palette, assigned by join
// order.
type PlayerColor string

const (
	ColorRed    PlayerColor = "red"
	ColorBlue   PlayerColor = "blue"
	ColorGreen  PlayerColor = "green"
	ColorYellow PlayerColor = "yellow"
	ColorPurple PlayerColor = "purple"
)

// Palette is the fixed join-order color assignment.
var Palette = []PlayerColor{ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple}

// ColorForIndex returns the color assigned to the player at the given
// join index.
func ColorForIndex(index int) PlayerColor {
	return Palette[index%len(Palette)]
}

// Player is a stable participant identity.
type Player struct {
	ID    string
	Name  string
	Color PlayerColor
}

// Terrain is the kind of ground a tile is made of.
type Terrain string

const (
	TerrainGrassland Terrain = "grassland"
	TerrainForest    Terrain = "forest"
	TerrainMountain  Terrain = "mountain"
	TerrainWater     Terrain = "water"
	TerrainDesert    Terrain = "desert"
)

// MovementCost returns the land movement cost of the terrain and whether
// it is passable at all.
func (t Terrain) MovementCost() (cost int, passable bool) {
	switch t {
	case TerrainGrassland, TerrainForest, TerrainDesert:
		return 1, true
	case TerrainMountain:
		return 2, true
	case TerrainWater:
		return 0, false
	default:
		return 0, false
	}
}

// CanFoundCity reports whether a city may be founded on this terrain.
func (t Terrain) CanFoundCity() bool {
	switch t {
	case TerrainGrassland, TerrainForest, TerrainDesert:
		return true
	default:
		return false
	}
}

// Tile is a single immutable hex on the board.
type Tile struct {
	Q, R    int
	Terrain Terrain
}

func (t Tile) Coord() hexgrid.Coord { return hexgrid.Coord{Q: t.Q, R: t.R} }

// City never moves and is never destroyed, only recaptured.
type City struct {
	ID               string
	OwnerID          string
	Q, R             int
	Name             string
	IsCapitol        bool
	ProducedThisTurn bool
}

func (c City) Coord() hexgrid.Coord { return hexgrid.Coord{Q: c.Q, R: c.R} }

// UnitKind is one of the three purchasable unit types.
type UnitKind string

const (
	UnitConscript UnitKind = "conscript"
	UnitKnight    UnitKind = "knight"
	UnitBowman    UnitKind = "bowman"
)

// UnitStats are the base, level-independent combat numbers for a kind.
type UnitStats struct {
	Cost    int
	HP      int
	Attack  int
	Defense int
	Move    int
	Range   int
}

var unitStats = map[UnitKind]UnitStats{
	UnitConscript: {Cost: 25, HP: 50, Attack: 25, Defense: 15, Move: 2, Range: 1},
	UnitKnight:    {Cost: 40, HP: 50, Attack: 35, Defense: 10, Move: 3, Range: 1},
	UnitBowman:    {Cost: 25, HP: 40, Attack: 22, Defense: 10, Move: 2, Range: 2},
}

// Stats returns the base stats for a unit kind. The zero value is
// returned for an unrecognized kind; callers validate kind separately.
func (k UnitKind) Stats() UnitStats {
	return unitStats[k]
}

// Valid reports whether k is one of the three known kinds.
func (k UnitKind) Valid() bool {
	_, ok := unitStats[k]
	return ok
}

// Unit is a mobile combatant owned by a player.
type Unit struct {
	ID                string
	OwnerID           string
	Kind              UnitKind
	Q, R              int
	HP, MaxHP         int
	MovementRemaining int
}

func (u Unit) Coord() hexgrid.Coord { return hexgrid.Coord{Q: u.Q, R: u.R} }

// NewUnit builds a fresh, full-health unit of the given kind at (q, r),
// with base movement already available.
func NewUnit(id, ownerID string, kind UnitKind, q, r int) Unit {
	stats := kind.Stats()
	return Unit{
		ID:                id,
		OwnerID:           ownerID,
		Kind:              kind,
		Q:                 q,
		R:                 r,
		HP:                stats.HP,
		MaxHP:             stats.HP,
		MovementRemaining: stats.Move,
	}
}
