// Package worldgen produces the terrain grid for a chosen map size and
// computes balanced starting positions. Generation is a pure function of
// (size, seed): the same pair always yields byte-identical tiles and
// starting positions, on server and on any replaying client.
package worldgen

import (
	"math"
	"math/rand"
	"sort"

	"github.com/palmietopia/server/internal/hexgrid"
	"github.com/palmietopia/server/internal/model"
)

// clusterTarget is the approximate size a seeded terrain cluster grows to
// via breadth-first neighbor expansion.
const clusterTarget = 6

// Generate builds the tile set for a map size, seeded deterministically.
func Generate(size model.MapSize, seed int64) []model.Tile {
	radius := size.Radius()
	rng := rand.New(rand.NewSource(seed))

	terrainByCoord := make(map[hexgrid.Coord]model.Terrain)
	for _, c := range hexgrid.All(radius) {
		terrainByCoord[c] = model.TerrainGrassland
	}

	growClusters(terrainByCoord, radius, rng, model.TerrainMountain, clusterCount(radius), clusterTarget)
	growClusters(terrainByCoord, radius, rng, model.TerrainForest, clusterCount(radius), clusterTarget)
	growClusters(terrainByCoord, radius, rng, model.TerrainDesert, clusterCount(radius)/2+1, clusterTarget)
	growClusters(terrainByCoord, radius, rng, model.TerrainWater, clusterCount(radius)/2+1, clusterTarget+2)

	coords := hexgrid.All(radius)
	tiles := make([]model.Tile, len(coords))
	for i, c := range coords {
		tiles[i] = model.Tile{Q: c.Q, R: c.R, Terrain: terrainByCoord[c]}
	}
	return tiles
}

// clusterCount scales the number of seeded clusters with map area so
// larger maps don't end up mostly grassland.
func clusterCount(radius int) int {
	n := radius
	if n < 1 {
		n = 1
	}
	return n
}

// growClusters seeds clusterCount random hexes with terrain and grows each
// by breadth-first neighbor expansion up to targetSize tiles, never
// overwriting a hex already claimed by an earlier cluster in this pass.
func growClusters(terrain map[hexgrid.Coord]model.Terrain, radius int, rng *rand.Rand, t model.Terrain, clusters, targetSize int) {
	all := hexgrid.All(radius)
	for i := 0; i < clusters; i++ {
		start := all[rng.Intn(len(all))]
		if terrain[start] != model.TerrainGrassland {
			continue
		}
		frontier := []hexgrid.Coord{start}
		claimed := map[hexgrid.Coord]bool{start: true}
		terrain[start] = t
		for len(claimed) < targetSize && len(frontier) > 0 {
			cur := frontier[0]
			frontier = frontier[1:]
			neighbors := cur.Neighbors()
			order := rng.Perm(len(neighbors))
			for _, idx := range order {
				n := neighbors[idx]
				if !hexgrid.Within(n, radius) || claimed[n] {
					continue
				}
				if terrain[n] != model.TerrainGrassland {
					continue
				}
				terrain[n] = t
				claimed[n] = true
				frontier = append(frontier, n)
				if len(claimed) >= targetSize {
					break
				}
			}
		}
	}
}

// StartingPositions computes N target directions around the map center
// separated by 2*pi/N, casts a ray toward each along the ideal radius
// (0.75*R), and selects the city-eligible tile nearest that ray subject
// to a minimum separation from every previously chosen start. The
// minimum is relaxed (R, then R-1, then R-2, ...) until a candidate is
// found.
func StartingPositions(tiles []model.Tile, radius, playerCount int) []hexgrid.Coord {
	eligible := make([]model.Tile, 0, len(tiles))
	for _, t := range tiles {
		if t.Terrain.CanFoundCity() {
			eligible = append(eligible, t)
		}
	}

	idealRadius := 0.75 * float64(radius)
	positions := make([]hexgrid.Coord, 0, playerCount)

	for i := 0; i < playerCount; i++ {
		angle := 2 * math.Pi * float64(i) / float64(playerCount)
		target := hexgrid.Coord{
			Q: int(math.Round(math.Cos(angle) * idealRadius)),
			R: int(math.Round(math.Sin(angle) * idealRadius)),
		}

		var chosen hexgrid.Coord
		found := false
		for minSep := radius; minSep >= 0 && !found; minSep-- {
			best := bestCandidate(eligible, target, positions, minSep)
			if best != nil {
				chosen = best.Coord()
				found = true
			}
		}
		if !found && len(eligible) > 0 {
			chosen = eligible[0].Coord()
			found = true
		}
		if found {
			positions = append(positions, chosen)
		}
	}
	return positions
}

// AdjacentLandTile returns a neighbor of center that is not Water, for
// placing a starting unit beside its capitol. Neighbors are scanned in
// the fixed hexgrid direction order so the choice is deterministic.
func AdjacentLandTile(tiles []model.Tile, center hexgrid.Coord) (hexgrid.Coord, bool) {
	byCoord := make(map[hexgrid.Coord]model.Tile, len(tiles))
	for _, t := range tiles {
		byCoord[t.Coord()] = t
	}
	for _, n := range center.Neighbors() {
		if t, ok := byCoord[n]; ok {
			if _, passable := t.Terrain.MovementCost(); passable {
				return n, true
			}
		}
	}
	return hexgrid.Coord{}, false
}

func bestCandidate(eligible []model.Tile, target hexgrid.Coord, taken []hexgrid.Coord, minSep int) *model.Tile {
	candidates := make([]model.Tile, 0, len(eligible))
	for _, t := range eligible {
		c := t.Coord()
		ok := true
		for _, p := range taken {
			if hexgrid.Distance(c, p) < minSep {
				ok = false
				break
			}
		}
		if ok {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		di := hexgrid.Distance(candidates[i].Coord(), target)
		dj := hexgrid.Distance(candidates[j].Coord(), target)
		if di != dj {
			return di < dj
		}
		// Deterministic tie-break: stable coordinate ordering.
		if candidates[i].Q != candidates[j].Q {
			return candidates[i].Q < candidates[j].Q
		}
		return candidates[i].R < candidates[j].R
	})
	return &candidates[0]
}
