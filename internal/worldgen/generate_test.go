package worldgen

import (
	"testing"

	"github.com/palmietopia/server/internal/hexgrid"
	"github.com/palmietopia/server/internal/model"
)

func TestGenerateIsPureInSizeAndSeed(t *testing.T) {
	a := Generate(model.MapMedium, 42)
	b := Generate(model.MapMedium, 42)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("tile %d differs between identical-seed runs: %+v vs %+v", i, a[i], b[i])
		}
	}

	c := Generate(model.MapMedium, 43)
	differs := false
	for i := range a {
		if a[i].Terrain != c[i].Terrain {
			differs = true
			break
		}
	}
	if !differs {
		t.Fatalf("expected different seeds to produce different terrain")
	}
}

func TestGenerateProducesCorrectTileCount(t *testing.T) {
	for size, radius := range map[model.MapSize]int{
		model.MapTiny:   2,
		model.MapSmall:  4,
		model.MapMedium: 6,
		model.MapLarge:  8,
		model.MapHuge:   10,
	} {
		tiles := Generate(size, 7)
		if want := hexgrid.TileCount(radius); len(tiles) != want {
			t.Fatalf("%s: got %d tiles, want %d", size, len(tiles), want)
		}
	}
}

func TestGenerateHasNoDuplicateCoordinates(t *testing.T) {
	tiles := Generate(model.MapLarge, 99)
	seen := make(map[hexgrid.Coord]bool, len(tiles))
	for _, t := range tiles {
		c := t.Coord()
		if seen[c] {
			panic("duplicate coordinate")
		}
		seen[c] = true
	}
}

func TestStartingPositionsAreSeparatedAndEligible(t *testing.T) {
	radius := 6
	tiles := Generate(model.MapMedium, 11)
	for _, n := range []int{2, 3, 4, 5} {
		positions := StartingPositions(tiles, radius, n)
		if len(positions) != n {
			t.Fatalf("n=%d: got %d starting positions, want %d", n, len(positions), n)
		}
		byCoord := make(map[hexgrid.Coord]model.Tile, len(tiles))
		for _, tl := range tiles {
			byCoord[tl.Coord()] = tl
		}
		for _, p := range positions {
			tile, ok := byCoord[p]
			if !ok || !tile.Terrain.CanFoundCity() {
				t.Fatalf("n=%d: starting position %+v is not city-eligible", n, p)
			}
		}
		for i := range positions {
			for j := range positions {
				if i == j {
					continue
				}
				if positions[i] == positions[j] {
					t.Fatalf("n=%d: duplicate starting position %+v", n, positions[i])
				}
			}
		}
	}
}

func TestAdjacentLandTileSkipsWater(t *testing.T) {
	tiles := []model.Tile{
		{Q: 0, R: 0, Terrain: model.TerrainGrassland},
		{Q: 1, R: 0, Terrain: model.TerrainWater},
		{Q: 0, R: -1, Terrain: model.TerrainWater},
		{Q: -1, R: 0, Terrain: model.TerrainWater},
		{Q: 0, R: 1, Terrain: model.TerrainWater},
		{Q: 1, R: -1, Terrain: model.TerrainWater},
		{Q: -1, R: 1, Terrain: model.TerrainForest},
	}
	got, ok := AdjacentLandTile(tiles, hexgrid.Coord{Q: 0, R: 0})
	if !ok {
		t.Fatalf("expected a land neighbor")
	}
	if got != (hexgrid.Coord{Q: -1, R: 1}) {
		t.Fatalf("got %+v, want (-1,1)", got)
	}
}
