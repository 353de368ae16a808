package main

const (
	TileSize    = 32.0
	GridCols    = 26
	GridRows    = 26
	WorldWidth  = TileSize * GridCols
	WorldHeight = TileSize * GridRows
)

// Tile material codes. Only brick and base cells ever change (to empty),
// via projectile impact.
const (
	TileEmpty uint8 = 0
	TileBrick uint8 = 1
	TileSteel uint8 = 2
	TileWater uint8 = 3
	TileTrees uint8 = 4
	TileBase  uint8 = 5
)

// Passable reports whether a tank or projectile may occupy a cell of the
// given material. Trees are passable but rendered above units.
func Passable(material uint8) bool {
	return material == TileEmpty || material == TileTrees
}

// Point is a pixel position in the arena (top-left of a bounding box for
// tanks, center for projectiles and spawn points).
type Point struct {
	X float64
	Y float64
}

// Arena is the parsed map resource consumed by a Game: terrain plus spawn
// point lists. The Game defensively copies the grid on init and never
// mutates the Arena itself.
type Arena struct {
	Name         string
	Grid         [][]uint8 // [row][col]
	PlayerSpawns []Point   // coop/shared human spawn slots, join order
	DMSpawns     []Point   // deathmatch respawn candidates
	EnemySpawns  []Point   // classic enemy entry points
	Base         Point     // top-left of the base cell, coop only
	HasBase      bool
}

// CopyGrid returns a deep copy of the terrain grid.
func (a *Arena) CopyGrid() [][]uint8 {
	grid := make([][]uint8, len(a.Grid))
	for i, row := range a.Grid {
		grid[i] = make([]uint8, len(row))
		copy(grid[i], row)
	}
	return grid
}

// arenaLayout is the default 26x26 terrain. Legend:
// '.' empty, '#' brick, '@' steel, '~' water, '%' trees, 'B' base.
var arenaLayout = []string{
	"..........................",
	"..........................",
	"..##..##..##..##..##..##..",
	"..##..##..##..##..##..##..",
	"..##..##..##..##..##..##..",
	"..##..##..####..##..##..##",
	"..##..##..####..##..##..##",
	"..##..##...##...##..##....",
	"..........................",
	"....##....@@@@....##......",
	"~~..##..........##..##..~~",
	"~~......##..##......##..~~",
	"....@@..##..##..@@........",
	"....@@..##..##..@@........",
	"........##..##............",
	"..##....##..##....##..%%%%",
	"..##..............##..%%%%",
	"..##..##...##...##..##%%%%",
	"..##..##..####..##..##....",
	"..##..##..####..##..##....",
	"..##..##..####..##..##....",
	"..........####............",
	"..##..##..........##..##..",
	"..##..##...###....##..##..",
	"...........#B#............",
	"...........###............",
}

// tankSpawn returns the top-left position for a tank centered on tile
// (col,row), keeping the box inside the cell.
func tankSpawn(col, row int) Point {
	return Point{
		X: float64(col)*TileSize + (TileSize-TankSize)/2,
		Y: float64(row)*TileSize + (TileSize-TankSize)/2,
	}
}

// DefaultArena builds the built-in arena from the string layout.
func DefaultArena() *Arena {
	a := &Arena{
		Name: "scrapyard",
		Grid: make([][]uint8, GridRows),
		PlayerSpawns: []Point{
			tankSpawn(8, 24), tankSpawn(16, 24), tankSpawn(6, 24), tankSpawn(18, 24),
		},
		DMSpawns: []Point{
			tankSpawn(0, 0), tankSpawn(25, 0), tankSpawn(0, 21), tankSpawn(25, 21),
			tankSpawn(12, 8), tankSpawn(2, 8), tankSpawn(25, 14),
		},
		EnemySpawns: []Point{
			tankSpawn(0, 0), tankSpawn(12, 0), tankSpawn(25, 0),
		},
	}
	for r := 0; r < GridRows; r++ {
		a.Grid[r] = make([]uint8, GridCols)
		if r >= len(arenaLayout) {
			continue
		}
		line := arenaLayout[r]
		for c := 0; c < GridCols && c < len(line); c++ {
			switch line[c] {
			case '#':
				a.Grid[r][c] = TileBrick
			case '@':
				a.Grid[r][c] = TileSteel
			case '~':
				a.Grid[r][c] = TileWater
			case '%':
				a.Grid[r][c] = TileTrees
			case 'B':
				a.Grid[r][c] = TileBase
				a.Base = Point{X: float64(c) * TileSize, Y: float64(r) * TileSize}
				a.HasBase = true
			}
		}
	}
	return a
}

// EmptyArena returns an all-empty arena with the default spawn lists.
// Used by tests that need full control over terrain.
func EmptyArena() *Arena {
	a := DefaultArena()
	for r := range a.Grid {
		for c := range a.Grid[r] {
			a.Grid[r][c] = TileEmpty
		}
	}
	a.HasBase = false
	return a
}
