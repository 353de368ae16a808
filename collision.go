package main

import "math"

// cellRange returns the inclusive range of grid cells covered by the box
// [x, x+size) × [y, y+size). A box touching a cell boundary exactly does
// not count as covering the next cell.
func cellRange(x, y, size float64) (minCol, maxCol, minRow, maxRow int) {
	const edge = 1e-9
	minCol = int(math.Floor(x / TileSize))
	maxCol = int(math.Floor((x + size - edge) / TileSize))
	minRow = int(math.Floor(y / TileSize))
	maxRow = int(math.Floor((y + size - edge) / TileSize))
	return
}

// GridBlocked reports whether the box at (x,y) lies outside the grid or
// covers any impassable cell.
func GridBlocked(grid [][]uint8, x, y, size float64) bool {
	if x < 0 || y < 0 || x+size > WorldWidth || y+size > WorldHeight {
		return true
	}
	minCol, maxCol, minRow, maxRow := cellRange(x, y, size)
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			if !Passable(grid[row][col]) {
				return true
			}
		}
	}
	return false
}

// BoxesOverlap is an open-interval AABB intersection: boxes that merely
// touch edges do not overlap.
func BoxesOverlap(ax, ay, asize, bx, by, bsize float64) bool {
	return ax < bx+bsize && bx < ax+asize &&
		ay < by+bsize && by < ay+asize
}

// TankBlocked reports whether the box at (x,y) overlaps any live tank
// other than self.
func TankBlocked(tanks map[string]*Tank, selfID string, x, y, size float64) bool {
	for _, other := range tanks {
		if other.ID == selfID || !other.Alive {
			continue
		}
		if BoxesOverlap(x, y, size, other.X, other.Y, TankSize) {
			return true
		}
	}
	return false
}

// CellAt returns the grid cell containing the point, or (-1,-1) when the
// point is outside the grid.
func CellAt(x, y float64) (col, row int) {
	if x < 0 || y < 0 || x >= WorldWidth || y >= WorldHeight {
		return -1, -1
	}
	return int(x / TileSize), int(y / TileSize)
}
