package main

import "testing"

func TestBoxesOverlap(t *testing.T) {
	// Clear overlap
	if !BoxesOverlap(0, 0, 28, 10, 10, 28) {
		t.Error("boxes should overlap")
	}
	// Edge contact only — open interval, no overlap
	if BoxesOverlap(0, 0, 28, 28, 0, 28) {
		t.Error("touching boxes should not overlap")
	}
	// Disjoint
	if BoxesOverlap(0, 0, 28, 100, 100, 28) {
		t.Error("distant boxes should not overlap")
	}
	// Same position
	if !BoxesOverlap(5, 5, 28, 5, 5, 28) {
		t.Error("identical boxes should overlap")
	}
}

func TestGridBlockedBounds(t *testing.T) {
	a := EmptyArena()
	if GridBlocked(a.Grid, -1, 0, TankSize) == false {
		t.Error("negative X should be blocked")
	}
	if GridBlocked(a.Grid, WorldWidth-TankSize+1, 0, TankSize) == false {
		t.Error("box past the right edge should be blocked")
	}
	if GridBlocked(a.Grid, 0, WorldHeight-TankSize, TankSize) {
		t.Error("box flush with the bottom edge should fit")
	}
}

func TestGridBlockedMaterials(t *testing.T) {
	a := EmptyArena()
	a.Grid[3][3] = TileBrick
	a.Grid[3][5] = TileSteel
	a.Grid[3][7] = TileWater
	a.Grid[3][9] = TileTrees

	check := func(col int, want bool, what string) {
		t.Helper()
		p := tankSpawn(col, 3)
		if got := GridBlocked(a.Grid, p.X, p.Y, TankSize); got != want {
			t.Errorf("%s: blocked=%v, want %v", what, got, want)
		}
	}
	check(3, true, "brick")
	check(5, true, "steel")
	check(7, true, "water")
	check(9, false, "trees are passable")
	check(11, false, "empty")
}

func TestCellRangeBoundary(t *testing.T) {
	// A box starting exactly on a tile boundary covers only its own tile.
	minCol, maxCol, minRow, maxRow := cellRange(32, 64, TileSize)
	if minCol != 1 || maxCol != 1 || minRow != 2 || maxRow != 2 {
		t.Errorf("expected single cell (1,2), got cols %d-%d rows %d-%d",
			minCol, maxCol, minRow, maxRow)
	}

	// Straddling a boundary covers both cells.
	minCol, maxCol, _, _ = cellRange(30, 0, TankSize)
	if minCol != 0 || maxCol != 1 {
		t.Errorf("expected cols 0-1, got %d-%d", minCol, maxCol)
	}
}

func TestCellAt(t *testing.T) {
	if col, row := CellAt(33, 65); col != 1 || row != 2 {
		t.Errorf("expected (1,2), got (%d,%d)", col, row)
	}
	if col, _ := CellAt(-1, 0); col != -1 {
		t.Error("outside point should return -1")
	}
	if col, _ := CellAt(WorldWidth, 0); col != -1 {
		t.Error("point on the far edge should return -1")
	}
}

func TestTankBlocked(t *testing.T) {
	tanks := map[string]*Tank{
		"a": {ID: "a", X: 100, Y: 100, Alive: true},
		"b": {ID: "b", X: 300, Y: 300, Alive: false},
	}
	if !TankBlocked(tanks, "self", 110, 110, TankSize) {
		t.Error("overlap with a live tank should block")
	}
	if TankBlocked(tanks, "a", 110, 110, TankSize) {
		t.Error("a tank never blocks itself")
	}
	if TankBlocked(tanks, "self", 300, 300, TankSize) {
		t.Error("dead tanks do not block")
	}
}
