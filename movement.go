package main

// moveTank attempts to displace a tank one step in the given direction.
// Facing changes and the moving flag is set even when the displacement is
// rejected; the move itself is all-or-nothing — no partial slide, so
// diagonal-adjacent obstacles can fully block. Returns whether the tank
// actually moved.
func (g *Game) moveTank(t *Tank, dir Direction) bool {
	t.Dir = dir
	t.Moving = true

	dx, dy := dir.Delta()
	nx := t.X + dx*t.Speed
	ny := t.Y + dy*t.Speed

	if GridBlocked(g.grid, nx, ny, TankSize) {
		return false
	}
	if TankBlocked(g.tanks, t.ID, nx, ny, TankSize) {
		return false
	}
	t.X = nx
	t.Y = ny
	return true
}

// applyInput honors exactly one movement intent per tick, in fixed
// priority order: up, down, left, right. Clients rely on this order
// being stable when opposing keys are held.
func (g *Game) applyInput(t *Tank) {
	if !t.Alive {
		return
	}
	in := t.Input
	switch {
	case in.Up:
		g.moveTank(t, DirUp)
	case in.Down:
		g.moveTank(t, DirDown)
	case in.Left:
		g.moveTank(t, DirLeft)
	case in.Right:
		g.moveTank(t, DirRight)
	}
	if in.Fire {
		g.fire(t)
	}
}
