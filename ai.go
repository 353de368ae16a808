package main

import "math"

const (
	EnemyMoveDecisionMs = 800.0
	EnemyFireIntervalMs = 2000.0

	BotMoveDecisionMs  = 800.0
	BotFireMinMs       = 1500.0
	BotFireJitterMs    = 1000.0
	BotRandomDirChance = 0.2 // keeps bots from being perfectly predictable
)

// updateAI runs the active controller over one non-human tank.
func (g *Game) updateAI(t *Tank, elapsedMs float64) {
	switch t.Kind {
	case KindEnemy:
		g.updateEnemy(t, elapsedMs)
	case KindBot:
		g.updateBot(t, elapsedMs)
	}
}

// updateEnemy is the classic-enemy policy: re-face on a fixed interval
// with a weighted bias toward the base, push every tick, rotate 90° when
// stuck, and fire on an independent staggered interval.
func (g *Game) updateEnemy(t *Tank, elapsedMs float64) {
	t.aiMoveMs -= elapsedMs
	if t.aiMoveMs <= 0 {
		t.aiMoveMs = EnemyMoveDecisionMs
		t.Dir = g.pickEnemyDirection(t)
	}

	if !g.moveTank(t, t.Dir) {
		t.Dir = t.Dir.Rotate()
	}

	t.aiFireMs -= elapsedMs
	if t.aiFireMs <= 0 {
		t.aiFireMs = EnemyFireIntervalMs
		g.fire(t)
	}
}

// pickEnemyDirection draws a facing from a weighted distribution biased
// toward the base: 5 for the vertical approach, 3 for the horizontal one,
// 1 for each remaining direction.
func (g *Game) pickEnemyDirection(t *Tank) Direction {
	weights := [4]int{1, 1, 1, 1}
	if g.arena.HasBase {
		cx, cy := t.Center()
		bx := g.arena.Base.X + TileSize/2
		by := g.arena.Base.Y + TileSize/2
		if by > cy {
			weights[DirDown] = 5
		} else if by < cy {
			weights[DirUp] = 5
		}
		if bx > cx {
			weights[DirRight] = 3
		} else if bx < cx {
			weights[DirLeft] = 3
		}
	}

	total := 0
	for _, w := range weights {
		total += w
	}
	pick := g.rng.Intn(total)
	for dir, w := range weights {
		pick -= w
		if pick < 0 {
			return Direction(dir)
		}
	}
	return DirDown
}

// updateBot is the deathmatch-bot policy: chase the nearest live tank
// along its dominant axis, with a small random branch, and re-aim then
// fire on a jittered interval.
func (g *Game) updateBot(t *Tank, elapsedMs float64) {
	target := g.nearestTarget(t)
	if target != nil {
		t.aiTarget = target.ID
	} else {
		t.aiTarget = ""
	}

	t.aiMoveMs -= elapsedMs
	if t.aiMoveMs <= 0 {
		t.aiMoveMs = BotMoveDecisionMs
		if target != nil && g.rng.Float64() >= BotRandomDirChance {
			t.Dir = dominantAxisDir(t, target)
		} else {
			t.Dir = Direction(g.rng.Intn(4))
		}
	}

	if !g.moveTank(t, t.Dir) {
		t.Dir = t.Dir.Rotate()
	}

	t.aiFireMs -= elapsedMs
	if t.aiFireMs <= 0 {
		t.aiFireMs = BotFireMinMs + g.rng.Float64()*BotFireJitterMs
		if target != nil {
			t.Dir = dominantAxisDir(t, target)
			g.fire(t)
		}
	}
}

// nearestTarget returns the closest live tank other than self, by
// Euclidean distance between box centers.
func (g *Game) nearestTarget(t *Tank) *Tank {
	cx, cy := t.Center()
	var nearest *Tank
	best := math.MaxFloat64
	for _, other := range g.tanks {
		if other.ID == t.ID || !other.Alive {
			continue
		}
		ox, oy := other.Center()
		d2 := (ox-cx)*(ox-cx) + (oy-cy)*(oy-cy)
		if d2 < best {
			best = d2
			nearest = other
		}
	}
	return nearest
}

// dominantAxisDir faces from toward target along the axis with the
// greater absolute delta.
func dominantAxisDir(from, target *Tank) Direction {
	fx, fy := from.Center()
	tx, ty := target.Center()
	dx := tx - fx
	dy := ty - fy
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return DirRight
		}
		return DirLeft
	}
	if dy > 0 {
		return DirDown
	}
	return DirUp
}
