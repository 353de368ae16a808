package main

import "math"

// pendingRespawn is a deathmatch elimination waiting out its delay.
type pendingRespawn struct {
	tankID  string
	delayMs float64
}

// enqueueRespawn schedules a deathmatch victim. Coop never queues: its
// respawn is synchronous in hitCoopHuman.
func (g *Game) enqueueRespawn(victim *Tank) {
	g.respawns = append(g.respawns, pendingRespawn{
		tankID:  victim.ID,
		delayMs: g.config.RespawnDelayMs,
	})
}

// dropRespawn removes any queued entry for a departed participant.
func (g *Game) dropRespawn(tankID string) {
	kept := g.respawns[:0]
	for _, r := range g.respawns {
		if r.tankID != tankID {
			kept = append(kept, r)
		}
	}
	g.respawns = kept
}

// processRespawns counts down the queue by elapsed simulated time and
// respawns entries whose delay has run out.
func (g *Game) processRespawns(elapsedMs float64) {
	kept := g.respawns[:0]
	for _, r := range g.respawns {
		r.delayMs -= elapsedMs
		if r.delayMs > 0 {
			kept = append(kept, r)
			continue
		}
		if t, ok := g.tanks[r.tankID]; ok {
			g.respawnTank(t)
		}
	}
	g.respawns = kept
}

// respawnTank places a tank back on the field at the deathmatch spawn
// point farthest (max-min) from every other live tank, under a fresh,
// longer shield.
func (g *Game) respawnTank(t *Tank) {
	spawn := g.pickRespawnPoint()
	t.X = spawn.X
	t.Y = spawn.Y
	t.Dir = DirUp
	t.Alive = true
	t.ShieldMs = ShieldRespawnMs
	t.Input = InputState{}
}

// pickRespawnPoint maximizes the minimum distance to any live tank over
// the configured deathmatch spawn points, skipping points a live tank is
// parked on — placing into an overlap would interlock both boxes under
// all-or-nothing movement. With nobody alive to avoid, or every point
// occupied, a uniformly random point is used.
func (g *Game) pickRespawnPoint() Point {
	points := g.arena.DMSpawns
	anyLive := false
	for _, t := range g.tanks {
		if t.Alive {
			anyLive = true
			break
		}
	}
	if !anyLive {
		return points[g.rng.Intn(len(points))]
	}

	best := points[0]
	bestScore := -1.0
	for _, p := range points {
		if TankBlocked(g.tanks, "", p.X, p.Y, TankSize) {
			continue
		}
		minDist := math.MaxFloat64
		px := p.X + TankSize/2
		py := p.Y + TankSize/2
		for _, t := range g.tanks {
			if !t.Alive {
				continue
			}
			cx, cy := t.Center()
			d := Distance(px, py, cx, cy)
			if d < minDist {
				minDist = d
			}
		}
		if minDist > bestScore {
			bestScore = minDist
			best = p
		}
	}
	if bestScore < 0 {
		return points[g.rng.Intn(len(points))]
	}
	return best
}
