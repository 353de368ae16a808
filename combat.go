package main

const (
	maxProjectilesPerGame = 64
	powerupDropChance     = 0.25 // per destroyed classic enemy
)

// fire spawns a single owned projectile and resets the per-kind cooldown.
// A tank that is dead, on cooldown, or at the shell cap fires nothing; the
// gate lives here so every controller goes through the same check.
func (g *Game) fire(t *Tank) {
	if !t.CanFire() || len(g.projectiles) >= maxProjectilesPerGame {
		return
	}
	g.projSeq++
	g.projectiles = append(g.projectiles, NewProjectile(t, g.projSeq))
	t.FireCD = t.fireCooldown()
}

// resolveProjectiles advances every live shell one tick and resolves each
// against, in strict order: grid bounds, terrain at its current cell, and
// entity hits. A shell resolves at most once and is removed the same tick.
// Shells are processed in creation order, which is the documented
// tie-break when two shells target the same cell in one tick.
func (g *Game) resolveProjectiles() {
	kept := g.projectiles[:0]
	for _, p := range g.projectiles {
		p.Advance()
		if g.resolveProjectile(p) {
			continue
		}
		kept = append(kept, p)
	}
	// Drop trailing references so resolved shells can be collected.
	for i := len(kept); i < len(g.projectiles); i++ {
		g.projectiles[i] = nil
	}
	g.projectiles = kept
}

// resolveProjectile returns true when the shell resolved this tick.
func (g *Game) resolveProjectile(p *Projectile) bool {
	// (a) bounds
	col, row := CellAt(p.X, p.Y)
	if col < 0 {
		return true
	}

	// (b) terrain at the current cell
	switch g.grid[row][col] {
	case TileBrick:
		g.grid[row][col] = TileEmpty
		return true
	case TileSteel:
		return true
	case TileBase:
		if g.config.Mode == ModeCoop {
			// Losing the base ends the match on the spot.
			g.grid[row][col] = TileEmpty
			g.finish(WinnerAI, "")
		}
		return true
	}

	// (c) entity hit, branched by mode
	for _, t := range g.tanks {
		if t.ID == p.OwnerID || !t.Alive || t.Shielded() {
			continue
		}
		if !g.canHit(p, t) {
			continue
		}
		if p.HitsTank(t) {
			g.applyHit(p, t)
			return true
		}
	}
	return false
}

// canHit encodes the per-mode hit matrix. Coop only permits cross-side
// hits; deathmatch permits anyone except the shell's own owner.
func (g *Game) canHit(p *Projectile, t *Tank) bool {
	if g.config.Mode != ModeCoop {
		return true
	}
	if p.Kind == KindEnemy {
		return t.Kind == KindHuman
	}
	return t.Kind == KindEnemy
}

// applyHit resolves a confirmed projectile-vs-tank hit.
func (g *Game) applyHit(p *Projectile, victim *Tank) {
	shooter := g.tanks[p.OwnerID] // may be nil after a disconnect

	if g.config.Mode == ModeCoop {
		if victim.Kind == KindEnemy {
			g.destroyEnemy(victim, shooter)
		} else {
			g.hitCoopHuman(victim)
		}
		return
	}

	// Deathmatch: one frag, delayed respawn.
	victim.Deaths++
	victim.Alive = false
	if shooter != nil {
		shooter.Score++
	}
	g.enqueueRespawn(victim)
	g.notifyKill(shooter, victim)
}

// hitCoopHuman takes a life. With lives remaining the human snaps back to
// its join-order spawn slot under a fresh shield; at zero lives the tank
// stays down for the rest of the match.
func (g *Game) hitCoopHuman(victim *Tank) {
	victim.Lives--
	victim.Deaths++
	if victim.Lives > 0 {
		spawn := g.arena.PlayerSpawns[victim.Slot%len(g.arena.PlayerSpawns)]
		victim.X = spawn.X
		victim.Y = spawn.Y
		victim.Dir = DirUp
		victim.ShieldMs = ShieldSpawnMs
		return
	}
	victim.Alive = false
}

// destroyEnemy removes a classic enemy from the roster and credits the
// shooter. Destroyed enemies occasionally leave a power-up behind.
func (g *Game) destroyEnemy(victim *Tank, shooter *Tank) {
	delete(g.tanks, victim.ID)
	g.enemiesOnField--
	if shooter != nil {
		shooter.Score += EnemyKillScore
	}
	if g.rng.Float64() < powerupDropChance {
		g.spawnPowerup(victim.X, victim.Y)
	}
	g.notifyKill(shooter, victim)
}

// notifyKill broadcasts the kill to the session and the victim's client.
func (g *Game) notifyKill(shooter, victim *Tank) {
	msg := KillMsg{VictimID: victim.ID, VictimName: victim.Name}
	if shooter != nil {
		msg.KillerID = shooter.ID
		msg.KillerName = shooter.Name
	}
	g.broadcastMsg(Envelope{T: MsgKill, Data: msg})
	if client, ok := g.clients[victim.ID]; ok {
		client.SendJSON(Envelope{T: MsgDeath, Data: DeathMsg{
			KillerID:   msg.KillerID,
			KillerName: msg.KillerName,
		}})
	}
}
