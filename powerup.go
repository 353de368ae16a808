package main

const (
	PowerupTimeoutMs = 15000.0
	PowerupSize      = 24.0
)

// Power-up kinds, coop mode only
const (
	PowerupHelmet  = 0 // shield window
	PowerupLife    = 1 // extra life
	PowerupGrenade = 2 // clears every on-field enemy
)

// Powerup is dropped by a destroyed classic enemy and collected by
// driving over it
type Powerup struct {
	ID     string
	Kind   int
	X, Y   float64 // top-left
	MsLeft float64
}

// spawnPowerup drops a random power-up at the destroyed enemy's position.
func (g *Game) spawnPowerup(x, y float64) {
	g.powerups = append(g.powerups, &Powerup{
		ID:     GenerateID(3),
		Kind:   g.rng.Intn(3),
		X:      x + (TankSize-PowerupSize)/2,
		Y:      y + (TankSize-PowerupSize)/2,
		MsLeft: PowerupTimeoutMs,
	})
}

// updatePowerups ages the drops and applies any collected by a live human.
func (g *Game) updatePowerups(elapsedMs float64) {
	kept := g.powerups[:0]
	for _, pu := range g.powerups {
		pu.MsLeft -= elapsedMs
		if pu.MsLeft <= 0 {
			continue
		}
		collected := false
		for _, t := range g.tanks {
			if t.Kind != KindHuman || !t.Alive {
				continue
			}
			if BoxesOverlap(pu.X, pu.Y, PowerupSize, t.X, t.Y, TankSize) {
				g.applyPowerup(pu, t)
				collected = true
				break
			}
		}
		if !collected {
			kept = append(kept, pu)
		}
	}
	g.powerups = kept
}

// applyPowerup grants the collected effect to the collector.
func (g *Game) applyPowerup(pu *Powerup, t *Tank) {
	switch pu.Kind {
	case PowerupHelmet:
		t.ShieldMs = ShieldRespawnMs
	case PowerupLife:
		t.Lives++
	case PowerupGrenade:
		for id, other := range g.tanks {
			if other.Kind != KindEnemy {
				continue
			}
			delete(g.tanks, id)
			g.enemiesOnField--
			t.Score += EnemyKillScore
		}
	}
}

// ToState converts to the public snapshot projection.
func (pu *Powerup) ToState() PowerupState {
	return PowerupState{
		ID:   pu.ID,
		Kind: pu.Kind,
		X:    round1(pu.X),
		Y:    round1(pu.Y),
	}
}
