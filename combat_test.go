package main

import "testing"

// shellAt builds a shell already positioned for this tick's resolution.
func shellAt(owner string, kind int, x, y float64) *Projectile {
	return &Projectile{ID: "s", OwnerID: owner, Kind: kind, X: x, Y: y, Speed: ProjectileSpeed}
}

func TestFireRequiresReadiness(t *testing.T) {
	g := newTestGame(ModeDeathmatch, 1)
	tank := placeHuman(g, "p1", Point{X: 100, Y: 100})

	g.fire(tank)
	if len(g.projectiles) != 1 {
		t.Fatalf("ready tank should fire, got %d shells", len(g.projectiles))
	}
	if tank.FireCD != PlayerFireCDMs {
		t.Errorf("firing should reset the cooldown to %v, got %v", PlayerFireCDMs, tank.FireCD)
	}

	g.fire(tank) // on cooldown
	if len(g.projectiles) != 1 {
		t.Error("fire itself must gate on the cooldown")
	}

	tank.FireCD = 0
	tank.Alive = false
	g.fire(tank) // dead
	if len(g.projectiles) != 1 {
		t.Error("fire itself must gate on liveness")
	}

	tank.Alive = true
	g.fire(tank)
	if len(g.projectiles) != 2 {
		t.Error("a ready tank should fire again")
	}
}

func TestBrickDestroyedExactlyOnce(t *testing.T) {
	g := newTestGame(ModeCoop, 1)
	g.grid[5][7] = TileBrick
	x := 7*TileSize + 16.0
	y := 5*TileSize + 16.0

	if !g.resolveProjectile(shellAt("x", KindHuman, x, y)) {
		t.Fatal("shell should resolve against brick")
	}
	if g.grid[5][7] != TileEmpty {
		t.Fatal("brick should become empty")
	}

	// Second shell through the now-empty cell flies on.
	if g.resolveProjectile(shellAt("x", KindHuman, x, y)) {
		t.Error("empty cell should not resolve a shell")
	}
	if g.grid[5][7] != TileEmpty {
		t.Error("empty cell must stay empty")
	}
}

func TestSteelIndestructible(t *testing.T) {
	g := newTestGame(ModeCoop, 1)
	g.grid[5][7] = TileSteel
	x := 7*TileSize + 16.0
	y := 5*TileSize + 16.0

	for i := 0; i < 3; i++ {
		if !g.resolveProjectile(shellAt("x", KindHuman, x, y)) {
			t.Fatal("shell should resolve against steel")
		}
	}
	if g.grid[5][7] != TileSteel {
		t.Error("steel must survive any number of hits")
	}
}

func TestBaseHitEndsCoop(t *testing.T) {
	g := NewGame(DefaultArena(), DefaultConfig(ModeCoop), 1)
	bx := g.arena.Base.X + TileSize/2
	by := g.arena.Base.Y + TileSize/2

	if !g.resolveProjectile(shellAt("e", KindEnemy, bx, by)) {
		t.Fatal("shell should resolve against the base")
	}
	if !g.over || g.winner != WinnerAI {
		t.Errorf("base loss should end the match for the AI, over=%v winner=%q", g.over, g.winner)
	}
	col, row := CellAt(bx, by)
	if g.grid[row][col] != TileEmpty {
		t.Error("destroyed base cell should become empty")
	}
}

func TestBaseAbsorbsOutsideCoop(t *testing.T) {
	g := newTestGame(ModeDeathmatch, 1)
	g.grid[5][7] = TileBase
	x := 7*TileSize + 16.0
	y := 5*TileSize + 16.0

	if !g.resolveProjectile(shellAt("x", KindHuman, x, y)) {
		t.Fatal("base cell should still stop the shell")
	}
	if g.grid[5][7] != TileBase || g.over {
		t.Error("outside coop the base cell is inert terrain")
	}
}

func TestShieldBlocksHit(t *testing.T) {
	g := newTestGame(ModeDeathmatch, 1)
	victim := placeHuman(g, "v", Point{X: 100, Y: 100})
	victim.ShieldMs = 1000

	if g.resolveProjectile(shellAt("x", KindHuman, 110, 110)) {
		t.Error("shielded tank must not resolve a shell")
	}
	if !victim.Alive || victim.Deaths != 0 {
		t.Error("shielded tank must be untouched")
	}
}

func TestSelfHitExcluded(t *testing.T) {
	g := newTestGame(ModeDeathmatch, 1)
	shooter := placeHuman(g, "s", Point{X: 100, Y: 100})

	if g.resolveProjectile(shellAt("s", KindHuman, 110, 110)) {
		t.Error("a shell never resolves against its own owner")
	}
	if !shooter.Alive {
		t.Error("owner must be untouched by own shell")
	}
}

func TestCoopHitMatrix(t *testing.T) {
	g := newTestGame(ModeCoop, 1)
	placeHuman(g, "h1", Point{X: 100, Y: 100})
	placeHuman(g, "h2", Point{X: 300, Y: 300})
	enemy := placeEnemy(g, "e1", Point{X: 500, Y: 500})
	placeEnemy(g, "e2", Point{X: 600, Y: 100})

	// Human shell overlapping another human: passes through.
	if g.resolveProjectile(shellAt("h1", KindHuman, 310, 310)) {
		t.Error("coop human shells must not hit humans")
	}
	// Enemy shell overlapping another enemy: passes through.
	if g.resolveProjectile(shellAt("e2", KindEnemy, 510, 510)) {
		t.Error("coop enemy shells must not hit enemies")
	}
	if !enemy.Alive {
		t.Fatal("enemy should be intact before the cross-side shot")
	}
	// Human shell on an enemy resolves.
	g.enemiesOnField = 1
	if !g.resolveProjectile(shellAt("h1", KindHuman, 510, 510)) {
		t.Error("coop human shells must hit enemies")
	}
}

func TestCoopHumanLifeLoss(t *testing.T) {
	g := newTestGame(ModeCoop, 1)
	victim := placeHuman(g, "v", Point{X: 300, Y: 300})
	victim.Lives = 3
	victim.Slot = 0

	if !g.resolveProjectile(shellAt("e", KindEnemy, 310, 310)) {
		t.Fatal("enemy shell should hit the human")
	}
	if victim.Lives != 2 || victim.Deaths != 1 {
		t.Errorf("expected 2 lives 1 death, got %d/%d", victim.Lives, victim.Deaths)
	}
	if !victim.Alive {
		t.Error("human with lives left stays in the match")
	}
	spawn := g.arena.PlayerSpawns[0]
	if victim.X != spawn.X || victim.Y != spawn.Y {
		t.Errorf("human should snap back to its slot spawn, at (%v,%v)", victim.X, victim.Y)
	}
	if victim.ShieldMs != ShieldSpawnMs {
		t.Errorf("respawned human should carry a fresh shield, got %v", victim.ShieldMs)
	}

	// Last life: down for good, no teleport.
	victim.Lives = 1
	victim.ShieldMs = 0
	victim.X, victim.Y = 300, 300
	if !g.resolveProjectile(shellAt("e", KindEnemy, 310, 310)) {
		t.Fatal("second hit should land")
	}
	if victim.Alive || victim.Lives != 0 {
		t.Errorf("human at zero lives stays down, alive=%v lives=%d", victim.Alive, victim.Lives)
	}
	if len(g.respawns) != 0 {
		t.Error("coop never queues delayed respawns")
	}
}

func TestDestroyEnemyCreditsShooter(t *testing.T) {
	g := newTestGame(ModeCoop, 1)
	shooter := placeHuman(g, "h", Point{X: 100, Y: 100})
	placeEnemy(g, "e", Point{X: 300, Y: 300})
	g.enemiesOnField = 1

	if !g.resolveProjectile(shellAt("h", KindHuman, 310, 310)) {
		t.Fatal("shell should destroy the enemy")
	}
	if _, ok := g.tanks["e"]; ok {
		t.Error("destroyed enemy should leave the roster")
	}
	if g.enemiesOnField != 0 {
		t.Errorf("on-field count should drop to 0, got %d", g.enemiesOnField)
	}
	if shooter.Score != EnemyKillScore {
		t.Errorf("shooter should score %d, got %d", EnemyKillScore, shooter.Score)
	}
}

func TestDeathmatchHit(t *testing.T) {
	g := newTestGame(ModeDeathmatch, 1)
	shooter := placeHuman(g, "s", Point{X: 100, Y: 100})
	victim := placeHuman(g, "v", Point{X: 300, Y: 300})

	if !g.resolveProjectile(shellAt("s", KindHuman, 310, 310)) {
		t.Fatal("shell should hit the victim")
	}
	if victim.Alive || victim.Deaths != 1 {
		t.Errorf("victim should be eliminated, alive=%v deaths=%d", victim.Alive, victim.Deaths)
	}
	if shooter.Score != 1 {
		t.Errorf("shooter should gain one frag, got %d", shooter.Score)
	}
	if len(g.respawns) != 1 || g.respawns[0].tankID != "v" {
		t.Error("elimination should queue a delayed respawn")
	}
}

func TestDisconnectedShooterStillKills(t *testing.T) {
	g := newTestGame(ModeDeathmatch, 1)
	victim := placeHuman(g, "v", Point{X: 300, Y: 300})

	// Owner already departed: the shell still resolves, nobody is credited.
	if !g.resolveProjectile(shellAt("gone", KindHuman, 310, 310)) {
		t.Fatal("orphaned shell should still hit")
	}
	if victim.Alive {
		t.Error("victim of an orphaned shell is still eliminated")
	}
}
