package main

import "testing"

func TestRespawnDelay(t *testing.T) {
	g := newTestGame(ModeDeathmatch, 1)
	placeHuman(g, "other", Point{X: 100, Y: 100})
	victim := placeHuman(g, "v", Point{X: 300, Y: 300})
	victim.Alive = false
	g.enqueueRespawn(victim)

	g.processRespawns(1999)
	if victim.Alive {
		t.Fatal("victim should still be waiting out the delay")
	}
	if len(g.respawns) != 1 {
		t.Fatalf("respawn should still be queued, got %d", len(g.respawns))
	}

	g.processRespawns(2)
	if !victim.Alive {
		t.Fatal("victim should respawn once the delay elapses")
	}
	if victim.ShieldMs != ShieldRespawnMs {
		t.Errorf("respawn shield should be %v, got %v", ShieldRespawnMs, victim.ShieldMs)
	}
	if len(g.respawns) != 0 {
		t.Error("queue entry should be consumed")
	}
}

func TestRespawnClearsInput(t *testing.T) {
	g := newTestGame(ModeDeathmatch, 1)
	victim := placeHuman(g, "v", Point{X: 300, Y: 300})
	victim.Alive = false
	victim.Input = InputState{Up: true, Fire: true}

	g.respawnTank(victim)
	if victim.Input != (InputState{}) {
		t.Error("stale intent must not survive a respawn")
	}
	if victim.Dir != DirUp {
		t.Errorf("respawn should reset facing, dir=%v", victim.Dir)
	}
}

func TestMaxMinRespawnPlacement(t *testing.T) {
	arena := EmptyArena()
	arena.DMSpawns = []Point{tankSpawn(1, 1), tankSpawn(24, 24), tankSpawn(1, 24)}
	g := NewGame(arena, DefaultConfig(ModeDeathmatch), 1)

	// One camper near the first spawn: the far corner wins max-min.
	placeHuman(g, "camper", tankSpawn(2, 2))
	if got := g.pickRespawnPoint(); got != tankSpawn(24, 24) {
		t.Errorf("expected the far corner, got %v", got)
	}

	// Campers on both bottom corners push the pick back to the top.
	placeHuman(g, "camper2", tankSpawn(24, 23))
	placeHuman(g, "camper3", tankSpawn(2, 23))
	if got := g.pickRespawnPoint(); got != tankSpawn(1, 1) {
		t.Errorf("expected the top corner, got %v", got)
	}
}

func TestRespawnSkipsOccupiedPoint(t *testing.T) {
	arena := EmptyArena()
	top := tankSpawn(1, 1)
	far := tankSpawn(24, 24)
	arena.DMSpawns = []Point{top, far}
	g := NewGame(arena, DefaultConfig(ModeDeathmatch), 1)

	// Straddles the far point diagonally: the boxes overlap while the
	// center distance still beats the flush neighbor at the top point,
	// so plain max-min would place the respawn into the overlap.
	placeHuman(g, "blocker", Point{X: far.X - 27, Y: far.Y - 27})
	placeHuman(g, "near", Point{X: top.X + TankSize, Y: top.Y})

	if got := g.pickRespawnPoint(); got != top {
		t.Errorf("occupied spawn point must be skipped, got %v", got)
	}
}

func TestRespawnAllPointsOccupiedFallsBack(t *testing.T) {
	arena := EmptyArena()
	arena.DMSpawns = []Point{tankSpawn(1, 1), tankSpawn(24, 24)}
	g := NewGame(arena, DefaultConfig(ModeDeathmatch), 1)
	placeHuman(g, "a", tankSpawn(1, 1))
	placeHuman(g, "b", tankSpawn(24, 24))

	got := g.pickRespawnPoint()
	if got != tankSpawn(1, 1) && got != tankSpawn(24, 24) {
		t.Errorf("fallback pick must still come from the spawn list, got %v", got)
	}
}

func TestRespawnRandomWhenFieldEmpty(t *testing.T) {
	g := newTestGame(ModeDeathmatch, 1)
	got := g.pickRespawnPoint()
	found := false
	for _, p := range g.arena.DMSpawns {
		if p == got {
			found = true
		}
	}
	if !found {
		t.Errorf("pick must come from the configured spawn list, got %v", got)
	}
}

func TestLeaveDropsQueuedRespawn(t *testing.T) {
	g := newTestGame(ModeDeathmatch, 1)
	victim := placeHuman(g, "v", Point{X: 300, Y: 300})
	victim.Alive = false
	g.enqueueRespawn(victim)

	g.RemovePlayer("v")
	if len(g.respawns) != 0 {
		t.Error("a departed participant must not respawn")
	}
	g.processRespawns(5000) // must not panic on the drained queue
}

// Full elimination round-trip through ticks: shot, delay, placement.
func TestDeathmatchKillAndRespawnFlow(t *testing.T) {
	g := newTestGame(ModeDeathmatch, 2)
	shooter := placeHuman(g, "s", Point{X: 100, Y: 100})
	shooter.Dir = DirRight
	shooter.Input = InputState{Fire: true}
	victim := placeHuman(g, "v", Point{X: 132, Y: 100})

	g.Tick(TickMs)
	if victim.Alive {
		t.Fatal("point-blank shot should eliminate in one tick")
	}
	if shooter.Score != 1 || victim.Deaths != 1 {
		t.Fatalf("score/deaths wrong: %d/%d", shooter.Score, victim.Deaths)
	}

	// Ride out the delay plus one tick of slack.
	for i := 0; i < 61 && !victim.Alive; i++ {
		g.Tick(TickMs)
	}
	if !victim.Alive {
		t.Fatal("victim should be back after the respawn delay")
	}
	if !victim.Shielded() {
		t.Error("fresh respawn should be shielded")
	}
	onSpawn := false
	for _, p := range g.arena.DMSpawns {
		if victim.X == p.X && victim.Y == p.Y {
			onSpawn = true
		}
	}
	if !onSpawn {
		t.Errorf("victim should stand on a spawn point, at (%v,%v)", victim.X, victim.Y)
	}
}
