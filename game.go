package main

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	TickRate     = 30 // simulation ticks per second, cadence-bound speeds
	TickDuration = time.Second / TickRate
	TickMs       = 1000.0 / TickRate
)

// Broadcaster is the client-facing side of a session member
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// MatchResult is handed to the result hook once, when a match turns
// terminal.
type MatchResult struct {
	Mode       GameMode
	Winner     string
	WinnerName string
	DurationMs float64
	Rows       []ResultRow
}

// ResultRow is one participant's final line in a match result.
type ResultRow struct {
	TankID       string
	Name         string
	Kind         int
	Score        int
	Deaths       int
	AuthPlayerID int64
}

// Game is the authoritative match engine for one session. A single mutex
// serializes ticks, input delivery, lifecycle calls and snapshot reads;
// ticks never block on snapshots because snapshots are copies.
type Game struct {
	mu     sync.RWMutex
	config MatchConfig
	arena  *Arena
	grid   [][]uint8 // engine-owned copy, mutated by terrain hits

	tanks       map[string]*Tank
	projectiles []*Projectile // creation order
	powerups    []*Powerup
	respawns    []pendingRespawn
	clients     map[string]Broadcaster

	rng     *rand.Rand
	tick    uint64
	projSeq uint64

	nextSlot     int
	humansJoined int

	enemiesLeft    int // coop: remaining spawn quota
	enemiesOnField int
	enemySpawnMs   float64
	enemySpawnIdx  int

	over       bool
	winner     string
	winnerName string
	resultSent bool
	elapsed    float64 // simulated ms since start

	started bool
	stopped bool
	stop    chan struct{}

	onResult func(MatchResult)
}

// NewGame creates an engine over a defensive copy of the arena terrain.
// The RNG seed is explicit so AI behavior is reproducible under test.
func NewGame(arena *Arena, config MatchConfig, seed int64) *Game {
	return &Game{
		config:      config,
		arena:       arena,
		grid:        arena.CopyGrid(),
		tanks:       make(map[string]*Tank),
		clients:     make(map[string]Broadcaster),
		rng:         rand.New(rand.NewSource(seed)),
		enemiesLeft: config.EnemyQuota,
		stop:        make(chan struct{}),
	}
}

// SetResultHook registers a callback invoked once when the match ends.
func (g *Game) SetResultHook(fn func(MatchResult)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onResult = fn
}

// Start initializes mode-specific participants and launches the loop.
func (g *Game) Start() {
	g.mu.Lock()
	if g.started || g.stopped {
		g.mu.Unlock()
		return
	}
	g.started = true
	if g.config.Mode == ModeBotmatch {
		g.initBots()
	}
	g.mu.Unlock()
	go g.run()
}

// run drives the fixed-cadence loop, passing true elapsed time into each
// tick.
func (g *Game) run() {
	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			g.Tick(float64(now.Sub(last).Microseconds()) / 1000.0)
			last = now
		case <-g.stop:
			return
		}
	}
}

// Stop halts the loop. No state mutates after Stop returns.
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.stopped {
		g.stopped = true
		close(g.stop)
	}
}

// initBots fills the field with AI deathmatch participants.
func (g *Game) initBots() {
	names := []string{"RIVET", "DIESEL", "HAVOC", "SCRAP", "COBALT", "MAULER"}
	for i := 0; i < g.config.BotCount; i++ {
		slot := g.nextSlot
		g.nextSlot++
		spawn := g.pickRespawnPoint()
		bot := NewBotTank(GenerateID(4), names[i%len(names)], slot, spawn)
		g.tanks[bot.ID] = bot
	}
}

// AddPlayer joins a human participant, assigning the next stable
// join-order slot. Returns nil when the session is full.
func (g *Game) AddPlayer(name string) *Tank {
	g.mu.Lock()
	defer g.mu.Unlock()

	humans := 0
	for _, t := range g.tanks {
		if t.Kind == KindHuman {
			humans++
		}
	}
	if humans >= g.config.MaxPlayers {
		return nil
	}

	slot := g.nextSlot
	g.nextSlot++
	g.humansJoined++

	var spawn Point
	lives := UnboundedLives
	if g.config.Mode == ModeCoop {
		spawn = g.arena.PlayerSpawns[slot%len(g.arena.PlayerSpawns)]
		lives = g.config.PlayerLives
	} else {
		spawn = g.pickRespawnPoint()
	}

	t := NewPlayerTank(GenerateID(4), name, slot, spawn, lives)
	g.tanks[t.ID] = t
	return t
}

// RemovePlayer drops a participant entirely. Safe mid-match: spawn slots
// are stored on the tanks themselves, so remaining indices are unaffected,
// and any queued respawn for the id is discarded.
func (g *Game) RemovePlayer(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.tanks, id)
	delete(g.clients, id)
	g.dropRespawn(id)
}

// SetClient associates a broadcaster with a participant
func (g *Game) SetClient(tankID string, client Broadcaster) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clients[tankID] = client
}

// SetAuthPlayer links a participant to a registered account. The result
// emitter reads the link from the tick goroutine, so the write takes the
// match lock like any other external mutation.
func (g *Game) SetAuthPlayer(tankID string, playerID int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if t, ok := g.tanks[tankID]; ok {
		t.AuthPlayerID = playerID
	}
}

// HandleInput replaces a human's standing intent wholesale. Input for a
// departed or AI participant is a no-op.
func (g *Game) HandleInput(tankID string, in InputState) {
	g.mu.Lock()
	defer g.mu.Unlock()
	t, ok := g.tanks[tankID]
	if !ok || t.Kind != KindHuman {
		return
	}
	t.Input = in
}

// PlayerCount returns the number of human participants
func (g *Game) PlayerCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n := 0
	for _, t := range g.tanks {
		if t.Kind == KindHuman {
			n++
		}
	}
	return n
}

// HasPlayer reports whether the participant is present
func (g *Game) HasPlayer(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.tanks[id]
	return ok
}

// Tick advances the simulation by the given elapsed milliseconds. It is a
// plain state transition: any scheduler — the production loop, a test, a
// replay driver — may call it.
func (g *Game) Tick(elapsedMs float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stopped {
		return
	}
	g.tick++
	g.elapsed += elapsedMs

	if g.over {
		g.emitResult()
		g.broadcastState()
		return
	}

	// 1. timers
	for _, t := range g.tanks {
		t.UpdateTimers(elapsedMs)
	}

	// 2. pending respawns (deathmatch only)
	if g.config.IsDeathmatch() {
		g.processRespawns(elapsedMs)
	}

	// 3. classic enemy spawner (coop only)
	if g.config.Mode == ModeCoop {
		g.spawnEnemies(elapsedMs)
	}

	// 4. buffered human input
	for _, t := range g.tanks {
		if t.Kind == KindHuman {
			g.applyInput(t)
		}
	}

	// 5. active AI controller
	for _, t := range g.tanks {
		if t.Kind != KindHuman && t.Alive {
			g.updateAI(t, elapsedMs)
		}
	}

	// 6. power-up drops (coop only)
	if g.config.Mode == ModeCoop {
		g.updatePowerups(elapsedMs)
	}

	// 7. projectiles
	g.resolveProjectiles()

	// 8. terminal state
	g.checkWin()
	g.emitResult()

	g.broadcastState()
}

// spawnEnemies feeds the coop field from the spawn quota, at most one
// enemy per interval, skipping entry points that are currently blocked.
func (g *Game) spawnEnemies(elapsedMs float64) {
	if g.enemiesLeft <= 0 || g.enemiesOnField >= g.config.EnemyMaxOnField {
		return
	}
	g.enemySpawnMs -= elapsedMs
	if g.enemySpawnMs > 0 {
		return
	}
	g.enemySpawnMs = g.config.EnemySpawnMs

	points := g.arena.EnemySpawns
	for i := 0; i < len(points); i++ {
		p := points[(g.enemySpawnIdx+i)%len(points)]
		if GridBlocked(g.grid, p.X, p.Y, TankSize) ||
			TankBlocked(g.tanks, "", p.X, p.Y, TankSize) {
			continue
		}
		g.enemySpawnIdx = (g.enemySpawnIdx + i + 1) % len(points)
		stagger := g.rng.Float64() * EnemyFireIntervalMs
		enemy := NewEnemyTank(GenerateID(4), p, stagger)
		g.tanks[enemy.ID] = enemy
		g.enemiesLeft--
		g.enemiesOnField++
		return
	}
}

// emitResult fires the result hook exactly once after the match turns
// terminal.
func (g *Game) emitResult() {
	if !g.over || g.resultSent || g.onResult == nil {
		return
	}
	g.resultSent = true

	res := MatchResult{
		Mode:       g.config.Mode,
		Winner:     g.winner,
		WinnerName: g.winnerName,
		DurationMs: g.elapsed,
	}
	for _, t := range g.tanks {
		res.Rows = append(res.Rows, ResultRow{
			TankID:       t.ID,
			Name:         t.Name,
			Kind:         t.Kind,
			Score:        t.Score,
			Deaths:       t.Deaths,
			AuthPlayerID: t.AuthPlayerID,
		})
	}
	go g.onResult(res)
}

// buildState assembles the public projection of the most recently
// completed tick. Caller must hold at least the read lock.
func (g *Game) buildState() GameState {
	state := GameState{
		Mode:        int(g.config.Mode),
		Tick:        g.tick,
		Grid:        copyGrid(g.grid),
		Tanks:       make([]TankState, 0, len(g.tanks)),
		Projectiles: make([]ProjectileState, 0, len(g.projectiles)),
		Over:        g.over,
		Winner:      g.winner,
		WinnerName:  g.winnerName,
		FragTarget:  g.config.FragTarget,
		EnemiesLeft: g.enemiesLeft,
		EnemiesOn:   g.enemiesOnField,
	}
	for _, t := range g.tanks {
		state.Tanks = append(state.Tanks, t.ToState())
	}
	for _, p := range g.projectiles {
		state.Projectiles = append(state.Projectiles, p.ToState())
	}
	for _, pu := range g.powerups {
		state.Powerups = append(state.Powerups, pu.ToState())
	}
	return state
}

func copyGrid(grid [][]uint8) [][]uint8 {
	out := make([][]uint8, len(grid))
	for i, row := range grid {
		out[i] = make([]uint8, len(row))
		copy(out[i], row)
	}
	return out
}

// Snapshot returns the read-only projection for external callers. It may
// be called at any time between ticks.
func (g *Game) Snapshot() GameState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.buildState()
}

// broadcastState pushes the msgpack-encoded snapshot to every client.
func (g *Game) broadcastState() {
	if len(g.clients) == 0 {
		return
	}
	data, err := msgpack.Marshal(g.buildState())
	if err != nil {
		return
	}
	for _, client := range g.clients {
		client.SendBinary(data)
	}
}

// broadcastMsg sends a JSON control message to every client in the session
func (g *Game) broadcastMsg(msg Envelope) {
	for _, client := range g.clients {
		client.SendJSON(msg)
	}
}
