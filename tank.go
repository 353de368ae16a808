package main

const (
	TankSize = 28.0 // bounding box edge, slightly under a tile

	PlayerSpeed = 4.0 // px per tick, cadence-bound (not time-scaled)
	EnemySpeed  = 2.0
	BotSpeed    = 4.0

	PlayerFireCDMs = 600.0
	BotFireCDMs    = 500.0
	EnemyFireCDMs  = 800.0

	ShieldSpawnMs   = 3000.0
	ShieldRespawnMs = 4000.0

	PlayerLives    = 3
	UnboundedLives = -1 // sentinel, never serialized as anything else

	EnemyKillScore = 100
)

// Tank kinds. Shared logic (movement, shield, cooldown) treats all kinds
// uniformly; mode branches switch on Kind explicitly.
const (
	KindHuman = 0
	KindEnemy = 1 // classic AI opponent, coop mode
	KindBot   = 2 // deathmatch AI participant
)

// Direction is a 4-valued facing. The ordering is load-bearing: the
// blocked-movement unstick heuristic rotates with (dir+1)%4.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// Delta returns the unit displacement for a direction.
func (d Direction) Delta() (dx, dy float64) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	default:
		return -1, 0
	}
}

// Rotate returns the next direction clockwise.
func (d Direction) Rotate() Direction {
	return (d + 1) % 4
}

// InputState is the standing intent for a human tank. Deliveries replace
// it wholesale (last write wins).
type InputState struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Fire  bool
}

// Tank represents any combat unit: human player, classic enemy, or
// deathmatch bot.
type Tank struct {
	ID    string
	Name  string
	Kind  int
	Slot  int // stable join-order index; also the coop spawn slot
	Color int

	X, Y   float64 // top-left of the bounding box
	Dir    Direction
	Speed  float64
	Moving bool // displacement attempted this tick, for animation

	Alive  bool
	Lives  int // UnboundedLives for AI and deathmatch humans
	Score  int
	Deaths int

	ShieldMs float64 // post-spawn invulnerability remaining
	FireCD   float64 // ms until next shot allowed

	Input InputState // human kinds only

	// AI scratch, populated for AI kinds only. Never serialized.
	aiMoveMs float64 // countdown to next movement decision
	aiFireMs float64 // countdown to next fire attempt
	aiTarget string  // last chased tank ID (bots)

	AuthPlayerID int64 // 0 = guest
}

// NewPlayerTank creates a human tank at its join-order spawn slot.
func NewPlayerTank(id, name string, slot int, spawn Point, lives int) *Tank {
	return &Tank{
		ID:       id,
		Name:     name,
		Kind:     KindHuman,
		Slot:     slot,
		Color:    slot % 4,
		X:        spawn.X,
		Y:        spawn.Y,
		Dir:      DirUp,
		Speed:    PlayerSpeed,
		Alive:    true,
		Lives:    lives,
		ShieldMs: ShieldSpawnMs,
	}
}

// NewEnemyTank creates a classic AI opponent. fireStagger offsets the
// first shot so a spawn wave doesn't fire in lockstep.
func NewEnemyTank(id string, spawn Point, fireStagger float64) *Tank {
	return &Tank{
		ID:       id,
		Name:     "enemy",
		Kind:     KindEnemy,
		X:        spawn.X,
		Y:        spawn.Y,
		Dir:      DirDown,
		Speed:    EnemySpeed,
		Alive:    true,
		Lives:    UnboundedLives,
		aiMoveMs: 0,
		aiFireMs: fireStagger,
	}
}

// NewBotTank creates a deathmatch AI participant. Bots are tanks like any
// other: shield, cooldown, respawn all apply.
func NewBotTank(id, name string, slot int, spawn Point) *Tank {
	return &Tank{
		ID:       id,
		Name:     name,
		Kind:     KindBot,
		Slot:     slot,
		Color:    slot % 4,
		X:        spawn.X,
		Y:        spawn.Y,
		Dir:      DirUp,
		Speed:    BotSpeed,
		Alive:    true,
		Lives:    UnboundedLives,
		ShieldMs: ShieldSpawnMs,
	}
}

// UpdateTimers advances the per-tank countdowns by elapsed simulated time.
func (t *Tank) UpdateTimers(elapsedMs float64) {
	if t.ShieldMs > 0 {
		t.ShieldMs -= elapsedMs
	}
	if t.FireCD > 0 {
		t.FireCD -= elapsedMs
	}
	t.Moving = false
}

// Shielded reports whether the spawn shield is still up.
func (t *Tank) Shielded() bool {
	return t.ShieldMs > 0
}

// CanFire reports whether the tank may fire this tick.
func (t *Tank) CanFire() bool {
	return t.Alive && t.FireCD <= 0
}

// fireCooldown returns the per-kind cooldown applied after a shot.
func (t *Tank) fireCooldown() float64 {
	switch t.Kind {
	case KindEnemy:
		return EnemyFireCDMs
	case KindBot:
		return BotFireCDMs
	default:
		return PlayerFireCDMs
	}
}

// Center returns the bounding box center.
func (t *Tank) Center() (x, y float64) {
	return t.X + TankSize/2, t.Y + TankSize/2
}

// ToState converts to the public snapshot projection. Shield is exposed
// only as a derived boolean, never the raw countdown.
func (t *Tank) ToState() TankState {
	return TankState{
		ID:       t.ID,
		Name:     t.Name,
		Kind:     t.Kind,
		X:        round1(t.X),
		Y:        round1(t.Y),
		Dir:      int(t.Dir),
		Alive:    t.Alive,
		Lives:    t.Lives,
		Score:    t.Score,
		Deaths:   t.Deaths,
		Color:    t.Color,
		Shielded: t.Shielded(),
		Moving:   t.Moving,
	}
}
