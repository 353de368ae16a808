package main

// GameMode defines the rule set of a session
type GameMode int

const (
	ModeCoop       GameMode = 0 // humans defend the base against classic enemies
	ModeDeathmatch GameMode = 1 // humans only, free-for-all frags
	ModeBotmatch   GameMode = 2 // free-for-all with AI bots filling the field
)

// Winner identities for coop mode. Deathmatch winners are tank IDs.
const (
	WinnerAI     = "ai"
	WinnerHumans = "humans"
)

// MatchConfig holds the rule settings for a session
type MatchConfig struct {
	Mode            GameMode
	FragTarget      int     // deathmatch: score that ends the match
	PlayerLives     int     // coop: finite lives per human
	BotCount        int     // botmatch: AI participants created at start
	EnemyQuota      int     // coop: total classic enemies to spawn
	EnemyMaxOnField int     // coop: concurrent classic enemies
	EnemySpawnMs    float64 // coop: interval between spawn attempts
	RespawnDelayMs  float64 // deathmatch: elimination-to-respawn delay
	MaxPlayers      int
}

// DefaultConfig returns the default config for the given mode
func DefaultConfig(mode GameMode) MatchConfig {
	switch mode {
	case ModeDeathmatch:
		return MatchConfig{
			Mode:           ModeDeathmatch,
			FragTarget:     20,
			RespawnDelayMs: 2000,
			MaxPlayers:     8,
		}
	case ModeBotmatch:
		return MatchConfig{
			Mode:           ModeBotmatch,
			FragTarget:     20,
			BotCount:       3,
			RespawnDelayMs: 2000,
			MaxPlayers:     8,
		}
	default:
		return MatchConfig{
			Mode:            ModeCoop,
			PlayerLives:     PlayerLives,
			EnemyQuota:      20,
			EnemyMaxOnField: 4,
			EnemySpawnMs:    3000,
			MaxPlayers:      4,
		}
	}
}

// IsDeathmatch reports whether the mode uses frag scoring and delayed
// respawn (with or without bots).
func (c MatchConfig) IsDeathmatch() bool {
	return c.Mode == ModeDeathmatch || c.Mode == ModeBotmatch
}

// checkWin evaluates the per-mode terminal condition. An already-terminal
// match is never re-evaluated; base destruction is detected inline during
// terrain resolution, not here.
func (g *Game) checkWin() {
	if g.over {
		return
	}

	if g.config.IsDeathmatch() {
		// First participant observed at the frag target wins. Under
		// simultaneous frags in one tick the iteration order decides;
		// a known, documented non-determinism.
		for _, t := range g.tanks {
			if t.Score >= g.config.FragTarget {
				g.finish(t.ID, t.Name)
				return
			}
		}
		return
	}

	// Coop: defeat once every human is out of lives.
	humans := 0
	outOfLives := 0
	for _, t := range g.tanks {
		if t.Kind != KindHuman {
			continue
		}
		humans++
		if !t.Alive && t.Lives == 0 {
			outOfLives++
		}
	}
	if g.humansJoined > 0 && humans > 0 && outOfLives == humans {
		g.finish(WinnerAI, "")
		return
	}

	// Coop: victory once the spawn quota is exhausted and the field is clear.
	if g.config.EnemyQuota > 0 && g.enemiesLeft == 0 && g.enemiesOnField == 0 {
		g.finish(WinnerHumans, "")
	}
}

// finish marks the match terminal. The flag is never unset except by full
// reinitialization.
func (g *Game) finish(winner, winnerName string) {
	if g.over {
		return
	}
	g.over = true
	g.winner = winner
	g.winnerName = winnerName
}
