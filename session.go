package main

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

const maxSessions = 100

// SessionIdleTimeout is how long a session may sit with no activity
// before the janitor reaps it. A variable so tests can shorten it.
var SessionIdleTimeout = 5 * time.Minute

// Session represents one match room players can join
type Session struct {
	ID         string
	Name       string
	Mode       GameMode
	Game       *Game
	lastActive time.Time
}

// SessionManager handles creation, lookup and reaping of sessions
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	db       *DB
	metrics  *Analytics
	stop     chan struct{}
}

// NewSessionManager creates a SessionManager and starts its janitor
func NewSessionManager(db *DB, metrics *Analytics) *SessionManager {
	sm := &SessionManager{
		sessions: make(map[string]*Session),
		db:       db,
		metrics:  metrics,
		stop:     make(chan struct{}),
	}
	go sm.janitor()
	return sm
}

// CreateSession creates and starts a match for the given mode. Returns
// nil when the session limit is reached.
func (sm *SessionManager) CreateSession(name string, mode GameMode) *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	limit := maxSessions
	if v := viper.GetInt("limits.maxSessions"); v > 0 {
		limit = v
	}
	if len(sm.sessions) >= limit {
		return nil
	}

	game := NewGame(DefaultArena(), configuredMatch(mode), time.Now().UnixNano())
	sess := &Session{
		ID:         GenerateUUID(),
		Name:       name,
		Mode:       mode,
		Game:       game,
		lastActive: time.Now(),
	}
	game.SetResultHook(func(res MatchResult) {
		sm.recordResult(sess, res)
	})
	sm.sessions[sess.ID] = sess
	game.Start()

	if sm.metrics != nil {
		sm.metrics.Track(EvtMatchStart, 0, sess.ID, "")
	}
	logger.Info().Str("sid", sess.ID).Int("mode", int(mode)).Msg("session created")
	return sess
}

// recordResult persists a finished match and its analytics event.
func (sm *SessionManager) recordResult(sess *Session, res MatchResult) {
	if sm.metrics != nil {
		sm.metrics.Track(EvtMatchEnd, 0, sess.ID, res.Winner)
	}
	if sm.db == nil {
		return
	}
	if err := sm.db.RecordMatch(res); err != nil {
		logger.Error().Err(err).Str("sid", sess.ID).Msg("record match")
	}
}

// GetSession returns a session by ID
func (sm *SessionManager) GetSession(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// MarkActive refreshes a session's idle timer
func (sm *SessionManager) MarkActive(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sess, ok := sm.sessions[id]; ok {
		sess.lastActive = time.Now()
	}
}

// RemovePlayer removes a player from a session, reaping the session when
// it empties out
func (sm *SessionManager) RemovePlayer(sessionID, tankID string) {
	sm.mu.RLock()
	sess, ok := sm.sessions[sessionID]
	sm.mu.RUnlock()
	if !ok {
		return
	}
	sess.Game.RemovePlayer(tankID)

	if sess.Game.PlayerCount() == 0 {
		sess.Game.Stop()
		sm.mu.Lock()
		delete(sm.sessions, sessionID)
		sm.mu.Unlock()
	}
}

// ListSessions returns info about all active sessions
func (sm *SessionManager) ListSessions() []SessionInfo {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	list := make([]SessionInfo, 0, len(sm.sessions))
	for _, sess := range sm.sessions {
		list = append(list, SessionInfo{
			ID:      sess.ID,
			Name:    sess.Name,
			Mode:    int(sess.Mode),
			Players: sess.Game.PlayerCount(),
		})
	}
	return list
}

// Stop halts the janitor and every running session
func (sm *SessionManager) Stop() {
	close(sm.stop)
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for id, sess := range sm.sessions {
		sess.Game.Stop()
		delete(sm.sessions, id)
	}
}

// janitor reaps sessions that have been idle with no players
func (sm *SessionManager) janitor() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sm.sweep()
		case <-sm.stop:
			return
		}
	}
}

func (sm *SessionManager) sweep() {
	cutoff := time.Now().Add(-SessionIdleTimeout)
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for id, sess := range sm.sessions {
		if sess.Game.PlayerCount() == 0 && sess.lastActive.Before(cutoff) {
			sess.Game.Stop()
			delete(sm.sessions, id)
			logger.Info().Str("sid", id).Msg("idle session reaped")
		}
	}
}
