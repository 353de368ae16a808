package main

import (
	"sync"
	"time"
)

// Event types for analytics tracking
const (
	EvtMatchStart   = "match_start"
	EvtMatchEnd     = "match_end"
	EvtSessionStart = "session_start"
	EvtSessionEnd   = "session_end"
)

const (
	analyticsBufSize   = 1024
	analyticsBatchSize = 64
	analyticsFlushWait = 5 * time.Second
)

// AnalyticsEvent represents a single trackable event
type AnalyticsEvent struct {
	Type      string
	PlayerID  int64
	SessionID string
	Data      string
	Timestamp time.Time
}

// Analytics handles event tracking with batched background writes
type Analytics struct {
	db     *DB
	events chan AnalyticsEvent
	stop   chan struct{}
	wg     sync.WaitGroup
}

// NewAnalytics creates and starts the analytics background writer
func NewAnalytics(db *DB) *Analytics {
	a := &Analytics{
		db:     db,
		events: make(chan AnalyticsEvent, analyticsBufSize),
		stop:   make(chan struct{}),
	}
	a.wg.Add(1)
	go a.writer()
	return a
}

// Track enqueues an event for async persistence (non-blocking)
func (a *Analytics) Track(evtType string, playerID int64, sessionID string, data string) {
	select {
	case a.events <- AnalyticsEvent{
		Type:      evtType,
		PlayerID:  playerID,
		SessionID: sessionID,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}:
	default:
		// Channel full — drop event rather than blocking the game loop
	}
}

// Stop flushes and shuts down the writer
func (a *Analytics) Stop() {
	close(a.stop)
	a.wg.Wait()
}

// writer batches events and writes them to the database
func (a *Analytics) writer() {
	defer a.wg.Done()

	batch := make([]AnalyticsEvent, 0, analyticsBatchSize)
	ticker := time.NewTicker(analyticsFlushWait)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 || a.db == nil {
			batch = batch[:0]
			return
		}
		if err := a.db.InsertEvents(batch); err != nil {
			logger.Error().Err(err).Int("n", len(batch)).Msg("analytics flush")
		}
		batch = batch[:0]
	}

	for {
		select {
		case e := <-a.events:
			batch = append(batch, e)
			if len(batch) >= analyticsBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-a.stop:
			// Drain what's left before exiting
			for {
				select {
				case e := <-a.events:
					batch = append(batch, e)
				default:
					flush()
					return
				}
			}
		}
	}
}
