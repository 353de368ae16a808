package main

import (
	"testing"
	"time"
)

func TestRecordMatchAggregates(t *testing.T) {
	db := openTestDB(t)
	aliceID, err := db.CreatePlayer("alice", "hash")
	if err != nil {
		t.Fatalf("create player: %v", err)
	}

	// A coop win: 300 points is three enemy kills.
	err = db.RecordMatch(MatchResult{
		Mode:       ModeCoop,
		Winner:     WinnerHumans,
		DurationMs: 90000,
		Rows: []ResultRow{
			{TankID: "t1", Name: "alice", Kind: KindHuman, Score: 3 * EnemyKillScore, Deaths: 1, AuthPlayerID: aliceID},
			{TankID: "t2", Name: "guest", Kind: KindHuman, Score: EnemyKillScore, Deaths: 2}, // guest line, no aggregate
		},
	})
	if err != nil {
		t.Fatalf("record coop match: %v", err)
	}

	stats, err := db.GetStats(aliceID)
	if err != nil || stats == nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.Kills != 3 || stats.Deaths != 1 || stats.Wins != 1 || stats.Matches != 1 {
		t.Errorf("coop aggregates wrong: %+v", stats)
	}

	// A deathmatch loss: frags count as-is, no win credited.
	err = db.RecordMatch(MatchResult{
		Mode:   ModeDeathmatch,
		Winner: "someone-else",
		Rows: []ResultRow{
			{TankID: "t3", Name: "alice", Kind: KindHuman, Score: 7, Deaths: 4, AuthPlayerID: aliceID},
		},
	})
	if err != nil {
		t.Fatalf("record dm match: %v", err)
	}

	stats, _ = db.GetStats(aliceID)
	if stats.Kills != 10 || stats.Deaths != 5 || stats.Wins != 1 || stats.Matches != 2 {
		t.Errorf("deathmatch aggregates wrong: %+v", stats)
	}
}

func TestDeathmatchWinByTankID(t *testing.T) {
	db := openTestDB(t)
	id, _ := db.CreatePlayer("bob", "hash")

	err := db.RecordMatch(MatchResult{
		Mode:   ModeDeathmatch,
		Winner: "tank-7",
		Rows: []ResultRow{
			{TankID: "tank-7", Name: "bob", Kind: KindHuman, Score: 20, AuthPlayerID: id},
		},
	})
	if err != nil {
		t.Fatalf("record match: %v", err)
	}
	stats, _ := db.GetStats(id)
	if stats.Wins != 1 {
		t.Errorf("winner's tank id should credit the win, got %+v", stats)
	}
}

func TestLeaderboardOrder(t *testing.T) {
	db := openTestDB(t)
	low, _ := db.CreatePlayer("low", "hash")
	high, _ := db.CreatePlayer("high", "hash")

	db.RecordMatch(MatchResult{Mode: ModeDeathmatch, Winner: "a", Rows: []ResultRow{
		{TankID: "a", Name: "high", Kind: KindHuman, Score: 15, AuthPlayerID: high},
		{TankID: "b", Name: "low", Kind: KindHuman, Score: 3, AuthPlayerID: low},
	}})

	rows, err := db.Leaderboard(10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Username != "high" || rows[0].Kills != 15 {
		t.Errorf("leaderboard should be ordered by kills, got %+v", rows)
	}
}

func TestInsertEventsBatch(t *testing.T) {
	db := openTestDB(t)
	events := []AnalyticsEvent{
		{Type: EvtMatchStart, SessionID: "s1", Timestamp: time.Now().UTC()},
		{Type: EvtMatchEnd, SessionID: "s1", Data: WinnerHumans, Timestamp: time.Now().UTC()},
	}
	if err := db.InsertEvents(events); err != nil {
		t.Fatalf("insert events: %v", err)
	}

	var n int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM events").Scan(&n); err != nil {
		t.Fatalf("count events: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 events, got %d", n)
	}
}

func TestGetPlayerAbsent(t *testing.T) {
	db := openTestDB(t)
	p, err := db.GetPlayerByUsername("nobody")
	if err != nil || p != nil {
		t.Errorf("absent player should be (nil, nil), got %v %v", p, err)
	}
}
