package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "koth.db")
	s, err := NewStore(path, false)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := s.InitDB(); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}

func flush(t *testing.T, s *Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func TestRecordGameAndMoves(t *testing.T) {
	s, _ := newTestStore(t)
	start := time.Now().UTC()

	s.RecordNewGame(GameRecord{GameID: "g1", StartTimeUTC: start, Result: "ongoing"})
	s.RecordMove(MoveRecord{
		GameID: "g1", MoveNumber: 1, Origin: "e2", Destination: "e4",
		Piece: "pawn", PlayerColor: "w", MoveTimeUTC: start,
	})
	s.RecordMove(MoveRecord{
		GameID: "g1", MoveNumber: 2, Origin: "d7", Destination: "d5",
		Piece: "pawn", PlayerColor: "b", MoveTimeUTC: start,
	})
	s.RecordMove(MoveRecord{
		GameID: "g1", MoveNumber: 3, Origin: "e4", Destination: "d5",
		Piece: "pawn", Captured: "pawn", PlayerColor: "w", MoveTimeUTC: start,
	})
	flush(t, s)

	games, err := s.QueryGames("g1")
	if err != nil {
		t.Fatalf("QueryGames: %v", err)
	}
	if len(games) != 1 || games[0].Result != "ongoing" || games[0].EndTimeUTC.Valid {
		t.Fatalf("games = %+v", games)
	}

	moves, err := s.QueryMoves("g1")
	if err != nil {
		t.Fatalf("QueryMoves: %v", err)
	}
	if len(moves) != 3 {
		t.Fatalf("got %d moves, want 3", len(moves))
	}
	if moves[2].Origin != "e4" || moves[2].Destination != "d5" || moves[2].Captured != "pawn" {
		t.Fatalf("third move = %+v", moves[2])
	}
	if !s.IsHealthy() {
		t.Fatal("store degraded after valid writes")
	}
}

func TestRecordResult(t *testing.T) {
	s, _ := newTestStore(t)
	now := time.Now().UTC()

	s.RecordNewGame(GameRecord{GameID: "g1", StartTimeUTC: now, Result: "ongoing"})
	s.RecordNewGame(GameRecord{GameID: "g2", StartTimeUTC: now.Add(time.Second), Result: "ongoing"})
	s.RecordResult("g1", "white wins", now.Add(time.Minute))
	flush(t, s)

	games, err := s.QueryGames("*")
	if err != nil {
		t.Fatalf("QueryGames: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("got %d games, want 2", len(games))
	}
	// Newest first
	if games[0].GameID != "g2" || games[1].GameID != "g1" {
		t.Fatalf("order = %s, %s", games[0].GameID, games[1].GameID)
	}
	if games[1].Result != "white wins" || !games[1].EndTimeUTC.Valid {
		t.Fatalf("g1 = %+v", games[1])
	}
}

func TestDuplicateMoveDegradesStore(t *testing.T) {
	s, _ := newTestStore(t)
	now := time.Now().UTC()

	s.RecordNewGame(GameRecord{GameID: "g1", StartTimeUTC: now, Result: "ongoing"})
	rec := MoveRecord{
		GameID: "g1", MoveNumber: 1, Origin: "e2", Destination: "e4",
		Piece: "pawn", PlayerColor: "w", MoveTimeUTC: now,
	}
	s.RecordMove(rec)
	flush(t, s)
	s.RecordMove(rec)

	deadline := time.Now().Add(5 * time.Second)
	for s.IsHealthy() {
		if time.Now().After(deadline) {
			t.Fatal("store still healthy after constraint violation")
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err := s.Flush(context.Background()); err == nil {
		t.Fatal("Flush succeeded on degraded store")
	}
}

func TestFlushAfterFailedWrite(t *testing.T) {
	s, _ := newTestStore(t)
	now := time.Now().UTC()

	s.RecordNewGame(GameRecord{GameID: "g1", StartTimeUTC: now, Result: "ongoing"})
	rec := MoveRecord{
		GameID: "g1", MoveNumber: 1, Origin: "e2", Destination: "e4",
		Piece: "pawn", PlayerColor: "w", MoveTimeUTC: now,
	}
	// The second insert violates the unique move number and degrades the
	// store while the flush marker is still queued behind it
	s.RecordMove(rec)
	s.RecordMove(rec)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.Flush(ctx)
	if !errors.Is(err, ErrDegraded) {
		t.Fatalf("Flush err = %v, want ErrDegraded", err)
	}
	if s.IsHealthy() {
		t.Fatal("store healthy after constraint violation")
	}
}

func TestFlushAfterClose(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Flush(ctx); !errors.Is(err, ErrClosed) {
		t.Fatalf("Flush err = %v, want ErrClosed", err)
	}
}

func TestCloseDrainsQueue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "koth.db")
	s, err := NewStore(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.InitDB(); err != nil {
		t.Fatal(err)
	}
	s.RecordNewGame(GameRecord{GameID: "g1", StartTimeUTC: time.Now().UTC(), Result: "ongoing"})
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// Second close is a no-op
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	reopened, err := NewStore(path, false)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	games, err := reopened.QueryGames("")
	if err != nil {
		t.Fatalf("QueryGames: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("got %d games after reopen, want 1", len(games))
	}
}

func TestDeleteDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "koth.db")
	s, err := NewStore(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.InitDB(); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteDB(); err != nil {
		t.Fatalf("DeleteDB: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("database file still present: %v", err)
	}
}
