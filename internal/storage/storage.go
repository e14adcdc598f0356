package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrDegraded = errors.New("storage degraded")
	ErrClosed   = errors.New("storage closed")
)

const (
	writeQueueSize  = 1000
	shutdownTimeout = 2 * time.Second
)

// Store is the move journal: an append-only SQLite log written by a single
// async writer. A failed write marks the store degraded and later writes are
// dropped.
type Store struct {
	db           *sql.DB
	path         string
	writeChan    chan writeOp
	healthStatus atomic.Bool
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	closeOnce    sync.Once
	stopped      chan struct{} // closed when the writer exits
}

// writeOp is one queued unit of work. A flush marker carries only done and is
// acknowledged even when the store is degraded.
type writeOp struct {
	fn   func(*sql.Tx) error
	done chan struct{}
}

// NewStore opens the database and starts the async writer
func NewStore(dataSourceName string, devMode bool) (*Store, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL in development so the db subcommand can read while the server writes
	if devMode {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	ctx, cancel := context.WithCancel(context.Background())

	s := &Store{
		db:        db,
		path:      dataSourceName,
		writeChan: make(chan writeOp, writeQueueSize),
		ctx:       ctx,
		cancel:    cancel,
		stopped:   make(chan struct{}),
	}
	s.healthStatus.Store(true)

	s.wg.Add(1)
	go s.writerLoop()

	return s, nil
}

func (s *Store) writerLoop() {
	defer s.wg.Done()
	defer close(s.stopped)

	for {
		select {
		case <-s.ctx.Done():
			// Drain what is already queued, bounded by the shutdown timeout
			deadline := time.After(shutdownTimeout)
			for {
				select {
				case op := <-s.writeChan:
					s.process(op)
				case <-deadline:
					return
				default:
					return
				}
			}

		case op := <-s.writeChan:
			s.process(op)
		}
	}
}

// process runs a queued write, or acknowledges a flush marker
func (s *Store) process(op writeOp) {
	if op.done != nil {
		close(op.done)
		return
	}
	if s.healthStatus.Load() {
		s.executeWrite(op.fn)
	}
}

// executeWrite runs one queued write in its own transaction
func (s *Store) executeWrite(fn func(*sql.Tx) error) {
	tx, err := s.db.Begin()
	if err != nil {
		log.Printf("Storage degraded: failed to begin transaction: %v", err)
		s.healthStatus.Store(false)
		return
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		log.Printf("Storage degraded: write operation failed: %v", err)
		s.healthStatus.Store(false)
		return
	}

	if err := tx.Commit(); err != nil {
		log.Printf("Storage degraded: failed to commit: %v", err)
		s.healthStatus.Store(false)
	}
}

// enqueue hands a write to the writer without blocking. Writes are dropped
// when the store is degraded, closed, or the queue is full.
func (s *Store) enqueue(what string, fn func(*sql.Tx) error) {
	if !s.healthStatus.Load() || s.ctx.Err() != nil {
		return
	}
	select {
	case s.writeChan <- writeOp{fn: fn}:
	default:
		log.Printf("Storage write queue full, dropping %s", what)
	}
}

// RecordNewGame asynchronously records a new game
func (s *Store) RecordNewGame(record GameRecord) {
	s.enqueue("game record", func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO games (game_id, start_time_utc, result) VALUES (?, ?, ?)`,
			record.GameID, record.StartTimeUTC, record.Result,
		)
		return err
	})
}

// RecordMove asynchronously records an accepted move
func (s *Store) RecordMove(record MoveRecord) {
	s.enqueue("move record", func(tx *sql.Tx) error {
		query := `INSERT INTO moves (
			game_id, move_number, origin, destination, piece, captured, player_color, move_time_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.GameID, record.MoveNumber, record.Origin, record.Destination,
			record.Piece, record.Captured, record.PlayerColor, record.MoveTimeUTC,
		)
		return err
	})
}

// RecordResult asynchronously stores the final state of a game
func (s *Store) RecordResult(gameID, result string, endTime time.Time) {
	s.enqueue("game result", func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`UPDATE games SET result = ?, end_time_utc = ? WHERE game_id = ?`,
			result, endTime, gameID,
		)
		return err
	})
}

// Flush blocks until every write queued before the call has been processed.
// It fails if the store is degraded by then, or closed before the writer
// reached the marker.
func (s *Store) Flush(ctx context.Context) error {
	if !s.healthStatus.Load() {
		return ErrDegraded
	}
	done := make(chan struct{})
	select {
	case s.writeChan <- writeOp{done: done}:
	case <-s.stopped:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
	case <-s.stopped:
		select {
		case <-done:
		default:
			return ErrClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	if !s.healthStatus.Load() {
		return ErrDegraded
	}
	return nil
}

// IsHealthy returns the current health status
func (s *Store) IsHealthy() bool {
	return s.healthStatus.Load()
}

// Close stops the writer after draining queued writes and closes the database
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.cancel()

		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(shutdownTimeout):
			log.Printf("Warning: storage writer shutdown timeout, some writes may be lost")
		}

		err = s.db.Close()
	})
	return err
}

// InitDB creates the database schema
func (s *Store) InitDB() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return tx.Commit()
}

// DeleteDB closes the store and removes the database file
func (s *Store) DeleteDB() error {
	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	// ☣ DESTRUCTIVE: Removes database file
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete database file: %w", err)
	}

	return nil
}

// QueryGames lists recorded games, newest first. An empty or "*" gameID
// matches every game.
func (s *Store) QueryGames(gameID string) ([]GameRecord, error) {
	query := `SELECT game_id, start_time_utc, result, end_time_utc FROM games WHERE 1=1`

	var args []interface{}
	if gameID != "" && gameID != "*" {
		query += " AND game_id = ?"
		args = append(args, gameID)
	}
	query += " ORDER BY start_time_utc DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		if err := rows.Scan(&g.GameID, &g.StartTimeUTC, &g.Result, &g.EndTimeUTC); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return games, nil
}

// QueryMoves returns the journal of one game in move order
func (s *Store) QueryMoves(gameID string) ([]MoveRecord, error) {
	rows, err := s.db.Query(`SELECT
		move_id, game_id, move_number, origin, destination, piece, captured, player_color, move_time_utc
	FROM moves WHERE game_id = ? ORDER BY move_number`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		err := rows.Scan(
			&m.MoveID, &m.GameID, &m.MoveNumber, &m.Origin, &m.Destination,
			&m.Piece, &m.Captured, &m.PlayerColor, &m.MoveTimeUTC,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return moves, nil
}
