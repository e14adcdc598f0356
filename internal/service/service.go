package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"koth/internal/core"
	"koth/internal/storage"

	"github.com/google/uuid"
)

var (
	// ErrGameNotFound is wrapped by every lookup of an unknown game ID
	ErrGameNotFound = errors.New("game not found")
	// ErrShuttingDown is returned by every operation after Shutdown began
	ErrShuttingDown = errors.New("service shutting down")
)

// Service hosts concurrent games. All engine access goes through mu.
type Service struct {
	games  map[string]*Session
	mu     sync.RWMutex
	store  *storage.Store // nil if persistence disabled
	waiter *WaitRegistry
	closed bool // set by Shutdown under mu
}

// New creates a service with optional storage
func New(store *storage.Store) *Service {
	return &Service{
		games:  make(map[string]*Session),
		store:  store,
		waiter: NewWaitRegistry(),
	}
}

// CreateGame starts a game from the standard position and returns its ID
func (s *Service) CreateGame() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return "", ErrShuttingDown
	}

	id := s.generateGameID()
	sess := newSession(id)
	s.games[id] = sess

	if s.store != nil {
		s.store.RecordNewGame(storage.GameRecord{
			GameID:       id,
			StartTimeUTC: sess.CreatedAt,
			Result:       sess.engine.State().String(),
		})
	}

	return id, nil
}

// generateGameID returns an unused UUID. Caller holds mu.
func (s *Service) generateGameID() string {
	for {
		id := uuid.New().String()
		if _, exists := s.games[id]; !exists {
			return id
		}
	}
}

// lookup finds a session. Caller holds mu.
func (s *Service) lookup(gameID string) (*Session, error) {
	if s.closed {
		return nil, ErrShuttingDown
	}
	sess, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return sess, nil
}

// View returns a snapshot of the game that is safe to use without the lock
func (s *Service) View(gameID string) (GameView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.lookup(gameID)
	if err != nil {
		return GameView{}, err
	}
	return sess.view(), nil
}

// MakeMove submits a move to the game's engine and returns the game as it
// stands right after that move. Rejections are the engine's errors,
// unchanged, so callers can match them with errors.Is.
func (s *Service) MakeMove(gameID, from, to string) (GameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.lookup(gameID)
	if err != nil {
		return GameView{}, err
	}

	res, err := sess.engine.Move(from, to)
	if err != nil {
		return GameView{}, err
	}
	sess.plies++
	sess.lastMove = res

	if s.store != nil {
		now := time.Now().UTC()
		rec := storage.MoveRecord{
			GameID:      gameID,
			MoveNumber:  sess.plies,
			Origin:      res.From.String(),
			Destination: res.To.String(),
			Piece:       res.Piece.String(),
			PlayerColor: res.Player.String(),
			MoveTimeUTC: now,
		}
		if res.Captured != core.KindNone {
			rec.Captured = res.Captured.String()
		}
		s.store.RecordMove(rec)

		if res.GameState.IsOver() {
			s.store.RecordResult(gameID, res.GameState.String(), now)
		}
	}

	s.waiter.NotifyGame(gameID, sess.plies)

	return sess.view(), nil
}

// DeleteGame removes a game from memory. The journal keeps its record.
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(gameID); err != nil {
		return err
	}

	// Release long-pollers before the game disappears
	s.waiter.RemoveGame(gameID)

	delete(s.games, gameID)
	return nil
}

// RegisterWait registers a long-poll on gameID. The returned channel is
// closed once the ply count differs from plies, the game is deleted, the
// wait times out, ctx is done, or the service shuts down.
func (s *Service) RegisterWait(gameID string, plies int, ctx context.Context) <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Already stale: answer at once
	if sess, err := s.lookup(gameID); err != nil || sess.plies != plies {
		done := make(chan struct{})
		close(done)
		return done
	}
	return s.waiter.RegisterWait(gameID, plies, ctx)
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// Shutdown rejects further operations, releases waiters, drops all games and
// closes storage. Moves accepted before it are already queued on the journal
// and drained by the store's Close.
func (s *Service) Shutdown(timeout time.Duration) error {
	var errs []error

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.games = make(map[string]*Session)
	s.mu.Unlock()

	if err := s.waiter.Shutdown(timeout); err != nil {
		errs = append(errs, err)
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage close: %w", err))
		}
	}

	return errors.Join(errs...)
}
