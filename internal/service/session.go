package service

import (
	"time"

	"koth/internal/board"
	"koth/internal/core"
	"koth/internal/game"
)

// Session is one hosted game: the engine plus the bookkeeping the engine
// itself does not keep. Guarded by the service mutex.
type Session struct {
	ID        string
	CreatedAt time.Time
	engine    *game.Game
	plies     int
	lastMove  *game.MoveResult
}

// GameView is a consistent copy of a session taken under the service lock
type GameView struct {
	ID       string
	Board    board.Snapshot
	Mover    core.Color
	State    core.State
	Plies    int
	LastMove *game.MoveResult
}

func newSession(id string) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		engine:    game.New(),
	}
}

func (s *Session) view() GameView {
	v := GameView{
		ID:    s.ID,
		Board: s.engine.Board(),
		Mover: s.engine.Mover(),
		State: s.engine.State(),
		Plies: s.plies,
	}
	if s.lastMove != nil {
		last := *s.lastMove
		v.LastMove = &last
	}
	return v
}
