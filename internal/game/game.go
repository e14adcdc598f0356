package game

import (
	"fmt"

	"koth/internal/board"
	"koth/internal/core"
	"koth/internal/rules"
)

// MoveResult tracks the outcome of an accepted move
type MoveResult struct {
	From      board.Square
	To        board.Square
	Piece     core.PieceKind
	Captured  core.PieceKind // KindNone when nothing was taken
	Player    core.Color
	GameState core.State
}

// Game is a single King of the Hill game. It is not safe for concurrent use;
// callers sharing a Game must serialize access.
type Game struct {
	board board.Board
	mover core.Color
	state core.State
}

// New starts a game from the standard position with white to move
func New() *Game {
	return NewFromBoard(board.Initial(), core.ColorWhite)
}

// NewFromBoard starts an ongoing game from an arbitrary position
func NewFromBoard(b board.Board, mover core.Color) *Game {
	return &Game{
		board: b,
		mover: mover,
		state: core.StateOngoing,
	}
}

// Board returns a read-only view of square occupancy
func (g *Game) Board() board.Snapshot {
	return g.board.Snapshot()
}

// State returns the current game state
func (g *Game) State() core.State {
	return g.state
}

// Mover returns the color to move
func (g *Game) Mover() core.Color {
	return g.mover
}

// SubmitMove plays origin to destination and reports whether it was accepted
func (g *Game) SubmitMove(origin, destination string) bool {
	_, err := g.Move(origin, destination)
	return err == nil
}

// Move validates and plays a move given in algebraic notation ("e2", "e4").
// On rejection the returned error wraps one of the Err values of this package
// and the game is unchanged.
func (g *Game) Move(origin, destination string) (*MoveResult, error) {
	from, err := board.ParseSquare(origin)
	if err != nil {
		return nil, err
	}
	to, err := board.ParseSquare(destination)
	if err != nil {
		return nil, err
	}

	if err = g.validate(from, to); err != nil {
		return nil, err
	}
	return g.commit(from, to), nil
}

// validate runs every rejection check without touching the board
func (g *Game) validate(from, to board.Square) error {
	if g.state != core.StateOngoing {
		return fmt.Errorf("%w: %s", ErrGameOver, g.state)
	}
	if from == to {
		return fmt.Errorf("%w: %s", ErrNullMove, from)
	}

	piece := g.board.At(from)
	if piece.IsEmpty() {
		return fmt.Errorf("%w: %s", ErrEmptyOrigin, from)
	}
	if piece.Color != g.mover {
		return fmt.Errorf("%w: %s to move", ErrWrongMover, g.mover.Name())
	}

	target := g.board.At(to)
	if !target.IsEmpty() && target.Color == g.mover {
		return fmt.Errorf("%w: %s", ErrFriendlyCapture, to)
	}

	if !rules.IsLegal(&g.board, from, to) {
		return fmt.Errorf("%w: %s %s to %s", ErrIllegalMove, piece.Kind, from, to)
	}
	return nil
}

// commit applies a validated move on a copy of the board and swaps it in
func (g *Game) commit(from, to board.Square) *MoveResult {
	next := g.board

	inHand := next.Remove(from)
	captured := next.At(to)

	state := g.state
	// King of the hill
	if inHand.Kind == core.KindKing && to.IsCenter() {
		state = core.WinFor(g.mover)
	}
	// King capture
	if captured.Kind == core.KindKing {
		state = core.WinFor(g.mover)
	}

	inHand.Moved = true
	next.Set(to, inHand)

	result := &MoveResult{
		From:      from,
		To:        to,
		Piece:     inHand.Kind,
		Captured:  captured.Kind,
		Player:    g.mover,
		GameState: state,
	}

	g.board = next
	g.state = state
	g.mover = core.OppositeColor(g.mover)

	return result
}
