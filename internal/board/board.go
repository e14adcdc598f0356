package board

import (
	"fmt"
	"strings"

	"koth/internal/core"
)

const (
	StartingPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"
)

// Piece is the content of one board cell. The zero value is an empty square.
// Moved only matters for pawns and is carried with the piece when it moves.
type Piece struct {
	Kind  core.PieceKind
	Color core.Color
	Moved bool
}

func (p Piece) IsEmpty() bool {
	return p.Kind == core.KindNone
}

// Letter returns the board letter, uppercase for white, or 0 for an empty square
func (p Piece) Letter() byte {
	return Occupant{Kind: p.Kind, Color: p.Color}.Letter()
}

// Board is an 8x8 grid stored row-major with row 0 as rank 8.
// It is a plain value: copying a Board copies every cell.
type Board struct {
	squares [8][8]Piece
}

// Initial returns the standard starting position
func Initial() Board {
	b, err := ParsePlacement(StartingPlacement)
	if err != nil {
		panic(err)
	}
	return b
}

// ParsePlacement reads the piece placement field of a FEN string.
// Pawns away from their home rank are marked as moved.
func ParsePlacement(placement string) (Board, error) {
	var b Board

	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return b, fmt.Errorf("invalid placement: expected 8 ranks, got %d", len(ranks))
	}

	for r := 0; r < 8; r++ {
		file := 0
		for _, ch := range ranks[r] {
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			if file >= 8 {
				return b, fmt.Errorf("invalid placement: too many pieces in rank %d", 8-r)
			}
			p, ok := pieceFromLetter(byte(ch))
			if !ok {
				return b, fmt.Errorf("invalid placement: unknown piece %q", ch)
			}
			if p.Kind == core.KindPawn {
				p.Moved = !isPawnHomeRow(p.Color, r)
			}
			b.squares[r][file] = p
			file++
		}
		if file != 8 {
			return b, fmt.Errorf("invalid placement: rank %d has %d files", 8-r, file)
		}
	}

	return b, nil
}

func isPawnHomeRow(c core.Color, row int) bool {
	if c == core.ColorWhite {
		return row == 6
	}
	return row == 1
}

func pieceFromLetter(ch byte) (Piece, bool) {
	color := core.ColorBlack
	if ch >= 'A' && ch <= 'Z' {
		color = core.ColorWhite
		ch += 'a' - 'A'
	}

	var kind core.PieceKind
	switch ch {
	case 'p':
		kind = core.KindPawn
	case 'r':
		kind = core.KindRook
	case 'n':
		kind = core.KindKnight
	case 'b':
		kind = core.KindBishop
	case 'q':
		kind = core.KindQueen
	case 'k':
		kind = core.KindKing
	default:
		return Piece{}, false
	}
	return Piece{Kind: kind, Color: color}, true
}

// At returns the piece on sq. sq must be in bounds.
func (b *Board) At(sq Square) Piece {
	return b.squares[sq.Row][sq.Col]
}

func (b *Board) IsEmpty(sq Square) bool {
	return b.squares[sq.Row][sq.Col].IsEmpty()
}

func (b *Board) Set(sq Square, p Piece) {
	b.squares[sq.Row][sq.Col] = p
}

// Remove empties sq and returns what was there
func (b *Board) Remove(sq Square) Piece {
	p := b.squares[sq.Row][sq.Col]
	b.squares[sq.Row][sq.Col] = Piece{}
	return p
}

// Snapshot returns the read-only (kind, color) view of the board
func (b *Board) Snapshot() Snapshot {
	var s Snapshot
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			p := b.squares[r][f]
			s[r][f] = Occupant{Kind: p.Kind, Color: p.Color}
		}
	}
	return s
}

// ToASCII creates an ASCII representation of the board
func (b *Board) ToASCII() string {
	return b.Snapshot().ToASCII()
}

// Occupant is what a square shows to renderers: a kind and a color, nothing more
type Occupant struct {
	Kind  core.PieceKind
	Color core.Color
}

func (o Occupant) IsEmpty() bool {
	return o.Kind == core.KindNone
}

// Letter returns the board letter, uppercase for white, or 0 for an empty square
func (o Occupant) Letter() byte {
	ch := o.Kind.Letter()
	if ch != 0 && o.Color == core.ColorWhite {
		ch -= 'a' - 'A'
	}
	return ch
}

// Snapshot is an 8x8 view of square occupancy with row 0 as rank 8
type Snapshot [8][8]Occupant

func (s Snapshot) At(sq Square) Occupant {
	return s[sq.Row][sq.Col]
}

// Rows returns one string per rank, rank 8 first, with '.' for empty squares
func (s Snapshot) Rows() [8]string {
	var rows [8]string
	for r := 0; r < 8; r++ {
		var sb strings.Builder
		for f := 0; f < 8; f++ {
			if ch := s[r][f].Letter(); ch != 0 {
				sb.WriteByte(ch)
			} else {
				sb.WriteByte('.')
			}
		}
		rows[r] = sb.String()
	}
	return rows
}

// SnapshotFromRows rebuilds a snapshot from the output of Rows
func SnapshotFromRows(rows [8]string) (Snapshot, error) {
	var s Snapshot
	for r, row := range rows {
		if len(row) != 8 {
			return s, fmt.Errorf("invalid board row %d: %q", r, row)
		}
		for f := 0; f < 8; f++ {
			if row[f] == '.' {
				continue
			}
			p, ok := pieceFromLetter(row[f])
			if !ok {
				return s, fmt.Errorf("invalid board row %d: unknown piece %q", r, row[f])
			}
			s[r][f] = Occupant{Kind: p.Kind, Color: p.Color}
		}
	}
	return s, nil
}

// ToASCII creates an ASCII representation of the snapshot
func (s Snapshot) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for r := 0; r < 8; r++ {
		sb.WriteString(fmt.Sprintf("%d ", 8-r))
		for f := 0; f < 8; f++ {
			if ch := s[r][f].Letter(); ch != 0 {
				sb.WriteString(fmt.Sprintf("%c ", ch))
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", 8-r))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}
