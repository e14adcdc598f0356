package board

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrMalformedSquare = errors.New("malformed square")
	ErrOutOfBounds     = errors.New("square out of bounds")
)

// Square addresses a board cell. Row 0 is rank 8, column 0 is file a.
type Square struct {
	Col int
	Row int
}

// ParseSquare converts algebraic notation such as "e2" into a Square.
// The rank is read as a decimal integer, so "a9" or "a10" parse but are out of bounds.
func ParseSquare(s string) (Square, error) {
	if len(s) < 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrMalformedSquare, s)
	}
	file := s[0]
	if file < 'a' || file > 'h' {
		return Square{}, fmt.Errorf("%w: %q has no file a-h", ErrMalformedSquare, s)
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return Square{}, fmt.Errorf("%w: %q has a non-numeric rank", ErrMalformedSquare, s)
		}
	}
	rank, err := strconv.Atoi(s[1:])
	if err != nil {
		return Square{}, fmt.Errorf("%w: %q", ErrMalformedSquare, s)
	}

	sq := Square{Col: int(file - 'a'), Row: 8 - rank}
	if !sq.InBounds() {
		return Square{}, fmt.Errorf("%w: %q", ErrOutOfBounds, s)
	}
	return sq, nil
}

// MustParseSquare is ParseSquare for literals known to be valid
func MustParseSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

func (s Square) InBounds() bool {
	return s.Col >= 0 && s.Col < 8 && s.Row >= 0 && s.Row < 8
}

// Rank returns the chess rank (1-8) of the square
func (s Square) Rank() int {
	return 8 - s.Row
}

func (s Square) String() string {
	if !s.InBounds() {
		return "??"
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col, s.Rank())
}

// IsCenter reports whether the square is one of d4, e4, d5, e5
func (s Square) IsCenter() bool {
	return (s.Col == 3 || s.Col == 4) && (s.Row == 3 || s.Row == 4)
}
