package core

type State int

const (
	StateOngoing State = iota
	StateWhiteWins
	StateBlackWins
)

func (s State) String() string {
	switch s {
	case StateWhiteWins:
		return "white wins"
	case StateBlackWins:
		return "black wins"
	case StateOngoing:
		return "ongoing"
	default:
		return "unknown"
	}
}

// IsOver reports whether the state is terminal
func (s State) IsOver() bool {
	return s == StateWhiteWins || s == StateBlackWins
}

// ParseState is the inverse of State.String
func ParseState(s string) (State, bool) {
	switch s {
	case "ongoing":
		return StateOngoing, true
	case "white wins":
		return StateWhiteWins, true
	case "black wins":
		return StateBlackWins, true
	}
	return StateOngoing, false
}

// WinFor returns the terminal state naming c as the winner
func WinFor(c Color) State {
	if c == ColorWhite {
		return StateWhiteWins
	}
	return StateBlackWins
}

type Color byte

const (
	ColorWhite Color = iota + 1
	ColorBlack
)

func (c Color) String() string {
	if c == ColorWhite {
		return "w"
	} else if c == ColorBlack {
		return "b"
	} else {
		return "-"
	}
}

// ParseColor reads "w" or "b"
func ParseColor(s string) (Color, bool) {
	switch s {
	case "w":
		return ColorWhite, true
	case "b":
		return ColorBlack, true
	}
	return 0, false
}

// Name returns the capitalized color name for display
func (c Color) Name() string {
	switch c {
	case ColorWhite:
		return "White"
	case ColorBlack:
		return "Black"
	default:
		return "None"
	}
}

func OppositeColor(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

// PieceKind is the closed set of piece types, KindNone marks an empty square
type PieceKind byte

const (
	KindNone PieceKind = iota
	KindPawn
	KindRook
	KindKnight
	KindBishop
	KindQueen
	KindKing
)

func (k PieceKind) String() string {
	switch k {
	case KindPawn:
		return "pawn"
	case KindRook:
		return "rook"
	case KindKnight:
		return "knight"
	case KindBishop:
		return "bishop"
	case KindQueen:
		return "queen"
	case KindKing:
		return "king"
	default:
		return "none"
	}
}

// Letter returns the lowercase board letter of the kind, or 0 for KindNone
func (k PieceKind) Letter() byte {
	switch k {
	case KindPawn:
		return 'p'
	case KindRook:
		return 'r'
	case KindKnight:
		return 'n'
	case KindBishop:
		return 'b'
	case KindQueen:
		return 'q'
	case KindKing:
		return 'k'
	default:
		return 0
	}
}
