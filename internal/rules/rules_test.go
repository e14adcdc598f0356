package rules

import (
	"testing"

	"koth/internal/board"
	"koth/internal/core"
)

func mustPlacement(t *testing.T, placement string) board.Board {
	t.Helper()
	b, err := board.ParsePlacement(placement)
	if err != nil {
		t.Fatalf("parse placement %q: %v", placement, err)
	}
	return b
}

func TestIsLegal(t *testing.T) {
	tests := []struct {
		name      string
		placement string
		from      string
		to        string
		want      bool
	}{
		// Pawns
		{"white pawn single step", board.StartingPlacement, "e2", "e3", true},
		{"white pawn double step", board.StartingPlacement, "e2", "e4", true},
		{"white pawn triple step", board.StartingPlacement, "e2", "e5", false},
		{"white pawn empty diagonal", board.StartingPlacement, "e2", "d3", false},
		{"white pawn backwards", "8/8/8/8/4P3/8/8/8", "e4", "e3", false},
		{"white pawn sideways", "8/8/8/8/4P3/8/8/8", "e4", "f4", false},
		{"white pawn diagonal double", board.StartingPlacement, "e2", "f4", false},
		{"black pawn single step", board.StartingPlacement, "d7", "d6", true},
		{"black pawn double step", board.StartingPlacement, "d7", "d5", true},
		{"black pawn backwards", "8/8/3p4/8/8/8/8/8", "d6", "d7", false},
		{"moved pawn double step", "8/8/8/8/8/4P3/8/8", "e3", "e5", false},
		{"moved pawn single step", "8/8/8/8/8/4P3/8/8", "e3", "e4", true},
		{"pawn blocked on double step", "8/8/8/8/8/4n3/4P3/8", "e2", "e4", false},
		{"pawn cannot capture ahead", "8/8/8/8/8/4n3/4P3/8", "e2", "e3", false},
		{"pawn double step onto piece", "8/8/8/8/4n3/8/4P3/8", "e2", "e4", false},
		{"white pawn diagonal capture", "8/8/8/3p4/4P3/8/8/8", "e4", "d5", true},
		{"black pawn diagonal capture", "8/8/8/3p4/4P3/8/8/8", "d5", "e4", true},
		{"pawn diagonal capture two files", "8/8/8/2p5/4P3/8/8/8", "e4", "c5", false},

		// Rooks
		{"rook vertical", "8/8/8/8/3R4/8/8/8", "d4", "d8", true},
		{"rook horizontal", "8/8/8/8/3R4/8/8/8", "d4", "a4", true},
		{"rook diagonal", "8/8/8/8/3R4/8/8/8", "d4", "e5", false},
		{"rook blocked", "8/8/3p4/8/3R4/8/8/8", "d4", "d8", false},
		{"rook onto blocker", "8/8/3p4/8/3R4/8/8/8", "d4", "d6", true},
		{"rook blocked in start position", board.StartingPlacement, "a1", "a3", false},

		// Knights
		{"knight jumps over pawns", board.StartingPlacement, "b1", "c3", true},
		{"knight long L", board.StartingPlacement, "g1", "h3", true},
		{"knight straight", board.StartingPlacement, "g1", "g3", false},
		{"knight diagonal", "8/8/8/8/3N4/8/8/8", "d4", "f6", false},
		{"knight surrounded", "8/8/8/2ppp3/2pNp3/2ppp3/8/8", "d4", "e6", true},

		// Bishops
		{"bishop long diagonal", "8/8/8/8/3B4/8/8/8", "d4", "g7", true},
		{"bishop back diagonal", "8/8/8/8/3B4/8/8/8", "d4", "a1", true},
		{"bishop single step", "8/8/8/8/3B4/8/8/8", "d4", "c5", true},
		{"bishop straight", "8/8/8/8/3B4/8/8/8", "d4", "d5", false},
		{"bishop off diagonal", "8/8/8/8/3B4/8/8/8", "d4", "e6", false},
		{"bishop blocked", "8/8/5p2/8/3B4/8/8/8", "d4", "g7", false},
		{"bishop blocked in start position", board.StartingPlacement, "c1", "g5", false},

		// Queens
		{"queen straight", "8/8/8/8/3Q4/8/8/8", "d4", "d1", true},
		{"queen diagonal", "8/8/8/8/3Q4/8/8/8", "d4", "h8", true},
		{"queen knight shape", "8/8/8/8/3Q4/8/8/8", "d4", "e6", false},
		{"queen blocked straight", "8/8/8/8/3Q1p2/8/8/8", "d4", "h4", false},
		{"queen blocked diagonal", "8/8/8/8/3Q4/2P5/8/8", "d4", "a1", false},

		// Kings
		{"king step", "8/8/8/8/3K4/8/8/8", "d4", "e5", true},
		{"king sideways", "8/8/8/8/3K4/8/8/8", "d4", "c4", true},
		{"king two squares", "8/8/8/8/3K4/8/8/8", "d4", "d6", false},

		// Empty origin
		{"empty origin", board.StartingPlacement, "e4", "e5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustPlacement(t, tt.placement)
			from := board.MustParseSquare(tt.from)
			to := board.MustParseSquare(tt.to)
			if got := IsLegal(&b, from, to); got != tt.want {
				t.Fatalf("IsLegal(%s, %s) = %v, want %v\n%s", tt.from, tt.to, got, tt.want, b.ToASCII())
			}
		})
	}
}

func TestIsLegalIsPure(t *testing.T) {
	placements := []string{
		board.StartingPlacement,
		"8/8/3p4/8/2pQ1P2/8/8/8",
		"8/8/8/3p4/4P3/8/8/8",
	}

	for _, placement := range placements {
		b := mustPlacement(t, placement)
		before := b

		for r := 0; r < 8; r++ {
			for f := 0; f < 8; f++ {
				from := board.Square{Col: f, Row: r}
				for rr := 0; rr < 8; rr++ {
					for ff := 0; ff < 8; ff++ {
						to := board.Square{Col: ff, Row: rr}
						first := IsLegal(&b, from, to)
						second := IsLegal(&b, from, to)
						if first != second {
							t.Fatalf("IsLegal(%s, %s) not deterministic on %q", from, to, placement)
						}
					}
				}
			}
		}

		if b != before {
			t.Fatalf("IsLegal mutated the board for %q", placement)
		}
	}
}

func TestNullMoveOnlyPassesForKing(t *testing.T) {
	b := mustPlacement(t, "8/8/8/8/1PRNBQK1/8/8/8")
	for _, sq := range []string{"b4", "c4", "d4", "e4", "f4", "g4"} {
		s := board.MustParseSquare(sq)
		got := IsLegal(&b, s, s)
		want := b.At(s).Kind == core.KindKing
		if got != want {
			t.Errorf("null move on %s (%s): got %v, want %v", sq, b.At(s).Kind, got, want)
		}
	}
}
