package display

import (
	"fmt"
	"strings"

	"koth/internal/board"
	"koth/internal/core"
)

type Theme string

const (
	ThemeOff   Theme = "off"
	ThemeBrown Theme = "brown"
	ThemeGreen Theme = "green"
	ThemeGray  Theme = "gray"
)

type themeColors struct {
	lightBg  string
	darkBg   string
	centerBg string
	white    string
	black    string
	reset    string
}

var themes = map[Theme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg:  "\033[48;5;230m", // Beige
		darkBg:   "\033[48;5;94m",  // Brown
		centerBg: "\033[48;5;178m", // Gold
		white:    "\033[97m",
		black:    "\033[30m",
		reset:    "\033[0m",
	},
	ThemeGreen: {
		lightBg:  "\033[48;5;157m", // Light green
		darkBg:   "\033[48;5;22m",  // Dark green
		centerBg: "\033[48;5;178m",
		white:    "\033[97m",
		black:    "\033[30m",
		reset:    "\033[0m",
	},
	ThemeGray: {
		lightBg:  "\033[48;5;251m", // Light gray
		darkBg:   "\033[48;5;240m", // Dark gray
		centerBg: "\033[48;5;178m",
		white:    "\033[97m",
		black:    "\033[30m",
		reset:    "\033[0m",
	},
}

// ParseTheme validates a theme name
func ParseTheme(name string) (Theme, error) {
	t := Theme(name)
	if _, ok := themes[t]; !ok {
		return ThemeOff, fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", name)
	}
	return t, nil
}

// RenderBoard draws the board with rank 8 on top. ThemeOff prints the plain
// ASCII layout with '.' for empty squares; other themes color the squares
// and mark the four center squares.
func RenderBoard(snap board.Snapshot, theme Theme) string {
	if theme == ThemeOff {
		return snap.ToASCII() + "\n"
	}

	tc := themes[theme]
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for r := 0; r < 8; r++ {
		sb.WriteString(fmt.Sprintf("%d ", 8-r))
		for f := 0; f < 8; f++ {
			bg := tc.darkBg
			if (r+f)%2 == 0 {
				bg = tc.lightBg
			}
			if (board.Square{Col: f, Row: r}).IsCenter() {
				bg = tc.centerBg
			}

			o := snap[r][f]
			if o.IsEmpty() {
				sb.WriteString(fmt.Sprintf("%s  %s", bg, tc.reset))
				continue
			}
			color := tc.black
			if o.Color == core.ColorWhite {
				color = tc.white
			}
			sb.WriteString(fmt.Sprintf("%s%s%c %s", bg, color, o.Letter(), tc.reset))
		}
		sb.WriteString(fmt.Sprintf(" %d\n", 8-r))
	}
	sb.WriteString("  a b c d e f g h\n")

	return sb.String()
}

// ColorForTurn returns colored turn indicator
func ColorForTurn(c core.Color) string {
	if c == core.ColorWhite {
		return Blue + c.Name() + Reset
	}
	return Red + c.Name() + Reset
}

// StateLine describes the game state for the status line
func StateLine(state core.State) string {
	switch state {
	case core.StateWhiteWins:
		return Green + "Game over: White wins" + Reset
	case core.StateBlackWins:
		return Green + "Game over: Black wins" + Reset
	default:
		return "Game in progress"
	}
}
