package display

import (
	"bytes"
	"strings"
	"testing"

	"koth/internal/board"
)

func TestRenderBoardPlain(t *testing.T) {
	b := board.Initial()
	out := RenderBoard(b.Snapshot(), ThemeOff)
	if strings.Contains(out, "\033[") {
		t.Fatal("plain board contains escape codes")
	}
	if !strings.Contains(out, "1 R N B Q K B N R  1") {
		t.Fatalf("rank 1 missing:\n%s", out)
	}
}

func TestRenderBoardThemed(t *testing.T) {
	b := board.Initial()
	out := RenderBoard(b.Snapshot(), ThemeBrown)
	if !strings.Contains(out, themes[ThemeBrown].centerBg) {
		t.Fatal("center squares not highlighted")
	}
	if strings.Count(out, "\n") != 10 {
		t.Fatalf("unexpected line count:\n%s", out)
	}
}

func TestParseTheme(t *testing.T) {
	for _, name := range []string{"off", "brown", "green", "gray"} {
		if _, err := ParseTheme(name); err != nil {
			t.Errorf("ParseTheme(%q): %v", name, err)
		}
	}
	if _, err := ParseTheme("purple"); err == nil {
		t.Error("ParseTheme accepted purple")
	}
}

func TestPrettyPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	PrettyPrintJSON(&buf, map[string]int{"plies": 3})
	if !strings.Contains(buf.String(), `"plies": 3`) {
		t.Fatalf("output = %q", buf.String())
	}
}
