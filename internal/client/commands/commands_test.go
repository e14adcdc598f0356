package commands

import (
	"bytes"
	"net"
	"strings"
	"testing"
	"time"

	"koth/internal/client/api"
	"koth/internal/client/display"
	"koth/internal/core"
	"koth/internal/service"
	httptransport "koth/internal/transport/http"
)

func newLocal(t *testing.T) (*Registry, *Session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	s := NewSession(NewLocalDriver(), display.ThemeOff, &out)
	return NewRegistry(s), s, &out
}

func startServer(t *testing.T) string {
	t.Helper()
	svc := service.New(nil)
	app := httptransport.NewFiberApp(svc, true)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	go app.Listener(ln)
	t.Cleanup(func() {
		app.ShutdownWithTimeout(time.Second)
		svc.Shutdown(time.Second)
	})
	return "http://" + ln.Addr().String()
}

func TestBareSquaresAreAMove(t *testing.T) {
	r, s, out := newLocal(t)

	if r.Execute("e2 e4") {
		t.Fatal("move ended the loop")
	}
	st, _ := s.Driver.Status()
	if st.Plies != 1 || st.Mover != core.ColorBlack {
		t.Fatalf("status = %+v\n%s", st, out)
	}
	if !strings.Contains(out.String(), "e2-e4") {
		t.Fatalf("move not echoed:\n%s", out)
	}
}

func TestMoveCommand(t *testing.T) {
	r, s, out := newLocal(t)
	r.Execute("move e2 e4")
	r.Execute("m d7 d5")
	r.Execute("move e4 d5")

	st, _ := s.Driver.Status()
	if st.Plies != 3 || st.LastMove != "e4xd5 (pawn)" {
		t.Fatalf("status = %+v\n%s", st, out)
	}
}

func TestRejectedMoveReported(t *testing.T) {
	r, s, out := newLocal(t)
	r.Execute("e2 e5")

	if !strings.Contains(out.String(), "Error: illegal move") {
		t.Fatalf("output = %q", out.String())
	}
	st, _ := s.Driver.Status()
	if st.Plies != 0 {
		t.Fatalf("plies = %d after rejection", st.Plies)
	}
}

func TestCenterWinShown(t *testing.T) {
	r, _, out := newLocal(t)
	for _, line := range []string{"e2 e4", "d7 d5", "e1 e2", "d5 e4", "e2 e3", "h7 h6", "e3 d4"} {
		r.Execute(line)
	}
	if !strings.Contains(out.String(), "Game over: White wins") {
		t.Fatalf("win not shown:\n%s", out)
	}

	out.Reset()
	r.Execute("a7 a6")
	if !strings.Contains(out.String(), "game is over") {
		t.Fatalf("move after win not rejected:\n%s", out)
	}
}

func TestNewGameResets(t *testing.T) {
	r, s, _ := newLocal(t)
	r.Execute("e2 e4")
	r.Execute("new")
	st, _ := s.Driver.Status()
	if st.Plies != 0 || st.Mover != core.ColorWhite {
		t.Fatalf("status after new = %+v", st)
	}
}

func TestTheme(t *testing.T) {
	r, s, out := newLocal(t)
	r.Execute("theme green")
	if s.Theme != display.ThemeGreen {
		t.Fatalf("theme = %s", s.Theme)
	}
	r.Execute("theme purple")
	if s.Theme != display.ThemeGreen || !strings.Contains(out.String(), "invalid theme") {
		t.Fatalf("bad theme accepted:\n%s", out)
	}
}

func TestUnknownCommandAndExit(t *testing.T) {
	r, _, out := newLocal(t)
	if r.Execute("dance now please") {
		t.Fatal("unknown command exited")
	}
	if !strings.Contains(out.String(), "Unknown command: dance") {
		t.Fatalf("output = %q", out.String())
	}
	if !r.Execute("exit") || !r.Execute("x") {
		t.Fatal("exit did not end the loop")
	}
}

func TestHelp(t *testing.T) {
	r, _, out := newLocal(t)
	r.Execute("help")
	for _, name := range []string{"new", "move", "show", "state", "theme", "url", "exit"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("help missing %s", name)
		}
	}
	out.Reset()
	r.Execute("help move")
	if !strings.Contains(out.String(), "Usage: move <from> <to>") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRemoteDriver(t *testing.T) {
	base := startServer(t)
	r, s, out := newLocal(t)

	r.Execute("url " + base)
	rd, ok := s.Driver.(*RemoteDriver)
	if !ok {
		t.Fatalf("driver = %T\n%s", s.Driver, out)
	}
	if rd.GameID() == "" {
		t.Fatal("no game created on server")
	}

	r.Execute("e2 e4")
	r.Execute("e7 e5")
	st, err := s.Driver.Status()
	if err != nil {
		t.Fatal(err)
	}
	if st.Plies != 2 || st.Mover != core.ColorWhite || st.LastMove != "e7-e5" {
		t.Fatalf("status = %+v\n%s", st, out)
	}

	out.Reset()
	r.Execute("e2 e5")
	if !strings.Contains(out.String(), "INVALID_MOVE") {
		t.Fatalf("rejection not reported:\n%s", out)
	}

	r.Execute("url local")
	if _, ok := s.Driver.(*LocalDriver); !ok {
		t.Fatalf("driver = %T after url local", s.Driver)
	}
}

func TestRemoteWaitSeesOpponentMove(t *testing.T) {
	base := startServer(t)

	white := NewRemoteDriver(api.New(base))
	if _, err := white.NewGame(); err != nil {
		t.Fatal(err)
	}
	// A second client on the same game
	black := &RemoteDriver{client: api.New(base), gameID: white.GameID()}

	done := make(chan Status, 1)
	go func() {
		st, err := black.Wait(0)
		if err == nil {
			done <- st
		}
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	if _, err := white.Move("d2", "d4"); err != nil {
		t.Fatal(err)
	}

	select {
	case st, ok := <-done:
		if !ok {
			t.Fatal("wait failed")
		}
		if st.Plies != 1 || st.LastMove != "d2-d4" {
			t.Fatalf("status = %+v", st)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("wait not released")
	}
}

func TestStatusFromResponseRejectsGarbage(t *testing.T) {
	resp := &core.GameResponse{Turn: "w", State: "ongoing"}
	for i := range resp.Board {
		resp.Board[i] = "........"
	}
	if _, err := statusFromResponse(resp); err != nil {
		t.Fatalf("valid response rejected: %v", err)
	}

	bad := *resp
	bad.Turn = "z"
	if _, err := statusFromResponse(&bad); err == nil {
		t.Fatal("bad turn accepted")
	}
	bad = *resp
	bad.State = "stalemate"
	if _, err := statusFromResponse(&bad); err == nil {
		t.Fatal("bad state accepted")
	}
	bad = *resp
	bad.Board[0] = "xx"
	if _, err := statusFromResponse(&bad); err == nil {
		t.Fatal("bad board accepted")
	}
}
