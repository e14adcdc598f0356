package commands

import (
	"fmt"

	"koth/internal/board"
	"koth/internal/client/api"
	"koth/internal/core"
	"koth/internal/game"
)

// Status is what the prompt needs to know about the current game
type Status struct {
	Board    board.Snapshot
	Mover    core.Color
	State    core.State
	Plies    int
	LastMove string // "e2-e4", empty before the first move
}

// Driver plays a game either in-process or through the HTTP API
type Driver interface {
	Name() string
	NewGame() (Status, error)
	Move(from, to string) (Status, error)
	Status() (Status, error)
	// Wait blocks until the ply count differs from plies or the server
	// wait window ends
	Wait(plies int) (Status, error)
}

// LocalDriver runs the engine in this process
type LocalDriver struct {
	g     *game.Game
	plies int
	last  string
}

func NewLocalDriver() *LocalDriver {
	return &LocalDriver{g: game.New()}
}

func (d *LocalDriver) Name() string {
	return "local"
}

func (d *LocalDriver) NewGame() (Status, error) {
	d.g = game.New()
	d.plies = 0
	d.last = ""
	return d.Status()
}

func (d *LocalDriver) Move(from, to string) (Status, error) {
	res, err := d.g.Move(from, to)
	if err != nil {
		return Status{}, err
	}
	d.plies++
	d.last = formatMove(res.From.String(), res.To.String(), res.Captured.String(), res.Captured != core.KindNone)
	return d.Status()
}

func (d *LocalDriver) Status() (Status, error) {
	return Status{
		Board:    d.g.Board(),
		Mover:    d.g.Mover(),
		State:    d.g.State(),
		Plies:    d.plies,
		LastMove: d.last,
	}, nil
}

// Wait returns at once: nobody else can move in a local game
func (d *LocalDriver) Wait(int) (Status, error) {
	return d.Status()
}

// RemoteDriver plays a game hosted by koth-server
type RemoteDriver struct {
	client *api.Client
	gameID string
}

func NewRemoteDriver(client *api.Client) *RemoteDriver {
	return &RemoteDriver{client: client}
}

func (d *RemoteDriver) Name() string {
	return d.client.BaseURL
}

// GameID returns the server-side ID of the current game
func (d *RemoteDriver) GameID() string {
	return d.gameID
}

func (d *RemoteDriver) NewGame() (Status, error) {
	resp, err := d.client.CreateGame()
	if err != nil {
		return Status{}, err
	}
	d.gameID = resp.GameID
	return statusFromResponse(resp)
}

func (d *RemoteDriver) Move(from, to string) (Status, error) {
	if d.gameID == "" {
		return Status{}, fmt.Errorf("no active game, use 'new'")
	}
	resp, err := d.client.MakeMove(d.gameID, from, to)
	if err != nil {
		return Status{}, err
	}
	return statusFromResponse(resp)
}

func (d *RemoteDriver) Status() (Status, error) {
	if d.gameID == "" {
		return Status{}, fmt.Errorf("no active game, use 'new'")
	}
	resp, err := d.client.GetGame(d.gameID)
	if err != nil {
		return Status{}, err
	}
	return statusFromResponse(resp)
}

func (d *RemoteDriver) Wait(plies int) (Status, error) {
	if d.gameID == "" {
		return Status{}, fmt.Errorf("no active game, use 'new'")
	}
	resp, err := d.client.GetGameWithPoll(d.gameID, plies)
	if err != nil {
		return Status{}, err
	}
	return statusFromResponse(resp)
}

func statusFromResponse(resp *core.GameResponse) (Status, error) {
	snap, err := board.SnapshotFromRows(resp.Board)
	if err != nil {
		return Status{}, fmt.Errorf("bad board from server: %w", err)
	}
	mover, ok := core.ParseColor(resp.Turn)
	if !ok {
		return Status{}, fmt.Errorf("bad turn from server: %q", resp.Turn)
	}
	state, ok := core.ParseState(resp.State)
	if !ok {
		return Status{}, fmt.Errorf("bad state from server: %q", resp.State)
	}

	st := Status{
		Board: snap,
		Mover: mover,
		State: state,
		Plies: resp.Plies,
	}
	if lm := resp.LastMove; lm != nil {
		st.LastMove = formatMove(lm.From, lm.To, lm.Captured, lm.Captured != "")
	}
	return st, nil
}

func formatMove(from, to, captured string, capture bool) string {
	if capture {
		return fmt.Sprintf("%sx%s (%s)", from, to, captured)
	}
	return from + "-" + to
}
