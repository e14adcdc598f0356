package commands

import (
	"fmt"

	"koth/internal/client/display"
	"koth/internal/core"
)

func (r *Registry) registerGameCommands() {
	r.Register(&Command{
		Name:        "new",
		ShortName:   "n",
		Description: "Start a new game",
		Usage:       "new",
		Handler:     newGameHandler,
	})

	r.Register(&Command{
		Name:        "move",
		ShortName:   "m",
		Description: "Make a move",
		Usage:       "move <from> <to>  (e.g. move e2 e4)",
		Handler:     moveHandler,
	})

	r.Register(&Command{
		Name:        "show",
		ShortName:   "h",
		Description: "Show board and game state",
		Usage:       "show",
		Handler:     showBoardHandler,
	})

	r.Register(&Command{
		Name:        "state",
		ShortName:   "s",
		Description: "Show game state",
		Usage:       "state",
		Handler:     gameStateHandler,
	})

	r.Register(&Command{
		Name:        "poll",
		ShortName:   "p",
		Description: "Wait for the opponent's move (server games)",
		Usage:       "poll",
		Handler:     pollHandler,
	})
}

func newGameHandler(s *Session, args []string) error {
	st, err := s.Driver.NewGame()
	if err != nil {
		return err
	}
	fmt.Fprintf(s.Out, "%sNew game started (%s)%s\n", display.Cyan, s.Driver.Name(), display.Reset)
	printStatus(s, st)
	return nil
}

func moveHandler(s *Session, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: move <from> <to>")
	}

	before, err := s.Driver.Status()
	if err != nil {
		return err
	}

	st, err := s.Driver.Move(args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Fprintf(s.Out, "%s: %s\n", display.ColorForTurn(before.Mover), st.LastMove)
	printStatus(s, st)
	return nil
}

func showBoardHandler(s *Session, args []string) error {
	st, err := s.Driver.Status()
	if err != nil {
		return err
	}
	printStatus(s, st)
	return nil
}

func gameStateHandler(s *Session, args []string) error {
	st, err := s.Driver.Status()
	if err != nil {
		return err
	}

	if s.Verbose {
		display.PrettyPrintJSON(s.Out, map[string]interface{}{
			"game":     s.Driver.Name(),
			"turn":     st.Mover.String(),
			"state":    st.State.String(),
			"plies":    st.Plies,
			"board":    st.Board.Rows(),
			"lastMove": st.LastMove,
		})
		return nil
	}

	fmt.Fprintf(s.Out, "%s\n", display.StateLine(st.State))
	fmt.Fprintf(s.Out, "Plies: %d\n", st.Plies)
	if st.LastMove != "" {
		fmt.Fprintf(s.Out, "Last move: %s\n", st.LastMove)
	}
	if st.State == core.StateOngoing {
		fmt.Fprintf(s.Out, "To move: %s\n", display.ColorForTurn(st.Mover))
	}
	return nil
}

func pollHandler(s *Session, args []string) error {
	before, err := s.Driver.Status()
	if err != nil {
		return err
	}

	fmt.Fprintf(s.Out, "%sWaiting for a move...%s\n", display.Cyan, display.Reset)
	st, err := s.Driver.Wait(before.Plies)
	if err != nil {
		return err
	}
	if st.Plies == before.Plies {
		fmt.Fprintln(s.Out, "No move yet")
		return nil
	}
	fmt.Fprintf(s.Out, "%s: %s\n", display.ColorForTurn(before.Mover), st.LastMove)
	printStatus(s, st)
	return nil
}

func printStatus(s *Session, st Status) {
	fmt.Fprint(s.Out, display.RenderBoard(st.Board, s.Theme))
	if st.State.IsOver() {
		fmt.Fprintf(s.Out, "%s\n", display.StateLine(st.State))
		return
	}
	fmt.Fprintf(s.Out, "%s to move\n", display.ColorForTurn(st.Mover))
}
