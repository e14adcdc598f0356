package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"koth/internal/storage"
)

// Run is the entry point for the db subcommand
func Run(args []string) error {
	return run(args, os.Stdout)
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand required: init, delete, query")
	}

	switch args[0] {
	case "init":
		return runInit(args[1:], out)
	case "delete":
		return runDelete(args[1:], out)
	case "query":
		return runQuery(args[1:], out)
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

func runInit(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("database path required")
	}

	store, err := storage.NewStore(*path, false)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	fmt.Fprintf(out, "Database initialized at: %s\n", *path)
	return nil
}

func runDelete(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("database path required")
	}

	store, err := storage.NewStore(*path, false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	if err := store.DeleteDB(); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}

	fmt.Fprintf(out, "Database deleted: %s\n", *path)
	return nil
}

func runQuery(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	path := fs.String("path", "", "Database file path (required)")
	gameID := fs.String("gameId", "", "Game ID to filter (optional, * for all)")
	moves := fs.Bool("moves", false, "List the moves of each game found")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("database path required")
	}

	store, err := storage.NewStore(*path, false)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	games, err := store.QueryGames(*gameID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(games) == 0 {
		fmt.Fprintln(out, "No games found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Game ID\tResult\tStart Time\tEnd Time")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, g := range games {
		end := "-"
		if g.EndTimeUTC.Valid {
			end = g.EndTimeUTC.Time.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			shortID(g.GameID),
			g.Result,
			g.StartTimeUTC.Format("2006-01-02 15:04:05"),
			end,
		)
	}
	w.Flush()

	if *moves {
		for _, g := range games {
			if err := printMoves(out, store, g.GameID); err != nil {
				return err
			}
		}
	}

	fmt.Fprintf(out, "\nFound %d game(s)\n", len(games))
	return nil
}

func printMoves(out io.Writer, store *storage.Store, gameID string) error {
	records, err := store.QueryMoves(gameID)
	if err != nil {
		return fmt.Errorf("query moves failed: %w", err)
	}

	fmt.Fprintf(out, "\n%s\n", gameID)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tColor\tPiece\tMove\tCaptured")
	for _, m := range records {
		captured := m.Captured
		if captured == "" {
			captured = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s-%s\t%s\n",
			m.MoveNumber, m.PlayerColor, m.Piece, m.Origin, m.Destination, captured)
	}
	return w.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8] + "..."
	}
	return id
}
