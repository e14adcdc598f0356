// Package main implements the interactive King of the Hill client. It plays
// an in-process game by default, or a server-hosted one with -server.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"koth/internal/client/api"
	"koth/internal/client/commands"
	"koth/internal/client/display"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

func main() {
	var (
		server  = flag.String("server", "", "API server URL (plays locally if empty)")
		theme   = flag.String("theme", "off", "Board theme: off, brown, green, gray")
		history = flag.String("history", ".koth_history", "Readline history file")
	)
	flag.Parse()

	boardTheme, err := display.ParseTheme(*theme)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// No escape codes into pipes and files
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		display.Disable()
		boardTheme = display.ThemeOff
	}

	var driver commands.Driver = commands.NewLocalDriver()
	if *server != "" {
		driver = commands.NewRemoteDriver(api.New(*server))
	}

	s := commands.NewSession(driver, boardTheme, os.Stdout)
	registry := commands.NewRegistry(s)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("koth"),
		HistoryFile:     *history,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("%s%s%s\n", display.Red, err.Error(), display.Reset)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("%sKing of the Hill%s\n", display.Cyan, display.Reset)
	fmt.Printf("Bring your king to d4, e4, d5 or e5, or capture the enemy king.\n")
	fmt.Printf("Type 'help' for commands\n\n")

	// Start straight into a game
	registry.Execute("new")

	for {
		rl.SetPrompt(buildPrompt(s))

		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			// ^C clears the line
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if registry.Execute(line) {
			break
		}
	}
}

func buildPrompt(s *commands.Session) string {
	base := "koth"
	if rd, ok := s.Driver.(*commands.RemoteDriver); ok && rd.GameID() != "" {
		base += display.Yellow + " [" + display.White + rd.GameID()[:8] + display.Yellow + "]" + display.Reset
	}

	st, err := s.Driver.Status()
	if err != nil {
		return display.Prompt(base)
	}
	if st.State.IsOver() {
		return display.Prompt(base + " - " + st.State.String())
	}
	return display.Prompt(base + " - " + display.ColorForTurn(st.Mover))
}
