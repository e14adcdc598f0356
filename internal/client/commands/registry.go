package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"koth/internal/client/display"
)

// ErrExit is returned by the exit command to end the input loop
var ErrExit = errors.New("exit")

// Command defines a client command with its handler
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Handler     func(*Session, []string) error
}

// Registry manages command registration and execution
type Registry struct {
	session  *Session
	commands map[string]*Command
}

func NewRegistry(session *Session) *Registry {
	r := &Registry{
		session:  session,
		commands: make(map[string]*Command),
	}

	r.registerGameCommands()
	r.registerUtilCommands()

	r.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Description: "Show available commands",
		Usage:       "help [command]",
		Handler:     r.helpHandler,
	})

	r.Register(&Command{
		Name:        "exit",
		ShortName:   "x",
		Description: "Exit the client",
		Usage:       "exit",
		Handler:     exitHandler,
	})

	return r
}

func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
}

// Execute runs one input line and reports whether the client should exit.
// Two bare squares ("e2 e4") are read as a move.
func (r *Registry) Execute(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return false
	}

	cmdName := parts[0]
	args := parts[1:]

	cmd, exists := r.commands[cmdName]
	if !exists {
		if len(parts) == 2 {
			cmd, args = r.commands["move"], parts
		} else {
			fmt.Fprintf(r.session.Out, "%sUnknown command: %s%s\n", display.Red, cmdName, display.Reset)
			fmt.Fprintf(r.session.Out, "Type 'help' for available commands\n")
			return false
		}
	}

	err := cmd.Handler(r.session, args)
	if errors.Is(err, ErrExit) {
		return true
	}
	if err != nil {
		fmt.Fprintf(r.session.Out, "%sError: %s%s\n", display.Red, err.Error(), display.Reset)
	}
	return false
}

func (r *Registry) helpHandler(s *Session, args []string) error {
	if len(args) > 0 {
		cmd, exists := r.commands[args[0]]
		if !exists {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		fmt.Fprintf(s.Out, "\n%s%s%s - %s\n", display.Cyan, cmd.Name, display.Reset, cmd.Description)
		if cmd.ShortName != "" {
			fmt.Fprintf(s.Out, "Short form: %s%s%s\n", display.Cyan, cmd.ShortName, display.Reset)
		}
		fmt.Fprintf(s.Out, "Usage: %s\n", cmd.Usage)
		return nil
	}

	// Unique commands, sorted by name
	seen := make(map[string]*Command)
	for _, cmd := range r.commands {
		seen[cmd.Name] = cmd
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(s.Out, "\n%sAvailable Commands:%s\n\n", display.Cyan, display.Reset)
	for _, name := range names {
		cmd := seen[name]
		shortPart := "    "
		if cmd.ShortName != "" {
			shortPart = fmt.Sprintf("[%s%s%s] ", display.Cyan, cmd.ShortName, display.Reset)
		}
		fmt.Fprintf(s.Out, "  %s%-8s %s\n", shortPart, cmd.Name, cmd.Description)
	}

	fmt.Fprintf(s.Out, "\nA move can also be typed as two squares: e2 e4\n")
	fmt.Fprintf(s.Out, "A king on d4, e4, d5 or e5 wins, and so does capturing the enemy king\n")
	return nil
}

func exitHandler(s *Session, args []string) error {
	fmt.Fprintf(s.Out, "%sGoodbye!%s\n", display.Cyan, display.Reset)
	return ErrExit
}
