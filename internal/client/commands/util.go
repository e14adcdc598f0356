package commands

import (
	"fmt"
	"strings"
	"time"

	"koth/internal/client/api"
	"koth/internal/client/display"
)

func (r *Registry) registerUtilCommands() {
	r.Register(&Command{
		Name:        "theme",
		ShortName:   "t",
		Description: "Set board color theme",
		Usage:       "theme <off|brown|green|gray>",
		Handler:     themeHandler,
	})

	r.Register(&Command{
		Name:        "url",
		ShortName:   "/",
		Description: "Play on a server, or 'local' for an in-process game",
		Usage:       "url [apiUrl|local]",
		Handler:     urlHandler,
	})

	r.Register(&Command{
		Name:        "health",
		ShortName:   ".",
		Description: "Check server health",
		Usage:       "health",
		Handler:     healthHandler,
	})

	r.Register(&Command{
		Name:        "verbose",
		ShortName:   "v",
		Description: "Toggle verbose output",
		Usage:       "verbose",
		Handler:     verboseHandler,
	})
}

func themeHandler(s *Session, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: theme <off|brown|green|gray>")
	}
	theme, err := display.ParseTheme(args[0])
	if err != nil {
		return err
	}
	s.Theme = theme
	fmt.Fprintf(s.Out, "Color theme set to: %s\n", theme)
	return nil
}

func urlHandler(s *Session, args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(s.Out, "Current game: %s\n", s.Driver.Name())
		return nil
	}

	if args[0] == "local" {
		s.Driver = NewLocalDriver()
		fmt.Fprintf(s.Out, "%sPlaying locally%s\n", display.Cyan, display.Reset)
		return newGameHandler(s, nil)
	}

	url := args[0]
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}

	c := api.New(url)
	c.SetVerbose(s.Verbose)
	c.Out = s.Out
	if _, err := c.Health(); err != nil {
		return fmt.Errorf("server %s unreachable: %w", url, err)
	}

	s.Driver = NewRemoteDriver(c)
	fmt.Fprintf(s.Out, "%sAPI URL set to: %s%s\n", display.Cyan, url, display.Reset)
	return newGameHandler(s, nil)
}

func healthHandler(s *Session, args []string) error {
	rd, ok := s.Driver.(*RemoteDriver)
	if !ok {
		return fmt.Errorf("not connected to a server, use 'url <apiUrl>'")
	}

	resp, err := rd.client.Health()
	if err != nil {
		return err
	}

	fmt.Fprintf(s.Out, "%sServer Health:%s\n", display.Cyan, display.Reset)
	fmt.Fprintf(s.Out, "  Status:  %s\n", resp.Status)
	t := time.Unix(resp.Time, 0)
	fmt.Fprintf(s.Out, "  Time:    %s\n", t.Format("2006-01-02 15:04:05"))
	if resp.Storage != "" {
		fmt.Fprintf(s.Out, "  Storage: %s\n", resp.Storage)
	}
	return nil
}

func verboseHandler(s *Session, args []string) error {
	s.Verbose = !s.Verbose
	if rd, ok := s.Driver.(*RemoteDriver); ok {
		rd.client.SetVerbose(s.Verbose)
	}
	fmt.Fprintf(s.Out, "Verbose: %v\n", s.Verbose)
	return nil
}
