package commands

import (
	"io"

	"koth/internal/client/display"
)

// Session is the state of one interactive client
type Session struct {
	Driver  Driver
	Theme   display.Theme
	Out     io.Writer
	Verbose bool
}

func NewSession(d Driver, theme display.Theme, out io.Writer) *Session {
	return &Session{
		Driver: d,
		Theme:  theme,
		Out:    out,
	}
}
