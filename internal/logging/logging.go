package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// DefaultLevel matches the diagnostic level the tool always ran with.
const DefaultLevel = "debug"

// New returns the application logger writing to w (stderr when nil).
func New(level string, w io.Writer) hclog.Logger {
	if w == nil {
		w = os.Stderr
	}

	lvl := hclog.LevelFromString(strings.TrimSpace(level))
	if lvl == hclog.NoLevel {
		lvl = hclog.Debug
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "avosig",
		Level:  lvl,
		Output: w,
	})
}

// Discard is used where no logger was supplied.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
