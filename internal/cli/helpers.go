package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/weave"
	"github.com/aretw0/weave/internal/config"
	"github.com/aretw0/weave/internal/logging"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// createLogger configures the application logger.
// It writes to Stderr (to separate from the Stdout instruction stream).
// Debug mode overrides the configured level.
func createLogger(opts Options) *slog.Logger {
	level, err := logging.ParseLevel(opts.Config.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	if opts.Debug {
		level = slog.LevelDebug
	}
	return logging.NewWithFormat(opts.Stderr, level, opts.Config.LogFormat)
}

// newPlanner builds a planner for one-shot CLI commands.
func newPlanner(logger *slog.Logger) *weave.Planner {
	return weave.New(weave.WithLogger(logger))
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// colorProfile selects the text color profile for w.
func colorProfile(mode string, w io.Writer) termenv.Profile {
	switch mode {
	case config.ColorNever:
		return termenv.Ascii
	case config.ColorAlways:
		return termenv.TrueColor
	default:
		if !isTerminal(w) {
			return termenv.Ascii
		}
		return termenv.NewOutput(w).EnvColorProfile()
	}
}

// printSystemMessage prints a standardized system message to w.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
