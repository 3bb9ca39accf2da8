package cli

import (
	"context"
	"errors"

	"github.com/aretw0/weave/internal/presentation/tui"
)

// ErrNotInteractive is returned by Follow when stdout is not a terminal.
var ErrNotInteractive = errors.New("follow needs an interactive terminal; use generate instead")

// Follow opens the interactive stepper for the document at opts.Path.
func Follow(ctx context.Context, opts Options) error {
	opts = opts.withDefaults()
	if !isTerminal(opts.Stdout) {
		return ErrNotInteractive
	}
	logger := createLogger(opts)

	plan, err := newPlanner(logger).PlanFile(ctx, opts.Path, opts.Width)
	if err != nil {
		return err
	}
	return tui.Follow(plan, opts.Stdin, opts.Stdout)
}
