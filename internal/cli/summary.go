package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aretw0/weave/internal/config"
	"github.com/aretw0/weave/internal/presentation/report"
	"github.com/aretw0/weave/internal/presentation/tui"
)

// Summary prints a Markdown report of the plan, rendered for the terminal.
// With color "never" (or a non-terminal Stdout in auto mode) the report is
// rendered without styling.
func Summary(ctx context.Context, opts Options) error {
	opts = opts.withDefaults()
	logger := createLogger(opts)

	plan, err := newPlanner(logger).PlanFile(ctx, opts.Path, opts.Width)
	if err != nil {
		return err
	}

	markdown := report.Markdown(plan, filepath.Base(opts.Path))

	plain := opts.Color == config.ColorNever || (opts.Color == config.ColorAuto && !isTerminal(opts.Stdout))
	render, err := tui.NewRenderer(0, plain)
	if err != nil {
		return err
	}
	out, err := render(markdown)
	if err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}

	_, err = fmt.Fprint(opts.Stdout, out)
	return err
}
