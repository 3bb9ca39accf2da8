package cli

import (
	"context"
	"log/slog"

	"github.com/aretw0/weave"
	"github.com/aretw0/weave/pkg/instructions"
)

// Generate prints the instructions for the document at opts.Path.
// Nothing is written to Stdout unless the document is valid.
func Generate(ctx context.Context, opts Options) error {
	opts = opts.withDefaults()
	logger := createLogger(opts)
	return generate(ctx, newPlanner(logger), opts, logger)
}

func generate(ctx context.Context, planner *weave.Planner, opts Options, logger *slog.Logger) error {
	plan, err := planner.PlanFile(ctx, opts.Path, opts.Width)
	if err != nil {
		return err
	}

	logger.Debug("Printing plan", "path", opts.Path, "steps", len(plan.Traversal), "wraps", len(plan.Stats.Wraps))
	return plan.Print(opts.Stdout,
		instructions.WithFormat(opts.Format),
		instructions.WithProfile(colorProfile(opts.Color, opts.Stdout)),
		instructions.WithLogger(logger),
	)
}
