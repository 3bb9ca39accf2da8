package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/aretw0/weave/internal/cli"
	"github.com/aretw0/weave/internal/config"
	"github.com/aretw0/weave/pkg/instructions"
	"github.com/spf13/cobra"
)

// cfg is loaded once the command line is parsed.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "weave <json-path> [physical-width-inches]",
	Short: "Weave turns string-art renderer output into stringing instructions",
	Long: `Weave reads the JSON document written by a string-art renderer and prints
step-by-step instructions for stringing the board by hand, with phonetic step
labels, wrap notes and, given the board width in inches, the thread needed.

Running weave with a document and no subcommand is the same as 'weave generate'.`,
	Args:          cobra.RangeArgs(1, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context) int {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// addWidthFlag registers --width on commands that take an optional width.
func addWidthFlag(cmd *cobra.Command) {
	cmd.Flags().Float64("width", 0, "Physical board width in inches (enables the thread estimate)")
}

// documentOptions builds cli.Options from the arguments, flags and config.
// The positional width wins over --width, which wins over width_inches.
func documentOptions(cmd *cobra.Command, args []string) (cli.Options, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	opts := cli.Options{
		Path:   args[0],
		Color:  cfg.Color,
		Debug:  debug,
		Config: cfg,
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}

	width, err := resolveWidth(cmd, args)
	if err != nil {
		return opts, err
	}
	opts.Width = width

	format := cfg.Format
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		format = f.Value.String()
	}
	if opts.Format, err = instructions.ParseFormat(format); err != nil {
		return opts, err
	}

	if f := cmd.Flags().Lookup("color"); f != nil && f.Changed {
		opts.Color = f.Value.String()
	}
	switch opts.Color {
	case config.ColorAuto, config.ColorAlways, config.ColorNever:
	default:
		return opts, fmt.Errorf("invalid --color %q (want auto, always or never)", opts.Color)
	}

	return opts, nil
}

func resolveWidth(cmd *cobra.Command, args []string) (*float64, error) {
	if len(args) > 1 {
		w, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid width %q: not a number", args[1])
		}
		return &w, nil
	}
	if f := cmd.Flags().Lookup("width"); f != nil && f.Changed {
		w, _ := cmd.Flags().GetFloat64("width")
		return &w, nil
	}
	if cfg.WidthInches > 0 {
		w := cfg.WidthInches
		return &w, nil
	}
	return nil, nil
}
