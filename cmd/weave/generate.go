package main

import (
	"github.com/aretw0/weave/internal/cli"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <json-path> [physical-width-inches]",
	Short: "Print stringing instructions for a renderer document",
	Long: `Validates the document, orders its segments into a traversal that keeps the
thread continuous where possible, and prints one labeled line per step.

With a width (positional or --width) the total thread length is printed last.
With --watch the instructions are printed again every time the file changes.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts, err := documentOptions(cmd, args)
	if err != nil {
		return err
	}
	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		return cli.Watch(cmd.Context(), opts)
	}
	return cli.Generate(cmd.Context(), opts)
}

func addGenerateFlags(cmd *cobra.Command) {
	addWidthFlag(cmd)
	cmd.Flags().StringP("format", "f", "text", "Output format: 'text' or 'json' (NDJSON)")
	cmd.Flags().String("color", "auto", "Color output: 'auto', 'always' or 'never'")
	cmd.Flags().BoolP("watch", "w", false, "Regenerate when the document changes")
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addGenerateFlags(generateCmd)

	// A bare document argument runs generate.
	addGenerateFlags(rootCmd)
	rootCmd.RunE = runGenerate
}
