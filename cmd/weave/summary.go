package main

import (
	"github.com/aretw0/weave/internal/cli"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <json-path> [width]",
	Short: "Show a report of the traversal",
	Long:  `Prints a Markdown report (pins, segments, wraps, label scheme, thread length) rendered for the terminal.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := documentOptions(cmd, args)
		if err != nil {
			return err
		}
		return cli.Summary(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	addWidthFlag(summaryCmd)
	summaryCmd.Flags().String("color", "auto", "Color output: 'auto', 'always' or 'never'")
}
