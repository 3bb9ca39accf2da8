package main

import (
	"github.com/aretw0/weave/internal/cli"
	"github.com/spf13/cobra"
)

var followCmd = &cobra.Command{
	Use:   "follow <json-path> [width]",
	Short: "Step through the instructions interactively",
	Long: `Opens a full-screen stepper showing one step at a time, for use while stringing.

Keys: space/enter next, backspace previous, w/W next/previous wrap, g/G first/last, q quit.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := documentOptions(cmd, args)
		if err != nil {
			return err
		}
		return cli.Follow(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(followCmd)
	addWidthFlag(followCmd)
}
