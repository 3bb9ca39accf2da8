package main

import (
	"github.com/aretw0/weave/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <json-path>",
	Short: "Check a renderer document without printing instructions",
	Long:  `Runs only the validation and indexing step and reports the number of pins and segments.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := documentOptions(cmd, args)
		if err != nil {
			return err
		}
		return cli.Validate(opts)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
