package main

import (
	"github.com/aretw0/weave/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts weave in server mode, exposing planning as a JSON API over HTTP.

Plans are cached in memory, or in redis when --redis (or redis.addr) is set.
Prometheus metrics are served on /metrics unless server.metrics is false.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		opts := cli.Options{
			Debug:  debug,
			Config: cfg,
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		}
		if cmd.Flags().Changed("port") {
			opts.Config.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("redis") {
			opts.Config.Redis.Addr, _ = cmd.Flags().GetString("redis")
		}
		return cli.Serve(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for the shared plan cache")
}
