package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/weave/pkg/adapters/mcp"
)

// MCP runs the MCP server over stdio, or SSE when transport is "sse".
// Logs go to Stderr so they cannot corrupt JSON-RPC on Stdout.
func MCP(ctx context.Context, opts Options, transport string, port int) error {
	opts = opts.withDefaults()
	logger := createLogger(opts)
	srv := mcp.NewServer(newPlanner(logger), logger)

	switch transport {
	case "stdio", "":
		logger.Info("Starting weave MCP Server (Stdio)")
		return srv.ServeStdio()
	case "sse":
		if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP Server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport %q (supported: stdio, sse)", transport)
	}
}
