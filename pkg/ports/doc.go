/*
Package ports defines the driven ports (interfaces) of the weave planner.

These interfaces decouple the planning pipeline from external implementations,
allowing the same planner to run from the CLI, the HTTP server, or an MCP host
with different storage backends.

# Key Interfaces

  - PlanCache: Stores encoded plans keyed by document digest and width.
*/
package ports
