/*
Package observability provides Prometheus instrumentation for the weave planner.

Metrics cover plan outcomes, document validation failures, plan cache hits and
misses, and the shape of generated plans (segments, wraps, planning time).
A nil *Metrics is valid and records nothing.
*/
package observability
