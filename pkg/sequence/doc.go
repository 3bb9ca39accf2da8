// Package sequence orders an unordered set of string-art segments into a
// single directed traversal a crafter can follow.
//
// The sequencer is a greedy nearest-fragment walk on a circular pin domain:
//
//   - The first input segment starts the walk in its canonical (min, max)
//     orientation.
//   - Each following step is the remaining segment with an endpoint closest
//     (by CircularDistance) to the pin the walk currently sits on. A segment
//     that touches the current pin is taken at once, since nothing can be
//     closer. Ties keep the earliest segment in the remaining pool.
//   - The chosen segment is oriented so its nearer endpoint comes first.
//
// Every input segment appears in the traversal exactly once. The walk favors
// continuous stringing over total path length and performs no lookahead.
//
// Complexity: O(n²) time, O(n) memory for n segments.
package sequence
