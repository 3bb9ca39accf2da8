/*
Package instructions renders a traversal as the step list a crafter reads.

The output is line oriented. Steps are grouped by the label base B: a blank
line precedes every B-th step and a progress line every B²-th step, so each
group shares all but the last label word and each section all but the last
two. A step that does not start where the previous one ended is preceded by a
wrap line naming the two pins the thread is routed between.

Two formats are available:

  - FormatText: human-readable lines, optionally colored with termenv.
  - FormatJSON: one JSON object per line (NDJSON), one per event.
*/
package instructions
