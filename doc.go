/*
Package weave turns a string-art render into step-by-step stringing instructions.

A renderer places pins around a circular board and decides which pairs of pins
are joined by a length of thread. weave reads that result and orders the
segments so the crafter can follow them with as few detours as possible.

# Concept

Planning runs in four stages:

  - Validation: the document is checked and every segment endpoint is
    resolved to a pin index (package document).
  - Sequencing: segments are ordered greedily, always continuing from the
    pin the thread currently rests on when possible (package sequence).
  - Labelling: each step gets a fixed-width phonetic label such as
    "Bravo Delta" (package label).
  - Estimation: given the board diameter in inches, the thread consumed by
    chords and rim wraps is summed (package thread).

# Usage

	planner := weave.New(weave.WithLogger(logger))

	plan, err := planner.PlanFile(ctx, "result.json", weave.Width(24))
	if err != nil {
		log.Fatal(err)
	}
	_ = plan.Print(os.Stdout)

A planner can be given a ports.PlanCache (memory or redis) and Prometheus
metrics; the same planner backs the weave CLI, its HTTP server and its MCP
server.
*/
package weave
