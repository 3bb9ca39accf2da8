package report

import (
	"fmt"
	"strings"

	"github.com/aretw0/weave"
)

// MaxWrapRows caps the wrap table; the rest are summarized in one line.
const MaxWrapRows = 20

// Markdown produces a Markdown summary of a plan. name is shown in the title
// (typically the input file name).
func Markdown(plan *weave.Plan, name string) string {
	var sb strings.Builder

	title := "String art plan"
	if name != "" {
		title = fmt.Sprintf("%s: `%s`", title, name)
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))

	sb.WriteString("| | |\n|---|---|\n")
	sb.WriteString(fmt.Sprintf("| Pins | %d |\n", plan.Board.PinCount()))
	if plan.DeclaredPinCount != plan.Board.PinCount() {
		sb.WriteString(fmt.Sprintf("| Pins requested | %d |\n", plan.DeclaredPinCount))
	}
	sb.WriteString(fmt.Sprintf("| Steps | %d |\n", len(plan.Traversal)))
	sb.WriteString(fmt.Sprintf("| Wraps | %d |\n", len(plan.Stats.Wraps)))
	sb.WriteString(fmt.Sprintf("| Longest unbroken run | %d steps |\n", plan.Stats.LongestChain))
	sb.WriteString(fmt.Sprintf("| Pins used | %d |\n", plan.Stats.DistinctPins))
	if plan.Foreground != "" {
		sb.WriteString(fmt.Sprintf("| Thread color | `%s` |\n", plan.Foreground))
	}
	sb.WriteString("\n")

	writeLabels(&sb, plan)
	writeThread(&sb, plan)
	writeWraps(&sb, plan)

	return sb.String()
}

func writeLabels(sb *strings.Builder, plan *weave.Plan) {
	enc := plan.Labels
	sb.WriteString("## Labels\n\n")
	sb.WriteString(fmt.Sprintf("Each step is named by %d %s from the first %d letters of the phonetic alphabet",
		enc.Digits, plural(enc.Digits, "word", "words"), enc.Base))
	sb.WriteString(fmt.Sprintf(" (%s ... %s).", enc.Words()[0], enc.Words()[enc.Base-1]))
	sb.WriteString(fmt.Sprintf(" Steps are grouped by %d with a progress line every %d.\n\n", enc.Group(), enc.Section()))

	if len(plan.Traversal) > 0 {
		first, _ := enc.Encode(0)
		last, _ := enc.Encode(len(plan.Traversal) - 1)
		sb.WriteString(fmt.Sprintf("First step: **%s**, last step: **%s**.\n\n", first, last))
	}
}

func writeThread(sb *strings.Builder, plan *weave.Plan) {
	est := plan.Thread
	if est == nil {
		return
	}

	sb.WriteString("## Thread\n\n")
	sb.WriteString(fmt.Sprintf("For a board %g inches across: **%d inches** (%.3f km).\n\n",
		est.WidthInches, est.RoundedInches(), est.Kilometers()))

	// Mermaid pie of where the thread goes.
	sb.WriteString("```mermaid\npie title Thread use (inches)\n")
	sb.WriteString(fmt.Sprintf("    \"Chords\" : %.1f\n", est.ChordInches))
	sb.WriteString(fmt.Sprintf("    \"Rim wraps\" : %.1f\n", est.WrapInches))
	sb.WriteString("```\n\n")
}

func writeWraps(sb *strings.Builder, plan *weave.Plan) {
	wraps := plan.Stats.Wraps
	if len(wraps) == 0 {
		sb.WriteString("The thread never leaves the pins: every step starts where the last one ended.\n")
		return
	}

	sb.WriteString("## Wraps\n\n")
	sb.WriteString(fmt.Sprintf("%d wraps cover %d pin gaps in total (longest: %d).\n\n",
		len(wraps), plan.Stats.WrapPins, plan.Stats.LongestWrap))
	sb.WriteString("| Before step | From pin | To pin | Gap |\n|---|---|---|---|\n")
	for i, w := range wraps {
		if i == MaxWrapRows {
			sb.WriteString(fmt.Sprintf("\n...and %d more.\n", len(wraps)-MaxWrapRows))
			break
		}
		l, _ := plan.Label(w.Before)
		sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d |\n", l, w.From, w.To, w.Distance))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
