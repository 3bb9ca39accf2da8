package sequence

import "github.com/aretw0/weave/pkg/domain"

// Wrap is a transition where the next step does not start where the previous one ended.
type Wrap struct {
	// Before is the index of the step the wrap precedes.
	Before int `json:"before"`
	From   int `json:"from"`
	To     int `json:"to"`
	// Distance is the circular pin distance bridged.
	Distance int `json:"distance"`
}

// Stats summarizes how continuous a traversal is.
type Stats struct {
	Steps        int    `json:"steps"`
	Wraps        []Wrap `json:"wraps"`
	WrapPins     int    `json:"wrap_pins"`
	LongestWrap  int    `json:"longest_wrap"`
	DistinctPins int    `json:"distinct_pins"`
	LongestChain int    `json:"longest_chain"`
}

// Analyze reports the wraps and chain lengths of t on a board of pinCount pins.
func Analyze(t domain.Traversal, pinCount int) Stats {
	st := Stats{Steps: len(t)}
	seen := make(map[int]struct{})

	chain := 0
	for i, step := range t {
		seen[step.From] = struct{}{}
		seen[step.To] = struct{}{}

		if !t.Chains(i) {
			d := domain.CircularDistance(t[i-1].To, step.From, pinCount)
			st.Wraps = append(st.Wraps, Wrap{Before: i, From: t[i-1].To, To: step.From, Distance: d})
			st.WrapPins += d
			st.LongestWrap = max(st.LongestWrap, d)
			chain = 0
		}
		chain++
		st.LongestChain = max(st.LongestChain, chain)
	}
	st.DistinctPins = len(seen)
	return st
}
