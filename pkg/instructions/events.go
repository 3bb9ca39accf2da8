package instructions

import (
	"encoding/json"

	"github.com/aretw0/weave/pkg/domain"
	"github.com/aretw0/weave/pkg/label"
	"github.com/aretw0/weave/pkg/thread"
)

// EventKind identifies a line of output.
type EventKind string

const (
	EventSeparator EventKind = "separator"
	EventProgress  EventKind = "progress"
	EventWrap      EventKind = "wrap"
	EventStep      EventKind = "step"
	EventSummary   EventKind = "summary"
)

// Event is one line of the instruction stream.
type Event struct {
	Kind EventKind

	Index     int
	Label     string
	From      int
	To        int
	Taken     int
	Remaining int

	Inches     int
	Kilometers float64
}

// MarshalJSON writes only the fields meaningful for the event kind.
func (e Event) MarshalJSON() ([]byte, error) {
	out := map[string]any{"type": e.Kind}
	switch e.Kind {
	case EventSeparator:
		out["index"] = e.Index
	case EventProgress:
		out["taken"] = e.Taken
		out["remaining"] = e.Remaining
	case EventWrap:
		out["index"] = e.Index
		out["from"] = e.From
		out["to"] = e.To
	case EventStep:
		out["index"] = e.Index
		out["label"] = e.Label
		out["from"] = e.From
		out["to"] = e.To
	case EventSummary:
		out["inches"] = e.Inches
		out["kilometers"] = e.Kilometers
	}
	return json.Marshal(out)
}

// Walk emits the events for t in output order. est may be nil when no
// physical width was given; the summary is then omitted.
func Walk(t domain.Traversal, enc label.Encoder, est *thread.Estimate, emit func(Event) error) error {
	group, section := enc.Group(), enc.Section()

	for i, step := range t {
		if i%group == 0 {
			if err := emit(Event{Kind: EventSeparator, Index: i}); err != nil {
				return err
			}
		}
		if i%section == 0 {
			if err := emit(Event{Kind: EventProgress, Index: i, Taken: i, Remaining: len(t) - i}); err != nil {
				return err
			}
		}
		if !t.Chains(i) {
			if err := emit(Event{Kind: EventWrap, Index: i, From: t[i-1].To, To: step.From}); err != nil {
				return err
			}
		}

		l, err := enc.Encode(i)
		if err != nil {
			return err
		}
		if err := emit(Event{Kind: EventStep, Index: i, Label: l, From: step.From, To: step.To}); err != nil {
			return err
		}
	}

	if est != nil {
		return emit(Event{Kind: EventSummary, Inches: est.RoundedInches(), Kilometers: est.Kilometers()})
	}
	return nil
}
