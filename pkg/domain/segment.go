package domain

// Segment is an unordered pair of distinct pins.
// A canonical Segment always has A < B.
type Segment struct {
	A int `json:"a"`
	B int `json:"b"`
}

// NewSegment returns the canonical (ascending) form of the pair.
func NewSegment(p, q int) Segment {
	if q < p {
		p, q = q, p
	}
	return Segment{A: p, B: q}
}

// Step is a Segment with a chosen direction of travel.
type Step struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Segment returns the undirected form of the step.
func (s Step) Segment() Segment {
	return NewSegment(s.From, s.To)
}

// Traversal is the ordered sequence of steps a crafter follows.
type Traversal []Step

// Chains reports whether step i starts where step i-1 ended.
// The first step always chains.
func (t Traversal) Chains(i int) bool {
	if i <= 0 || i >= len(t) {
		return true
	}
	return t[i-1].To == t[i].From
}

// Segments returns the undirected segments of the traversal, in order.
func (t Traversal) Segments() []Segment {
	out := make([]Segment, len(t))
	for i, s := range t {
		out[i] = s.Segment()
	}
	return out
}
