package sequence

import (
	"fmt"

	"github.com/aretw0/weave/pkg/domain"
)

// walk is the sequencer's accumulator: the steps taken so far and the
// segments not yet strung, in their current order.
type walk struct {
	pinCount  int
	traversal domain.Traversal
	pool      []domain.Segment
}

// Sequence builds the traversal for segments on a board of pinCount pins.
// segments must be canonical and non-empty; the slice is not modified.
func Sequence(segments []domain.Segment, pinCount int) (domain.Traversal, error) {
	if len(segments) == 0 {
		return nil, domain.ErrNoSegments
	}
	for i, s := range segments {
		if s.A < 0 || s.B >= pinCount || s.A >= s.B {
			return nil, fmt.Errorf("segment %d (%d, %d) on a %d-pin board: %w", i, s.A, s.B, pinCount, domain.ErrPinOutOfRange)
		}
	}

	w := &walk{
		pinCount:  pinCount,
		traversal: make(domain.Traversal, 0, len(segments)),
		pool:      make([]domain.Segment, len(segments)-1),
	}
	copy(w.pool, segments[1:])
	w.traversal = append(w.traversal, domain.Step{From: segments[0].A, To: segments[0].B})

	for len(w.pool) > 0 {
		w.advance()
	}
	return w.traversal, nil
}

// advance moves the nearest remaining segment from the pool onto the traversal.
func (w *walk) advance() {
	current := w.traversal[len(w.traversal)-1].To

	best, bestDist := 0, -1
	for i, s := range w.pool {
		d := min(w.distance(current, s.A), w.distance(current, s.B))
		if d == 0 {
			best = i
			break
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}

	chosen := w.pool[best]
	w.pool = append(w.pool[:best], w.pool[best+1:]...)
	w.traversal = append(w.traversal, w.orient(current, chosen))
}

// orient puts the endpoint nearer to current first; on a tie A stays first.
func (w *walk) orient(current int, s domain.Segment) domain.Step {
	if w.distance(current, s.B) < w.distance(current, s.A) {
		return domain.Step{From: s.B, To: s.A}
	}
	return domain.Step{From: s.A, To: s.B}
}

func (w *walk) distance(a, b int) int {
	return domain.CircularDistance(a, b, w.pinCount)
}
