// Package thread estimates how much string a traversal consumes.
//
// Each step contributes the straight chord between its pins, scaled from
// image pixels to inches. A step that does not start where the previous one
// ended adds a wrap: the thread runs along the rim for the circular pin
// distance between the two pins, at the arc spacing of evenly placed pins.
package thread

import (
	"fmt"
	"math"

	"github.com/aretw0/weave/pkg/domain"
)

// InchesPerKilometer converts inch totals to kilometers.
const InchesPerKilometer = 39370.1

// Estimate is the thread consumed by a traversal.
type Estimate struct {
	WidthInches float64 `json:"width_inches"`
	Inches      float64 `json:"inches"`
	ChordInches float64 `json:"chord_inches"`
	WrapInches  float64 `json:"wrap_inches"`
	Wraps       int     `json:"wraps"`
}

// RoundedInches is the total rounded to the nearest inch.
func (e Estimate) RoundedInches() int {
	return int(math.Round(e.Inches))
}

// Kilometers is the total in kilometers, rounded to three decimals.
func (e Estimate) Kilometers() float64 {
	return math.Round(e.Inches/InchesPerKilometer*1000) / 1000
}

// Meter accumulates thread length one step at a time.
type Meter struct {
	board          domain.Board
	widthInches    float64
	inchesPerPixel float64
	pinSpacing     float64

	prev    *domain.Step
	total   Estimate
	running []float64
}

// NewMeter prepares a meter for a board whose diameter is widthInches.
func NewMeter(board domain.Board, widthInches float64) (*Meter, error) {
	if math.IsNaN(widthInches) || math.IsInf(widthInches, 0) || widthInches <= 0 {
		return nil, fmt.Errorf("%w: got %g", domain.ErrInvalidWidth, widthInches)
	}
	if board.ImageWidth <= 0 {
		return nil, domain.Invalid("image_width", "required to estimate thread length", nil)
	}
	if board.PinCount() == 0 {
		return nil, domain.Invalid("pin_locations", "must contain at least one pin", nil)
	}

	return &Meter{
		board:          board,
		widthInches:    widthInches,
		inchesPerPixel: widthInches / board.ImageWidth,
		pinSpacing:     math.Pi * widthInches / float64(board.PinCount()),
		total:          Estimate{WidthInches: widthInches},
	}, nil
}

// Add appends a step and returns the running total in inches.
func (m *Meter) Add(step domain.Step) (float64, error) {
	if !m.board.Contains(step.From) || !m.board.Contains(step.To) {
		return 0, fmt.Errorf("step %d -> %d: %w", step.From, step.To, domain.ErrPinOutOfRange)
	}

	if m.prev != nil && m.prev.To != step.From {
		d := domain.CircularDistance(m.prev.To, step.From, m.board.PinCount())
		wrap := float64(d) * m.pinSpacing
		m.total.WrapInches += wrap
		m.total.Inches += wrap
		m.total.Wraps++
	}

	a, b := m.board.Pins[step.From], m.board.Pins[step.To]
	chord := math.Hypot(a.X-b.X, a.Y-b.Y) * m.inchesPerPixel
	m.total.ChordInches += chord
	m.total.Inches += chord

	m.prev = &step
	m.running = append(m.running, m.total.Inches)
	return m.total.Inches, nil
}

// Estimate returns the totals so far.
func (m *Meter) Estimate() Estimate {
	return m.total
}

// Running returns the cumulative total after each added step.
func (m *Meter) Running() []float64 {
	return m.running
}

// Measure estimates the thread for a whole traversal.
func Measure(board domain.Board, widthInches float64, t domain.Traversal) (Estimate, error) {
	m, err := NewMeter(board, widthInches)
	if err != nil {
		return Estimate{}, err
	}
	for _, step := range t {
		if _, err := m.Add(step); err != nil {
			return Estimate{}, err
		}
	}
	return m.Estimate(), nil
}
