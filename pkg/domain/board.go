package domain

import "fmt"

// ArrangementCircle is the only pin arrangement the planner understands.
const ArrangementCircle = "circle"

// Point is a pixel coordinate on the rendered image.
type Point struct {
	X float64 `json:"x" mapstructure:"x"`
	Y float64 `json:"y" mapstructure:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Board describes the physical pin layout of a circular board.
// Pins[i] is the location of pin i.
type Board struct {
	Pins       []Point `json:"pins"`
	ImageWidth float64 `json:"image_width,omitempty"`
}

// PinCount returns the number of pins on the board.
func (b Board) PinCount() int {
	return len(b.Pins)
}

// Contains reports whether pin is a valid index on the board.
func (b Board) Contains(pin int) bool {
	return pin >= 0 && pin < len(b.Pins)
}
