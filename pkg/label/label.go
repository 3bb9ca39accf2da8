// Package label encodes step indices as fixed-width phonetic codes.
//
// For a run of T steps the encoder picks the fewest digits D such that a base
// no larger than 26 can count to T, then the smallest base B with B^D >= T.
// Digit d is written as the d-th word of the phonetic alphabet, so with
// T = 100 (D = 2, B = 10) step 42 reads "Echo Charlie".
package label

import (
	"fmt"
	"strings"

	"github.com/aretw0/weave/pkg/domain"
)

// MaxBase is the size of the phonetic alphabet.
const MaxBase = 26

// Alphabet is the phonetic word for each digit, in digit order.
var Alphabet = [MaxBase]string{
	"Alfa", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot", "Golf",
	"Hotel", "India", "Juliett", "Kilo", "Lima", "Mike", "November",
	"Oscar", "Papa", "Quebec", "Romeo", "Sierra", "Tango", "Uniform",
	"Victor", "Whiskey", "Xray", "Yankee", "Zulu",
}

// Encoder maps step indices in [0, Total) to labels.
type Encoder struct {
	Total  int `json:"total"`
	Base   int `json:"base"`
	Digits int `json:"digits"`
}

// NewEncoder computes the numeral system for totalSteps steps.
// A run of one step (or fewer) still gets a single digit.
func NewEncoder(totalSteps int) Encoder {
	total := max(totalSteps, 1)

	digits := 1
	for pow(MaxBase, digits) < total {
		digits++
	}

	base := 1
	for pow(base, digits) < total {
		base++
	}

	return Encoder{Total: total, Base: base, Digits: digits}
}

// Encode returns the label for step index i.
func (e Encoder) Encode(i int) (string, error) {
	if i < 0 || i >= e.Total {
		return "", fmt.Errorf("step %d of %d: %w", i, e.Total, domain.ErrStepOutOfRange)
	}

	words := make([]string, e.Digits)
	for d := e.Digits - 1; d >= 0; d-- {
		words[d] = Alphabet[i%e.Base]
		i /= e.Base
	}
	return strings.Join(words, " "), nil
}

// Words returns the alphabet in use, one word per digit value.
func (e Encoder) Words() []string {
	return Alphabet[:e.Base]
}

// Width is the length of the longest label the encoder can produce.
func (e Encoder) Width() int {
	longest := 0
	for _, w := range e.Words() {
		longest = max(longest, len(w))
	}
	return e.Digits*longest + e.Digits - 1
}

// Pad returns label left-aligned to Width.
func (e Encoder) Pad(label string) string {
	return fmt.Sprintf("%-*s", e.Width(), label)
}

// Group is the number of steps per group (one full turn of the last digit).
func (e Encoder) Group() int {
	return e.Base
}

// Section is the number of steps between progress reports.
func (e Encoder) Section() int {
	return e.Base * e.Base
}

// pow computes b^n, saturating well above any step count.
func pow(b, n int) int {
	const limit = 1 << 40
	out := 1
	for range n {
		out *= b
		if out > limit {
			return limit
		}
	}
	return out
}
