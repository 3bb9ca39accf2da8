package label

import (
	"errors"
	"testing"

	"github.com/aretw0/weave/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEncoder(t *testing.T) {
	tests := []struct {
		total  int
		base   int
		digits int
	}{
		{0, 1, 1},
		{1, 1, 1},
		{2, 2, 1},
		{4, 4, 1},
		{26, 26, 1},
		{27, 6, 2},
		{100, 10, 2},
		{676, 26, 2},
		{677, 9, 3},
		{4000, 16, 3},
	}

	for _, tt := range tests {
		enc := NewEncoder(tt.total)
		assert.Equal(t, tt.base, enc.Base, "base for %d steps", tt.total)
		assert.Equal(t, tt.digits, enc.Digits, "digits for %d steps", tt.total)
	}
}

func TestEncode_SingleDigit(t *testing.T) {
	enc := NewEncoder(4)

	var got []string
	for i := 0; i < 4; i++ {
		l, err := enc.Encode(i)
		require.NoError(t, err)
		got = append(got, l)
	}
	assert.Equal(t, []string{"Alfa", "Bravo", "Charlie", "Delta"}, got)
}

func TestEncode_PadsWithZeroWord(t *testing.T) {
	enc := NewEncoder(100)

	l, err := enc.Encode(0)
	require.NoError(t, err)
	assert.Equal(t, "Alfa Alfa", l)

	l, err = enc.Encode(7)
	require.NoError(t, err)
	assert.Equal(t, "Alfa Hotel", l)

	l, err = enc.Encode(42)
	require.NoError(t, err)
	assert.Equal(t, "Echo Charlie", l)

	l, err = enc.Encode(99)
	require.NoError(t, err)
	assert.Equal(t, "Juliett Juliett", l)
}

func TestEncode_OneStep(t *testing.T) {
	enc := NewEncoder(1)

	l, err := enc.Encode(0)
	require.NoError(t, err)
	assert.Equal(t, "Alfa", l)
	assert.Equal(t, 4, enc.Width())
}

func TestEncode_OutOfRange(t *testing.T) {
	enc := NewEncoder(10)

	_, err := enc.Encode(10)
	assert.True(t, errors.Is(err, domain.ErrStepOutOfRange))
	_, err = enc.Encode(-1)
	assert.True(t, errors.Is(err, domain.ErrStepOutOfRange))
}

func TestEncoder_CoverageAndInjectivity(t *testing.T) {
	for _, total := range []int{1, 2, 3, 25, 26, 27, 99, 250, 676, 677, 1500, 3000} {
		enc := NewEncoder(total)

		assert.LessOrEqual(t, enc.Base, MaxBase)
		assert.GreaterOrEqual(t, pow(enc.Base, enc.Digits), total)

		seen := make(map[string]int, total)
		for i := 0; i < total; i++ {
			l, err := enc.Encode(i)
			require.NoError(t, err)
			if prev, dup := seen[l]; dup {
				t.Fatalf("total %d: steps %d and %d share label %q", total, prev, i, l)
			}
			seen[l] = i
			assert.LessOrEqual(t, len(l), enc.Width())
		}
	}
}

func TestEncoder_Layout(t *testing.T) {
	enc := NewEncoder(100)

	assert.Equal(t, 10, enc.Group())
	assert.Equal(t, 100, enc.Section())
	assert.Equal(t, Alphabet[:10], enc.Words())
	// Longest of the first ten words is "Charlie"/"Foxtrot"/"Juliett" (7).
	assert.Equal(t, 15, enc.Width())
	assert.Equal(t, "Alfa Bravo     ", enc.Pad("Alfa Bravo"))
}
