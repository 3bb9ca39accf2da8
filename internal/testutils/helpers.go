package testutils

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/weave/pkg/domain"
	"github.com/stretchr/testify/require"
)

// BoardSize is the pixel width and height of fixture images.
const BoardSize = 1000

// CirclePins returns n pins evenly spaced on a circle inscribed in a
// BoardSize square, rounded to whole pixels.
func CirclePins(n int) []domain.Point {
	r := float64(BoardSize-1) / 2
	pins := make([]domain.Point, n)
	for i := range pins {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pins[i] = domain.Point{
			X: math.Round(r + r*math.Cos(theta)),
			Y: math.Round(r + r*math.Sin(theta)),
		}
	}
	return pins
}

// Fixture returns a decoded renderer document for a circular board with
// pinCount pins and the given segments (pairs of pin indices, written in the
// given orientation). Tests mutate the map to build invalid inputs.
func Fixture(pinCount int, segments ...[2]int) map[string]any {
	pins := CirclePins(pinCount)

	locations := make([]any, len(pins))
	for i, p := range pins {
		locations[i] = map[string]any{"x": p.X, "y": p.Y}
	}

	lines := make([]any, len(segments))
	for i, s := range segments {
		lines[i] = []any{
			map[string]any{"x": pins[s[0]].X, "y": pins[s[0]].Y},
			map[string]any{"x": pins[s[1]].X, "y": pins[s[1]].Y},
		}
	}

	return map[string]any{
		"args": map[string]any{
			"pin_arrangement":   domain.ArrangementCircle,
			"foreground_colors": []any{"#000000"},
			"pin_count":         pinCount,
			"max_strings":       len(segments),
		},
		"image_width":   BoardSize,
		"image_height":  BoardSize,
		"pin_count":     pinCount,
		"line_count":    len(segments),
		"pin_locations": locations,
		"line_segments": lines,
	}
}

// Marshal encodes a fixture, failing the test on error.
func Marshal(t testing.TB, doc map[string]any) []byte {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err, "Failed to marshal fixture")
	return data
}

// Document is Marshal(Fixture(...)).
func Document(t testing.TB, pinCount int, segments ...[2]int) []byte {
	t.Helper()
	return Marshal(t, Fixture(pinCount, segments...))
}

// WriteDocument stores a document in a temp dir and returns its path.
func WriteDocument(t testing.TB, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, os.WriteFile(path, data, 0o644), "Failed to write fixture")
	return path
}
