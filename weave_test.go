package weave_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/aretw0/weave"
	"github.com/aretw0/weave/internal/testutils"
	"github.com/aretw0/weave/pkg/adapters/memory"
	"github.com/aretw0/weave/pkg/domain"
	"github.com/aretw0/weave/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanner_ChainedInput(t *testing.T) {
	planner := weave.New()
	data := testutils.Document(t, 5, [2]int{0, 1}, [2]int{1, 2}, [2]int{2, 3}, [2]int{3, 4})

	plan, err := planner.Plan(context.Background(), weave.Request{Document: data})
	require.NoError(t, err)

	assert.Equal(t, domain.Traversal{{From: 0, To: 1}, {From: 1, To: 2}, {From: 2, To: 3}, {From: 3, To: 4}}, plan.Traversal)
	assert.Empty(t, plan.Stats.Wraps)
	assert.Nil(t, plan.Thread)
	assert.Equal(t, 4, plan.Labels.Base)
	assert.Equal(t, 1, plan.Labels.Digits)

	for i, want := range []string{"Alfa", "Bravo", "Charlie", "Delta"} {
		got, err := plan.Label(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestPlanner_DisjointInput(t *testing.T) {
	planner := weave.New()
	data := testutils.Document(t, 6, [2]int{0, 1}, [2]int{3, 4}, [2]int{4, 5}, [2]int{1, 2})

	plan, err := planner.Plan(context.Background(), weave.Request{Document: data})
	require.NoError(t, err)

	assert.Equal(t, domain.Traversal{{From: 0, To: 1}, {From: 1, To: 2}, {From: 3, To: 4}, {From: 4, To: 5}}, plan.Traversal)
	require.Len(t, plan.Stats.Wraps, 1)
	assert.Equal(t, 2, plan.Stats.Wraps[0].From)
	assert.Equal(t, 3, plan.Stats.Wraps[0].To)

	var out bytes.Buffer
	require.NoError(t, plan.Print(&out))
	assert.Contains(t, out.String(), "    around from pin 2 to pin 3\n")
	assert.NotContains(t, out.String(), "Total thread")
}

func TestPlanner_WithWidth(t *testing.T) {
	planner := weave.New()
	data := testutils.Document(t, 8, [2]int{0, 4}, [2]int{4, 1}, [2]int{6, 7})

	plan, err := planner.Plan(context.Background(), weave.Request{Document: data, Width: weave.Width(24)})
	require.NoError(t, err)
	require.NotNil(t, plan.Thread)

	assert.Equal(t, 24.0, plan.Thread.WidthInches)
	assert.Equal(t, 1, plan.Thread.Wraps)
	require.Len(t, plan.Running, len(plan.Traversal))
	for i := 1; i < len(plan.Running); i++ {
		assert.GreaterOrEqual(t, plan.Running[i], plan.Running[i-1])
	}
	assert.InDelta(t, plan.Thread.Inches, plan.Running[len(plan.Running)-1], 1e-9)

	var out bytes.Buffer
	require.NoError(t, plan.Print(&out))
	assert.Contains(t, out.String(), "Total thread: ")
}

func TestPlanner_InvalidWidth(t *testing.T) {
	planner := weave.New()
	data := testutils.Document(t, 5, [2]int{0, 1})

	for _, w := range []float64{0, -3} {
		_, err := planner.Plan(context.Background(), weave.Request{Document: data, Width: weave.Width(w)})
		assert.ErrorIs(t, err, domain.ErrInvalidWidth, "width %g", w)
	}
}

func TestPlanner_ImageWidthOnlyRequiredForEstimate(t *testing.T) {
	planner := weave.New()
	fixture := testutils.Fixture(5, [2]int{0, 1})
	delete(fixture, "image_width")
	data := testutils.Marshal(t, fixture)

	_, err := planner.Plan(context.Background(), weave.Request{Document: data})
	require.NoError(t, err)

	_, err = planner.Plan(context.Background(), weave.Request{Document: data, Width: weave.Width(12)})
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestPlanner_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"grid arrangement", func(d map[string]any) {
			d["args"].(map[string]any)["pin_arrangement"] = "grid"
		}},
		{"two colors", func(d map[string]any) {
			d["args"].(map[string]any)["foreground_colors"] = []any{"#000", "#fff"}
		}},
		{"zero pin count", func(d map[string]any) {
			d["args"].(map[string]any)["pin_count"] = 0
		}},
		{"segments not a list", func(d map[string]any) {
			d["line_segments"] = "nope"
		}},
		{"unknown coordinate", func(d map[string]any) {
			d["line_segments"] = []any{[]any{
				map[string]any{"x": 1, "y": 1},
				map[string]any{"x": 2, "y": 2},
			}}
		}},
	}

	planner := weave.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := testutils.Fixture(5, [2]int{0, 1}, [2]int{1, 2})
			tt.mutate(fixture)

			plan, err := planner.Plan(context.Background(), weave.Request{Document: testutils.Marshal(t, fixture)})
			assert.Nil(t, plan)
			assert.ErrorIs(t, err, domain.ErrInvalidDocument)
		})
	}
}

func TestPlanner_Cache(t *testing.T) {
	cache := memory.NewCache()
	planner := weave.New(
		weave.WithCache(cache),
		weave.WithMetrics(observability.NewMetrics(prometheus.NewRegistry())),
	)
	req := weave.Request{
		Document: testutils.Document(t, 6, [2]int{0, 1}, [2]int{3, 4}, [2]int{1, 2}),
		Width:    weave.Width(18),
	}

	first, err := planner.Plan(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	second, err := planner.Plan(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Len())

	// A different width is a different plan.
	_, err = planner.Plan(context.Background(), weave.Request{Document: req.Document})
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())
}

func TestPlanner_CorruptCacheEntry(t *testing.T) {
	cache := memory.NewCache()
	planner := weave.New(weave.WithCache(cache))
	req := weave.Request{Document: testutils.Document(t, 5, [2]int{0, 1})}

	require.NoError(t, cache.Put(context.Background(), weave.CacheKey(req), []byte("not json")))

	plan, err := planner.Plan(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, plan.Traversal, 1)
}

func TestCacheKey(t *testing.T) {
	doc := []byte(`{"a":1}`)

	plain := weave.CacheKey(weave.Request{Document: doc})
	assert.Len(t, plain, 64)
	assert.Equal(t, plain, weave.CacheKey(weave.Request{Document: doc}))
	assert.NotEqual(t, plain, weave.CacheKey(weave.Request{Document: doc, Width: weave.Width(10)}))
	assert.NotEqual(t,
		weave.CacheKey(weave.Request{Document: doc, Width: weave.Width(10)}),
		weave.CacheKey(weave.Request{Document: doc, Width: weave.Width(11)}),
	)
}

func TestPlanner_PlanFile(t *testing.T) {
	planner := weave.New()
	path := testutils.WriteDocument(t, testutils.Document(t, 5, [2]int{2, 3}))

	plan, err := planner.PlanFile(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.Traversal{{From: 2, To: 3}}, plan.Traversal)

	_, err = planner.PlanFile(context.Background(), path+".missing", nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestPlanner_Validate(t *testing.T) {
	planner := weave.New()

	doc, err := planner.Validate(testutils.Document(t, 7, [2]int{0, 3}, [2]int{5, 2}))
	require.NoError(t, err)
	assert.Equal(t, 7, doc.Board.PinCount())
	assert.Equal(t, []domain.Segment{{A: 0, B: 3}, {A: 2, B: 5}}, doc.Segments)

	_, err = planner.Validate([]byte(`{`))
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestPlanner_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := weave.New().Plan(ctx, weave.Request{Document: testutils.Document(t, 5, [2]int{0, 1})})
	assert.True(t, errors.Is(err, context.Canceled))
}
