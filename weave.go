package weave

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/aretw0/weave/pkg/document"
	"github.com/aretw0/weave/pkg/domain"
	"github.com/aretw0/weave/pkg/instructions"
	"github.com/aretw0/weave/pkg/label"
	"github.com/aretw0/weave/pkg/observability"
	"github.com/aretw0/weave/pkg/ports"
	"github.com/aretw0/weave/pkg/sequence"
	"github.com/aretw0/weave/pkg/thread"
)

// Request is a single planning job.
type Request struct {
	// Document is the raw renderer JSON.
	Document []byte
	// Width is the physical board diameter in inches. A nil Width skips
	// thread estimation.
	Width *float64
}

// Width returns a pointer to w, for Request.Width.
func Width(w float64) *float64 {
	return &w
}

// Plan is the full result of sequencing a document.
type Plan struct {
	Board            domain.Board        `json:"board"`
	DeclaredPinCount int                 `json:"declared_pin_count"`
	Foreground       string              `json:"foreground,omitempty"`
	Info             document.RenderInfo `json:"info"`
	Traversal        domain.Traversal    `json:"traversal"`
	Labels           label.Encoder       `json:"labels"`
	Stats            sequence.Stats      `json:"stats"`
	Thread           *thread.Estimate    `json:"thread,omitempty"`
	// Running is the cumulative thread length after each step, in inches.
	Running []float64 `json:"running,omitempty"`
}

// Label returns the label of step i.
func (p *Plan) Label(i int) (string, error) {
	return p.Labels.Encode(i)
}

// Print writes the instruction stream for the plan.
func (p *Plan) Print(w io.Writer, opts ...instructions.Option) error {
	return instructions.NewPrinter(w, opts...).Print(p.Traversal, p.Labels, p.Thread)
}

// Planner runs documents through validation, sequencing, labelling and
// thread estimation.
type Planner struct {
	logger  *slog.Logger
	cache   ports.PlanCache
	metrics *observability.Metrics
}

// Option defines a functional option for configuring the Planner.
type Option func(*Planner)

// WithLogger sets a custom structured logger for the planner.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		p.logger = logger
	}
}

// WithCache stores finished plans and serves repeated requests from it.
func WithCache(cache ports.PlanCache) Option {
	return func(p *Planner) {
		p.cache = cache
	}
}

// WithMetrics records planning metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Planner) {
		p.metrics = m
	}
}

// New initializes a Planner.
func New(opts ...Option) *Planner {
	p := &Planner{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	return p
}

// Validate decodes and indexes a document without sequencing it.
func (p *Planner) Validate(data []byte) (*document.Document, error) {
	doc, err := document.Decode(data, document.WithLogger(p.logger))
	if err != nil {
		p.metrics.ObserveFailure(err)
		return nil, err
	}
	return doc, nil
}

// PlanFile reads the document at path and plans it.
func (p *Planner) PlanFile(ctx context.Context, path string, width *float64) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return p.Plan(ctx, Request{Document: data, Width: width})
}

// Plan builds the plan for req. Every validation error is returned before
// any result is produced.
func (p *Planner) Plan(ctx context.Context, req Request) (*Plan, error) {
	plan, err := p.plan(ctx, req)
	if err != nil {
		p.metrics.ObserveFailure(err)
		return nil, err
	}
	return plan, nil
}

func (p *Planner) plan(ctx context.Context, req Request) (*Plan, error) {
	if req.Width != nil {
		if w := *req.Width; math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return nil, fmt.Errorf("%w: got %g", domain.ErrInvalidWidth, w)
		}
	}

	key := CacheKey(req)
	if cached, ok := p.lookup(ctx, key); ok {
		return cached, nil
	}

	start := time.Now()
	doc, err := document.Decode(req.Document,
		document.WithLogger(p.logger),
		document.RequireImageWidth(req.Width != nil),
	)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.logger.Debug("Sequencing", "pins", doc.Board.PinCount(), "segments", len(doc.Segments))
	traversal, err := sequence.Sequence(doc.Segments, doc.Board.PinCount())
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Board:            doc.Board,
		DeclaredPinCount: doc.DeclaredPinCount,
		Foreground:       doc.Foreground,
		Info:             doc.Info,
		Traversal:        traversal,
		Labels:           label.NewEncoder(len(traversal)),
		Stats:            sequence.Analyze(traversal, doc.Board.PinCount()),
	}

	if req.Width != nil {
		meter, err := thread.NewMeter(doc.Board, *req.Width)
		if err != nil {
			return nil, err
		}
		for _, step := range traversal {
			if _, err := meter.Add(step); err != nil {
				return nil, err
			}
		}
		est := meter.Estimate()
		plan.Thread = &est
		plan.Running = meter.Running()
	}

	elapsed := time.Since(start)
	p.metrics.ObservePlan(len(traversal), len(plan.Stats.Wraps), elapsed)
	p.logger.Debug("Plan ready",
		"steps", len(traversal),
		"wraps", len(plan.Stats.Wraps),
		"base", plan.Labels.Base,
		"digits", plan.Labels.Digits,
		"elapsed", elapsed,
	)

	p.store(ctx, key, plan)
	return plan, nil
}

func (p *Planner) lookup(ctx context.Context, key string) (*Plan, bool) {
	if p.cache == nil {
		return nil, false
	}
	data, err := p.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			p.logger.Warn("Plan cache lookup failed", "error", err)
		}
		p.metrics.ObserveCache(false)
		return nil, false
	}

	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		p.logger.Warn("Discarding unreadable cached plan", "key", key, "error", err)
		p.metrics.ObserveCache(false)
		return nil, false
	}
	p.metrics.ObserveCache(true)
	p.logger.Debug("Plan cache hit", "key", key)
	return &plan, true
}

func (p *Planner) store(ctx context.Context, key string, plan *Plan) {
	if p.cache == nil {
		return
	}
	data, err := json.Marshal(plan)
	if err != nil {
		p.logger.Warn("Failed to encode plan for cache", "error", err)
		return
	}
	if err := p.cache.Put(ctx, key, data); err != nil {
		p.logger.Warn("Failed to cache plan", "error", err)
	}
}

// CacheKey identifies a request: the SHA-256 of the document bytes followed
// by the width, if any.
func CacheKey(req Request) string {
	h := sha256.New()
	h.Write(req.Document)
	if req.Width != nil {
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(*req.Width))
		h.Write([]byte{1})
		h.Write(buf[:])
	} else {
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
