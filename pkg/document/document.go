package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/weave/pkg/domain"
)

// Document is a validated, indexed renderer result.
type Document struct {
	Board    domain.Board
	Segments []domain.Segment

	// DeclaredPinCount is args.pin_count as requested from the renderer.
	// Board.PinCount() is the number of pins actually placed.
	DeclaredPinCount int
	Foreground       string
	Info             RenderInfo
}

// RenderInfo carries optional run metadata written by the renderer.
type RenderInfo struct {
	ImageHeight    float64 `json:"image_height,omitempty" mapstructure:"image_height"`
	InitialScore   float64 `json:"initial_score,omitempty" mapstructure:"initial_score"`
	FinalScore     float64 `json:"final_score,omitempty" mapstructure:"final_score"`
	ElapsedSeconds float64 `json:"elapsed_seconds,omitempty" mapstructure:"elapsed_seconds"`
}

type config struct {
	logger            *slog.Logger
	requireImageWidth bool
}

// Option configures decoding.
type Option func(*config)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// RequireImageWidth makes image_width mandatory. Physical length estimation needs it.
func RequireImageWidth(required bool) Option {
	return func(c *config) {
		c.requireImageWidth = required
	}
}

// Load reads and decodes the document at path.
func Load(path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return Decode(data, opts...)
}

// Read decodes a document from r.
func Read(r io.Reader, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return Decode(data, opts...)
}

// Decode validates and indexes a JSON document.
func Decode(data []byte, opts ...Option) (*Document, error) {
	cfg := config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&cfg)
	}

	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON: %v", domain.ErrInvalidDocument, err)
	}
	if raw == nil {
		return nil, domain.Invalid("document", "must be a JSON object", nil)
	}

	if err := validateShape(raw, cfg.requireImageWidth); err != nil {
		return nil, err
	}

	return index(raw, cfg)
}
