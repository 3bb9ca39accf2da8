package instructions

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/aretw0/weave/pkg/domain"
	"github.com/aretw0/weave/pkg/label"
	"github.com/aretw0/weave/pkg/thread"
	"github.com/muesli/termenv"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// Printer writes instructions to an output stream.
type Printer struct {
	Writer  io.Writer
	Format  Format
	Profile termenv.Profile
	Logger  *slog.Logger
}

// Option configures a Printer.
type Option func(*Printer)

// WithFormat selects text or NDJSON output.
func WithFormat(f Format) Option {
	return func(p *Printer) {
		p.Format = f
	}
}

// WithProfile sets the color profile for text output. termenv.Ascii disables color.
func WithProfile(profile termenv.Profile) Option {
	return func(p *Printer) {
		p.Profile = profile
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Printer) {
		p.Logger = logger
	}
}

// NewPrinter creates a printer writing to w (stdout when nil).
func NewPrinter(w io.Writer, opts ...Option) *Printer {
	if w == nil {
		w = os.Stdout
	}
	p := &Printer{
		Writer:  w,
		Format:  FormatText,
		Profile: termenv.Ascii,
		Logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Print writes the full instruction stream. est may be nil.
func (p *Printer) Print(t domain.Traversal, enc label.Encoder, est *thread.Estimate) error {
	p.Logger.Debug("Printing instructions", "steps", len(t), "format", p.Format)

	if p.Format == FormatJSON {
		encoder := json.NewEncoder(p.Writer)
		return Walk(t, enc, est, func(e Event) error {
			return encoder.Encode(e)
		})
	}

	pinWidth := 1
	for _, s := range t {
		pinWidth = max(pinWidth, len(strconv.Itoa(s.From)), len(strconv.Itoa(s.To)))
	}

	return Walk(t, enc, est, func(e Event) error {
		_, err := fmt.Fprintln(p.Writer, p.line(e, enc, pinWidth))
		return err
	})
}

func (p *Printer) line(e Event, enc label.Encoder, pinWidth int) string {
	switch e.Kind {
	case EventSeparator:
		return ""
	case EventProgress:
		return p.Profile.String(fmt.Sprintf("=== %d steps done, %d to go ===", e.Taken, e.Remaining)).
			Foreground(p.Profile.Color("#c084fc")).Bold().String()
	case EventWrap:
		return p.Profile.String(fmt.Sprintf("    around from pin %d to pin %d", e.From, e.To)).
			Foreground(p.Profile.Color("#fbbf24")).String()
	case EventStep:
		return fmt.Sprintf("%s  %*d -> %*d",
			p.Profile.String(enc.Pad(e.Label)).Foreground(p.Profile.Color("#818cf8")).String(),
			pinWidth, e.From, pinWidth, e.To)
	case EventSummary:
		return p.Profile.String(fmt.Sprintf("Total thread: %d inches (%.3f km)", e.Inches, e.Kilometers)).
			Bold().String()
	default:
		return ""
	}
}
