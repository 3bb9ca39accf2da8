package cli

import (
	"io"
	"os"

	"github.com/aretw0/weave/internal/config"
	"github.com/aretw0/weave/pkg/instructions"
)

// Options contains the configuration shared by the document commands.
type Options struct {
	Path   string
	Width  *float64
	Format instructions.Format
	Color  string
	Debug  bool
	Config config.Config

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (o Options) withDefaults() Options {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Format == "" {
		o.Format = instructions.FormatText
	}
	if o.Color == "" {
		o.Color = config.ColorAuto
	}
	return o
}
