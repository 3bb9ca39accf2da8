package cli

import (
	"fmt"
	"os"
)

// Validate checks the document at opts.Path and reports what it contains.
func Validate(opts Options) error {
	opts = opts.withDefaults()
	logger := createLogger(opts)

	data, err := os.ReadFile(opts.Path)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	doc, err := newPlanner(logger).Validate(data)
	if err != nil {
		return err
	}

	pins := doc.Board.PinCount()
	fmt.Fprintf(opts.Stdout, "%s is valid: %d pins", opts.Path, pins)
	if doc.DeclaredPinCount != pins {
		fmt.Fprintf(opts.Stdout, " (%d requested)", doc.DeclaredPinCount)
	}
	fmt.Fprintf(opts.Stdout, ", %d segments\n", len(doc.Segments))
	return nil
}
