package document

import (
	"fmt"

	"github.com/aretw0/weave/pkg/domain"
	"github.com/aretw0/weave/pkg/schema"
)

func arrangement(v any) error {
	if err := schema.String().Validate(v); err != nil {
		return err
	}
	if s := v.(string); s != domain.ArrangementCircle {
		return fmt.Errorf("pin arrangement %q is not supported, only %q", s, domain.ArrangementCircle)
	}
	return nil
}

func singleColor(v any) error {
	colors, ok := v.([]any)
	if !ok {
		return fmt.Errorf("expected list, got %T", v)
	}
	if len(colors) != 1 {
		return fmt.Errorf("exactly one foreground color is supported, got %d", len(colors))
	}
	return nil
}

func positiveInt(v any) error {
	if err := schema.Int().Validate(v); err != nil {
		return err
	}
	if n, _ := schema.AsInt(v); n <= 0 {
		return fmt.Errorf("must be positive, got %d", n)
	}
	return nil
}

func positiveNumber(v any) error {
	if err := schema.Number().Validate(v); err != nil {
		return err
	}
	if f, _ := schema.AsFloat(v); f <= 0 {
		return fmt.Errorf("must be positive, got %g", f)
	}
	return nil
}

func documentSchema(requireImageWidth bool) schema.Schema {
	width := schema.Optional(schema.Custom("positive number", positiveNumber))
	if requireImageWidth {
		width = schema.Custom("positive number", positiveNumber)
	}

	return schema.Schema{
		"args": schema.Object(schema.Schema{
			"pin_arrangement":   schema.Custom("circle", arrangement),
			"foreground_colors": schema.Custom("single color", singleColor),
			"pin_count":         schema.Custom("positive int", positiveInt),
		}),
		"pin_locations": schema.List(nil),
		"line_segments": schema.List(nil),
		"image_width":   width,
	}
}

func validateShape(raw map[string]any, requireImageWidth bool) error {
	if err := schema.Validate(documentSchema(requireImageWidth), raw); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err)
	}
	return nil
}
