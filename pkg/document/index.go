package document

import (
	"fmt"

	"github.com/aretw0/weave/pkg/domain"
	"github.com/aretw0/weave/pkg/schema"
	"github.com/mitchellh/mapstructure"
)

func index(raw map[string]any, cfg config) (*Document, error) {
	args := raw["args"].(map[string]any)
	declared, _ := schema.AsInt(args["pin_count"])
	foreground, _ := args["foreground_colors"].([]any)[0].(string)

	rawPins := raw["pin_locations"].([]any)
	if len(rawPins) == 0 {
		return nil, domain.Invalid("pin_locations", "must contain at least one pin", nil)
	}

	pins := make([]domain.Point, len(rawPins))
	lookup := make(map[domain.Point]int, len(rawPins))
	for i, rp := range rawPins {
		p, err := decodePoint(rp)
		if err != nil {
			return nil, domain.Invalid(fmt.Sprintf("pin_locations[%d]", i), err.Error(), nil)
		}
		pins[i] = p
		if _, seen := lookup[p]; seen {
			cfg.logger.Warn("Duplicate pin location, first match wins", "pin", i, "point", p.String())
			continue
		}
		lookup[p] = i
	}

	if declared != len(pins) {
		cfg.logger.Warn("Pin count differs from pin locations, using locations",
			"declared", declared, "placed", len(pins))
	}

	rawSegments := raw["line_segments"].([]any)
	if len(rawSegments) == 0 {
		return nil, domain.Invalid("line_segments", "must contain at least one segment", nil)
	}

	segments := make([]domain.Segment, len(rawSegments))
	for i, rs := range rawSegments {
		field := fmt.Sprintf("line_segments[%d]", i)

		ends, err := segmentEndpoints(rs)
		if err != nil {
			return nil, domain.Invalid(field, err.Error(), nil)
		}

		var resolved [2]int
		for j, end := range ends {
			pin, ok := lookup[end]
			if !ok {
				return nil, domain.Invalid(field, fmt.Sprintf("coordinate %s is not a pin location", end), nil)
			}
			resolved[j] = pin
		}
		if resolved[0] == resolved[1] {
			return nil, domain.Invalid(field, fmt.Sprintf("connects pin %d to itself", resolved[0]), nil)
		}
		segments[i] = domain.NewSegment(resolved[0], resolved[1])
	}

	var info RenderInfo
	if err := mapstructure.WeakDecode(raw, &info); err != nil {
		cfg.logger.Debug("Ignoring unreadable render metadata", "err", err)
	}

	width, _ := schema.AsFloat(raw["image_width"])

	cfg.logger.Debug("Document indexed", "pins", len(pins), "segments", len(segments))

	return &Document{
		Board:            domain.Board{Pins: pins, ImageWidth: width},
		Segments:         segments,
		DeclaredPinCount: declared,
		Foreground:       foreground,
		Info:             info,
	}, nil
}

// decodePoint accepts {"x":..,"y":..} or [x, y].
func decodePoint(v any) (domain.Point, error) {
	switch p := v.(type) {
	case map[string]any:
		var pt domain.Point
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:     &pt,
			ErrorUnset: true,
		})
		if err != nil {
			return domain.Point{}, err
		}
		if err := dec.Decode(p); err != nil {
			return domain.Point{}, fmt.Errorf("invalid point: %w", err)
		}
		return pt, nil
	case []any:
		if len(p) != 2 {
			return domain.Point{}, fmt.Errorf("point must have 2 coordinates, got %d", len(p))
		}
		x, okX := schema.AsFloat(p[0])
		y, okY := schema.AsFloat(p[1])
		if !okX || !okY {
			return domain.Point{}, fmt.Errorf("point coordinates must be numbers")
		}
		return domain.Point{X: x, Y: y}, nil
	default:
		return domain.Point{}, fmt.Errorf("expected point, got %T", v)
	}
}

// segmentEndpoints accepts [p, p] or {"points": [p, p], ...}.
func segmentEndpoints(v any) ([2]domain.Point, error) {
	var ends [2]domain.Point

	list, ok := v.([]any)
	if m, isMap := v.(map[string]any); isMap {
		list, ok = m["points"].([]any)
	}
	if !ok {
		return ends, fmt.Errorf("expected a pair of points, got %T", v)
	}
	if len(list) != 2 {
		return ends, fmt.Errorf("segment must have 2 endpoints, got %d", len(list))
	}

	for i, item := range list {
		p, err := decodePoint(item)
		if err != nil {
			return ends, fmt.Errorf("endpoint %d: %w", i, err)
		}
		ends[i] = p
	}
	return ends, nil
}
