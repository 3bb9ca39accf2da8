package schema

import (
	"strings"
	"testing"
)

func TestValidate_Nested(t *testing.T) {
	s := Schema{
		"args": Object(Schema{
			"pin_count":       Int(),
			"pin_arrangement": String(),
		}),
		"pin_locations": List(nil),
		"image_width":   Optional(Number()),
	}

	valid := map[string]any{
		"args": map[string]any{
			"pin_count":       float64(10),
			"pin_arrangement": "circle",
		},
		"pin_locations": []any{},
	}
	if err := Validate(s, valid); err != nil {
		t.Fatalf("Validate(valid) = %v", err)
	}

	invalid := map[string]any{
		"args": map[string]any{
			"pin_count": "ten",
		},
		"pin_locations": "nope",
		"image_width":   "wide",
	}
	err := Validate(s, invalid)
	if err == nil {
		t.Fatal("Validate(invalid) = nil")
	}

	errs := ValidationErrors(err)
	if len(errs) != 4 {
		t.Fatalf("got %d errors, want 4: %v", len(errs), err)
	}

	// Keys are reported in sorted, dotted form.
	want := []string{
		`field "args.pin_arrangement": required`,
		`field "args.pin_count"`,
		`field "image_width"`,
		`field "pin_locations"`,
	}
	for i, w := range want {
		if !strings.HasPrefix(errs[i].Error(), w) {
			t.Errorf("error %d = %q, want prefix %q", i, errs[i].Error(), w)
		}
	}
}

func TestValidate_OptionalNull(t *testing.T) {
	s := Schema{"image_width": Optional(Number())}

	if err := Validate(s, map[string]any{"image_width": nil}); err != nil {
		t.Errorf("null optional rejected: %v", err)
	}
	if err := Validate(s, map[string]any{}); err != nil {
		t.Errorf("missing optional rejected: %v", err)
	}
}

func TestAggregateError_Message(t *testing.T) {
	single := &AggregateError{Errors: []error{&ValidationError{Key: "a", Reason: "required"}}}
	if single.Error() != `field "a": required` {
		t.Errorf("single = %q", single.Error())
	}

	multi := &AggregateError{Errors: []error{
		&ValidationError{Key: "a", Reason: "required"},
		&ValidationError{Key: "b", Reason: "expected list, got string", Value: "x"},
	}}
	msg := multi.Error()
	if !strings.HasPrefix(msg, "2 validation errors:") || !strings.Contains(msg, `2. field "b"`) {
		t.Errorf("multi = %q", msg)
	}
}
