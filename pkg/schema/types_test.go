package schema

import (
	"encoding/json"
	"math"
	"testing"
)

func TestIntType(t *testing.T) {
	typ := Int()

	if typ.Name() != "int" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "int")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{42, false},
		{int64(42), false},
		{float64(42), false},
		{json.Number("42"), false},
		{float64(42.5), true},
		{math.Inf(1), true},
		{"42", true},
		{true, true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestNumberType(t *testing.T) {
	typ := Number()

	tests := []struct {
		value   any
		wantErr bool
	}{
		{3.14, false},
		{7, false},
		{json.Number("1e3"), false},
		{math.NaN(), true},
		{"3.14", true},
		{[]any{1.0}, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestListType(t *testing.T) {
	anyList := List(nil)
	if anyList.Name() != "[any]" {
		t.Errorf("Name() = %q, want %q", anyList.Name(), "[any]")
	}
	if err := anyList.Validate([]any{1.0, "x", nil}); err != nil {
		t.Errorf("untyped list rejected: %v", err)
	}
	if err := anyList.Validate(map[string]any{}); err == nil {
		t.Error("object accepted as list")
	}

	strings := List(String())
	if strings.Name() != "[string]" {
		t.Errorf("Name() = %q, want %q", strings.Name(), "[string]")
	}
	if err := strings.Validate([]any{"a", 2.0}); err == nil {
		t.Error("mixed list accepted as [string]")
	}
}

func TestCustomType(t *testing.T) {
	positive := Custom("positive", func(v any) error {
		if n, ok := AsInt(v); !ok || n <= 0 {
			return errNotPositive
		}
		return nil
	})

	if positive.Name() != "positive" {
		t.Errorf("Name() = %q", positive.Name())
	}
	if err := positive.Validate(3.0); err != nil {
		t.Errorf("Validate(3) = %v", err)
	}
	if err := positive.Validate(0.0); err != errNotPositive {
		t.Errorf("Validate(0) = %v, want errNotPositive", err)
	}
}

type stringError string

func (e stringError) Error() string { return string(e) }

const errNotPositive = stringError("must be positive")
