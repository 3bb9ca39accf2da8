package schema

import (
	"errors"
	"slices"
)

// Schema is a map of field names to their expected types.
type Schema map[string]Type

// Validate checks if data conforms to the schema.
// Returns an *AggregateError with every failure found, ordered by key.
func Validate(schema Schema, data map[string]any) error {
	errs := validate("", schema, data)
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func validate(prefix string, schema Schema, data map[string]any) []error {
	keys := make([]string, 0, len(schema))
	for k := range schema {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var errs []error
	for _, name := range keys {
		fieldType := schema[name]
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		value, exists := data[name]
		if !exists || value == nil {
			if _, optional := fieldType.(*OptionalType); !optional {
				errs = append(errs, &ValidationError{Key: key, Reason: "required"})
			}
			continue
		}

		if opt, ok := fieldType.(*OptionalType); ok {
			fieldType = opt.Type
		}

		// Nested objects report their own fields under the dotted key.
		if obj, ok := fieldType.(*ObjectType); ok {
			if m, isMap := value.(map[string]any); isMap {
				errs = append(errs, validate(key, obj.fields, m)...)
				continue
			}
		}

		if err := fieldType.Validate(value); err != nil {
			var nested *AggregateError
			if errors.As(err, &nested) {
				errs = append(errs, nested.Errors...)
				continue
			}
			errs = append(errs, &ValidationError{
				Key:    key,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}
	return errs
}
