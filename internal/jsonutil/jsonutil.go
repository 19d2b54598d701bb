// Package jsonutil provides shared helpers for decoding JSON payloads with
// contextual error messages.
package jsonutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// Decode reads a single JSON value of type T from r.
// Trailing data after the value is an error, as is an empty body.
func Decode[T any](r io.Reader, context string) (T, error) {
	var v T
	dec := json.NewDecoder(r)
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, fmt.Errorf("%s: empty body", context)
		}
		return v, fmt.Errorf("%s: %w", context, err)
	}
	if dec.More() {
		return v, fmt.Errorf("%s: trailing data after JSON value", context)
	}
	return v, nil
}
