package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Optional records whether a JSON field was present, and whether it was null.
// A field absent from the document leaves Set false.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a present, non-null value
func Some[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Value: value}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// FlexBool accepts JSON booleans, 0/1 and the usual truthy/falsy strings
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}

	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.ToLower(strings.TrimSpace(unquoted))
	}

	switch raw {
	case "true", "1", "yes", "on", "y", "t":
		*b = true
	case "false", "0", "no", "off", "n", "f":
		*b = false
	default:
		return fmt.Errorf("invalid boolean value %s", string(data))
	}
	return nil
}

// Int returns the 0/1 column representation
func (b FlexBool) Int() int {
	if b {
		return 1
	}
	return 0
}
