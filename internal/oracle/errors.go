package oracle

import (
	"errors"
	"strings"
)

// Error classes of a model call. Callers match them with errors.Is.
var (
	ErrUnavailable = errors.New("oracle unavailable")
	ErrFormat      = errors.New("oracle reply is not valid JSON")
	ErrSchema      = errors.New("oracle reply does not match the expected schema")
)

// SchemaError lists every violation found in one reply.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return ErrSchema.Error() + ": " + strings.Join(e.Violations, "; ")
}

func (e *SchemaError) Unwrap() error {
	return ErrSchema
}
