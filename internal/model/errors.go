package model

import (
	"errors"
	"fmt"
)

// DecodeErrorKind classifies a decode failure.
type DecodeErrorKind uint8

const (
	MissingField DecodeErrorKind = iota + 1
	InvalidValue
)

func (k DecodeErrorKind) String() string {
	switch k {
	case MissingField:
		return "missing field"
	case InvalidValue:
		return "invalid value"
	default:
		return "unknown"
	}
}

var (
	ErrMissingField = errors.New("missing field")
	ErrInvalidValue = errors.New("invalid value")
)

// DecodeError reports a response body that does not match the expected
// schema. Field is a dotted path relative to Entity, e.g. "listings[2].market".
type DecodeError struct {
	Entity string
	Field  string
	Kind   DecodeErrorKind
	Err    error
}

func (e *DecodeError) Error() string {
	where := e.Entity
	if e.Field != "" {
		where += " " + e.Field
	}
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %s: %v", where, e.Kind, e.Err)
	}
	return fmt.Sprintf("decode %s: %s", where, e.Kind)
}

// Is matches ErrMissingField and ErrInvalidValue by kind.
func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrMissingField:
		return e.Kind == MissingField
	case ErrInvalidValue:
		return e.Kind == InvalidValue
	}
	return false
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// joinPath appends child to a field path; child may start with an index.
func joinPath(parent, child string) string {
	switch {
	case child == "":
		return parent
	case parent == "":
		return child
	case child[0] == '[':
		return parent + child
	default:
		return parent + "." + child
	}
}
