package dictionary

import (
	"errors"
	"fmt"
)

// Problem classifies a BuildError
type Problem int

const (
	MissingField Problem = iota
	WrongFieldType
	UnsupportedKind
	InvalidHeader
)

// ErrUnknownFormat is returned for file formats the package cannot read
var ErrUnknownFormat = errors.New("unknown dictionary format")

// BuildError reports a dictionary document that parsed but does not describe
// a valid dictionary. Field is the dotted path of the offending field, or the
// raw header for InvalidHeader.
type BuildError struct {
	Field   string
	Problem Problem
	Value   string
}

func (e *BuildError) Error() string {
	switch e.Problem {
	case MissingField:
		return fmt.Sprintf("'%s' is missing", e.Field)
	case WrongFieldType:
		return fmt.Sprintf("'%s' doesn't have the expected type", e.Field)
	case UnsupportedKind:
		return fmt.Sprintf("'%s' value %q is not supported", e.Field, e.Value)
	case InvalidHeader:
		return fmt.Sprintf("invalid header %q", e.Field)
	default:
		return fmt.Sprintf("'%s' is invalid", e.Field)
	}
}

func missing(field string) error {
	return &BuildError{Field: field, Problem: MissingField}
}

func wrongType(field string) error {
	return &BuildError{Field: field, Problem: WrongFieldType}
}
