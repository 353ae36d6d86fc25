package phrase

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyClass is matched by every EmptyClassError.
	ErrEmptyClass = errors.New("word class has no words")

	// ErrSubstitutionLimit is returned in rescan mode when a phrase needs more
	// substitutions than allowed, usually because words reference each other.
	ErrSubstitutionLimit = errors.New("substitution limit exceeded")

	// ErrUnknownKind is returned by New for a kind it cannot build.
	ErrUnknownKind = errors.New("unknown generator kind")
)

// EmptyClassError reports a placeholder whose class exists but has no words.
type EmptyClassError struct {
	Class string
}

func (e *EmptyClassError) Error() string {
	return fmt.Sprintf("class %q has no words", e.Class)
}

func (e *EmptyClassError) Is(target error) bool {
	return target == ErrEmptyClass
}
