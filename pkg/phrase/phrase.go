// Package phrase builds random phrases out of a word bank.
//
// A Generator produces one phrase per Generate call. The only kind today is
// KindStatic, which fills a fixed format string such as
//
//	The {{adjective}} {{noun}} {{verb}} {{adverb}}.
//
// with words drawn uniformly at random from the matching classes.
package phrase

import (
	"fmt"
	"math/rand"

	"github.com/NivBraz/epigram/pkg/wordbank"
)

// Kind identifies a generator implementation. Dictionary files select it
// through their config.type field.
type Kind string

const (
	KindStatic Kind = "static"
)

// Generator produces random phrases.
type Generator interface {
	Generate() (string, error)
	Kind() Kind
}

// Rand is the randomness a generator draws from. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// globalRand uses the package-level math/rand source, which is safe for concurrent use.
type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

type options struct {
	rng         Rand
	rescanLimit int
}

// Option configures a generator
type Option func(*options)

// WithRand sets the randomness source. A *rand.Rand is not safe for
// concurrent use, so a generator built with one must not be shared
// across goroutines.
func WithRand(r Rand) Option {
	return func(o *options) {
		if r != nil {
			o.rng = r
		}
	}
}

// WithRescan switches to textual substitution: every class token is replaced
// leftmost-first until the output no longer contains it, so words that
// themselves contain tokens are substituted again. limit caps the total number
// of substitutions per phrase; zero or less disables rescanning.
func WithRescan(limit int) Option {
	return func(o *options) {
		o.rescanLimit = limit
	}
}

// New creates a generator of the given kind.
func New(kind Kind, format string, bank *wordbank.WordBank, opts ...Option) (Generator, error) {
	switch kind {
	case KindStatic:
		return NewStatic(format, bank, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
