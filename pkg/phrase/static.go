package phrase

import (
	"fmt"
	"strings"

	"github.com/NivBraz/epigram/pkg/wordbank"
)

const (
	tokenOpen  = "{{"
	tokenClose = "}}"
)

// Token returns the placeholder text for a class, e.g. {{noun}}.
func Token(class string) string {
	return tokenOpen + class + tokenClose
}

type segment struct {
	text  string
	class bool
}

// Static fills a fixed format string with random words.
//
// The format is split once, at construction, into literal text and class
// references. Only tokens naming a class of the bank become references;
// anything else, including {{unknown}} tokens, stays literal. Every reference
// gets its own draw and produced words are never scanned again.
type Static struct {
	format      string
	bank        *wordbank.WordBank
	segments    []segment
	rng         Rand
	rescanLimit int
}

var _ Generator = (*Static)(nil)

// NewStatic creates a static generator. The bank must not be modified afterwards.
func NewStatic(format string, bank *wordbank.WordBank, opts ...Option) *Static {
	o := options{rng: globalRand{}}
	for _, opt := range opts {
		opt(&o)
	}

	return &Static{
		format:      format,
		bank:        bank,
		segments:    tokenize(format, bank),
		rng:         o.rng,
		rescanLimit: o.rescanLimit,
	}
}

// tokenize splits format into literal and class segments. At every "{{" the
// text up to each following "}}" is a candidate class name, shortest first;
// when none is a class of the bank a single '{' is kept as literal and
// scanning resumes right after it, so "{{{noun}}}" still yields a reference
// to noun.
func tokenize(format string, bank *wordbank.WordBank) []segment {
	var segments []segment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segments = append(segments, segment{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(format); {
		if strings.HasPrefix(format[i:], tokenOpen) {
			rest := format[i+len(tokenOpen):]
			if name, ok := className(rest, bank); ok {
				flush()
				segments = append(segments, segment{text: name, class: true})
				i += len(tokenOpen) + len(name) + len(tokenClose)
				continue
			}
		}
		lit.WriteByte(format[i])
		i++
	}
	flush()

	return segments
}

// className returns the shortest prefix of rest that names a class of the
// bank and is followed by "}}". Class names may contain "}}" themselves.
func className(rest string, bank *wordbank.WordBank) (string, bool) {
	for end := 0; ; end++ {
		idx := strings.Index(rest[end:], tokenClose)
		if idx < 0 {
			return "", false
		}
		end += idx
		if name := rest[:end]; bank.Has(name) {
			return name, true
		}
	}
}

// Kind returns KindStatic
func (s *Static) Kind() Kind { return KindStatic }

// Format returns the format string the generator was built with
func (s *Static) Format() string { return s.format }

// References returns the distinct classes the format refers to, in order of first use.
func (s *Static) References() []string {
	seen := make(map[string]struct{})
	var refs []string
	for _, seg := range s.segments {
		if !seg.class {
			continue
		}
		if _, ok := seen[seg.text]; ok {
			continue
		}
		seen[seg.text] = struct{}{}
		refs = append(refs, seg.text)
	}
	return refs
}

// Generate returns a new phrase. It fails with an *EmptyClassError when the
// format refers to a class without words; no partial phrase is returned.
func (s *Static) Generate() (string, error) {
	if s.rescanLimit > 0 {
		return s.generateRescan()
	}

	var b strings.Builder
	b.Grow(len(s.format))
	for _, seg := range s.segments {
		if !seg.class {
			b.WriteString(seg.text)
			continue
		}
		word, err := s.pick(seg.text)
		if err != nil {
			return "", err
		}
		b.WriteString(word)
	}
	return b.String(), nil
}

// generateRescan substitutes textually, class by class in name order,
// always replacing the leftmost token until none is left.
func (s *Static) generateRescan() (string, error) {
	out := s.format
	substitutions := 0
	for _, class := range s.bank.Classes() {
		token := Token(class)
		for strings.Contains(out, token) {
			if substitutions >= s.rescanLimit {
				return "", fmt.Errorf("%w: %d substitutions", ErrSubstitutionLimit, substitutions)
			}
			word, err := s.pick(class)
			if err != nil {
				return "", err
			}
			out = strings.Replace(out, token, word, 1)
			substitutions++
		}
	}
	return out, nil
}

func (s *Static) pick(class string) (string, error) {
	words := s.bank.Get(class)
	if len(words) == 0 {
		return "", &EmptyClassError{Class: class}
	}
	return words[s.rng.Intn(len(words))], nil
}
