package dictionary

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/NivBraz/epigram/pkg/parser"
	"github.com/NivBraz/epigram/pkg/phrase"
	"github.com/NivBraz/epigram/pkg/wordbank"
)

// LegacyFormat is the phrase format of INI dictionaries
const LegacyFormat = "The {{adjective}} {{noun}} {{verb}} {{adverb}}."

// PartsOfSpeech are the only sections an INI dictionary may have
var PartsOfSpeech = []string{"verb", "noun", "adjective", "adverb"}

// parseINI reads the legacy format:
//
//	[Verbs]
//	jumps
//	[Nouns]
//	fox
//
// Headers are normalized with parser.NormalizeClass. Every part of speech
// exists in the result even without a section, so a missing section shows up
// as an empty class at generation time.
func parseINI(data []byte) (*Dictionary, error) {
	bank := wordbank.New(nil)
	for _, pos := range PartsOfSpeech {
		bank.Add(pos)
	}

	var current string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") || parser.IsComment(line) {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			header := line[1 : len(line)-1]
			class := parser.NormalizeClass(header)
			if !isPartOfSpeech(class) {
				return nil, &BuildError{Field: header, Problem: InvalidHeader}
			}
			current = class
			continue
		}

		if current == "" {
			return nil, fmt.Errorf("could not parse ini: line %d: word %q outside of a section", lineNo, line)
		}
		bank.Add(current, strings.Join(strings.Fields(line), " "))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not parse ini: %w", err)
	}

	return &Dictionary{
		Kind:   phrase.KindStatic,
		Format: LegacyFormat,
		Bank:   bank,
	}, nil
}

func isPartOfSpeech(class string) bool {
	for _, pos := range PartsOfSpeech {
		if pos == class {
			return true
		}
	}
	return false
}
