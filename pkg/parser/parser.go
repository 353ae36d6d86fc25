package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// ParseWords extracts words from content. With an empty selector content is a
// plain word list, otherwise it is HTML and every element matching the
// selector contributes one word.
func (p *Parser) ParseWords(content []byte, selector string) ([]string, error) {
	if selector == "" {
		return p.ParseWordList(content), nil
	}
	return p.ParseHTMLWords(content, selector)
}

// ParseWordList reads one word per line, skipping blank lines and comments
func (p *Parser) ParseWordList(content []byte) []string {
	lines := strings.Split(string(content), "\n")
	words := make([]string, 0, len(lines))

	for _, line := range lines {
		word := cleanText(line)
		if word == "" || IsComment(word) {
			continue
		}
		words = append(words, word)
	}

	return words
}

// ParseHTMLWords extracts the text of every element matching selector
func (p *Parser) ParseHTMLWords(content []byte, selector string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("error parsing html: %w", err)
	}

	words := make([]string, 0)
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		// script and style bodies are never words
		if goquery.NodeName(s) == "script" || goquery.NodeName(s) == "style" {
			return
		}
		if word := cleanText(s.Text()); word != "" {
			words = append(words, word)
		}
	})

	return words, nil
}

// IsComment reports whether a trimmed line is a comment: a lone "#" or "#"
// followed by a space. Words such as "#hashtag" or "C#" are kept.
func IsComment(line string) bool {
	return line == "#" || strings.HasPrefix(line, "# ")
}

// cleanText trims a word and collapses inner whitespace runs to one space
func cleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// NormalizeClass turns a section header such as " Verbs " into a class name
// ("verb"): lower case, trimmed, without trailing s.
func NormalizeClass(header string) string {
	return strings.TrimRight(strings.ToLower(strings.TrimSpace(header)), "s")
}
