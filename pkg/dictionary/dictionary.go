// Package dictionary reads word dictionaries: the word classes, the phrase
// format and the kind of generator they describe.
//
// The primary format is TOML:
//
//	[config]
//	type = "static"
//	format = "The {{adjective}} {{noun}} {{verb}} {{adverb}}."
//
//	[classes]
//	adjective = """
//	quick
//	lazy
//	"""
//	noun = ["fox", "dog"]
//
//	[sources.noun]
//	url = "https://example.com/nouns.html"
//	selector = "ul.words li"
//
// YAML documents use the same structure. The legacy INI format has one
// section per part of speech and a fixed format.
package dictionary

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/NivBraz/epigram/pkg/parser"
	"github.com/NivBraz/epigram/pkg/phrase"
	"github.com/NivBraz/epigram/pkg/wordbank"
)

// Format is a dictionary file format
type Format string

const (
	FormatAuto Format = ""
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatINI  Format = "ini"
)

// Source is a remote word list appended to a class when the dictionary is resolved.
type Source struct {
	URL string
	// Selector picks words out of an HTML page; empty means one word per line.
	Selector string
}

// Dictionary is a parsed dictionary file
type Dictionary struct {
	Kind    phrase.Kind
	Format  string
	Bank    *wordbank.WordBank
	Sources map[string]Source
}

// Generator builds the phrase generator described by the dictionary.
// Sources must be resolved first; the bank is shared with the generator.
func (d *Dictionary) Generator(opts ...phrase.Option) (phrase.Generator, error) {
	return phrase.New(d.Kind, d.Format, d.Bank, opts...)
}

// DetectFormat guesses the format of a dictionary file from its extension.
// Anything unknown is treated as TOML.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".ini":
		return FormatINI
	default:
		return FormatTOML
	}
}

// ParseFormat validates a user supplied format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatAuto, FormatTOML, FormatYAML, FormatINI:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Parse reads a dictionary document
func Parse(data []byte, format Format) (*Dictionary, error) {
	switch format {
	case FormatTOML, FormatAuto:
		return parseTOML(data)
	case FormatYAML:
		return parseYAML(data)
	case FormatINI:
		return parseINI(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ConfigType returns config.type of a TOML or YAML document without
// validating the rest of it.
func ConfigType(data []byte, format Format) (string, bool) {
	var root map[string]any
	var err error
	switch format {
	case FormatTOML, FormatAuto:
		root, err = decodeTOML(data)
	case FormatYAML:
		root, err = decodeYAML(data)
	case FormatINI:
		return string(phrase.KindStatic), true
	default:
		return "", false
	}
	if err != nil {
		return "", false
	}
	config, ok := root["config"].(map[string]any)
	if !ok {
		return "", false
	}
	kind, ok := config["type"].(string)
	return kind, ok
}

var supportedKinds = map[phrase.Kind]bool{
	phrase.KindStatic: true,
}

// build turns a decoded TOML or YAML document into a dictionary
func build(root map[string]any) (*Dictionary, error) {
	rawConfig, ok := root["config"]
	if !ok {
		return nil, missing("config")
	}
	config, ok := rawConfig.(map[string]any)
	if !ok {
		return nil, wrongType("config")
	}

	kind, err := stringField(config, "config", "type")
	if err != nil {
		return nil, err
	}
	if !supportedKinds[phrase.Kind(kind)] {
		return nil, &BuildError{Field: "config.type", Problem: UnsupportedKind, Value: kind}
	}

	format, err := stringField(config, "config", "format")
	if err != nil {
		return nil, err
	}

	rawClasses, ok := root["classes"]
	if !ok {
		return nil, missing("classes")
	}
	classes, ok := rawClasses.(map[string]any)
	if !ok {
		return nil, wrongType("classes")
	}

	p := parser.New()
	bank := wordbank.New(nil)
	for _, name := range sortedKeys(classes) {
		field := "classes." + name
		switch v := classes[name].(type) {
		case string:
			bank.Add(name, p.ParseWordList([]byte(v))...)
		case []any:
			words := make([]string, 0, len(v))
			for _, item := range v {
				word, ok := item.(string)
				if !ok {
					return nil, wrongType(field)
				}
				if word = strings.TrimSpace(word); word != "" {
					words = append(words, word)
				}
			}
			bank.Add(name, words...)
		default:
			return nil, wrongType(field)
		}
	}

	sources, err := buildSources(root)
	if err != nil {
		return nil, err
	}

	return &Dictionary{
		Kind:    phrase.Kind(kind),
		Format:  format,
		Bank:    bank,
		Sources: sources,
	}, nil
}

func buildSources(root map[string]any) (map[string]Source, error) {
	raw, ok := root["sources"]
	if !ok {
		return nil, nil
	}
	table, ok := raw.(map[string]any)
	if !ok {
		return nil, wrongType("sources")
	}

	sources := make(map[string]Source, len(table))
	for class, v := range table {
		field := "sources." + class
		entry, ok := v.(map[string]any)
		if !ok {
			return nil, wrongType(field)
		}
		url, err := stringField(entry, field, "url")
		if err != nil {
			return nil, err
		}
		src := Source{URL: url}
		if sel, ok := entry["selector"]; ok {
			if src.Selector, ok = sel.(string); !ok {
				return nil, wrongType(field + ".selector")
			}
		}
		sources[class] = src
	}
	return sources, nil
}

func stringField(table map[string]any, prefix, key string) (string, error) {
	field := prefix + "." + key
	raw, ok := table[key]
	if !ok {
		return "", missing(field)
	}
	s, ok := raw.(string)
	if !ok {
		return "", wrongType(field)
	}
	return s, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
