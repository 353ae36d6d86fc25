package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/NivBraz/epigram/pkg/dictionary"
)

const stdinPath = "-"

func describeSource(path string) string {
	switch path {
	case "":
		return "built-in"
	case stdinPath:
		return "stdin"
	default:
		return path
	}
}

// loadDictionary reads, parses and resolves the configured dictionary
func (a *App) loadDictionary(ctx context.Context) (*dictionary.Dictionary, error) {
	data, err := a.readDictionary()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDictionaryRead, err)
	}

	format, err := dictionary.ParseFormat(a.config.DictionaryFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDictionaryParse, err)
	}
	if format == dictionary.FormatAuto && a.config.Dictionary != "" {
		format = dictionary.DetectFormat(a.config.Dictionary)
	}

	dict, err := dictionary.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDictionaryParse, err)
	}

	if err := a.resolveSources(ctx, dict); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDictionaryRead, err)
	}
	return dict, nil
}

func (a *App) readDictionary() ([]byte, error) {
	switch a.config.Dictionary {
	case "":
		return dictionary.BuiltinSource(), nil
	case stdinPath:
		if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			fmt.Fprintln(a.stderr, "Reading dictionary from stdin, close with ^D (EOF)...")
		}
		return io.ReadAll(a.stdin)
	default:
		return os.ReadFile(a.config.Dictionary)
	}
}

func (a *App) resolveSources(ctx context.Context, dict *dictionary.Dictionary) error {
	if len(dict.Sources) == 0 {
		return nil
	}

	onSource := func(class string, words int) {
		a.logger.Debug("source resolved", zap.String("class", class), zap.Int("words", words))
	}
	if a.config.Output.Progress {
		bar := newProgressBar(a.stderr, len(dict.Sources), "Loading word sources...")
		defer bar.Finish()
		logSource := onSource
		onSource = func(class string, words int) {
			logSource(class, words)
			bar.Add(1)
		}
	}

	return dict.Resolve(ctx, a.fetcher, onSource)
}
