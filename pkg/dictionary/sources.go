package dictionary

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/NivBraz/epigram/pkg/parser"
)

// WordFetcher downloads the body of a URL
type WordFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// maxConcurrentSources bounds the number of sources fetched at once
const maxConcurrentSources = 4

// Resolve fetches every source and appends its words to the matching class,
// creating the class when the dictionary does not list it. onSource, if not
// nil, is called once per resolved source. Resolve must finish before a
// generator is built from the dictionary.
func (d *Dictionary) Resolve(ctx context.Context, f WordFetcher, onSource func(class string, words int)) error {
	if len(d.Sources) == 0 {
		return nil
	}

	classes := make([]string, 0, len(d.Sources))
	for class := range d.Sources {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	p := parser.New()
	results := make([][]string, len(classes))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentSources)
	for i, class := range classes {
		src := d.Sources[class]
		eg.Go(func() error {
			body, err := f.Fetch(egCtx, src.URL)
			if err != nil {
				return fmt.Errorf("source %q: %w", class, err)
			}
			words, err := p.ParseWords(body, src.Selector)
			if err != nil {
				return fmt.Errorf("source %q: %w", class, err)
			}
			results[i] = words
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for i, class := range classes {
		d.Bank.Add(class, results[i]...)
		if onSource != nil {
			onSource(class, len(results[i]))
		}
	}
	return nil
}
