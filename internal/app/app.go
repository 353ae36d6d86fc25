package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/NivBraz/epigram/internal/config"
	"github.com/NivBraz/epigram/internal/models"
	"github.com/NivBraz/epigram/pkg/dictionary"
	"github.com/NivBraz/epigram/pkg/fetcher"
	"github.com/NivBraz/epigram/pkg/phrase"
)

var (
	// ErrDictionaryRead wraps failures to read a dictionary or fetch its sources
	ErrDictionaryRead = errors.New("could not read dictionary")
	// ErrDictionaryParse wraps dictionaries that do not parse or build
	ErrDictionaryParse = errors.New("could not load dictionary")
	// ErrGenerate wraps phrase generation failures
	ErrGenerate = errors.New("could not generate phrase")
)

// App represents the main application
type App struct {
	config  *config.Config
	logger  *zap.Logger
	fetcher *fetcher.Fetcher
	stdin   io.Reader
	stderr  io.Writer
	rng     *rand.Rand

	mu      sync.RWMutex
	dict    *dictionary.Dictionary
	gen     phrase.Generator
	reloads atomic.Int32
}

// Option configures an App
type Option func(*App)

// WithStdin sets where "-" dictionaries are read from
func WithStdin(r io.Reader) Option {
	return func(a *App) { a.stdin = r }
}

// WithStderr sets where prompts and progress bars are written
func WithStderr(w io.Writer) Option {
	return func(a *App) { a.stderr = w }
}

// New creates a new instance of the application and loads its dictionary
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	// Validate config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &App{
		config: cfg,
		logger: logger,
		stdin:  os.Stdin,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.fetcher = fetcher.New(fetcher.FetcherConfig{
		RequestsPerSecond: cfg.HTTPClient.RequestsPerSecond,
		Burst:             cfg.HTTPClient.Burst,
		Timeout:           time.Duration(cfg.HTTPClient.Timeout) * time.Second,
		UserAgent:         cfg.HTTPClient.UserAgent,
		MaxRetries:        cfg.HTTPClient.MaxRetries,
	}, logger.Named("fetcher"))

	if cfg.Seed != 0 {
		a.rng = rand.New(rand.NewSource(cfg.Seed))
	}

	dict, err := a.loadDictionary(ctx)
	if err != nil {
		return nil, err
	}
	gen, err := a.buildGenerator(dict)
	if err != nil {
		return nil, err
	}
	a.dict, a.gen = dict, gen

	logger.Debug("dictionary loaded",
		zap.String("source", describeSource(cfg.Dictionary)),
		zap.Int("classes", dict.Bank.Len()),
		zap.String("format", dict.Format))

	return a, nil
}

func (a *App) buildGenerator(dict *dictionary.Dictionary) (phrase.Generator, error) {
	opts := []phrase.Option{phrase.WithRescan(a.config.RescanLimit)}
	if a.rng != nil {
		opts = append(opts, phrase.WithRand(a.rng))
	}
	gen, err := dict.Generator(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDictionaryParse, err)
	}
	return gen, nil
}

func (a *App) generator() phrase.Generator {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.gen
}

// Run generates the configured number of phrases, or phrases until ctx is
// done in infinite mode, writing one per line to w.
func (a *App) Run(ctx context.Context, w io.Writer) (*models.Result, error) {
	startTime := time.Now()
	result := &models.Result{}
	defer func() {
		result.Stats.Reloads = int(a.reloads.Load())
		result.Stats.TimeElapsed = int(time.Since(startTime).Milliseconds())
	}()

	if a.config.Watch {
		stop, err := a.watch(ctx)
		if err != nil {
			return result, fmt.Errorf("failed to watch dictionary: %w", err)
		}
		defer stop()
	}

	var limiter *rate.Limiter
	if a.config.Rate.PhrasesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(a.config.Rate.PhrasesPerSecond), a.config.Rate.Burst)
	}

	var bar *progressbar.ProgressBar
	if a.config.Output.Progress && !a.config.Infinite && a.config.Count > 0 {
		bar = newProgressBar(a.stderr, a.config.Count, "Generating phrases...")
		defer bar.Finish()
	}

	write := a.writer(w)
	for i := 0; a.config.Infinite || i < a.config.Count; i++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return result, err
			}
		}

		text, err := a.generator().Generate()
		if err != nil {
			return result, fmt.Errorf("%w %d: %w", ErrGenerate, i+1, err)
		}
		if err := write(models.Phrase{Index: i + 1, Text: text}); err != nil {
			return result, fmt.Errorf("error writing phrase: %w", err)
		}

		result.Generated++
		if bar != nil {
			bar.Add(1)
		}
	}

	return result, nil
}

func (a *App) writer(w io.Writer) func(models.Phrase) error {
	if a.config.Output.Format == config.OutputJSON {
		enc := json.NewEncoder(w)
		return func(p models.Phrase) error {
			return enc.Encode(p)
		}
	}
	return func(p models.Phrase) error {
		_, err := fmt.Fprintln(w, p.Text)
		return err
	}
}

// Classes describes the word classes of the loaded dictionary, sorted by name
func (a *App) Classes() []models.ClassCount {
	a.mu.RLock()
	bank := a.dict.Bank
	a.mu.RUnlock()

	classes := bank.Classes()
	counts := make([]models.ClassCount, 0, len(classes))
	for _, class := range classes {
		counts = append(counts, models.ClassCount{
			Class: class,
			Words: len(bank.Get(class)),
		})
	}
	return counts
}

func newProgressBar(w io.Writer, max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
