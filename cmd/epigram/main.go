package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/NivBraz/epigram/internal/app"
	"github.com/NivBraz/epigram/internal/config"
	"github.com/NivBraz/epigram/pkg/phrase"
)

var version = "dev"

const (
	exitOK       = 0
	exitParse    = 1
	exitRead     = 2
	exitGenerate = 3
	exitUsage    = 4
	exitCanceled = 130
)

// options holds the command line flags; flags override the loaded config
// only when they were set explicitly.
type options struct {
	configPath       string
	verbose          bool
	dictionaryFormat string
	format           string
	count            int
	infinite         bool
	seed             int64
	rate             float64
	rescanLimit      int
	watch            bool
	progress         bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	var logger *zap.Logger

	cmd := &cobra.Command{
		Use:   "epigram [DICTIONARY]",
		Short: "Generate random phrases from a dictionary of word classes",
		Long: `epigram fills a phrase format such as "The {{adjective}} {{noun}}."
with words picked at random from the classes of a dictionary.

DICTIONARY is a TOML, YAML or legacy INI file, or "-" to read it from stdin.
Without it the built-in dictionary is used.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = newLogger(opts.verbose, stderr)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts, args)
			if err != nil {
				return err
			}

			application, err := app.New(cmd.Context(), cfg, logger, app.WithStderr(stderr))
			if err != nil {
				return err
			}

			result, err := application.Run(cmd.Context(), stdout)
			if result != nil {
				logger.Debug("run finished",
					zap.Int("generated", result.Generated),
					zap.Int("reloads", result.Stats.Reloads),
					zap.Int("elapsed_ms", result.Stats.TimeElapsed))
			}
			return err
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (default: "+config.DefaultPath+" if present)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&opts.dictionaryFormat, "dictionary-format", "", "Dictionary format: toml, yaml or ini (default: by extension)")

	f := cmd.Flags()
	f.IntVarP(&opts.count, "count", "n", 1, "Number of phrases to generate")
	f.BoolVarP(&opts.infinite, "infinite", "i", false, "Generate phrases until interrupted")
	f.Int64Var(&opts.seed, "seed", 0, "Random seed for reproducible output (0: random)")
	f.Float64Var(&opts.rate, "rate", 0, "Maximum phrases per second (0: unlimited)")
	f.IntVar(&opts.rescanLimit, "rescan-limit", 0, "Substitute words textually, allowing at most this many substitutions")
	f.BoolVar(&opts.watch, "watch", false, "Reload the dictionary when its file changes")
	f.BoolVar(&opts.progress, "progress", false, "Show a progress bar on stderr")
	f.StringVar(&opts.format, "format", config.OutputText, "Output format: text or json")
	cmd.MarkFlagsMutuallyExclusive("count", "infinite")

	cmd.AddCommand(newClassesCmd(opts, &logger, stdout, stderr))
	cmd.AddCommand(newVersionCmd(stdout))

	return cmd
}

func newClassesCmd(opts *options, logger **zap.Logger, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "classes [DICTIONARY]",
		Short: "List the word classes of a dictionary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts, args)
			if err != nil {
				return err
			}

			application, err := app.New(cmd.Context(), cfg, *logger, app.WithStderr(stderr))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CLASS\tWORDS")
			for _, c := range application.Classes() {
				fmt.Fprintf(w, "%s\t%d\n", c.Class, c.Words)
			}
			return w.Flush()
		},
	}
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "epigram %s\n", version)
		},
	}
}

// loadConfig loads the config file and environment, then applies the flags
// that were set on the command line.
func loadConfig(cmd *cobra.Command, opts *options, args []string) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.Dictionary = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("dictionary-format") {
		cfg.DictionaryFormat = opts.dictionaryFormat
	}
	if flags.Changed("count") {
		cfg.Count = opts.count
		cfg.Infinite = false
	}
	if flags.Changed("infinite") {
		cfg.Infinite = opts.infinite
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}
	if flags.Changed("rate") {
		cfg.Rate.PhrasesPerSecond = opts.rate
	}
	if flags.Changed("rescan-limit") {
		cfg.RescanLimit = opts.rescanLimit
	}
	if flags.Changed("watch") {
		cfg.Watch = opts.watch
	}
	if flags.Changed("progress") {
		cfg.Output.Progress = opts.progress
	}
	if flags.Changed("format") {
		cfg.Output.Format = opts.format
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(verbose bool, stderr io.Writer) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(stderr),
		zap.NewAtomicLevelAt(level),
	)
	return zap.New(core)
}

// exitCode maps a command error to the process exit status
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitCanceled
	case errors.Is(err, syscall.EPIPE):
		// stdout closed early, e.g. piped into head
		return exitOK
	case errors.Is(err, app.ErrDictionaryParse):
		return exitParse
	case errors.Is(err, app.ErrDictionaryRead):
		return exitRead
	case errors.Is(err, app.ErrGenerate),
		errors.Is(err, phrase.ErrEmptyClass),
		errors.Is(err, phrase.ErrSubstitutionLimit):
		return exitGenerate
	default:
		return exitUsage
	}
}

func main() {
	// Writes to a closed stdout return EPIPE instead of killing the process
	signal.Ignore(syscall.SIGPIPE)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	code := exitCode(err)
	if err != nil && code != exitOK && code != exitCanceled {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	stop()
	os.Exit(code)
}
