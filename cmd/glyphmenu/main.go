// Package main is the entry point for glyphmenu, a fuzzy picker that reads
// candidates from its arguments or stdin and prints the chosen one.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"golang.org/x/text/unicode/norm"

	"github.com/dshills/glyphmenu/internal/app"
	"github.com/dshills/glyphmenu/internal/config"
	"github.com/dshills/glyphmenu/internal/config/watcher"
	"github.com/dshills/glyphmenu/internal/font"
	"github.com/dshills/glyphmenu/internal/input/fuzzy"
	"github.com/dshills/glyphmenu/internal/plugin/lua"
	"github.com/dshills/glyphmenu/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes.
const (
	exitAccepted = 0
	exitCanceled = 1
	exitError    = 2
)

// maxLineSize bounds one candidate line read from stdin.
const maxLineSize = 1 << 20

// flagKeys maps flags that override a setting to the setting key.
var flagKeys = map[string]string{
	"prompt":           "prompt",
	"lines":            "lines",
	"font":             "font",
	"scorer":           "scorer",
	"show-cursor":      "show_cursor",
	"close-on-unfocus": "close_on_unfocus",
	"log-level":        "log.level",
}

type options struct {
	configPath  string
	logFile     string
	noWatch     bool
	showVersion bool
	showHelp    bool
	candidates  []string
	overrides   map[string]string
}

// backendFactory creates the display backend. Tests substitute a null
// backend.
type backendFactory func() (backend.Backend, error)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, terminalBackend))
}

func terminalBackend() (backend.Backend, error) {
	return backend.NewTerminal()
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, newBackend backendFactory) int {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitAccepted
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if opts.showHelp {
		usage(fs, stdout)
		return exitAccepted
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "glyphmenu %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return exitAccepted
	}

	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	loader := config.NewLoader(config.WithOverrides(opts.overrides))
	cfg, err := loader.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	logOut := stderr
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(stderr, "Error: failed to open log file: %v\n", err)
			return exitError
		}
		defer f.Close()
		logOut = f
	}
	logger := app.NewSessionLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(cfg.Log.Level),
		Output: logOut,
		Prefix: "glyphmenu",
	})
	if cfgPath != "" {
		logger.Debug("using config %s", cfgPath)
	}

	candidates := opts.candidates
	if len(candidates) == 0 && !isTerminal(stdin) {
		candidates, err = readCandidates(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error: reading candidates: %v\n", err)
			return exitError
		}
	}
	logger.Debug("loaded %d candidates", len(candidates))

	atlas, err := loadFont(cfg.Font)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	scorer, closeScorer, err := newScorer(cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer closeScorer()

	appOpts := []app.Option{app.WithLogger(logger)}
	if cfgPath != "" && !opts.noWatch {
		w, err := watcher.New(cfgPath)
		if err != nil {
			logger.Warn("config reload disabled: %v", err)
		} else {
			defer w.Close()
			appOpts = append(appOpts, app.WithWatcher(w, loader))
		}
	}

	a, err := app.New(cfg, atlas, scorer, candidates, appOpts...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer a.Metrics().Log(logger)

	b, err := newBackend()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create terminal: %v\n", err)
		return exitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := a.Run(ctx, b)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	if res.Outcome != app.OutcomeAccepted {
		return exitCanceled
	}
	fmt.Fprintln(stdout, res.Text)
	return exitAccepted
}

func parseFlags(args []string, stderr io.Writer) (options, *pflag.FlagSet, error) {
	var opts options

	fs := pflag.NewFlagSet("glyphmenu", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false

	fs.StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file (TOML or YAML)")
	fs.StringP("prompt", "p", "", "Prompt painted before the query")
	fs.IntP("lines", "l", 0, "Number of candidate rows (0 fills the screen)")
	fs.StringP("font", "f", "", "Path to a PBM (P4) font atlas")
	fs.StringP("scorer", "s", "", `Ranking strategy: "default", "path", or a .lua script`)
	fs.Bool("show-cursor", true, "Paint the query cursor")
	fs.Bool("close-on-unfocus", true, "Cancel when the terminal loses focus")
	fs.String("log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr")
	fs.BoolVar(&opts.noWatch, "no-watch", false, "Do not reload the config file when it changes")
	fs.BoolVarP(&opts.showVersion, "version", "v", false, "Show version information")
	fs.BoolVarP(&opts.showHelp, "help", "h", false, "Show help message")

	fs.Usage = func() { usage(fs, stderr) }

	if err := fs.Parse(args); err != nil {
		return opts, fs, err
	}

	opts.overrides = make(map[string]string)
	fs.Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			opts.overrides[key] = f.Value.String()
		}
	})
	opts.candidates = fs.Args()
	return opts, fs, nil
}

func usage(fs *pflag.FlagSet, out io.Writer) {
	fs.SetOutput(out)
	fmt.Fprintf(out, "glyphmenu - fuzzy picker\n\n")
	fmt.Fprintf(out, "Usage: glyphmenu [options] [candidates...]\n\n")
	fmt.Fprintf(out, "Candidates are read from stdin, one per line, when none are given.\n\n")
	fmt.Fprintf(out, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(out, "\nExamples:\n")
	fmt.Fprintf(out, "  ls | glyphmenu                 Pick a file name\n")
	fmt.Fprintf(out, "  glyphmenu -p '> ' red green    Pick from arguments\n")
	fmt.Fprintf(out, "\nExit status is 0 on accept, 1 on cancel, 2 on error.\n")
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readCandidates returns the non-empty lines of r in NFC form.
func readCandidates(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			continue
		}
		out = append(out, norm.NFC.String(line))
	}
	return out, sc.Err()
}

func loadFont(path string) (*font.Atlas, error) {
	if path == "" {
		return font.Default()
	}
	return font.Load(path)
}

// newScorer builds the configured ranking strategy. The returned func
// releases it.
func newScorer(cfg *config.Config, logger *app.Logger) (fuzzy.Scorer, func(), error) {
	fallback := fuzzy.DefaultWeights()

	switch cfg.Scorer {
	case config.ScorerDefault:
		return fallback, func() {}, nil
	case config.ScorerPath:
		return fuzzy.NewPathScorer(), func() {}, nil
	}

	log := logger.WithComponent("lua")
	s, err := lua.NewScorer(cfg.Scorer, fallback, lua.WithPrint(func(msg string) {
		log.Info("%s", msg)
	}))
	if err != nil {
		return nil, nil, fmt.Errorf("loading scorer %s: %w", cfg.Scorer, err)
	}
	closeFn := func() {
		if n, err := s.Failures(); n > 0 {
			log.Warn("scorer failed %d times, last error: %v", n, err)
		}
		_ = s.Close()
	}
	return s, closeFn, nil
}
