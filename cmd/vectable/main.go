// Package main is the entry point for the vectable dispatch simulator.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/vectable/delegate"
	"github.com/dshills/vectable/internal/feed"
	"github.com/dshills/vectable/internal/monitor"
	"github.com/dshills/vectable/internal/sim"
	"github.com/dshills/vectable/internal/vectormap"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	MapPath   string
	FeedPath  string
	Format    string
	IDPath    string
	ScriptDir string
	LogLevel  string
	Watch     bool
	Delay     time.Duration
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	logger, err := newLogger(opts.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush on exit

	m, err := vectormap.NewLoader(opts.MapPath).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if m == nil {
		fmt.Fprintf(os.Stderr, "Error: vector map %s not found\n", opts.MapPath)
		return 1
	}

	engine, err := sim.New(m, sim.Config{
		Builtins:  builtinHandlers(logger),
		ScriptDir: opts.ScriptDir,
		Logger:    logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer engine.Close()

	src, closeFeed, err := openFeed(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeFeed()

	if opts.Watch {
		return watch(engine, src, opts.Delay)
	}

	if err := engine.Run(src); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	report, err := sim.Report(engine.Metrics(), src.Skipped())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Println(string(report))

	return 0
}

// watch replays the feed on a pacing goroutine while the monitor owns the
// terminal. All dispatching stays on the single replay goroutine; the
// monitor only reads metrics.
func watch(engine *sim.Engine, src feed.Source, delay time.Duration) int {
	mon, err := monitor.New(engine.Metrics())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create monitor: %v\n", err)
		return 1
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			id, err := src.Next()
			if err != nil {
				return
			}
			engine.Dispatch(id)

			select {
			case <-stop:
				return
			case <-time.After(delay):
			}
		}
	}()

	err = mon.Run()
	close(stop)

	// Wait for the replay goroutine so nothing dispatches into a closed
	// engine; a feed blocked on stdin is abandoned after a grace period.
	select {
	case <-done:
	case <-time.After(250 * time.Millisecond):
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// builtinHandlers returns the handler names usable in vector maps.
func builtinHandlers(logger *zap.Logger) map[string]delegate.Func {
	return map[string]delegate.Func{
		// log reports every dispatch at info level.
		"log": func(id uint) {
			logger.Info("dispatch", zap.Uint("id", id))
		},
		// count does nothing; hits are visible through metrics.
		"count": func(id uint) {},
	}
}

// openFeed opens the configured identifier source. "-" reads stdin.
func openFeed(opts options) (feed.Source, func(), error) {
	var r io.Reader = os.Stdin
	closeFn := func() {}

	if opts.FeedPath != "-" {
		f, err := os.Open(opts.FeedPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening feed: %w", err)
		}
		r = f
		closeFn = func() { f.Close() }
	}

	switch opts.Format {
	case "json":
		return feed.NewJSON(r, opts.IDPath), closeFn, nil
	case "lines":
		return feed.NewLines(r), closeFn, nil
	default:
		closeFn()
		return nil, nil, fmt.Errorf("unknown feed format %q (want json or lines)", opts.Format)
	}
}

// newLogger builds a JSON logger on stderr, keeping stdout free for the
// run report.
func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}

	cfg := zap.NewProductionEncoderConfig()
	core := zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.Lock(os.Stderr), lvl)
	return zap.New(core), nil
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.MapPath, "map", "vectors.toml", "Path to the vector map")
	flag.StringVar(&opts.MapPath, "m", "vectors.toml", "Path to the vector map (shorthand)")
	flag.StringVar(&opts.FeedPath, "feed", "-", "Identifier feed file, - for stdin")
	flag.StringVar(&opts.FeedPath, "f", "-", "Identifier feed file, - for stdin (shorthand)")
	flag.StringVar(&opts.Format, "format", "json", "Feed format (json, lines)")
	flag.StringVar(&opts.IDPath, "id-path", "id", "JSON path of the identifier field")
	flag.StringVar(&opts.ScriptDir, "scripts", "", "Base directory for Lua handler scripts")
	flag.StringVar(&opts.LogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.Watch, "watch", false, "Show a live terminal monitor instead of a report")
	flag.BoolVar(&opts.Watch, "w", false, "Show a live terminal monitor (shorthand)")
	flag.DurationVar(&opts.Delay, "delay", 0, "Pause between dispatches during replay")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Vectable - vector dispatch simulator\n\n")
		fmt.Fprintf(os.Stderr, "Usage: vectable [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  vectable -m vectors.toml < events.ndjson      Replay and print a report\n")
		fmt.Fprintf(os.Stderr, "  vectable -m vectors.toml -format lines -f ids Replay bare ids from a file\n")
		fmt.Fprintf(os.Stderr, "  vectable -m vectors.toml -w -delay 100ms      Watch dispatches live\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Vectable %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}
