// Package main is the entry point for the pvec tool.
//
// pvec bench model-checks the vector against a slice under a randomized
// workload. pvec run executes a Lua script with the vector module loaded.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/dshills/pvec/internal/config"
	"github.com/dshills/pvec/internal/config/loader"
	"github.com/dshills/pvec/internal/script"
	"github.com/dshills/pvec/internal/workload"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch args[0] {
	case "bench":
		return runBench(ctx, args[1:], stdout, stderr)
	case "run":
		return runScript(ctx, args[1:], stdout, stderr)
	case "version", "-v", "--version":
		fmt.Fprintf(stdout, "pvec %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "pvec - persistent vector workbench\n\n")
	fmt.Fprintf(w, "Usage:\n")
	fmt.Fprintf(w, "  pvec bench [options]        Model-check a randomized workload\n")
	fmt.Fprintf(w, "  pvec run [options] FILE     Run a Lua script\n")
	fmt.Fprintf(w, "  pvec version                Show version information\n")
	fmt.Fprintf(w, "\nRun 'pvec COMMAND -h' for the options of a command.\n")
}

// commonFlags are shared by bench and run.
type commonFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "Path to a TOML or YAML configuration file")
	fs.StringVar(&c.configPath, "c", "", "Path to a configuration file (shorthand)")
	fs.StringVar(&c.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, disabled)")
	fs.StringVar(&c.logFormat, "log-format", "", "Log format (console, json)")
}

// load reads the configuration and applies the log flags over it.
func (c *commonFlags) load() (*config.Workload, error) {
	cfg, err := config.Load(loader.DefaultFS(), c.configPath)
	if err != nil {
		return nil, err
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}
	if c.logFormat != "" {
		cfg.Log.Format = c.logFormat
	}
	return cfg, nil
}

func runBench(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		common  commonFlags
		seed    uint64
		ops     int
		initial int
		every   int
		asJSON  bool
	)
	common.register(fs)
	fs.Uint64Var(&seed, "seed", 0, "Generator seed (overrides the configuration)")
	fs.IntVar(&ops, "ops", -1, "Number of operations (overrides the configuration)")
	fs.IntVar(&initial, "initial", -1, "Initial length (overrides the configuration)")
	fs.IntVar(&every, "check-every", -1, "Steps between full checks (overrides the configuration)")
	fs.BoolVar(&asJSON, "json", false, "Print the report as JSON")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := common.load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = seed
		case "ops":
			cfg.Ops = ops
		case "initial":
			cfg.Initial = initial
		case "check-every":
			cfg.CheckEvery = every
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	log, err := newLogger(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	runner, err := workload.NewRunner(cfg, log)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	rep, err := runner.Run(ctx)
	if rep != nil {
		write := rep.WriteText
		if asJSON {
			write = rep.WriteJSON
		}
		if werr := write(stdout); werr != nil {
			fmt.Fprintf(stderr, "Error: %v\n", werr)
			return 1
		}
	}
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

func runScript(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	timeout := fs.Duration("timeout", -1, "Script time limit, 0 for none (overrides the configuration)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "Error: run takes exactly one script file\n")
		return 2
	}

	cfg, err := common.load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *timeout >= 0 {
		cfg.Script.Timeout = *timeout
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	log, err := newLogger(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	state, err := script.NewState(
		script.WithTimeout(cfg.Script.Timeout),
		script.WithOutput(stdout),
		script.WithLogger(log),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer state.Close()

	if err := state.DoFile(ctx, fs.Arg(0)); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// newLogger builds the CLI logger and sets the global level, which gates
// every logger in the process.
func newLogger(cfg config.Log, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)

	out := w
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
