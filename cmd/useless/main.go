// Command useless runs programs in a language where the runtime is the
// adversary. With a file argument it executes the file; without one it drops
// into a REPL. A fixed -seed replays a run decision for decision.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/uselesslang/useless/internal/chaos"
	"github.com/uselesslang/useless/internal/config"
	"github.com/uselesslang/useless/internal/evaluator"
	"github.com/uselesslang/useless/internal/parser"
	"github.com/uselesslang/useless/internal/pipeline"
)

const (
	appName     = "useless"
	historyFile = ".useless_history"
	promptMain  = ">> "
)

func main() {
	os.Exit(run())
}

func run() int {
	seedFlag := flag.Int64("seed", 0, "RNG seed for a reproducible run")
	configPath := flag.String("config", "", "path to a yaml run configuration")
	calm := flag.Bool("calm", false, "disable all chaos for this run")
	quiet := flag.Bool("quiet", false, "suppress the banner")
	trace := flag.Bool("trace", false, "log scheduler and directive events")
	flag.Parse()

	cfg := &config.RunConfig{}
	if *configPath != "" {
		loaded, err := config.LoadRunConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
			return config.ExitUsage
		}
		cfg = loaded
	}
	seedOverride := applyFlagOverrides(cfg, flag.CommandLine, seedFlag, calm, quiet)

	seed := chaos.EntropySeed()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	if seedOverride != nil {
		seed = *seedOverride
	}
	policy := chaos.NewPolicy(seed)
	if cfg.Calm {
		policy.DisableAll()
	}

	level := slog.LevelWarn
	if *trace {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	presenter := evaluator.NewConsolePresenter(os.Stdout, os.Stderr)

	mode, path, err := resolveCommand(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return config.ExitUsage
	}
	if mode == modeREPL {
		return runREPL(policy, presenter, logger, cfg.Quiet)
	}
	return runFile(path, policy, presenter, logger)
}

// applyFlagOverrides copies every explicitly set flag over the config file
// values, so `-calm=false` beats a `calm: true` in the yaml. Returns the seed
// flag when it was given, nil otherwise.
func applyFlagOverrides(cfg *config.RunConfig, fs *flag.FlagSet, seedFlag *int64, calm, quiet *bool) *int64 {
	var seed *int64
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			seed = seedFlag
		case "calm":
			cfg.Calm = *calm
		case "quiet":
			cfg.Quiet = *quiet
		}
	})
	return seed
}

const (
	modeREPL = "repl"
	modeRun  = "run"
)

// resolveCommand maps the positional arguments onto a mode: no arguments or
// `repl` start the REPL, `run <file>` and a bare file path run a program.
func resolveCommand(args []string) (mode, path string, err error) {
	if len(args) == 0 {
		return modeREPL, "", nil
	}
	switch args[0] {
	case modeREPL:
		return modeREPL, "", nil
	case modeRun:
		if len(args) < 2 {
			return "", "", errors.New("run needs a source file argument")
		}
		return modeRun, args[1], nil
	default:
		return modeRun, args[0], nil
	}
}

func runFile(path string, policy *chaos.Policy, presenter evaluator.Presenter, logger *slog.Logger) int {
	if !isSourceFile(path) {
		fmt.Fprintf(os.Stderr, "%s: %s is not a %s source file\n", appName, path, config.SourceFileExt)
		return config.ExitUsage
	}
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, path, err)
		return config.ExitNoInput
	}

	ctx := pipeline.RunSource(&pipeline.PipelineContext{
		File:      path,
		Source:    string(src),
		Policy:    policy,
		Presenter: presenter,
		Logger:    logger,
	})
	if ctx.ParseErr != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, ctx.ParseErr)
		return config.ExitParse
	}
	return evaluator.ExitCodeFor(ctx.RuntimeErr)
}

func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func runREPL(policy *chaos.Policy, presenter evaluator.Presenter, logger *slog.Logger, quiet bool) int {
	if !quiet {
		fmt.Printf("%s repl. seed %d. nothing here works, on purpose.\n", appName, policy.Seed())
		fmt.Println("type :quit to leave, which is the only reliable operation.")
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	eval := evaluator.New(policy, presenter, logger)
	env := evaluator.NewEnvironment()

	code := config.ExitOK
	for {
		line, err := ln.Prompt(promptMain)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			fmt.Println()
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" || trimmed == ":exit" {
			break
		}
		if trimmed == ":seed" {
			fmt.Println(policy.Seed())
			continue
		}
		ln.AppendHistory(line)

		program, err := parser.ParseSource(line)
		if err != nil {
			presenter.PresentError(err.Error())
			continue
		}
		result := eval.InterpretLine(program.Statements, env)
		if rerr, ok := result.(*evaluator.Error); ok {
			presenter.PresentError(rerr.Inspect())
			if rerr.IsFatal() {
				code = config.ExitFatal
				break
			}
			continue
		}
		if result != nil && result.Type() != evaluator.NULL_OBJ {
			presenter.Present(result)
		}
	}

	eval.Scheduler().Drain()

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return code
}
