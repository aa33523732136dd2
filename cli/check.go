package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/granadev/grana/ledger"
	"github.com/granadev/grana/loader"
	"github.com/granadev/grana/parser"
	"github.com/granadev/grana/telemetry"
)

type CheckCmd struct {
	File  string `help:"Ledger input filename (use '-' for stdin)." arg:"" optional:"" default:"-"`
	Watch bool   `help:"Re-run checks when the file changes." short:"w"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if cmd.Watch {
		if cmd.File == "-" {
			return fmt.Errorf("cannot watch stdin")
		}
		return cmd.runWatch(ctx, globals)
	}

	passed, err := cmd.runOnce(ctx, globals)
	if err != nil {
		return err
	}
	if !passed {
		os.Exit(1)
	}

	return nil
}

// runOnce compiles the ledger and runs its validators. It returns false when
// the file has lexer, parser or validation failures; hard errors such as an
// unreadable file are returned as errors.
func (cmd *CheckCmd) runOnce(ctx *kong.Context, globals *Globals) (bool, error) {
	runCtx := context.Background()

	var collector telemetry.Collector
	var checkTimer telemetry.Timer
	var once sync.Once

	reportTelemetry := func() {
		once.Do(func() {
			if collector != nil {
				checkTimer.End()
				_, _ = fmt.Fprintln(ctx.Stderr)
				collector.Report(ctx.Stderr)
			}
		})
	}

	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		checkTimer = collector.Start(fmt.Sprintf("check %s", filepath.Base(cmd.File)))
		defer reportTelemetry()
	}

	src, err := loader.Load(cmd.File)
	if err != nil {
		return false, err
	}

	lexTimer := telemetry.StartTimer(runCtx, "lex")
	tokens, lexErrs := parser.Lex(src.Contents)
	lexTimer.End()

	parseTimer := telemetry.StartTimer(runCtx, "parse")
	ops, parseErrs := parser.Parse(src.Contents, tokens)
	parseTimer.End()

	if len(lexErrs) > 0 || len(parseErrs) > 0 {
		renderer := NewErrorRenderer(src.Contents)

		errs := make([]error, 0, len(lexErrs)+len(parseErrs))
		for _, e := range lexErrs {
			errs = append(errs, e)
		}
		for _, e := range parseErrs {
			errs = append(errs, e)
		}

		_, _ = fmt.Fprintln(ctx.Stderr, renderer.RenderAll(errs))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, fmt.Sprintf("%d syntax error(s) in %s", len(errs), src.Filename))

		reportTelemetry()
		return false, nil
	}

	buildTimer := telemetry.StartTimer(runCtx, "build")
	l := ledger.Build(ops)
	buildTimer.End()

	results := ledger.Validate(runCtx, l)

	for _, result := range results {
		_, _ = fmt.Fprintf(ctx.Stdout, "Running validator: %s...", result.Name)

		if result.OK() {
			_, _ = fmt.Fprintln(ctx.Stdout, " OK")
			continue
		}

		_, _ = fmt.Fprintln(ctx.Stdout, " ERROR")
		_, _ = fmt.Fprintln(ctx.Stderr)

		renderer := NewErrorRenderer(src.Contents)
		for i, trace := range result.Traces {
			_, _ = fmt.Fprintln(ctx.Stderr, renderer.RenderTrace(trace))
			if i < len(result.Traces)-1 {
				_, _ = fmt.Fprintln(ctx.Stderr)
			}
		}

		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, fmt.Sprintf("%d validation error(s) found", len(result.Traces)))

		reportTelemetry()
		return false, nil
	}

	printSuccess(ctx.Stdout, "Check passed")

	return true, nil
}

// runWatch reruns the checks whenever the watched file changes. A failing run
// keeps the watcher alive so edits can be verified as they are saved.
func (cmd *CheckCmd) runWatch(ctx *kong.Context, globals *Globals) error {
	absPath, err := filepath.Abs(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory rather than the file itself so atomic saves
	// (write to temp, rename over target) keep being observed.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	if _, err := cmd.runOnce(ctx, globals); err != nil {
		return err
	}
	printInfof(ctx.Stdout, "Watching %s for changes", pathStyle.Render(absPath))

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	// Debounce timer - editors often write files in multiple steps
	const debounceDelay = 100 * time.Millisecond

	rerun := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})

		case <-rerun:
			_, _ = fmt.Fprintln(ctx.Stdout)
			printInfof(ctx.Stdout, "Change detected, re-running checks")
			if _, err := cmd.runOnce(ctx, globals); err != nil {
				printError(ctx.Stderr, err.Error())
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(ctx.Stderr, fmt.Sprintf("watch error: %v", err))
		}
	}
}
