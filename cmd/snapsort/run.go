package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"snapsort/internal/batch"
	"snapsort/internal/config"
	"snapsort/internal/logging"
	"snapsort/internal/organizer"
	"snapsort/internal/outcome"
	"snapsort/internal/preflight"
	"snapsort/internal/progress"
	"snapsort/internal/scan"
)

const lockFileName = ".snapsort.lock"

func runSort(cmd *cobra.Command, opts *sortOptions, targetArg, sourceArg string) error {
	started := time.Now()
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, closer, err := logging.NewFromConfig(cfg)
	if err != nil {
		return outcome.Wrap(outcome.ErrConfiguration, "startup", "open log", cfg.Logging.File, err)
	}
	defer closer.Close()

	ctx := logging.WithRunID(cmd.Context(), uuid.NewString())
	runLogger := logging.WithContext(ctx, logger)

	target, source, err := resolveRoots(targetArg, sourceArg)
	if err != nil {
		return aborted(runLogger, err)
	}
	runLogger.Info("sort started",
		logging.String("source", source),
		logging.String("target", target),
		logging.Int("workers", cfg.Sort.Workers),
		logging.String("reader", cfg.Metadata.Reader),
		logging.String("dedupe", cfg.Sort.Dedupe),
		logging.Bool("dry_run", cfg.Sort.DryRun),
	)

	checks := preflight.RunAll(cfg, source, target)
	if err := preflight.Err(checks); err != nil {
		return aborted(runLogger, err)
	}
	for _, w := range preflight.Warnings(checks) {
		fmt.Fprintf(errOut, "warning: %s: %s\n", w.Name, w.Detail)
		runLogger.Warn("preflight warning", logging.String("check", w.Name), logging.String("detail", w.Detail))
	}

	if !cfg.Sort.DryRun {
		release, err := lockTarget(target)
		if err != nil {
			return aborted(runLogger, err)
		}
		defer release()
	}

	reader, err := organizer.NewReader(cfg, logger)
	if err != nil {
		return aborted(runLogger, err)
	}
	// The organizer adds run_id from the context it is called with.
	org := organizer.New(cfg, target, reader, logger)
	scanner := &scan.Scanner{
		Root:         source,
		Extensions:   cfg.Sort.Extensions,
		HiddenPrefix: cfg.Sort.HiddenPrefix,
		Exclude:      []string{target},
		Logger:       logging.NewComponentLogger(runLogger, "scan"),
	}
	pool := batch.NewPool(cfg.Sort.Workers, org.Process, logging.NewComponentLogger(runLogger, "batch"))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var reporter *progress.Reporter
	if cfg.Progress.Enabled && isTerminal(out) {
		reporter = progress.NewReporter(cfg.ProgressInterval(), pool, progress.NewBar(out, cfg.Progress.Width))
		reporter.Start()
	}

	summary := pool.Run(ctx, scanner.Files(ctx))
	if reporter != nil {
		reporter.Stop()
	}
	elapsed := time.Since(started)

	fmt.Fprintf(out, "Moved %d files in %.2fs\n", summary.Discovered, elapsed.Seconds())
	if opts.summary {
		fmt.Fprintln(out, renderSummary(summary, scanner.Unreadable()))
	}

	attrs := []logging.Attr{
		logging.Int64("discovered", summary.Discovered),
		logging.Int64("processed", summary.Processed),
		logging.Int64("unreadable_dirs", scanner.Unreadable()),
		logging.Duration("elapsed", elapsed),
	}
	for _, status := range outcome.Statuses {
		if n := summary.Count(status); n > 0 {
			attrs = append(attrs, logging.Int64(string(status), n))
		}
	}
	runLogger.Info("sort finished", logging.Args(attrs...)...)
	return nil
}

// aborted records a fatal startup error in the run log and returns it.
func aborted(logger *slog.Logger, err error) error {
	logger.Error("sort aborted", logging.Error(err))
	return err
}

// loadConfig reads the config file and applies flags the user set.
func loadConfig(cmd *cobra.Command, opts *sortOptions) (*config.Config, error) {
	cfg, _, _, err := config.Load(strings.TrimSpace(opts.configPath))
	if err != nil {
		return nil, outcome.Wrap(outcome.ErrConfiguration, "startup", "load config", "", err)
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Sort.Workers = opts.workers
	}
	if flags.Changed("dry-run") {
		cfg.Sort.DryRun = opts.dryRun
	}
	if flags.Changed("dedupe") {
		cfg.Sort.Dedupe = opts.dedupe
	}
	if flags.Changed("reader") {
		cfg.Metadata.Reader = opts.reader
	}
	if flags.Changed("exiftool") {
		cfg.Metadata.Exiftool = opts.exiftool
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = opts.logFile
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = opts.logFormat
	}
	if opts.noProgress {
		cfg.Progress.Enabled = false
	}

	if err := cfg.Normalize(); err != nil {
		return nil, outcome.Wrap(outcome.ErrConfiguration, "startup", "apply flags", "", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, outcome.Wrap(outcome.ErrConfiguration, "startup", "apply flags", "", err)
	}
	return cfg, nil
}

func resolveRoots(targetArg, sourceArg string) (string, string, error) {
	target, err := config.ExpandPath(strings.TrimSpace(targetArg))
	if err != nil || target == "" {
		return "", "", outcome.Wrap(outcome.ErrConfiguration, "startup", "resolve target", targetArg, err)
	}
	source, err := config.ExpandPath(strings.TrimSpace(sourceArg))
	if err != nil || source == "" {
		return "", "", outcome.Wrap(outcome.ErrConfiguration, "startup", "resolve source", sourceArg, err)
	}
	if target == source {
		return "", "", outcome.Wrap(outcome.ErrConfiguration, "startup", "resolve roots", "target and source must be different directories", nil)
	}
	return target, source, nil
}

// lockTarget creates target and holds an exclusive lock on it for the run.
func lockTarget(target string) (func(), error) {
	if err := os.MkdirAll(target, 0o755); err != nil {
		return nil, outcome.Wrap(outcome.ErrConfiguration, "startup", "create target", target, err)
	}
	lockPath := filepath.Join(target, lockFileName)
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, outcome.Wrap(outcome.ErrConfiguration, "startup", "lock target", lockPath, err)
	}
	if !ok {
		return nil, outcome.Wrap(outcome.ErrConfiguration, "startup", "lock target", "another snapsort run is sorting into "+target, errors.New("target locked"))
	}
	return func() {
		_ = lock.Unlock()
		_ = os.Remove(lockPath)
	}, nil
}
