package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"synack/internal/archive"
	"synack/internal/config"
	"synack/internal/ingest"
	"synack/pkg/cli"
	"synack/pkg/synop"
)

var batchFlags struct {
	pattern         string
	recursive       bool
	continueOnError bool
	format          string
	pretty          bool
	archivePath     string
	watch           bool
	debounce        time.Duration
}

var batchCmd = &cobra.Command{
	Use:   "batch <path>...",
	Short: "Decode SYNOP reports from files or directories",
	Long: `Decode every report found in the given files or directories.

Each file may hold several reports, terminated by '=' or separated by
newlines; lines starting with '#' are skipped. Directories are scanned
for files matching --pattern.

Examples:
  # Decode every .synop file in a directory
  synack batch ./reports

  # Recurse and keep going past bad reports
  synack batch ./reports --recursive --continue-on-error

  # Archive decoded reports to SQLite while printing them
  synack batch ./reports --archive ./archive.db

  # Watch a directory and decode files as they arrive
  synack batch ./incoming --watch`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchFlags.pattern, "pattern", "*.synop", "glob matched against file names when scanning directories")
	batchCmd.Flags().BoolVarP(&batchFlags.recursive, "recursive", "r", false, "scan directories recursively")
	batchCmd.Flags().BoolVar(&batchFlags.continueOnError, "continue-on-error", false, "report decode failures and keep going")
	batchCmd.Flags().StringVar(&batchFlags.format, "format", "json", "output format (text, json, yaml, csv)")
	batchCmd.Flags().BoolVar(&batchFlags.pretty, "pretty", false, "indent JSON output")
	batchCmd.Flags().StringVar(&batchFlags.archivePath, "archive", "", "archive decoded reports to the SQLite database at this path")
	batchCmd.Flags().BoolVar(&batchFlags.watch, "watch", false, "watch a single directory and decode files as they appear")
	batchCmd.Flags().DurationVar(&batchFlags.debounce, "debounce", 500*time.Millisecond, "settle time before a watched file is decoded (default from SYNACK_WATCH_DEBOUNCE)")
}

// batchRun carries the pieces shared between the one-shot and watch
// modes of the batch command.
type batchRun struct {
	formatter cli.Formatter
	store     *archive.Store
	logger    *slog.Logger
	cmd       *cobra.Command
}

func runBatch(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(batchFlags.format)
	if err != nil {
		return cli.NewCommandError("batch", err)
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	run := &batchRun{
		formatter: cli.NewFormatter(format, batchFlags.pretty),
		logger:    slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})),
		cmd:       cmd,
	}

	if batchFlags.archivePath != "" {
		store, err := archive.Open(batchFlags.archivePath, run.logger)
		if err != nil {
			return cli.NewCommandError("batch", err)
		}
		defer store.Close()
		run.store = store
	}

	if batchFlags.watch {
		return run.watchDir(args)
	}
	return run.decodeAll(args)
}

// decodeAll is the one-shot mode: collect the files, then decode them
// in order with a progress line on stderr.
func (b *batchRun) decodeAll(args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return cli.NewCommandError("batch", err)
	}
	if len(files) == 0 {
		return cli.NewCommandError("batch", fmt.Errorf("no files matched %q", batchFlags.pattern))
	}

	var reports []string
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return cli.NewCommandError("batch", err)
		}
		reports = append(reports, ingest.SplitReports(string(data))...)
	}

	progress := cli.NewProgressReporter(b.cmd.ErrOrStderr())
	progress.Start(int64(len(reports)))

	var failed int
	for i, raw := range reports {
		if err := b.decodeOne(b.cmd.Context(), raw); err != nil {
			if !batchFlags.continueOnError {
				progress.Finish()
				return cli.NewCommandError("batch", err)
			}
			failed++
			progress.Error(err)
		}
		progress.Update(int64(i + 1))
	}
	progress.Finish()

	if failed > 0 {
		fmt.Fprintf(b.cmd.ErrOrStderr(), "%d of %d reports failed to decode\n", failed, len(reports))
	}
	return nil
}

// watchDir is the continuous mode: decode files as they appear in the
// watched directory until interrupted.
func (b *batchRun) watchDir(args []string) error {
	if len(args) != 1 {
		return cli.NewCommandError("batch", fmt.Errorf("--watch takes exactly one directory"))
	}
	info, err := os.Stat(args[0])
	if err != nil {
		return cli.NewCommandError("batch", err)
	}
	if !info.IsDir() {
		return cli.NewCommandError("batch", fmt.Errorf("%s is not a directory", args[0]))
	}

	debounce, err := watchDebounce(b.cmd)
	if err != nil {
		return cli.NewCommandError("batch", err)
	}
	watcher, err := ingest.NewWatcher(debounce, b.logger)
	if err != nil {
		return cli.NewCommandError("batch", err)
	}
	watcher.OnEvent = func() { b.logger.Debug("report file event accepted") }

	ctx := cli.SetupSignalHandler()
	err = watcher.Watch(ctx, args[0], func(path string) {
		data, err := os.ReadFile(path)
		if err != nil {
			b.logger.Error("reading watched file", "path", path, "error", err)
			return
		}
		for _, raw := range ingest.SplitReports(string(data)) {
			if err := b.decodeOne(ctx, raw); err != nil {
				b.logger.Error("decoding watched report", "path", path, "error", err)
			}
		}
	})
	if err != nil && ctx.Err() == nil {
		return cli.NewCommandError("batch", err)
	}
	return nil
}

func (b *batchRun) decodeOne(ctx context.Context, raw string) error {
	report, err := synop.Decode(raw)
	if err != nil {
		return err
	}
	if err := b.formatter.FormatTo(b.cmd.OutOrStdout(), report.Render()); err != nil {
		return err
	}
	if report.Warnings.HasWarnings() {
		b.logger.Warn("decode produced warnings", "count", report.Warnings.Count())
	}
	if b.store != nil {
		if _, err := b.store.Save(ctx, report, raw); err != nil {
			return err
		}
	}
	return nil
}

// watchDebounce resolves the watch settle interval: an explicit
// --debounce flag wins, otherwise SYNACK_WATCH_DEBOUNCE applies.
func watchDebounce(cmd *cobra.Command) (time.Duration, error) {
	if cmd.Flags().Changed("debounce") {
		return batchFlags.debounce, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return 0, err
	}
	return cfg.WatchDebounce, nil
}

// collectFiles expands the path arguments into the list of files to
// decode. Explicitly named files bypass the pattern filter.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && !batchFlags.recursive {
					return fs.SkipDir
				}
				return nil
			}
			matched, err := filepath.Match(batchFlags.pattern, d.Name())
			if err != nil {
				return err
			}
			if matched {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
