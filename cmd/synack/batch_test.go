package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func resetBatchFlags() {
	batchFlags.pattern = "*.synop"
	batchFlags.recursive = false
	batchFlags.continueOnError = false
	batchFlags.format = "json"
	batchFlags.pretty = false
	batchFlags.archivePath = ""
	batchFlags.watch = false
	batchFlags.debounce = 500 * time.Millisecond
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestBatchDecodesDirectory(t *testing.T) {
	resetBatchFlags()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.synop"), testReport+"=\n"+testReport+"=\n")
	writeFile(t, filepath.Join(dir, "ignored.log"), "not a report\n")

	cmd, out, _ := newCaptureCommand()
	cmd.SetContext(context.Background())

	if err := runBatch(cmd, []string{dir}); err != nil {
		t.Fatalf("runBatch: %v", err)
	}
	if got := strings.Count(out.String(), `"station_id":"88889"`); got != 2 {
		t.Errorf("decoded %d reports, want 2", got)
	}
}

func TestBatchContinueOnError(t *testing.T) {
	resetBatchFlags()
	batchFlags.continueOnError = true
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "mixed.synop"),
		testReport+"=\nAAXX 01004 88889 12782 61506 20047 10094=\n")

	cmd, out, errOut := newCaptureCommand()
	cmd.SetContext(context.Background())

	if err := runBatch(cmd, []string{dir}); err != nil {
		t.Fatalf("runBatch: %v", err)
	}
	if got := strings.Count(out.String(), `"station_id":"88889"`); got != 1 {
		t.Errorf("decoded %d reports, want 1", got)
	}
	if !strings.Contains(errOut.String(), "1 of 2 reports failed") {
		t.Errorf("missing failure summary:\n%s", errOut.String())
	}
}

func TestBatchAbortsOnError(t *testing.T) {
	resetBatchFlags()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.synop"), "AAXX 01004 88889 12782 61506 20047 10094=\n")

	cmd, _, _ := newCaptureCommand()
	cmd.SetContext(context.Background())

	if err := runBatch(cmd, []string{dir}); err == nil {
		t.Fatal("expected error for out-of-order groups")
	}
}

func TestBatchArchives(t *testing.T) {
	resetBatchFlags()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.synop"), testReport+"=\n")
	batchFlags.archivePath = filepath.Join(dir, "archive.db")

	cmd, _, _ := newCaptureCommand()
	cmd.SetContext(context.Background())

	if err := runBatch(cmd, []string{dir}); err != nil {
		t.Fatalf("runBatch: %v", err)
	}
	if _, err := os.Stat(batchFlags.archivePath); err != nil {
		t.Errorf("archive database not created: %v", err)
	}
}

func TestWatchDebounceResolution(t *testing.T) {
	resetBatchFlags()
	t.Setenv("SYNACK_WATCH_DEBOUNCE", "2s")

	// No flag set: the environment setting applies.
	cmd, _, _ := newCaptureCommand()
	d, err := watchDebounce(cmd)
	if err != nil {
		t.Fatalf("watchDebounce: %v", err)
	}
	if d != 2*time.Second {
		t.Errorf("debounce = %v, want 2s from environment", d)
	}

	// An explicit flag wins over the environment.
	if err := batchCmd.Flags().Set("debounce", "250ms"); err != nil {
		t.Fatal(err)
	}
	d, err = watchDebounce(batchCmd)
	if err != nil {
		t.Fatalf("watchDebounce: %v", err)
	}
	if d != 250*time.Millisecond {
		t.Errorf("debounce = %v, want 250ms from flag", d)
	}
}

func TestCollectFilesRecursive(t *testing.T) {
	resetBatchFlags()
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "top.synop"), testReport)
	writeFile(t, filepath.Join(sub, "deep.synop"), testReport)

	files, err := collectFiles([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Errorf("non-recursive found %d files, want 1", len(files))
	}

	batchFlags.recursive = true
	files, err = collectFiles([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Errorf("recursive found %d files, want 2", len(files))
	}
}

func TestCollectFilesExplicitFileBypassesPattern(t *testing.T) {
	resetBatchFlags()
	path := filepath.Join(t.TempDir(), "report.txt")
	writeFile(t, path, testReport)

	files, err := collectFiles([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != path {
		t.Errorf("collectFiles = %v, want [%s]", files, path)
	}
}
