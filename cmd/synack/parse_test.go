package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"synack/pkg/cli"
)

const testReport = "AAXX 01004 88889 12782 61506 10094 20047 30111 40197 53007 60001 81541 333 81656 86070"

func resetParseFlags() {
	parseFlags.file = ""
	parseFlags.format = "text"
	parseFlags.pretty = false
	parseFlags.strict = false
}

func newCaptureCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out, &errOut
}

func TestParseInline(t *testing.T) {
	resetParseFlags()
	parseFlags.format = "json"
	cmd, out, _ := newCaptureCommand()

	if err := runParse(cmd, []string{testReport}); err != nil {
		t.Fatalf("runParse: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, `"station_id":"88889"`) {
		t.Errorf("output missing station id:\n%s", got)
	}
	if !strings.Contains(got, `"report_type":"land_station"`) {
		t.Errorf("output missing report type:\n%s", got)
	}
}

func TestParseFromFile(t *testing.T) {
	resetParseFlags()
	path := filepath.Join(t.TempDir(), "reports.synop")
	data := "# two reports\n" + testReport + "=\nAAXX 01004 88889 12782 61506=\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	parseFlags.file = path
	parseFlags.format = "json"
	cmd, out, _ := newCaptureCommand()

	if err := runParse(cmd, nil); err != nil {
		t.Fatalf("runParse: %v", err)
	}
	if got := strings.Count(out.String(), `"station_id":"88889"`); got != 2 {
		t.Errorf("decoded %d reports, want 2", got)
	}
}

func TestParseStrictFailsOnWarnings(t *testing.T) {
	resetParseFlags()
	parseFlags.strict = true
	cmd, _, errOut := newCaptureCommand()

	// tendency code 9 is not a known table entry, so the decode warns
	err := runParse(cmd, []string{"AAXX 01004 88889 12782 61506 59007"})
	var warnErr *cli.WarningsError
	if !errors.As(err, &warnErr) {
		t.Fatalf("runParse error = %v, want WarningsError", err)
	}
	if !strings.Contains(errOut.String(), "table-lookup") {
		t.Errorf("warnings not printed to stderr:\n%s", errOut.String())
	}
}

func TestParseFatalError(t *testing.T) {
	resetParseFlags()
	cmd, _, _ := newCaptureCommand()

	err := runParse(cmd, []string{"AAXX"})
	var cmdErr *cli.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("runParse error = %v, want CommandError", err)
	}
}

func TestParseInputResolution(t *testing.T) {
	resetParseFlags()
	if _, err := parseInput(nil); err == nil {
		t.Error("expected error when no report is given")
	}

	parseFlags.file = "somewhere.synop"
	if _, err := parseInput([]string{testReport}); err == nil {
		t.Error("expected error when both argument and --file are given")
	}
}
