package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"synack/internal/ingest"
	"synack/pkg/cli"
	"synack/pkg/synop"
)

var parseFlags struct {
	file   string
	format string
	pretty bool
	strict bool
}

var parseCmd = &cobra.Command{
	Use:   "parse [report]",
	Short: "Decode a single SYNOP report",
	Long: `Decode a SYNOP report given as an argument or read from a file.

A file may hold several reports, each terminated by '=' or separated by
newlines; every report in it is decoded in order.

Examples:
  # Decode a report given inline
  synack parse "AAXX 01004 88889 12782 61506 10094 20047 30111 40197 53007 60001 81541 333 81656 86070"

  # Decode from a file as YAML
  synack parse --file report.synop --format yaml

  # Fail the exit status when the decode produced warnings
  synack parse --file report.synop --strict`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFlags.file, "file", "f", "", "read the report from a file instead of an argument")
	parseCmd.Flags().StringVar(&parseFlags.format, "format", "text", "output format (text, json, yaml, csv)")
	parseCmd.Flags().BoolVar(&parseFlags.pretty, "pretty", false, "indent JSON output")
	parseCmd.Flags().BoolVar(&parseFlags.strict, "strict", false, "exit non-zero when the decode produced warnings")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(parseFlags.format)
	if err != nil {
		return cli.NewCommandError("parse", err)
	}
	formatter := cli.NewFormatter(format, parseFlags.pretty)

	reports, err := parseInput(args)
	if err != nil {
		return cli.NewCommandError("parse", err)
	}

	for _, raw := range reports {
		report, err := synop.Decode(raw)
		if err != nil {
			return cli.NewCommandError("parse", err)
		}

		if err := formatter.FormatTo(cmd.OutOrStdout(), report.Render()); err != nil {
			return cli.NewCommandError("parse", err)
		}

		if report.Warnings.HasWarnings() {
			fmt.Fprint(cmd.ErrOrStderr(), report.Warnings.String())
			if parseFlags.strict {
				return &cli.WarningsError{Warnings: report.Warnings}
			}
		}
	}
	return nil
}

// parseInput resolves the report text from either the positional
// argument or the --file flag, exactly one of which must be given.
func parseInput(args []string) ([]string, error) {
	switch {
	case parseFlags.file != "" && len(args) > 0:
		return nil, fmt.Errorf("pass a report argument or --file, not both")
	case parseFlags.file != "":
		data, err := os.ReadFile(parseFlags.file)
		if err != nil {
			return nil, err
		}
		reports := ingest.SplitReports(string(data))
		if len(reports) == 0 {
			return nil, fmt.Errorf("no reports found in %s", parseFlags.file)
		}
		return reports, nil
	case len(args) > 0 && strings.TrimSpace(args[0]) != "":
		return []string{args[0]}, nil
	default:
		return nil, fmt.Errorf("no report given; pass it as an argument or use --file")
	}
}
