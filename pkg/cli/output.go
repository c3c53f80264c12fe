package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"synack/pkg/synop/ast"
)

// OutputFormat names a rendering of a decoded report.
type OutputFormat string

const (
	// FormatText is an indented key/value listing (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
	// FormatYAML is YAML output.
	FormatYAML OutputFormat = "yaml"
	// FormatCSV flattens every decoded field into one row.
	FormatCSV OutputFormat = "csv"
)

// ParseFormat validates a format name from a command-line flag.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(s)) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unknown output format %q (text, json, yaml, csv)", s)
}

// Formatter renders a decoded report tree.
type Formatter interface {
	FormatTo(w io.Writer, report *ast.Object) error
}

// NewFormatter creates a formatter for the given format. Pretty only
// affects JSON.
func NewFormatter(format OutputFormat, pretty bool) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: pretty}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatCSV:
		return &CSVFormatter{}
	default:
		return &TextFormatter{}
	}
}

// JSONFormatter renders the report tree as JSON, preserving field order.
type JSONFormatter struct {
	Indent bool
}

// FormatTo writes the report as JSON.
func (f *JSONFormatter) FormatTo(w io.Writer, report *ast.Object) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(report)
}

// YAMLFormatter renders the report tree as YAML, preserving field order.
type YAMLFormatter struct{}

// FormatTo writes the report as YAML.
func (f *YAMLFormatter) FormatTo(w io.Writer, report *ast.Object) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return err
	}
	return encoder.Close()
}

// TextFormatter renders the report as an indented key/value listing,
// one line per field, with section and group headings.
type TextFormatter struct{}

// FormatTo writes the report as text.
func (f *TextFormatter) FormatTo(w io.Writer, report *ast.Object) error {
	for _, key := range report.Keys() {
		value, _ := report.Get(key)
		groups, ok := value.([]*ast.Object)
		if !ok {
			if _, err := fmt.Fprintf(w, "%s: %s\n", key, formatScalar(value)); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s:\n", key); err != nil {
			return err
		}
		for _, group := range groups {
			if err := writeTextGroup(w, group); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeTextGroup(w io.Writer, group *ast.Object) error {
	for i, key := range group.Keys() {
		value, _ := group.Get(key)
		indent := "    "
		if i == 0 {
			indent = "  - "
		}
		if _, err := fmt.Fprintf(w, "%s%s: %s\n", indent, key, formatScalar(value)); err != nil {
			return err
		}
	}
	return nil
}

func formatScalar(value interface{}) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%v", value)
}

// CSVFormatter flattens the report: one row per decoded field, with the
// section and group kind repeated so rows stay self-describing.
type CSVFormatter struct{}

var csvHeader = []string{"section", "group", "field", "value"}

// FormatTo writes the report as CSV.
func (f *CSVFormatter) FormatTo(w io.Writer, report *ast.Object) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, key := range report.Keys() {
		value, _ := report.Get(key)
		groups, ok := value.([]*ast.Object)
		if !ok {
			if err := cw.Write([]string{"", "header", key, csvScalar(value)}); err != nil {
				return err
			}
			continue
		}
		for _, group := range groups {
			kind := ""
			if k, ok := group.Get("group"); ok {
				kind = fmt.Sprintf("%v", k)
			}
			for _, field := range group.Keys() {
				if field == "group" {
					continue
				}
				v, _ := group.Get(field)
				if err := cw.Write([]string{key, kind, field, csvScalar(v)}); err != nil {
					return err
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvScalar(value interface{}) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%v", value)
}
