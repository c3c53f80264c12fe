// Package synop is the public entry point for decoding FM-12 SYNOP
// surface weather reports. It ties together the tokenizer, grammar
// parser, builder and code tables from the sub-packages.
package synop

import (
	"synack/pkg/synop/ast"
	"synack/pkg/synop/parser"
	"synack/pkg/synop/tables"
)

// Decode parses one raw report using the embedded WMO code tables.
// On success the returned report carries any recoverable warnings; a
// structural problem returns a nil report and a *errors.Error.
func Decode(raw string) (*ast.Report, error) {
	return parser.New().Parse(raw)
}

// DecodeWithTables parses one raw report against a caller-supplied
// code-table registry, for callers that maintain regional table sets.
func DecodeWithTables(raw string, reg *tables.Registry) (*ast.Report, error) {
	return parser.New().WithTables(reg).Parse(raw)
}
