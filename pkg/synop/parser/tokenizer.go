package parser

import (
	"strings"

	synoperrors "synack/pkg/synop/errors"
)

// Token is one whitespace-delimited group as it appeared on the wire,
// with its 0-based position in the report.
type Token struct {
	Text  string
	Index int
}

// Tokenize splits a raw report into group tokens. Groups are separated
// by any run of whitespace; a trailing "=" terminator, attached or
// free-standing, is stripped. Empty input is an input error.
func Tokenize(raw string) ([]Token, *synoperrors.Error) {
	fields := strings.Fields(raw)

	toks := make([]Token, 0, len(fields))
	for _, f := range fields {
		if f == "=" {
			continue
		}
		f = strings.TrimSuffix(f, "=")
		if f == "" {
			continue
		}
		toks = append(toks, Token{Text: f, Index: len(toks)})
	}

	if len(toks) == 0 {
		return nil, &synoperrors.Error{
			Type:     synoperrors.ErrorTypeInput,
			Message:  "empty report",
			Position: synoperrors.Position{Index: -1},
		}
	}
	return toks, nil
}
