package parser

import (
	"fmt"
	"strings"

	"synack/pkg/synop/ast"
	synoperrors "synack/pkg/synop/errors"
	"synack/pkg/synop/tables"
)

// Parser decodes raw FM-12 SYNOP reports into AST reports. A Parser is
// stateless between calls and safe for concurrent use once configured.
type Parser struct {
	tables *tables.Registry
}

// New creates a parser backed by the embedded code tables.
func New() *Parser {
	return &Parser{tables: tables.Default()}
}

// WithTables replaces the code-table registry.
func (p *Parser) WithTables(reg *tables.Registry) *Parser {
	p.tables = reg
	return p
}

// Parse decodes one raw report. On success it returns the report with
// any recoverable warnings attached; a structural problem aborts the
// decode and returns a nil report with a single fatal error.
func (p *Parser) Parse(raw string) (*ast.Report, error) {
	toks, terr := Tokenize(raw)
	if terr != nil {
		return nil, terr
	}
	if len(toks) < 3 {
		return nil, &synoperrors.Error{
			Type:       synoperrors.ErrorTypeInput,
			Message:    fmt.Sprintf("report too short: %d group(s), need report type, date and station", len(toks)),
			Position:   synoperrors.Position{Index: len(toks) - 1},
			Suggestion: "a report starts with the MiMiMjMj, YYGGiw and IIiii groups",
		}
	}

	b := newBuilder(p.tables)
	ctx := &Context{Section: ast.Section1, WindUnit: ast.Null()}

	if err := b.buildHeader(toks[0], toks[1], toks[2], ctx); err != nil {
		return nil, err
	}
	i := 3

	// A NIL body means the station reported nothing this hour.
	if i < len(toks) && toks[i].Text == "NIL" {
		return b.report, nil
	}

	// Positional groups: iRixhVV then Nddff, unless a section marker or
	// the end of the report cuts the mandatory section short. Only the
	// bare 3-character markers count here: a 5-character token in a
	// positional slot is always the positional group (a wind group may
	// legitimately start with 222).
	if i < len(toks) && !exactMarker(toks[i].Text) {
		if !allPlaceholder(toks[i].Text) {
			if err := b.buildMisc(toks[i]); err != nil {
				return nil, err
			}
		}
		i++
	}
	if i < len(toks) && !exactMarker(toks[i].Text) {
		if !allPlaceholder(toks[i].Text) {
			var next *Token
			if i+1 < len(toks) {
				next = &toks[i+1]
			}
			consumed, err := b.buildWind(toks[i], next, ctx)
			if err != nil {
				return nil, err
			}
			if consumed {
				i++
			}
		}
		i++
	}

	// Enumerated section 1 groups, ascending by indicator digit.
	lastIndicator := 0
	for i < len(toks) {
		tok := toks[i]
		if sectionFor(tok.Text) != "" {
			break
		}
		if allPlaceholder(tok.Text) {
			i++
			continue
		}
		d := tok.Text[0]
		if d < '1' || d > '9' {
			return nil, &synoperrors.Error{
				Type:       synoperrors.ErrorTypeGrammar,
				Message:    fmt.Sprintf("unrecognized group indicator %q in mandatory section", string(d)),
				Position:   b.pos(tok, ast.Section1),
				Raw:        tok.Text,
				Suggestion: "mandatory groups carry indicator digits 1 through 9",
			}
		}
		indicator := int(d - '0')
		if indicator <= lastIndicator {
			return nil, &synoperrors.Error{
				Type:     synoperrors.ErrorTypeGrammar,
				Message:  fmt.Sprintf("group indicator %d out of order after %d", indicator, lastIndicator),
				Position: b.pos(tok, ast.Section1),
				Raw:      tok.Text,
			}
		}
		lastIndicator = indicator

		var err *synoperrors.Error
		switch d {
		case '1':
			err = b.buildTemperature(ast.GroupAirTemperature, ast.Section1, tok)
		case '2':
			err = b.buildTemperature(ast.GroupDewPoint, ast.Section1, tok)
		case '3':
			err = b.buildPressure(ast.GroupStationPressure, tok)
		case '4':
			err = b.buildPressure(ast.GroupSeaLevelPressure, tok)
		case '5':
			err = b.buildTendency(tok)
		case '6':
			err = b.buildPrecipitation(ast.Section1, tok)
		case '7':
			err = b.buildWeather(tok)
		case '8':
			err = b.buildCloud(tok)
		case '9':
			err = b.buildObservationTime(tok)
		}
		if err != nil {
			return nil, err
		}
		i++
	}

	// Optional sections, in whatever order they arrive.
	for i < len(toks) {
		marker := toks[i]
		section := sectionFor(marker.Text)
		if section == "" {
			// Unreachable: the loops above only stop on markers.
			i++
			continue
		}
		if section == ast.Section2 {
			if err := b.buildShipMovement(marker); err != nil {
				return nil, err
			}
		}
		i++

		for i < len(toks) && sectionFor(toks[i].Text) == "" {
			tok := toks[i]
			i++
			if allPlaceholder(tok.Text) {
				continue
			}
			if section == ast.Section3 {
				if err := b.buildSection3Group(tok); err != nil {
					return nil, err
				}
				continue
			}
			b.report.Warnings.AddWarning(synoperrors.WarningTypeUnrecognizedGroup,
				fmt.Sprintf("skipping group %q: no sub-grammar for %s", tok.Text, section),
				b.pos(tok, section))
		}
	}

	return b.report, nil
}

// buildSection3Group dispatches one section 3 group by its indicator
// digit. Groups with no known sub-grammar are skipped with a warning.
func (b *builder) buildSection3Group(tok Token) *synoperrors.Error {
	switch tok.Text[0] {
	case '1':
		return b.buildTemperature(ast.GroupMaxTemperature, ast.Section3, tok)
	case '2':
		return b.buildTemperature(ast.GroupMinTemperature, ast.Section3, tok)
	case '3':
		return b.buildGroundState(tok)
	case '4':
		return b.buildSnowCover(tok)
	case '5':
		return b.buildEvaporation(tok)
	case '6':
		return b.buildPrecipitation(ast.Section3, tok)
	case '7':
		return b.buildPrecipitation24(tok)
	case '8':
		return b.buildCloudLayer(tok)
	default:
		b.report.Warnings.AddWarning(synoperrors.WarningTypeUnrecognizedGroup,
			fmt.Sprintf("skipping group %q: no sub-grammar for %s", tok.Text, ast.Section3),
			b.pos(tok, ast.Section3))
		return nil
	}
}

// sectionFor reports which optional section a token opens, or "" when
// the token is an ordinary group. The 222 marker carries the ship
// movement digits as a 5-character token; a dew-point group does not
// collide with it in practice because stations transmit sign digits 0
// and 1.
func sectionFor(text string) string {
	switch text {
	case "222":
		return ast.Section2
	case "333":
		return ast.Section3
	case "444":
		return ast.Section4
	case "555":
		return ast.Section5
	}
	if len(text) == 5 && strings.HasPrefix(text, "222") {
		return ast.Section2
	}
	return ""
}

// exactMarker matches only the bare section markers, used in positional
// slots where a 5-character 222Dsvs token would be ambiguous.
func exactMarker(text string) bool {
	switch text {
	case "222", "333", "444", "555":
		return true
	}
	return false
}

// allPlaceholder reports whether every character of a token is the
// placeholder slash. Such groups carry no data at all and are dropped
// without comment.
func allPlaceholder(text string) bool {
	for _, r := range text {
		if r != ast.Placeholder {
			return false
		}
	}
	return len(text) > 0
}
