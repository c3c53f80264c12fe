package parser

import (
	"fmt"

	"synack/pkg/synop/ast"
	synoperrors "synack/pkg/synop/errors"
	"synack/pkg/synop/tables"
)

// builder turns validated group tokens into AST nodes and attaches them
// to the report. Shape problems surface as fatal errors; code-table
// misses become warnings on the report and the field decodes to null.
type builder struct {
	tables *tables.Registry
	report *ast.Report
}

func newBuilder(reg *tables.Registry) *builder {
	return &builder{tables: reg, report: ast.NewReport()}
}

func (b *builder) pos(tok Token, section string) synoperrors.Position {
	return synoperrors.Position{Index: tok.Index, Section: section}
}

// lookup resolves a single-field code against a table. A placeholder
// code is missing data and resolves to null silently; a genuinely
// unknown code also resolves to null but leaves a table-lookup warning.
// Both the raw code and the resolved label are returned as values.
func (b *builder) lookup(table, code string, pos synoperrors.Position) (codeV, label ast.Value) {
	entry, codeV, ok := b.lookupEntry(table, code, pos)
	if !ok {
		return codeV, ast.Null()
	}
	return codeV, ast.String(entry.Label)
}

func (b *builder) lookupEntry(table, code string, pos synoperrors.Position) (tables.Entry, ast.Value, bool) {
	if ast.IsMissing(code, ast.BaseString) {
		return tables.Entry{}, ast.Null(), false
	}
	entry, ok := b.tables.Lookup(table, code)
	if !ok {
		b.report.Warnings.AddWarning(synoperrors.WarningTypeTable,
			fmt.Sprintf("code %q has no entry in table %s", code, table), pos)
		return tables.Entry{}, ast.String(code), false
	}
	return entry, ast.String(code), true
}

func (b *builder) decodeError(tok Token, section, group, message string) *synoperrors.Error {
	return &synoperrors.Error{
		Type:     synoperrors.ErrorTypeDecode,
		Message:  message,
		Position: b.pos(tok, section),
		Group:    group,
		Raw:      tok.Text,
	}
}

func (b *builder) wrapDecode(tok Token, section string, kind ast.GroupKind, err error) *synoperrors.Error {
	return b.decodeError(tok, section, string(kind), err.Error())
}

// requireLen checks the fixed 5-character group shape.
func (b *builder) requireLen(tok Token, section string, kind ast.GroupKind) *synoperrors.Error {
	if len(tok.Text) != 5 {
		return b.decodeError(tok, section, string(kind),
			fmt.Sprintf("group must be 5 characters, got %d", len(tok.Text)))
	}
	return nil
}

// buildHeader decodes the three header tokens: report type, YYGGiw date
// and wind indicator, and the station identifier. The wind unit fixed
// here is returned through the context for the wind group to consume.
func (b *builder) buildHeader(reportType, dateWind, station Token, ctx *Context) *synoperrors.Error {
	// Only the land station grammar is implemented; ship (BBXX) and
	// mobile land (OOXX) reports carry extra position groups this walk
	// does not understand.
	if reportType.Text != "AAXX" {
		msg := fmt.Sprintf("unsupported report type %q", reportType.Text)
		if entry, ok := b.tables.Lookup("report_type", reportType.Text); ok {
			msg = fmt.Sprintf("unsupported report type %q (%s)", reportType.Text, entry.Label)
		}
		return &synoperrors.Error{
			Type:       synoperrors.ErrorTypeGrammar,
			Message:    msg,
			Position:   b.pos(reportType, ""),
			Raw:        reportType.Text,
			Suggestion: "only AAXX land station reports are supported",
		}
	}
	typeCode, typeLabel := b.lookup("report_type", reportType.Text, b.pos(reportType, ""))
	b.report.ReportTypeCode = typeCode
	b.report.ReportType = typeLabel

	if err := b.requireLen(dateWind, "", "header"); err != nil {
		return err
	}
	day, err := ast.ParseBase(dateWind.Text[0:2], ast.BaseInt)
	if err != nil {
		return b.decodeError(dateWind, "", "header", "day: "+err.Error())
	}
	hour, err := ast.ParseBase(dateWind.Text[2:4], ast.BaseInt)
	if err != nil {
		return b.decodeError(dateWind, "", "header", "hour: "+err.Error())
	}
	b.report.Day = day
	b.report.Hour = hour

	iw := dateWind.Text[4:5]
	_, unit := b.lookup("wind_unit", iw, b.pos(dateWind, ""))
	indicator, err := ast.ParseBase(iw, ast.BaseInt)
	if err != nil {
		return b.decodeError(dateWind, "", "header", "wind indicator: "+err.Error())
	}
	b.report.WindIndicatorCode = indicator
	b.report.WindUnit = unit
	ctx.WindUnit = unit

	if err := b.requireLen(station, "", "header"); err != nil {
		return err
	}
	b.report.StationID = ast.String(station.Text)
	block, err := ast.ParseBase(station.Text[0:2], ast.BaseInt)
	if err != nil {
		return b.decodeError(station, "", "header", "block number: "+err.Error())
	}
	number, err := ast.ParseBase(station.Text[2:5], ast.BaseInt)
	if err != nil {
		return b.decodeError(station, "", "header", "station number: "+err.Error())
	}
	b.report.BlockNumber = block
	b.report.StationNumber = number
	return nil
}

// buildMisc decodes the iRixhVV group into section 1.
func (b *builder) buildMisc(tok Token) *synoperrors.Error {
	section := ast.Section1
	if err := b.requireLen(tok, section, ast.GroupMisc); err != nil {
		return err
	}
	pos := b.pos(tok, section)

	precip := indicatorFlag(tok.Text[0:1], "0", "1", "2")
	staffed := indicatorFlag(tok.Text[1:2], "1", "2", "3")
	cloudCode, cloud := b.lookup("lowest_cloud", tok.Text[2:3], pos)

	node, err := ast.NewMiscGroup(tok.Text, precip, staffed, cloudCode, cloud, tok.Text[3:5])
	if err != nil {
		return b.wrapDecode(tok, section, ast.GroupMisc, err)
	}
	b.report.Section(section).Add(node)
	return nil
}

// indicatorFlag decodes a one-digit indicator into a boolean: true when
// the digit is one of trueCodes, null when it is a placeholder.
func indicatorFlag(code string, trueCodes ...string) ast.Value {
	if ast.IsMissing(code, ast.BaseString) {
		return ast.Null()
	}
	for _, t := range trueCodes {
		if code == t {
			return ast.Bool(true)
		}
	}
	return ast.Bool(false)
}

// buildWind decodes the Nddff group. When the two-digit speed is the 99
// overflow code and the next token is a 00fff continuation, the actual
// three-digit speed comes from the continuation and the extra token is
// consumed.
func (b *builder) buildWind(tok Token, next *Token, ctx *Context) (consumed bool, fatal *synoperrors.Error) {
	section := ast.Section1
	if err := b.requireLen(tok, section, ast.GroupWind); err != nil {
		return false, err
	}
	pos := b.pos(tok, section)

	coverCode, cover := b.lookup("cloud_cover", tok.Text[0:1], pos)
	speed := tok.Text[3:5]
	if speed == "99" && next != nil && len(next.Text) == 5 && next.Text[0:2] == "00" {
		speed = next.Text[2:5]
		consumed = true
	}

	node, err := ast.NewWindGroup(tok.Text, coverCode, cover, tok.Text[1:3], speed, ctx.WindUnit)
	if err != nil {
		return consumed, b.wrapDecode(tok, section, ast.GroupWind, err)
	}
	b.report.Section(section).Add(node)
	return consumed, nil
}

// buildTemperature decodes a 5-character signed temperature group into
// the given section.
func (b *builder) buildTemperature(kind ast.GroupKind, section string, tok Token) *synoperrors.Error {
	if err := b.requireLen(tok, section, kind); err != nil {
		return err
	}
	node, err := ast.NewTemperatureGroup(kind, tok.Text, tok.Text[1:2], tok.Text[2:5])
	if err != nil {
		return b.wrapDecode(tok, section, kind, err)
	}
	b.report.Section(section).Add(node)
	return nil
}

// buildPressure decodes a 5-character pressure group into section 1.
func (b *builder) buildPressure(kind ast.GroupKind, tok Token) *synoperrors.Error {
	section := ast.Section1
	if err := b.requireLen(tok, section, kind); err != nil {
		return err
	}
	node, err := ast.NewPressureGroup(kind, tok.Text, tok.Text[1:5])
	if err != nil {
		return b.wrapDecode(tok, section, kind, err)
	}
	b.report.Section(section).Add(node)
	return nil
}

// buildTendency decodes the 5appp pressure-tendency group.
func (b *builder) buildTendency(tok Token) *synoperrors.Error {
	section := ast.Section1
	if err := b.requireLen(tok, section, ast.GroupPressureTendency); err != nil {
		return err
	}
	pos := b.pos(tok, section)
	charCode, characteristic := b.lookup("tendency", tok.Text[1:2], pos)

	node, err := ast.NewPressureTendencyGroup(tok.Text, charCode, characteristic, tok.Text[2:5])
	if err != nil {
		return b.wrapDecode(tok, section, ast.GroupPressureTendency, err)
	}
	b.report.Section(section).Add(node)
	return nil
}

// buildPrecipitation decodes a 6RRRt group. The duration indicator is
// the final digit of the group itself, honoring the forward-only flow.
func (b *builder) buildPrecipitation(section string, tok Token) *synoperrors.Error {
	if err := b.requireLen(tok, section, ast.GroupPrecipitation); err != nil {
		return err
	}
	pos := b.pos(tok, section)
	durationCode, duration := b.lookup("precipitation_duration", tok.Text[4:5], pos)

	node, err := ast.NewPrecipitationGroup(ast.GroupPrecipitation, tok.Text, tok.Text[1:4], durationCode, duration)
	if err != nil {
		return b.wrapDecode(tok, section, ast.GroupPrecipitation, err)
	}
	b.report.Section(section).Add(node)
	return nil
}

// buildWeather decodes the 7wwW1W2 present and past weather group.
func (b *builder) buildWeather(tok Token) *synoperrors.Error {
	section := ast.Section1
	if err := b.requireLen(tok, section, ast.GroupWeather); err != nil {
		return err
	}
	pos := b.pos(tok, section)

	entry, presentCode, ok := b.lookupEntry("present_weather", tok.Text[1:3], pos)
	present, category := ast.Null(), ast.Null()
	if ok {
		present = ast.String(entry.Label)
		if entry.Category != "" {
			category = ast.String(entry.Category)
		}
	}
	past1Code, past1 := b.lookup("past_weather", tok.Text[3:4], pos)
	past2Code, past2 := b.lookup("past_weather", tok.Text[4:5], pos)

	node := ast.NewWeatherGroup(tok.Text, presentCode, present, category, past1Code, past1, past2Code, past2)
	b.report.Section(section).Add(node)
	return nil
}

// buildCloud decodes the 8NhCLCMCH cloud information group.
func (b *builder) buildCloud(tok Token) *synoperrors.Error {
	section := ast.Section1
	if err := b.requireLen(tok, section, ast.GroupCloudInformation); err != nil {
		return err
	}
	pos := b.pos(tok, section)

	amountCode, amount := b.lookup("cloud_cover", tok.Text[1:2], pos)
	lowCode, low := b.lookup("cloud_type_low", tok.Text[2:3], pos)
	midCode, mid := b.lookup("cloud_type_mid", tok.Text[3:4], pos)
	highCode, high := b.lookup("cloud_type_high", tok.Text[4:5], pos)

	node := ast.NewCloudGroup(tok.Text, amountCode, amount, lowCode, low, midCode, mid, highCode, high)
	b.report.Section(section).Add(node)
	return nil
}

// buildObservationTime decodes the 9GGgg group.
func (b *builder) buildObservationTime(tok Token) *synoperrors.Error {
	section := ast.Section1
	if err := b.requireLen(tok, section, ast.GroupObservationTime); err != nil {
		return err
	}
	node, err := ast.NewObservationTimeGroup(tok.Text, tok.Text[1:3], tok.Text[3:5])
	if err != nil {
		return b.wrapDecode(tok, section, ast.GroupObservationTime, err)
	}
	b.report.Section(section).Add(node)
	return nil
}

// buildGroundState decodes the section 3 3Ejjj group.
func (b *builder) buildGroundState(tok Token) *synoperrors.Error {
	section := ast.Section3
	if err := b.requireLen(tok, section, ast.GroupGroundState); err != nil {
		return err
	}
	pos := b.pos(tok, section)
	stateCode, state := b.lookup("soil_state", tok.Text[1:2], pos)

	node, err := ast.NewGroundStateGroup(tok.Text, stateCode, state, tok.Text[2:5])
	if err != nil {
		return b.wrapDecode(tok, section, ast.GroupGroundState, err)
	}
	b.report.Section(section).Add(node)
	return nil
}

// buildSnowCover decodes the section 3 4Esss group.
func (b *builder) buildSnowCover(tok Token) *synoperrors.Error {
	section := ast.Section3
	if err := b.requireLen(tok, section, ast.GroupSnowCover); err != nil {
		return err
	}
	pos := b.pos(tok, section)
	stateCode, state := b.lookup("ground_state_snow", tok.Text[1:2], pos)

	node, err := ast.NewSnowCoverGroup(tok.Text, stateCode, state, tok.Text[2:5])
	if err != nil {
		return b.wrapDecode(tok, section, ast.GroupSnowCover, err)
	}
	b.report.Section(section).Add(node)
	return nil
}

// buildEvaporation decodes the section 3 5EEEi group.
func (b *builder) buildEvaporation(tok Token) *synoperrors.Error {
	section := ast.Section3
	if err := b.requireLen(tok, section, ast.GroupEvaporation); err != nil {
		return err
	}
	pos := b.pos(tok, section)

	entry, instrumentCode, ok := b.lookupEntry("evaporation", tok.Text[4:5], pos)
	instrument, category := ast.Null(), ast.Null()
	if ok {
		instrument = ast.String(entry.Label)
		if entry.Category != "" {
			category = ast.String(entry.Category)
		}
	}

	node, err := ast.NewEvaporationGroup(tok.Text, tok.Text[1:4], instrumentCode, instrument, category)
	if err != nil {
		return b.wrapDecode(tok, section, ast.GroupEvaporation, err)
	}
	b.report.Section(section).Add(node)
	return nil
}

// buildPrecipitation24 decodes the section 3 7RRRR group.
func (b *builder) buildPrecipitation24(tok Token) *synoperrors.Error {
	section := ast.Section3
	if err := b.requireLen(tok, section, ast.GroupPrecipitation24h); err != nil {
		return err
	}
	node, err := ast.NewPrecipitation24Group(tok.Text, tok.Text[1:5])
	if err != nil {
		return b.wrapDecode(tok, section, ast.GroupPrecipitation24h, err)
	}
	b.report.Section(section).Add(node)
	return nil
}

// buildCloudLayer decodes one section 3 8NChshs group. Several layers
// may repeat within a report.
func (b *builder) buildCloudLayer(tok Token) *synoperrors.Error {
	section := ast.Section3
	if err := b.requireLen(tok, section, ast.GroupCloudLayer); err != nil {
		return err
	}
	pos := b.pos(tok, section)

	amountCode, amount := b.lookup("cloud_cover", tok.Text[1:2], pos)
	typeCode, cloudType := b.lookup("cloud_type", tok.Text[2:3], pos)

	node, err := ast.NewCloudLayerGroup(tok.Text, amountCode, amount, typeCode, cloudType, tok.Text[3:5])
	if err != nil {
		return b.wrapDecode(tok, section, ast.GroupCloudLayer, err)
	}
	b.report.Section(section).Add(node)
	return nil
}

// buildShipMovement decodes the 222Dsvs section marker payload. An exact
// "222" marker carries no payload and produces no node.
func (b *builder) buildShipMovement(tok Token) *synoperrors.Error {
	if tok.Text == "222" {
		return nil
	}
	section := ast.Section2
	if err := b.requireLen(tok, section, ast.GroupShipMovement); err != nil {
		return err
	}
	node, err := ast.NewShipMovementGroup(tok.Text, tok.Text[3:4], tok.Text[4:5])
	if err != nil {
		return b.wrapDecode(tok, section, ast.GroupShipMovement, err)
	}
	b.report.Section(section).Add(node)
	return nil
}
