package ast

import (
	synoperrors "synack/pkg/synop/errors"
)

// Section names used as keys in rendered output.
const (
	Section1 = "section_1"
	Section2 = "section_2"
	Section3 = "section_3"
	Section4 = "section_4"
	Section5 = "section_5"
)

// Section is an ordered run of decoded groups belonging to one report
// section. Sections keep their wire order.
type Section struct {
	Name   string
	Groups []Group
}

// Add appends a group node to the section.
func (s *Section) Add(g Group) {
	s.Groups = append(s.Groups, g)
}

// Render produces the ordered record list for the section.
func (s *Section) Render() []*Object {
	out := make([]*Object, 0, len(s.Groups))
	for _, g := range s.Groups {
		out = append(out, g.Render())
	}
	return out
}

// Report is the root node of one decoded SYNOP report. Header fields
// live directly on the report; decoded groups hang off the sections in
// wire order. Warnings accumulated during the decode travel with the
// report so callers can surface them next to the data.
type Report struct {
	ReportTypeCode Value // MiMiMjMj, e.g. AAXX
	ReportType     Value // label from the report-type table

	StationID     Value // IIiii as reported
	BlockNumber   Value // II
	StationNumber Value // iii

	Day  Value // YY, day of month UTC
	Hour Value // GG, hour UTC

	WindIndicatorCode Value // iw digit
	WindUnit          Value // code table 1855 label

	Sections []*Section

	Warnings *synoperrors.WarningList
}

// NewReport returns an empty report with an empty warning list.
func NewReport() *Report {
	return &Report{Warnings: synoperrors.NewWarningList()}
}

// Section returns the section with the given name, creating and
// appending it on first use.
func (r *Report) Section(name string) *Section {
	for _, s := range r.Sections {
		if s.Name == name {
			return s
		}
	}
	s := &Section{Name: name}
	r.Sections = append(r.Sections, s)
	return s
}

// FindSection returns the named section or nil if no group was ever
// added to it.
func (r *Report) FindSection(name string) *Section {
	for _, s := range r.Sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Groups returns all groups of the named section, or nil.
func (r *Report) Groups(name string) []Group {
	if s := r.FindSection(name); s != nil {
		return s.Groups
	}
	return nil
}

// Render produces the ordered output tree for the report: header fields
// first, then one key per populated section.
func (r *Report) Render() *Object {
	o := NewObject().
		Set("report_type", r.ReportType.Render()).
		Set("report_type_code", r.ReportTypeCode.Render()).
		Set("station_id", r.StationID.Render()).
		Set("block_number", r.BlockNumber.Render()).
		Set("station_number", r.StationNumber.Render()).
		Set("day", r.Day.Render()).
		Set("hour", r.Hour.Render()).
		Set("wind_unit", r.WindUnit.Render()).
		Set("wind_indicator_code", r.WindIndicatorCode.Render())
	for _, s := range r.Sections {
		o.Set(s.Name, s.Render())
	}
	return o
}
