package ast

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewTemperatureGroupSignConvention(t *testing.T) {
	tests := []struct {
		name      string
		sign      string
		magnitude string
		want      Value
	}{
		{name: "even sign positive", sign: "2", magnitude: "782", want: Float(78.2)},
		{name: "zero sign positive", sign: "0", magnitude: "094", want: Float(9.4)},
		{name: "odd sign negative", sign: "1", magnitude: "035", want: Float(-3.5)},
		{name: "missing sign nulls value", sign: "/", magnitude: "094", want: Null()},
		{name: "missing magnitude", sign: "0", magnitude: "///", want: Null()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewTemperatureGroup(GroupAirTemperature, "1"+tt.sign+tt.magnitude, tt.sign, tt.magnitude)
			if err != nil {
				t.Fatalf("NewTemperatureGroup: %v", err)
			}
			if !g.Celsius.Equal(tt.want) {
				t.Errorf("Celsius = %v, want %v", g.Celsius, tt.want)
			}
		})
	}
}

func TestNewTemperatureGroupBadDigits(t *testing.T) {
	if _, err := NewTemperatureGroup(GroupAirTemperature, "10x94", "0", "x94"); err == nil {
		t.Fatal("expected conversion error for non-digit magnitude")
	}
}

func TestNewWindGroup(t *testing.T) {
	g, err := NewWindGroup("61506", String("6"), String("6 oktas"), "15", "06", String("metres per second"))
	if err != nil {
		t.Fatalf("NewWindGroup: %v", err)
	}
	if !g.DirectionDegrees.Equal(Int(150)) {
		t.Errorf("DirectionDegrees = %v, want 150", g.DirectionDegrees)
	}
	if !g.DirectionCompass.Equal(String("SSE")) {
		t.Errorf("DirectionCompass = %v, want SSE", g.DirectionCompass)
	}
	if !g.Speed.Equal(Float(6)) {
		t.Errorf("Speed = %v, want 6", g.Speed)
	}
}

func TestNewWindGroupCalm(t *testing.T) {
	g, err := NewWindGroup("60000", String("6"), String("6 oktas"), "00", "00", String("knots"))
	if err != nil {
		t.Fatalf("NewWindGroup: %v", err)
	}
	if !g.DirectionDegrees.Equal(Int(0)) {
		t.Errorf("DirectionDegrees = %v, want 0 (calm is a real zero)", g.DirectionDegrees)
	}
	if !g.Speed.Equal(Float(0)) {
		t.Errorf("Speed = %v, want 0", g.Speed)
	}
}

func TestNewMiscGroupVisibility(t *testing.T) {
	g, err := NewMiscGroup("12782", Bool(true), Bool(true), String("7"), String("1500 to 2000 m"), "82")
	if err != nil {
		t.Fatalf("NewMiscGroup: %v", err)
	}
	if !g.Visibility.Equal(Float(40)) {
		t.Errorf("Visibility = %v, want 40", g.Visibility)
	}
	if !g.VisibilityCode.Equal(String("82")) {
		t.Errorf("VisibilityCode = %v, want 82", g.VisibilityCode)
	}
}

func TestNewPrecipitationGroupTrace(t *testing.T) {
	g, err := NewPrecipitationGroup(GroupPrecipitation, "69901", "990", String("1"), String("6 hours"))
	if err != nil {
		t.Fatalf("NewPrecipitationGroup: %v", err)
	}
	if !g.Amount.Equal(Float(0.0)) {
		t.Errorf("Amount = %v, want 0.0 for trace", g.Amount)
	}
}

func TestNewPrecipitation24Group(t *testing.T) {
	g, err := NewPrecipitation24Group("70125", "0125")
	if err != nil {
		t.Fatalf("NewPrecipitation24Group: %v", err)
	}
	if !g.Amount.Equal(Float(12.5)) {
		t.Errorf("Amount = %v, want 12.5", g.Amount)
	}
}

func TestGroupRenderFirstKeyIsKind(t *testing.T) {
	g, err := NewPressureGroup(GroupSeaLevelPressure, "40197", "0197")
	if err != nil {
		t.Fatalf("NewPressureGroup: %v", err)
	}
	obj := g.Render()
	keys := obj.Keys()
	if len(keys) == 0 || keys[0] != "group" {
		t.Fatalf("first rendered key = %v, want group", keys)
	}
	v, _ := obj.Get("group")
	if v != string(GroupSeaLevelPressure) {
		t.Errorf("group = %v, want %s", v, GroupSeaLevelPressure)
	}
}

func TestReportRenderOrder(t *testing.T) {
	r := NewReport()
	r.ReportTypeCode = String("AAXX")
	r.ReportType = String("Land station observation")
	r.StationID = String("88889")
	r.BlockNumber = Int(88)
	r.StationNumber = Int(889)
	r.Day = Int(1)
	r.Hour = Int(0)
	r.WindIndicatorCode = Int(4)
	r.WindUnit = String("knots")

	g, err := NewPressureGroup(GroupStationPressure, "30111", "0111")
	if err != nil {
		t.Fatalf("NewPressureGroup: %v", err)
	}
	r.Section(Section1).Add(g)

	obj := r.Render()
	keys := obj.Keys()
	if keys[0] != "report_type" {
		t.Errorf("first key = %q, want report_type", keys[0])
	}
	if keys[len(keys)-1] != Section1 {
		t.Errorf("last key = %q, want %s", keys[len(keys)-1], Section1)
	}

	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(data)
	if want := `"station_id":"88889"`; !strings.Contains(got, want) {
		t.Errorf("output missing %s:\n%s", want, got)
	}
	if want := `"value":1011.1`; !strings.Contains(got, want) {
		t.Errorf("output missing %s:\n%s", want, got)
	}
}

func TestReportSectionReuse(t *testing.T) {
	r := NewReport()
	a := r.Section(Section3)
	b := r.Section(Section3)
	if a != b {
		t.Fatal("Section should return the same section on repeat calls")
	}
	if len(r.Sections) != 1 {
		t.Fatalf("len(Sections) = %d, want 1", len(r.Sections))
	}
}
