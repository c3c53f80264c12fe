package ast

import "testing"

func TestParseBase(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		base    BaseKind
		want    Value
		wantErr bool
	}{
		{name: "int", raw: "015", base: BaseInt, want: Int(15)},
		{name: "int zero", raw: "000", base: BaseInt, want: Int(0)},
		{name: "float", raw: "094", base: BaseFloat, want: Float(94)},
		{name: "string", raw: "AAXX", base: BaseString, want: String("AAXX")},
		{name: "all slashes int", raw: "///", base: BaseInt, want: Null()},
		{name: "partial slashes int", raw: "1//", base: BaseInt, want: Null()},
		{name: "partial slashes float", raw: "/5", base: BaseFloat, want: Null()},
		{name: "all slashes string", raw: "////", base: BaseString, want: Null()},
		{name: "mixed string kept", raw: "1//", base: BaseString, want: String("1//")},
		{name: "bad digits", raw: "1a3", base: BaseInt, wantErr: true},
		{name: "empty", raw: "", base: BaseInt, want: Null()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBase(tt.raw, tt.base)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseBase(%q) expected error, got %v", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBase(%q) unexpected error: %v", tt.raw, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseBase(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValueRender(t *testing.T) {
	if Null().Render() != nil {
		t.Errorf("null should render as nil")
	}
	if got := Int(7).Render(); got != int64(7) {
		t.Errorf("Int(7).Render() = %v", got)
	}
	if got := Float(7.8).Render(); got != 7.8 {
		t.Errorf("Float(7.8).Render() = %v", got)
	}
	if got := String("NE").Render(); got != "NE" {
		t.Errorf("String render = %v", got)
	}
	if got := Bool(true).Render(); got != true {
		t.Errorf("Bool render = %v", got)
	}
}

func TestValueAsFloatWidensInt(t *testing.T) {
	if got := Int(42).AsFloat(); got != 42.0 {
		t.Errorf("AsFloat() = %v, want 42.0", got)
	}
}
