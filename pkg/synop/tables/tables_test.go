package tables

import "testing"

func TestDefault_LoadsEmbeddedData(t *testing.T) {
	r := Default()

	// Default() must return the same registry on every call.
	if Default() != r {
		t.Error("Default() returned distinct registries")
	}

	wantTables := []string{
		"report_type", "wind_unit", "cloud_cover", "present_weather",
		"past_weather", "tendency", "precipitation_duration",
		"cloud_type_low", "cloud_type_mid", "cloud_type_high",
		"cloud_type", "lowest_cloud", "ground_state_snow",
		"soil_state", "evaporation",
	}
	for _, name := range wantTables {
		if !r.Has(name) {
			t.Errorf("missing table %q", name)
		}
	}
}

func TestLookup(t *testing.T) {
	r := Default()

	tests := []struct {
		table, code string
		wantLabel   string
		wantOK      bool
	}{
		{"wind_unit", "1", "m/s", true},
		{"wind_unit", "2", "not measured", true},
		{"wind_unit", "5", "", false},
		{"cloud_cover", "8", "Overcast", true},
		{"present_weather", "61", "Rain, not freezing, continuous slight", true},
		{"present_weather", "//", "", false},
		{"past_weather", "6", "Thunderstorm", true},
		{"tendency", "7", "Decreasing steadily", true},
		{"precipitation_duration", "1", "6 hours", true},
		{"cloud_type_low", "5", "Stratocumulus", true},
		{"cloud_type", "9", "Cumulonimbus Cb", true},
		{"report_type", "AAXX", "land_station", true},
		{"no_such_table", "0", "", false},
	}

	for _, tt := range tests {
		e, ok := r.Lookup(tt.table, tt.code)
		if ok != tt.wantOK {
			t.Errorf("Lookup(%q, %q) ok = %v, want %v", tt.table, tt.code, ok, tt.wantOK)
			continue
		}
		if ok && e.Label != tt.wantLabel {
			t.Errorf("Lookup(%q, %q) label = %q, want %q", tt.table, tt.code, e.Label, tt.wantLabel)
		}
	}
}

func TestLookup_Categories(t *testing.T) {
	r := Default()

	e, ok := r.Lookup("present_weather", "95")
	if !ok {
		t.Fatal("missing present_weather code 95")
	}
	if e.Category != "thunderstorm" {
		t.Errorf("category = %q, want %q", e.Category, "thunderstorm")
	}

	e, ok = r.Lookup("evaporation", "5")
	if !ok {
		t.Fatal("missing evaporation code 5")
	}
	if e.Category != "Evapotranspiration" {
		t.Errorf("category = %q, want %q", e.Category, "Evapotranspiration")
	}
}

func TestLoad_Invalid(t *testing.T) {
	if _, err := Load([]byte("not: [valid")); err == nil {
		t.Error("Load() with malformed YAML should fail")
	}
	if _, err := Load([]byte("empty_table: {}\n")); err == nil {
		t.Error("Load() with an empty table should fail")
	}
}

func TestPresentWeather_Complete(t *testing.T) {
	r := Default()
	if n := r.Len("present_weather"); n != 100 {
		t.Errorf("present_weather has %d entries, want 100", n)
	}
	if n := r.Len("cloud_cover"); n != 10 {
		t.Errorf("cloud_cover has %d entries, want 10", n)
	}
}
