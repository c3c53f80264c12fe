package ast

import "fmt"

// Hook further transforms a field value after its base conversion.
// Hooks must tolerate a null input and return null in that case.
type Hook func(Value) (Value, error)

// FieldSpec declares how one raw sub-field becomes a node field: the
// field name, its base type, and an optional post-conversion hook.
// Each node variant owns a fixed table of specs, resolved at compile
// time, so the conversion path for every field is explicit.
type FieldSpec struct {
	Name string
	Base BaseKind
	Hook Hook
}

// Convert runs the full conversion pipeline for one sub-field:
// trim and null-check happen inside ParseBase, then the declared hook
// runs on the converted value. Construction of a node either converts
// every field or fails; callers must not keep partially built nodes.
func Convert(raw string, spec FieldSpec) (Value, error) {
	v, err := ParseBase(raw, spec.Base)
	if err != nil {
		return Null(), fmt.Errorf("field %s: %w", spec.Name, err)
	}
	if spec.Hook != nil {
		v, err = spec.Hook(v)
		if err != nil {
			return Null(), fmt.Errorf("field %s: %w", spec.Name, err)
		}
	}
	return v, nil
}

// ScaleTenth divides a numeric value by ten. Used for temperatures,
// pressure-tendency amounts, and other 0.1-unit encodings.
func ScaleTenth(v Value) (Value, error) {
	if v.IsNull() {
		return v, nil
	}
	return Float(v.AsFloat() / 10), nil
}

// PressureScale converts a 4-digit PPPP code to hectopascals: the code
// is tenths of hPa with the leading thousand digit omitted when the
// pressure is at or above 1000 hPa.
func PressureScale(v Value) (Value, error) {
	if v.IsNull() {
		return v, nil
	}
	hpa := v.AsFloat() / 10
	if hpa <= 99.9 {
		hpa += 1000
	}
	return Float(hpa), nil
}

// TenDegrees converts a two-digit dd wind-direction code to degrees.
func TenDegrees(v Value) (Value, error) {
	if v.IsNull() {
		return v, nil
	}
	return Int(v.AsInt() * 10), nil
}

// specialVisibility maps VV codes 90-99 to kilometres (code table 4377,
// the coarse scale used when visibility is estimated).
var specialVisibility = map[int64]float64{
	90: 0.0, 91: 0.05, 92: 0.2, 93: 0.5, 94: 1,
	95: 2, 96: 4, 97: 10, 98: 20, 99: 50,
}

// VisibilityKm decodes the two-digit VV code to kilometres per code
// table 4377: 00-50 are tenths of a km, 56-80 are whole km minus 50,
// 81-89 step by 5 km from 30, and 90-99 use the coarse scale.
// Codes 51-55 are not used and decode to null.
func VisibilityKm(v Value) (Value, error) {
	if v.IsNull() {
		return v, nil
	}
	code := v.AsInt()
	switch {
	case code <= 50:
		return Float(float64(code) / 10), nil
	case code <= 55:
		return Null(), nil
	case code <= 80:
		return Float(float64(code - 50)), nil
	case code <= 89:
		return Float(float64(30 + (code-80)*5)), nil
	default:
		if km, ok := specialVisibility[code]; ok {
			return Float(km), nil
		}
		return Null(), fmt.Errorf("visibility code out of range: %d", code)
	}
}

// PrecipitationMillimetres decodes the 3-digit RRR amount code per code
// table 3590: 000 means no precipitation, 001-988 are whole millimetres,
// 989 is 989 mm or more, 990 is a trace, and 991-999 are 0.1-0.9 mm.
func PrecipitationMillimetres(v Value) (Value, error) {
	if v.IsNull() {
		return v, nil
	}
	code := v.AsInt()
	switch {
	case code == 990:
		return Float(0.0), nil
	case code > 990:
		return Float(float64(code-990) / 10), nil
	default:
		return Float(float64(code)), nil
	}
}

// Precipitation24Millimetres decodes the 4-digit RRRR 24-hour amount
// code: tenths of a millimetre, with 9999 meaning a trace.
func Precipitation24Millimetres(v Value) (Value, error) {
	if v.IsNull() {
		return v, nil
	}
	code := v.AsInt()
	if code == 9999 {
		return Float(0.0), nil
	}
	return Float(float64(code) / 10), nil
}

// specialCloudHeight maps hshs codes 90-99 to metres (the coarse scale).
var specialCloudHeight = map[int64]int64{
	90: 50, 91: 100, 92: 200, 93: 300, 94: 600,
	95: 1000, 96: 1500, 97: 2000, 98: 2500, 99: 0,
}

// CloudHeightMetres decodes the two-digit hshs cloud-base height code
// per code table 1677: 00-50 step by 30 m, 56-80 step by 300 m from
// 1800 m, 81-88 step by 1500 m from 10500 m, 89 means above 21000 m,
// and 90-99 use the coarse scale. Codes 51-55 are not used.
func CloudHeightMetres(v Value) (Value, error) {
	if v.IsNull() {
		return v, nil
	}
	code := v.AsInt()
	switch {
	case code <= 50:
		return Int(code * 30), nil
	case code <= 55:
		return Null(), nil
	case code <= 80:
		return Int((code - 50) * 300), nil
	case code <= 88:
		return Int(9000 + (code-80)*1500), nil
	case code == 89:
		return Int(21000), nil
	default:
		if m, ok := specialCloudHeight[code]; ok {
			return Int(m), nil
		}
		return Null(), fmt.Errorf("cloud height code out of range: %d", code)
	}
}

// compassPoints are the 16-point compass rose, clockwise from north.
var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CompassPoint returns the 16-point compass label nearest to the given
// direction in degrees, or null for null input.
func CompassPoint(degrees Value) Value {
	if degrees.IsNull() {
		return Null()
	}
	idx := int((degrees.AsFloat()+11.25)/22.5) % 16
	if idx < 0 {
		idx += 16
	}
	return String(compassPoints[idx])
}
