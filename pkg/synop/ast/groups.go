package ast

// GroupKind names a group node variant. Kinds double as the "group" key
// in rendered output, so they are stable, lowercase identifiers.
type GroupKind string

const (
	GroupMisc             GroupKind = "misc"
	GroupWind             GroupKind = "wind"
	GroupAirTemperature   GroupKind = "air_temperature"
	GroupDewPoint         GroupKind = "dew_point_temperature"
	GroupStationPressure  GroupKind = "station_pressure"
	GroupSeaLevelPressure GroupKind = "sea_level_pressure"
	GroupPressureTendency GroupKind = "pressure_tendency"
	GroupPrecipitation    GroupKind = "precipitation"
	GroupWeather          GroupKind = "present_and_past_weather"
	GroupCloudInformation GroupKind = "cloud_information"
	GroupObservationTime  GroupKind = "time_of_observation"
	GroupMaxTemperature   GroupKind = "maximum_temperature"
	GroupMinTemperature   GroupKind = "minimum_temperature"
	GroupGroundState      GroupKind = "ground_state"
	GroupSnowCover        GroupKind = "snow_cover"
	GroupEvaporation      GroupKind = "evaporation"
	GroupPrecipitation24h GroupKind = "precipitation_24h"
	GroupCloudLayer       GroupKind = "cloud_layer"
	GroupShipMovement     GroupKind = "ship_movement"
)

// Group is a decoded group node. Nodes are immutable after construction
// and owned exclusively by the Report that accumulated them.
type Group interface {
	Kind() GroupKind
	Raw() string
	Render() *Object
}

// MiscGroup decodes the iRixhVV group: precipitation inclusion,
// station staffing, lowest cloud base, and horizontal visibility.
type MiscGroup struct {
	PrecipitationIncluded Value // bool
	IsStaffed             Value // bool
	LowestCloudCode       Value // raw h digit
	LowestCloud           Value // code table 1600 label
	VisibilityCode        Value // raw VV digits
	Visibility            Value // kilometres
	raw                   string
}

var miscFields = struct {
	VisibilityCode FieldSpec
	Visibility     FieldSpec
}{
	VisibilityCode: FieldSpec{Name: "visibility_code", Base: BaseString},
	Visibility:     FieldSpec{Name: "visibility", Base: BaseInt, Hook: VisibilityKm},
}

// NewMiscGroup builds the misc node. The indicator interpretations and
// the lowest-cloud table lookup happen in the builder; the visibility
// sub-field is converted here.
func NewMiscGroup(raw string, precipIncluded, staffed, cloudCode, cloud Value, visibility string) (*MiscGroup, error) {
	code, err := Convert(visibility, miscFields.VisibilityCode)
	if err != nil {
		return nil, err
	}
	km, err := Convert(visibility, miscFields.Visibility)
	if err != nil {
		return nil, err
	}
	return &MiscGroup{
		PrecipitationIncluded: precipIncluded,
		IsStaffed:             staffed,
		LowestCloudCode:       cloudCode,
		LowestCloud:           cloud,
		VisibilityCode:        code,
		Visibility:            km,
		raw:                   raw,
	}, nil
}

func (g *MiscGroup) Kind() GroupKind { return GroupMisc }
func (g *MiscGroup) Raw() string     { return g.raw }

func (g *MiscGroup) Render() *Object {
	return NewObject().
		Set("group", string(GroupMisc)).
		Set("precipitation_included", g.PrecipitationIncluded.Render()).
		Set("is_staffed", g.IsStaffed.Render()).
		Set("lowest_cloud", g.LowestCloud.Render()).
		Set("lowest_cloud_code", g.LowestCloudCode.Render()).
		Set("visibility_km", g.Visibility.Render()).
		Set("visibility_code", g.VisibilityCode.Render()).
		Set("original", g.raw)
}

// WindGroup decodes the Nddff group: total cloud cover, wind direction,
// and wind speed. Speed units come from the wind-unit indicator decoded
// at the head of the report; a high-wind continuation (00fff) replaces
// the two-digit speed when present.
type WindGroup struct {
	CloudCoverCode   Value
	CloudCover       Value // code table 2700 label
	DirectionDegrees Value
	DirectionCompass Value
	Speed            Value
	SpeedUnit        Value // code table 1855 label
	raw              string
}

var windFields = struct {
	Direction FieldSpec
	Speed     FieldSpec
}{
	Direction: FieldSpec{Name: "direction_degrees", Base: BaseInt, Hook: TenDegrees},
	Speed:     FieldSpec{Name: "speed", Base: BaseFloat},
}

// NewWindGroup builds the wind node from the dd and ff sub-fields.
func NewWindGroup(raw string, cloudCode, cloud Value, direction, speed string, unit Value) (*WindGroup, error) {
	deg, err := Convert(direction, windFields.Direction)
	if err != nil {
		return nil, err
	}
	spd, err := Convert(speed, windFields.Speed)
	if err != nil {
		return nil, err
	}
	return &WindGroup{
		CloudCoverCode:   cloudCode,
		CloudCover:       cloud,
		DirectionDegrees: deg,
		DirectionCompass: CompassPoint(deg),
		Speed:            spd,
		SpeedUnit:        unit,
		raw:              raw,
	}, nil
}

func (g *WindGroup) Kind() GroupKind { return GroupWind }
func (g *WindGroup) Raw() string     { return g.raw }

func (g *WindGroup) Render() *Object {
	return NewObject().
		Set("group", string(GroupWind)).
		Set("cloud_cover", g.CloudCover.Render()).
		Set("cloud_cover_code", g.CloudCoverCode.Render()).
		Set("direction_degrees", g.DirectionDegrees.Render()).
		Set("direction_compass", g.DirectionCompass.Render()).
		Set("speed", g.Speed.Render()).
		Set("speed_unit", g.SpeedUnit.Render()).
		Set("original", g.raw)
}

// TemperatureGroup decodes a signed temperature group (1sTTT, 2sTTT, and
// the section 3 extreme-temperature groups). The sign digit follows the
// FM-12 convention: even means non-negative, odd means negative.
type TemperatureGroup struct {
	kind    GroupKind
	Sign    Value // raw sign digit
	Celsius Value
	raw     string
}

var temperatureFields = struct {
	Sign    FieldSpec
	Celsius FieldSpec
}{
	Sign:    FieldSpec{Name: "sign", Base: BaseInt},
	Celsius: FieldSpec{Name: "value", Base: BaseFloat, Hook: ScaleTenth},
}

// NewTemperatureGroup builds a temperature node from the sign digit and
// the 3-digit magnitude in tenths of a degree. A missing sign makes the
// whole value null: the magnitude alone is meaningless.
func NewTemperatureGroup(kind GroupKind, raw, sign, magnitude string) (*TemperatureGroup, error) {
	signV, err := Convert(sign, temperatureFields.Sign)
	if err != nil {
		return nil, err
	}
	val, err := Convert(magnitude, temperatureFields.Celsius)
	if err != nil {
		return nil, err
	}
	if signV.IsNull() {
		val = Null()
	} else if !val.IsNull() && signV.AsInt()%2 == 1 {
		val = Float(-val.AsFloat())
	}
	return &TemperatureGroup{kind: kind, Sign: signV, Celsius: val, raw: raw}, nil
}

func (g *TemperatureGroup) Kind() GroupKind { return g.kind }
func (g *TemperatureGroup) Raw() string     { return g.raw }

func (g *TemperatureGroup) Render() *Object {
	return NewObject().
		Set("group", string(g.kind)).
		Set("value", g.Celsius.Render()).
		Set("unit", "celsius").
		Set("sign", g.Sign.Render()).
		Set("original", g.raw)
}

// PressureGroup decodes a 4-digit pressure group (3PPPP station level,
// 4PPPP reduced to sea level), in tenths of hPa with the thousands digit
// omitted.
type PressureGroup struct {
	kind     GroupKind
	Pressure Value
	raw      string
}

var pressureFields = struct {
	Pressure FieldSpec
}{
	Pressure: FieldSpec{Name: "value", Base: BaseFloat, Hook: PressureScale},
}

// NewPressureGroup builds a pressure node from the PPPP sub-field.
func NewPressureGroup(kind GroupKind, raw, code string) (*PressureGroup, error) {
	v, err := Convert(code, pressureFields.Pressure)
	if err != nil {
		return nil, err
	}
	return &PressureGroup{kind: kind, Pressure: v, raw: raw}, nil
}

func (g *PressureGroup) Kind() GroupKind { return g.kind }
func (g *PressureGroup) Raw() string     { return g.raw }

func (g *PressureGroup) Render() *Object {
	return NewObject().
		Set("group", string(g.kind)).
		Set("value", g.Pressure.Render()).
		Set("unit", "hPa").
		Set("original", g.raw)
}

// PressureTendencyGroup decodes the 5appp group: the three-hour pressure
// tendency characteristic (code table 0200) and amount.
type PressureTendencyGroup struct {
	CharacteristicCode Value
	Characteristic     Value // code table 0200 label
	Amount             Value // hPa
	raw                string
}

var tendencyFields = struct {
	Amount FieldSpec
}{
	Amount: FieldSpec{Name: "amount", Base: BaseFloat, Hook: ScaleTenth},
}

// NewPressureTendencyGroup builds the tendency node; the characteristic
// lookup happens in the builder.
func NewPressureTendencyGroup(raw string, charCode, characteristic Value, amount string) (*PressureTendencyGroup, error) {
	v, err := Convert(amount, tendencyFields.Amount)
	if err != nil {
		return nil, err
	}
	return &PressureTendencyGroup{
		CharacteristicCode: charCode,
		Characteristic:     characteristic,
		Amount:             v,
		raw:                raw,
	}, nil
}

func (g *PressureTendencyGroup) Kind() GroupKind { return GroupPressureTendency }
func (g *PressureTendencyGroup) Raw() string     { return g.raw }

func (g *PressureTendencyGroup) Render() *Object {
	return NewObject().
		Set("group", string(GroupPressureTendency)).
		Set("characteristic", g.Characteristic.Render()).
		Set("characteristic_code", g.CharacteristicCode.Render()).
		Set("amount", g.Amount.Render()).
		Set("unit", "hPa").
		Set("original", g.raw)
}

// PrecipitationGroup decodes the 6RRRt group: amount per code table 3590
// and the reference period selected by the duration indicator within the
// group itself (code table 4019).
type PrecipitationGroup struct {
	kind         GroupKind
	Amount       Value // millimetres
	DurationCode Value
	Duration     Value // code table 4019 label
	raw          string
}

var precipitationFields = struct {
	Amount FieldSpec
}{
	Amount: FieldSpec{Name: "amount", Base: BaseInt, Hook: PrecipitationMillimetres},
}

// NewPrecipitationGroup builds a precipitation node; the duration lookup
// happens in the builder because it reads the indicator digit.
func NewPrecipitationGroup(kind GroupKind, raw, amount string, durationCode, duration Value) (*PrecipitationGroup, error) {
	v, err := Convert(amount, precipitationFields.Amount)
	if err != nil {
		return nil, err
	}
	return &PrecipitationGroup{
		kind:         kind,
		Amount:       v,
		DurationCode: durationCode,
		Duration:     duration,
		raw:          raw,
	}, nil
}

func (g *PrecipitationGroup) Kind() GroupKind { return g.kind }
func (g *PrecipitationGroup) Raw() string     { return g.raw }

func (g *PrecipitationGroup) Render() *Object {
	return NewObject().
		Set("group", string(g.kind)).
		Set("amount", g.Amount.Render()).
		Set("unit", "mm").
		Set("duration", g.Duration.Render()).
		Set("duration_code", g.DurationCode.Render()).
		Set("original", g.raw)
}

// WeatherGroup decodes the 7wwW1W2 group: present weather (code table
// 4677) and two past-weather codes (code table 4561). All fields are
// table lookups resolved by the builder.
type WeatherGroup struct {
	PresentCode     Value
	Present         Value
	PresentCategory Value
	Past1Code       Value
	Past1           Value
	Past2Code       Value
	Past2           Value
	raw             string
}

// NewWeatherGroup assembles the weather node from resolved lookups.
func NewWeatherGroup(raw string, presentCode, present, presentCategory, past1Code, past1, past2Code, past2 Value) *WeatherGroup {
	return &WeatherGroup{
		PresentCode:     presentCode,
		Present:         present,
		PresentCategory: presentCategory,
		Past1Code:       past1Code,
		Past1:           past1,
		Past2Code:       past2Code,
		Past2:           past2,
		raw:             raw,
	}
}

func (g *WeatherGroup) Kind() GroupKind { return GroupWeather }
func (g *WeatherGroup) Raw() string     { return g.raw }

func (g *WeatherGroup) Render() *Object {
	return NewObject().
		Set("group", string(GroupWeather)).
		Set("present_weather", g.Present.Render()).
		Set("present_weather_code", g.PresentCode.Render()).
		Set("present_weather_category", g.PresentCategory.Render()).
		Set("past_weather_1", g.Past1.Render()).
		Set("past_weather_1_code", g.Past1Code.Render()).
		Set("past_weather_2", g.Past2.Render()).
		Set("past_weather_2_code", g.Past2Code.Render()).
		Set("original", g.raw)
}

// CloudGroup decodes the 8NhCLCMCH group: low/middle cloud amount and
// the cloud genera of the three levels.
type CloudGroup struct {
	AmountCode Value
	Amount     Value // code table 2700 label
	LowCode    Value
	Low        Value
	MidCode    Value
	Mid        Value
	HighCode   Value
	High       Value
	raw        string
}

// NewCloudGroup assembles the cloud node from resolved lookups.
func NewCloudGroup(raw string, amountCode, amount, lowCode, low, midCode, mid, highCode, high Value) *CloudGroup {
	return &CloudGroup{
		AmountCode: amountCode,
		Amount:     amount,
		LowCode:    lowCode,
		Low:        low,
		MidCode:    midCode,
		Mid:        mid,
		HighCode:   highCode,
		High:       high,
		raw:        raw,
	}
}

func (g *CloudGroup) Kind() GroupKind { return GroupCloudInformation }
func (g *CloudGroup) Raw() string     { return g.raw }

func (g *CloudGroup) Render() *Object {
	return NewObject().
		Set("group", string(GroupCloudInformation)).
		Set("low_cloud_amount", g.Amount.Render()).
		Set("low_cloud_amount_code", g.AmountCode.Render()).
		Set("low_cloud_type", g.Low.Render()).
		Set("low_cloud_type_code", g.LowCode.Render()).
		Set("mid_cloud_type", g.Mid.Render()).
		Set("mid_cloud_type_code", g.MidCode.Render()).
		Set("high_cloud_type", g.High.Render()).
		Set("high_cloud_type_code", g.HighCode.Render()).
		Set("original", g.raw)
}

// ObservationTimeGroup decodes the 9GGgg group: the actual time of
// observation in hours and minutes UTC.
type ObservationTimeGroup struct {
	Hour   Value
	Minute Value
	raw    string
}

var observationTimeFields = struct {
	Hour   FieldSpec
	Minute FieldSpec
}{
	Hour:   FieldSpec{Name: "hour", Base: BaseInt},
	Minute: FieldSpec{Name: "minute", Base: BaseInt},
}

// NewObservationTimeGroup builds the observation-time node.
func NewObservationTimeGroup(raw, hour, minute string) (*ObservationTimeGroup, error) {
	h, err := Convert(hour, observationTimeFields.Hour)
	if err != nil {
		return nil, err
	}
	m, err := Convert(minute, observationTimeFields.Minute)
	if err != nil {
		return nil, err
	}
	return &ObservationTimeGroup{Hour: h, Minute: m, raw: raw}, nil
}

func (g *ObservationTimeGroup) Kind() GroupKind { return GroupObservationTime }
func (g *ObservationTimeGroup) Raw() string     { return g.raw }

func (g *ObservationTimeGroup) Render() *Object {
	return NewObject().
		Set("group", string(GroupObservationTime)).
		Set("hour", g.Hour.Render()).
		Set("minute", g.Minute.Render()).
		Set("original", g.raw)
}

// GroundStateGroup decodes the section 3 3Ejjj group: state of the
// ground without snow or ice cover (code table 0901). The jjj digits
// carry regionally defined data and are kept as a raw code.
type GroundStateGroup struct {
	StateCode    Value
	State        Value // code table 0901 label
	RegionalCode Value
	raw          string
}

var groundStateFields = struct {
	Regional FieldSpec
}{
	Regional: FieldSpec{Name: "regional_code", Base: BaseString},
}

// NewGroundStateGroup builds the ground-state node.
func NewGroundStateGroup(raw string, stateCode, state Value, regional string) (*GroundStateGroup, error) {
	r, err := Convert(regional, groundStateFields.Regional)
	if err != nil {
		return nil, err
	}
	return &GroundStateGroup{StateCode: stateCode, State: state, RegionalCode: r, raw: raw}, nil
}

func (g *GroundStateGroup) Kind() GroupKind { return GroupGroundState }
func (g *GroundStateGroup) Raw() string     { return g.raw }

func (g *GroundStateGroup) Render() *Object {
	return NewObject().
		Set("group", string(GroupGroundState)).
		Set("state", g.State.Render()).
		Set("state_code", g.StateCode.Render()).
		Set("regional_code", g.RegionalCode.Render()).
		Set("original", g.raw)
}

// SnowCoverGroup decodes the section 3 4Esss group: state of the ground
// with snow or ice (code table 0975) and snow depth in centimetres.
type SnowCoverGroup struct {
	StateCode Value
	State     Value // code table 0975 label
	Depth     Value // centimetres
	raw       string
}

var snowCoverFields = struct {
	Depth FieldSpec
}{
	Depth: FieldSpec{Name: "depth", Base: BaseInt},
}

// NewSnowCoverGroup builds the snow-cover node.
func NewSnowCoverGroup(raw string, stateCode, state Value, depth string) (*SnowCoverGroup, error) {
	d, err := Convert(depth, snowCoverFields.Depth)
	if err != nil {
		return nil, err
	}
	return &SnowCoverGroup{StateCode: stateCode, State: state, Depth: d, raw: raw}, nil
}

func (g *SnowCoverGroup) Kind() GroupKind { return GroupSnowCover }
func (g *SnowCoverGroup) Raw() string     { return g.raw }

func (g *SnowCoverGroup) Render() *Object {
	return NewObject().
		Set("group", string(GroupSnowCover)).
		Set("state", g.State.Render()).
		Set("state_code", g.StateCode.Render()).
		Set("depth_cm", g.Depth.Render()).
		Set("original", g.raw)
}

// EvaporationGroup decodes the section 3 5EEEi group: daily evaporation
// or evapotranspiration in tenths of a millimetre, with the instrument
// or crop type indicator (code table 1806).
type EvaporationGroup struct {
	Amount         Value // millimetres
	InstrumentCode Value
	Instrument     Value // code table 1806 label
	Category       Value // evaporation vs evapotranspiration
	raw            string
}

var evaporationFields = struct {
	Amount FieldSpec
}{
	Amount: FieldSpec{Name: "amount", Base: BaseFloat, Hook: ScaleTenth},
}

// NewEvaporationGroup builds the evaporation node.
func NewEvaporationGroup(raw, amount string, instrumentCode, instrument, category Value) (*EvaporationGroup, error) {
	v, err := Convert(amount, evaporationFields.Amount)
	if err != nil {
		return nil, err
	}
	return &EvaporationGroup{
		Amount:         v,
		InstrumentCode: instrumentCode,
		Instrument:     instrument,
		Category:       category,
		raw:            raw,
	}, nil
}

func (g *EvaporationGroup) Kind() GroupKind { return GroupEvaporation }
func (g *EvaporationGroup) Raw() string     { return g.raw }

func (g *EvaporationGroup) Render() *Object {
	return NewObject().
		Set("group", string(GroupEvaporation)).
		Set("amount", g.Amount.Render()).
		Set("unit", "mm").
		Set("instrument", g.Instrument.Render()).
		Set("instrument_code", g.InstrumentCode.Render()).
		Set("category", g.Category.Render()).
		Set("original", g.raw)
}

// Precipitation24Group decodes the section 3 7RRRR group: total
// precipitation over the preceding 24 hours in tenths of a millimetre,
// 9999 meaning a trace.
type Precipitation24Group struct {
	Amount Value // millimetres
	raw    string
}

var precipitation24Fields = struct {
	Amount FieldSpec
}{
	Amount: FieldSpec{Name: "amount", Base: BaseInt, Hook: Precipitation24Millimetres},
}

// NewPrecipitation24Group builds the 24-hour precipitation node.
func NewPrecipitation24Group(raw, amount string) (*Precipitation24Group, error) {
	v, err := Convert(amount, precipitation24Fields.Amount)
	if err != nil {
		return nil, err
	}
	return &Precipitation24Group{Amount: v, raw: raw}, nil
}

func (g *Precipitation24Group) Kind() GroupKind { return GroupPrecipitation24h }
func (g *Precipitation24Group) Raw() string     { return g.raw }

func (g *Precipitation24Group) Render() *Object {
	return NewObject().
		Set("group", string(GroupPrecipitation24h)).
		Set("amount", g.Amount.Render()).
		Set("unit", "mm").
		Set("duration", "24 hours").
		Set("original", g.raw)
}

// CloudLayerGroup decodes a section 3 8NChshs group: amount and genus of
// one cloud layer plus the height of its base (code table 1677).
type CloudLayerGroup struct {
	AmountCode Value
	Amount     Value // code table 2700 label
	TypeCode   Value
	CloudType  Value // code table 0500 label
	HeightCode Value
	Height     Value // metres
	raw        string
}

var cloudLayerFields = struct {
	HeightCode FieldSpec
	Height     FieldSpec
}{
	HeightCode: FieldSpec{Name: "height_code", Base: BaseString},
	Height:     FieldSpec{Name: "height", Base: BaseInt, Hook: CloudHeightMetres},
}

// NewCloudLayerGroup builds a cloud-layer node.
func NewCloudLayerGroup(raw string, amountCode, amount, typeCode, cloudType Value, height string) (*CloudLayerGroup, error) {
	code, err := Convert(height, cloudLayerFields.HeightCode)
	if err != nil {
		return nil, err
	}
	metres, err := Convert(height, cloudLayerFields.Height)
	if err != nil {
		return nil, err
	}
	return &CloudLayerGroup{
		AmountCode: amountCode,
		Amount:     amount,
		TypeCode:   typeCode,
		CloudType:  cloudType,
		HeightCode: code,
		Height:     metres,
		raw:        raw,
	}, nil
}

func (g *CloudLayerGroup) Kind() GroupKind { return GroupCloudLayer }
func (g *CloudLayerGroup) Raw() string     { return g.raw }

func (g *CloudLayerGroup) Render() *Object {
	return NewObject().
		Set("group", string(GroupCloudLayer)).
		Set("amount", g.Amount.Render()).
		Set("amount_code", g.AmountCode.Render()).
		Set("type", g.CloudType.Render()).
		Set("type_code", g.TypeCode.Render()).
		Set("height_m", g.Height.Render()).
		Set("height_code", g.HeightCode.Render()).
		Set("original", g.raw)
}

// ShipMovementGroup decodes the 222Dsvs section marker's payload digits:
// direction and speed of ship movement. Land stations report them as
// zeros or placeholders; the digits are kept as raw codes.
type ShipMovementGroup struct {
	DirectionCode Value
	SpeedCode     Value
	raw           string
}

var shipMovementFields = struct {
	Direction FieldSpec
	Speed     FieldSpec
}{
	Direction: FieldSpec{Name: "direction_code", Base: BaseString},
	Speed:     FieldSpec{Name: "speed_code", Base: BaseString},
}

// NewShipMovementGroup builds the ship-movement node.
func NewShipMovementGroup(raw, direction, speed string) (*ShipMovementGroup, error) {
	d, err := Convert(direction, shipMovementFields.Direction)
	if err != nil {
		return nil, err
	}
	s, err := Convert(speed, shipMovementFields.Speed)
	if err != nil {
		return nil, err
	}
	return &ShipMovementGroup{DirectionCode: d, SpeedCode: s, raw: raw}, nil
}

func (g *ShipMovementGroup) Kind() GroupKind { return GroupShipMovement }
func (g *ShipMovementGroup) Raw() string     { return g.raw }

func (g *ShipMovementGroup) Render() *Object {
	return NewObject().
		Set("group", string(GroupShipMovement)).
		Set("direction_code", g.DirectionCode.Render()).
		Set("speed_code", g.SpeedCode.Render()).
		Set("original", g.raw)
}
