package model

// NumericUnit is the unit of measurement attached to a published datapoint.
type NumericUnit string

const (
	NumericUnitDegreeC    NumericUnit = "°C"
	NumericUnitPercent    NumericUnit = "%"
	NumericUnitPascal     NumericUnit = "Pa"
	NumericUnitLux        NumericUnit = "lx"
	NumericUnitMillimetre NumericUnit = "mm"
	NumericUnitDbm        NumericUnit = "dBm"
	NumericUnitNone       NumericUnit = ""
)

type (
	TextSensor  string
	TextSensorz []TextSensor
)

const (
	ConnectedTextSensor    TextSensor = "connected"
	BatteryStateTextSensor TextSensor = "battery_state"
)

var TextSensors = TextSensorz{
	ConnectedTextSensor,
	BatteryStateTextSensor,
}

func (t TextSensor) String() string {
	return string(t)
}

func (ts TextSensorz) HasSlug(slug string) bool {
	for _, t := range ts {
		if t.String() == slug {
			return true
		}
	}
	return false
}
