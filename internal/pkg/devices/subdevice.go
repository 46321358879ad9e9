package devices

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/anicoll/homgar-integration/internal/pkg/model"
)

// SubDevice is a sensor or actuator addressed within a hub's network.
type SubDevice struct {
	DeviceBase
}

func (d *SubDevice) StatusIDs() []string {
	return []string{d.statusID()}
}

func (d *SubDevice) ApplyStatus(id, value string) error {
	if id != d.statusID() {
		return nil
	}
	return d.decodeDValue(value, nil)
}

func (d *SubDevice) Readings() []model.DeviceStatus {
	return d.baseReadings()
}

func (d *SubDevice) String() string {
	return fmt.Sprintf("%s %q (DID %d) at address %d", d.Description(), d.Name, d.DID, d.Address)
}

// SoilMoistureSensor is the RainPoint soil moisture sensor (model code 72).
type SoilMoistureSensor struct {
	SubDevice

	TempMKCurrent       *int
	MoistPercentCurrent *int
	LightLuxCurrent     *float64
}

func (d *SoilMoistureSensor) ApplyStatus(id, value string) error {
	if id != d.statusID() {
		return nil
	}
	return d.decodeDValue(value, d.decodeSpecific)
}

// decodeSpecific decodes the soil sensor's Dxx specific part.
//
// Observed example value:
//
//	766,52,G=31351
//
// temp[.1F],soil-moisture[%],G=light[.1lux]
func (d *SoilMoistureSensor) decodeSpecific(s string) error {
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return fmt.Errorf("%w: expected 3 specific fields, got %d in %q", ErrMalformedStatus, len(fields), s)
	}
	temp, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("%w: temperature %q is not an integer", ErrMalformedStatus, fields[0])
	}
	moist, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("%w: soil moisture %q is not an integer", ErrMalformedStatus, fields[1])
	}
	lightStr, ok := strings.CutPrefix(fields[2], "G=")
	if !ok {
		return fmt.Errorf("%w: light field %q is missing its G= marker", ErrMalformedStatus, fields[2])
	}
	light, err := strconv.Atoi(lightStr)
	if err != nil {
		return fmt.Errorf("%w: light %q is not an integer", ErrMalformedStatus, lightStr)
	}

	tempMK := TempToMilliKelvin(temp)
	lightLux := float64(light) * 0.1
	d.TempMKCurrent = &tempMK
	d.MoistPercentCurrent = &moist
	d.LightLuxCurrent = &lightLux
	return nil
}

func (d *SoilMoistureSensor) Readings() []model.DeviceStatus {
	readings := d.baseReadings()
	readings = append(readings, optTempReading("Temperature", d.TempMKCurrent)...)
	readings = append(readings, optIntReading("Soil Moisture", model.NumericUnitPercent, d.MoistPercentCurrent)...)
	readings = append(readings, optFloatReading("Light", model.NumericUnitLux, d.LightLuxCurrent)...)
	return readings
}

func (d *SoilMoistureSensor) String() string {
	s := d.SubDevice.String()
	if d.TempMKCurrent != nil && d.MoistPercentCurrent != nil && d.LightLuxCurrent != nil {
		s += fmt.Sprintf(": %.1f°C / %d%% / %.1flx", float64(*d.TempMKCurrent)*1e-3-273.15, *d.MoistPercentCurrent, *d.LightLuxCurrent)
	}
	return s
}

// RainSensor is the RainPoint high precision rain sensor (model code 87).
type RainSensor struct {
	SubDevice

	RainfallMMTotal *float64
	RainfallMMHour  *float64
	RainfallMMDaily *float64
	RainfallMM7Days *float64
}

func (d *RainSensor) ApplyStatus(id, value string) error {
	if id != d.statusID() {
		return nil
	}
	return d.decodeDValue(value, d.decodeSpecific)
}

// decodeSpecific decodes the rain sensor's Dxx specific part.
//
// Observed example value:
//
//	R=270(0/0/270)
//
// R=total[.1mm](hour[.1mm]/24hours[.1mm]/7days[.1mm])
func (d *RainSensor) decodeSpecific(s string) error {
	stats, ok := strings.CutPrefix(s, "R=")
	if !ok {
		return fmt.Errorf("%w: rainfall field %q is missing its R= marker", ErrMalformedStatus, s)
	}
	sv, ok := ParseStatsValue(stats)
	if !ok {
		d.RainfallMMTotal, d.RainfallMMHour, d.RainfallMMDaily, d.RainfallMM7Days = nil, nil, nil, nil
		return nil
	}
	total, hour, daily, week := 0.1*float64(sv.Current), 0.1*float64(sv.Max), 0.1*float64(sv.Min), 0.1*float64(sv.Trend)
	d.RainfallMMTotal = &total
	d.RainfallMMHour = &hour
	d.RainfallMMDaily = &daily
	d.RainfallMM7Days = &week
	return nil
}

func (d *RainSensor) Readings() []model.DeviceStatus {
	readings := d.baseReadings()
	readings = append(readings, optFloatReading("Rainfall Total", model.NumericUnitMillimetre, d.RainfallMMTotal)...)
	readings = append(readings, optFloatReading("Rainfall Hour", model.NumericUnitMillimetre, d.RainfallMMHour)...)
	readings = append(readings, optFloatReading("Rainfall Daily", model.NumericUnitMillimetre, d.RainfallMMDaily)...)
	readings = append(readings, optFloatReading("Rainfall 7 Days", model.NumericUnitMillimetre, d.RainfallMM7Days)...)
	return readings
}

func (d *RainSensor) String() string {
	s := d.SubDevice.String()
	if d.RainfallMMTotal != nil {
		s += fmt.Sprintf(": %.1fmm total / %.1fmm 1h / %.1fmm 24h / %.1fmm 7days",
			*d.RainfallMMTotal, *d.RainfallMMHour, *d.RainfallMMDaily, *d.RainfallMM7Days)
	}
	return s
}

// AirSensor is the RainPoint outdoor air humidity sensor (model code 262).
type AirSensor struct {
	SubDevice

	TempMKCurrent  *int
	TempMKDailyMax *int
	TempMKDailyMin *int
	TempTrend      *int
	HumCurrent     *int
	HumDailyMax    *int
	HumDailyMin    *int
	HumTrend       *int
}

func (d *AirSensor) ApplyStatus(id, value string) error {
	if id != d.statusID() {
		return nil
	}
	return d.decodeDValue(value, d.decodeSpecific)
}

// decodeSpecific decodes the air sensor's Dxx specific part.
//
// Observed example value:
//
//	755(1020/588/1),54(91/24/1),
//
// temp[.1F](day-max/day-min/trend),humidity[%](day-max/day-min/trend)
func (d *AirSensor) decodeSpecific(s string) error {
	fields := strings.Split(s, ",")
	if len(fields) < 2 {
		return fmt.Errorf("%w: expected at least 2 specific fields, got %d in %q", ErrMalformedStatus, len(fields), s)
	}
	d.TempMKCurrent, d.TempMKDailyMax, d.TempMKDailyMin, d.TempTrend = tempStatsToMilliKelvin(fields[0])
	d.HumCurrent, d.HumDailyMax, d.HumDailyMin, d.HumTrend = statsToInts(fields[1])
	return nil
}

func (d *AirSensor) Readings() []model.DeviceStatus {
	readings := d.baseReadings()
	readings = append(readings, optTempReading("Temperature", d.TempMKCurrent)...)
	readings = append(readings, optTempReading("Temperature Daily Max", d.TempMKDailyMax)...)
	readings = append(readings, optTempReading("Temperature Daily Min", d.TempMKDailyMin)...)
	readings = append(readings, optIntReading("Humidity", model.NumericUnitPercent, d.HumCurrent)...)
	readings = append(readings, optIntReading("Humidity Daily Max", model.NumericUnitPercent, d.HumDailyMax)...)
	readings = append(readings, optIntReading("Humidity Daily Min", model.NumericUnitPercent, d.HumDailyMin)...)
	return readings
}

func (d *AirSensor) String() string {
	s := d.SubDevice.String()
	if d.TempMKCurrent != nil && d.HumCurrent != nil {
		s += fmt.Sprintf(": %.1f°C / %d%%", float64(*d.TempMKCurrent)*1e-3-273.15, *d.HumCurrent)
	}
	return s
}

// ZoneTimer is the RainPoint 2-zone water timer (model code 261).
//
// Its specific payload is only partially reverse engineered, e.g.
// "0,9,0,0,0,0|0,1291,0,0,0,0": the '|' separates the two zones and the
// second field per zone looks like last usage in tenths of litres. The
// remaining fields are unknown, so nothing is decoded.
type ZoneTimer struct {
	SubDevice
}

func (d *ZoneTimer) ApplyStatus(id, value string) error {
	if id != d.statusID() {
		return nil
	}
	return d.decodeDValue(value, d.decodeSpecific)
}

func (d *ZoneTimer) decodeSpecific(string) error {
	return nil
}
