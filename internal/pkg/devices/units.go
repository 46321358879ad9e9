package devices

import (
	"math"
	"regexp"
	"strconv"
)

// statsValueRegex matches the recurring "current(max/min/trend)" encoding,
// e.g. "781(781/723/1)". The whole string must match.
var statsValueRegex = regexp.MustCompile(`^(\d+)\((\d+)/(\d+)/(\d+)\)$`)

// StatsValue is a decoded "current(max/min/trend)" tuple.
type StatsValue struct {
	Current int
	Max     int
	Min     int
	Trend   int
}

// ParseStatsValue decodes a "current(max/min/trend)" string. The second
// return value is false if s does not match the pattern exactly; partial
// matches are not attempted.
func ParseStatsValue(s string) (StatsValue, bool) {
	m := statsValueRegex.FindStringSubmatch(s)
	if m == nil {
		return StatsValue{}, false
	}
	current, _ := strconv.Atoi(m[1])
	maxv, _ := strconv.Atoi(m[2])
	minv, _ := strconv.Atoi(m[3])
	trend, _ := strconv.Atoi(m[4])
	return StatsValue{Current: current, Max: maxv, Min: minv, Trend: trend}, true
}

// TempToMilliKelvin converts a temperature in tenths of a degree Fahrenheit,
// as reported on the wire, to milli-Kelvin.
func TempToMilliKelvin(tenthsFahrenheit int) int {
	return int(math.Round(1000 * ((float64(tenthsFahrenheit)*0.1-32)*5/9 + 273.15)))
}

// statsToInts decodes a stats tuple into four nullable fields. A string that
// does not match the pattern yields four nils; this is the deliberate
// give-up-cleanly policy for unrecognised formats.
func statsToInts(s string) (current, maxv, minv, trend *int) {
	sv, ok := ParseStatsValue(s)
	if !ok {
		return nil, nil, nil, nil
	}
	return &sv.Current, &sv.Max, &sv.Min, &sv.Trend
}

// tempStatsToMilliKelvin decodes a stats tuple of tenths-Fahrenheit values
// into milli-Kelvin. All four values go through the same conversion.
func tempStatsToMilliKelvin(s string) (current, maxv, minv, trend *int) {
	sv, ok := ParseStatsValue(s)
	if !ok {
		return nil, nil, nil, nil
	}
	c, ma, mi, tr := TempToMilliKelvin(sv.Current), TempToMilliKelvin(sv.Max), TempToMilliKelvin(sv.Min), TempToMilliKelvin(sv.Trend)
	return &c, &ma, &mi, &tr
}
