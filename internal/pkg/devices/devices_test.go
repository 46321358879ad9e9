package devices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayHub_ApplyStatus_DValue(t *testing.T) {
	t.Parallel()
	hub := &DisplayHub{}
	hub.Address = hubAddress

	err := hub.ApplyStatus("D01", "1,-67,1;781(781/723/1),52(64/50/1),P=10213(10222/10205/1),")
	require.NoError(t, err)

	require.NotNil(t, hub.RFRSSI)
	assert.Equal(t, -67, *hub.RFRSSI)

	require.NotNil(t, hub.TempMKCurrent)
	assert.Equal(t, TempToMilliKelvin(781), *hub.TempMKCurrent)
	assert.Equal(t, TempToMilliKelvin(781), *hub.TempMKDailyMax)
	assert.Equal(t, TempToMilliKelvin(723), *hub.TempMKDailyMin)
	assert.Equal(t, TempToMilliKelvin(1), *hub.TempTrend)

	assert.Equal(t, 52, *hub.HumCurrent)
	assert.Equal(t, 64, *hub.HumDailyMax)
	assert.Equal(t, 50, *hub.HumDailyMin)
	assert.Equal(t, 1, *hub.HumTrend)

	assert.Equal(t, 10213, *hub.PressPaCurrent)
	assert.Equal(t, 10222, *hub.PressPaDailyMax)
	assert.Equal(t, 10205, *hub.PressPaDailyMin)
	assert.Equal(t, 1, *hub.PressTrend)
}

func TestDisplayHub_ApplyStatus_StateAndConnected(t *testing.T) {
	t.Parallel()
	hub := &DisplayHub{}
	hub.Address = hubAddress

	require.NoError(t, hub.ApplyStatus("state", "3,-55"))
	require.NotNil(t, hub.BatteryState)
	assert.Equal(t, 3, *hub.BatteryState)
	assert.Equal(t, -55, *hub.WifiRSSI)

	require.NoError(t, hub.ApplyStatus("connected", "1"))
	require.NotNil(t, hub.Connected)
	assert.True(t, *hub.Connected)

	require.NoError(t, hub.ApplyStatus("connected", "0"))
	assert.False(t, *hub.Connected)
}

func TestDisplayHub_ApplyStatus_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		id    string
		value string
	}{
		{name: "missing semicolon", id: "D01", value: "1,-67,1"},
		{name: "extra semicolon", id: "D01", value: "1,-67,1;781(781/723/1),52(64/50/1),P=1(1/1/1),;x"},
		{name: "wrong general arity", id: "D01", value: "1,-67;781(781/723/1),52(64/50/1),P=1(1/1/1),"},
		{name: "non numeric rssi", id: "D01", value: "1,abc,1;781(781/723/1),52(64/50/1),P=1(1/1/1),"},
		{name: "too few specific fields", id: "D01", value: "1,-67,1;781(781/723/1)"},
		{name: "missing pressure marker", id: "D01", value: "1,-67,1;781(781/723/1),52(64/50/1),10213(1/1/1),"},
		{name: "wrong state arity", id: "state", value: "3"},
		{name: "non numeric state", id: "state", value: "a,b"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hub := &DisplayHub{}
			hub.Address = hubAddress
			err := hub.ApplyStatus(tc.id, tc.value)
			assert.ErrorIs(t, err, ErrMalformedStatus)
		})
	}
}

// A failed decode must not clear fields set by an earlier successful decode.
func TestDisplayHub_FailedDecodeKeepsPreviousFields(t *testing.T) {
	t.Parallel()
	hub := &DisplayHub{}
	hub.Address = hubAddress

	require.NoError(t, hub.ApplyStatus("D01", "1,-67,1;781(781/723/1),52(64/50/1),P=10213(10222/10205/1),"))
	require.Error(t, hub.ApplyStatus("D01", "1,-67,1"))

	assert.Equal(t, TempToMilliKelvin(781), *hub.TempMKCurrent)
	assert.Equal(t, 52, *hub.HumCurrent)
	assert.Equal(t, 10213, *hub.PressPaCurrent)
}

// Stats tuples that do not match the pattern clear their fields to nil
// instead of failing the decode.
func TestDisplayHub_UnrecognisedStatsGivesUpCleanly(t *testing.T) {
	t.Parallel()
	hub := &DisplayHub{}
	hub.Address = hubAddress

	require.NoError(t, hub.ApplyStatus("D01", "1,-67,1;garbage,52(64/50/1),P=10213(10222/10205/1),"))
	assert.Nil(t, hub.TempMKCurrent)
	assert.Equal(t, 52, *hub.HumCurrent)
}

func TestDisplayHub_ApplyStatusIsIdempotent(t *testing.T) {
	t.Parallel()
	hub := &DisplayHub{}
	hub.Address = hubAddress

	const value = "1,-67,1;781(781/723/1),52(64/50/1),P=10213(10222/10205/1),"
	require.NoError(t, hub.ApplyStatus("D01", value))
	first := *hub

	require.NoError(t, hub.ApplyStatus("D01", value))
	assert.Equal(t, first.TempMKCurrent, hub.TempMKCurrent)
	assert.Equal(t, first.HumCurrent, hub.HumCurrent)
	assert.Equal(t, first.PressPaCurrent, hub.PressPaCurrent)
	assert.Equal(t, first.RFRSSI, hub.RFRSSI)
}

func TestSoilMoistureSensor_ApplyStatus(t *testing.T) {
	t.Parallel()
	sensor := &SoilMoistureSensor{}
	sensor.Address = 2

	require.NoError(t, sensor.ApplyStatus("D02", "1,-72,1;766,52,G=31351"))

	require.NotNil(t, sensor.RFRSSI)
	assert.Equal(t, -72, *sensor.RFRSSI)
	assert.Equal(t, TempToMilliKelvin(766), *sensor.TempMKCurrent)
	assert.Equal(t, 52, *sensor.MoistPercentCurrent)
	assert.InDelta(t, 3135.1, *sensor.LightLuxCurrent, 1e-9)
}

func TestSoilMoistureSensor_ApplyStatus_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{name: "wrong arity", value: "1,-72,1;766,52"},
		{name: "non numeric temp", value: "1,-72,1;abc,52,G=31351"},
		{name: "non numeric moisture", value: "1,-72,1;766,abc,G=31351"},
		{name: "missing light marker", value: "1,-72,1;766,52,31351"},
		{name: "non numeric light", value: "1,-72,1;766,52,G=abc"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sensor := &SoilMoistureSensor{}
			sensor.Address = 2
			assert.ErrorIs(t, sensor.ApplyStatus("D02", tc.value), ErrMalformedStatus)
		})
	}
}

func TestRainSensor_ApplyStatus(t *testing.T) {
	t.Parallel()
	sensor := &RainSensor{}
	sensor.Address = 3

	require.NoError(t, sensor.ApplyStatus("D03", "1,-70,1;R=270(0/0/270)"))

	assert.InDelta(t, 27.0, *sensor.RainfallMMTotal, 1e-9)
	assert.InDelta(t, 0.0, *sensor.RainfallMMHour, 1e-9)
	assert.InDelta(t, 0.0, *sensor.RainfallMMDaily, 1e-9)
	assert.InDelta(t, 27.0, *sensor.RainfallMM7Days, 1e-9)
}

func TestRainSensor_ApplyStatus_MissingMarker(t *testing.T) {
	t.Parallel()
	sensor := &RainSensor{}
	sensor.Address = 3
	assert.ErrorIs(t, sensor.ApplyStatus("D03", "1,-70,1;270(0/0/270)"), ErrMalformedStatus)
}

func TestAirSensor_ApplyStatus(t *testing.T) {
	t.Parallel()
	sensor := &AirSensor{}
	sensor.Address = 4

	require.NoError(t, sensor.ApplyStatus("D04", "1,-67,1;755(1020/588/1),54(91/24/1),"))

	assert.Equal(t, TempToMilliKelvin(755), *sensor.TempMKCurrent)
	assert.Equal(t, TempToMilliKelvin(1020), *sensor.TempMKDailyMax)
	assert.Equal(t, TempToMilliKelvin(588), *sensor.TempMKDailyMin)
	assert.Equal(t, TempToMilliKelvin(1), *sensor.TempTrend)
	assert.Equal(t, 54, *sensor.HumCurrent)
	assert.Equal(t, 91, *sensor.HumDailyMax)
	assert.Equal(t, 24, *sensor.HumDailyMin)
	assert.Equal(t, 1, *sensor.HumTrend)
}

// The 2-zone timer payload is only partially reverse engineered; the
// specific part must stay unparsed without erroring.
func TestZoneTimer_ApplyStatusIsNoOp(t *testing.T) {
	t.Parallel()
	timer := &ZoneTimer{}
	timer.Address = 5

	require.NoError(t, timer.ApplyStatus("D05", "1,-68,1;0,9,0,0,0,0|0,1291,0,0,0,0"))
	require.NotNil(t, timer.RFRSSI)
	assert.Equal(t, -68, *timer.RFRSSI)
}

func TestGenericHub_ApplyStatusIgnoresSpecific(t *testing.T) {
	t.Parallel()
	hub := &Hub{}
	hub.Address = hubAddress

	require.NoError(t, hub.ApplyStatus("D01", "1,-60,1;whatever,unparsed"))
	require.NotNil(t, hub.RFRSSI)
	assert.Equal(t, -60, *hub.RFRSSI)
}

// A second ';' is rejected before any decoding, even for devices that never
// look at the specific part.
func TestDecodeDValue_RejectsMultipleSeparators(t *testing.T) {
	t.Parallel()

	hub := &Hub{}
	hub.Address = hubAddress
	assert.ErrorIs(t, hub.ApplyStatus("D01", "1,-60,1;a;b"), ErrMalformedStatus)
	assert.Nil(t, hub.RFRSSI)

	timer := &ZoneTimer{}
	timer.Address = 5
	assert.ErrorIs(t, timer.ApplyStatus("D05", "1,-68,1;0,9;0,1291"), ErrMalformedStatus)
	assert.Nil(t, timer.RFRSSI)
}

func TestStatusIDs(t *testing.T) {
	t.Parallel()

	hub := &Hub{}
	hub.Address = hubAddress
	assert.Equal(t, []string{"D01"}, hub.StatusIDs())

	display := &DisplayHub{}
	display.Address = hubAddress
	assert.Equal(t, []string{"connected", "state", "D01"}, display.StatusIDs())

	sub := &SubDevice{}
	sub.Address = 7
	assert.Equal(t, []string{"D07"}, sub.StatusIDs())

	sub.Address = 12
	assert.Equal(t, []string{"D12"}, sub.StatusIDs())
}
