package devices

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/anicoll/homgar-integration/internal/pkg/model"
)

// hubAddress is the fixed network address of every hub.
const hubAddress = 1

// HubDevice is a Device that gateways a sensor network and owns subdevices.
type HubDevice interface {
	Device
	Tree() *Hub
}

// Hub is the generic gateway device. Models without a specialised variant
// resolve to this type; its Dxx decode only extracts the general part.
type Hub struct {
	DeviceBase
	Subdevices []Device
}

func (h *Hub) Tree() *Hub { return h }

func (h *Hub) StatusIDs() []string {
	return []string{h.statusID()}
}

func (h *Hub) ApplyStatus(id, value string) error {
	if id != h.statusID() {
		return nil
	}
	return h.decodeDValue(value, nil)
}

func (h *Hub) Readings() []model.DeviceStatus {
	return h.baseReadings()
}

func (h *Hub) String() string {
	return fmt.Sprintf("%s %q (DID %d) with %d subdevices", h.Description(), h.Name, h.DID, len(h.Subdevices))
}

// DisplayHub is the RainPoint irrigation display hub (model code 264). It
// carries its own temperature/humidity/pressure sensors and reports wifi and
// battery state through the dedicated "state" and "connected" status ids.
type DisplayHub struct {
	Hub

	WifiRSSI     *int
	BatteryState *int
	Connected    *bool

	TempMKCurrent   *int
	TempMKDailyMax  *int
	TempMKDailyMin  *int
	TempTrend       *int
	HumCurrent      *int
	HumDailyMax     *int
	HumDailyMin     *int
	HumTrend        *int
	PressPaCurrent  *int
	PressPaDailyMax *int
	PressPaDailyMin *int
	PressTrend      *int
}

func (h *DisplayHub) StatusIDs() []string {
	return []string{"connected", "state", h.statusID()}
}

func (h *DisplayHub) ApplyStatus(id, value string) error {
	switch id {
	case "state":
		// "<batteryState>,<wifiRssiDbm>"
		fields := strings.Split(value, ",")
		if len(fields) != 2 {
			return fmt.Errorf("%w: expected 2 state fields, got %d in %q", ErrMalformedStatus, len(fields), value)
		}
		battery, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("%w: battery state %q is not an integer", ErrMalformedStatus, fields[0])
		}
		wifi, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("%w: wifi rssi %q is not an integer", ErrMalformedStatus, fields[1])
		}
		h.BatteryState = &battery
		h.WifiRSSI = &wifi
		return nil
	case "connected":
		connected := value == "1"
		h.Connected = &connected
		return nil
	case h.statusID():
		return h.decodeDValue(value, h.decodeSpecific)
	}
	return nil
}

// decodeSpecific decodes the display hub's Dxx specific part.
//
// Observed example value:
//
//	781(781/723/1),52(64/50/1),P=10213(10222/10205/1),
//
// temp[.1F](day-max/day-min/trend),humidity[%](...),P=pressure[Pa](...)
func (h *DisplayHub) decodeSpecific(s string) error {
	fields := strings.Split(s, ",")
	if len(fields) < 3 {
		return fmt.Errorf("%w: expected at least 3 specific fields, got %d in %q", ErrMalformedStatus, len(fields), s)
	}
	h.TempMKCurrent, h.TempMKDailyMax, h.TempMKDailyMin, h.TempTrend = tempStatsToMilliKelvin(fields[0])
	h.HumCurrent, h.HumDailyMax, h.HumDailyMin, h.HumTrend = statsToInts(fields[1])
	press, ok := strings.CutPrefix(fields[2], "P=")
	if !ok {
		return fmt.Errorf("%w: pressure field %q is missing its P= marker", ErrMalformedStatus, fields[2])
	}
	h.PressPaCurrent, h.PressPaDailyMax, h.PressPaDailyMin, h.PressTrend = statsToInts(press)
	return nil
}

func (h *DisplayHub) Readings() []model.DeviceStatus {
	readings := h.baseReadings()
	readings = append(readings, optIntReading("Wifi RSSI", model.NumericUnitDbm, h.WifiRSSI)...)
	readings = append(readings, optIntReading("Battery State", model.NumericUnitNone, h.BatteryState)...)
	readings = append(readings, optBoolReading("Connected", h.Connected)...)
	readings = append(readings, optTempReading("Temperature", h.TempMKCurrent)...)
	readings = append(readings, optTempReading("Temperature Daily Max", h.TempMKDailyMax)...)
	readings = append(readings, optTempReading("Temperature Daily Min", h.TempMKDailyMin)...)
	readings = append(readings, optIntReading("Humidity", model.NumericUnitPercent, h.HumCurrent)...)
	readings = append(readings, optIntReading("Humidity Daily Max", model.NumericUnitPercent, h.HumDailyMax)...)
	readings = append(readings, optIntReading("Humidity Daily Min", model.NumericUnitPercent, h.HumDailyMin)...)
	readings = append(readings, optIntReading("Pressure", model.NumericUnitPascal, h.PressPaCurrent)...)
	readings = append(readings, optIntReading("Pressure Daily Max", model.NumericUnitPascal, h.PressPaDailyMax)...)
	readings = append(readings, optIntReading("Pressure Daily Min", model.NumericUnitPascal, h.PressPaDailyMin)...)
	return readings
}

func (h *DisplayHub) String() string {
	s := h.Hub.String()
	if h.TempMKCurrent != nil && h.HumCurrent != nil && h.PressPaCurrent != nil {
		s += fmt.Sprintf(": %.1fK / %d%% / %dPa", float64(*h.TempMKCurrent)*1e-3, *h.HumCurrent, *h.PressPaCurrent)
	}
	return s
}
