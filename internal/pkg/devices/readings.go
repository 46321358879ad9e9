package devices

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gosimple/slug"

	"github.com/anicoll/homgar-integration/internal/pkg/model"
)

// PublisherDevice maps a decoded device to the identity the publishers use.
func PublisherDevice(d Device) model.Device {
	b := d.Base()
	return model.Device{
		ID:    strconv.FormatInt(b.DID, 10),
		Model: b.Model,
		Name:  b.Name,
	}
}

func newReading(name string, unit model.NumericUnit, value string) model.DeviceStatus {
	return model.DeviceStatus{
		Name:  name,
		Slug:  strings.Replace(slug.Make(name), "-", "_", -1),
		Unit:  unit,
		Value: &value,
		Dirty: true,
	}
}

func intReading(name string, unit model.NumericUnit, value *int) model.DeviceStatus {
	return newReading(name, unit, strconv.Itoa(*value))
}

func optIntReading(name string, unit model.NumericUnit, value *int) []model.DeviceStatus {
	if value == nil {
		return nil
	}
	return []model.DeviceStatus{intReading(name, unit, value)}
}

func optFloatReading(name string, unit model.NumericUnit, value *float64) []model.DeviceStatus {
	if value == nil {
		return nil
	}
	return []model.DeviceStatus{newReading(name, unit, fmt.Sprintf("%.1f", *value))}
}

// optTempReading publishes a milli-Kelvin field as degrees Celsius.
func optTempReading(name string, milliKelvin *int) []model.DeviceStatus {
	if milliKelvin == nil {
		return nil
	}
	celsius := float64(*milliKelvin)*1e-3 - 273.15
	return []model.DeviceStatus{newReading(name, model.NumericUnitDegreeC, fmt.Sprintf("%.1f", celsius))}
}

func optBoolReading(name string, value *bool) []model.DeviceStatus {
	if value == nil {
		return nil
	}
	v := "0"
	if *value {
		v = "1"
	}
	return []model.DeviceStatus{newReading(name, model.NumericUnitNone, v)}
}
