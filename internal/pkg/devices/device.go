package devices

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/anicoll/homgar-integration/internal/pkg/model"
)

// ErrMalformedStatus is wrapped by every status decode failure. A failed
// decode never clears fields written by an earlier successful decode.
var ErrMalformedStatus = errors.New("malformed status value")

// Device is implemented by hubs and subdevices. Status updates are routed by
// id: ApplyStatus is only ever called with an id the device returned from
// StatusIDs.
type Device interface {
	// Base exposes the identity and network attributes common to all devices.
	Base() *DeviceBase

	// StatusIDs returns the subDeviceStatus ids this device listens to.
	// Usually this is just Dxx where xx is the device address, but the
	// display hub has some additional special keys.
	StatusIDs() []string

	// ApplyStatus decodes one status record and updates the device readings
	// in place. Fields not covered by the record's id are left untouched.
	ApplyStatus(id, value string) error

	// Readings flattens the currently decoded values into publishable
	// datapoints. Fields that have not been decoded yet are omitted.
	Readings() []model.DeviceStatus

	fmt.Stringer
}

// Base carries the properties shared by every HomGar device.
type DeviceBase struct {
	Model      string
	ModelCode  int
	Name       string
	DID        int64 // unique identifier of this physical device
	MID        int64 // identifier of the sensor network the device belongs to
	Address    int   // address within the sensor network; hubs are always 1
	PortNumber int   // number of physical ports, e.g. 2 for the 2-zone timer
	Alerts     json.RawMessage

	RFRSSI *int // dBm, populated by the first status decode

	desc string
}

func (b *DeviceBase) Base() *DeviceBase { return b }

// Description returns the friendly model description assigned by the
// registry, or a generic placeholder for unresolved models.
func (b *DeviceBase) Description() string {
	if b.desc == "" {
		return "Unknown HomGar device"
	}
	return b.desc
}

// statusID returns the Dxx status id owned by this device's address.
func (b *DeviceBase) statusID() string {
	return fmt.Sprintf("D%02d", b.Address)
}

// decodeDValue decodes a Dxx status value: "<general>;<specific>". Exactly
// one ';' separator is required. The specific part is model dependent; a nil
// decoder leaves it untouched.
func (b *DeviceBase) decodeDValue(value string, specific func(string) error) error {
	parts := strings.Split(value, ";")
	if len(parts) != 2 {
		return fmt.Errorf("%w: expected exactly one ';' separator in %q", ErrMalformedStatus, value)
	}
	if err := b.decodeGeneralDValue(parts[0]); err != nil {
		return err
	}
	if specific == nil {
		return nil
	}
	return specific(parts[1])
}

// decodeGeneralDValue decodes the part before the ';', which has the same
// shape for every device: three comma-separated fields of which only the
// middle one (radio RSSI in dBm) has a known meaning.
func (b *DeviceBase) decodeGeneralDValue(s string) error {
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return fmt.Errorf("%w: expected 3 general fields, got %d in %q", ErrMalformedStatus, len(fields), s)
	}
	rssi, err := strconv.Atoi(fields[1])
	if err != nil {
		return fmt.Errorf("%w: rf rssi %q is not an integer", ErrMalformedStatus, fields[1])
	}
	b.RFRSSI = &rssi
	return nil
}

// baseReadings returns the datapoints every device variant shares.
func (b *DeviceBase) baseReadings() []model.DeviceStatus {
	if b.RFRSSI == nil {
		return nil
	}
	return []model.DeviceStatus{
		intReading("RF RSSI", model.NumericUnitDbm, b.RFRSSI),
	}
}
