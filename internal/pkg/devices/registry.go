package devices

// Role says whether a model code belongs to a hub or a subdevice entry in
// the device listing.
type Role int

const (
	RoleHub Role = iota
	RoleSubDevice
)

// Descriptor describes one known hardware model.
type Descriptor struct {
	Description string
	Role        Role
	New         func() Device
}

// modelCodes maps the vendor-assigned model code to its device variant.
// The codes are empirical; unknown codes degrade to a generic hub or are
// dropped by the tree builder, never failing the whole fetch.
var modelCodes = map[int]Descriptor{
	264: {
		Description: "Irrigation Display Hub",
		Role:        RoleHub,
		New:         func() Device { return &DisplayHub{} },
	},
	72: {
		Description: "Soil Moisture Sensor",
		Role:        RoleSubDevice,
		New:         func() Device { return &SoilMoistureSensor{} },
	},
	87: {
		Description: "High Precision Rain Sensor",
		Role:        RoleSubDevice,
		New:         func() Device { return &RainSensor{} },
	},
	262: {
		Description: "Outdoor Air Humidity Sensor",
		Role:        RoleSubDevice,
		New:         func() Device { return &AirSensor{} },
	},
	261: {
		Description: "2-Zone Water Timer",
		Role:        RoleSubDevice,
		New:         func() Device { return &ZoneTimer{} },
	},
}

// Resolve looks a model code up in the registry. It never fails; the caller
// decides how to degrade on a miss.
func Resolve(modelCode int) (Descriptor, bool) {
	desc, ok := modelCodes[modelCode]
	return desc, ok
}
