package devices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_KnownModels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code        int
		description string
		role        Role
		device      Device
	}{
		{code: 264, description: "Irrigation Display Hub", role: RoleHub, device: &DisplayHub{}},
		{code: 72, description: "Soil Moisture Sensor", role: RoleSubDevice, device: &SoilMoistureSensor{}},
		{code: 87, description: "High Precision Rain Sensor", role: RoleSubDevice, device: &RainSensor{}},
		{code: 262, description: "Outdoor Air Humidity Sensor", role: RoleSubDevice, device: &AirSensor{}},
		{code: 261, description: "2-Zone Water Timer", role: RoleSubDevice, device: &ZoneTimer{}},
	}

	for _, tc := range tests {
		desc, ok := Resolve(tc.code)
		require.True(t, ok, "model code %d should resolve", tc.code)
		assert.Equal(t, tc.description, desc.Description)
		assert.Equal(t, tc.role, desc.Role)
		assert.IsType(t, tc.device, desc.New())
	}
}

func TestResolve_UnknownModel(t *testing.T) {
	t.Parallel()

	_, ok := Resolve(999)
	assert.False(t, ok)
}
