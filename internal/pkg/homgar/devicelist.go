package homgar

import (
	"context"
	"net/url"
	"strconv"

	"github.com/anicoll/homgar-integration/internal/pkg/devices"
	"github.com/anicoll/homgar-integration/internal/pkg/model"
)

// GetDevicesForHome fetches the device listing of one home and resolves it
// into hub trees. Subdevices with unknown model codes are dropped with a
// warning; hubs with unknown codes degrade to the generic hub variant.
func (s *service) GetDevicesForHome(ctx context.Context, hid int64) ([]devices.HubDevice, error) {
	var listing []model.DeviceListing
	if err := s.getJSON(ctx, "/app/device/getDeviceByHid", url.Values{
		"hid": []string{strconv.FormatInt(hid, 10)},
	}, &listing); err != nil {
		return nil, err
	}
	return devices.BuildTree(listing), nil
}
