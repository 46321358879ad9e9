package homgar

import (
	"context"
	"net/url"
	"strconv"

	"github.com/anicoll/homgar-integration/internal/pkg/devices"
	"github.com/anicoll/homgar-integration/internal/pkg/model"
)

// UpdateDeviceStatus fetches the current status of a hub's sensor network
// and applies every record to its owning device in the tree. Records that
// fail to decode are logged and skipped; the remaining records still apply.
func (s *service) UpdateDeviceStatus(ctx context.Context, hub devices.HubDevice) error {
	var data model.DeviceStatusData
	if err := s.getJSON(ctx, "/app/device/getDeviceStatus", url.Values{
		"mid": []string{strconv.FormatInt(hub.Base().MID, 10)},
	}, &data); err != nil {
		return err
	}
	devices.ApplyStatus(hub, data.SubDeviceStatus)
	return nil
}
