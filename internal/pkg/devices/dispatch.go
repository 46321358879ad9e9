package devices

import (
	"go.uber.org/zap"

	"github.com/anicoll/homgar-integration/internal/pkg/model"
)

// ApplyStatus routes each status record to the device in the tree that
// declared interest in its id and applies the decode. Records with no owner
// are ignored; a record that fails to decode is logged and skipped without
// touching any other record's fields.
func ApplyStatus(hub HubDevice, statuses []model.SubDeviceStatus) {
	idMap := make(map[string]Device)
	for _, dev := range append([]Device{hub}, hub.Tree().Subdevices...) {
		for _, id := range dev.StatusIDs() {
			idMap[id] = dev
		}
	}

	for _, status := range statuses {
		dev, ok := idMap[status.ID]
		if !ok {
			continue
		}
		if err := dev.ApplyStatus(status.ID, status.Value); err != nil {
			zap.L().Warn("failed to decode device status",
				zap.String("status_id", status.ID),
				zap.Int64("did", dev.Base().DID),
				zap.Error(err))
		}
	}
}
