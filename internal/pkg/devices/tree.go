package devices

import (
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/anicoll/homgar-integration/internal/pkg/model"
)

// BuildTree turns the raw device listing into resolved device trees. Input
// order of hubs and of subdevices within a hub is preserved. Hubs with an
// unknown model code degrade to the generic Hub; unknown subdevices are
// dropped after a warning.
func BuildTree(listing []model.DeviceListing) []HubDevice {
	return lo.Map(listing, func(rec model.DeviceListing, _ int) HubDevice {
		return buildHub(rec)
	})
}

func buildHub(rec model.DeviceListing) HubDevice {
	subdevices := lo.FilterMap(rec.SubDevices, func(sub model.DeviceListing, _ int) (Device, bool) {
		if sub.DID == 1 {
			// Duplicate of the hub's own display entry.
			return nil, false
		}
		return buildSubDevice(sub)
	})

	var hub HubDevice
	desc, ok := Resolve(rec.ModelCode)
	if !ok || desc.Role != RoleHub {
		zap.L().Warn("unknown hub model, using generic hub",
			zap.String("model", rec.Model), zap.Int("model_code", rec.ModelCode))
		hub = &Hub{}
	} else {
		hub = desc.New().(HubDevice)
		hub.Base().desc = desc.Description
	}
	fillBase(hub, rec)
	hub.Base().Address = hubAddress
	hub.Tree().Subdevices = subdevices
	return hub
}

func buildSubDevice(rec model.DeviceListing) (Device, bool) {
	desc, ok := Resolve(rec.ModelCode)
	if !ok || desc.Role != RoleSubDevice {
		zap.L().Warn("unknown subdevice model, skipping",
			zap.String("model", rec.Model), zap.Int("model_code", rec.ModelCode))
		return nil, false
	}
	dev := desc.New()
	dev.Base().desc = desc.Description
	fillBase(dev, rec)
	return dev, true
}

func fillBase(dev Device, rec model.DeviceListing) {
	b := dev.Base()
	b.Model = rec.Model
	b.ModelCode = rec.ModelCode
	b.Name = rec.Name
	b.DID = rec.DID
	b.MID = rec.MID
	b.Address = rec.Address
	b.PortNumber = rec.PortNumber
	b.Alerts = rec.Alerts
}
