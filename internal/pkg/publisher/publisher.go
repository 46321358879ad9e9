package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/anicoll/homgar-integration/internal/pkg/model"
)

var errAlreadyRegistered = errors.New("publisher already registered")

var (
	registeredPublishers = make(map[string]publisher)
	sensors              sync.Map
)

type publisher interface {
	// Write publishes the decoded datapoints to the sink.
	Write(ctx context.Context, data []map[string]any) error
	RegisterDevice(device *model.Device) error
}

func RegisterPublisher(name string, publisher publisher) error {
	if _, ok := registeredPublishers[name]; ok {
		return errAlreadyRegistered
	}
	registeredPublishers[name] = publisher
	return nil
}

// PublishData fans the per-device datapoints out to every registered
// publisher. Values that have not changed since the last publish for the
// same sensor are skipped.
func PublishData(ctx context.Context, deviceStatusMap map[model.Device][]model.DeviceStatus) error {
	count := 0
	data := make([]map[string]any, 0)
	for device, statuses := range deviceStatusMap {
		identifier := Identifier(device)
		for _, status := range statuses {
			if status.Value == nil {
				continue
			}
			if !shouldUpdate(identifier, status.Slug, *status.Value) {
				continue
			}
			count++
			data = append(data, map[string]any{
				"value":               *status.Value,
				"slug":                status.Slug,
				"timestamp":           time.Now(),
				"identifier":          identifier,
				"unit_of_measurement": string(status.Unit),
			})
		}
	}
	for name, publisher := range registeredPublishers {
		if err := publisher.Write(ctx, data); err != nil {
			zap.L().Error("failed to publish data", zap.Error(err), zap.String("publisher", name))
			continue
		}
		zap.L().Debug("updated sensors", zap.Int("count", count), zap.String("publisher", name))
	}
	return nil
}

func RegisterDevice(device *model.Device) error {
	for name, publisher := range registeredPublishers {
		if err := publisher.RegisterDevice(device); err != nil {
			zap.L().Error("failed to register device", zap.Error(err), zap.String("publisher", name))
			continue
		}
		zap.L().Debug("registered device", zap.String("device", device.ID), zap.String("publisher", name))
	}
	return nil
}

// Identifier builds the stable sensor identifier a device publishes under.
func Identifier(device model.Device) string {
	return fmt.Sprintf("%s_%s", strings.Replace(device.Model, ".", "", -1), device.ID)
}

func shouldUpdate(identifier, slug, newValue string) bool {
	key := fmt.Sprintf("%s_%s", identifier, slug)
	oldValue, exists := sensors.Load(key)
	if exists && strings.EqualFold(newValue, oldValue.(string)) {
		return false
	}
	if !exists {
		zap.L().Info("configured sensor", zap.String("device", identifier), zap.String("sensor", slug), zap.String("value", newValue))
	}
	sensors.Store(key, newValue)
	return true
}
