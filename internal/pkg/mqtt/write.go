package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anicoll/homgar-integration/internal/pkg/model"
	"github.com/anicoll/homgar-integration/internal/pkg/publisher"
)

func (s *service) Write(ctx context.Context, data []map[string]any) error {
	for _, d := range data {
		if err := s.publishData(d); err != nil {
			return err
		}
	}
	return nil
}

// RegisterDevice announces a device to Home Assistant via an MQTT discovery
// config message. Each device is announced once per process lifetime.
func (s *service) RegisterDevice(device *model.Device) error {
	if _, exists := s.configuredDevices[device.ID]; exists {
		return nil
	}
	identifier := publisher.Identifier(*device)
	topic := fmt.Sprintf("homeassistant/sensor/%s/config", identifier)

	payload, err := json.Marshal(defaultRegisterMsg(device, identifier))
	if err != nil {
		return err
	}
	token := s.client.Publish(topic, 1, true, payload)
	if err := token.Error(); err != nil {
		return err
	}
	if res := token.WaitTimeout(time.Second * 5); res {
		s.configuredDevices[device.ID] = struct{}{}
	}
	return nil
}

func (s *service) publishData(data map[string]any) error {
	isTextSensor := model.TextSensors.HasSlug(data["slug"].(string))
	topic := fmt.Sprintf("homeassistant/sensor/%s/%s/state", data["identifier"], data["slug"].(string))

	payload := map[string]string{
		"value": data["value"].(string),
	}
	if !isTextSensor {
		payload["unit_of_measurement"] = data["unit_of_measurement"].(string)
	}

	publishData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	token := s.client.Publish(topic, 0, false, publishData)
	if res := token.WaitTimeout(time.Second * 10); res {
		return nil
	}
	if err := token.Error(); err != nil {
		return err
	}
	return nil
}

func defaultRegisterMsg(device *model.Device, identifier string) model.RegisterMessage {
	name := fmt.Sprintf("%s %s", device.Model, device.Name)

	return model.RegisterMessage{
		Tilda:      fmt.Sprintf("homeassistant/sensor/%s", identifier),
		Name:       name,
		ID:         strings.ToLower(identifier),
		StateTopic: "~/state",
		Device: model.RegisterDevice{
			Name:         name,
			Identifiers:  []string{identifier},
			Model:        device.Model,
			Manufacturer: "HomGar",
		},
	}
}
