package cmd

import (
	"context"

	"github.com/anicoll/homgar-integration/internal/pkg/devices"
	"github.com/anicoll/homgar-integration/internal/pkg/model"
)

// MockHomgarService is a mock implementation of the HomgarService interface.
type MockHomgarService struct {
	EnsureLoggedInFunc     func(ctx context.Context, email, password string) error
	GetHomesFunc           func(ctx context.Context) ([]model.Home, error)
	GetDevicesForHomeFunc  func(ctx context.Context, hid int64) ([]devices.HubDevice, error)
	UpdateDeviceStatusFunc func(ctx context.Context, hub devices.HubDevice) error
}

func (m *MockHomgarService) EnsureLoggedIn(ctx context.Context, email, password string) error {
	if m.EnsureLoggedInFunc != nil {
		return m.EnsureLoggedInFunc(ctx, email, password)
	}
	return nil
}

func (m *MockHomgarService) GetHomes(ctx context.Context) ([]model.Home, error) {
	if m.GetHomesFunc != nil {
		return m.GetHomesFunc(ctx)
	}
	return nil, nil
}

func (m *MockHomgarService) GetDevicesForHome(ctx context.Context, hid int64) ([]devices.HubDevice, error) {
	if m.GetDevicesForHomeFunc != nil {
		return m.GetDevicesForHomeFunc(ctx, hid)
	}
	return nil, nil
}

func (m *MockHomgarService) UpdateDeviceStatus(ctx context.Context, hub devices.HubDevice) error {
	if m.UpdateDeviceStatusFunc != nil {
		return m.UpdateDeviceStatusFunc(ctx, hub)
	}
	return nil
}
