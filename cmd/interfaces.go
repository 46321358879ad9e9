package cmd

import (
	"context"

	"github.com/anicoll/homgar-integration/internal/pkg/devices"
	"github.com/anicoll/homgar-integration/internal/pkg/model"
)

// HomgarService defines the interface that cmd.run expects from the homgar
// API client.
type HomgarService interface {
	EnsureLoggedIn(ctx context.Context, email, password string) error
	GetHomes(ctx context.Context) ([]model.Home, error)
	GetDevicesForHome(ctx context.Context, hid int64) ([]devices.HubDevice, error)
	UpdateDeviceStatus(ctx context.Context, hub devices.HubDevice) error
}
