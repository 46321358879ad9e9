package homgar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anicoll/homgar-integration/internal/pkg/cache"
	"github.com/anicoll/homgar-integration/internal/pkg/config"
	"github.com/anicoll/homgar-integration/internal/pkg/devices"
	"github.com/anicoll/homgar-integration/internal/pkg/model"
)

func newTestService(t *testing.T, handler http.Handler) (*service, *cache.Cache) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	credentials, err := cache.Load(t.TempDir() + "/cache.json")
	require.NoError(t, err)

	return New(&config.HomgarConfig{
		AreaCode: "31",
		APIBase:  server.URL,
	}, credentials), credentials
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, json.NewEncoder(w).Encode(model.ParsedResult[json.RawMessage]{Data: raw}))
}

func TestLogin(t *testing.T) {
	svc, credentials := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/basic/app/login", r.URL.Path)
		assert.Equal(t, "en", r.Header.Get("lang"))
		assert.Equal(t, "1", r.Header.Get("appCode"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("auth"))

		var req model.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "31", req.AreaCode)
		assert.Equal(t, "gardener@example.com", req.PhoneOrEmail)
		// md5("hunter2"), never the clear text
		assert.Equal(t, "2ab96390c7dbe3439de74d0c9b0b1767", req.Password)
		assert.Len(t, req.DeviceID, 32)

		writeEnvelope(t, w, model.LoginResponse{
			Token:        "tok-123",
			TokenExpired: 86400,
			RefreshToken: "refresh-456",
		})
	}))

	require.NoError(t, svc.Login(context.Background(), "gardener@example.com", "hunter2"))

	assert.Equal(t, "gardener@example.com", credentials.Email)
	assert.Equal(t, "tok-123", credentials.Token)
	assert.Equal(t, "refresh-456", credentials.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(86400*time.Second), credentials.TokenExpires, 5*time.Second)
}

func TestEnsureLoggedIn_SkipsWithValidToken(t *testing.T) {
	svc, credentials := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected with a valid cached token")
	}))
	credentials.Email = "gardener@example.com"
	credentials.Token = "tok-123"
	credentials.TokenExpires = time.Now().Add(2 * time.Hour)

	require.NoError(t, svc.EnsureLoggedIn(context.Background(), "gardener@example.com", "hunter2"))
}

func TestEnsureLoggedIn_RefreshesExpiringToken(t *testing.T) {
	var calls int
	svc, credentials := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeEnvelope(t, w, model.LoginResponse{Token: "tok-new", TokenExpired: 86400})
	}))
	credentials.Email = "gardener@example.com"
	credentials.Token = "tok-old"
	credentials.TokenExpires = time.Now().Add(10 * time.Minute) // inside the refresh margin

	require.NoError(t, svc.EnsureLoggedIn(context.Background(), "gardener@example.com", "hunter2"))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "tok-new", credentials.Token)
}

func TestEnsureLoggedIn_RefreshesOnAccountChange(t *testing.T) {
	var calls int
	svc, credentials := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeEnvelope(t, w, model.LoginResponse{Token: "tok-new", TokenExpired: 86400})
	}))
	credentials.Email = "someone.else@example.com"
	credentials.TokenExpires = time.Now().Add(2 * time.Hour)

	require.NoError(t, svc.EnsureLoggedIn(context.Background(), "gardener@example.com", "hunter2"))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "gardener@example.com", credentials.Email)
}

func TestGetHomes(t *testing.T) {
	svc, credentials := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/app/member/appHome/list", r.URL.Path)
		assert.Equal(t, "tok-123", r.Header.Get("auth"))

		writeEnvelope(t, w, []model.Home{
			{HID: 9, Name: "Back garden"},
			{HID: 10, Name: "Allotment"},
		})
	}))
	credentials.Token = "tok-123"

	homes, err := svc.GetHomes(context.Background())
	require.NoError(t, err)
	require.Len(t, homes, 2)
	assert.Equal(t, int64(9), homes[0].HID)
	assert.Equal(t, "Back garden", homes[0].Name)
}

func TestGetDevicesForHome(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/app/device/getDeviceByHid", r.URL.Path)
		assert.Equal(t, "9", r.URL.Query().Get("hid"))

		writeEnvelope(t, w, []model.DeviceListing{
			{
				Model:     "HWG0538WRF",
				ModelCode: 264,
				Name:      "Irrigation Display Hub",
				DID:       12345,
				MID:       734,
				Address:   1,
				SubDevices: []model.DeviceListing{
					{Model: "HCS021FRF", ModelCode: 72, Name: "Veggie patch", DID: 2, MID: 734, Address: 2},
				},
			},
		})
	}))

	hubs, err := svc.GetDevicesForHome(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, hubs, 1)
	assert.IsType(t, &devices.DisplayHub{}, hubs[0])
	require.Len(t, hubs[0].Tree().Subdevices, 1)
	assert.IsType(t, &devices.SoilMoistureSensor{}, hubs[0].Tree().Subdevices[0])
}

func TestUpdateDeviceStatus(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/app/device/getDeviceStatus", r.URL.Path)
		assert.Equal(t, "734", r.URL.Query().Get("mid"))

		writeEnvelope(t, w, model.DeviceStatusData{
			SubDeviceStatus: []model.SubDeviceStatus{
				{ID: "connected", Value: "1"},
				{ID: "D01", Value: "1,-67,1;781(781/723/1),52(64/50/1),P=10213(10222/10205/1),"},
				{ID: "D02", Value: "1,-72,1;766,52,G=31351"},
			},
		})
	}))

	hub := devices.BuildTree([]model.DeviceListing{
		{
			Model:     "HWG0538WRF",
			ModelCode: 264,
			DID:       12345,
			MID:       734,
			Address:   1,
			SubDevices: []model.DeviceListing{
				{Model: "HCS021FRF", ModelCode: 72, DID: 2, MID: 734, Address: 2},
			},
		},
	})[0]

	require.NoError(t, svc.UpdateDeviceStatus(context.Background(), hub))

	display := hub.(*devices.DisplayHub)
	require.NotNil(t, display.Connected)
	assert.True(t, *display.Connected)
	assert.Equal(t, devices.TempToMilliKelvin(781), *display.TempMKCurrent)

	soil := hub.Tree().Subdevices[0].(*devices.SoilMoistureSensor)
	assert.Equal(t, 52, *soil.MoistPercentCurrent)
}

func TestAPIErrorSurfacesCodeAndMessage(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(model.ParsedResult[json.RawMessage]{
			Code: 1005,
			Msg:  "token expired",
		}))
	}))

	_, err := svc.GetHomes(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 1005, apiErr.Code)
	assert.Equal(t, "token expired", apiErr.Msg)
	assert.Equal(t, `homgar api returned code 1005 ("token expired")`, apiErr.Error())
}
