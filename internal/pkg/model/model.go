package model

import "encoding/json"

// ParsedResult is the envelope every HomGar REST endpoint responds with.
// A non-zero Code means the request failed; Data carries the payload.
type ParsedResult[T any] struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data T      `json:"data"`
}

// ################################
// /auth/basic/app/login

type LoginRequest struct {
	AreaCode     string `json:"areaCode"`
	PhoneOrEmail string `json:"phoneOrEmail"`
	Password     string `json:"password"` // md5 hex digest, not the clear text
	DeviceID     string `json:"deviceId"`
}

type LoginResponse struct {
	Token        string `json:"token"`
	TokenExpired int64  `json:"tokenExpired"` // seconds until Token expires
	RefreshToken string `json:"refreshToken"`
}

// ################################
// /app/member/appHome/list

type Home struct {
	HID  int64  `json:"hid"`
	Name string `json:"homeName"`
}

// ################################
// /app/device/getDeviceByHid

// DeviceListing is one entry of the device listing. Hubs carry their
// subdevices nested in SubDevices; subdevice entries have it empty.
type DeviceListing struct {
	Model      string          `json:"model"`
	ModelCode  int             `json:"modelCode"`
	Name       string          `json:"name"`
	DID        int64           `json:"did"`
	MID        int64           `json:"mid"`
	Address    int             `json:"addr"`
	PortNumber int             `json:"portNumber"`
	Alerts     json.RawMessage `json:"alerts"`
	SubDevices []DeviceListing `json:"subDevices"`
}

// ################################
// /app/device/getDeviceStatus

type DeviceStatusData struct {
	SubDeviceStatus []SubDeviceStatus `json:"subDeviceStatus"`
}

// SubDeviceStatus is one opaque status record. ID names the device (and
// payload shape) it applies to, e.g. "D01" or "connected".
type SubDeviceStatus struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}
