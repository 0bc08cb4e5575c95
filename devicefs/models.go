package devicefs

import (
	"errors"
	"time"
)

// ErrDeviceNotFound is returned when a device directory does not exist.
var ErrDeviceNotFound = errors.New("devicefs: device not found")

// PowerState is the content of a device's status file.
type PowerState string

const (
	PowerOn  PowerState = "on"
	PowerOff PowerState = "off"
)

// ACMode is an air conditioner operating mode.
type ACMode string

const (
	ACModeCool ACMode = "cool"
	ACModeHeat ACMode = "heat"
	ACModeAuto ACMode = "auto"
	ACModeFan  ACMode = "fan"
	ACModeDry  ACMode = "dry"
	ACModeOff  ACMode = "off"
)

// validACModes is the closed set of accepted modes.
var validACModes = map[ACMode]bool{
	ACModeCool: true,
	ACModeHeat: true,
	ACModeAuto: true,
	ACModeFan:  true,
	ACModeDry:  true,
	ACModeOff:  true,
}

// Valid reports whether m is a known mode.
func (m ACMode) Valid() bool {
	return validACModes[m]
}

// Temperature limits accepted by ACController.SetTemperature, in °C.
const (
	MinACTemperature = 16.0
	MaxACTemperature = 30.0
)

// sensorData is the schema of a sensor's data file.
type sensorData struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// ACConfig is the schema of an air conditioner's config file.
type ACConfig struct {
	Mode        ACMode  `json:"mode"`
	Temperature float64 `json:"temperature"`
}

// Reading is one device's state at read time. Value and Unit are present
// only for devices with a data file; Status only for devices with a status
// file.
type Reading struct {
	DeviceID  string    `json:"device_id"`
	Timestamp time.Time `json:"timestamp"`
	Value     *float64  `json:"value,omitempty"`
	Unit      string    `json:"unit,omitempty"`
	Status    string    `json:"status,omitempty"`
}
