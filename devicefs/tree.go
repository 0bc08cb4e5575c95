package devicefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mailliw2010/edge-agent/resilience"
)

// DefaultRoot is where the simulated device tree lives unless the caller
// chooses otherwise.
const DefaultRoot = "/tmp/edge_agent_sim/sys"

// Names of the per-device state files.
const (
	dataFile   = "data"
	statusFile = "status"
	configFile = "config"
)

// Tree is a handle on a filesystem device tree. Every error it returns is
// tagged with a resilience kind (KindIO for filesystem failures, KindDecode
// for malformed JSON, KindInvalid for unknown devices) so executor policies
// can classify them.
type Tree struct {
	root string
}

// NewTree creates a handle rooted at dir. An empty dir means DefaultRoot.
func NewTree(dir string) *Tree {
	if dir == "" {
		dir = DefaultRoot
	}
	return &Tree{root: dir}
}

// Root returns the tree's root directory.
func (t *Tree) Root() string {
	return t.root
}

// Seed materializes the development fixtures: a temperature sensor, a light,
// and an air conditioner, in the state the simulated building starts in.
func (t *Tree) Seed() error {
	for _, id := range []string{"temp_sensor_01", "light_01", "ac_01"} {
		if err := os.MkdirAll(t.DevicePath(id), 0o755); err != nil {
			return resilience.WithKind(err, resilience.KindIO)
		}
	}

	if err := t.WriteJSON("temp_sensor_01", dataFile, sensorData{Value: 25.5, Unit: "C"}); err != nil {
		return err
	}
	if err := t.WriteFile("light_01", statusFile, string(PowerOff)); err != nil {
		return err
	}
	if err := t.WriteFile("ac_01", statusFile, string(PowerOff)); err != nil {
		return err
	}
	return t.WriteJSON("ac_01", configFile, ACConfig{Mode: ACModeCool, Temperature: 26})
}

// DevicePath returns the directory of a device.
func (t *Tree) DevicePath(deviceID string) string {
	return filepath.Join(t.root, deviceID)
}

// Exists reports whether a device directory is present.
func (t *Tree) Exists(deviceID string) bool {
	info, err := os.Stat(t.DevicePath(deviceID))
	return err == nil && info.IsDir()
}

// List returns the IDs of all devices in the tree.
func (t *Tree) List() ([]string, error) {
	entries, err := os.ReadDir(t.root)
	if err != nil {
		return nil, resilience.WithKind(fmt.Errorf("devicefs: list devices: %w", err), resilience.KindIO)
	}

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			ids = append(ids, entry.Name())
		}
	}
	return ids, nil
}

// HasFile reports whether a device has the named state file.
func (t *Tree) HasFile(deviceID, name string) bool {
	_, err := os.Stat(filepath.Join(t.DevicePath(deviceID), name))
	return err == nil
}

// ReadFile reads a device state file, trimmed of surrounding whitespace.
func (t *Tree) ReadFile(deviceID, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(t.DevicePath(deviceID), name))
	if err != nil {
		return "", resilience.WithKind(fmt.Errorf("devicefs: read %s/%s: %w", deviceID, name, err), resilience.KindIO)
	}
	return strings.TrimSpace(string(data)), nil
}

// WriteFile overwrites a device state file.
func (t *Tree) WriteFile(deviceID, name, content string) error {
	if err := os.WriteFile(filepath.Join(t.DevicePath(deviceID), name), []byte(content), 0o644); err != nil {
		return resilience.WithKind(fmt.Errorf("devicefs: write %s/%s: %w", deviceID, name, err), resilience.KindIO)
	}
	return nil
}

// ReadJSON decodes a JSON state file into v.
func (t *Tree) ReadJSON(deviceID, name string, v any) error {
	data, err := os.ReadFile(filepath.Join(t.DevicePath(deviceID), name))
	if err != nil {
		return resilience.WithKind(fmt.Errorf("devicefs: read %s/%s: %w", deviceID, name, err), resilience.KindIO)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return resilience.WithKind(fmt.Errorf("devicefs: decode %s/%s: %w", deviceID, name, err), resilience.KindDecode)
	}
	return nil
}

// WriteJSON encodes v into a JSON state file.
func (t *Tree) WriteJSON(deviceID, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return resilience.WithKind(fmt.Errorf("devicefs: encode %s/%s: %w", deviceID, name, err), resilience.KindDecode)
	}
	return t.WriteFile(deviceID, name, string(data))
}

// requireDevice returns a KindInvalid error when the device is missing, so
// a bad device ID never consumes the retry budget.
func (t *Tree) requireDevice(deviceID string) error {
	if t.Exists(deviceID) {
		return nil
	}
	return resilience.WithKind(fmt.Errorf("%w: %q", ErrDeviceNotFound, deviceID), resilience.KindInvalid)
}
