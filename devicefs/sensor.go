package devicefs

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/mailliw2010/edge-agent/resilience"
)

// AllDevices asks a SensorReader for every device in the tree.
const AllDevices = "all"

// Tool-level environment overrides, matching the agent's tool settings.
const (
	EnvToolTimeout  = "TOOL_TIMEOUT_SECONDS"
	EnvToolAttempts = "TOOL_MAX_ATTEMPTS"
)

// Defaults for the tool-level policy.
const (
	DefaultToolTimeout  = 5 * time.Second
	DefaultToolAttempts = 3
)

// toolOptions builds the per-call policy shared by all device controllers:
// tool timeout and attempt budget (env-overridable), retrying I/O and decode
// failures only.
func toolOptions() []resilience.Option {
	timeout := DefaultToolTimeout
	if v := os.Getenv(EnvToolTimeout); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			timeout = time.Duration(f * float64(time.Second))
		}
	}

	attempts := DefaultToolAttempts
	if v := os.Getenv(EnvToolAttempts); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			attempts = n
		}
	}

	return []resilience.Option{
		resilience.WithTimeout(timeout),
		resilience.WithMaxAttempts(attempts),
		resilience.WithRetryable(resilience.KindIO, resilience.KindDecode),
	}
}

// SensorReader reads device state from the tree under the resilience
// executor's protection.
type SensorReader struct {
	tree *Tree
	exec *resilience.Executor
	opts []resilience.Option
}

// NewSensorReader creates a reader. Extra options override the tool-level
// policy per reader.
func NewSensorReader(tree *Tree, exec *resilience.Executor, opts ...resilience.Option) *SensorReader {
	return &SensorReader{
		tree: tree,
		exec: exec,
		opts: append(toolOptions(), opts...),
	}
}

// Read returns the current state of one device, or of every device when
// deviceID is AllDevices. Devices without data or status files are skipped.
func (r *SensorReader) Read(ctx context.Context, deviceID string) ([]Reading, error) {
	if deviceID != AllDevices {
		if err := r.tree.requireDevice(deviceID); err != nil {
			return nil, err
		}
	}

	return resilience.Execute(ctx, r.exec, "sensor_reader", func() ([]Reading, error) {
		return r.readDevices(deviceID)
	}, r.opts...)
}

func (r *SensorReader) readDevices(deviceID string) ([]Reading, error) {
	ids := []string{deviceID}
	if deviceID == AllDevices {
		var err error
		ids, err = r.tree.List()
		if err != nil {
			return nil, err
		}
	}

	readings := make([]Reading, 0, len(ids))
	for _, id := range ids {
		if !r.tree.Exists(id) {
			continue
		}

		reading := Reading{DeviceID: id, Timestamp: time.Now().UTC()}

		if r.tree.HasFile(id, dataFile) {
			var data sensorData
			if err := r.tree.ReadJSON(id, dataFile, &data); err != nil {
				return nil, err
			}
			reading.Value = &data.Value
			reading.Unit = data.Unit
		}

		if r.tree.HasFile(id, statusFile) {
			status, err := r.tree.ReadFile(id, statusFile)
			if err != nil {
				return nil, err
			}
			reading.Status = status
		}

		readings = append(readings, reading)
	}

	return readings, nil
}
