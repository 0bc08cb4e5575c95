package devicefs

import (
	"context"
	"fmt"

	"github.com/mailliw2010/edge-agent/resilience"
)

// ACController drives a simulated air conditioner: power, target
// temperature, and operating mode, all persisted in the device's status and
// config files.
type ACController struct {
	tree *Tree
	exec *resilience.Executor
	opts []resilience.Option
}

// NewACController creates a controller. Extra options override the
// tool-level policy per controller.
func NewACController(tree *Tree, exec *resilience.Executor, opts ...resilience.Option) *ACController {
	return &ACController{
		tree: tree,
		exec: exec,
		opts: append(toolOptions(), opts...),
	}
}

// TurnOn powers the air conditioner on.
func (c *ACController) TurnOn(ctx context.Context, deviceID string) error {
	return c.setPower(ctx, deviceID, PowerOn)
}

// TurnOff powers the air conditioner off.
func (c *ACController) TurnOff(ctx context.Context, deviceID string) error {
	return c.setPower(ctx, deviceID, PowerOff)
}

func (c *ACController) setPower(ctx context.Context, deviceID string, state PowerState) error {
	if err := c.tree.requireDevice(deviceID); err != nil {
		return err
	}

	_, err := resilience.Execute(ctx, c.exec, "ac_control", func() (struct{}, error) {
		return struct{}{}, c.tree.WriteFile(deviceID, statusFile, string(state))
	}, c.opts...)
	return err
}

// SetTemperature sets the target temperature, keeping the rest of the config
// intact. Temperatures outside [MinACTemperature, MaxACTemperature] are
// rejected without touching the device.
func (c *ACController) SetTemperature(ctx context.Context, deviceID string, temperature float64) error {
	if temperature < MinACTemperature || temperature > MaxACTemperature {
		return resilience.WithKind(
			fmt.Errorf("devicefs: temperature must be between %.0f and %.0f °C, got %.1f",
				MinACTemperature, MaxACTemperature, temperature),
			resilience.KindInvalid,
		)
	}
	if err := c.tree.requireDevice(deviceID); err != nil {
		return err
	}

	_, err := resilience.Execute(ctx, c.exec, "ac_control", func() (struct{}, error) {
		var cfg ACConfig
		if err := c.tree.ReadJSON(deviceID, configFile, &cfg); err != nil {
			return struct{}{}, err
		}
		cfg.Temperature = temperature
		return struct{}{}, c.tree.WriteJSON(deviceID, configFile, cfg)
	}, c.opts...)
	return err
}

// SetMode sets the operating mode. Selecting ACModeOff also powers the
// device off; any other mode powers it on.
func (c *ACController) SetMode(ctx context.Context, deviceID string, mode ACMode) error {
	if !mode.Valid() {
		return resilience.WithKind(
			fmt.Errorf("devicefs: unknown AC mode %q", mode),
			resilience.KindInvalid,
		)
	}
	if err := c.tree.requireDevice(deviceID); err != nil {
		return err
	}

	_, err := resilience.Execute(ctx, c.exec, "ac_control", func() (struct{}, error) {
		var cfg ACConfig
		if err := c.tree.ReadJSON(deviceID, configFile, &cfg); err != nil {
			return struct{}{}, err
		}
		cfg.Mode = mode
		if err := c.tree.WriteJSON(deviceID, configFile, cfg); err != nil {
			return struct{}{}, err
		}

		state := PowerOn
		if mode == ACModeOff {
			state = PowerOff
		}
		return struct{}{}, c.tree.WriteFile(deviceID, statusFile, string(state))
	}, c.opts...)
	return err
}

// Config returns the air conditioner's current configuration.
func (c *ACController) Config(ctx context.Context, deviceID string) (ACConfig, error) {
	if err := c.tree.requireDevice(deviceID); err != nil {
		return ACConfig{}, err
	}

	return resilience.Execute(ctx, c.exec, "ac_control", func() (ACConfig, error) {
		var cfg ACConfig
		err := c.tree.ReadJSON(deviceID, configFile, &cfg)
		return cfg, err
	}, c.opts...)
}
