package devicefs

import (
	"context"

	"github.com/mailliw2010/edge-agent/resilience"
)

// LightController switches a simulated light and reports its state.
type LightController struct {
	tree *Tree
	exec *resilience.Executor
	opts []resilience.Option
}

// NewLightController creates a controller. Extra options override the
// tool-level policy per controller.
func NewLightController(tree *Tree, exec *resilience.Executor, opts ...resilience.Option) *LightController {
	return &LightController{
		tree: tree,
		exec: exec,
		opts: append(toolOptions(), opts...),
	}
}

// TurnOn switches the light on.
func (c *LightController) TurnOn(ctx context.Context, deviceID string) error {
	return c.setPower(ctx, deviceID, PowerOn)
}

// TurnOff switches the light off.
func (c *LightController) TurnOff(ctx context.Context, deviceID string) error {
	return c.setPower(ctx, deviceID, PowerOff)
}

func (c *LightController) setPower(ctx context.Context, deviceID string, state PowerState) error {
	if err := c.tree.requireDevice(deviceID); err != nil {
		return err
	}

	_, err := resilience.Execute(ctx, c.exec, "light_control", func() (struct{}, error) {
		return struct{}{}, c.tree.WriteFile(deviceID, statusFile, string(state))
	}, c.opts...)
	return err
}

// Status returns the light's current power state.
func (c *LightController) Status(ctx context.Context, deviceID string) (PowerState, error) {
	if err := c.tree.requireDevice(deviceID); err != nil {
		return "", err
	}

	status, err := resilience.Execute(ctx, c.exec, "light_control", func() (string, error) {
		return c.tree.ReadFile(deviceID, statusFile)
	}, c.opts...)
	if err != nil {
		return "", err
	}
	return PowerState(status), nil
}
