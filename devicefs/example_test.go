package devicefs_test

import (
	"context"
	"fmt"

	"github.com/mailliw2010/edge-agent/devicefs"
	"github.com/mailliw2010/edge-agent/resilience"
)

func Example() {
	tree := devicefs.NewTree("/tmp/edge_agent_sim_example/sys")
	if err := tree.Seed(); err != nil {
		fmt.Println("seed:", err)
		return
	}

	exec, err := resilience.NewExecutor(resilience.DefaultConfig())
	if err != nil {
		fmt.Println("executor:", err)
		return
	}
	defer exec.Close()

	ctx := context.Background()
	light := devicefs.NewLightController(tree, exec)

	if err := light.TurnOn(ctx, "light_01"); err != nil {
		fmt.Println("turn on:", err)
		return
	}
	state, err := light.Status(ctx, "light_01")
	if err != nil {
		fmt.Println("status:", err)
		return
	}
	fmt.Println("light_01 is", state)
	// Output: light_01 is on
}

func ExampleSensorReader_Read() {
	tree := devicefs.NewTree("/tmp/edge_agent_sim_example2/sys")
	if err := tree.Seed(); err != nil {
		fmt.Println("seed:", err)
		return
	}

	exec, err := resilience.NewExecutor(resilience.DefaultConfig())
	if err != nil {
		fmt.Println("executor:", err)
		return
	}
	defer exec.Close()

	readings, err := devicefs.NewSensorReader(tree, exec).Read(context.Background(), "temp_sensor_01")
	if err != nil {
		fmt.Println("read:", err)
		return
	}
	fmt.Printf("%s: %.1f %s\n", readings[0].DeviceID, *readings[0].Value, readings[0].Unit)
	// Output: temp_sensor_01: 25.5 C
}
