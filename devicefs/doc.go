// Package devicefs exposes a simulated building-automation device tree
// backed by the filesystem: each device is a directory holding small state
// files (a JSON "data" file for sensors, a "status" file for switchable
// devices, a JSON "config" file for air conditioners).
//
// The package's controllers — SensorReader, ACController, LightController —
// run every filesystem touch through a resilience.Executor, retrying I/O and
// decode failures and bounding each attempt with a timeout. File operations
// are idempotent, so the executor's duplicate-execution caveat after a
// timeout is harmless here.
//
//	tree := devicefs.NewTree(devicefs.DefaultRoot)
//	if err := tree.Seed(); err != nil { ... }
//
//	sensors := devicefs.NewSensorReader(tree, exec)
//	readings, err := sensors.Read(ctx, "all")
package devicefs
