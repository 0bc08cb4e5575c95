package devicefs

import (
	"errors"
	"sort"
	"testing"

	"github.com/mailliw2010/edge-agent/resilience"
)

func seededTree(t *testing.T) *Tree {
	t.Helper()
	tree := NewTree(t.TempDir())
	if err := tree.Seed(); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	return tree
}

func TestNewTree_DefaultRoot(t *testing.T) {
	if got := NewTree("").Root(); got != DefaultRoot {
		t.Errorf("Root() = %q, want %q", got, DefaultRoot)
	}
}

func TestTree_Seed(t *testing.T) {
	tree := seededTree(t)

	ids, err := tree.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	sort.Strings(ids)

	want := []string{"ac_01", "light_01", "temp_sensor_01"}
	if len(ids) != len(want) {
		t.Fatalf("List() = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, ids[i], want[i])
		}
	}

	var data sensorData
	if err := tree.ReadJSON("temp_sensor_01", dataFile, &data); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	if data.Value != 25.5 || data.Unit != "C" {
		t.Errorf("sensor data = %+v, want value 25.5 unit C", data)
	}

	status, err := tree.ReadFile("ac_01", statusFile)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if status != string(PowerOff) {
		t.Errorf("ac status = %q, want off", status)
	}

	var cfg ACConfig
	if err := tree.ReadJSON("ac_01", configFile, &cfg); err != nil {
		t.Fatalf("ReadJSON(config) error = %v", err)
	}
	if cfg.Mode != ACModeCool || cfg.Temperature != 26 {
		t.Errorf("ac config = %+v, want cool/26", cfg)
	}
}

func TestTree_ReadFile_MissingIsIOKind(t *testing.T) {
	tree := seededTree(t)

	_, err := tree.ReadFile("temp_sensor_01", "nope")
	if err == nil {
		t.Fatal("expected an error")
	}
	if resilience.KindOf(err) != resilience.KindIO {
		t.Errorf("KindOf() = %v, want KindIO", resilience.KindOf(err))
	}
}

func TestTree_ReadJSON_MalformedIsDecodeKind(t *testing.T) {
	tree := seededTree(t)
	if err := tree.WriteFile("ac_01", configFile, "{not json"); err != nil {
		t.Fatal(err)
	}

	var cfg ACConfig
	err := tree.ReadJSON("ac_01", configFile, &cfg)
	if err == nil {
		t.Fatal("expected an error")
	}
	if resilience.KindOf(err) != resilience.KindDecode {
		t.Errorf("KindOf() = %v, want KindDecode", resilience.KindOf(err))
	}
}

func TestTree_RequireDevice(t *testing.T) {
	tree := seededTree(t)

	if err := tree.requireDevice("ac_01"); err != nil {
		t.Errorf("requireDevice(existing) = %v", err)
	}

	err := tree.requireDevice("ghost_99")
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("requireDevice(missing) = %v, want ErrDeviceNotFound", err)
	}
	if resilience.KindOf(err) != resilience.KindInvalid {
		t.Errorf("KindOf() = %v, want KindInvalid", resilience.KindOf(err))
	}
}
