package resilience_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mailliw2010/edge-agent/resilience"
)

func ExampleExecute() {
	exec, err := resilience.NewExecutor(resilience.DefaultConfig())
	if err != nil {
		panic(err)
	}
	defer exec.Close()

	ctx := context.Background()
	value, err := resilience.Execute(ctx, exec, "sensor_read", func() (float64, error) {
		// Simulated device read
		return 25.5, nil
	})
	if err == nil {
		fmt.Printf("temperature: %.1f\n", value)
	}
	// Output:
	// temperature: 25.5
}

func ExampleExecute_retries() {
	exec, err := resilience.NewExecutor(resilience.DefaultConfig())
	if err != nil {
		panic(err)
	}
	defer exec.Close()

	ctx := context.Background()
	attempts := 0

	value, err := resilience.Execute(ctx, exec, "flaky_read", func() (int, error) {
		attempts++
		if attempts < 3 {
			return 0, resilience.WithKind(errors.New("bus glitch"), resilience.KindIO)
		}
		return 42, nil // Success on third attempt
	},
		resilience.WithMaxAttempts(3),
		resilience.WithBackoff(time.Millisecond, 10*time.Millisecond),
	)
	if err == nil {
		fmt.Printf("got %d after %d attempts\n", value, attempts)
	}
	// Output:
	// got 42 after 3 attempts
}

func ExampleExecute_exhaustion() {
	exec, err := resilience.NewExecutor(resilience.DefaultConfig())
	if err != nil {
		panic(err)
	}
	defer exec.Close()

	ctx := context.Background()
	_, err = resilience.Execute(ctx, exec, "dead_device", func() (string, error) {
		return "", resilience.WithKind(errors.New("no response"), resilience.KindUnavailable)
	},
		resilience.WithMaxAttempts(2),
		resilience.WithBackoff(time.Millisecond, time.Millisecond),
	)

	var re *resilience.ResilienceError
	if errors.As(err, &re) {
		fmt.Printf("gave up on %s after %d attempts\n", re.Operation, re.Attempts)
	}
	// Output:
	// gave up on dead_device after 2 attempts
}

func ExampleWithRetryable() {
	exec, err := resilience.NewExecutor(resilience.DefaultConfig())
	if err != nil {
		panic(err)
	}
	defer exec.Close()

	ctx := context.Background()

	// KindInvalid is excluded from the retryable set, so the error
	// surfaces unchanged on the first attempt.
	badInput := resilience.WithKind(errors.New("unsupported action"), resilience.KindInvalid)
	_, err = resilience.Execute(ctx, exec, "ac_control", func() (string, error) {
		return "", badInput
	},
		resilience.WithMaxAttempts(3),
		resilience.WithRetryable(resilience.KindIO, resilience.KindTimeout),
	)

	fmt.Println(errors.Is(err, badInput))
	// Output:
	// true
}

func ExampleConfigFromEnv() {
	cfg := resilience.ConfigFromEnv()

	fmt.Println(cfg.MaxAttempts)
	// Output:
	// 3
}
