package bench

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ValentinKolb/rMutex/lib/common"
)

func testConfig() common.BenchConfig {
	return common.BenchConfig{
		Workers:        8,
		Keys:           2,
		Iterations:     50,
		AttemptTimeout: 50 * time.Millisecond,
		HoldTime:       10 * time.Microsecond,
		LogLevel:       "info",
	}
}

// TestRunModes runs the benchmark in every locking mode
func TestRunModes(t *testing.T) {
	tests := map[string]func(c *common.BenchConfig){
		"attempt":    func(c *common.BenchConfig) {},
		"acquire":    func(c *common.BenchConfig) { c.AttemptTimeout = 0 },
		"hold count": func(c *common.BenchConfig) { c.HoldCount = true },
		"single key": func(c *common.BenchConfig) { c.Keys = 1 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig()
			mutate(&cfg)

			res, err := Run(context.Background(), cfg)
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if res.Violations != 0 {
				t.Errorf("%d mutual exclusion violations", res.Violations)
			}
			total := int64(cfg.Workers * cfg.Iterations)
			if got := res.Acquired + res.Failed; got != total {
				t.Errorf("Expected %d lock calls to finish, got %d", total, got)
			}
			if cfg.AttemptTimeout == 0 && res.Acquired != total {
				t.Errorf("Blocking acquires failed: %d of %d", res.Acquired, total)
			}
			if res.Interrupted != 0 {
				t.Errorf("Unexpected interruptions: %d", res.Interrupted)
			}
		})
	}
}

// TestRunCancelled verifies that a cancelled context stops every worker
func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig()
	res, err := Run(ctx, cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Interrupted != int64(cfg.Workers) {
		t.Errorf("Expected %d interrupted workers, got %d", cfg.Workers, res.Interrupted)
	}
	if res.Acquired != 0 {
		t.Errorf("Expected no acquisitions, got %d", res.Acquired)
	}
}

// TestRunInvalidConfig verifies that invalid configurations are rejected
func TestRunInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Workers = 0
	if _, err := Run(context.Background(), cfg); err == nil {
		t.Fatal("Expected error for zero workers")
	}
}

// TestResultPrint verifies the report layout
func TestResultPrint(t *testing.T) {
	res, err := Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var buf bytes.Buffer
	res.Print(&buf)
	for _, want := range []string{"RESULTS", "Acquired", "Violations", "FAIRNESS", "LATENCY", "p99"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Report missing %q:\n%s", want, buf.String())
		}
	}
}
