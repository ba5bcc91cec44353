package cmd

import (
	"bytes"
	"strings"
	"testing"
)

// TestVersionCommand tests the version output
func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetArgs([]string{"version"})
	defer RootCmd.SetArgs(nil)

	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if got := buf.String(); got != "rMutex v"+Version+"\n" {
		t.Errorf("Unexpected output %q", got)
	}
}

// TestEnvConfigReachesSubcommands tests that the config initializer of the root
// command loads RMUTEX_ variables for the subcommands
func TestEnvConfigReachesSubcommands(t *testing.T) {
	t.Setenv("RMUTEX_STEP_DELAY", "-1s")

	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetErr(&buf)
	RootCmd.SetArgs([]string{"demo"})
	defer RootCmd.SetArgs(nil)

	err := RootCmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "step-delay must be positive") {
		t.Fatalf("Expected the env value to be rejected, got %v", err)
	}
}

// TestSubcommandsRegistered tests that every subcommand is reachable from the root
func TestSubcommandsRegistered(t *testing.T) {
	for _, name := range []string{"bench", "demo", "version"} {
		cmd, _, err := RootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("Subcommand %s not found: %v", name, err)
		}
	}
}
