package util

import (
	"strings"
	"testing"
)

// TestWrapString tests that no wrapped line exceeds Wrap unless a single word does
func TestWrapString(t *testing.T) {
	text := "LogLevel is the level at which logs will be output (debug, info, warn, error) and this sentence keeps going for a while"
	wrapped := WrapString(text)

	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > Wrap {
			t.Errorf("Line longer than %d: %q", Wrap, line)
		}
	}
	if got := strings.Join(strings.Fields(wrapped), " "); got != text {
		t.Errorf("Words changed by wrapping:\n%s", got)
	}
}

// TestWrapStringLongWord tests that words longer than Wrap are kept intact
func TestWrapStringLongWord(t *testing.T) {
	long := strings.Repeat("x", Wrap+10)
	if got := WrapString("a " + long + " b"); got != "a\n"+long+"\nb" {
		t.Errorf("Unexpected wrapping: %q", got)
	}
	if got := WrapString(""); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}
