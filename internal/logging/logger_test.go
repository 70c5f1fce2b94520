// ABOUTME: Tests for the diagnostic logger
// ABOUTME: Checks level selection and output destination
package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	Setup(&buf, false)
	Debug("hidden", "k", 1)
	if buf.Len() != 0 {
		t.Errorf("debug should be suppressed, got %q", buf.String())
	}

	Warn("shown", "k", 2)
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn should be written, got %q", buf.String())
	}

	buf.Reset()
	Setup(&buf, true)
	Debug("visible", "path", "/tmp/x")
	if !strings.Contains(buf.String(), "visible") || !strings.Contains(buf.String(), "/tmp/x") {
		t.Errorf("debug should be written, got %q", buf.String())
	}
}
