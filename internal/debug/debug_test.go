package debug

import (
	"bytes"
	"strings"
	"testing"
)

// capture enables debug output into a buffer for the duration of the test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetDebug(true)
	SetNoColor(true)
	t.Cleanup(func() {
		SetOutput(nil)
		SetDebug(false)
	})
	return &buf
}

func TestSetDebug(t *testing.T) {
	SetDebug(false)
	if IsEnabled() {
		t.Error("Debug should be disabled initially")
	}

	SetDebug(true)
	if !IsEnabled() {
		t.Error("Debug should be enabled")
	}

	SetDebug(false)
	if IsEnabled() {
		t.Error("Debug should be disabled again")
	}
}

func TestDebugOutput(t *testing.T) {
	buf := capture(t)

	Debug("test message %s", "arg")

	output := buf.String()
	if !strings.Contains(output, "[DEBUG]") {
		t.Errorf("Output should contain [DEBUG] prefix, got: %s", output)
	}
	if !strings.Contains(output, "test message arg") {
		t.Errorf("Output should contain message, got: %s", output)
	}
}

func TestDebugDisabled(t *testing.T) {
	buf := capture(t)
	SetDebug(false)

	Debug("this should not appear")
	DebugValue("key", "value")

	if buf.Len() != 0 {
		t.Errorf("Debug output should be empty when disabled, got: %s", buf.String())
	}
}

func TestDebugSection(t *testing.T) {
	buf := capture(t)

	DebugSection("Test Section")

	if !strings.Contains(buf.String(), "=== Test Section") {
		t.Errorf("Output should contain section header, got: %s", buf.String())
	}
}

func TestDebugSectionCarriesSession(t *testing.T) {
	buf := capture(t)

	id := StartSession()
	if id == "" {
		t.Fatal("StartSession returned empty id")
	}
	if Session() != id {
		t.Errorf("Session() = %q, want %q", Session(), id)
	}

	DebugSection("Generate")

	if !strings.Contains(buf.String(), "session "+id) {
		t.Errorf("Section header should contain session id, got: %s", buf.String())
	}
}

func TestStartSessionIsUnique(t *testing.T) {
	first := StartSession()
	second := StartSession()
	if first == second {
		t.Errorf("expected distinct session ids, got %q twice", first)
	}
}

func TestDebugValue(t *testing.T) {
	buf := capture(t)

	DebugValue("key", "value")

	if !strings.Contains(buf.String(), "key = value") {
		t.Errorf("Output should contain key=value, got: %s", buf.String())
	}
}

func TestDebugJSON(t *testing.T) {
	buf := capture(t)

	DebugJSON("testData", map[string]interface{}{
		"foo": "bar",
		"num": 42,
	})

	output := buf.String()
	if !strings.Contains(output, "testData:") {
		t.Errorf("Output should contain key, got: %s", output)
	}
	if !strings.Contains(output, "\"foo\"") {
		t.Errorf("Output should contain JSON data, got: %s", output)
	}
}
