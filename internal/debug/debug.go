// Package debug provides the process-wide debug logger used by every layer.
// Output goes to stderr and is silent unless enabled with --debug.
package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	mu      sync.RWMutex
	enabled bool
	noColor bool
	session string
	out     io.Writer = os.Stderr
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorCyan  = "\033[36m"
	colorGray  = "\033[90m"
)

// SetDebug enables or disables debug mode
func SetDebug(enable bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = enable
}

// IsEnabled returns whether debug mode is enabled
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetNoColor enables or disables colored output
func SetNoColor(disable bool) {
	mu.Lock()
	defer mu.Unlock()
	noColor = disable
}

// SetOutput redirects debug output. Passing nil restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	out = w
}

// StartSession assigns a fresh session id to the current generation run
// and returns it. Section headers carry the id so interleaved logs from
// separate invocations can be told apart.
func StartSession() string {
	id := uuid.NewString()
	mu.Lock()
	session = id
	mu.Unlock()
	return id
}

// Session returns the current session id, or "" before StartSession.
func Session() string {
	mu.RLock()
	defer mu.RUnlock()
	return session
}

// state snapshots the settings needed by a single log line.
func state() (io.Writer, bool, string) {
	mu.RLock()
	defer mu.RUnlock()
	return out, !noColor, session
}

func timestamp() string {
	return time.Now().Format("15:04:05.000")
}

// Debug prints a debug message with timestamp
func Debug(format string, args ...interface{}) {
	if !IsEnabled() {
		return
	}

	w, useColor, _ := state()
	msg := fmt.Sprintf(format, args...)

	if useColor {
		fmt.Fprintf(w, "%s[DEBUG]%s %s%s%s %s\n",
			colorCyan, colorReset, colorGray, timestamp(), colorReset, msg)
	} else {
		fmt.Fprintf(w, "[DEBUG] %s %s\n", timestamp(), msg)
	}
}

// DebugSection prints a section header for debug output
func DebugSection(section string) {
	if !IsEnabled() {
		return
	}

	w, useColor, sid := state()
	if sid != "" {
		section = fmt.Sprintf("%s (session %s)", section, sid)
	}

	if useColor {
		fmt.Fprintf(w, "%s[DEBUG]%s %s%s%s %s=== %s ===%s\n",
			colorCyan, colorReset, colorGray, timestamp(), colorReset,
			colorCyan, section, colorReset)
	} else {
		fmt.Fprintf(w, "[DEBUG] %s === %s ===\n", timestamp(), section)
	}
}

// DebugValue prints key=value style debug info
func DebugValue(key string, value interface{}) {
	if !IsEnabled() {
		return
	}

	w, useColor, _ := state()

	if useColor {
		fmt.Fprintf(w, "%s[DEBUG]%s %s%s%s %s%s%s = %v\n",
			colorCyan, colorReset, colorGray, timestamp(), colorReset,
			colorCyan, key, colorReset, value)
	} else {
		fmt.Fprintf(w, "[DEBUG] %s %s = %v\n", timestamp(), key, value)
	}
}

// DebugJSON prints structured data as JSON for debugging
func DebugJSON(key string, v interface{}) {
	if !IsEnabled() {
		return
	}

	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Debug("Failed to marshal %s to JSON: %v", key, err)
		return
	}

	w, useColor, _ := state()

	if useColor {
		fmt.Fprintf(w, "%s[DEBUG]%s %s%s%s %s%s%s:\n%s\n",
			colorCyan, colorReset, colorGray, timestamp(), colorReset,
			colorCyan, key, colorReset, string(jsonBytes))
	} else {
		fmt.Fprintf(w, "[DEBUG] %s %s:\n%s\n", timestamp(), key, string(jsonBytes))
	}
}
