package output

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	verboseMode bool

	logMu   sync.Mutex
	logFile *os.File
)

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	verboseMode = v
}

// SetLogFile mirrors all messages to the given file as JSON lines, appending
// if it already exists. Pass the path from the --log-file flag.
func SetLogFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", path, err)
	}

	logMu.Lock()
	defer logMu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	return nil
}

// CloseLogFile flushes and closes the log file, if one was configured.
func CloseLogFile() {
	logMu.Lock()
	defer logMu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// logRecord is the JSON-lines shape mirrored to the log file.
type logRecord struct {
	Time  string `json:"time"`
	Level string `json:"level"`
	Msg   string `json:"msg"`
}

// mirror appends a JSON line to the log file when one is configured.
// Failures to write the log are ignored; logging must never fail a run.
func mirror(level, msg string) {
	logMu.Lock()
	defer logMu.Unlock()
	if logFile == nil {
		return
	}

	line, err := json.Marshal(logRecord{
		Time:  time.Now().UTC().Format(time.RFC3339),
		Level: level,
		Msg:   msg,
	})
	if err != nil {
		return
	}
	logFile.Write(append(line, '\n'))
}

// Success prints a success message with ✨ and green color.
// Use this for completed operations.
//
// Example:
//
//	output.Success("Created project: mytoken")
func Success(msg string) {
	fmt.Println(successStyle.Render("✨ " + msg))
	mirror("success", msg)
}

// Error prints an error message with ❌ and red color.
// Use this for failures that need user attention.
//
// Example:
//
//	output.Error("Failed to create project: permission denied")
func Error(msg string) {
	fmt.Println(errorStyle.Render("❌ " + msg))
	mirror("error", msg)
}

// Warning prints a warning with ⚠️ and yellow color. Used for non-fatal
// problems, such as an undo action that failed during rollback.
func Warning(msg string) {
	fmt.Println(warnStyle.Render("⚠️  " + msg))
	mirror("warning", msg)
}

// Info prints an informational message with ℹ️ and cyan color.
// Use this for status updates or explanations.
func Info(msg string) {
	fmt.Println(infoStyle.Render("ℹ️  " + msg))
	mirror("info", msg)
}

// Step prints an indented step message in gray.
// Use this for actionable next steps or sub-items.
//
// Example:
//
//	output.Step("cd mytoken")
//	output.Step("pnpm install")
func Step(msg string) {
	fmt.Println(stepStyle.Render("   " + msg))
	mirror("step", msg)
}

// Verbose prints a debug message with 🔍 only if verbose mode is enabled.
// Verbose messages still reach the log file when verbose mode is off.
func Verbose(msg string) {
	if verboseMode {
		fmt.Println(stepStyle.Render("🔍 " + msg))
	}
	mirror("debug", msg)
}
