// Package prereq verifies the external tools a scaffolded project needs.
//
// Checks run before anything is written to disk: a missing or outdated tool
// aborts the run with nothing to clean up.
package prereq

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/mintforge/mintforge/exec"
)

// Tool describes a required external executable.
type Tool struct {
	Name       string // Executable name on PATH
	MinVersion string // Minimum version ("18.0.0"), empty for any
	Reason     string // What the scaffolded project uses it for
}

// DefaultTools are the prerequisites for a full (non-minimal) scaffold.
func DefaultTools() []Tool {
	return []Tool{
		{Name: "node", MinVersion: "18.0.0", Reason: "runs the frontend and backend packages"},
		{Name: "pnpm", MinVersion: "8.0.0", Reason: "workspace package manager"},
		{Name: "git", Reason: "repository initialization"},
	}
}

// Check is the result of probing one tool.
type Check struct {
	Tool      Tool
	Installed bool
	Version   string // Detected version, empty when not installed
	OK        bool   // Installed and meets MinVersion
}

// CheckAll probes every tool and returns one Check per tool, in order.
// Probing never returns an error; missing tools show up as Installed=false.
func CheckAll(ctx context.Context, executor *exec.Executor, tools []Tool) []Check {
	checks := make([]Check, 0, len(tools))
	for _, tool := range tools {
		checks = append(checks, checkOne(ctx, executor, tool))
	}
	return checks
}

// Verify runs all checks and returns an error describing every failed one.
// A nil error means all prerequisites are satisfied.
func Verify(ctx context.Context, executor *exec.Executor, tools []Tool) error {
	var failures []string
	for _, check := range CheckAll(ctx, executor, tools) {
		if check.OK {
			continue
		}
		if !check.Installed {
			failures = append(failures, fmt.Sprintf("%s not found (%s)", check.Tool.Name, check.Tool.Reason))
		} else {
			failures = append(failures, fmt.Sprintf("%s %s is below minimum %s",
				check.Tool.Name, check.Version, check.Tool.MinVersion))
		}
	}

	if len(failures) > 0 {
		return fmt.Errorf("missing prerequisites: %s", strings.Join(failures, "; "))
	}
	return nil
}

// lookPath is a hook so tests can fake tool presence.
var lookPath = exec.LookPath

func checkOne(ctx context.Context, executor *exec.Executor, tool Tool) Check {
	check := Check{Tool: tool}

	if !lookPath(tool.Name) {
		return check
	}
	check.Installed = true

	raw, err := executor.Output(ctx, tool.Name, "--version")
	if err != nil {
		// On PATH but not answering --version; treat as unusable
		return check
	}

	check.Version = ParseVersion(raw)
	check.OK = meetsMinimum(check.Version, tool.MinVersion)
	return check
}

// ParseVersion extracts the first semver-looking token from raw tool output.
// Handles "v22.1.0", "9.1.0" and "git version 2.43.0".
func ParseVersion(raw string) string {
	for _, field := range strings.Fields(raw) {
		candidate := strings.TrimPrefix(field, "v")
		if semver.IsValid("v" + candidate) {
			return candidate
		}
	}
	return ""
}

// meetsMinimum compares a detected version against a minimum using semver
// ordering. An empty minimum accepts anything installed; an unparseable
// detected version fails closed.
func meetsMinimum(version, minimum string) bool {
	if minimum == "" {
		return true
	}
	if version == "" {
		return false
	}
	return semver.Compare("v"+version, "v"+minimum) >= 0
}
