package exec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCommand returns a command that re-runs the test binary as a fake tool
func mockCommand(name string, args ...string) *exec.Cmd {
	cs := []string{"-test.run=TestHelperProcess", "--", name}
	cs = append(cs, args...)
	cmd := exec.Command(os.Args[0], cs...)
	cmd.Env = []string{"GO_WANT_HELPER_PROCESS=1"}
	return cmd
}

// TestHelperProcess acts as the fake external tool for mocked commands
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}

	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "no command specified\n")
		os.Exit(1)
	}

	switch args[0] {
	case "echo":
		if len(args) > 1 {
			fmt.Println(strings.Join(args[1:], " "))
		}
		os.Exit(0)
	case "node":
		fmt.Println("v22.1.0")
		os.Exit(0)
	case "sleep":
		time.Sleep(10 * time.Second)
		os.Exit(0)
	case "fail":
		fmt.Fprintf(os.Stderr, "something broke\n")
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		os.Exit(1)
	}
}

func TestNewExecutor(t *testing.T) {
	// Nil options fall back to stdout/stderr
	executor := NewExecutor(nil)
	assert.NotNil(t, executor)
	assert.Equal(t, os.Stdout, executor.stdout)
	assert.Equal(t, os.Stderr, executor.stderr)
	assert.NotNil(t, executor.commandFunc)

	var stdout, stderr bytes.Buffer
	executor = NewExecutor(&Options{
		Stdout: &stdout,
		Stderr: &stderr,
		Env:    []string{"TEST=1"},
		Dir:    "/tmp",
	})
	assert.Equal(t, &stdout, executor.stdout)
	assert.Equal(t, &stderr, executor.stderr)
	assert.Equal(t, []string{"TEST=1"}, executor.env)
	assert.Equal(t, "/tmp", executor.dir)
}

func TestExecutor_Run(t *testing.T) {
	var stdout bytes.Buffer

	executor := NewExecutor(&Options{Stdout: &stdout})
	executor.commandFunc = mockCommand

	err := executor.Run(context.Background(), "echo", "hello", "world")
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "hello world")
}

func TestExecutor_RunFailure(t *testing.T) {
	var stderr bytes.Buffer

	executor := NewExecutor(&Options{Stdout: &bytes.Buffer{}, Stderr: &stderr})
	executor.commandFunc = mockCommand

	err := executor.Run(context.Background(), "fail")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fail failed")
	assert.Contains(t, stderr.String(), "something broke")
}

func TestExecutor_RunCancellation(t *testing.T) {
	executor := NewExecutor(&Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})
	executor.commandFunc = mockCommand

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := executor.Run(ctx, "sleep")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
}

func TestExecutor_CommandNotFound(t *testing.T) {
	executor := NewExecutor(&Options{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}})

	err := executor.Run(context.Background(), "definitely-not-a-real-tool-xyz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestExecutor_Output(t *testing.T) {
	executor := NewExecutor(nil)
	executor.commandFunc = mockCommand

	out, err := executor.Output(context.Background(), "node", "--version")
	require.NoError(t, err)
	assert.Equal(t, "v22.1.0", out)
}

func TestExecutor_WithDir(t *testing.T) {
	executor := NewExecutor(nil)
	executor.commandFunc = mockCommand

	scoped := executor.WithDir("/tmp")
	assert.Equal(t, "/tmp", scoped.dir)
	assert.Equal(t, "", executor.dir, "original must be unchanged")
}

func TestLookPath(t *testing.T) {
	assert.False(t, LookPath("definitely-not-a-real-tool-xyz"))
}

func TestPrefixWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewPrefixWriter(&buf, "pnpm │ ")

	w.Write([]byte("first line\nsecond "))
	w.Write([]byte("half\n"))
	require.NoError(t, w.Flush())

	assert.Equal(t, "pnpm │ first line\npnpm │ second half\n", buf.String())
}

func TestPrefixWriter_FlushPartial(t *testing.T) {
	var buf bytes.Buffer
	w := NewPrefixWriter(&buf, "> ")

	w.Write([]byte("no newline"))
	require.NoError(t, w.Flush())

	assert.Equal(t, "> no newline\n", buf.String())
}
