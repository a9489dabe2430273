package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Operation represents a file system operation that can be validated and executed.
//
// Validate checks if the operation would succeed without executing it.
// Some operations may have side effects during validation (e.g., creating parent directories).
// force=true skips conflict checks (e.g., file already exists).
//
// Execute performs the actual operation. This should only be called after Validate succeeds.
//
// Description returns a human-readable description for output (e.g., "Create packages/contracts/package.json (412 bytes)").
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// ConflictError reports that an operation's target file already exists.
// Callers can unwrap it to drive conflict resolution.
type ConflictError struct {
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("file already exists: %s", e.Path)
}

// WriteFileOp creates a file with content.
//
// Validation behavior:
//   - Creates parent directories if they don't exist (via os.MkdirAll)
//   - Returns *ConflictError if the file exists, unless force=true
//   - Allows empty content (zero bytes) but rejects nil content
//
// Execution behavior:
//   - Writes content to a temp file in the target directory, then renames it
//     into place. The target either holds the full new content or, if the
//     process dies mid-write, its previous content. Never a mix.
type WriteFileOp struct {
	Path    string      // File path to create
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)
}

func (op *WriteFileOp) Validate(ctx context.Context, force bool) error {
	dir := filepath.Dir(op.Path)

	// Create parent directory (side effect, but idempotent)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}

	// Check file conflict unless force is enabled
	if !force {
		if _, err := os.Stat(op.Path); err == nil {
			return &ConflictError{Path: op.Path}
		}
	}

	// Reject nil content (empty is OK)
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	dir := filepath.Dir(op.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return writeFileAtomic(op.Path, op.Content, op.Mode)
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
}

// MkdirOp creates a directory (and any missing parents).
type MkdirOp struct {
	Path string
	Mode fs.FileMode // Directory permissions (e.g., 0755)
}

func (op *MkdirOp) Validate(ctx context.Context, force bool) error {
	info, err := os.Stat(op.Path)
	if err == nil && !info.IsDir() {
		return fmt.Errorf("path exists and is not a directory: %s", op.Path)
	}
	return nil
}

func (op *MkdirOp) Execute(ctx context.Context) error {
	mode := op.Mode
	if mode == 0 {
		mode = 0755
	}
	return os.MkdirAll(op.Path, mode)
}

func (op *MkdirOp) Description() string {
	return fmt.Sprintf("Create directory %s", op.Path)
}

// writeFileAtomic writes content to a temp file next to path and renames it
// into place. Rename is atomic on the same filesystem volume, so readers see
// either the old file or the complete new one.
func writeFileAtomic(path string, content []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".mintforge-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	// On any failure below, remove the temp file so no droppings remain.
	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	if _, err := tmp.Write(content); err != nil {
		return cleanup(fmt.Errorf("writing %s: %w", path, err))
	}
	if err := tmp.Chmod(mode); err != nil {
		return cleanup(fmt.Errorf("setting mode on %s: %w", path, err))
	}
	// Flush file contents before the rename publishes them.
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("syncing %s: %w", path, err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file for %s: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming into %s: %w", path, err)
	}

	return nil
}

// Paths returns the target paths of all operations, in order. The scaffolder
// uses this to build undo actions for a step.
func Paths(ops []Operation) []string {
	paths := make([]string, 0, len(ops))
	for _, op := range ops {
		switch o := op.(type) {
		case *WriteFileOp:
			paths = append(paths, o.Path)
		case *MkdirOp:
			paths = append(paths, o.Path)
		}
	}
	return paths
}
