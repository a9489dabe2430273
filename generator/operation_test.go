package generator_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mintforge/mintforge/generator"
)

func TestWriteFileOp_AtomicWrite(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "file.txt")

	op := &generator.WriteFileOp{
		Path:    path,
		Content: []byte("exact content"),
		Mode:    0644,
	}

	if err := op.Validate(ctx, false); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if err := op.Execute(ctx); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(got) != "exact content" {
		t.Errorf("content = %q, want %q", got, "exact content")
	}

	// No temp file droppings in the target directory
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".mintforge-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestWriteFileOp_OverwritePreservesOldUntilRename(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "file.txt")

	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	op := &generator.WriteFileOp{Path: path, Content: []byte("new"), Mode: 0644}

	// Conflict without force
	err := op.Validate(ctx, false)
	var conflict *generator.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if got, _ := os.ReadFile(path); string(got) != "old" {
		t.Errorf("old content disturbed by validation: %q", got)
	}

	// Force allows replacement, and replacement is complete
	if err := op.Validate(ctx, true); err != nil {
		t.Fatalf("forced Validate failed: %v", err)
	}
	if err := op.Execute(ctx); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got, _ := os.ReadFile(path); string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}
}

func TestWriteFileOp_NilContent(t *testing.T) {
	ctx := context.Background()
	op := &generator.WriteFileOp{
		Path: filepath.Join(t.TempDir(), "file.txt"),
		Mode: 0644,
	}

	if err := op.Validate(ctx, false); err == nil {
		t.Fatal("expected error for nil content")
	}
}

func TestWriteFileOp_EmptyContent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "empty.txt")
	op := &generator.WriteFileOp{Path: path, Content: []byte{}, Mode: 0644}

	if err := op.Validate(ctx, false); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if err := op.Execute(ctx); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Errorf("size = %d, want 0", info.Size())
	}
}

func TestWriteFileOp_Mode(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "script.sh")
	op := &generator.WriteFileOp{Path: path, Content: []byte("#!/bin/sh\n"), Mode: 0755}

	if err := op.Execute(ctx); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("mode = %o, want 0755", info.Mode().Perm())
	}
}

func TestMkdirOp(t *testing.T) {
	ctx := context.Background()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a", "b")

	op := &generator.MkdirOp{Path: path}
	if err := op.Validate(ctx, false); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if err := op.Execute(ctx); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		t.Errorf("directory not created: %v", err)
	}
}

func TestMkdirOp_PathIsFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	op := &generator.MkdirOp{Path: path}
	if err := op.Validate(ctx, false); err == nil {
		t.Fatal("expected error when path is a file")
	}
}

func TestPaths(t *testing.T) {
	ops := []generator.Operation{
		&generator.WriteFileOp{Path: "/a/b.txt", Content: []byte("x"), Mode: 0644},
		&generator.MkdirOp{Path: "/a/c"},
	}

	paths := generator.Paths(ops)
	if len(paths) != 2 || paths[0] != "/a/b.txt" || paths[1] != "/a/c" {
		t.Errorf("Paths = %v", paths)
	}
}
