package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ExecuteOptions configures execution behavior
type ExecuteOptions struct {
	DryRun   bool
	Force    bool
	Resolver *Resolver // Optional conflict resolution; consulted when a target file exists
	Writer   io.Writer // Where to write output (defaults to os.Stdout)
}

// Execute runs operations with validation.
//
// Phase 1 validates every operation before anything is written. A conflict
// (target file exists) is routed through opts.Resolver when one is set:
// Overwrite keeps the operation, Skip drops it, Cancel aborts the run.
// Phase 2 executes the surviving operations in order.
//
// DryRun only reports what would be executed. Validation is skipped too,
// since WriteFileOp.Validate creates parent directories as a side effect and
// a dry run must leave the filesystem untouched.
func Execute(ctx context.Context, ops []Operation, opts ExecuteOptions) error {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	if opts.DryRun {
		for _, op := range ops {
			fmt.Fprintf(opts.Writer, "✓ [DRY RUN] %s\n", op.Description())
		}
		return nil
	}

	// Phase 1: Validate all operations
	keep := make([]Operation, 0, len(ops))
	for _, op := range ops {
		err := op.Validate(ctx, opts.Force)
		if err == nil {
			keep = append(keep, op)
			continue
		}

		var conflict *ConflictError
		if !errors.As(err, &conflict) || opts.Resolver == nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		resolution, rerr := resolveConflict(opts.Resolver, conflict.Path, op)
		if rerr != nil {
			return fmt.Errorf("resolving conflict for %s: %w", conflict.Path, rerr)
		}
		switch resolution {
		case Overwrite:
			keep = append(keep, op)
		case Skip:
			fmt.Fprintf(opts.Writer, "- Skipped %s (exists)\n", conflict.Path)
		case Cancel:
			return fmt.Errorf("cancelled at %s", conflict.Path)
		}
	}

	// Phase 2: Execute
	for _, op := range keep {
		if err := op.Execute(ctx); err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
		fmt.Fprintf(opts.Writer, "✓ %s\n", op.Description())
	}

	return nil
}

// resolveConflict reads the existing file and asks the resolver what to do.
func resolveConflict(r *Resolver, path string, op Operation) (ConflictResolution, error) {
	existing, err := os.ReadFile(path)
	if err != nil {
		return Cancel, fmt.Errorf("reading existing file: %w", err)
	}

	var newer []byte
	if w, ok := op.(*WriteFileOp); ok {
		newer = w.Content
	}

	return r.ResolveConflict(path, existing, newer)
}
