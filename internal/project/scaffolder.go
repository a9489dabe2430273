// Package project orchestrates scaffolding runs. A run is a sequence of
// steps executed under a generator.Transaction: every step that touches disk
// registers an undo action, and the first failure rolls everything back so
// the target is left as it was found.
package project

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/mintforge/mintforge/exec"
	"github.com/mintforge/mintforge/generator"
	"github.com/mintforge/mintforge/internal/prereq"
	"github.com/mintforge/mintforge/internal/scaffold"
	"github.com/mintforge/mintforge/internal/scaffold/backend"
	"github.com/mintforge/mintforge/internal/scaffold/contracts"
	"github.com/mintforge/mintforge/internal/scaffold/frontend"
	"github.com/mintforge/mintforge/internal/scaffold/scripts"
	"github.com/mintforge/mintforge/internal/scaffold/workspace"
)

// Scaffolder creates new mintforge projects
type Scaffolder struct {
	executor *exec.Executor
	resolver *generator.Resolver
	warn     generator.WarnFunc
	out      io.Writer
	verbose  bool
}

// Option configures a Scaffolder
type Option func(*Scaffolder)

// WithExecutor replaces the subprocess executor (mocked in tests)
func WithExecutor(e *exec.Executor) Option {
	return func(s *Scaffolder) { s.executor = e }
}

// WithResolver sets the conflict resolver consulted for existing files
func WithResolver(r *generator.Resolver) Option {
	return func(s *Scaffolder) { s.resolver = r }
}

// WithWarnFunc sets the sink for non-fatal warnings raised during rollback
func WithWarnFunc(warn generator.WarnFunc) Option {
	return func(s *Scaffolder) { s.warn = warn }
}

// WithOutput redirects per-operation progress lines (defaults to stdout)
func WithOutput(w io.Writer) Option {
	return func(s *Scaffolder) { s.out = w }
}

// WithVerbose streams subprocess output instead of hiding it behind a spinner
func WithVerbose(v bool) Option {
	return func(s *Scaffolder) { s.verbose = v }
}

// NewScaffolder creates a project scaffolder
func NewScaffolder(opts ...Option) *Scaffolder {
	s := &Scaffolder{
		executor: exec.NewExecutor(nil),
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scaffold creates a new project according to cfg. It is all-or-nothing:
// on any step failure the files and directories created so far are removed
// (best effort, LIFO) and the step's error is returned.
func (s *Scaffolder) Scaffold(ctx context.Context, cfg Config) error {
	// Prerequisites run before anything is written; a failure here needs no
	// cleanup at all.
	if !cfg.SkipPrereqs {
		if err := prereq.Verify(ctx, s.executor, s.requiredTools(cfg)); err != nil {
			return err
		}
	}

	p := scaffold.Project{
		Name:      cfg.Name,
		Symbol:    cfg.Collection.Symbol,
		MaxSupply: cfg.Collection.MaxSupply,
		MintPrice: cfg.Collection.MintPrice,
		Network:   cfg.Collection.Network,
		Minimal:   cfg.Minimal,
	}

	tx := generator.NewTransaction(s.warn)
	defer tx.Unwind() // no-op once committed

	if err := s.createTargetDir(cfg, tx); err != nil {
		return err
	}

	type genStep struct {
		name string
		gen  func() ([]generator.Operation, error)
	}
	steps := []genStep{
		{"create workspace root", func() ([]generator.Operation, error) { return workspace.New(cfg.TargetDir).Generate(p) }},
		{"create contracts package", func() ([]generator.Operation, error) { return contracts.New(cfg.TargetDir).Generate(p) }},
	}
	if !cfg.Minimal {
		steps = append(steps,
			genStep{"create frontend package", func() ([]generator.Operation, error) { return frontend.New(cfg.TargetDir).Generate(p) }},
			genStep{"create backend package", func() ([]generator.Operation, error) { return backend.New(cfg.TargetDir).Generate(p) }},
		)
	}
	steps = append(steps, genStep{"create scripts package", func() ([]generator.Operation, error) { return scripts.New(cfg.TargetDir).Generate(p) }})

	for _, step := range steps {
		if err := s.runGeneration(ctx, tx, cfg, step.name, step.gen); err != nil {
			return err
		}
	}

	if !cfg.DryRun {
		if !cfg.SkipInstall {
			if err := s.installDependencies(ctx, tx, cfg); err != nil {
				return err
			}
		}
		if !cfg.SkipGit {
			if err := s.initRepository(ctx, tx, cfg); err != nil {
				return err
			}
		}
	}

	tx.Commit()
	return nil
}

// requiredTools trims the prerequisite list to what this run will use.
func (s *Scaffolder) requiredTools(cfg Config) []prereq.Tool {
	var tools []prereq.Tool
	for _, tool := range prereq.DefaultTools() {
		switch tool.Name {
		case "pnpm":
			if cfg.SkipInstall {
				continue
			}
		case "git":
			if cfg.SkipGit {
				continue
			}
		}
		tools = append(tools, tool)
	}
	return tools
}

// createTargetDir makes the project directory. When this run created it, the
// undo removes it again; a pre-existing directory is left alone on rollback.
func (s *Scaffolder) createTargetDir(cfg Config, tx *generator.Transaction) error {
	existed, _ := cfg.TargetExists()

	return tx.RunStep("create project directory",
		func() error {
			if cfg.DryRun {
				return nil
			}
			return os.MkdirAll(cfg.TargetDir, 0755)
		},
		func() error {
			if existed {
				return nil
			}
			// Only removes an empty directory; file cleanup happened in the
			// later steps' undos, which run first.
			if err := os.Remove(cfg.TargetDir); err != nil && !os.IsNotExist(err) {
				return err
			}
			return nil
		})
}

// runGeneration executes one generator's operations as a transactional step.
// Cleanup removes exactly the paths this step created, then prunes any
// directories that became empty, so pre-existing files survive a rollback.
// A step that fails partway through execution cleans up its own writes
// before the transaction unwinds the earlier steps.
func (s *Scaffolder) runGeneration(ctx context.Context, tx *generator.Transaction, cfg Config, name string, gen func() ([]generator.Operation, error)) error {
	var created []string

	return tx.RunStep(name,
		func() error {
			ops, err := gen()
			if err != nil {
				return err
			}

			for _, path := range generator.Paths(ops) {
				if _, err := os.Stat(path); os.IsNotExist(err) {
					created = append(created, path)
				}
			}

			execErr := generator.Execute(ctx, ops, generator.ExecuteOptions{
				DryRun:   cfg.DryRun,
				Resolver: s.resolver,
				Writer:   s.out,
			})
			if execErr != nil {
				// The undo below never runs for a failed step; remove what
				// this step managed to write before the error.
				if rmErr := removeCreated(created, cfg.TargetDir); rmErr != nil && s.warn != nil {
					s.warn(fmt.Sprintf("cleanup after failed step %q: %v", name, rmErr))
				}
				return execErr
			}
			return nil
		},
		func() error {
			return removeCreated(created, cfg.TargetDir)
		})
}

// installDependencies runs the package manager in the project directory.
// Its undo removes node_modules so a later failure leaves no half-installed
// tree behind.
func (s *Scaffolder) installDependencies(ctx context.Context, tx *generator.Transaction, cfg Config) error {
	executor := s.executor.WithDir(cfg.TargetDir)

	return tx.RunStep("install dependencies",
		func() error {
			if s.verbose {
				return runStreamed(ctx, executor, s.out, "pnpm", "install")
			}
			return executor.RunWithSpinner(ctx, "Installing dependencies", "pnpm", "install")
		},
		func() error {
			return os.RemoveAll(filepath.Join(cfg.TargetDir, "node_modules"))
		})
}

// initRepository runs git init in the project directory; undo removes .git.
func (s *Scaffolder) initRepository(ctx context.Context, tx *generator.Transaction, cfg Config) error {
	executor := s.executor.WithDir(cfg.TargetDir)

	return tx.RunStep("initialize git repository",
		func() error {
			if s.verbose {
				return runStreamed(ctx, executor, s.out, "git", "init")
			}
			return executor.RunWithSpinner(ctx, "Initializing git repository", "git", "init")
		},
		func() error {
			return os.RemoveAll(filepath.Join(cfg.TargetDir, ".git"))
		})
}

// runStreamed runs a command with its output labeled per line.
func runStreamed(ctx context.Context, executor *exec.Executor, out io.Writer, name string, args ...string) error {
	prefixed := exec.NewPrefixWriter(out, name+" │ ")
	defer prefixed.Flush()

	return executor.WithWriters(prefixed, prefixed).Run(ctx, name, args...)
}

// removeCreated deletes the given paths and prunes directories that became
// empty, walking each parent chain up to (but not including) root.
func removeCreated(created []string, root string) error {
	var firstErr error

	// Longest paths first so files go before their directories.
	sorted := append([]string(nil), created...)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	for _, path := range sorted {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			// Directories with surviving content land here; keep going.
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		pruneEmptyDirs(filepath.Dir(path), root)
	}

	return firstErr
}

// pruneEmptyDirs removes empty directories from dir upward, stopping at root
// or the first non-empty directory.
func pruneEmptyDirs(dir, root string) {
	for dir != root && len(dir) > len(root) {
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}
