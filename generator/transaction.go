package generator

import "fmt"

// WarnFunc receives non-fatal warnings raised while unwinding (e.g., an undo
// action that failed). Defaults to discarding them.
type WarnFunc func(msg string)

// Transaction accumulates undo actions across a sequence of generation steps
// so a failure can roll the filesystem back to its pre-run state.
//
// Usage:
//
//	tx := NewTransaction(output.Warning)
//	defer tx.Unwind() // no-op after Commit
//
//	if err := tx.RunStep("create contracts package", action, undo); err != nil {
//	    return err // undos already ran
//	}
//	tx.Commit()
type Transaction struct {
	undos     []undoEntry
	warn      WarnFunc
	committed bool
	unwound   bool
}

type undoEntry struct {
	name string
	fn   func() error
}

// NewTransaction creates a transaction. warn may be nil.
func NewTransaction(warn WarnFunc) *Transaction {
	if warn == nil {
		warn = func(string) {}
	}
	return &Transaction{warn: warn}
}

// RunStep executes action. On failure it unwinds every undo registered so far
// (most recent first) and returns the step's error. On success it registers
// undo (nil is allowed for steps with nothing to reverse) and returns nil.
func (t *Transaction) RunStep(name string, action func() error, undo func() error) error {
	if t.committed {
		return fmt.Errorf("step %q: transaction already committed", name)
	}
	if t.unwound {
		return fmt.Errorf("step %q: transaction already unwound", name)
	}

	if err := action(); err != nil {
		t.Unwind()
		return fmt.Errorf("step %q: %w", name, err)
	}

	if undo != nil {
		t.undos = append(t.undos, undoEntry{name: name, fn: undo})
	}
	return nil
}

// Unwind invokes all registered undo actions in LIFO order. An undo action
// that fails is reported through the warn func and does not stop the unwind.
// Unwinding happens at most once; later calls (including the deferred one
// after Commit) are no-ops.
func (t *Transaction) Unwind() {
	if t.committed || t.unwound {
		return
	}
	t.unwound = true

	for i := len(t.undos) - 1; i >= 0; i-- {
		entry := t.undos[i]
		if err := entry.fn(); err != nil {
			t.warn(fmt.Sprintf("undo for step %q failed: %v", entry.name, err))
		}
	}
	t.undos = nil
}

// Commit discards the undo stack. After Commit, Unwind is a no-op and the
// transaction cannot run further steps.
func (t *Transaction) Commit() {
	t.committed = true
	t.undos = nil
}

// Steps returns the number of undo actions currently registered.
func (t *Transaction) Steps() int {
	return len(t.undos)
}
