package generator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mintforge/mintforge/generator"
)

func TestTransaction_SuccessCommit(t *testing.T) {
	var undone []string
	tx := generator.NewTransaction(nil)

	for i := 1; i <= 3; i++ {
		name := fmt.Sprintf("step%d", i)
		err := tx.RunStep(name, func() error { return nil }, func() error {
			undone = append(undone, name)
			return nil
		})
		if err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
	}

	tx.Commit()
	tx.Unwind() // deferred unwind after commit must be a no-op

	if len(undone) != 0 {
		t.Errorf("undos ran after commit: %v", undone)
	}
}

func TestTransaction_UnwindOrder(t *testing.T) {
	var undone []string
	tx := generator.NewTransaction(nil)

	undo := func(name string) func() error {
		return func() error {
			undone = append(undone, name)
			return nil
		}
	}

	tx.RunStep("step1", func() error { return nil }, undo("U1"))
	tx.RunStep("step2", func() error { return nil }, undo("U2"))
	tx.RunStep("step3", func() error { return nil }, undo("U3"))

	err := tx.RunStep("step4", func() error { return errors.New("boom") }, undo("U4"))
	if err == nil {
		t.Fatal("expected step4 to fail")
	}

	// Exactly the three earlier undos, most recent first
	want := []string{"U3", "U2", "U1"}
	if len(undone) != len(want) {
		t.Fatalf("undone = %v, want %v", undone, want)
	}
	for i := range want {
		if undone[i] != want[i] {
			t.Errorf("undone[%d] = %s, want %s", i, undone[i], want[i])
		}
	}
}

func TestTransaction_UnwindResilience(t *testing.T) {
	var undone []string
	var warnings []string

	tx := generator.NewTransaction(func(msg string) {
		warnings = append(warnings, msg)
	})

	tx.RunStep("step1", func() error { return nil }, func() error {
		undone = append(undone, "U1")
		return nil
	})
	tx.RunStep("step2", func() error { return nil }, func() error {
		return errors.New("undo blew up")
	})

	err := tx.RunStep("step3", func() error { return errors.New("boom") }, nil)
	if err == nil {
		t.Fatal("expected step3 to fail")
	}

	// U2 failing must not stop U1
	if len(undone) != 1 || undone[0] != "U1" {
		t.Errorf("undone = %v, want [U1]", undone)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want one entry", warnings)
	}
}

func TestTransaction_UnwindAtMostOnce(t *testing.T) {
	count := 0
	tx := generator.NewTransaction(nil)

	tx.RunStep("step1", func() error { return nil }, func() error {
		count++
		return nil
	})

	tx.Unwind()
	tx.Unwind()

	if count != 1 {
		t.Errorf("undo ran %d times, want 1", count)
	}
}

func TestTransaction_NoStepsAfterUnwind(t *testing.T) {
	tx := generator.NewTransaction(nil)
	tx.Unwind()

	err := tx.RunStep("late", func() error { return nil }, nil)
	if err == nil {
		t.Fatal("expected error running step after unwind")
	}
}

func TestTransaction_FailedStepErrorNamesStep(t *testing.T) {
	tx := generator.NewTransaction(nil)

	err := tx.RunStep("create backend package", func() error { return errors.New("permission denied") }, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != `step "create backend package": permission denied` {
		t.Errorf("error = %q", got)
	}
}

func TestTransaction_NilUndoAllowed(t *testing.T) {
	tx := generator.NewTransaction(nil)

	if err := tx.RunStep("stateless", func() error { return nil }, nil); err != nil {
		t.Fatal(err)
	}
	if tx.Steps() != 0 {
		t.Errorf("Steps = %d, want 0", tx.Steps())
	}

	tx.Unwind() // must not panic
}
