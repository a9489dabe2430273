package contracts

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/mintforge/mintforge/generator"
	"github.com/mintforge/mintforge/internal/scaffold"
)

func testProject() scaffold.Project {
	return scaffold.Project{
		Name:      "cool-cats",
		Symbol:    "COOL",
		MaxSupply: 5000,
		MintPrice: 0.08,
		Network:   "sepolia",
	}
}

func TestGenerate_ContractNameFollowsProject(t *testing.T) {
	ops, err := New("/project").Generate(testProject())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	wantSol := filepath.Join("/project", "packages", "contracts", "contracts", "CoolCats.sol")
	content := opContent(t, ops, wantSol)

	if !strings.Contains(content, "contract CoolCats") {
		t.Errorf("contract declaration missing:\n%s", content)
	}
	if !strings.Contains(content, `"COOL"`) {
		t.Errorf("collection symbol missing:\n%s", content)
	}
	if !strings.Contains(content, "MAX_SUPPLY = 5000") {
		t.Errorf("max supply constant missing:\n%s", content)
	}
	if !strings.Contains(content, "0.08 ether") {
		t.Errorf("mint price constant missing:\n%s", content)
	}
}

func TestGenerate_HardhatConfigNetwork(t *testing.T) {
	ops, err := New("/project").Generate(testProject())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	content := opContent(t, ops, filepath.Join("/project", "packages", "contracts", "hardhat.config.ts"))
	if !strings.Contains(content, "sepolia") {
		t.Errorf("hardhat config missing network:\n%s", content)
	}
}

func TestGenerate_AllTargets(t *testing.T) {
	ops, err := New("/project").Generate(testProject())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	pkg := filepath.Join("/project", "packages", "contracts")
	want := []string{
		filepath.Join(pkg, "package.json"),
		filepath.Join(pkg, "hardhat.config.ts"),
		filepath.Join(pkg, "contracts", "CoolCats.sol"),
		filepath.Join(pkg, "scripts", "deploy.ts"),
	}

	paths := generator.Paths(ops)
	if len(paths) != len(want) {
		t.Fatalf("expected %d operations, got %d: %v", len(want), len(paths), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("op %d: expected %s, got %s", i, want[i], paths[i])
		}
	}
}

func opContent(t *testing.T, ops []generator.Operation, path string) string {
	t.Helper()
	for _, op := range ops {
		if w, ok := op.(*generator.WriteFileOp); ok && w.Path == path {
			return string(w.Content)
		}
	}
	t.Fatalf("no operation writes %s", path)
	return ""
}
