// Package contracts generates the Hardhat contracts package: an ERC-721
// collection contract, hardhat config, deploy script and package manifest.
package contracts

import (
	"embed"
	"fmt"
	"path/filepath"

	"github.com/mintforge/mintforge/generator"
	"github.com/mintforge/mintforge/internal/scaffold"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Generator generates the contracts package
type Generator struct {
	renderer *generator.Renderer
	dir      string
}

// New creates a contracts generator rooted at the project dir
func New(dir string) *Generator {
	return &Generator{
		renderer: generator.NewRenderer(),
		dir:      dir,
	}
}

// Generate renders the contracts package under packages/contracts
func (g *Generator) Generate(p scaffold.Project) ([]generator.Operation, error) {
	pkgDir := filepath.Join(g.dir, "packages", "contracts")

	targets := []struct {
		src  string
		dest string
	}{
		{"templates/package.json.tmpl", "package.json"},
		{"templates/hardhat.config.ts.tmpl", "hardhat.config.ts"},
		{"templates/contract.sol.tmpl", filepath.Join("contracts", generator.PascalCase(p.Name)+".sol")},
		{"templates/deploy.ts.tmpl", filepath.Join("scripts", "deploy.ts")},
	}

	var ops []generator.Operation
	for _, t := range targets {
		content, err := g.renderer.RenderFS(templatesFS, t.src, p)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", t.src, err)
		}
		ops = append(ops, &generator.WriteFileOp{
			Path:    filepath.Join(pkgDir, t.dest),
			Content: content,
			Mode:    0644,
		})
	}

	return ops, nil
}
