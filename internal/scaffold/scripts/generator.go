// Package scripts generates the operational scripts package (minting
// helpers run against a deployed contract).
package scripts

import (
	"embed"
	"fmt"
	"path/filepath"

	"github.com/mintforge/mintforge/generator"
	"github.com/mintforge/mintforge/internal/scaffold"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Generator generates the scripts package
type Generator struct {
	renderer *generator.Renderer
	dir      string
}

// New creates a scripts generator rooted at the project dir
func New(dir string) *Generator {
	return &Generator{
		renderer: generator.NewRenderer(),
		dir:      dir,
	}
}

// Generate renders the scripts package under packages/scripts
func (g *Generator) Generate(p scaffold.Project) ([]generator.Operation, error) {
	pkgDir := filepath.Join(g.dir, "packages", "scripts")

	targets := []struct {
		src  string
		dest string
	}{
		{"templates/package.json.tmpl", "package.json"},
		{"templates/mint.ts.tmpl", filepath.Join("src", "mint.ts")},
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
