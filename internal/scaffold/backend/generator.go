// Package backend generates the Express metadata API package.
package backend

import (
	"embed"
	"fmt"
	"path/filepath"

	"github.com/mintforge/mintforge/generator"
	"github.com/mintforge/mintforge/internal/scaffold"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Generator generates the backend package
type Generator struct {
	renderer *generator.Renderer
	dir      string
}

// New creates a backend generator rooted at the project dir
func New(dir string) *Generator {
	return &Generator{
		renderer: generator.NewRenderer(),
		dir:      dir,
	}
}

// Generate renders the backend package under packages/backend
func (g *Generator) Generate(p scaffold.Project) ([]generator.Operation, error) {
	pkgDir := filepath.Join(g.dir, "packages", "backend")

	targets := []struct {
		src  string
		dest string
	}{
		{"templates/package.json.tmpl", "package.json"},
		{"templates/tsconfig.json.tmpl", "tsconfig.json"},
		{"templates/server.ts.tmpl", filepath.Join("src", "server.ts")},
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
