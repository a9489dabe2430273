// Package frontend generates the Next.js mint page package.
package frontend

import (
	"embed"
	"fmt"
	"path/filepath"

	"github.com/mintforge/mintforge/generator"
	"github.com/mintforge/mintforge/internal/scaffold"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Generator generates the frontend package
type Generator struct {
	renderer *generator.Renderer
	dir      string
}

// New creates a frontend generator rooted at the project dir
func New(dir string) *Generator {
	return &Generator{
		renderer: generator.NewRenderer(),
		dir:      dir,
	}
}

// Generate renders the frontend package under packages/frontend
func (g *Generator) Generate(p scaffold.Project) ([]generator.Operation, error) {
	pkgDir := filepath.Join(g.dir, "packages", "frontend")

	targets := []struct {
		src  string
		dest string
	}{
		{"templates/package.json.tmpl", "package.json"},
		{"templates/next.config.mjs.tmpl", "next.config.mjs"},
		{"templates/layout.tsx.tmpl", filepath.Join("app", "layout.tsx")},
		{"templates/page.tsx.tmpl", filepath.Join("app", "page.tsx")},
		{"templates/env.local.example.tmpl", ".env.local.example"},
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
