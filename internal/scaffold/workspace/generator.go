// Package workspace generates the monorepo root: package.json,
// pnpm-workspace.yaml, turbo.json, .gitignore, .env.example, README and the
// mintforge.yml manifest.
package workspace

import (
	"embed"
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mintforge/mintforge/generator"
	"github.com/mintforge/mintforge/internal/scaffold"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Generator generates the workspace root files
type Generator struct {
	renderer *generator.Renderer
	dir      string
}

// New creates a workspace generator rooted at dir
func New(dir string) *Generator {
	return &Generator{
		renderer: generator.NewRenderer(),
		dir:      dir,
	}
}

// Generate renders all root files plus the project manifest
func (g *Generator) Generate(p scaffold.Project) ([]generator.Operation, error) {
	var ops []generator.Operation

	for _, t := range sortedTemplates() {
		content, err := g.renderer.RenderFS(templatesFS, t.src, p)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", t.src, err)
		}
		ops = append(ops, &generator.WriteFileOp{
			Path:    filepath.Join(g.dir, t.dest),
			Content: content,
			Mode:    0644,
		})
	}

	manifest, err := renderManifest(p)
	if err != nil {
		return nil, err
	}
	ops = append(ops, &generator.WriteFileOp{
		Path:    filepath.Join(g.dir, "mintforge.yml"),
		Content: manifest,
		Mode:    0644,
	})

	return ops, nil
}

type templatePair struct {
	src  string
	dest string
}

// sortedTemplates returns the template set in a fixed order so generated
// operation lists (and dry-run output) are deterministic.
func sortedTemplates() []templatePair {
	return []templatePair{
		{"templates/package.json.tmpl", "package.json"},
		{"templates/pnpm-workspace.yaml.tmpl", "pnpm-workspace.yaml"},
		{"templates/turbo.json.tmpl", "turbo.json"},
		{"templates/gitignore.tmpl", ".gitignore"},
		{"templates/env.example.tmpl", ".env.example"},
		{"templates/readme.md.tmpl", "README.md"},
	}
}

// manifest is the mintforge.yml shape written into every project.
type manifest struct {
	Project    string             `yaml:"project"`
	Collection manifestCollection `yaml:"collection"`
	Packages   []string           `yaml:"packages"`
}

type manifestCollection struct {
	Symbol    string  `yaml:"symbol"`
	MaxSupply int     `yaml:"max_supply"`
	MintPrice float64 `yaml:"mint_price"`
	Network   string  `yaml:"network"`
}

func renderManifest(p scaffold.Project) ([]byte, error) {
	packages := []string{"contracts", "scripts"}
	if !p.Minimal {
		packages = []string{"contracts", "frontend", "backend", "scripts"}
	}

	data, err := yaml.Marshal(manifest{
		Project: p.Name,
		Collection: manifestCollection{
			Symbol:    p.Symbol,
			MaxSupply: p.MaxSupply,
			MintPrice: p.MintPrice,
			Network:   p.Network,
		},
		Packages: packages,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling mintforge.yml: %w", err)
	}
	return data, nil
}
