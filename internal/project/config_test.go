package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes into dir for the duration of the test, like t.Chdir in Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig("my-drop", ".", defaultCollection)
	require.NoError(t, err)

	assert.Equal(t, "my-drop", cfg.Name)
	assert.True(t, filepath.IsAbs(cfg.TargetDir))
	assert.Equal(t, "my-drop", filepath.Base(cfg.TargetDir))
	assert.Equal(t, "MFT", cfg.Collection.Symbol)
}

func TestNewConfig_InvalidNames(t *testing.T) {
	tests := []struct {
		name    string
		project string
	}{
		{"empty", ""},
		{"dot", "."},
		{"dotdot", ".."},
		{"path separator", "foo/bar"},
		{"absolute", "/tmp/foo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.project, ".", defaultCollection)
			assert.Error(t, err)
		})
	}
}

func TestNewConfig_TargetParent(t *testing.T) {
	parent := t.TempDir()

	cfg, err := NewConfig("drop", parent, defaultCollection)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(parent, "drop"), cfg.TargetDir)
}

func TestLoadDefaults_BuiltIn(t *testing.T) {
	chdir(t, t.TempDir()) // no mintforge.yml here

	cfg, err := LoadDefaults()
	require.NoError(t, err)

	assert.Equal(t, "MFT", cfg.Symbol)
	assert.Equal(t, 10000, cfg.MaxSupply)
	assert.Equal(t, 0.05, cfg.MintPrice)
	assert.Equal(t, "sepolia", cfg.Network)
}

func TestLoadDefaults_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	yml := `collection:
  symbol: COOL
  max_supply: 500
  network: mainnet
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mintforge.yml"), []byte(yml), 0644))
	chdir(t, dir)

	cfg, err := LoadDefaults()
	require.NoError(t, err)

	assert.Equal(t, "COOL", cfg.Symbol)
	assert.Equal(t, 500, cfg.MaxSupply)
	assert.Equal(t, "mainnet", cfg.Network)
	// Keys absent from the file keep their built-in values.
	assert.Equal(t, 0.05, cfg.MintPrice)
}

func TestLoadDefaults_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MINTFORGE_COLLECTION_SYMBOL", "ENVSYM")
	t.Setenv("MINTFORGE_COLLECTION_MAX_SUPPLY", "42")

	cfg, err := LoadDefaults()
	require.NoError(t, err)

	assert.Equal(t, "ENVSYM", cfg.Symbol)
	assert.Equal(t, 42, cfg.MaxSupply)
	// Untouched keys keep their built-in values.
	assert.Equal(t, 0.05, cfg.MintPrice)
	assert.Equal(t, "sepolia", cfg.Network)
}

func TestLoadDefaults_EnvBeatsConfigFile(t *testing.T) {
	dir := t.TempDir()
	yml := `collection:
  symbol: FILE
  network: mainnet
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mintforge.yml"), []byte(yml), 0644))
	chdir(t, dir)
	t.Setenv("MINTFORGE_COLLECTION_SYMBOL", "ENV")

	cfg, err := LoadDefaults()
	require.NoError(t, err)

	assert.Equal(t, "ENV", cfg.Symbol)
	assert.Equal(t, "mainnet", cfg.Network)
}

func TestLoadDefaults_RejectsBadValues(t *testing.T) {
	dir := t.TempDir()
	yml := `collection:
  max_supply: -1
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mintforge.yml"), []byte(yml), 0644))
	chdir(t, dir)

	_, err := LoadDefaults()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_supply")
}

func TestLoadDefaults_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mintforge.yml"), []byte("::: not yaml"), 0644))
	chdir(t, dir)

	_, err := LoadDefaults()
	assert.Error(t, err)
}

func TestTargetExists(t *testing.T) {
	parent := t.TempDir()

	cfg, err := NewConfig("drop", parent, defaultCollection)
	require.NoError(t, err)

	exists, nonEmpty := cfg.TargetExists()
	assert.False(t, exists)
	assert.False(t, nonEmpty)

	require.NoError(t, os.Mkdir(cfg.TargetDir, 0755))
	exists, nonEmpty = cfg.TargetExists()
	assert.True(t, exists)
	assert.False(t, nonEmpty)

	require.NoError(t, os.WriteFile(filepath.Join(cfg.TargetDir, "x"), []byte("x"), 0644))
	exists, nonEmpty = cfg.TargetExists()
	assert.True(t, exists)
	assert.True(t, nonEmpty)
}
