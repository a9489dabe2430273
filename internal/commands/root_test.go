package commands

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

func TestInExistingProject(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	assert.False(t, InExistingProject(), "empty directory is not a project")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "mintforge.yml"), []byte("not: a: valid: manifest"), 0644))
	assert.False(t, InExistingProject(), "unparseable manifest is not a project")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "mintforge.yml"), []byte("project: drop\n"), 0644))
	assert.True(t, InExistingProject())
}

func TestRootCmd_Flags(t *testing.T) {
	cmd := RootCmd()

	assert.NotNil(t, cmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-file"))
	assert.NotEmpty(t, cmd.Version)
}
