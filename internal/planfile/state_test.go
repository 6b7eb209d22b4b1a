package planfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateDBDedupe(t *testing.T) {
	dir := t.TempDir()
	state, err := OpenStateDB(dir)
	require.NoError(t, err)
	defer state.Close()

	done, err := state.IsImported("upper.yaml", 120, "abc")
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, state.MarkImported("upper.yaml", 120, "abc"))

	done, err = state.IsImported("upper.yaml", 120, "abc")
	require.NoError(t, err)
	assert.True(t, done)

	// A changed file is not considered imported.
	done, err = state.IsImported("upper.yaml", 121, "abc")
	require.NoError(t, err)
	assert.False(t, done)
	done, err = state.IsImported("upper.yaml", 120, "def")
	require.NoError(t, err)
	assert.False(t, done)
}

func TestStateDBPersistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()

	state, err := OpenStateDB(dir)
	require.NoError(t, err)
	require.NoError(t, state.MarkImported("plan.yaml", 64, "aa"))
	require.NoError(t, state.Close())

	state, err = OpenStateDB(dir)
	require.NoError(t, err)
	defer state.Close()

	done, err := state.IsImported("plan.yaml", 64, "aa")
	require.NoError(t, err)
	assert.True(t, done)
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Plan\n"), 0o644))

	h1, err := HashFile(path)
	require.NoError(t, err)
	assert.Len(t, h1, 64)

	require.NoError(t, os.WriteFile(path, []byte("name: Other\n"), 0o644))
	h2, err := HashFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
