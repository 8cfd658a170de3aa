package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyPath, "/data/wi-sales"))

	val, ok := store.Get(KeyPath)
	assert.True(t, ok)
	assert.Equal(t, "/data/wi-sales", val)
	assert.Equal(t, "/data/wi-sales", store.GetString(KeyPath))
}

func TestConfigStore_GetMissingKey(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("nope"))
	assert.Zero(t, store.GetInt("nope"))
}

func TestConfigStore_GetInt_WrongType(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyStopAfter, "three"))
	assert.Zero(t, store.GetInt(KeyStopAfter))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyStartDate, "2021-06"))
	require.NoError(t, store.Set(KeyStopAfter, 3))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "2021-06", reopened.GetString(KeyStartDate))
	assert.Equal(t, 3, reopened.GetInt(KeyStopAfter))
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyBaseURL, "https://example.invalid/sales"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	// Dot keys round-trip through real TOML tables, not quoted keys.
	assert.Contains(t, string(raw), "[remote]")
	assert.Contains(t, string(raw), "base_url")
}

func TestConfigStore_Keys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set(KeyStartDate, "2020-01"))
	require.NoError(t, store.Set(KeyBaseURL, "https://example.invalid"))

	assert.Equal(t, []string{KeyBaseURL, KeyStartDate}, store.Keys())
}

func TestConfigStore_EmptyFileIsEmptyConfig(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestConfigStore_MalformedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not = [valid"), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}
