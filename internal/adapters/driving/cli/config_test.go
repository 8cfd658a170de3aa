package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/adapters/driven/config/file"
)

// withConfigStore installs a real TOML store in a temp dir.
func withConfigStore(t *testing.T) {
	t.Helper()
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	configStore = store
	t.Cleanup(func() {
		configStore = nil
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
}

func TestConfigShow_Empty(t *testing.T) {
	withConfigStore(t)

	out, _, err := execute("config", "show")
	require.NoError(t, err)

	assert.Contains(t, out, "No configuration set")
	assert.Contains(t, out, "config.toml")
}

func TestConfigSetAndShow(t *testing.T) {
	withConfigStore(t)

	out, _, err := execute("config", "set", file.KeyStartDate, "2021-06")
	require.NoError(t, err)
	assert.Contains(t, out, "sync.start_date = 2021-06")

	out, _, err = execute("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "sync.start_date = 2021-06")
}

func TestConfigSet_IntegerKey(t *testing.T) {
	withConfigStore(t)

	_, _, err := execute("config", "set", file.KeyStopAfter, "3")
	require.NoError(t, err)

	assert.Equal(t, 3, configStore.GetInt(file.KeyStopAfter))
}

func TestConfigSet_RejectsUnknownKey(t *testing.T) {
	withConfigStore(t)

	_, _, err := execute("config", "set", "sync.bogus", "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key")
}

func TestConfigSet_RejectsNonIntegerValue(t *testing.T) {
	withConfigStore(t)

	_, _, err := execute("config", "set", file.KeyConcurrency, "many")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "integer")
}

func TestConfigSet_RejectsBadStartDate(t *testing.T) {
	withConfigStore(t)

	_, _, err := execute("config", "set", file.KeyStartDate, "June 2021")
	assert.Error(t, err)
}

func TestConfigPath(t *testing.T) {
	withConfigStore(t)

	out, _, err := execute("config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, "config.toml")
}
