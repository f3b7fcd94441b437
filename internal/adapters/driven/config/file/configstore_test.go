package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_CreatesNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	_, err := NewConfigStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[analysis\nbase_url ="), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("analysis.base_url", "http://analysis:8000"))
	require.NoError(t, store.Set("analysis.timeout_seconds", int64(30)))
	require.NoError(t, store.Set("catalog.watch", true))
	require.NoError(t, store.Set("catalog.extra", []string{"i-9", "i-94"}))

	assert.Equal(t, "http://analysis:8000", store.GetString("analysis.base_url"))
	assert.Equal(t, 30, store.GetInt("analysis.timeout_seconds"))
	assert.True(t, store.GetBool("catalog.watch"))
	assert.Equal(t, []string{"i-9", "i-94"}, store.GetStringSlice("catalog.extra"))

	// Wrong types and missing keys read as zero values.
	assert.Equal(t, 0, store.GetInt("analysis.base_url"))
	assert.Empty(t, store.GetString("analysis.timeout_seconds"))
	assert.False(t, store.GetBool("missing"))
	assert.Nil(t, store.GetStringSlice("missing"))

	_, ok := store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_PersistsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("analysis.base_url", "http://analysis:8000"))
	require.NoError(t, store.Set("analysis.requests_per_second", 2.5))
	require.NoError(t, store.Set("sessions.backend", "redis"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[analysis]")
	assert.Contains(t, string(raw), "[sessions]")

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "http://analysis:8000", reopened.GetString("analysis.base_url"))
	assert.Equal(t, "redis", reopened.GetString("sessions.backend"))

	rps, ok := reopened.Get("analysis.requests_per_second")
	require.True(t, ok)
	assert.InDelta(t, 2.5, rps, 1e-9)
}

func TestConfigStore_IntegersReloadAsInt64(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("analysis.timeout_seconds", 45))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	val, ok := reopened.Get("analysis.timeout_seconds")
	require.True(t, ok)
	assert.Equal(t, int64(45), val)
	assert.Equal(t, 45, reopened.GetInt("analysis.timeout_seconds"))
}

func TestConfigStore_LoadHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[analysis]
base_url = "http://10.0.0.5:8000"

[server]
addr = ":9090"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8000", store.GetString("analysis.base_url"))
	assert.Equal(t, ":9090", store.GetString("server.addr"))
}

func TestConfigStore_LoadAfterRemove(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("server.addr", ":8080"))
	require.NoError(t, os.Remove(store.Path()))

	require.NoError(t, store.Load())
	_, ok := store.Get("server.addr")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("server.addr", ":8080")
		}()
		go func() {
			defer wg.Done()
			_ = store.GetString("server.addr")
		}()
	}
	wg.Wait()

	assert.Equal(t, ":8080", store.GetString("server.addr"))
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"analysis.base_url":        "u",
		"analysis.timeout_seconds": int64(3),
		"top":                      true,
	})

	assert.Equal(t, map[string]any{
		"analysis": map[string]any{"base_url": "u", "timeout_seconds": int64(3)},
		"top":      true,
	}, nested)
}

func TestNestMap_ScalarWinsOverTable(t *testing.T) {
	nested := nestMap(map[string]any{
		"catalog":      "x",
		"catalog.path": "y",
	})

	assert.Equal(t, map[string]any{"catalog": "x"}, nested)
}

func TestFlattenMap_RoundTrip(t *testing.T) {
	flat := map[string]any{
		"analysis.base_url": "u",
		"sessions.backend":  "sqlite",
		"server.addr":       ":8080",
	}
	assert.Equal(t, flat, flattenMap(nestMap(flat), ""))
}
