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

func TestNewConfigStoreAt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.d", "pipeline.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte("[source]\ntext_column = \"body\"\n"), 0600))

	store, err := NewConfigStoreAt(path)

	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
	assert.Equal(t, "body", store.GetString("source.text_column"))
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("source.text_column", "body"))

	val, ok := store.Get("source.text_column")
	assert.True(t, ok)
	assert.Equal(t, "body", val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("output.if_exists", "replace"))
	require.NoError(t, store.Set("run.retries", 3))
	require.NoError(t, store.Set("verbose", true))

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "replace", store.GetString("output.if_exists"))
		assert.Equal(t, "", store.GetString("missing"))
		assert.Equal(t, "", store.GetString("verbose"))
	})

	t.Run("int", func(t *testing.T) {
		assert.Equal(t, 3, store.GetInt("run.retries"))
		assert.Equal(t, 0, store.GetInt("missing"))
		assert.Equal(t, 0, store.GetInt("output.if_exists"))
	})

	t.Run("bool", func(t *testing.T) {
		assert.True(t, store.GetBool("verbose"))
		assert.False(t, store.GetBool("missing"))
		assert.False(t, store.GetBool("run.retries"))
	})
}

func TestConfigStore_LoadFlattensTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[source]\ntext_column = \"review\"\n\n[github]\ntoken = \"ghp_test\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "review", store.GetString("source.text_column"))
	assert.Equal(t, "ghp_test", store.GetString("github.token"))
}

func TestConfigStore_Keys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("source.type", "csv"))
	require.NoError(t, store.Set("output.if_exists", "replace"))
	require.NoError(t, store.Set("cassandra.keyspace", "reviews"))

	assert.Equal(t, []string{"cassandra.keyspace", "output.if_exists", "source.type"}, store.Keys())
}

func TestConfigStore_LoadMissingFileStartsEmpty(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Load())
	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	tmpDir := t.TempDir()

	first, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, first.Set("redis.password", "hunter2"))

	second, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "hunter2", second.GetString("redis.password"))

	// TOML integers round trip as int64
	require.NoError(t, first.Set("run.retries", 5))
	third, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 5, third.GetInt("run.retries"))
}
