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

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".repdesk", "config.toml"), store.Path())
}

func TestConfigStore_GetString(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("review.flags_file", "/tmp/flags.jsonl"))

	assert.Equal(t, "/tmp/flags.jsonl", store.GetString("review.flags_file"))
	assert.Equal(t, "", store.GetString("nonexistent"))

	require.NoError(t, store.Set("retrieval.page_size", 3))
	assert.Equal(t, "", store.GetString("retrieval.page_size"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("retrieval.page_size", 5))

	assert.Equal(t, 5, store.GetInt("retrieval.page_size"))
	assert.Equal(t, 0, store.GetInt("nonexistent"))

	require.NoError(t, store.Set("review.flags_file", "not an int"))
	assert.Equal(t, 0, store.GetInt("review.flags_file"))
}

func TestConfigStore_GetInt_Int64Type(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	store.mu.Lock()
	store.data["mcp.session_ttl_minutes"] = int64(45)
	store.mu.Unlock()

	assert.Equal(t, 45, store.GetInt("mcp.session_ttl_minutes"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("retrieval.search_threshold", 0.25))
	require.NoError(t, store.Set("retrieval.similar_threshold", 1))
	require.NoError(t, store.Set("review.flags_file", "x"))

	assert.InDelta(t, 0.25, store.GetFloat("retrieval.search_threshold"), 1e-9)
	assert.InDelta(t, 1.0, store.GetFloat("retrieval.similar_threshold"), 1e-9)
	assert.Zero(t, store.GetFloat("review.flags_file"))
	assert.Zero(t, store.GetFloat("nonexistent"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("on", true))
	require.NoError(t, store.Set("off", false))
	require.NoError(t, store.Set("text", "true"))

	assert.True(t, store.GetBool("on"))
	assert.False(t, store.GetBool("off"))
	assert.False(t, store.GetBool("text"))
	assert.False(t, store.GetBool("nonexistent"))
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	val, ok := store.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store1.Set("retrieval.search_threshold", 0.15))
	require.NoError(t, store1.Set("retrieval.page_size", 4))
	require.NoError(t, store1.Set("review.flags_file", "flags.jsonl"))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.InDelta(t, 0.15, store2.GetFloat("retrieval.search_threshold"), 1e-9)
	assert.Equal(t, 4, store2.GetInt("retrieval.page_size"))
	assert.Equal(t, "flags.jsonl", store2.GetString("review.flags_file"))
}

func TestConfigStore_WritesTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("retrieval.page_size", 3))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[retrieval]")
	assert.Contains(t, string(data), "page_size = 3")
}

func TestConfigStore_ReadsHandWrittenTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[retrieval]\nsearch_threshold = 0.3\npage_size = 2\n\n[mcp]\nsession_ttl_minutes = 10\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.InDelta(t, 0.3, store.GetFloat("retrieval.search_threshold"), 1e-9)
	assert.Equal(t, 2, store.GetInt("retrieval.page_size"))
	assert.Equal(t, 10, store.GetInt("mcp.session_ttl_minutes"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("test", "value"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("# Just a comment\n\n"), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("any_key")
	assert.False(t, ok)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetFloat(key)
			_, _ = store.Get(key)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}

func TestConfigStore_Save_Explicit(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	store.mu.Lock()
	store.data["review.flags_file"] = "manual.jsonl"
	store.mu.Unlock()

	require.NoError(t, store.Save())

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "manual.jsonl", store2.GetString("review.flags_file"))
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Save_WriteFileError(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("test", "value"))
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("another", "value"))
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("channel", make(chan int)))
}

func TestNestMap(t *testing.T) {
	tests := []struct {
		name string
		flat map[string]any
		want map[string]any
	}{
		{
			name: "top level",
			flat: map[string]any{"a": 1},
			want: map[string]any{"a": 1},
		},
		{
			name: "shared table",
			flat: map[string]any{"retrieval.page_size": 3, "retrieval.search_threshold": 0.2},
			want: map[string]any{"retrieval": map[string]any{"page_size": 3, "search_threshold": 0.2}},
		},
		{
			name: "deep",
			flat: map[string]any{"a.b.c": "x"},
			want: map[string]any{"a": map[string]any{"b": map[string]any{"c": "x"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nestMap(tt.flat))
			assert.Equal(t, tt.flat, flattenMap(nestMap(tt.flat), ""))
		})
	}
}

func TestNestMap_LeafAndTableConflict(t *testing.T) {
	flat := map[string]any{"a": 1, "a.b": 2}

	nested := nestMap(flat)

	// The nested key cannot live under a leaf, so it stays dotted.
	assert.Equal(t, map[string]any{"a": 1, "a.b": 2}, nested)
	assert.Equal(t, flat, flattenMap(nested, ""))
}
