package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.values)
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("retrieval.search_threshold", 0.25))
	require.NoError(t, store.Set("retrieval.page_size", 5))
	require.NoError(t, store.Set("review.flags_file", "/tmp/flags.jsonl"))
	require.NoError(t, store.Set("tui.enabled", true))

	assert.InDelta(t, 0.25, store.GetFloat("retrieval.search_threshold"), 1e-12)
	assert.Equal(t, 5, store.GetInt("retrieval.page_size"))
	assert.Equal(t, "/tmp/flags.jsonl", store.GetString("review.flags_file"))
	assert.True(t, store.GetBool("tui.enabled"))
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("key1", "original"))
	require.NoError(t, store.Set("key1", "updated"))

	val, ok := store.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "updated", val)
}

func TestConfigStore_GetFloat(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("f64", 0.5))
	require.NoError(t, store.Set("f32", float32(0.5)))
	require.NoError(t, store.Set("int", 1))
	require.NoError(t, store.Set("int64", int64(2)))
	require.NoError(t, store.Set("str", "0.5"))

	tests := []struct {
		key  string
		want float64
	}{
		{"f64", 0.5},
		{"f32", 0.5},
		{"int", 1},
		{"int64", 2},
		{"str", 0},
		{"missing", 0},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.InDelta(t, tt.want, store.GetFloat(tt.key), 1e-6)
		})
	}
}

func TestConfigStore_WrongTypes(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("num", 42))
	require.NoError(t, store.Set("str", "hello"))

	assert.Equal(t, "", store.GetString("num"))
	assert.Equal(t, 0, store.GetInt("str"))
	assert.False(t, store.GetBool("str"))
}

func TestConfigStore_Delete(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("key", "value"))

	store.Delete("key")

	_, ok := store.Get("key")
	assert.False(t, ok)
}

func TestConfigStore_SaveLoadNoop(t *testing.T) {
	store := NewConfigStore()
	assert.NoError(t, store.Save())
	assert.NoError(t, store.Load())
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("counter", n)
		}(i)
		go func() {
			defer wg.Done()
			_ = store.GetInt("counter")
		}()
	}
	wg.Wait()

	_, ok := store.Get("counter")
	assert.True(t, ok)
}
