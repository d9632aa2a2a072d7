package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/hupe1980/sparsegrid/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU_Eviction(t *testing.T) {
	c := NewLRU(10, nil)

	c.Set("a", make([]byte, 4))
	c.Set("b", make([]byte, 4))
	_, ok := c.Get("a")
	require.True(t, ok)

	// b is the least recently used entry
	c.Set("c", make([]byte, 4))
	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, int64(8), c.Size())
	assert.Equal(t, 2, c.Len())

	hits, misses := c.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

func TestLRU_Replace(t *testing.T) {
	c := NewLRU(10, nil)

	c.Set("a", []byte("old"))
	c.Set("a", []byte("newer"))

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "newer", string(v))
	assert.Equal(t, int64(5), c.Size())
}

func TestLRU_TooLarge(t *testing.T) {
	c := NewLRU(4, nil)
	c.Set("a", make([]byte, 5))
	assert.Zero(t, c.Len())
}

func TestLRU_DeleteAndPurge(t *testing.T) {
	c := NewLRU(100, nil)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Purge()
	assert.Zero(t, c.Len())
	assert.Zero(t, c.Size())
}

func TestLRU_Controller(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 6})
	c := NewLRU(100, rc)

	c.Set("a", make([]byte, 4))
	assert.Equal(t, int64(4), rc.MemoryUsage())

	// refused by the controller
	c.Set("b", make([]byte, 4))
	_, ok := c.Get("b")
	assert.False(t, ok)

	c.Delete("a")
	assert.Zero(t, rc.MemoryUsage())
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU(1<<10, nil)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				key := fmt.Sprintf("%d-%d", i, j%10)
				c.Set(key, make([]byte, 16))
				c.Get(key)
			}
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Size(), int64(1<<10))
}
