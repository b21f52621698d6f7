package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interactiv/extension/pkg/native"
)

func TestModelCache_NewModelCache(t *testing.T) {
	cache := NewModelCache()

	require.NotNil(t, cache)
	assert.Equal(t, 0, cache.Len())
}

func TestModelCache_Hash(t *testing.T) {
	cache := NewModelCache()

	assert.Equal(t, uint32(0xB779A091), cache.Hash("adder"))
	assert.Equal(t, native.Joaat("prop_table_03_chr"), cache.Hash("prop_table_03_chr"))
	assert.Equal(t, 2, cache.Len())

	// cached lookups do not grow the cache
	cache.Hash("adder")
	assert.Equal(t, 2, cache.Len())
}

func TestModelCache_Reset(t *testing.T) {
	cache := NewModelCache()
	cache.Hash("a")
	cache.Hash("b")
	require.Equal(t, 2, cache.Len())

	cache.Reset()
	assert.Equal(t, 0, cache.Len())
}

func TestModelCache_ConcurrentAccess(t *testing.T) {
	cache := NewModelCache()
	names := []string{"prop_chair_01a", "prop_bench_01a", "prop_vend_soda_01", "prop_vend_coffe_01"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := names[i%len(names)]
			assert.Equal(t, native.Joaat(name), cache.Hash(name))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, len(names), cache.Len())
}

func TestSafeCounter(t *testing.T) {
	var c SafeCounter
	assert.Equal(t, uint64(0), c.Value())

	assert.Equal(t, uint64(1), c.Inc())
	c.Set(41)
	assert.Equal(t, uint64(42), c.Inc())
	assert.Equal(t, uint64(42), c.Value())
}

func TestSafeCounter_Concurrent(t *testing.T) {
	var c SafeCounter
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Inc()
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(100), c.Value())
}
