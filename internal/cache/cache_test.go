// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFIFOEviction(t *testing.T) {
	var evicted []string
	c := New[int](OnEvict(func(key string) {
		evicted = append(evicted, key)
	}))
	require.Equal(t, DefaultCapacity, c.Capacity())

	for i := 0; i <= DefaultCapacity; i++ {
		c.Insert(fmt.Sprintf("f%d", i), i)
	}
	assert.Equal(t, []string{"f0"}, evicted)
	assert.Equal(t, DefaultCapacity, c.Len())
	_, ok := c.Lookup("f0")
	assert.False(t, ok)
	for i := 1; i <= DefaultCapacity; i++ {
		v, ok := c.Lookup(fmt.Sprintf("f%d", i))
		require.True(t, ok, "f%d", i)
		assert.Equal(t, i, v)
	}
}

func TestLookupDoesNotRefresh(t *testing.T) {
	c := New[string](Capacity(2))
	c.Insert("a", "1")
	c.Insert("b", "2")
	_, ok := c.Lookup("a")
	require.True(t, ok)
	c.Insert("c", "3")
	_, ok = c.Lookup("a")
	assert.False(t, ok, "eviction follows insertion order, not usage")
	assert.Equal(t, []string{"b", "c"}, c.Keys())
}

func TestInsertExisting(t *testing.T) {
	c := New[string](Capacity(2))
	c.Insert("a", "1")
	c.Insert("b", "2")
	c.Insert("a", "3")
	assert.Equal(t, []string{"a", "b"}, c.Keys())
	v, _ := c.Lookup("a")
	assert.Equal(t, "3", v)

	c.Insert("c", "4")
	assert.Equal(t, []string{"b", "c"}, c.Keys())
}

func TestRemove(t *testing.T) {
	c := New[int](Capacity(0))
	assert.Equal(t, DefaultCapacity, c.Capacity())
	c.Insert("a", 1)
	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"))
	assert.Equal(t, 0, c.Len())
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int](Capacity(10))
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (w*200+i)%25)
				c.Insert(key, i)
				c.Lookup(key)
			}
		}(w)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 10)
	assert.Len(t, c.Keys(), c.Len())
}
