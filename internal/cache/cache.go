// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package cache provides a bounded map with first-in first-out eviction: when
// the cache is full, inserting a new key evicts the oldest inserted key,
// whatever the lookups made since.
package cache

import (
	"container/list"
	"sync"
)

// DefaultCapacity is the capacity used when none, or a non positive one, is
// given.
const DefaultCapacity = 100

type options struct {
	capacity int
	onEvict  func(key string)
}

// Option is the type of configuration options accepted by New.
type Option func(*options)

// Capacity sets the maximal number of entries.
func Capacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// OnEvict registers a function called with the key of every evicted entry.
// It is called with the lock of the cache held and must not use the cache.
func OnEvict(f func(key string)) Option {
	return func(o *options) {
		o.onEvict = f
	}
}

type entry[V any] struct {
	key   string
	value V
}

// FIFO is a bounded cache with insertion-order eviction. It is safe for
// concurrent use: a single RWMutex protects both lookups and mutations.
type FIFO[V any] struct {
	mu      sync.RWMutex
	entries map[string]*list.Element
	queue   *list.List // oldest entry at the front
	options
}

// New returns an empty cache.
func New[V any](opts ...Option) *FIFO[V] {
	o := options{capacity: DefaultCapacity}
	for _, f := range opts {
		f(&o)
	}
	return &FIFO[V]{
		entries: make(map[string]*list.Element),
		queue:   list.New(),
		options: o,
	}
}

// Lookup returns the value associated with key, if any. It does not change
// the eviction order.
func (c *FIFO[V]) Lookup(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, ok := c.entries[key]; ok {
		return e.Value.(*entry[V]).value, true
	}
	var zero V
	return zero, false
}

// Insert associates value with key. A key already present keeps its place in
// the eviction order. Otherwise, the oldest entry is evicted when the cache
// is full.
func (c *FIFO[V]) Insert(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		e.Value.(*entry[V]).value = value
		return
	}
	for c.queue.Len() >= c.capacity {
		oldest := c.queue.Front()
		k := oldest.Value.(*entry[V]).key
		c.queue.Remove(oldest)
		delete(c.entries, k)
		if c.onEvict != nil {
			c.onEvict(k)
		}
	}
	c.entries[key] = c.queue.PushBack(&entry[V]{key: key, value: value})
}

// Remove deletes key from the cache and reports whether it was present.
func (c *FIFO[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.queue.Remove(e)
	delete(c.entries, key)
	return true
}

// Len returns the number of entries.
func (c *FIFO[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.queue.Len()
}

// Capacity returns the maximal number of entries.
func (c *FIFO[V]) Capacity() int {
	return c.capacity
}

// Keys returns the keys from the oldest to the newest.
func (c *FIFO[V]) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := make([]string, 0, c.queue.Len())
	for e := c.queue.Front(); e != nil; e = e.Next() {
		res = append(res, e.Value.(*entry[V]).key)
	}
	return res
}
