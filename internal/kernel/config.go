// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package kernel

// _DEFAULTCACHESIZE is the number of entries in each operation cache when no
// Cachesize option is given.
const _DEFAULTCACHESIZE int = 10000

// configs is used to store the values of different parameters of the kernel
type configs struct {
	varnum      int // number of variables
	nodesize    int // initial capacity of the node table
	cachesize   int // initial cache size (general)
	cacheratio  int // ratio (%) between cache size and node table, 0 if size constant
	maxnodesize int // maximum total number of nodes (0 if no limit)
}

func makeconfigs(varnum int) *configs {
	c := &configs{varnum: varnum}
	c.nodesize = 2*varnum + 2
	c.cachesize = _DEFAULTCACHESIZE
	return c
}

// Option is the type of configuration options accepted by New.
type Option func(*configs)

// Nodesize is a configuration option (function). Used as a parameter in New it
// sets a preferred initial capacity for the node table. The table grows on
// demand during computation; by default we reserve enough room for the two
// constants and one positive and negative literal for each variable.
func Nodesize(size int) Option {
	return func(c *configs) {
		if size >= 2*c.varnum+2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize is a configuration option (function). Used as a parameter in New
// it sets a limit to the number of nodes in the table. An operation trying to
// raise the number of nodes above this limit sets the error status of the
// kernel (see Err) with an error wrapping ErrMemory. The default value (0)
// means that there is no limit.
func Maxnodesize(size int) Option {
	return func(c *configs) {
		c.maxnodesize = size
	}
}

// Cachesize is a configuration option (function). Used as a parameter in New it
// sets the initial number of entries in the operation caches. The default value
// is 10 000. Values are rounded up to the next prime number.
func Cachesize(size int) Option {
	return func(c *configs) {
		if size > 0 {
			c.cachesize = size
		}
	}
}

// Cacheratio is a configuration option (function). Used as a parameter in New
// it sets a "cache ratio" (%) so that caches can grow with the node table.
// With a cache ratio of r, we have r available entries in the cache for every
// 100 slots in the node table. The default value (0) means that the cache
// size never grows.
func Cacheratio(ratio int) Option {
	return func(c *configs) {
		c.cacheratio = ratio
	}
}
