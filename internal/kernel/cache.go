// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package kernel

// cache is used for caching apply/not/restrict results
type cache struct {
	table []cacheData
}

// cacheStat stores status information about cache usage
type cacheStat struct {
	uniqueAccess int // accesses to the unique node table
	uniqueHit    int // entries actually found in the the unique node table
	uniqueMiss   int // entries not found in the the unique node table
	opHit        int // entries found in the operator caches
	opMiss       int // entries not found in the operator caches
}

// cacheData is a unit of information stored in the operation caches
type cacheData struct {
	res int
	a   int
	b   int
	c   int
}

type applycache struct {
	cache          // Cache for apply and not results
	op    Operator // Current operation during an apply
}

type restrictcache struct {
	cache     // Cache for restrict results
	id    int // Current restriction, encoded as (level << 1) | value, plus one
}

func (bc *cache) init(size int) {
	bc.table = make([]cacheData, primeGte(size))
	bc.reset()
}

func (bc *cache) reset() {
	for k := range bc.table {
		bc.table[k].a = -1
	}
}

func (b *BDD) cacheinit() {
	size := b.cachesize
	if b.cacheratio > 0 {
		if s := len(b.nodes) * b.cacheratio / 100; s > size {
			size = s
		}
	}
	b.applycache.init(size)
	b.restrictcache.init(size)
	b.cachedfor = len(b.nodes)
}

// cacheresize grows the caches so that they keep the ratio set with
// Cacheratio. Cached entries are lost.
func (b *BDD) cacheresize() {
	b.cachedfor = len(b.nodes)
	if len(b.nodes)*b.cacheratio/100 <= len(b.applycache.table) {
		return
	}
	b.cacheinit()
}
