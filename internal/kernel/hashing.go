// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package kernel

// Hash functions

func _TRIPLE(a, b, c, len int) int {
	return int(_PAIR64(uint64(c), _PAIR(a, b, len), uint64(len)))
}

// _PAIR is a mapping function that maps (bijectively) a pair of integer (a, b)
// into a unique integer. It is therefore a perfect hash: no collisions
func _PAIR(a, b, len int) uint64 {
	return (((uint64(a+b) * uint64(a+b+1)) / 2) + uint64(a)) % uint64(len)
}

func _PAIR64(a, b, len uint64) uint64 {
	return (((((a + b) % len) * ((a + b + 1) % len)) / 2) + a) % len
}

// ************************************************************

// The hash function for operation Not(n) is simply n.

func (b *BDD) matchnot(n int) int {
	entry := b.applycache.table[n%len(b.applycache.table)]
	if entry.a == n && entry.c == int(op_not) {
		b.opHit++
		return entry.res
	}
	b.opMiss++
	return -1
}

func (b *BDD) setnot(n int, res int) int {
	if res < 0 {
		b.seterror("problem in call to not")
		return -1
	}
	b.applycache.table[n%len(b.applycache.table)] = cacheData{
		a:   n,
		b:   -1,
		c:   int(op_not),
		res: res,
	}
	return res
}

// ************************************************************

// The hash function for Apply is #(left, right, applycache.op).

func (b *BDD) matchapply(left, right int) int {
	entry := b.applycache.table[_TRIPLE(left, right, int(b.applycache.op), len(b.applycache.table))]
	if entry.a == left && entry.b == right && entry.c == int(b.applycache.op) {
		b.opHit++
		return entry.res
	}
	b.opMiss++
	return -1
}

func (b *BDD) setapply(left, right, res int) int {
	if res < 0 {
		b.seterror("problem in call to apply(%d,%d,%s)", left, right, b.applycache.op)
		return -1
	}
	b.applycache.table[_TRIPLE(left, right, int(b.applycache.op), len(b.applycache.table))] = cacheData{
		a:   left,
		b:   right,
		c:   int(b.applycache.op),
		res: res,
	}
	return res
}

// ************************************************************

// The hash function for Restrict is #(n, restrictcache.id), where the id
// encodes the level and value of the restriction.

func (b *BDD) matchrestrict(n int) int {
	entry := b.restrictcache.table[_PAIR(n, b.restrictcache.id, len(b.restrictcache.table))]
	if entry.a == n && entry.c == b.restrictcache.id {
		b.opHit++
		return entry.res
	}
	b.opMiss++
	return -1
}

func (b *BDD) setrestrict(n int, res int) int {
	if res < 0 {
		b.seterror("problem in call to restrict")
		return -1
	}
	b.restrictcache.table[_PAIR(n, b.restrictcache.id, len(b.restrictcache.table))] = cacheData{
		a:   n,
		c:   b.restrictcache.id,
		res: res,
	}
	return res
}
