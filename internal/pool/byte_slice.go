// Package pool provides sync.Pool-backed reuse of scratch []byte
// buffers for the writer's escaping passes.
package pool

import "sync"

const defaultCapacity = 64

// ByteSlicePool hands out zero-length []byte with at least a minimum
// capacity, and accepts them back for reuse.
type ByteSlicePool struct {
	pool sync.Pool
}

var shared = ByteSlice()

// ByteSlice returns a new, independent ByteSlicePool.
func ByteSlice() *ByteSlicePool {
	bs := &ByteSlicePool{}
	bs.pool.New = func() interface{} {
		return make([]byte, 0, defaultCapacity)
	}
	return bs
}

// Get returns a zero-length []byte with capacity at least the pool's
// default.
func (bs *ByteSlicePool) Get() []byte {
	return bs.pool.Get().([]byte)[:0]
}

// GetCapacity returns a zero-length []byte with capacity at least n.
func (bs *ByteSlicePool) GetCapacity(n int) []byte {
	b := bs.pool.Get().([]byte)[:0]
	if cap(b) < n {
		return make([]byte, 0, n)
	}
	return b
}

// Put returns b to the pool for later reuse.
func (bs *ByteSlicePool) Put(b []byte) {
	bs.pool.Put(b[:0])
}

// Get is a convenience wrapper around a shared default pool.
func Get() []byte { return shared.Get() }

// Put returns b to the shared default pool.
func Put(b []byte) { shared.Put(b) }
