// Package pool provides typed object pooling for scratch memory that passes
// allocate per call, such as the position buffers of a parallel merge.
//
// Example usage:
//
//	buf := pool.GetPositions(n)
//	defer pool.PutPositions(buf)
package pool

import (
	"sync"
	"sync/atomic"
)

// Pool is a type-safe wrapper around sync.Pool that tracks allocation and
// reuse. It is safe for concurrent use.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
	stats struct {
		allocated int64
		inUse     int64
		hits      int64
		misses    int64
	}
}

// New creates a pool. reset, when non-nil, runs on every object passed to Put.
func New[T any](newFn func() T, reset func(T)) *Pool[T] {
	p := &Pool[T]{reset: reset}
	p.pool.New = func() interface{} {
		atomic.AddInt64(&p.stats.allocated, 1)
		atomic.AddInt64(&p.stats.misses, 1)
		return newFn()
	}
	return p
}

// Get returns a pooled object, creating one when the pool is empty.
func (p *Pool[T]) Get() T {
	atomic.AddInt64(&p.stats.inUse, 1)
	obj := p.pool.Get().(T)
	atomic.AddInt64(&p.stats.hits, 1)
	return obj
}

// Put returns obj to the pool.
func (p *Pool[T]) Put(obj T) {
	if p.reset != nil {
		p.reset(obj)
	}
	atomic.AddInt64(&p.stats.inUse, -1)
	p.pool.Put(obj)
}

// Discard records that a checked-out object will not come back.
func (p *Pool[T]) Discard() {
	atomic.AddInt64(&p.stats.inUse, -1)
}

// Stats returns the number of objects created, currently checked out, handed
// out by Get, and created because the pool was empty.
func (p *Pool[T]) Stats() (allocated, inUse, hits, misses int64) {
	return atomic.LoadInt64(&p.stats.allocated),
		atomic.LoadInt64(&p.stats.inUse),
		atomic.LoadInt64(&p.stats.hits),
		atomic.LoadInt64(&p.stats.misses)
}

// maxPooledPositions caps the buffers kept for reuse; larger ones go to the GC.
const maxPooledPositions = 1 << 24

// PositionPool recycles []int position buffers. Slices are held by pointer
// so Put does not allocate.
var PositionPool = New(
	func() *[]int {
		s := make([]int, 0, 1024)
		return &s
	},
	func(s *[]int) {
		*s = (*s)[:0]
	},
)

// GetPositions returns a buffer of length n. Its contents are unspecified.
func GetPositions(n int) []int {
	sp := PositionPool.Get()
	if cap(*sp) < n {
		*sp = make([]int, n)
	}
	return (*sp)[:n]
}

// PutPositions hands buf back for reuse. buf must not be used afterwards.
func PutPositions(buf []int) {
	if cap(buf) > maxPooledPositions {
		PositionPool.Discard()
		return
	}
	PositionPool.Put(&buf)
}
