package wire

import "sync"

const (
	// Pool limits to prevent memory bloat
	poolMaxCap = 64 * 1024 // max retained storage per buffer
)

// buffer pool for per-message encoding
var bufPool = sync.Pool{
	New: func() any {
		return New()
	},
}

// Get returns an empty buffer with the default header reserve.
func Get() *Buffer {
	b := bufPool.Get().(*Buffer)
	b.Reset()
	return b
}

// Put returns b to the pool. The caller must not use b afterwards.
func Put(b *Buffer) {
	if b == nil || b.Cap() > poolMaxCap {
		return // reject oversized
	}
	b.rep = nil
	bufPool.Put(b)
}
