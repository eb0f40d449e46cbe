package buffer

import "sync"

// Pool provides sync.Pool-based Buffer reuse so repeated processing calls
// do not reallocate their scratch storage.
type Pool struct {
	pool sync.Pool
}

// NewPool returns a Pool ready for use.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return &Buffer{}
			},
		},
	}
}

// Get returns a zeroed Buffer with the requested shape and offset 0.
// Callers must return it via Put when done.
func (p *Pool) Get(channels, length int) *Buffer {
	b := p.pool.Get().(*Buffer)
	b.Resize(channels, length)

	return b
}

// Put returns a Buffer to the pool for reuse.
// The caller must not use the buffer after calling Put.
func (p *Pool) Put(b *Buffer) {
	if b == nil {
		return
	}

	p.pool.Put(b)
}
