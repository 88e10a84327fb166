package conv

import "sync"

// rowPool recycles float32 scratch rows across tasks.
type rowPool struct {
	pool sync.Pool
}

var scratch = &rowPool{
	pool: sync.Pool{
		New: func() any {
			return new([]float32)
		},
	},
}

// get returns a row of length n. Contents are unspecified.
func (p *rowPool) get(n int) *[]float32 {
	b := p.pool.Get().(*[]float32)
	if cap(*b) < n {
		*b = make([]float32, n)
	}

	*b = (*b)[:n]

	return b
}

// put returns a row to the pool. The caller must not use it afterwards.
func (p *rowPool) put(b *[]float32) {
	if b == nil {
		return
	}

	p.pool.Put(b)
}
