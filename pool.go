package nbpress

import (
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one renderer is available.
	MinPoolSize = 1

	// MaxPoolSize caps parallel renders; executed posts may each hold a
	// live interpreter session.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for executor child processes.
	cpuDivisor = 2
)

// RendererPool manages renderers for parallel batch rendering. Renderers are
// created lazily on first acquire through the supplied factory.
type RendererPool struct {
	size    int
	factory func() *Renderer
	sem     chan *Renderer
	mu      sync.Mutex
	created int
	closed  bool
}

// NewRendererPool creates a pool with capacity for n renderers built by
// factory.
func NewRendererPool(n int, factory func() *Renderer) *RendererPool {
	if n < 1 {
		n = 1
	}
	return &RendererPool{
		size:    n,
		factory: factory,
		sem:     make(chan *Renderer, n),
	}
}

// Acquire gets a renderer from the pool, creating one if capacity allows.
// Blocks while all renderers are in use.
func (p *RendererPool) Acquire() *Renderer {
	select {
	case r := <-p.sem:
		return r
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()
		return p.factory()
	}
	p.mu.Unlock()

	return <-p.sem
}

// Release returns a renderer to the pool.
func (p *RendererPool) Release(r *Renderer) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.sem <- r
}

// Close marks the pool closed; later releases are dropped.
func (p *RendererPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.sem)
}

// Size returns the pool capacity.
func (p *RendererPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size: an explicit worker count wins,
// otherwise it is derived from GOMAXPROCS (container-aware via automaxprocs
// in the CLI).
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
