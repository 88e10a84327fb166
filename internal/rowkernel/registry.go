// Package rowkernel holds the inner loops of 2D correlation.
//
// Every kernel computes dst[x] += Σ taps[i] * src[x+i] for x in [0, len(dst)),
// where src has already been border-extended to len(dst)+len(taps)-1 samples.
// Implementations register themselves with Global. Lookup picks the highest
// priority entry whose tap count matches.
package rowkernel

import (
	"sync"

	"github.com/cwbudde/algo-image/internal/cpu"
)

// AccumulateFn adds the correlation of src with taps into dst.
type AccumulateFn func(dst, src, taps []float32)

// Entry is one registered row kernel.
type Entry struct {
	Name string
	// Taps is the tap count the kernel is specialised for; 0 accepts any.
	Taps       int
	Priority   int
	Accumulate AccumulateFn
}

// Registry stores row kernel implementations.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
	sorted  bool
}

// Global is the default registry, populated by init functions in this package.
var Global = &Registry{}

// Register adds an entry.
func (r *Registry) Register(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, e)
	r.sorted = false
}

// Lookup returns the best entry for the tap count. With ForceGeneric set only
// entries accepting any tap count are considered.
func (r *Registry) Lookup(features cpu.Features, taps int) *Entry {
	r.mu.Lock()
	if !r.sorted {
		r.sortByPriority()
		r.sorted = true
	}
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		e := &r.entries[i]
		if e.Taps != 0 && (features.ForceGeneric || e.Taps != taps) {
			continue
		}

		return e
	}

	return nil
}

// Entries returns a copy of the registered entries.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)

	return out
}

func (r *Registry) sortByPriority() {
	for i := 1; i < len(r.entries); i++ {
		key := r.entries[i]
		j := i - 1

		for j >= 0 && r.entries[j].Priority < key.Priority {
			r.entries[j+1] = r.entries[j]
			j--
		}

		r.entries[j+1] = key
	}
}

// For resolves the kernel for a tap count against the detected CPU features.
// It panics if no generic fallback is registered.
func For(taps int) AccumulateFn {
	e := Global.Lookup(cpu.DetectFeatures(), taps)
	if e == nil {
		panic("rowkernel: no kernel registered (missing generic fallback?)")
	}

	return e.Accumulate
}
