package filter

import (
	"github.com/cwbudde/algo-image/img/conv"
	"github.com/cwbudde/algo-image/img/kernel"
	"github.com/cwbudde/algo-image/img/plane"
	"github.com/cwbudde/algo-image/img/rank"
)

type operation int

const (
	opCorrelate operation = iota
	opRank
)

type config struct {
	serial  bool
	workers int

	op       operation
	kernel   *kernel.Kernel
	rankKind rank.Kind
	rankSize int

	border plane.Border
	value  float32
	method conv.Method
}

// Option configures Filter and New.
type Option func(*config)

func defaultConfig() config {
	return config{
		op:     opCorrelate,
		kernel: defaultKernel(),
		border: plane.BorderMirror,
		method: conv.MethodAuto,
	}
}

// defaultKernel is the 3x3 binomial [1 2 1]^T [1 2 1] / 16.
func defaultKernel() *kernel.Kernel {
	row := []float32{0.25, 0.5, 0.25}
	k, _ := kernel.Separable(row, row)

	return k
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithSerial runs the filter on the calling goroutine.
func WithSerial() Option {
	return func(cfg *config) {
		cfg.serial = true
	}
}

// WithParallel runs the filter on a worker pool. This is the default.
func WithParallel() Option {
	return func(cfg *config) {
		cfg.serial = false
	}
}

// WithWorkers sets the number of worker goroutines and implies parallel
// execution. n <= 0 selects GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(cfg *config) {
		cfg.serial = false
		cfg.workers = max(n, 0)
	}
}

// WithKernel correlates the image with k. k is copied.
func WithKernel(k *kernel.Kernel) Option {
	return func(cfg *config) {
		cfg.op = opCorrelate
		cfg.kernel = nil

		if k != nil {
			cfg.kernel = k.Clone()
		}
	}
}

// WithMedian replaces each sample by the median of the size x size window
// around it. size must be odd.
func WithMedian(size int) Option {
	return withRank(rank.KindMedian, size)
}

// WithMinimum replaces each sample by the minimum of its size x size window.
func WithMinimum(size int) Option {
	return withRank(rank.KindMinimum, size)
}

// WithMaximum replaces each sample by the maximum of its size x size window.
func WithMaximum(size int) Option {
	return withRank(rank.KindMaximum, size)
}

func withRank(kind rank.Kind, size int) Option {
	return func(cfg *config) {
		cfg.op = opRank
		cfg.rankKind = kind
		cfg.rankSize = size
	}
}

// WithBorder sets how samples outside the image are synthesised.
func WithBorder(b plane.Border) Option {
	return func(cfg *config) {
		cfg.border = b
	}
}

// WithBorderValue sets the fill value used by plane.BorderConstant.
func WithBorderValue(v float32) Option {
	return func(cfg *config) {
		cfg.value = v
	}
}

// WithMethod selects the correlation engine. It has no effect on rank filters.
func WithMethod(m conv.Method) Option {
	return func(cfg *config) {
		cfg.method = m
	}
}
