package filter

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/cwbudde/algo-image/img/conv"
	"github.com/cwbudde/algo-image/img/plane"
	"github.com/cwbudde/algo-image/img/rank"
	"github.com/cwbudde/algo-image/internal/workerpool"
)

// Errors returned by Filter, New and Process.
var (
	ErrInvalidDimensions = plane.ErrInvalidDimensions
	ErrBufferTooSmall    = plane.ErrBufferTooSmall
	ErrInvalidKernel     = errors.New("filter: invalid kernel")
	ErrInvalidWindow     = errors.New("filter: invalid window size")
	ErrInvalidBorder     = errors.New("filter: invalid border")
)

var (
	sharedOnce sync.Once
	sharedPool *workerpool.Pool
)

// defaultPool is used by parallel Filter calls that do not ask for a
// specific worker count. It lives for the whole process.
func defaultPool() *workerpool.Pool {
	sharedOnce.Do(func() {
		sharedPool = workerpool.New(0)
	})

	return sharedPool
}

// Filter filters the width x height image in input into output and blocks
// until every output sample is written. input and output may be the same
// slice.
func Filter(width, height int, input, output []float32, opts ...Option) error {
	cfg := applyOptions(opts)
	if err := cfg.validate(); err != nil {
		return err
	}

	switch {
	case cfg.serial:
		return cfg.process(width, height, input, output, serialRunners)
	case cfg.workers == 0:
		return cfg.process(width, height, input, output, poolRunners(defaultPool()))
	default:
		pool := workerpool.New(cfg.workers)
		defer pool.Close()

		return cfg.process(width, height, input, output, poolRunners(pool))
	}
}

// runners schedules row ranges. Correlation rows cost the same everywhere;
// rank rows depend on the data, so they are handed out dynamically.
type runners struct {
	even, uneven conv.Runner
}

var serialRunners = runners{even: workerpool.Serial, uneven: workerpool.Serial}

func poolRunners(p *workerpool.Pool) runners {
	return runners{even: p.ParallelFor, uneven: p.ParallelForAtomic}
}

// Processor applies one configured filter to many images. It owns a worker
// pool unless it was created with WithSerial.
type Processor struct {
	cfg  config
	pool *workerpool.Pool
}

// New validates opts and returns a Processor.
func New(opts ...Option) (*Processor, error) {
	cfg := applyOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	p := &Processor{cfg: cfg}
	if !cfg.serial {
		p.pool = workerpool.New(cfg.workers)
	}

	return p, nil
}

// Process filters input into output like Filter. It is safe for concurrent
// use.
func (p *Processor) Process(width, height int, input, output []float32) error {
	run := serialRunners
	if p.pool != nil {
		run = poolRunners(p.pool)
	}

	return p.cfg.process(width, height, input, output, run)
}

// Workers returns the size of the processor's pool, or 1 for a serial or
// closed processor.
func (p *Processor) Workers() int {
	if p.pool == nil || p.pool.Closed() {
		return 1
	}

	return p.pool.NumWorkers()
}

// Close stops the worker pool. It may be called more than once but not
// concurrently with Process. A closed Processor keeps working on the calling
// goroutine.
func (p *Processor) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (cfg *config) validate() error {
	if !slices.Contains(plane.Borders(), cfg.border) {
		return fmt.Errorf("%w: %v", ErrInvalidBorder, cfg.border)
	}

	switch cfg.op {
	case opCorrelate:
		if cfg.kernel == nil {
			return fmt.Errorf("%w: nil kernel", ErrInvalidKernel)
		}

		if err := cfg.kernel.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidKernel, err)
		}

		if cfg.method == conv.MethodSeparable && !cfg.kernel.IsSeparable() {
			return fmt.Errorf("%w: %w", ErrInvalidKernel, conv.ErrNotSeparable)
		}
	case opRank:
		if cfg.rankSize <= 0 || cfg.rankSize%2 == 0 {
			return fmt.Errorf("%w: %d", ErrInvalidWindow, cfg.rankSize)
		}
	}

	return nil
}

func (cfg *config) process(width, height int, input, output []float32, run runners) error {
	src, err := plane.FromSlice(width, height, input)
	if err != nil {
		return err
	}

	dst, err := plane.FromSlice(width, height, output)
	if err != nil {
		return err
	}

	if plane.Overlaps(dst, src) {
		src = src.Clone()
	}

	params := conv.Params{Border: cfg.border, Value: cfg.value, Run: run.even}

	if cfg.op == opRank {
		params.Run = run.uneven
		return rank.Filter(dst, src, cfg.rankKind, cfg.rankSize, params)
	}

	return conv.Correlate(dst, src, cfg.kernel, cfg.method, params)
}
