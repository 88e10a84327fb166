package conv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-image/img/kernel"
	"github.com/cwbudde/algo-image/img/plane"
	"github.com/cwbudde/algo-image/internal/workerpool"
)

// Errors returned by the correlation engines.
var (
	ErrSizeMismatch = errors.New("conv: source and destination sizes differ")
	ErrAliased      = errors.New("conv: source and destination overlap")
	ErrNotSeparable = errors.New("conv: kernel is not separable")
)

// Runner runs fn over row ranges covering [0, n), each range at least grain
// rows long where possible, and returns when all ranges are done.
// (*workerpool.Pool).ParallelFor and workerpool.Serial both satisfy it.
type Runner func(n, grain int, fn func(start, end int))

// Params carries the border rule and the row scheduler.
type Params struct {
	Border plane.Border
	// Value is the fill sample for BorderConstant.
	Value float32
	// Run schedules row ranges. Nil runs serially.
	Run Runner
}

func (p Params) runner() Runner {
	if p.Run == nil {
		return workerpool.Serial
	}

	return p.Run
}

// Method selects a correlation engine.
type Method int

const (
	MethodAuto Method = iota
	MethodDirect
	MethodSeparable
	MethodFFT
)

var methodNames = [...]string{
	MethodAuto:      "auto",
	MethodDirect:    "direct",
	MethodSeparable: "separable",
	MethodFFT:       "fft",
}

// String returns the lower-case method name.
func (m Method) String() string {
	if m >= 0 && int(m) < len(methodNames) {
		return methodNames[m]
	}

	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod maps a method name to its Method.
func ParseMethod(s string) (Method, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range methodNames {
		if n == name {
			return Method(m), nil
		}
	}

	return 0, fmt.Errorf("conv: unknown method %q", s)
}

// Thresholds used by Choose.
const (
	fftMinTaps   = 225
	fftMinPixels = 4096
)

// Choose returns the engine MethodAuto resolves to for k on a width x height image.
func Choose(k *kernel.Kernel, width, height int) Method {
	if k.Len() == 1 {
		return MethodDirect
	}

	if k.IsSeparable() {
		return MethodSeparable
	}

	if k.Len() >= fftMinTaps && width*height >= fftMinPixels {
		return MethodFFT
	}

	return MethodDirect
}

// Correlate writes the correlation of src with k into dst using method m.
// dst and src must have the same size and must not overlap.
func Correlate(dst, src *plane.Plane, k *kernel.Kernel, m Method, p Params) error {
	if err := check(dst, src, k); err != nil {
		return err
	}

	if m == MethodAuto {
		m = Choose(k, src.Width(), src.Height())
	}

	switch m {
	case MethodDirect:
		direct(dst, src, k, p)
		return nil
	case MethodSeparable:
		row, col, ok := k.Decompose()
		if !ok {
			return ErrNotSeparable
		}

		separable(dst, src, row, col, k.AnchorX, k.AnchorY, p)

		return nil
	case MethodFFT:
		return fftCorrelate(dst, src, k, p)
	default:
		return fmt.Errorf("conv: unknown method %v", m)
	}
}

// Direct correlates src with k using the direct engine.
func Direct(dst, src *plane.Plane, k *kernel.Kernel, p Params) error {
	return Correlate(dst, src, k, MethodDirect, p)
}

// Separable correlates src with k in two 1D passes. It fails with
// ErrNotSeparable if k does not decompose.
func Separable(dst, src *plane.Plane, k *kernel.Kernel, p Params) error {
	return Correlate(dst, src, k, MethodSeparable, p)
}

// SeparableRowCol correlates src with the outer product col^T row anchored
// at (anchorX, anchorY), without going through a 2D kernel.
func SeparableRowCol(dst, src *plane.Plane, row, col []float32, anchorX, anchorY int, p Params) error {
	k, err := kernel.Separable(row, col)
	if err != nil {
		return err
	}

	k.AnchorX, k.AnchorY = anchorX, anchorY
	if err := check(dst, src, k); err != nil {
		return err
	}

	separable(dst, src, row, col, anchorX, anchorY, p)

	return nil
}

// FFT correlates src with k through the frequency domain.
func FFT(dst, src *plane.Plane, k *kernel.Kernel, p Params) error {
	return Correlate(dst, src, k, MethodFFT, p)
}

func check(dst, src *plane.Plane, k *kernel.Kernel) error {
	if err := k.Validate(); err != nil {
		return err
	}

	if !plane.SameSize(dst, src) {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch,
			dst.Width(), dst.Height(), src.Width(), src.Height())
	}

	if plane.Overlaps(dst, src) {
		return ErrAliased
	}

	return nil
}

// rowGrain returns the minimum rows per task so each task touches at least
// a few thousand taps.
func rowGrain(width, taps int) int {
	const minWork = 1 << 14

	work := max(width*taps, 1)

	return max(1, minWork/work)
}
