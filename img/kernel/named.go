package kernel

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cwbudde/algo-image/img/window"
)

// Identity returns the 1x1 kernel [1].
func Identity() *Kernel {
	return mustNew(1, 1, []float32{1})
}

// Box returns a size x size mean filter.
func Box(size int) (*Kernel, error) {
	if err := checkExtent(size, size); err != nil {
		return nil, err
	}

	taps := make([]float32, size*size)
	v := 1 / float32(size*size)

	for i := range taps {
		taps[i] = v
	}

	return New(size, size, taps)
}

// Gaussian returns a normalised Gaussian kernel of radius ceil(3*sigma).
// The kernel must fit in MaxSize taps, which bounds sigma at about 170.
func Gaussian(sigma float64) (*Kernel, error) {
	if !(sigma > 0) {
		return nil, fmt.Errorf("%w: gaussian sigma %g", ErrInvalidSize, sigma)
	}

	radius := math.Ceil(3 * sigma)
	if radius > MaxSize/2 {
		return nil, fmt.Errorf("%w: gaussian sigma %g needs radius %g (max %d)", ErrInvalidSize, sigma, radius, MaxSize/2)
	}

	taps := Gaussian1D(sigma, int(radius))

	return Separable(taps, taps)
}

// Gaussian1D returns 2*radius+1 normalised Gaussian taps.
func Gaussian1D(sigma float64, radius int) []float32 {
	radius = max(radius, 0)

	w := make([]float64, 2*radius+1)
	sum := 0.0
	k := -0.5 / (sigma * sigma)

	for i := range w {
		d := float64(i - radius)
		w[i] = gaussExp(k * d * d)
		sum += w[i]
	}

	out := make([]float32, len(w))
	for i, v := range w {
		out[i] = float32(v / sum)
	}

	return out
}

// Binomial returns the (order+1)x(order+1) binomial smoothing kernel, the
// discrete approximation of a Gaussian. Binomial(2) is [1 2 1]^T [1 2 1] / 16.
func Binomial(order int) (*Kernel, error) {
	if order < 0 || order > 30 {
		return nil, fmt.Errorf("%w: binomial order %d", ErrInvalidSize, order)
	}

	taps := Binomial1D(order)

	return Separable(taps, taps)
}

// Binomial1D returns row order of Pascal's triangle normalised to sum one.
func Binomial1D(order int) []float32 {
	c := make([]float64, order+1)
	c[0] = 1

	for n := 1; n <= order; n++ {
		for k := n; k > 0; k-- {
			c[k] += c[k-1]
		}
	}

	scale := math.Ldexp(1, -order)

	out := make([]float32, len(c))
	for i, v := range c {
		out[i] = float32(v * scale)
	}

	return out
}

// SobelX returns the 3x3 Sobel operator responding to horizontal gradients
// (increasing to the right).
func SobelX() *Kernel {
	return mustNew(3, 3, []float32{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	})
}

// SobelY returns the 3x3 Sobel operator responding to vertical gradients
// (increasing downward).
func SobelY() *Kernel {
	return mustNew(3, 3, []float32{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	})
}

// Laplacian4 returns the 4-neighbour Laplacian.
func Laplacian4() *Kernel {
	return mustNew(3, 3, []float32{
		0, 1, 0,
		1, -4, 1,
		0, 1, 0,
	})
}

// Laplacian8 returns the 8-neighbour Laplacian.
func Laplacian8() *Kernel {
	return mustNew(3, 3, []float32{
		1, 1, 1,
		1, -8, 1,
		1, 1, 1,
	})
}

// Sharpen returns identity minus the 4-neighbour Laplacian.
func Sharpen() *Kernel {
	return mustNew(3, 3, []float32{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	})
}

// Emboss returns a diagonal relief kernel.
func Emboss() *Kernel {
	return mustNew(3, 3, []float32{
		-2, -1, 0,
		-1, 1, 1,
		0, 1, 2,
	})
}

// FromWindow returns the normalised outer product of a size-tap window taper
// with itself.
func FromWindow(t window.Type, size int, opts ...window.Option) (*Kernel, error) {
	if err := checkExtent(size, size); err != nil {
		return nil, err
	}

	w, err := window.Taper(t, size, opts...)
	if err != nil {
		return nil, err
	}

	if err := window.Normalize(w); err != nil {
		return nil, err
	}

	taps := toFloat32(w)

	return Separable(taps, taps)
}

// Lowpass returns a separable windowed-sinc low-pass kernel.
func Lowpass(size int, cutoff float64, t window.Type) (*Kernel, error) {
	if err := checkExtent(size, size); err != nil {
		return nil, err
	}

	w, err := window.Lowpass(size, cutoff, t)
	if err != nil {
		return nil, err
	}

	taps := toFloat32(w)

	return Separable(taps, taps)
}

// Params carries the numeric parameters accepted by Lookup.
type Params struct {
	Size   int     // box/window/lowpass size, binomial order
	Sigma  float64 // gaussian sigma
	Cutoff float64 // lowpass cutoff in cycles per sample
	Window window.Type
}

type factory func(p Params) (*Kernel, error)

var named = map[string]factory{
	"identity":   func(Params) (*Kernel, error) { return Identity(), nil },
	"box":        func(p Params) (*Kernel, error) { return Box(p.Size) },
	"gaussian":   func(p Params) (*Kernel, error) { return Gaussian(p.Sigma) },
	"binomial":   func(p Params) (*Kernel, error) { return Binomial(p.Size - 1) },
	"sobel-x":    func(Params) (*Kernel, error) { return SobelX(), nil },
	"sobel-y":    func(Params) (*Kernel, error) { return SobelY(), nil },
	"laplacian4": func(Params) (*Kernel, error) { return Laplacian4(), nil },
	"laplacian8": func(Params) (*Kernel, error) { return Laplacian8(), nil },
	"sharpen":    func(Params) (*Kernel, error) { return Sharpen(), nil },
	"emboss":     func(Params) (*Kernel, error) { return Emboss(), nil },
	"window":     func(p Params) (*Kernel, error) { return FromWindow(p.Window, p.Size) },
	"lowpass":    func(p Params) (*Kernel, error) { return Lowpass(p.Size, p.Cutoff, p.Window) },
}

// DefaultParams returns the parameters used for names that need them.
func DefaultParams() Params {
	return Params{
		Size:   3,
		Sigma:  1,
		Cutoff: 0.25,
		Window: window.TypeHann,
	}
}

// Lookup builds a kernel by name. Names are listed by Names.
func Lookup(name string, p Params) (*Kernel, error) {
	f, ok := named[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("kernel: unknown kernel %q", name)
	}

	return f(p)
}

// Names returns the kernel names accepted by Lookup, sorted.
func Names() []string {
	names := make([]string, 0, len(named))
	for n := range named {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}

	return out
}

func mustNew(width, height int, taps []float32) *Kernel {
	k, err := New(width, height, taps)
	if err != nil {
		panic(err)
	}

	return k
}
