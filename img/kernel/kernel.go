package kernel

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by kernel constructors and validation.
var (
	ErrInvalidSize = errors.New("kernel: invalid size")
	ErrTapCount    = errors.New("kernel: tap count does not match size")
	ErrNonFinite   = errors.New("kernel: non-finite tap")
	ErrZeroSum     = errors.New("kernel: taps sum to zero")
	ErrAnchor      = errors.New("kernel: anchor outside kernel")
)

// MaxSize is the largest kernel width or height accepted by the constructors.
const MaxSize = 1025

// Kernel is a Width x Height grid of taps in row-major order.
type Kernel struct {
	Width, Height    int
	AnchorX, AnchorY int
	Taps             []float32
}

// New returns a kernel with the anchor at the centre. taps is copied.
func New(width, height int, taps []float32) (*Kernel, error) {
	if err := checkExtent(width, height); err != nil {
		return nil, err
	}

	if len(taps) != width*height {
		return nil, fmt.Errorf("%w: %dx%d needs %d taps, got %d", ErrTapCount, width, height, width*height, len(taps))
	}

	k := &Kernel{
		Width:   width,
		Height:  height,
		AnchorX: width / 2,
		AnchorY: height / 2,
		Taps:    append([]float32(nil), taps...),
	}

	return k, k.Validate()
}

// Separable returns the outer product col^T row: Taps[j*len(row)+i] = col[j]*row[i].
func Separable(row, col []float32) (*Kernel, error) {
	if len(row) == 0 || len(col) == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, len(row), len(col))
	}

	taps := make([]float32, len(row)*len(col))
	for j, c := range col {
		for i, r := range row {
			taps[j*len(row)+i] = c * r
		}
	}

	return New(len(row), len(col), taps)
}

// Validate checks dimensions, tap count, anchor and finiteness.
func (k *Kernel) Validate() error {
	if k == nil {
		return ErrInvalidSize
	}

	if err := checkExtent(k.Width, k.Height); err != nil {
		return err
	}

	if len(k.Taps) != k.Width*k.Height {
		return fmt.Errorf("%w: %dx%d needs %d taps, got %d", ErrTapCount, k.Width, k.Height, k.Width*k.Height, len(k.Taps))
	}

	if k.AnchorX < 0 || k.AnchorX >= k.Width || k.AnchorY < 0 || k.AnchorY >= k.Height {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrAnchor, k.AnchorX, k.AnchorY, k.Width, k.Height)
	}

	for i, t := range k.Taps {
		f := float64(t)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: index %d = %v", ErrNonFinite, i, t)
		}
	}

	return nil
}

func checkExtent(width, height int) error {
	if width <= 0 || height <= 0 || width > MaxSize || height > MaxSize {
		return fmt.Errorf("%w: %dx%d (max %d)", ErrInvalidSize, width, height, MaxSize)
	}

	return nil
}

// Row returns the taps of kernel row j.
func (k *Kernel) Row(j int) []float32 {
	return k.Taps[j*k.Width : (j+1)*k.Width]
}

// At returns the tap at column i, row j.
func (k *Kernel) At(i, j int) float32 {
	return k.Taps[j*k.Width+i]
}

// Len returns the number of taps.
func (k *Kernel) Len() int {
	return len(k.Taps)
}

// Sum returns the sum of all taps in float64.
func (k *Kernel) Sum() float64 {
	sum := 0.0
	for _, t := range k.Taps {
		sum += float64(t)
	}

	return sum
}

// Normalize scales the taps to sum to one.
func (k *Kernel) Normalize() error {
	sum := k.Sum()
	if sum == 0 {
		return ErrZeroSum
	}

	inv := 1 / sum
	for i, t := range k.Taps {
		k.Taps[i] = float32(float64(t) * inv)
	}

	return nil
}

// Clone returns a deep copy.
func (k *Kernel) Clone() *Kernel {
	c := *k
	c.Taps = append([]float32(nil), k.Taps...)

	return &c
}

// Flipped returns the kernel rotated by 180 degrees with the anchor moved
// accordingly. Correlating with the flipped kernel is convolution.
func (k *Kernel) Flipped() *Kernel {
	f := &Kernel{
		Width:   k.Width,
		Height:  k.Height,
		AnchorX: k.Width - 1 - k.AnchorX,
		AnchorY: k.Height - 1 - k.AnchorY,
		Taps:    make([]float32, len(k.Taps)),
	}

	n := len(k.Taps)
	for i, t := range k.Taps {
		f.Taps[n-1-i] = t
	}

	return f
}

// Margins returns how far the kernel reaches past a pixel in each direction.
func (k *Kernel) Margins() (left, right, top, bottom int) {
	return k.AnchorX, k.Width - 1 - k.AnchorX, k.AnchorY, k.Height - 1 - k.AnchorY
}

// String returns a short description such as "5x5 sum=1".
func (k *Kernel) String() string {
	return fmt.Sprintf("%dx%d sum=%g", k.Width, k.Height, k.Sum())
}
