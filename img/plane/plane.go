package plane

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by plane constructors.
var (
	ErrInvalidDimensions = errors.New("plane: invalid dimensions")
	ErrBufferTooSmall    = errors.New("plane: buffer too small")
)

// Plane is a width x height image stored in row-major order with no padding:
// sample (x, y) lives at Data()[y*Width()+x].
type Plane struct {
	data   []float32
	width  int
	height int
}

// New allocates a zeroed plane.
func New(width, height int) (*Plane, error) {
	if err := validate(width, height); err != nil {
		return nil, err
	}

	return &Plane{
		data:   make([]float32, width*height),
		width:  width,
		height: height,
	}, nil
}

// FromSlice wraps data without copying. Only the first width*height samples
// belong to the plane.
func FromSlice(width, height int, data []float32) (*Plane, error) {
	if err := validate(width, height); err != nil {
		return nil, err
	}

	n := width * height
	if len(data) < n {
		return nil, fmt.Errorf("%w: need %d samples, got %d", ErrBufferTooSmall, n, len(data))
	}

	return &Plane{
		data:   data[:n:n],
		width:  width,
		height: height,
	}, nil
}

func validate(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	if width > math.MaxInt/height {
		return fmt.Errorf("%w: %dx%d overflows the sample count", ErrInvalidDimensions, width, height)
	}

	return nil
}

// Width returns the image width in pixels.
func (p *Plane) Width() int {
	return p.width
}

// Height returns the image height in pixels.
func (p *Plane) Height() int {
	return p.height
}

// Len returns width*height.
func (p *Plane) Len() int {
	return len(p.data)
}

// Data returns the backing samples.
func (p *Plane) Data() []float32 {
	return p.data
}

// Row returns the samples of row y, or nil if y is out of range.
func (p *Plane) Row(y int) []float32 {
	if y < 0 || y >= p.height {
		return nil
	}

	start := y * p.width

	return p.data[start : start+p.width : start+p.width]
}

// At returns the sample at (x, y), or 0 outside the image.
func (p *Plane) At(x, y int) float32 {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return 0
	}

	return p.data[y*p.width+x]
}

// AtBorder returns the sample at (x, y) with out-of-range coordinates
// resolved by border.
func (p *Plane) AtBorder(x, y int, border Border, value float32) float32 {
	xi, okX := border.Index(x, p.width)
	yi, okY := border.Index(y, p.height)

	if !okX || !okY {
		return value
	}

	return p.data[yi*p.width+xi]
}

// Set writes the sample at (x, y). Out-of-range writes are ignored.
func (p *Plane) Set(x, y int, v float32) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}

	p.data[y*p.width+x] = v
}

// Clone returns a deep copy that owns its samples.
func (p *Plane) Clone() *Plane {
	c := &Plane{
		data:   make([]float32, len(p.data)),
		width:  p.width,
		height: p.height,
	}
	copy(c.data, p.data)

	return c
}

// SameSize reports whether a and b have equal dimensions.
func SameSize(a, b *Plane) bool {
	return a.width == b.width && a.height == b.height
}

// Overlaps reports whether a and b share any backing memory.
func Overlaps(a, b *Plane) bool {
	return overlaps(a.data, b.data)
}
