package rank

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-image/img/conv"
	"github.com/cwbudde/algo-image/img/plane"
	"github.com/cwbudde/algo-image/internal/workerpool"
)

// Errors returned by the rank filters.
var (
	ErrInvalidSize  = errors.New("rank: window size must be a positive odd number")
	ErrSizeMismatch = errors.New("rank: source and destination sizes differ")
	ErrAliased      = errors.New("rank: source and destination overlap")
)

// Kind selects the rank statistic.
type Kind int

const (
	KindMedian Kind = iota
	KindMinimum
	KindMaximum
)

var kindNames = [...]string{
	KindMedian:  "median",
	KindMinimum: "minimum",
	KindMaximum: "maximum",
}

// String returns the lower-case statistic name.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a name ("median", "min", "max", ...) to its Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "median":
		return KindMedian, nil
	case "min", "minimum", "erode":
		return KindMinimum, nil
	case "max", "maximum", "dilate":
		return KindMaximum, nil
	}

	return 0, fmt.Errorf("rank: unknown statistic %q", s)
}

// Filter writes the kind statistic over size x size windows of src into dst.
func Filter(dst, src *plane.Plane, kind Kind, size int, p conv.Params) error {
	if size <= 0 || size%2 == 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	if !plane.SameSize(dst, src) {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch,
			dst.Width(), dst.Height(), src.Width(), src.Height())
	}

	if plane.Overlaps(dst, src) {
		return ErrAliased
	}

	run := p.Run
	if run == nil {
		run = workerpool.Serial
	}

	switch kind {
	case KindMedian:
		median(dst, src, size, p.Border, p.Value, run)
	case KindMinimum:
		extremum(dst, src, size, p.Border, p.Value, run, minOf)
	case KindMaximum:
		extremum(dst, src, size, p.Border, p.Value, run, maxOf)
	default:
		return fmt.Errorf("rank: unknown statistic %v", kind)
	}

	return nil
}

// Median applies a size x size median filter.
func Median(dst, src *plane.Plane, size int, p conv.Params) error {
	return Filter(dst, src, KindMedian, size, p)
}

// Minimum applies a size x size minimum (erosion) filter.
func Minimum(dst, src *plane.Plane, size int, p conv.Params) error {
	return Filter(dst, src, KindMinimum, size, p)
}

// Maximum applies a size x size maximum (dilation) filter.
func Maximum(dst, src *plane.Plane, size int, p conv.Params) error {
	return Filter(dst, src, KindMaximum, size, p)
}

// window loads the size source rows centred on y, each extended by radius
// samples on both sides, into buf (size rows of stride w+2*radius).
func window(buf []float32, src *plane.Plane, y, size int, border plane.Border, value float32) {
	radius := size / 2
	stride := src.Width() + 2*radius

	for j := range size {
		line := buf[j*stride : (j+1)*stride]

		yi, ok := border.Index(y+j-radius, src.Height())
		if !ok {
			for i := range line {
				line[i] = value
			}

			continue
		}

		plane.ExtendRow(line, src.Row(yi), radius, radius, border, value)
	}
}

func rowGrain(width, size int) int {
	return max(1, (1<<14)/max(width*size*size, 1))
}
