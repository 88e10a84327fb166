package plane

import (
	"fmt"
	"strings"
)

// Border selects how samples outside the image are synthesised.
type Border int

const (
	BorderMirror Border = iota
	BorderClamp
	BorderWrap
	BorderConstant
)

var borderNames = [...]string{
	BorderMirror:   "mirror",
	BorderClamp:    "clamp",
	BorderWrap:     "wrap",
	BorderConstant: "constant",
}

// String returns the lower-case border name.
func (b Border) String() string {
	if b >= 0 && int(b) < len(borderNames) {
		return borderNames[b]
	}

	return fmt.Sprintf("Border(%d)", int(b))
}

// ParseBorder maps a border name to its Border.
func ParseBorder(s string) (Border, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for b, n := range borderNames {
		if n == name {
			return Border(b), nil
		}
	}

	return 0, fmt.Errorf("plane: unknown border %q", s)
}

// Borders lists every border mode.
func Borders() []Border {
	return []Border{BorderMirror, BorderClamp, BorderWrap, BorderConstant}
}

// Index resolves index along an axis of length size. ok is false when the
// sample must come from the constant fill value.
func (b Border) Index(index, size int) (int, bool) {
	if index >= 0 && index < size {
		return index, true
	}

	switch b {
	case BorderClamp:
		return Clamp(index, size), true
	case BorderWrap:
		return Wrap(index, size), true
	case BorderConstant:
		return 0, false
	default:
		return Mirror(index, size), true
	}
}

// Mirror reflects index into [0, size) repeating the edge sample.
func Mirror(index, size int) int {
	if size <= 0 {
		return 0
	}

	if index < 0 {
		index = -index - 1
	}

	if index >= size {
		period := 2 * size

		index %= period
		if index >= size {
			index = period - index - 1
		}
	}

	return index
}

// Clamp limits index to [0, size-1].
func Clamp(index, size int) int {
	if index < 0 {
		return 0
	}

	if index >= size {
		return size - 1
	}

	return index
}

// Wrap maps index into [0, size) modulo size.
func Wrap(index, size int) int {
	if size <= 0 {
		return 0
	}

	index %= size
	if index < 0 {
		index += size
	}

	return index
}

// ExtendRow copies row into dst[left:left+len(row)] and fills left samples
// before and right samples after it using border. dst must hold
// left+len(row)+right samples.
func ExtendRow(dst, row []float32, left, right int, border Border, value float32) {
	n := len(row)
	if n == 0 {
		return
	}

	_ = dst[left+n+right-1]

	copy(dst[left:], row)

	for i := range left {
		dst[i] = extendAt(row, i-left, border, value)
	}

	for i := range right {
		dst[left+n+i] = extendAt(row, n+i, border, value)
	}
}

func extendAt(row []float32, x int, border Border, value float32) float32 {
	xi, ok := border.Index(x, len(row))
	if !ok {
		return value
	}

	return row[xi]
}
