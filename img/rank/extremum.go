package rank

import (
	"github.com/cwbudde/algo-image/img/conv"
	"github.com/cwbudde/algo-image/img/plane"
)

func minOf(a, b float32) float32 {
	if b < a {
		return b
	}

	return a
}

func maxOf(a, b float32) float32 {
	if b > a {
		return b
	}

	return a
}

// extremum applies a square min or max filter as a horizontal pass followed
// by a vertical pass; both statistics are separable over a square window.
func extremum(dst, src *plane.Plane, size int, border plane.Border, value float32, run conv.Runner, pick func(a, b float32) float32) {
	w, h := src.Width(), src.Height()
	radius := size / 2
	ext := w + size - 1
	tmp := make([]float32, w*h)

	horizontal := func(out, line []float32) {
		for x := range out {
			acc := line[x]
			for _, v := range line[x+1 : x+size] {
				acc = pick(acc, v)
			}

			out[x] = acc
		}
	}

	run(h, rowGrain(w, size), func(y0, y1 int) {
		buf := make([]float32, ext)

		for y := y0; y < y1; y++ {
			plane.ExtendRow(buf, src.Row(y), radius, radius, border, value)
			horizontal(tmp[y*w:(y+1)*w], buf)
		}
	})

	var outside []float32
	if border == plane.BorderConstant {
		outside = make([]float32, w)
		for i := range outside {
			outside[i] = value
		}
	}

	run(h, rowGrain(w, size), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			out := dst.Row(y)

			for j := range size {
				var line []float32

				if yi, ok := border.Index(y+j-radius, h); ok {
					line = tmp[yi*w : (yi+1)*w]
				} else {
					line = outside
				}

				if j == 0 {
					copy(out, line)
					continue
				}

				for x, v := range line {
					out[x] = pick(out[x], v)
				}
			}
		}
	})
}
