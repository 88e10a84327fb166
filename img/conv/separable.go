package conv

import (
	"github.com/cwbudde/algo-image/img/plane"
	"github.com/cwbudde/algo-image/internal/rowkernel"
)

func separable(dst, src *plane.Plane, row, col []float32, anchorX, anchorY int, p Params) {
	w, h := src.Width(), src.Height()
	run := p.runner()
	left, right := anchorX, len(row)-1-anchorX
	ext := w + len(row) - 1
	accH := rowkernel.For(len(row))

	tmp := make([]float32, w*h)

	run(h, rowGrain(w, len(row)), func(y0, y1 int) {
		bp := scratch.get(ext)
		defer scratch.put(bp)

		buf := *bp

		for y := y0; y < y1; y++ {
			out := tmp[y*w : (y+1)*w]
			clear(out)
			plane.ExtendRow(buf, src.Row(y), left, right, p.Border, p.Value)
			accH(out, buf, row)
		}
	})

	// A row outside the image under BorderConstant is a constant row; its
	// horizontal pass is computed once the same way as any other row.
	var outside []float32
	if p.Border == plane.BorderConstant {
		outside = make([]float32, w)
		buf := make([]float32, ext)

		for i := range buf {
			buf[i] = p.Value
		}

		accH(outside, buf, row)
	}

	run(h, rowGrain(w, len(col)), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			out := dst.Row(y)
			clear(out)

			for j, c := range col {
				var line []float32

				if yi, ok := p.Border.Index(y+j-anchorY, h); ok {
					line = tmp[yi*w : (yi+1)*w]
				} else {
					line = outside
				}

				axpy(out, line, c)
			}
		}
	})
}

// axpy adds a*x to dst.
func axpy(dst, x []float32, a float32) {
	x = x[:len(dst)]
	for i := range dst {
		dst[i] += float32(a * x[i])
	}
}
