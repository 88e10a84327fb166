package conv

import (
	"github.com/cwbudde/algo-image/img/kernel"
	"github.com/cwbudde/algo-image/img/plane"
	"github.com/cwbudde/algo-image/internal/rowkernel"
)

func direct(dst, src *plane.Plane, k *kernel.Kernel, p Params) {
	w, h := src.Width(), src.Height()
	left, right, top, _ := k.Margins()
	ext := w + k.Width - 1
	acc := rowkernel.For(k.Width)

	p.runner()(h, rowGrain(w, k.Len()), func(y0, y1 int) {
		bp := scratch.get(ext)
		defer scratch.put(bp)

		buf := *bp

		for y := y0; y < y1; y++ {
			out := dst.Row(y)
			clear(out)

			for j := range k.Height {
				loadRow(buf, src, y+j-top, left, right, p)
				acc(out, buf, k.Row(j))
			}
		}
	})
}

// loadRow writes source row sy, border-extended by left and right samples,
// into buf. Rows outside the image are resolved with the border rule.
func loadRow(buf []float32, src *plane.Plane, sy, left, right int, p Params) {
	yi, ok := p.Border.Index(sy, src.Height())
	if !ok {
		for i := range buf {
			buf[i] = p.Value
		}

		return
	}

	plane.ExtendRow(buf, src.Row(yi), left, right, p.Border, p.Value)
}
