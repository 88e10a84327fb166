package rank

import (
	"github.com/cwbudde/algo-image/img/conv"
	"github.com/cwbudde/algo-image/img/plane"
)

func median(dst, src *plane.Plane, size int, border plane.Border, value float32, run conv.Runner) {
	w := src.Width()
	stride := w + size - 1

	run(src.Height(), rowGrain(w, size), func(y0, y1 int) {
		buf := make([]float32, size*stride)
		win := make([]float32, size*size)

		for y := y0; y < y1; y++ {
			window(buf, src, y, size, border, value)

			out := dst.Row(y)
			for x := range out {
				for j := range size {
					copy(win[j*size:(j+1)*size], buf[j*stride+x:])
				}

				if size == 3 {
					out[x] = median9(win)
				} else {
					out[x] = selectKth(win, len(win)/2)
				}
			}
		}
	})
}

// median9 returns the median of the nine values in p, reordering p.
// The exchange network is the 19-comparison opt_med9 network.
func median9(p []float32) float32 {
	p = p[:9]

	sort2(p, 1, 2)
	sort2(p, 4, 5)
	sort2(p, 7, 8)
	sort2(p, 0, 1)
	sort2(p, 3, 4)
	sort2(p, 6, 7)
	sort2(p, 1, 2)
	sort2(p, 4, 5)
	sort2(p, 7, 8)
	sort2(p, 0, 3)
	sort2(p, 5, 8)
	sort2(p, 4, 7)
	sort2(p, 3, 6)
	sort2(p, 1, 4)
	sort2(p, 2, 5)
	sort2(p, 4, 7)
	sort2(p, 4, 2)
	sort2(p, 6, 4)
	sort2(p, 4, 2)

	return p[4]
}

func sort2(p []float32, a, b int) {
	if p[a] > p[b] {
		p[a], p[b] = p[b], p[a]
	}
}

// selectKth returns the k-th smallest value of v (0-based), reordering v.
func selectKth(v []float32, k int) float32 {
	lo, hi := 0, len(v)-1

	for lo < hi {
		pivot := v[lo+(hi-lo)/2]
		i, j := lo, hi

		for i <= j {
			for v[i] < pivot {
				i++
			}

			for v[j] > pivot {
				j--
			}

			if i <= j {
				v[i], v[j] = v[j], v[i]
				i++
				j--
			}
		}

		switch {
		case k <= j:
			hi = j
		case k >= i:
			lo = i
		default:
			return v[k]
		}
	}

	return v[k]
}
