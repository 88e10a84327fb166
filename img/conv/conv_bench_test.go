package conv

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-image/img/kernel"
	"github.com/cwbudde/algo-image/img/plane"
	"github.com/cwbudde/algo-image/internal/testutil"
	"github.com/cwbudde/algo-image/internal/workerpool"
)

// Benchmark each engine on a 512x512 image with growing Gaussian kernels.
func BenchmarkCorrelate(b *testing.B) {
	const w, h = 512, 512

	src, _ := plane.FromSlice(w, h, testutil.Noise(1, w, h))
	dst, _ := plane.New(w, h)

	pool := workerpool.New(0)
	defer pool.Close()

	for _, sigma := range []float64{1, 3, 6} {
		k, err := kernel.Gaussian(sigma)
		if err != nil {
			b.Fatal(err)
		}

		for _, m := range []Method{MethodDirect, MethodSeparable, MethodFFT} {
			for _, parallel := range []bool{false, true} {
				p := Params{Border: plane.BorderMirror}
				if parallel {
					p.Run = pool.ParallelFor
				}

				b.Run(fmt.Sprintf("kernel=%dx%d/%v/parallel=%t", k.Width, k.Height, m, parallel), func(b *testing.B) {
					b.ReportAllocs()
					for i := 0; i < b.N; i++ {
						_ = Correlate(dst, src, k, m, p)
					}
				})
			}
		}
	}
}
