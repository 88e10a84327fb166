// Package conv correlates planes with 2D kernels.
//
// Three engines are provided:
//
//   - Direct: per output row, every kernel row is correlated with the
//     border-extended source row. O(W*H*kw*kh).
//   - Separable: a horizontal then a vertical 1D pass, for kernels that
//     factor into an outer product. O(W*H*(kw+kh)).
//   - FFT: the border-extended image and the kernel are transformed with
//     algo-fft, multiplied and transformed back. Cost is independent of the
//     kernel size, which pays off for large kernels.
//
// # Usage
//
//	err := conv.Correlate(dst, src, k, conv.MethodAuto, conv.Params{
//	    Border: plane.BorderMirror,
//	    Run:    pool.ParallelFor,
//	})
//
// # Algorithm Selection
//
// [Choose] picks Separable whenever the kernel decomposes, FFT for kernels of
// 225 taps or more on images of at least 4096 pixels, and Direct otherwise.
//
// # Parallelism
//
// Every engine splits its work into row ranges handed to Params.Run. Each
// output sample is computed by the same sequence of operations whatever the
// split, so serial and parallel runs give bitwise identical results.
package conv
