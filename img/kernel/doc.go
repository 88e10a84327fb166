// Package kernel defines 2D correlation kernels for image filtering.
//
// A Kernel is a row-major grid of float32 taps with an anchor. Filtering
// with a kernel computes, for every output pixel,
//
//	out(x, y) = Σ_j Σ_i Taps[j*Width+i] * in(x+i-AnchorX, y+j-AnchorY)
//
// which is correlation; the kernel is not flipped.
//
// Constructors cover the common cases:
//
//	kernel.Box(5)          // 5x5 mean
//	kernel.Gaussian(1.5)   // normalised, radius ceil(3σ)
//	kernel.Binomial(2)     // [1 2 1]^T [1 2 1] / 16
//	kernel.SobelX()        // horizontal gradient
//
// Decompose reports whether a kernel is the outer product of a column and a
// row vector, which allows filtering in two 1D passes.
package kernel
