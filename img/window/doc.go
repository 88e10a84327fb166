// Package window generates one-dimensional tapers used to design separable
// smoothing kernels.
//
// Generate returns raw window coefficients in the usual DSP convention,
// including zero-valued endpoints for windows such as Hann:
//
//	w := window.Generate(window.TypeHann, 9)
//
// Taper drops those endpoints so every tap contributes, which is what a
// kernel wants:
//
//	taps, err := window.Taper(window.TypeHann, 5) // 0.25 0.75 1 0.75 0.25
//
// Lowpass builds a windowed-sinc low-pass filter, normalised to unit DC gain.
package window
