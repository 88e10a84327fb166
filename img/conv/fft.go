package conv

import (
	"fmt"
	"math/cmplx"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-image/img/kernel"
	"github.com/cwbudde/algo-image/img/plane"
)

// spectrum is a row-major complex grid of fftW x fftH samples.
type spectrum struct {
	data       []complex128
	fftW, fftH int
}

func newSpectrum(fftW, fftH int) *spectrum {
	return &spectrum{
		data: make([]complex128, fftW*fftH),
		fftW: fftW,
		fftH: fftH,
	}
}

func (s *spectrum) row(y int) []complex128 {
	return s.data[y*s.fftW : (y+1)*s.fftW]
}

// fftCorrelate computes out(x, y) = Σ k(i, j) e(x+i, y+j), where e is the
// source extended by the kernel margins. The product E·conj(K) of the two
// spectra is the circular correlation; the FFT grid is at least as large as
// e, so no sample needed for the output wraps around.
func fftCorrelate(dst, src *plane.Plane, k *kernel.Kernel, p Params) error {
	w, h := src.Width(), src.Height()
	left, right, top, _ := k.Margins()
	extW := w + k.Width - 1
	extH := h + k.Height - 1
	fftW := nextPowerOf2(extW)
	fftH := nextPowerOf2(extH)
	run := p.runner()

	img := newSpectrum(fftW, fftH)

	run(extH, rowGrain(fftW, 1), func(y0, y1 int) {
		bp := scratch.get(extW)
		defer scratch.put(bp)

		buf := *bp

		for ey := y0; ey < y1; ey++ {
			loadRow(buf, src, ey-top, left, right, p)

			line := img.row(ey)
			for x, v := range buf {
				line[x] = complex(float64(v), 0)
			}
		}
	})

	ker := newSpectrum(fftW, fftH)
	for j := range k.Height {
		line := ker.row(j)
		for i, v := range k.Row(j) {
			line[i] = complex(float64(v), 0)
		}
	}

	if err := forward2D(img, extH, run); err != nil {
		return err
	}

	if err := forward2D(ker, k.Height, run); err != nil {
		return err
	}

	run(fftH, rowGrain(fftW, 1), func(y0, y1 int) {
		for i := y0 * fftW; i < y1*fftW; i++ {
			img.data[i] *= cmplx.Conj(ker.data[i])
		}
	})

	if err := inverse2D(img, h, run); err != nil {
		return err
	}

	run(h, rowGrain(w, 1), func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			out := dst.Row(y)
			line := img.row(y)

			for x := range out {
				out[x] = float32(real(line[x]))
			}
		}
	})

	return nil
}

// forward2D transforms the first rows rows (the rest are zero), then every
// column.
func forward2D(s *spectrum, rows int, run Runner) error {
	if err := transformRows(s, 0, rows, false, run); err != nil {
		return err
	}

	return transformColumns(s, false, run)
}

// inverse2D transforms every column, then only the first rows rows that the
// caller reads.
func inverse2D(s *spectrum, rows int, run Runner) error {
	if err := transformColumns(s, true, run); err != nil {
		return err
	}

	return transformRows(s, 0, rows, true, run)
}

func transformRows(s *spectrum, y0, y1 int, inverse bool, run Runner) error {
	if s.fftW == 1 {
		return nil
	}

	var errs firstError

	run(y1-y0, rowGrain(s.fftW, 4), func(start, end int) {
		plan, err := algofft.NewPlan64(s.fftW)
		if err != nil {
			errs.set(fmt.Errorf("conv: failed to create FFT plan: %w", err))
			return
		}

		for y := y0 + start; y < y0+end; y++ {
			line := s.row(y)
			if err := transform(plan, line, 1, inverse); err != nil {
				errs.set(err)
				return
			}
		}
	})

	return errs.get()
}

func transformColumns(s *spectrum, inverse bool, run Runner) error {
	if s.fftH == 1 {
		return nil
	}

	var errs firstError

	run(s.fftW, rowGrain(s.fftH, 4), func(start, end int) {
		plan, err := algofft.NewPlan64(s.fftH)
		if err != nil {
			errs.set(fmt.Errorf("conv: failed to create FFT plan: %w", err))
			return
		}

		for x := start; x < end; x++ {
			column := s.data[x:]
			if err := transform(plan, column, s.fftW, inverse); err != nil {
				errs.set(err)
				return
			}
		}
	})

	return errs.get()
}

// transform runs plan in place over line[0], line[stride], line[2*stride], ...
func transform(plan *algofft.Plan[complex128], line []complex128, stride int, inverse bool) error {
	if inverse {
		if err := plan.InverseStrided(line, line, stride); err != nil {
			return fmt.Errorf("conv: inverse FFT failed: %w", err)
		}

		return nil
	}

	if err := plan.ForwardStrided(line, line, stride); err != nil {
		return fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	return nil
}

// firstError keeps the first error reported by concurrent tasks.
type firstError struct {
	once sync.Once
	err  error
}

func (e *firstError) set(err error) {
	e.once.Do(func() { e.err = err })
}

func (e *firstError) get() error {
	return e.err
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
