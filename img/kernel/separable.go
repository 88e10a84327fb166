package kernel

import "math"

// decomposeTolerance bounds the relative reconstruction error accepted by
// Decompose.
const decomposeTolerance = 1e-6

// Decompose factors the kernel as the outer product of col (length Height)
// and row (length Width). ok is false if the kernel is not rank one.
//
// The pivot is the largest-magnitude tap; its row and column give the two
// factors, and every tap is checked against their product.
func (k *Kernel) Decompose() (row, col []float32, ok bool) {
	pivot := 0
	maxAbs := 0.0

	for i, t := range k.Taps {
		if a := math.Abs(float64(t)); a > maxAbs {
			maxAbs = a
			pivot = i
		}
	}

	if maxAbs == 0 {
		return nil, nil, false
	}

	pi := pivot % k.Width
	pj := pivot / k.Width
	p := float64(k.Taps[pivot])

	r := make([]float64, k.Width)
	for i := range r {
		r[i] = float64(k.At(i, pj)) / p
	}

	c := make([]float64, k.Height)
	for j := range c {
		c[j] = float64(k.At(pi, j))
	}

	for j := range c {
		for i := range r {
			diff := math.Abs(c[j]*r[i] - float64(k.At(i, j)))
			if diff > decomposeTolerance*maxAbs {
				return nil, nil, false
			}
		}
	}

	balance(r, c)

	row = make([]float32, len(r))
	for i, v := range r {
		row[i] = float32(v)
	}

	col = make([]float32, len(c))
	for j, v := range c {
		col[j] = float32(v)
	}

	return row, col, true
}

// balance rescales the factors so that when the row has a nonzero sum it
// sums to one, moving the scale into the column. Smoothing kernels then
// decompose into two normalised 1D kernels.
func balance(r, c []float64) {
	sum := 0.0
	for _, v := range r {
		sum += v
	}

	if math.Abs(sum) < 1e-12 {
		return
	}

	for i := range r {
		r[i] /= sum
	}

	for j := range c {
		c[j] *= sum
	}
}

// IsSeparable reports whether Decompose succeeds.
func (k *Kernel) IsSeparable() bool {
	_, _, ok := k.Decompose()
	return ok
}
