package kernel

import (
	"math"
	"testing"
)

func TestDecomposeReconstructs(t *testing.T) {
	gauss, _ := Gaussian(1.5)
	box, _ := Box(4)
	bin, _ := Binomial(4)
	skew, _ := Separable([]float32{1, -2, 0.5}, []float32{3, 1})

	for _, k := range []*Kernel{gauss, box, bin, skew, SobelX(), SobelY(), Identity()} {
		row, col, ok := k.Decompose()
		if !ok {
			t.Fatalf("%v: expected separable", k)
		}

		if len(row) != k.Width || len(col) != k.Height {
			t.Fatalf("%v: factor lengths %d, %d", k, len(row), len(col))
		}

		for j := range col {
			for i := range row {
				got := float64(col[j]) * float64(row[i])
				if math.Abs(got-float64(k.At(i, j))) > 1e-6 {
					t.Fatalf("%v: (%d,%d) reconstructs to %v, want %v", k, i, j, got, k.At(i, j))
				}
			}
		}
	}
}

func TestDecomposeNormalisesSmoothingRow(t *testing.T) {
	k, _ := Gaussian(1)

	row, col, ok := k.Decompose()
	if !ok {
		t.Fatal("gaussian must be separable")
	}

	var rs, cs float64
	for _, v := range row {
		rs += float64(v)
	}

	for _, v := range col {
		cs += float64(v)
	}

	if math.Abs(rs-1) > 1e-6 || math.Abs(cs-1) > 1e-5 {
		t.Errorf("row sum %v, col sum %v; want 1, 1", rs, cs)
	}
}

func TestDecomposeRejectsRankTwo(t *testing.T) {
	zero, _ := New(2, 2, make([]float32, 4))

	for _, k := range []*Kernel{Laplacian4(), Laplacian8(), Sharpen(), Emboss(), zero} {
		if k.IsSeparable() {
			t.Errorf("%v must not be separable", k)
		}
	}
}
