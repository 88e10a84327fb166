package conv

import (
	"errors"
	"math/cmplx"
	"testing"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-image/img/kernel"
	"github.com/cwbudde/algo-image/img/plane"
	"github.com/cwbudde/algo-image/internal/testutil"
	"github.com/cwbudde/algo-image/internal/workerpool"
)

// reference correlates in float64 straight from the definition.
func reference(src *plane.Plane, k *kernel.Kernel, border plane.Border, value float32) []float32 {
	w, h := src.Width(), src.Height()
	out := make([]float32, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0.0

			for j := 0; j < k.Height; j++ {
				for i := 0; i < k.Width; i++ {
					v := src.AtBorder(x+i-k.AnchorX, y+j-k.AnchorY, border, value)
					sum += float64(k.At(i, j)) * float64(v)
				}
			}

			out[y*w+x] = float32(sum)
		}
	}

	return out
}

func mustPlane(t *testing.T, w, h int, data []float32) *plane.Plane {
	t.Helper()

	p, err := plane.FromSlice(w, h, data)
	if err != nil {
		t.Fatal(err)
	}

	return p
}

func testKernels(t *testing.T) map[string]*kernel.Kernel {
	t.Helper()

	box, _ := kernel.Box(3)
	gauss, _ := kernel.Gaussian(1.1)
	bin, _ := kernel.Binomial(4)

	asym, err := kernel.New(4, 2, []float32{0.5, -1, 2, 0.25, 1, 0, -0.75, 3})
	if err != nil {
		t.Fatal(err)
	}

	corner := kernel.Emboss()
	corner.AnchorX, corner.AnchorY = 0, 2

	return map[string]*kernel.Kernel{
		"identity":  kernel.Identity(),
		"box3":      box,
		"gauss":     gauss,
		"binomial4": bin,
		"sobel-x":   kernel.SobelX(),
		"laplacian": kernel.Laplacian8(),
		"asym":      asym,
		"corner":    corner,
	}
}

var sizes = [][2]int{{1, 1}, {1, 7}, {6, 1}, {7, 5}, {16, 16}, {33, 19}}

func TestIdentityExact(t *testing.T) {
	src := mustPlane(t, 9, 7, testutil.Noise(1, 9, 7))

	for _, m := range []Method{MethodDirect, MethodSeparable} {
		dst, _ := plane.New(9, 7)
		if err := Correlate(dst, src, kernel.Identity(), m, Params{}); err != nil {
			t.Fatal(err)
		}

		testutil.RequireIdentical(t, dst.Data(), src.Data())
	}
}

func TestDirectMatchesReference(t *testing.T) {
	for name, k := range testKernels(t) {
		for _, border := range plane.Borders() {
			for _, sz := range sizes {
				w, h := sz[0], sz[1]
				src := mustPlane(t, w, h, testutil.Noise(int64(w*h), w, h))
				dst, _ := plane.New(w, h)

				p := Params{Border: border, Value: 0.5}
				if err := Direct(dst, src, k, p); err != nil {
					t.Fatal(err)
				}

				want := reference(src, k, border, 0.5)
				if d, _ := testutil.MaxAbsDiff(dst.Data(), want); d > 1e-5 {
					t.Fatalf("%s/%v/%dx%d: max diff %g", name, border, w, h, d)
				}
			}
		}
	}
}

func TestSeparableMatchesReference(t *testing.T) {
	for name, k := range testKernels(t) {
		if !k.IsSeparable() {
			continue
		}

		for _, border := range plane.Borders() {
			for _, sz := range sizes {
				w, h := sz[0], sz[1]
				src := mustPlane(t, w, h, testutil.Rings(w, h, 5))
				dst, _ := plane.New(w, h)

				if err := Separable(dst, src, k, Params{Border: border, Value: -1}); err != nil {
					t.Fatal(err)
				}

				want := reference(src, k, border, -1)
				if d, _ := testutil.MaxAbsDiff(dst.Data(), want); d > 1e-5 {
					t.Fatalf("%s/%v/%dx%d: max diff %g", name, border, w, h, d)
				}
			}
		}
	}
}

func TestFFTMatchesReference(t *testing.T) {
	for name, k := range testKernels(t) {
		for _, border := range plane.Borders() {
			for _, sz := range sizes {
				w, h := sz[0], sz[1]
				src := mustPlane(t, w, h, testutil.Noise(int64(w+h), w, h))
				dst, _ := plane.New(w, h)

				if err := FFT(dst, src, k, Params{Border: border, Value: 2}); err != nil {
					t.Fatal(err)
				}

				want := reference(src, k, border, 2)
				if d, _ := testutil.MaxAbsDiff(dst.Data(), want); d > 1e-4 {
					t.Fatalf("%s/%v/%dx%d: max diff %g", name, border, w, h, d)
				}
			}
		}
	}
}

func TestSerialParallelIdentical(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	const w, h = 57, 41

	src := mustPlane(t, w, h, testutil.Noise(42, w, h))
	big, _ := kernel.Box(15)

	ks := testKernels(t)
	ks["box15"] = big

	for name, k := range ks {
		for _, m := range []Method{MethodDirect, MethodSeparable, MethodFFT} {
			if m == MethodSeparable && !k.IsSeparable() {
				continue
			}

			serial, _ := plane.New(w, h)
			parallel, _ := plane.New(w, h)

			if err := Correlate(serial, src, k, m, Params{Border: plane.BorderWrap}); err != nil {
				t.Fatal(err)
			}

			p := Params{Border: plane.BorderWrap, Run: func(n, _ int, fn func(start, end int)) {
				// grain 1 forces the finest split the pool allows
				pool.ParallelFor(n, 1, fn)
			}}
			if err := Correlate(parallel, src, k, m, p); err != nil {
				t.Fatal(err)
			}

			t.Run(name+"/"+m.String(), func(t *testing.T) {
				testutil.RequireIdentical(t, parallel.Data(), serial.Data())
			})
		}
	}
}

func TestConstantImagePreserved(t *testing.T) {
	gauss, _ := kernel.Gaussian(2)
	src := mustPlane(t, 20, 12, testutil.Constant(0.7, 20, 12))

	for _, border := range []plane.Border{plane.BorderMirror, plane.BorderClamp, plane.BorderWrap} {
		for _, m := range []Method{MethodDirect, MethodSeparable, MethodFFT} {
			dst, _ := plane.New(20, 12)
			if err := Correlate(dst, src, gauss, m, Params{Border: border}); err != nil {
				t.Fatal(err)
			}

			testutil.RequireNearlyEqual(t, dst.Data(), src.Data(), 1e-5)
		}
	}
}

func TestConstantBorderFill(t *testing.T) {
	box, _ := kernel.Box(3)
	src := mustPlane(t, 4, 4, make([]float32, 16))
	dst, _ := plane.New(4, 4)

	if err := Direct(dst, src, box, Params{Border: plane.BorderConstant, Value: 9}); err != nil {
		t.Fatal(err)
	}

	// a corner sees 5 outside samples, an edge 3, the interior none
	if got := dst.At(0, 0); got < 4.99 || got > 5.01 {
		t.Errorf("corner = %v, want 5", got)
	}

	if got := dst.At(1, 0); got < 2.99 || got > 3.01 {
		t.Errorf("edge = %v, want 3", got)
	}

	if got := dst.At(1, 1); got != 0 {
		t.Errorf("interior = %v, want 0", got)
	}
}

func TestCorrelateNotConvolve(t *testing.T) {
	k, _ := kernel.New(3, 1, []float32{1, 0, 0})
	src := mustPlane(t, 4, 1, []float32{1, 2, 3, 4})

	for _, m := range []Method{MethodDirect, MethodSeparable, MethodFFT} {
		dst, _ := plane.New(4, 1)
		if err := Correlate(dst, src, k, m, Params{Border: plane.BorderConstant}); err != nil {
			t.Fatal(err)
		}

		// taps[0] reads x-1
		testutil.RequireNearlyEqual(t, dst.Data(), []float32{0, 1, 2, 3}, 1e-6)
	}
}

func TestErrors(t *testing.T) {
	a, _ := plane.New(4, 4)
	b, _ := plane.New(4, 3)

	if err := Direct(a, b, kernel.Identity(), Params{}); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("size mismatch err = %v", err)
	}

	if err := Direct(a, a, kernel.Identity(), Params{}); !errors.Is(err, ErrAliased) {
		t.Errorf("aliased err = %v", err)
	}

	c, _ := plane.New(4, 4)
	if err := Separable(c, a, kernel.Laplacian4(), Params{}); !errors.Is(err, ErrNotSeparable) {
		t.Errorf("not separable err = %v", err)
	}

	bad := kernel.Identity()
	bad.Taps = nil

	if err := Direct(c, a, bad, Params{}); !errors.Is(err, kernel.ErrTapCount) {
		t.Errorf("invalid kernel err = %v", err)
	}

	if err := Correlate(c, a, kernel.Identity(), Method(99), Params{}); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestSeparableRowCol(t *testing.T) {
	src := mustPlane(t, 8, 6, testutil.Gradient(8, 6))
	dst, _ := plane.New(8, 6)

	row := []float32{0.25, 0.5, 0.25}
	col := []float32{1, 0}

	if err := SeparableRowCol(dst, src, row, col, 1, 0, Params{Border: plane.BorderClamp}); err != nil {
		t.Fatal(err)
	}

	k, _ := kernel.Separable(row, col)
	k.AnchorY = 0

	testutil.RequireNearlyEqual(t, dst.Data(), reference(src, k, plane.BorderClamp, 0), 1e-6)

	if err := SeparableRowCol(dst, src, row, col, 3, 0, Params{}); !errors.Is(err, kernel.ErrAnchor) {
		t.Errorf("bad anchor err = %v", err)
	}
}

func TestChoose(t *testing.T) {
	big, err := kernel.New(15, 15, testutil.Noise(5, 15, 15))
	if err != nil {
		t.Fatal(err)
	}

	gauss, _ := kernel.Gaussian(3)

	tests := []struct {
		name string
		k    *kernel.Kernel
		w, h int
		want Method
	}{
		{"identity", kernel.Identity(), 100, 100, MethodDirect},
		{"gaussian", gauss, 100, 100, MethodSeparable},
		{"laplacian", kernel.Laplacian4(), 100, 100, MethodDirect},
		{"large dense", big, 100, 100, MethodFFT},
		{"large dense small image", big, 20, 20, MethodDirect},
	}

	for _, tt := range tests {
		if got := Choose(tt.k, tt.w, tt.h); got != tt.want {
			t.Errorf("%s: Choose = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range []Method{MethodAuto, MethodDirect, MethodSeparable, MethodFFT} {
		got, err := ParseMethod(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMethod(%q) = %v, %v", m.String(), got, err)
		}
	}

	if _, err := ParseMethod("winograd"); err == nil {
		t.Error("expected error for unknown method")
	}

	if s := Method(7).String(); s != "Method(7)" {
		t.Errorf("String() = %q", s)
	}
}

func TestNextPowerOf2(t *testing.T) {
	tests := []struct{ in, want int }{{0, 1}, {1, 1}, {2, 2}, {3, 4}, {17, 32}, {64, 64}}
	for _, tt := range tests {
		if got := nextPowerOf2(tt.in); got != tt.want {
			t.Errorf("nextPowerOf2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestTransformColumnsInPlace(t *testing.T) {
	const fftW, fftH = 4, 8

	s := newSpectrum(fftW, fftH)
	for i := range s.data {
		s.data[i] = complex(float64(i%7)-3, float64(i%5)*0.5)
	}

	want := make([][]complex128, fftW)

	plan, err := algofft.NewPlan64(fftH)
	if err != nil {
		t.Fatal(err)
	}

	for x := range want {
		col := make([]complex128, fftH)
		for y := range col {
			col[y] = s.data[y*fftW+x]
		}

		if err := plan.Forward(col, col); err != nil {
			t.Fatal(err)
		}

		want[x] = col
	}

	if err := transformColumns(s, false, workerpool.Serial); err != nil {
		t.Fatal(err)
	}

	for x, col := range want {
		for y, v := range col {
			if d := cmplx.Abs(s.data[y*fftW+x] - v); d > 1e-12 {
				t.Fatalf("(%d,%d) = %v, want %v", x, y, s.data[y*fftW+x], v)
			}
		}
	}

	if err := transformColumns(s, true, workerpool.Serial); err != nil {
		t.Fatal(err)
	}

	for i, v := range s.data {
		if want := complex(float64(i%7)-3, float64(i%5)*0.5); cmplx.Abs(v-want) > 1e-12 {
			t.Fatalf("round trip [%d] = %v, want %v", i, v, want)
		}
	}
}
