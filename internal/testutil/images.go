package testutil

import (
	"math"
	"math/rand"
)

// Noise returns a width*height image of uniform noise in [0, 1) from a fixed seed.
func Noise(seed int64, width, height int) []float32 {
	out := make([]float32, width*height)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = rng.Float32()
	}

	return out
}

// Gradient returns an image whose value is x + width*y, scaled to [0, 1].
func Gradient(width, height int) []float32 {
	out := make([]float32, width*height)
	if len(out) == 0 {
		return out
	}

	scale := float32(1)
	if len(out) > 1 {
		scale = 1 / float32(len(out)-1)
	}

	for i := range out {
		out[i] = float32(i) * scale
	}

	return out
}

// Rings returns concentric sine rings centred in the image, a smooth test
// pattern with energy at many spatial frequencies.
func Rings(width, height int, period float64) []float32 {
	out := make([]float32, width*height)
	cx := float64(width-1) / 2
	cy := float64(height-1) / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := math.Hypot(float64(x)-cx, float64(y)-cy)
			out[y*width+x] = float32(0.5 + 0.5*math.Sin(2*math.Pi*r/period))
		}
	}

	return out
}

// Impulse returns an all-zero image with a single 1 at (x, y).
func Impulse(width, height, x, y int) []float32 {
	out := make([]float32, width*height)
	if x >= 0 && x < width && y >= 0 && y < height {
		out[y*width+x] = 1
	}

	return out
}

// Constant returns an image filled with value.
func Constant(value float32, width, height int) []float32 {
	out := make([]float32, width*height)
	for i := range out {
		out[i] = value
	}

	return out
}
