package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeKaiser
	TypeTukey
	TypeTriangle
	TypeCosine
	TypeWelch
	TypeLanczos
	TypeGauss
)

var typeNames = [...]string{
	TypeRectangular: "rectangular",
	TypeHann:        "hann",
	TypeHamming:     "hamming",
	TypeBlackman:    "blackman",
	TypeKaiser:      "kaiser",
	TypeTukey:       "tukey",
	TypeTriangle:    "triangle",
	TypeCosine:      "cosine",
	TypeWelch:       "welch",
	TypeLanczos:     "lanczos",
	TypeGauss:       "gauss",
}

// defaultAlpha holds the shape parameter used when WithAlpha is not given.
var defaultAlpha = map[Type]float64{
	TypeKaiser:  8.6,
	TypeTukey:   0.5,
	TypeLanczos: 1,
	TypeGauss:   2.5,
}

var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

// String returns the window name.
func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps a window name to its Type.
func ParseType(s string) (Type, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for t, n := range typeNames {
		if n == name {
			return Type(t), nil
		}
	}

	return 0, fmt.Errorf("window: unknown type %q", s)
}

// Types lists every supported window.
func Types() []Type {
	out := make([]Type, len(typeNames))
	for i := range out {
		out[i] = Type(i)
	}

	return out
}

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha    float64
	hasAlpha bool
	periodic bool
}

// WithAlpha sets the shape parameter of Kaiser (beta), Tukey (taper
// fraction), Lanczos (lobes) and Gauss (width) windows.
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v >= 0 {
			c.alpha = v
			c.hasAlpha = true
		}
	}
}

// WithPeriodic selects the periodic form instead of the symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if !cfg.hasAlpha {
		cfg.alpha = defaultAlpha[t]
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic), cfg.alpha)
	}

	return out
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

// Taper returns a symmetric window of size strictly positive taps. It is the
// periodic window of size+1 with its leading zero removed.
func Taper(t Type, size int, opts ...Option) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}

	w := Generate(t, size+1, append(opts, WithPeriodic())...)

	return w[1:], nil
}

// Lowpass returns a windowed-sinc low-pass filter of the given odd size with
// cutoff in cycles per sample, normalised to a DC gain of one.
func Lowpass(size int, cutoff float64, t Type, opts ...Option) ([]float64, error) {
	if err := validateLength(size); err != nil {
		return nil, err
	}

	if size%2 == 0 {
		return nil, fmt.Errorf("window: lowpass size must be odd: %d", size)
	}

	if err := validateCutoff(cutoff); err != nil {
		return nil, err
	}

	taps := make([]float64, size)
	center := size / 2

	for i := range taps {
		taps[i] = 2 * cutoff * sinc(2*cutoff*float64(i-center))
	}

	coeffs, err := Taper(t, size, opts...)
	if err != nil {
		return nil, err
	}

	if err := ApplyCoefficientsInPlace(taps, coeffs); err != nil {
		return nil, err
	}

	return taps, Normalize(taps)
}

// Normalize scales coeffs so they sum to one.
func Normalize(coeffs []float64) error {
	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	if sum == 0 {
		return errZeroSum
	}

	inv := 1 / sum
	for i := range coeffs {
		coeffs[i] *= inv
	}

	return nil
}

func evalWindow(t Type, x, alpha float64) float64 {
	x = math.Max(0, math.Min(1, x))

	switch t {
	case TypeRectangular:
		return 1
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeKaiser:
		return kaiserAt(x, alpha)
	case TypeTukey:
		return tukeyAt(x, alpha)
	case TypeTriangle:
		return 1 - math.Abs(2*x-1)
	case TypeCosine:
		return math.Sin(math.Pi * x)
	case TypeWelch:
		d := 2*x - 1
		return 1 - d*d
	case TypeLanczos:
		return sinc((2*x - 1) * alpha)
	case TypeGauss:
		v := (2*x - 1) * alpha
		return math.Exp(-0.5 * v * v)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0.5
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}

func kaiserAt(x, beta float64) float64 {
	if beta <= 0 {
		return 1
	}

	r := 2*x - 1
	term := math.Sqrt(math.Max(0, 1-r*r))

	return besselI0(beta*term) / besselI0(beta)
}

func tukeyAt(x, alpha float64) float64 {
	if alpha <= 0 {
		return 1
	}

	if alpha >= 1 {
		return cosineFromCoeffs(x, hannCoeffs)
	}

	a := alpha / 2

	switch {
	case x < a:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-1)))
	case x <= 1-a:
		return 1
	default:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-2/alpha+1)))
	}
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	px := math.Pi * x

	return math.Sin(px) / px
}

// besselI0 approximates the modified Bessel function of the first kind, order 0.
func besselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		y := x / 3.75
		y *= y

		return 1.0 + y*(3.5156229+y*(3.0899424+y*(1.2067492+y*(0.2659732+y*(0.0360768+y*0.0045813)))))
	}

	y := 3.75 / ax

	return (math.Exp(ax) / math.Sqrt(ax)) *
		(0.39894228 + y*(0.01328592+y*(0.00225319+y*(-0.00157565+y*(0.00916281+y*(-0.02057706+y*(0.02635537+y*(-0.01647633+y*0.00392377))))))))
}
