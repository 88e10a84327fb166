package rowkernel

func init() {
	Global.Register(Entry{Name: "generic", Priority: 0, Accumulate: accumulateGeneric})
	Global.Register(Entry{Name: "unrolled4", Priority: 5, Accumulate: accumulateUnrolled4})
	Global.Register(Entry{Name: "taps3", Taps: 3, Priority: 10, Accumulate: accumulate3})
	Global.Register(Entry{Name: "taps5", Taps: 5, Priority: 10, Accumulate: accumulate5})
}

// Products are converted explicitly so the compiler never fuses them into an
// FMA; every kernel then rounds identically.
func accumulateGeneric(dst, src, taps []float32) {
	for x := range dst {
		var sum float32

		s := src[x : x+len(taps)]
		for i, t := range taps {
			sum += float32(t * s[i])
		}

		dst[x] += sum
	}
}

// accumulateUnrolled4 processes four output samples per iteration. The sum
// for each sample is formed in the same tap order as accumulateGeneric, so
// both produce identical results.
func accumulateUnrolled4(dst, src, taps []float32) {
	n := len(dst)
	m := len(taps)
	x := 0

	for ; x+4 <= n; x += 4 {
		var s0, s1, s2, s3 float32

		w := src[x : x+m+3]
		for i, t := range taps {
			s0 += float32(t * w[i])
			s1 += float32(t * w[i+1])
			s2 += float32(t * w[i+2])
			s3 += float32(t * w[i+3])
		}

		dst[x] += s0
		dst[x+1] += s1
		dst[x+2] += s2
		dst[x+3] += s3
	}

	if x < n {
		accumulateGeneric(dst[x:], src[x:], taps)
	}
}

func accumulate3(dst, src, taps []float32) {
	t0, t1, t2 := taps[0], taps[1], taps[2]
	src = src[:len(dst)+2]

	for x := range dst {
		var sum float32
		sum += float32(t0 * src[x])
		sum += float32(t1 * src[x+1])
		sum += float32(t2 * src[x+2])
		dst[x] += sum
	}
}

func accumulate5(dst, src, taps []float32) {
	t0, t1, t2, t3, t4 := taps[0], taps[1], taps[2], taps[3], taps[4]
	src = src[:len(dst)+4]

	for x := range dst {
		var sum float32
		sum += float32(t0 * src[x])
		sum += float32(t1 * src[x+1])
		sum += float32(t2 * src[x+2])
		sum += float32(t3 * src[x+3])
		sum += float32(t4 * src[x+4])
		dst[x] += sum
	}
}
