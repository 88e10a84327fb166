package plane

import "unsafe"

func overlaps(a, b []float32) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}

	const size = unsafe.Sizeof(float32(0))

	a0 := uintptr(unsafe.Pointer(unsafe.SliceData(a)))
	b0 := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	a1 := a0 + uintptr(len(a))*size
	b1 := b0 + uintptr(len(b))*size

	return a0 < b1 && b0 < a1
}
