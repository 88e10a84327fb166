package window_test

import (
	"fmt"

	"github.com/cwbudde/algo-image/img/window"
)

func ExampleTaper() {
	taps, _ := window.Taper(window.TypeHann, 5)

	for _, v := range taps {
		fmt.Printf("%.2f ", v)
	}

	fmt.Println()

	// Output:
	// 0.25 0.75 1.00 0.75 0.25
}
