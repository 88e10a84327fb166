package filter_test

import (
	"fmt"

	"github.com/cwbudde/algo-image/img/filter"
	"github.com/cwbudde/algo-image/img/kernel"
)

func ExampleFilter() {
	in := []float32{
		0, 0, 0,
		0, 16, 0,
		0, 0, 0,
	}
	out := make([]float32, len(in))

	if err := filter.Filter(3, 3, in, out); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(out)

	// Output:
	// [1 2 1 2 4 2 1 2 1]
}

func ExampleWithMedian() {
	in := []float32{
		1, 1, 1, 1,
		1, 9, 1, 1,
		1, 1, 1, 1,
	}
	out := make([]float32, len(in))

	if err := filter.Filter(4, 3, in, out, filter.WithMedian(3), filter.WithSerial()); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(out)

	// Output:
	// [1 1 1 1 1 1 1 1 1 1 1 1]
}

func ExampleNew() {
	p, err := filter.New(filter.WithKernel(kernel.SobelX()), filter.WithWorkers(2))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer p.Close()

	in := []float32{
		0, 1, 2, 3,
		0, 1, 2, 3,
	}
	out := make([]float32, len(in))

	if err := p.Process(4, 2, in, out); err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(out)

	// Output:
	// [4 8 8 4 4 8 8 4]
}
