// Package filter is the single-call entry point of algo-image.
//
// Filter reads a width x height row-major float32 image and writes the
// filtered image into a caller-provided buffer of the same size:
//
//	out := make([]float32, w*h)
//	if err := filter.Filter(w, h, in, out); err != nil {
//	    return err
//	}
//
// Without options the image is smoothed with the 3x3 binomial kernel
// [1 2 1]^T [1 2 1] / 16 under mirror borders, in parallel on a shared
// worker pool. WithSerial keeps the work on the calling goroutine. Serial
// and parallel runs produce bitwise identical output.
//
// Other operations are selected with WithKernel, WithMedian, WithMinimum and
// WithMaximum. When several are given the last one wins.
//
// A Processor keeps its own worker pool between calls:
//
//	p, err := filter.New(filter.WithKernel(k), filter.WithWorkers(4))
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	for _, frame := range frames {
//	    if err := p.Process(w, h, frame, out); err != nil {
//	        return err
//	    }
//	}
package filter
