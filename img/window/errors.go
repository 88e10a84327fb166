package window

import (
	"errors"
	"fmt"
)

var (
	errMismatchedLength = errors.New("window: samples and coefficients must have same length")
	errZeroSum          = errors.New("window: coefficients sum to zero")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window: size must be > 0: %d", size)
	}

	return nil
}

func validateCutoff(cutoff float64) error {
	if !(cutoff > 0 && cutoff <= 0.5) {
		return fmt.Errorf("window: cutoff must be in (0, 0.5]: %g", cutoff)
	}

	return nil
}
