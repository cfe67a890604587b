package errors

import (
	"math"
)

// CheckNumericalStability checks if values contain NaN or Inf
// and returns an error if numerical instability is detected.
func CheckNumericalStability(operation string, values []float64, row int) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewNumericalInstabilityError(operation, values, row)
		}
	}
	return nil
}

// CheckMatrix checks all values in a matrix for numerical instability.
// The reported row is the first row holding a non-finite value.
func CheckMatrix(operation string, matrix interface{ At(int, int) float64 }, rows, cols int) error {
	var unstableValues []float64

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := matrix.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				unstableValues = append(unstableValues, v)
				if len(unstableValues) >= 10 {
					break
				}
			}
		}
		if len(unstableValues) > 0 {
			return NewNumericalInstabilityError(operation, unstableValues, i)
		}
	}

	return nil
}
