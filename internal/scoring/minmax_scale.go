package scoring

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MinMaxScale maps scores onto [0, 1]. Constant input scales to all zeros.
func MinMaxScale(scores []float64) []float64 {
	result := make([]float64, len(scores))
	copy(result, scores)

	min := floats.Min(result)
	max := floats.Max(result)

	if max != min {
		floats.AddConst(-min, result)
		floats.Scale(1.0/(max-min), result)
	} else {
		floats.Scale(0, result)
	}

	return result
}

// Normalize min-max scales a probability map. ok is false when the map is
// constant, in which case the returned map is all zeros.
func Normalize(m *mat.Dense) (normalized *mat.Dense, ok bool) {
	rows, cols := m.Dims()
	data := cells(m)

	ok = floats.Max(data) != floats.Min(data)
	return mat.NewDense(rows, cols, MinMaxScale(data)), ok
}

// cells copies the values of m in row-major order.
func cells(m mat.Matrix) []float64 {
	rows, cols := m.Dims()
	data := make([]float64, 0, rows*cols)
	for i := range rows {
		for j := range cols {
			data = append(data, m.At(i, j))
		}
	}
	return data
}
