package scoring

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// NSS returns the z-scored map value at each fixation. When the map has no
// spread the values are only centred.
func NSS(m *mat.Dense, fixations []Point) ([]float64, error) {
	mean, std := stat.PopMeanStdDev(cells(m), nil)

	values := make([]float64, len(fixations))
	for i, f := range fixations {
		if err := f.in(m); err != nil {
			return nil, err
		}
		v := m.At(f.Y, f.X) - mean
		if std != 0 {
			v /= std
		}
		values[i] = v
	}
	return values, nil
}
