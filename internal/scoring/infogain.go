package scoring

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const Epsilon = 2.2204e-16

// InfoGain is the mean log2 likelihood ratio of m over baseline at the
// fixations, after both maps are normalized to unit mass.
func InfoGain(m, baseline *mat.Dense, fixations []Point, eps float64) (float64, error) {
	mr, mc := m.Dims()
	br, bc := baseline.Dims()
	if mr != br || mc != bc {
		return 0, fmt.Errorf("baseline is %dx%d, map is %dx%d", br, bc, mr, mc)
	}
	if len(fixations) == 0 {
		return 0, nil
	}

	p := MassNormalize(m)
	q := MassNormalize(baseline)

	var sum float64
	for _, f := range fixations {
		if err := f.in(m); err != nil {
			return 0, err
		}
		sum += math.Log2(eps+p.At(f.Y, f.X)) - math.Log2(eps+q.At(f.Y, f.X))
	}
	return sum / float64(len(fixations)), nil
}
