package scoring

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// AUCs scores each fixation by ranking its map value against every cell of
// the map, its own cell included. The mean over fixations is returned too.
func AUCs(m *mat.Dense, fixations []Point) ([]float64, float64, error) {
	negatives := cells(m)

	aucs := make([]float64, len(fixations))
	for i, f := range fixations {
		if err := f.in(m); err != nil {
			return nil, 0, err
		}
		aucs[i] = aucForOnePositive(m.At(f.Y, f.X), negatives)
	}

	if len(aucs) == 0 {
		return aucs, 0, nil
	}
	return aucs, stat.Mean(aucs, nil), nil
}

// aucForOnePositive equals the ROC AUC of a single positive against the
// negatives, without sorting them.
func aucForOnePositive(positive float64, negatives []float64) float64 {
	var count float64
	for _, negative := range negatives {
		if negative < positive {
			count++
		} else if negative == positive {
			count += 0.5
		}
	}
	return count / float64(len(negatives))
}
