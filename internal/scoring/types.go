package scoring

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrMapNotFound         = errors.New("probability map not found")
	ErrFixationOutOfBounds = errors.New("fixation outside probability map")
)

// Point is a fixation in map cells.
type Point struct {
	X int
	Y int
}

func (p Point) in(m mat.Matrix) error {
	rows, cols := m.Dims()
	if p.X < 0 || p.Y < 0 || p.X >= cols || p.Y >= rows {
		return fmt.Errorf("%w: (x=%d, y=%d) on a %dx%d map", ErrFixationOutOfBounds, p.X, p.Y, cols, rows)
	}
	return nil
}

// MapScores holds the metrics of one probability map against a set of
// fixations.
type MapScores struct {
	AUCs       []float64 `json:"aucs"`
	AUC        float64   `json:"auc"`
	NSS        []float64 `json:"nss"`
	InfoGain   float64   `json:"info_gain"`
	Degenerate bool      `json:"degenerate,omitempty"` // constant map, scores are neutral
}

// FixationScore is the score of the map a model produced before its
// Index-th fixation, measured at the human's Index-th fixation.
type FixationScore struct {
	Subject    string  `json:"subject"`
	Image      string  `json:"image"`
	Index      int     `json:"index"`
	AUC        float64 `json:"auc"`
	NSS        float64 `json:"nss"`
	InfoGain   float64 `json:"info_gain"`
	Degenerate bool    `json:"degenerate,omitempty"`
}

type ModelResult struct {
	ModelName    string          `json:"model_name"`
	RunID        string          `json:"run_id"`
	Scores       []FixationScore `json:"scores"`
	MeanAUC      float64         `json:"mean_auc"`
	MeanNSS      float64         `json:"mean_nss"`
	MeanInfoGain float64         `json:"mean_info_gain"`

	// DegenerateMaps counts constant maps left out of the means.
	DegenerateMaps int `json:"degenerate_maps,omitempty"`
}
