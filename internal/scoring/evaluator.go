// Package scoring measures how well model probability maps predict human
// fixations (AUC, NSS and information gain over a center baseline).
package scoring

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"github.com/vsbench/scanpath-eval/internal/scanpath"
)

type Evaluator struct {
	pipeline *MetricsPipeline
}

func NewEvaluator(pipeline *MetricsPipeline) *Evaluator {
	if pipeline == nil {
		pipeline = SaliencyPipeline()
	}
	return &Evaluator{pipeline: pipeline}
}

// ComputeForModel walks every human trial in humanScanpathsDir. For each
// fixation index k >= 1 it loads the map the model produced before its k-th
// fixation and scores it at the human's k-th fixation. A missing map stops
// the run with an error wrapping ErrMapNotFound.
func (e *Evaluator) ComputeForModel(ctx context.Context, modelName, humanScanpathsDir string, maps MapStoreProvider) (*ModelResult, error) {
	subjects, err := scanpath.NewRepository(humanScanpathsDir).Subjects()
	if err != nil {
		return nil, err
	}

	result := &ModelResult{ModelName: modelName, RunID: uuid.NewString()}
	log.Info().Str("model", modelName).Str("run_id", result.RunID).Int("subjects", len(subjects)).
		Msg("computing scanpath prediction metrics")

	for _, subject := range subjects {
		store := maps.ForSubject(subject.Name)

		images := make([]string, 0, len(subject.Scanpaths))
		for image := range subject.Scanpaths {
			images = append(images, image)
		}
		sort.Strings(images)

		for _, image := range images {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			scores, err := e.scoreTrial(subject.Name, image, subject.Scanpaths[image], store)
			if err != nil {
				return nil, fmt.Errorf("model %s, subject %s: %w", modelName, subject.Name, err)
			}
			result.Scores = append(result.Scores, scores...)
		}
	}

	result.summarize()
	log.Info().Str("model", modelName).Int("maps", len(result.Scores)).
		Float64("auc", result.MeanAUC).Float64("nss", result.MeanNSS).Float64("info_gain", result.MeanInfoGain).
		Msg("scanpath prediction metrics computed")
	return result, nil
}

func (e *Evaluator) scoreTrial(subject, image string, trial scanpath.Trial, store MapStore) ([]FixationScore, error) {
	fixations := Points(trial)

	var scores []FixationScore
	for k := 1; k < len(fixations); k++ {
		probabilityMap, err := store.Load(image, k)
		if err != nil {
			return nil, err
		}

		s, err := e.pipeline.Process(probabilityMap, fixations[k:k+1])
		if err != nil {
			return nil, fmt.Errorf("image %s fixation %d: %w", image, k, err)
		}

		scores = append(scores, FixationScore{
			Subject:    subject,
			Image:      image,
			Index:      k,
			AUC:        s.AUC,
			NSS:        s.NSS[0],
			InfoGain:   s.InfoGain,
			Degenerate: s.Degenerate,
		})
	}
	return scores, nil
}

// Points truncates a trial's coordinates to integer cells.
func Points(trial scanpath.Trial) []Point {
	points := make([]Point, trial.Len())
	for i := range points {
		points[i] = Point{X: int(trial.X[i]), Y: int(trial.Y[i])}
	}
	return points
}

func (r *ModelResult) summarize() {
	if len(r.Scores) == 0 {
		return
	}

	var aucs, nss, igs []float64
	for _, s := range r.Scores {
		if s.Degenerate {
			r.DegenerateMaps++
			continue
		}
		aucs = append(aucs, s.AUC)
		nss = append(nss, s.NSS)
		igs = append(igs, s.InfoGain)
	}
	if len(aucs) == 0 {
		return
	}

	r.MeanAUC = stat.Mean(aucs, nil)
	r.MeanNSS = stat.Mean(nss, nil)
	r.MeanInfoGain = stat.Mean(igs, nil)
}

// SaveResult writes r to <dir>/<model>_scanpath_prediction.json.
func SaveResult(dir string, r *ModelResult) (string, error) {
	data, err := sonic.ConfigStd.MarshalIndent(r, "", "    ")
	if err != nil {
		return "", fmt.Errorf("encode scanpath prediction result: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, r.ModelName+"_scanpath_prediction.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write scanpath prediction result: %w", err)
	}
	return path, nil
}
