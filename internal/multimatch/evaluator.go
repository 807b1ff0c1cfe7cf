// Package multimatch compares model scanpaths against human scanpaths, and
// humans against each other, with a five dimensional scanpath similarity.
package multimatch

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/vsbench/scanpath-eval/internal/alignment"
	"github.com/vsbench/scanpath-eval/internal/cache"
	"github.com/vsbench/scanpath-eval/internal/scanpath"
)

const (
	DefaultTimeScale     = 0.0001
	DefaultDummyDuration = 0.3
	DefaultMinFixations  = alignment.MinFixations
)

type ModelResult struct {
	ModelName string                      `json:"model_name"`
	Results   map[string]alignment.Vector `json:"results"`
}

type Evaluator struct {
	DatasetName string

	repo    *scanpath.Repository
	store   cache.BaselineStore
	aligner alignment.Aligner

	timeScale     float64
	dummyDuration float64
	minFixations  int

	models []ModelResult
}

type EvaluatorOption func(*Evaluator)

func WithAligner(aligner alignment.Aligner) EvaluatorOption {
	return func(e *Evaluator) {
		e.aligner = aligner
	}
}

func WithStore(store cache.BaselineStore) EvaluatorOption {
	return func(e *Evaluator) {
		e.store = store
	}
}

// WithTimeScale sets the factor converting stored fixation times to seconds.
func WithTimeScale(scale float64) EvaluatorOption {
	return func(e *Evaluator) {
		e.timeScale = scale
	}
}

// WithDummyDuration sets the duration given to every fixation of a trial
// without recorded times.
func WithDummyDuration(seconds float64) EvaluatorOption {
	return func(e *Evaluator) {
		e.dummyDuration = seconds
	}
}

func WithMinFixations(n int) EvaluatorOption {
	return func(e *Evaluator) {
		e.minFixations = n
	}
}

// NewEvaluator builds an evaluator over the human scanpaths in
// humanScanpathsDir. The baseline is cached in datasetResultsDir unless
// another store is given.
func NewEvaluator(datasetName, humanScanpathsDir, datasetResultsDir string, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		DatasetName:   datasetName,
		repo:          scanpath.NewRepository(humanScanpathsDir),
		store:         cache.NewFileStore(datasetResultsDir),
		timeScale:     DefaultTimeScale,
		dummyDuration: DefaultDummyDuration,
		minFixations:  DefaultMinFixations,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.aligner == nil {
		e.aligner = alignment.NewMultiMatch(alignment.WithMinFixations(e.minFixations))
	}

	return e
}

// Compare scores second against first. second is rescaled onto first's
// screen, which is also the screen passed to the aligner. ok is false when
// either side missed the target, has no image size or is too short.
func (e *Evaluator) Compare(first, second scanpath.Trial) (alignment.Vector, bool) {
	if !first.TargetFound || !second.TargetFound {
		return alignment.Vector{}, false
	}
	if !first.HasImageSize() || !second.HasImageSize() {
		return alignment.Vector{}, false
	}

	screen := alignment.ScreenSize{Width: first.ImageWidth, Height: first.ImageHeight}
	rescaled := second.RescaleTo(screen.Width, screen.Height)

	if first.Len() < e.minFixations || rescaled.Len() < e.minFixations {
		return alignment.Vector{}, false
	}

	a := first.Fixations(e.durations(first))
	b := rescaled.Fixations(e.durations(rescaled))

	return e.aligner.Align(a, b, screen)
}

func (e *Evaluator) durations(t scanpath.Trial) []float64 {
	durations := make([]float64, t.Len())
	if t.HasDurations() {
		for i, v := range t.T {
			durations[i] = v * e.timeScale
		}
		return durations
	}

	for i := range durations {
		durations[i] = e.dummyDuration
	}
	return durations
}

// CompareModelAgainstHumans compares the model's trial on every image with
// each human subject's trial on the same image and returns the mean per
// image. Images without a single valid comparison are left out.
func (e *Evaluator) CompareModelAgainstHumans(ctx context.Context, modelScanpaths scanpath.Collection) (map[string]alignment.Vector, error) {
	subjects, err := e.repo.Subjects()
	if err != nil {
		return nil, err
	}

	acc := NewAccumulator()
	for _, subject := range subjects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, image := range scanpath.SharedImages(modelScanpaths, subject.Scanpaths) {
			v, ok := e.Compare(subject.Scanpaths[image], modelScanpaths[image])
			if !ok {
				log.Trace().Str("subject", subject.Name).Str("image", image).Msg("model trial not comparable")
				continue
			}
			acc.Add(image, v)
		}
	}

	return acc.Finalize(), nil
}

// AddModel compares a model against the humans and keeps the result for
// Summary.
func (e *Evaluator) AddModel(ctx context.Context, modelName string, modelScanpaths scanpath.Collection) (ModelResult, error) {
	results, err := e.CompareModelAgainstHumans(ctx, modelScanpaths)
	if err != nil {
		return ModelResult{}, fmt.Errorf("model %s: %w", modelName, err)
	}

	result := ModelResult{ModelName: modelName, Results: results}
	e.models = append(e.models, result)

	log.Info().Str("dataset", e.DatasetName).Str("model", modelName).Int("images", len(results)).
		Msg("computed model vs humans multimatch")
	return result, nil
}

func (e *Evaluator) Models() []ModelResult {
	return e.models
}

// LoadOrComputeHumanBaseline returns the cached human-vs-human mean per
// image. On a cache miss it compares every unordered pair of distinct
// subjects and stores the result before returning it. A cached baseline is
// returned as is, even if the subject files changed since.
func (e *Evaluator) LoadOrComputeHumanBaseline(ctx context.Context) (map[string]alignment.Vector, error) {
	cached, found, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if found {
		return cached, nil
	}

	subjects, err := e.repo.Subjects()
	if err != nil {
		return nil, err
	}

	acc, err := e.humanAccumulator(ctx, subjects)
	if err != nil {
		return nil, err
	}

	baseline := acc.Finalize()
	if err := e.store.Save(ctx, baseline); err != nil {
		return nil, fmt.Errorf("save human baseline: %w", err)
	}

	log.Info().Str("dataset", e.DatasetName).Int("subjects", len(subjects)).Int("images", len(baseline)).
		Msg("computed human multimatch baseline")
	return baseline, nil
}

func (e *Evaluator) humanAccumulator(ctx context.Context, subjects []scanpath.Subject) (*Accumulator, error) {
	acc := NewAccumulator()
	for _, pair := range UnorderedPairs(len(subjects)) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		first, second := subjects[pair[0]], subjects[pair[1]]
		for _, image := range scanpath.SharedImages(first.Scanpaths, second.Scanpaths) {
			v, ok := e.Compare(first.Scanpaths[image], second.Scanpaths[image])
			if !ok {
				log.Trace().Str("subject", first.Name).Str("other", second.Name).Str("image", image).
					Msg("human trials not comparable")
				continue
			}
			acc.Add(image, v)
		}
	}
	return acc, nil
}

// UnorderedPairs lists every (i, j) with 0 <= i < j < n.
func UnorderedPairs(n int) [][2]int {
	if n < 2 {
		return nil
	}
	pairs := make([][2]int, 0, n*(n-1)/2)
	for i := range n {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs
}
