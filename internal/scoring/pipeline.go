package scoring

import (
	"gonum.org/v1/gonum/mat"

	"github.com/vsbench/scanpath-eval/internal/utils/logger"
)

// BaselineFunc builds the reference density InfoGain compares against.
type BaselineFunc func(rows, cols int) *mat.Dense

type MetricsPipeline struct {
	Epsilon  float64
	Baseline BaselineFunc

	baselines map[[2]int]*mat.Dense
}

type MetricsPipelineOption func(*MetricsPipeline)

func WithEpsilon(eps float64) MetricsPipelineOption {
	return func(p *MetricsPipeline) {
		p.Epsilon = eps
	}
}

func WithBaseline(baseline BaselineFunc) MetricsPipelineOption {
	return func(p *MetricsPipeline) {
		p.Baseline = baseline
	}
}

func SaliencyPipeline(opts ...MetricsPipelineOption) *MetricsPipeline {
	p := &MetricsPipeline{
		Epsilon:  Epsilon,
		Baseline: CenterBaseline,
	}

	for _, opt := range opts {
		opt(p)
	}

	p.baselines = make(map[[2]int]*mat.Dense)
	return p
}

// Process normalizes a raw probability map and scores it against fixations.
func (p *MetricsPipeline) Process(probabilityMap *mat.Dense, fixations []Point) (MapScores, error) {
	normalized, ok := Normalize(probabilityMap)
	if !ok {
		logger.Sugar().Debugw("Constant probability map, scores are neutral", "fixations", len(fixations))
	}

	aucs, auc, err := AUCs(normalized, fixations)
	if err != nil {
		return MapScores{}, err
	}

	nss, err := NSS(normalized, fixations)
	if err != nil {
		return MapScores{}, err
	}

	var ig float64
	if ok {
		ig, err = InfoGain(normalized, p.baseline(normalized.Dims()), fixations, p.Epsilon)
		if err != nil {
			return MapScores{}, err
		}
	}

	return MapScores{
		AUCs:       aucs,
		AUC:        auc,
		NSS:        nss,
		InfoGain:   ig,
		Degenerate: !ok,
	}, nil
}

func (p *MetricsPipeline) baseline(rows, cols int) *mat.Dense {
	key := [2]int{rows, cols}
	if b, ok := p.baselines[key]; ok {
		return b
	}
	b := p.Baseline(rows, cols)
	p.baselines[key] = b
	return b
}
