package multimatch

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/vsbench/scanpath-eval/internal/alignment"
	"github.com/vsbench/scanpath-eval/internal/utils/logger"
)

// ImagePoint pairs a model's and the humans' spatial similarity on one image.
type ImagePoint struct {
	Image string
	Model float64
	Human float64
}

// ModelSummary relates a model's per-image similarity to the human baseline.
// Human ≈ Intercept + Slope*Model over Points.
type ModelSummary struct {
	ModelName string
	Points    []ImagePoint
	Slope     float64
	Intercept float64
	ModelMean float64
	HumanMean float64
}

// Summary builds one ModelSummary per added model. Only images present in
// both the model results and humanMeans are used, and the duration dimension
// is left out.
func (e *Evaluator) Summary(humanMeans map[string]alignment.Vector) []ModelSummary {
	summaries := make([]ModelSummary, 0, len(e.models))
	for _, model := range e.models {
		summaries = append(summaries, Summarize(model, humanMeans))
	}
	return summaries
}

func Summarize(model ModelResult, humanMeans map[string]alignment.Vector) ModelSummary {
	summary := ModelSummary{ModelName: model.ModelName}

	for image, v := range model.Results {
		human, ok := humanMeans[image]
		if !ok {
			continue
		}
		summary.Points = append(summary.Points, ImagePoint{
			Image: image,
			Model: v.SpatialMean(),
			Human: human.SpatialMean(),
		})
	}
	sort.Slice(summary.Points, func(i, j int) bool {
		return summary.Points[i].Image < summary.Points[j].Image
	})

	if len(summary.Points) == 0 {
		return summary
	}

	xs := make([]float64, len(summary.Points))
	ys := make([]float64, len(summary.Points))
	for i, p := range summary.Points {
		xs[i], ys[i] = p.Model, p.Human
	}

	summary.ModelMean = stat.Mean(xs, nil)
	summary.HumanMean = stat.Mean(ys, nil)
	if len(xs) > 1 {
		summary.Intercept, summary.Slope = stat.LinearRegression(xs, ys, nil, false)
	}

	logger.Sugar().Infow("Summarized model against human baseline",
		"model", summary.ModelName, "images", len(summary.Points),
		"slope", summary.Slope, "intercept", summary.Intercept)
	return summary
}

// PlotTerminal writes one bar per image, scaled between the smallest and
// largest model similarity, next to the human value.
func (s ModelSummary) PlotTerminal(w io.Writer, datasetName string) {
	fmt.Fprintf(w, "\n%s dataset - %s (model vs human multimatch mean):\n", datasetName, s.ModelName)
	if len(s.Points) == 0 {
		fmt.Fprintln(w, "no images shared with the human baseline")
		return
	}

	points := make([]ImagePoint, len(s.Points))
	copy(points, s.Points)
	sort.Slice(points, func(i, j int) bool {
		return points[i].Model < points[j].Model
	})

	minScore := points[0].Model
	maxScore := points[len(points)-1].Model

	fmt.Fprintln(w, "Image                    | Model    | Human    | Bar Chart")
	fmt.Fprintln(w, "-------------------------|----------|----------|"+strings.Repeat("-", 50))

	maxBarWidth := 50
	for _, p := range points {
		var barWidth int
		if maxScore != minScore {
			barWidth = int((p.Model - minScore) / (maxScore - minScore) * float64(maxBarWidth))
		} else {
			barWidth = maxBarWidth / 2
		}

		bar := strings.Repeat("█", barWidth)
		if barWidth == 0 {
			bar = "▏"
		}

		fmt.Fprintf(w, "%-24.24s | %.6f | %.6f | %s\n", p.Image, p.Model, p.Human, bar)
	}

	fmt.Fprintf(w, "\nFit: human = %.4f * model + %.4f (means: model %.4f, human %.4f)\n",
		s.Slope, s.Intercept, s.ModelMean, s.HumanMean)
}
