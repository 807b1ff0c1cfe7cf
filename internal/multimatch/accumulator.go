package multimatch

import (
	"sort"

	"github.com/vsbench/scanpath-eval/internal/alignment"
)

// RunningMean sums similarity vectors for one image.
type RunningMean struct {
	Sum   alignment.Vector
	Count int
}

func (r *RunningMean) Add(v alignment.Vector) {
	r.Sum = r.Sum.Add(v)
	r.Count++
}

func (r RunningMean) Mean() alignment.Vector {
	return r.Sum.Scale(1 / float64(r.Count))
}

// Accumulator keeps one RunningMean per image. An image only gets an entry
// once a valid comparison has been added for it.
type Accumulator struct {
	means map[string]*RunningMean
}

func NewAccumulator() *Accumulator {
	return &Accumulator{means: make(map[string]*RunningMean)}
}

func (a *Accumulator) Add(image string, v alignment.Vector) {
	m, ok := a.means[image]
	if !ok {
		m = &RunningMean{}
		a.means[image] = m
	}
	m.Add(v)
}

func (a *Accumulator) Count(image string) int {
	if m, ok := a.means[image]; ok {
		return m.Count
	}
	return 0
}

func (a *Accumulator) Images() []string {
	images := make([]string, 0, len(a.means))
	for image := range a.means {
		images = append(images, image)
	}
	sort.Strings(images)
	return images
}

// Finalize divides every sum by its count.
func (a *Accumulator) Finalize() map[string]alignment.Vector {
	out := make(map[string]alignment.Vector, len(a.means))
	for image, m := range a.means {
		out[image] = m.Mean()
	}
	return out
}
