package alignment

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/vsbench/scanpath-eval/internal/scanpath"
)

const MinFixations = 3

// MultiMatch aligns the saccade vectors of two scanpaths along the cheapest
// path through their pairwise difference matrix and scores the aligned pairs
// on shape, direction, length, position and duration.
type MultiMatch struct {
	minFixations int
}

type MultiMatchOption func(*MultiMatch)

// WithMinFixations sets the shortest scanpath Align accepts. Two fixations
// (one saccade) is the floor.
func WithMinFixations(n int) MultiMatchOption {
	return func(m *MultiMatch) {
		m.minFixations = max(n, 2)
	}
}

func NewMultiMatch(opts ...MultiMatchOption) *MultiMatch {
	m := &MultiMatch{minFixations: MinFixations}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type saccade struct {
	x, y       float64 // start fixation
	lenX, lenY float64
	rho, theta float64
	duration   float64 // duration of the start fixation
}

func (m *MultiMatch) Align(a, b []scanpath.Fixation, screen ScreenSize) (Vector, bool) {
	least := max(m.minFixations, 2)
	if len(a) < least || len(b) < least {
		return Vector{}, false
	}
	diagonal := screen.Diagonal()
	if diagonal == 0 || math.IsNaN(diagonal) || math.IsInf(diagonal, 0) {
		return Vector{}, false
	}
	if !finite(a) || !finite(b) {
		return Vector{}, false
	}

	sa, sb := saccades(a), saccades(b)
	cost := vectorDifferences(sa, sb)
	pairs := alignSaccades(cost)
	if len(pairs) == 0 {
		return Vector{}, false
	}

	raw := unnormalised(sa, sb, pairs)

	return Vector{
		Shape:     similarity(raw[Shape], 2*diagonal),
		Direction: similarity(raw[Direction], math.Pi),
		Length:    similarity(raw[Length], diagonal),
		Position:  similarity(raw[Position], diagonal),
		Duration:  similarity(raw[Duration], 1),
	}, true
}

// similarity maps a difference onto [0, 1]. Fixations off screen can push
// a difference past scale.
func similarity(diff, scale float64) float64 {
	return max(0, 1-diff/scale)
}

func finite(fixations []scanpath.Fixation) bool {
	for _, f := range fixations {
		for _, v := range [...]float64{f.X, f.Y, f.Duration} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

func saccades(fixations []scanpath.Fixation) []saccade {
	out := make([]saccade, len(fixations)-1)
	for i := range out {
		from, to := fixations[i], fixations[i+1]
		dx, dy := to.X-from.X, to.Y-from.Y
		out[i] = saccade{
			x:        from.X,
			y:        from.Y,
			lenX:     dx,
			lenY:     dy,
			rho:      math.Hypot(dx, dy),
			theta:    math.Atan2(dy, dx),
			duration: from.Duration,
		}
	}
	return out
}

func vectorDifferences(a, b []saccade) *mat.Dense {
	cost := mat.NewDense(len(a), len(b), nil)
	for i := range a {
		for j := range b {
			cost.Set(i, j, math.Hypot(a[i].lenX-b[j].lenX, a[i].lenY-b[j].lenY))
		}
	}
	return cost
}

// alignSaccades finds the cheapest monotone path from the top-left to the
// bottom-right cell of cost, moving right, down or diagonally. Each step
// pays the cost of the cell it enters. Ties prefer the diagonal, then the
// cell above, then the cell to the left.
func alignSaccades(cost *mat.Dense) [][2]int {
	rows, cols := cost.Dims()
	if rows == 0 || cols == 0 {
		return nil
	}

	total := mat.NewDense(rows, cols, nil)
	for i := range rows {
		for j := range cols {
			if i == 0 && j == 0 {
				continue
			}
			best := math.Inf(1)
			for _, p := range predecessors(i, j) {
				if c := total.At(p[0], p[1]); c < best {
					best = c
				}
			}
			total.Set(i, j, best+cost.At(i, j))
		}
	}
	if c := total.At(rows-1, cols-1); math.IsNaN(c) || math.IsInf(c, 0) {
		return nil
	}

	pairs := [][2]int{{rows - 1, cols - 1}}
	for i, j := rows-1, cols-1; i > 0 || j > 0; {
		next := [2]int{-1, -1}
		best := math.Inf(1)
		for _, p := range predecessors(i, j) {
			if c := total.At(p[0], p[1]); c < best {
				best, next = c, p
			}
		}
		i, j = next[0], next[1]
		pairs = append(pairs, next)
	}

	for l, r := 0, len(pairs)-1; l < r; l, r = l+1, r-1 {
		pairs[l], pairs[r] = pairs[r], pairs[l]
	}
	return pairs
}

// predecessors lists the cells a step into (i, j) can come from, in tie
// breaking order.
func predecessors(i, j int) [][2]int {
	var out [][2]int
	if i > 0 && j > 0 {
		out = append(out, [2]int{i - 1, j - 1})
	}
	if i > 0 {
		out = append(out, [2]int{i - 1, j})
	}
	if j > 0 {
		out = append(out, [2]int{i, j - 1})
	}
	return out
}

func unnormalised(a, b []saccade, pairs [][2]int) Vector {
	var diffs [Dimensions][]float64
	for d := range diffs {
		diffs[d] = make([]float64, len(pairs))
	}

	for k, p := range pairs {
		sa, sb := a[p[0]], b[p[1]]

		diffs[Shape][k] = math.Hypot(sa.lenX-sb.lenX, sa.lenY-sb.lenY)
		diffs[Direction][k] = angleDifference(sa.theta, sb.theta)
		diffs[Length][k] = math.Abs(sa.rho - sb.rho)
		diffs[Position][k] = math.Hypot(sa.x-sb.x, sa.y-sb.y)
		diffs[Duration][k] = durationDifference(sa.duration, sb.duration)
	}

	var raw Vector
	for d := range raw {
		raw[d] = median(diffs[d])
	}
	return raw
}

// angleDifference returns the absolute angle between two directions, in [0, pi].
func angleDifference(a, b float64) float64 {
	diff := math.Abs(a - b)
	if diff > math.Pi {
		diff = 2*math.Pi - diff
	}
	return diff
}

func durationDifference(a, b float64) float64 {
	longest := math.Max(a, b)
	if longest == 0 {
		return 0
	}
	return math.Abs(a-b) / longest
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
