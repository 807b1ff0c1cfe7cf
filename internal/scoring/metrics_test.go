package scoring

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func grid() *mat.Dense {
	return mat.NewDense(3, 4, []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
	})
}

func TestNormalize(t *testing.T) {
	normalized, ok := Normalize(grid())

	require.True(t, ok)
	assert.Equal(t, 0.0, normalized.At(0, 0))
	assert.Equal(t, 1.0, normalized.At(2, 3))
	assert.InDelta(t, 6.0/11.0, normalized.At(1, 2), 1e-12)
}

func TestNormalize_ConstantMap(t *testing.T) {
	normalized, ok := Normalize(mat.NewDense(2, 2, []float64{0.7, 0.7, 0.7, 0.7}))

	assert.False(t, ok)
	for _, v := range cells(normalized) {
		assert.False(t, math.IsNaN(v))
		assert.Equal(t, 0.0, v)
	}
}

func TestMassNormalize(t *testing.T) {
	assert.InDelta(t, 1.0, floats.Sum(cells(MassNormalize(grid()))), 1e-12)

	zeros := mat.NewDense(2, 2, nil)
	assert.Equal(t, cells(zeros), cells(MassNormalize(zeros)))
}

func TestAUCs_Extremes(t *testing.T) {
	m := grid()
	n := 12.0

	aucs, mean, err := AUCs(m, []Point{{X: 3, Y: 2}, {X: 0, Y: 0}})
	require.NoError(t, err)

	// the positive's own cell is part of the negatives and counts half
	assert.InDelta(t, (n-1+0.5)/n, aucs[0], 1e-12)
	assert.InDelta(t, 0.5/n, aucs[1], 1e-12)
	assert.InDelta(t, 0.5, mean, 1e-12)
}

func TestAUCs_Ties(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{0, 1, 1, 1})

	aucs, _, err := AUCs(m, []Point{{X: 1, Y: 0}})
	require.NoError(t, err)
	assert.InDelta(t, (1+0.5*3)/4.0, aucs[0], 1e-12)

	aucs, _, err = AUCs(mat.NewDense(2, 2, nil), []Point{{X: 1, Y: 1}})
	require.NoError(t, err)
	assert.Equal(t, 0.5, aucs[0])
}

func TestAUCs_Bounds(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	data := make([]float64, 20*30)
	for i := range data {
		data[i] = math.Floor(r.Float64() * 10)
	}
	m := mat.NewDense(20, 30, data)

	var fixations []Point
	for y := 0; y < 20; y += 3 {
		for x := 0; x < 30; x += 7 {
			fixations = append(fixations, Point{X: x, Y: y})
		}
	}

	aucs, mean, err := AUCs(m, fixations)
	require.NoError(t, err)
	for _, v := range aucs {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	assert.GreaterOrEqual(t, mean, 0.0)
	assert.LessOrEqual(t, mean, 1.0)
}

func TestAUCs_OutOfBounds(t *testing.T) {
	_, _, err := AUCs(grid(), []Point{{X: 4, Y: 0}})
	assert.ErrorIs(t, err, ErrFixationOutOfBounds)

	_, _, err = AUCs(grid(), []Point{{X: 0, Y: -1}})
	assert.ErrorIs(t, err, ErrFixationOutOfBounds)
}

func TestNSS(t *testing.T) {
	m := mat.NewDense(1, 4, []float64{0, 0, 0, 4})
	// mean 1, population std sqrt(3)

	values, err := NSS(m, []Point{{X: 3, Y: 0}, {X: 0, Y: 0}})
	require.NoError(t, err)

	assert.InDelta(t, 3/math.Sqrt(3), values[0], 1e-12)
	assert.InDelta(t, -1/math.Sqrt(3), values[1], 1e-12)
}

func TestNSS_ZeroStd(t *testing.T) {
	values, err := NSS(mat.NewDense(2, 2, []float64{2, 2, 2, 2}), []Point{{X: 1, Y: 1}})

	require.NoError(t, err)
	assert.Equal(t, []float64{0}, values)
}

func TestInfoGain_IdenticalMaps(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{
		0, 0.1, 0.2,
		0.3, 1, 0.3,
		0.2, 0.1, 0,
	})

	var fixations []Point
	for y := range 3 {
		for x := range 3 {
			fixations = append(fixations, Point{X: x, Y: y})
		}
	}

	for _, f := range fixations {
		ig, err := InfoGain(m, m, []Point{f}, Epsilon)
		require.NoError(t, err)
		assert.Equal(t, 0.0, ig, "fixation %+v", f)
	}
}

func TestInfoGain(t *testing.T) {
	m := mat.NewDense(1, 2, []float64{3, 1})
	baseline := mat.NewDense(1, 2, []float64{1, 1})

	ig, err := InfoGain(m, baseline, []Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, 0)
	require.NoError(t, err)
	assert.InDelta(t, (math.Log2(0.75/0.5)+math.Log2(0.25/0.5))/2, ig, 1e-12)

	zero := mat.NewDense(1, 2, []float64{0, 1})
	ig, err = InfoGain(zero, baseline, []Point{{X: 0, Y: 0}}, Epsilon)
	require.NoError(t, err)
	assert.False(t, math.IsInf(ig, 0))
	assert.InDelta(t, math.Log2(Epsilon)-math.Log2(Epsilon+0.5), ig, 1e-9)
}

func TestInfoGain_ShapeMismatch(t *testing.T) {
	_, err := InfoGain(grid(), CenterBaseline(4, 3), []Point{{}}, Epsilon)
	assert.Error(t, err)
}

func TestCenterBaseline(t *testing.T) {
	b := CenterBaseline(5, 7)

	rows, cols := b.Dims()
	require.Equal(t, 5, rows)
	require.Equal(t, 7, cols)

	assert.InDelta(t, 1/(2*math.Pi), b.At(2, 3), 1e-12)
	assert.Equal(t, floats.Max(cells(b)), b.At(2, 3))
	assert.InDelta(t, b.At(1, 3), b.At(3, 3), 1e-15)
	assert.InDelta(t, b.At(2, 1), b.At(2, 5), 1e-15)
	assert.InDelta(t, math.Exp(-0.5)/(2*math.Pi), b.At(2, 4), 1e-12)
}

func TestCenterBaseline_NarrowOnLargeGrids(t *testing.T) {
	b := CenterBaseline(120, 160)

	mass := MassNormalize(b)
	assert.Greater(t, mass.At(60, 80), 0.15)
	assert.Less(t, mass.At(0, 0), 1e-300)
}

func BenchmarkAUCs(b *testing.B) {
	data := make([]float64, 768*1024)
	for i := range data {
		data[i] = rand.Float64()
	}
	m := mat.NewDense(768, 1024, data)
	fixations := []Point{{X: 512, Y: 384}, {X: 10, Y: 700}}

	b.ResetTimer()
	for b.Loop() {
		_, _, _ = AUCs(m, fixations)
	}
}
