package scanpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRescaleTo_SameSizeIsIdentity(t *testing.T) {
	trial := Trial{X: []float64{0, 13.5, 99}, Y: []float64{1, 42, 77.25}, ImageWidth: 100, ImageHeight: 80}

	rescaled := trial.RescaleTo(100, 80)

	assert.Equal(t, trial.X, rescaled.X)
	assert.Equal(t, trial.Y, rescaled.Y)
}

func TestRescaleTo_RoundTrip(t *testing.T) {
	trial := Trial{X: []float64{0, 13.5, 99, 511}, Y: []float64{1, 42, 77.25, 300}, ImageWidth: 512, ImageHeight: 320}

	back := trial.RescaleTo(1024, 768).RescaleTo(512, 320)

	assert.InDeltaSlice(t, trial.X, back.X, 1e-9)
	assert.InDeltaSlice(t, trial.Y, back.Y, 1e-9)
}

func TestRescaleTo_AxesIndependent(t *testing.T) {
	trial := Trial{X: []float64{50}, Y: []float64{50}, ImageWidth: 100, ImageHeight: 100}

	rescaled := trial.RescaleTo(200, 50)

	assert.Equal(t, []float64{100}, rescaled.X)
	assert.Equal(t, []float64{25}, rescaled.Y)
	assert.Equal(t, 200.0, rescaled.ImageWidth)
	assert.Equal(t, []float64{50}, trial.X, "original must not change")
}
