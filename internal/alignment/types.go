// Package alignment compares two fixation sequences and returns a five
// dimensional similarity vector.
package alignment

import (
	"math"

	"github.com/vsbench/scanpath-eval/internal/scanpath"
)

const (
	Shape = iota
	Direction
	Length
	Position
	Duration

	Dimensions
)

var DimensionNames = [Dimensions]string{"shape", "direction", "length", "position", "duration"}

// Vector holds one similarity score per dimension, in the order of the
// Shape..Duration constants.
type Vector [Dimensions]float64

func (v Vector) Add(o Vector) Vector {
	for i := range v {
		v[i] += o[i]
	}
	return v
}

func (v Vector) Scale(f float64) Vector {
	for i := range v {
		v[i] *= f
	}
	return v
}

// SpatialMean averages every dimension except Duration.
func (v Vector) SpatialMean() float64 {
	var sum float64
	for _, x := range v[:Duration] {
		sum += x
	}
	return sum / float64(Duration)
}

type ScreenSize struct {
	Width  float64
	Height float64
}

func (s ScreenSize) Diagonal() float64 {
	return math.Hypot(s.Width, s.Height)
}

// Aligner compares two scanpaths expressed on the same screen. ok is false
// when the pair cannot be compared.
type Aligner interface {
	Align(a, b []scanpath.Fixation, screen ScreenSize) (v Vector, ok bool)
}

type AlignerFunc func(a, b []scanpath.Fixation, screen ScreenSize) (Vector, bool)

func (f AlignerFunc) Align(a, b []scanpath.Fixation, screen ScreenSize) (Vector, bool) {
	return f(a, b, screen)
}
