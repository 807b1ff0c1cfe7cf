// Package scanpath loads human and model scanpath collections from disk.
package scanpath

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrInvalidTrial = errors.New("invalid trial")

type Fixation struct {
	X        float64
	Y        float64
	Duration float64
}

// Trial is one subject's (or model's) scanpath on one image. X and Y are
// expressed in an ImageWidth x ImageHeight frame.
type Trial struct {
	X           []float64 `json:"X"`
	Y           []float64 `json:"Y"`
	T           []float64 `json:"T,omitempty"`
	TargetFound bool      `json:"target_found"`
	ImageWidth  float64   `json:"image_width"`
	ImageHeight float64   `json:"image_height"`

	Dataset      string    `json:"dataset,omitempty"`
	TargetObject string    `json:"target_object,omitempty"`
	MaxFixations int       `json:"max_fixations,omitempty"`
	TargetBBox   []float64 `json:"target_bbox,omitempty"`
	Split        string    `json:"split,omitempty"`
}

// Collection maps an image name to its trial.
type Collection map[string]Trial

func (t Trial) Len() int { return len(t.X) }

func (t Trial) HasDurations() bool { return len(t.T) > 0 }

// HasImageSize reports whether the trial records a usable screen size.
// Missing fields decode to zero.
func (t Trial) HasImageSize() bool {
	return t.ImageWidth > 0 && t.ImageHeight > 0 &&
		!math.IsInf(t.ImageWidth, 0) && !math.IsInf(t.ImageHeight, 0)
}

func (t Trial) Validate() error {
	if len(t.X) != len(t.Y) {
		return fmt.Errorf("%w: %d x coordinates but %d y coordinates", ErrInvalidTrial, len(t.X), len(t.Y))
	}
	if t.HasDurations() && len(t.T) != len(t.X) {
		return fmt.Errorf("%w: %d durations for %d fixations", ErrInvalidTrial, len(t.T), len(t.X))
	}
	return nil
}

// Fixations zips the coordinate lists with the given durations. durations
// must have the same length as the trial.
func (t Trial) Fixations(durations []float64) []Fixation {
	fixations := make([]Fixation, t.Len())
	for i := range fixations {
		fixations[i] = Fixation{X: t.X[i], Y: t.Y[i], Duration: durations[i]}
	}
	return fixations
}

// SharedImages returns the sorted image names present in both collections.
func SharedImages(a, b Collection) []string {
	var images []string
	for image := range a {
		if _, ok := b[image]; ok {
			images = append(images, image)
		}
	}
	sort.Strings(images)
	return images
}
