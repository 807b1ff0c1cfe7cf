package scanpath

func RescaleCoordinate(value, oldSize, newSize float64) float64 {
	return (value / oldSize) * newSize
}

// RescaleTo returns a copy of t with coordinates mapped onto a width x height
// frame. Each axis is scaled independently.
func (t Trial) RescaleTo(width, height float64) Trial {
	rescaled := t
	rescaled.X = make([]float64, len(t.X))
	rescaled.Y = make([]float64, len(t.Y))

	for i, x := range t.X {
		rescaled.X[i] = RescaleCoordinate(x, t.ImageWidth, width)
	}
	for i, y := range t.Y {
		rescaled.Y[i] = RescaleCoordinate(y, t.ImageHeight, height)
	}

	rescaled.ImageWidth = width
	rescaled.ImageHeight = height
	return rescaled
}
