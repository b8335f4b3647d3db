package viz

import (
	"math"

	"github.com/san-kum/threebody/internal/dynamo"
)

// Viewport maps world x/y (meters) onto a display area of Width x Height
// pixels with y pointing down. One scale factor serves both axes, so
// circles stay circles; the shorter extent is centered.
type Viewport struct {
	MinX, MaxX float64
	MinY, MaxY float64
	Scale      float64
	OffsetX    float64
	OffsetY    float64
	Width      float64
	Height     float64
}

// FitViewport bounds every finite point of the given tracks and fits the
// box inside the display area less margin on each side. A degenerate box
// (a single point, or all points on one line) is centered.
func FitViewport(tracks [][]dynamo.Point2, width, height, margin float64) Viewport {
	v := Viewport{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
		Width: width, Height: height,
	}

	for _, track := range tracks {
		for _, p := range track {
			if !finite(p.X) || !finite(p.Y) {
				continue
			}
			v.MinX = math.Min(v.MinX, p.X)
			v.MaxX = math.Max(v.MaxX, p.X)
			v.MinY = math.Min(v.MinY, p.Y)
			v.MaxY = math.Max(v.MaxY, p.Y)
		}
	}
	if v.MinX > v.MaxX {
		v.MinX, v.MaxX, v.MinY, v.MaxY = 0, 0, 0, 0
	}

	usableW := math.Max(width-2*margin, 0)
	usableH := math.Max(height-2*margin, 0)
	rangeX := v.MaxX - v.MinX
	rangeY := v.MaxY - v.MinY

	v.Scale = math.Inf(1)
	if rangeX > 0 {
		v.Scale = usableW / rangeX
	}
	if rangeY > 0 {
		v.Scale = math.Min(v.Scale, usableH/rangeY)
	}
	if math.IsInf(v.Scale, 1) {
		v.Scale = 1
	}

	v.OffsetX = (width - rangeX*v.Scale) / 2
	v.OffsetY = (height - rangeY*v.Scale) / 2
	return v
}

// Project returns display coordinates for a world point.
func (v Viewport) Project(p dynamo.Point2) (x, y float64) {
	x = v.OffsetX + (p.X-v.MinX)*v.Scale
	y = v.Height - v.OffsetY - (p.Y-v.MinY)*v.Scale
	return x, y
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
