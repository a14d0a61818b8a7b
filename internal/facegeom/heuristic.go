package facegeom

import (
	"image"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/geometry"
)

// Aspect-ratio branches for the heuristic estimator. These are
// intentionally approximate: they exist to give a workable face region
// when no detector is available, not to compete with one.
const (
	portraitMaxRatio  = 0.85 // width/height below this is treated as portrait
	landscapeMinRatio = 1.25 // width/height above this is treated as landscape

	// Portrait: the face sits in the upper ~45% of the frame.
	portraitLeft, portraitRight = 0.28, 0.72
	portraitTop, portraitBottom = 0.08, 0.45

	// Landscape: a wide horizontal band, face in the upper half.
	landscapeLeft, landscapeRight = 0.30, 0.85
	landscapeTop, landscapeBottom = 0.12, 0.62

	// Square-ish: default centered band.
	squareLeft, squareRight = 0.25, 0.75
	squareTop, squareBottom = 0.15, 0.60
)

// EstimateBounds derives a face bounding box from image dimensions
// alone, by aspect ratio.
func EstimateBounds(width, height int) geometry.Box {
	if width <= 0 || height <= 0 {
		return geometry.Box{}
	}

	ratio := float64(width) / float64(height)
	var n geometry.NormalizedBox
	switch {
	case ratio < portraitMaxRatio:
		n = geometry.NormalizedBox{Left: portraitLeft, Top: portraitTop, Right: portraitRight, Bottom: portraitBottom}
	case ratio > landscapeMinRatio:
		n = geometry.NormalizedBox{Left: landscapeLeft, Top: landscapeTop, Right: landscapeRight, Bottom: landscapeBottom}
	default:
		n = geometry.NormalizedBox{Left: squareLeft, Top: squareTop, Right: squareRight, Bottom: squareBottom}
	}
	return n.ToPixels(width, height)
}

// HeuristicProvider is the detector-free fallback Provider. It always
// reports exactly one face at the estimated bounds.
type HeuristicProvider struct{}

// NewHeuristicProvider returns the heuristic fallback provider.
func NewHeuristicProvider() *HeuristicProvider {
	return &HeuristicProvider{}
}

// Name implements Provider.
func (p *HeuristicProvider) Name() string { return "heuristic" }

// Detect implements Provider.
func (p *HeuristicProvider) Detect(img image.Image) ([]DetectedFace, error) {
	b := img.Bounds()
	box := EstimateBounds(b.Dx(), b.Dy())
	if box.Empty() {
		return nil, ErrNoFace
	}
	return []DetectedFace{{Box: box, Confidence: 0.5}}, nil
}
