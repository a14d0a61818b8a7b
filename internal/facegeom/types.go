package facegeom

import (
	"errors"
	"image"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/geometry"
)

// ErrNoFace is returned when no usable face survives detection and
// filtering. Callers must treat this as a hard failure for the attempt;
// faces are never averaged or blended.
var ErrNoFace = errors.New("no usable face detected")

// DetectedFace is one face found in an image.
type DetectedFace struct {
	Box        geometry.Box
	Confidence float64
	Yaw        float64 // degrees; 0 when the provider cannot estimate
	Roll       float64 // degrees; 0 when the provider cannot estimate
	Score      float64 // selection score, filled by SelectPrimaryFace
}

// Provider supplies face geometry for an image. Implementations:
// a real detector (pigo) and an aspect-ratio heuristic fallback. The
// rest of the pipeline must not care which one produced the region.
type Provider interface {
	Name() string
	Detect(img image.Image) ([]DetectedFace, error)
}
