package facegeom

import (
	"github.com/sirupsen/logrus"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/config"
)

// Selector picks the single subject face out of all faces detected in a
// generated image (mirrors, posters and background people produce
// extras). Exactly one face is ever chosen; rejected candidates are
// logged, never blended.
type Selector struct {
	minAreaRatio float64
	maxYaw       float64
	maxRoll      float64
	log          logrus.FieldLogger
}

// NewSelector creates a Selector with the configured rejection
// thresholds.
func NewSelector(log logrus.FieldLogger) *Selector {
	return &Selector{
		minAreaRatio: config.MinFaceAreaRatio,
		maxYaw:       config.MaxYawDegrees,
		maxRoll:      config.MaxRollDegrees,
		log:          log,
	}
}

// SelectPrimaryFace selects the subject face deterministically:
// a single detection is returned as-is; otherwise small faces (under
// the area-ratio floor of the largest) and oblique faces (yaw/roll over
// the limits) are dropped, and the survivor with the highest
// area/(centerDistance+1) score wins. No survivors is a hard failure.
func (s *Selector) SelectPrimaryFace(faces []DetectedFace, imageWidth, imageHeight int) (DetectedFace, error) {
	if len(faces) == 0 {
		return DetectedFace{}, ErrNoFace
	}
	if len(faces) == 1 {
		return faces[0], nil
	}

	maxArea := 0
	for _, f := range faces {
		if a := f.Box.Area(); a > maxArea {
			maxArea = a
		}
	}

	var survivors []DetectedFace
	for _, f := range faces {
		area := float64(f.Box.Area())
		if area < s.minAreaRatio*float64(maxArea) {
			s.log.WithFields(logrus.Fields{"area": area, "max_area": maxArea}).
				Debug("face rejected: below area-ratio floor")
			continue
		}
		if f.Yaw > s.maxYaw || f.Yaw < -s.maxYaw || f.Roll > s.maxRoll || f.Roll < -s.maxRoll {
			s.log.WithFields(logrus.Fields{"yaw": f.Yaw, "roll": f.Roll}).
				Debug("face rejected: oblique pose")
			continue
		}
		survivors = append(survivors, f)
	}

	if len(survivors) == 0 {
		return DetectedFace{}, ErrNoFace
	}

	best := -1
	bestScore := -1.0
	for i := range survivors {
		dist := survivors[i].Box.CenterDistance(imageWidth, imageHeight)
		survivors[i].Score = float64(survivors[i].Box.Area()) / (dist + 1)
		if survivors[i].Score > bestScore {
			bestScore = survivors[i].Score
			best = i
		}
	}

	s.log.WithFields(logrus.Fields{
		"candidates": len(faces),
		"survivors":  len(survivors),
		"score":      bestScore,
	}).Debug("primary face selected")

	return survivors[best], nil
}
