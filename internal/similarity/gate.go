package similarity

import (
	"errors"
	"fmt"
	"image"

	"github.com/sirupsen/logrus"
)

// ErrRejected marks a generation that failed the identity check. The
// pre-composite image must be discarded when this is returned.
var ErrRejected = errors.New("similarity gate rejected generation")

// Result holds the gate verdict and both scores.
type Result struct {
	Passed    bool
	SimBefore float64
	SimAfter  float64
}

// Gate hard-rejects generations whose composited face is not measurably
// closer to the original than the raw model output, or not similar
// enough in absolute terms.
type Gate struct {
	metric         Metric
	minImprovement float64
	absoluteFloor  float64
	log            logrus.FieldLogger
}

// NewGate creates a Gate. Both thresholds are mandatory checks.
func NewGate(metric Metric, minImprovement, absoluteFloor float64, log logrus.FieldLogger) *Gate {
	return &Gate{
		metric:         metric,
		minImprovement: minImprovement,
		absoluteFloor:  absoluteFloor,
		log:            log,
	}
}

// Judge applies the gate logic to already-computed scores: compositing
// must improve similarity by at least the configured margin AND the
// post-composite similarity must clear the absolute floor.
func (g *Gate) Judge(simBefore, simAfter float64) Result {
	passed := simAfter >= simBefore+g.minImprovement && simAfter >= g.absoluteFloor
	return Result{Passed: passed, SimBefore: simBefore, SimAfter: simAfter}
}

// AssertImproved scores the original face against the pre- and
// post-composite face regions and applies both gates. On failure it
// returns ErrRejected alongside the scores.
func (g *Gate) AssertImproved(originalFace, beforeComposite, afterComposite image.Image) (Result, error) {
	simBefore, err := g.metric.Score(originalFace, beforeComposite)
	if err != nil {
		return Result{}, fmt.Errorf("score pre-composite: %w", err)
	}
	simAfter, err := g.metric.Score(originalFace, afterComposite)
	if err != nil {
		return Result{}, fmt.Errorf("score post-composite: %w", err)
	}

	res := g.Judge(simBefore, simAfter)
	g.log.WithFields(logrus.Fields{
		"metric":     g.metric.Name(),
		"sim_before": simBefore,
		"sim_after":  simAfter,
		"passed":     res.Passed,
	}).Info("similarity gate verdict")

	if !res.Passed {
		return res, fmt.Errorf("sim_before=%.3f sim_after=%.3f: %w", simBefore, simAfter, ErrRejected)
	}
	return res, nil
}
