package similarity_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/config"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/similarity"
)

// scriptedMetric returns queued scores in call order.
type scriptedMetric struct {
	scores []float64
	calls  int
}

func (m *scriptedMetric) Name() string { return "scripted" }

func (m *scriptedMetric) Score(a, b image.Image) (float64, error) {
	score := m.scores[m.calls]
	m.calls++
	return score, nil
}

func newTestGate(metric similarity.Metric) *similarity.Gate {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return similarity.NewGate(metric, config.MinSimilarityImprovement, config.MinSimilarityFloor, log)
}

func TestGate_Judge(t *testing.T) {
	gate := newTestGate(similarity.StatsMetric{})

	tests := []struct {
		name       string
		simBefore  float64
		simAfter   float64
		wantPassed bool
	}{
		{"improvement below margin", 0.70, 0.74, false},
		{"improved but under absolute floor", 0.70, 0.78, false},
		{"improved and above floor", 0.70, 0.86, true},
		{"exactly at both thresholds", 0.75, 0.80, true},
		{"regression", 0.85, 0.82, false},
		{"high absolute but no improvement", 0.90, 0.91, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := gate.Judge(tt.simBefore, tt.simAfter)
			assert.Equal(t, tt.wantPassed, res.Passed)
			assert.Equal(t, tt.simBefore, res.SimBefore)
			assert.Equal(t, tt.simAfter, res.SimAfter)
		})
	}
}

func TestGate_AssertImprovedPass(t *testing.T) {
	metric := &scriptedMetric{scores: []float64{0.70, 0.90}}
	gate := newTestGate(metric)

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	res, err := gate.AssertImproved(img, img, img)
	require.NoError(t, err)
	assert.True(t, res.Passed)
	assert.Equal(t, 0.70, res.SimBefore)
	assert.Equal(t, 0.90, res.SimAfter)
}

func TestGate_AssertImprovedRejects(t *testing.T) {
	metric := &scriptedMetric{scores: []float64{0.70, 0.72}}
	gate := newTestGate(metric)

	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	res, err := gate.AssertImproved(img, img, img)
	assert.ErrorIs(t, err, similarity.ErrRejected)
	assert.False(t, res.Passed)
}

func TestStatsMetric_IdenticalImages(t *testing.T) {
	img := imaging.New(32, 32, color.NRGBA{R: 120, G: 90, B: 60, A: 255})

	score, err := similarity.StatsMetric{}.Score(img, img)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-6)
}

func TestStatsMetric_DifferentImagesScoreLower(t *testing.T) {
	dark := imaging.New(32, 32, color.NRGBA{R: 10, G: 10, B: 10, A: 255})
	light := imaging.New(32, 32, color.NRGBA{R: 240, G: 240, B: 240, A: 255})

	same, err := similarity.StatsMetric{}.Score(dark, dark)
	require.NoError(t, err)
	different, err := similarity.StatsMetric{}.Score(dark, light)
	require.NoError(t, err)

	assert.Less(t, different, same)
	assert.GreaterOrEqual(t, different, 0.0)
}

func TestStatsMetric_NilImage(t *testing.T) {
	_, err := similarity.StatsMetric{}.Score(nil, image.NewNRGBA(image.Rect(0, 0, 4, 4)))
	assert.Error(t, err)
}

func TestHashMetric_IdenticalImages(t *testing.T) {
	img := imaging.New(64, 64, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	score, err := similarity.HashMetric{}.Score(img, img)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-6)
}
