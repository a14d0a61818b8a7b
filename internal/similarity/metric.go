package similarity

import (
	"fmt"
	"image"
	"math"

	"github.com/corona10/goimagehash"
	"github.com/disintegration/imaging"
)

// Metric scores the visual similarity of two face-region images in
// [0,1]. The channel-statistics metric is the default; the
// perceptual-hash metric is an alternative behind the same interface.
// Gate thresholds are tuned per metric.
type Metric interface {
	Name() string
	Score(a, b image.Image) (float64, error)
}

const statsSampleSize = 64

// StatsMetric compares per-channel mean and standard deviation of the
// two regions. A weak proxy for identity, but cheap and deterministic.
type StatsMetric struct{}

// Name implements Metric.
func (StatsMetric) Name() string { return "channel-stats" }

// Score implements Metric.
func (StatsMetric) Score(a, b image.Image) (float64, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("channel-stats: nil image")
	}

	ma, sa := channelStats(imaging.Resize(a, statsSampleSize, statsSampleSize, imaging.Lanczos))
	mb, sb := channelStats(imaging.Resize(b, statsSampleSize, statsSampleSize, imaging.Lanczos))

	var meanDiff, stdDiff float64
	for ch := 0; ch < 3; ch++ {
		meanDiff += math.Abs(ma[ch]-mb[ch]) / 255
		stdDiff += math.Abs(sa[ch]-sb[ch]) / 255
	}
	meanDiff /= 3
	stdDiff /= 3

	sim := 1 - (0.6*meanDiff + 0.4*stdDiff)
	if sim < 0 {
		sim = 0
	}
	return sim, nil
}

func channelStats(img *image.NRGBA) (mean [3]float64, std [3]float64) {
	bounds := img.Bounds()
	n := float64(bounds.Dx() * bounds.Dy())
	if n == 0 {
		return
	}

	var sum, sumSq [3]float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := img.NRGBAAt(x, y)
			for ch, v := range [3]uint8{px.R, px.G, px.B} {
				f := float64(v)
				sum[ch] += f
				sumSq[ch] += f * f
			}
		}
	}
	for ch := 0; ch < 3; ch++ {
		mean[ch] = sum[ch] / n
		variance := sumSq[ch]/n - mean[ch]*mean[ch]
		if variance < 0 {
			variance = 0
		}
		std[ch] = math.Sqrt(variance)
	}
	return
}

// HashMetric scores similarity from the Hamming distance of 64-bit
// perceptual hashes.
type HashMetric struct{}

// Name implements Metric.
func (HashMetric) Name() string { return "perceptual-hash" }

// Score implements Metric.
func (HashMetric) Score(a, b image.Image) (float64, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("perceptual-hash: nil image")
	}

	ha, err := goimagehash.PerceptionHash(a)
	if err != nil {
		return 0, fmt.Errorf("perceptual-hash: %w", err)
	}
	hb, err := goimagehash.PerceptionHash(b)
	if err != nil {
		return 0, fmt.Errorf("perceptual-hash: %w", err)
	}
	dist, err := ha.Distance(hb)
	if err != nil {
		return 0, fmt.Errorf("perceptual-hash distance: %w", err)
	}
	return 1 - float64(dist)/64, nil
}
