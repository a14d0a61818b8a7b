package facegeom

import (
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"
	"github.com/sirupsen/logrus"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/geometry"
)

// Pigo detection parameters
const (
	pigoMinSize      = 20   // minimum face size (pixels)
	pigoMaxSize      = 1200 // maximum face size (pixels)
	pigoShiftFactor  = 0.1  // shift factor for detection window
	pigoScaleFactor  = 1.1  // scale factor for image pyramid
	pigoIoUThreshold = 0.2  // IoU threshold for NMS clustering
	pigoMinQuality   = 5.0  // minimum cascade quality score
)

// PigoProvider is the real-detector Provider backed by the pigo
// pure-Go cascade classifier.
type PigoProvider struct {
	classifier *pigo.Pigo
	log        logrus.FieldLogger
}

// NewPigoProvider loads the cascade file and initializes the detector.
func NewPigoProvider(cascadePath string, log logrus.FieldLogger) (*PigoProvider, error) {
	cascade, err := os.ReadFile(cascadePath)
	if err != nil {
		return nil, fmt.Errorf("read cascade file: %w", err)
	}

	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("unpack cascade: %w", err)
	}

	log.WithField("cascade", cascadePath).Debug("pigo face detector initialized")
	return &PigoProvider{classifier: classifier, log: log}, nil
}

// Name implements Provider.
func (p *PigoProvider) Name() string { return "pigo" }

// Detect implements Provider. The frontal cascade cannot estimate
// yaw/roll, so detections report zero pose; oblique faces mostly fail
// the cascade quality threshold instead.
func (p *PigoProvider) Detect(img image.Image) ([]DetectedFace, error) {
	bounds := img.Bounds()
	gray := toGrayscale(img)

	params := pigo.CascadeParams{
		MinSize:     pigoMinSize,
		MaxSize:     pigoMaxSize,
		ShiftFactor: pigoShiftFactor,
		ScaleFactor: pigoScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: gray,
			Rows:   bounds.Dy(),
			Cols:   bounds.Dx(),
			Dim:    bounds.Dx(),
		},
	}

	dets := p.classifier.RunCascade(params, 0.0)
	dets = p.classifier.ClusterDetections(dets, pigoIoUThreshold)

	var faces []DetectedFace
	for _, det := range dets {
		if det.Q < pigoMinQuality {
			continue
		}
		half := det.Scale / 2
		faces = append(faces, DetectedFace{
			Box: geometry.Box{
				XMin: det.Col - half,
				YMin: det.Row - half,
				XMax: det.Col + half,
				YMax: det.Row + half,
			},
			Confidence: float64(det.Q),
		})
	}

	p.log.WithField("faces", len(faces)).Debug("pigo detection complete")
	return faces, nil
}

// toGrayscale converts an image to the flat grayscale pixel array pigo
// expects.
func toGrayscale(img image.Image) []uint8 {
	bounds := img.Bounds()
	gray := make([]uint8, bounds.Dx()*bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			gray[(y-bounds.Min.Y)*bounds.Dx()+(x-bounds.Min.X)] = uint8((r*299 + g*587 + b*114) / 1000 >> 8)
		}
	}

	return gray
}
