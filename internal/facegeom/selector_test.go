package facegeom_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/facegeom"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/geometry"
)

func newTestSelector() *facegeom.Selector {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return facegeom.NewSelector(log)
}

func TestSelector_NoFaces(t *testing.T) {
	_, err := newTestSelector().SelectPrimaryFace(nil, 1000, 1000)
	assert.ErrorIs(t, err, facegeom.ErrNoFace)
}

func TestSelector_SingleFaceReturnedAsIs(t *testing.T) {
	face := facegeom.DetectedFace{
		Box: geometry.Box{XMin: 10, YMin: 10, XMax: 50, YMax: 50},
		Yaw: 85, // would fail the pose check, but single detections skip it
	}

	got, err := newTestSelector().SelectPrimaryFace([]facegeom.DetectedFace{face}, 1000, 1000)
	require.NoError(t, err)
	assert.Equal(t, face.Box, got.Box)
}

func TestSelector_DropsSmallFaces(t *testing.T) {
	subject := facegeom.DetectedFace{
		Box: geometry.Box{XMin: 300, YMin: 200, XMax: 700, YMax: 700},
	}
	// A poster face at ~4% of the subject's area.
	background := facegeom.DetectedFace{
		Box: geometry.Box{XMin: 10, YMin: 10, XMax: 90, YMax: 110},
	}

	got, err := newTestSelector().SelectPrimaryFace(
		[]facegeom.DetectedFace{background, subject}, 1000, 1000)
	require.NoError(t, err)
	assert.Equal(t, subject.Box, got.Box)
}

func TestSelector_DropsObliqueFaces(t *testing.T) {
	frontal := facegeom.DetectedFace{
		Box: geometry.Box{XMin: 300, YMin: 200, XMax: 700, YMax: 700},
		Yaw: 5,
	}
	profile := facegeom.DetectedFace{
		Box: geometry.Box{XMin: 250, YMin: 180, XMax: 680, YMax: 700},
		Yaw: 55,
	}
	tilted := facegeom.DetectedFace{
		Box:  geometry.Box{XMin: 280, YMin: 190, XMax: 690, YMax: 690},
		Roll: -45,
	}

	got, err := newTestSelector().SelectPrimaryFace(
		[]facegeom.DetectedFace{profile, frontal, tilted}, 1000, 1000)
	require.NoError(t, err)
	assert.Equal(t, frontal.Box, got.Box)
}

func TestSelector_AllRejectedIsHardFailure(t *testing.T) {
	a := facegeom.DetectedFace{
		Box: geometry.Box{XMin: 300, YMin: 200, XMax: 700, YMax: 700},
		Yaw: 60,
	}
	b := facegeom.DetectedFace{
		Box:  geometry.Box{XMin: 250, YMin: 180, XMax: 680, YMax: 700},
		Roll: 40,
	}

	_, err := newTestSelector().SelectPrimaryFace([]facegeom.DetectedFace{a, b}, 1000, 1000)
	assert.ErrorIs(t, err, facegeom.ErrNoFace)
}

func TestSelector_PrefersCenteredFace(t *testing.T) {
	// Same area; the centered face wins on the distance-weighted score.
	centered := facegeom.DetectedFace{
		Box: geometry.Box{XMin: 400, YMin: 400, XMax: 600, YMax: 600},
	}
	corner := facegeom.DetectedFace{
		Box: geometry.Box{XMin: 0, YMin: 0, XMax: 200, YMax: 200},
	}

	got, err := newTestSelector().SelectPrimaryFace(
		[]facegeom.DetectedFace{corner, centered}, 1000, 1000)
	require.NoError(t, err)
	assert.Equal(t, centered.Box, got.Box)
}
