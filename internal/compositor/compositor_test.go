package compositor_test

import (
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/compositor"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/config"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/geometry"
)

func newTestCompositor(feather int) *compositor.Compositor {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return compositor.New(feather, log)
}

func TestClampFeather(t *testing.T) {
	assert.Equal(t, 1, compositor.ClampFeather(0))
	assert.Equal(t, 1, compositor.ClampFeather(-3))
	assert.Equal(t, 2, compositor.ClampFeather(2))
	assert.Equal(t, config.MaxFeatherRadiusPx, compositor.ClampFeather(config.MaxFeatherRadiusPx))
	assert.Equal(t, config.MaxFeatherRadiusPx, compositor.ClampFeather(100))
}

func TestBuildCoreFaceData_MaskShape(t *testing.T) {
	img := imaging.New(400, 400, color.NRGBA{R: 40, G: 200, B: 40, A: 255})
	box := geometry.Box{XMin: 100, YMin: 100, XMax: 300, YMax: 300}

	core := compositor.BuildCoreFaceData(img, box, 2)
	require.NotNil(t, core)

	// The mask bounds hug the polygon, strictly inside the face box.
	assert.GreaterOrEqual(t, core.Bounds.XMin, box.XMin)
	assert.LessOrEqual(t, core.Bounds.XMax, box.XMax)
	assert.GreaterOrEqual(t, core.Bounds.YMin, box.YMin)
	assert.LessOrEqual(t, core.Bounds.YMax, box.YMax)

	// Full opacity at the polygon centroid, transparent at the padded
	// corner.
	centroid := core.Bounds.Center()
	assert.GreaterOrEqual(t, core.Mask.AlphaAt(centroid.X, centroid.Y).A, uint8(250))
	assert.LessOrEqual(t, core.Mask.AlphaAt(core.Bounds.XMin, core.Bounds.YMin).A, uint8(5))
}

func TestBuildCoreFaceData_PixelsCarryLockSource(t *testing.T) {
	// The masked pixel buffer must hold the lock's pixels, not the
	// image being composited onto.
	lock := imaging.New(400, 400, color.NRGBA{R: 220, G: 30, B: 30, A: 255})
	box := geometry.Box{XMin: 100, YMin: 100, XMax: 300, YMax: 300}

	core := compositor.BuildCoreFaceData(lock, box, 2)
	centroid := core.Bounds.Center()

	px := core.Pixels.NRGBAAt(centroid.X, centroid.Y)
	assert.Equal(t, uint8(220), px.R)
	assert.Equal(t, uint8(30), px.G)
	assert.GreaterOrEqual(t, px.A, uint8(250), "interior keeps full opacity")

	corner := core.Pixels.NRGBAAt(core.Bounds.XMin, core.Bounds.YMin)
	assert.LessOrEqual(t, corner.A, uint8(5), "outside the polygon stays transparent")
}

func TestCompositeFaceBack_CoreRegionReplaced(t *testing.T) {
	generated := imaging.New(400, 400, color.NRGBA{R: 40, G: 200, B: 40, A: 255})
	faceCrop := imaging.New(180, 180, color.NRGBA{R: 220, G: 30, B: 30, A: 255})
	box := geometry.Box{XMin: 100, YMin: 100, XMax: 300, YMax: 300}

	result, err := newTestCompositor(2).CompositeFaceBack(generated, faceCrop, box)
	require.NoError(t, err)
	require.True(t, result.Composited)

	// The core of the face box now carries the crop's pixels.
	center := result.Image.NRGBAAt(200, 200)
	assert.Greater(t, center.R, uint8(200))
	assert.Less(t, center.G, uint8(60))

	// Pixels outside the face box are untouched.
	corner := result.Image.NRGBAAt(10, 10)
	assert.Equal(t, uint8(40), corner.R)
	assert.Equal(t, uint8(200), corner.G)

	// Forehead band (above the eye line) is untouched too.
	forehead := result.Image.NRGBAAt(200, 110)
	assert.Equal(t, uint8(200), forehead.G)
}

func TestCompositeFaceBack_Deterministic(t *testing.T) {
	generated := imaging.New(300, 300, color.NRGBA{R: 90, G: 120, B: 180, A: 255})
	faceCrop := imaging.New(100, 120, color.NRGBA{R: 210, G: 170, B: 140, A: 255})
	box := geometry.Box{XMin: 80, YMin: 60, XMax: 220, YMax: 240}

	comp := newTestCompositor(3)
	first, err := comp.CompositeFaceBack(generated, faceCrop, box)
	require.NoError(t, err)
	second, err := comp.CompositeFaceBack(generated, faceCrop, box)
	require.NoError(t, err)

	assert.Equal(t, first.Image.Pix, second.Image.Pix, "compositing must be a pure function of its inputs")
}

func TestCompositeFaceBack_InvalidInputs(t *testing.T) {
	comp := newTestCompositor(2)
	img := imaging.New(100, 100, color.NRGBA{A: 255})

	_, err := comp.CompositeFaceBack(nil, img, geometry.Box{XMax: 10, YMax: 10})
	assert.Error(t, err)

	_, err = comp.CompositeFaceBack(img, img, geometry.Box{})
	assert.Error(t, err)

	// A box entirely outside the image cannot be composited.
	_, err = comp.CompositeFaceBack(img, img, geometry.Box{XMin: 500, YMin: 500, XMax: 600, YMax: 600})
	assert.Error(t, err)
}

func TestCompositeFaceBack_ClampsOverflowingBox(t *testing.T) {
	generated := imaging.New(200, 200, color.NRGBA{R: 40, G: 200, B: 40, A: 255})
	faceCrop := imaging.New(80, 80, color.NRGBA{R: 220, G: 30, B: 30, A: 255})

	// Box partially outside the canvas is intersected, not rejected.
	box := geometry.Box{XMin: 120, YMin: 120, XMax: 260, YMax: 260}
	result, err := newTestCompositor(2).CompositeFaceBack(generated, faceCrop, box)
	require.NoError(t, err)
	assert.True(t, result.Composited)
}
