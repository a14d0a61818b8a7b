package geometry_test

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/geometry"
)

func TestBox_Dimensions(t *testing.T) {
	box := geometry.Box{XMin: 10, YMin: 20, XMax: 110, YMax: 70}

	assert.Equal(t, 100, box.Width())
	assert.Equal(t, 50, box.Height())
	assert.Equal(t, 5000, box.Area())
	assert.Equal(t, image.Point{X: 60, Y: 45}, box.Center())
	assert.False(t, box.Empty())
}

func TestBox_Empty(t *testing.T) {
	assert.True(t, geometry.Box{}.Empty())
	assert.True(t, geometry.Box{XMin: 10, YMin: 10, XMax: 10, YMax: 50}.Empty())
	assert.True(t, geometry.Box{XMin: 50, YMin: 10, XMax: 10, YMax: 50}.Empty())
}

func TestBox_RectRoundTrip(t *testing.T) {
	rect := image.Rect(5, 6, 30, 40)
	assert.Equal(t, rect, geometry.FromRect(rect).Rect())
}

func TestBox_PadClampsToBounds(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)
	box := geometry.Box{XMin: 5, YMin: 5, XMax: 95, YMax: 95}

	padded := box.Pad(10, bounds)
	assert.Equal(t, geometry.Box{XMin: 0, YMin: 0, XMax: 100, YMax: 100}, padded)

	interior := geometry.Box{XMin: 40, YMin: 40, XMax: 60, YMax: 60}.Pad(5, bounds)
	assert.Equal(t, geometry.Box{XMin: 35, YMin: 35, XMax: 65, YMax: 65}, interior)
}

func TestNormalize(t *testing.T) {
	box := geometry.Box{XMin: 25, YMin: 50, XMax: 75, YMax: 100}
	n := geometry.Normalize(box, 100, 200)

	assert.InDelta(t, 0.25, n.Left, 1e-9)
	assert.InDelta(t, 0.25, n.Top, 1e-9)
	assert.InDelta(t, 0.75, n.Right, 1e-9)
	assert.InDelta(t, 0.50, n.Bottom, 1e-9)
	assert.True(t, n.Valid())
}

func TestNormalize_ZeroDimensions(t *testing.T) {
	n := geometry.Normalize(geometry.Box{XMin: 1, YMin: 1, XMax: 2, YMax: 2}, 0, 0)
	assert.Equal(t, geometry.NormalizedBox{}, n)
}

func TestNormalizedBox_ClampSwapsEdges(t *testing.T) {
	n := geometry.NormalizedBox{Left: 0.8, Top: 0.9, Right: 0.2, Bottom: 0.1}.Clamp()

	assert.True(t, n.Left < n.Right)
	assert.True(t, n.Top < n.Bottom)
	assert.True(t, n.Valid())
}

func TestNormalizedBox_ClampOutOfRange(t *testing.T) {
	n := geometry.NormalizedBox{Left: -0.5, Top: 0.1, Right: 1.5, Bottom: 0.9}.Clamp()

	assert.Equal(t, 0.0, n.Left)
	assert.Equal(t, 1.0, n.Right)
	assert.True(t, n.Valid())
}

func TestNormalizedBox_ToPixels(t *testing.T) {
	n := geometry.NormalizedBox{Left: 0.25, Top: 0.1, Right: 0.75, Bottom: 0.5}
	box := n.ToPixels(200, 100)

	assert.Equal(t, geometry.Box{XMin: 50, YMin: 10, XMax: 150, YMax: 50}, box)
}

func TestPolygon_Bounds(t *testing.T) {
	poly := geometry.Polygon{
		{X: 10.4, Y: 20.6},
		{X: 50.2, Y: 15.1},
		{X: 30.0, Y: 60.9},
	}
	box := poly.Bounds()

	assert.Equal(t, geometry.Box{XMin: 10, YMin: 15, XMax: 51, YMax: 61}, box)
}

func TestPolygon_BoundsEmpty(t *testing.T) {
	assert.Equal(t, geometry.Box{}, geometry.Polygon{}.Bounds())
}
