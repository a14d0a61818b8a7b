package geometry

import (
	"image"
	"math"
)

// Box is a pixel-space bounding box with min-inclusive, max-exclusive edges.
type Box struct {
	XMin int `json:"x_min"`
	YMin int `json:"y_min"`
	XMax int `json:"x_max"`
	YMax int `json:"y_max"`
}

// FromRect converts an image.Rectangle to a Box
func FromRect(r image.Rectangle) Box {
	return Box{XMin: r.Min.X, YMin: r.Min.Y, XMax: r.Max.X, YMax: r.Max.Y}
}

// Rect converts the box to an image.Rectangle
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.XMin, b.YMin, b.XMax, b.YMax)
}

// Width returns the box width in pixels
func (b Box) Width() int {
	return b.XMax - b.XMin
}

// Height returns the box height in pixels
func (b Box) Height() int {
	return b.YMax - b.YMin
}

// Area returns the box area in pixels
func (b Box) Area() int {
	return b.Width() * b.Height()
}

// Center returns the box center point
func (b Box) Center() image.Point {
	return image.Point{X: (b.XMin + b.XMax) / 2, Y: (b.YMin + b.YMax) / 2}
}

// Empty reports whether the box has no area
func (b Box) Empty() bool {
	return b.XMax <= b.XMin || b.YMax <= b.YMin
}

// Pad expands the box by the given number of pixels on every side,
// clamped to the provided image bounds.
func (b Box) Pad(px int, bounds image.Rectangle) Box {
	return Box{
		XMin: maxInt(bounds.Min.X, b.XMin-px),
		YMin: maxInt(bounds.Min.Y, b.YMin-px),
		XMax: minInt(bounds.Max.X, b.XMax+px),
		YMax: minInt(bounds.Max.Y, b.YMax+px),
	}
}

// CenterDistance returns the euclidean distance between the box center
// and the center of an image of the given dimensions.
func (b Box) CenterDistance(imageWidth, imageHeight int) float64 {
	c := b.Center()
	dx := float64(c.X - imageWidth/2)
	dy := float64(c.Y - imageHeight/2)
	return math.Sqrt(dx*dx + dy*dy)
}

// NormalizedBox holds box coordinates relative to image dimensions,
// each in [0,1]. Left < Right and Top < Bottom always hold after Clamp.
type NormalizedBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Normalize converts a pixel box into normalized coordinates.
func Normalize(b Box, imageWidth, imageHeight int) NormalizedBox {
	if imageWidth <= 0 || imageHeight <= 0 {
		return NormalizedBox{}
	}
	return NormalizedBox{
		Left:   float64(b.XMin) / float64(imageWidth),
		Top:    float64(b.YMin) / float64(imageHeight),
		Right:  float64(b.XMax) / float64(imageWidth),
		Bottom: float64(b.YMax) / float64(imageHeight),
	}.Clamp()
}

// Clamp forces every coordinate into [0,1] and swaps edges if needed so
// that Left < Right and Top < Bottom.
func (n NormalizedBox) Clamp() NormalizedBox {
	n.Left = clamp01(n.Left)
	n.Top = clamp01(n.Top)
	n.Right = clamp01(n.Right)
	n.Bottom = clamp01(n.Bottom)
	if n.Right < n.Left {
		n.Left, n.Right = n.Right, n.Left
	}
	if n.Bottom < n.Top {
		n.Top, n.Bottom = n.Bottom, n.Top
	}
	return n
}

// Valid reports whether the box is monotonic and within [0,1].
func (n NormalizedBox) Valid() bool {
	return n.Left >= 0 && n.Right <= 1 && n.Top >= 0 && n.Bottom <= 1 &&
		n.Left < n.Right && n.Top < n.Bottom
}

// ToPixels maps the normalized box onto an image of the given dimensions.
func (n NormalizedBox) ToPixels(imageWidth, imageHeight int) Box {
	return Box{
		XMin: int(math.Round(n.Left * float64(imageWidth))),
		YMin: int(math.Round(n.Top * float64(imageHeight))),
		XMax: int(math.Round(n.Right * float64(imageWidth))),
		YMax: int(math.Round(n.Bottom * float64(imageHeight))),
	}
}

// Point is a 2D point in pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polygon is an ordered list of points describing a closed region.
type Polygon []Point

// Bounds returns the integer bounding box of the polygon.
func (p Polygon) Bounds() Box {
	if len(p) == 0 {
		return Box{}
	}
	minX, minY := p[0].X, p[0].Y
	maxX, maxY := p[0].X, p[0].Y
	for _, pt := range p[1:] {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return Box{
		XMin: int(math.Floor(minX)),
		YMin: int(math.Floor(minY)),
		XMax: int(math.Ceil(maxX)),
		YMax: int(math.Ceil(maxY)),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
