package compositor

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/disintegration/imaging"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/config"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/facegeom"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/geometry"
)

// CoreFaceData is the ephemeral per-attempt compositing payload: the
// core-face polygon, its rasterized alpha mask, the mask bounds padded
// by the feather radius, and the masked lock pixels ready to draw. It
// is computed fresh per composite and never cached.
type CoreFaceData struct {
	Polygon geometry.Polygon
	Mask    *image.Alpha
	Bounds  geometry.Box
	Pixels  *image.NRGBA
}

// ClampFeather enforces the hard feather cap.
func ClampFeather(radius int) int {
	if radius < 1 {
		return 1
	}
	if radius > config.MaxFeatherRadiusPx {
		return config.MaxFeatherRadiusPx
	}
	return radius
}

// rasterizePolygon fills the polygon into an alpha mask covering rect,
// using even-odd scanline filling.
func rasterizePolygon(poly geometry.Polygon, rect image.Rectangle) *image.Alpha {
	mask := image.NewAlpha(rect)
	if len(poly) < 3 {
		return mask
	}

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		cy := float64(y) + 0.5

		// Collect x-crossings of the scanline with polygon edges.
		var xs []float64
		for i := range poly {
			a := poly[i]
			b := poly[(i+1)%len(poly)]
			if (a.Y <= cy && b.Y > cy) || (b.Y <= cy && a.Y > cy) {
				t := (cy - a.Y) / (b.Y - a.Y)
				xs = append(xs, a.X+t*(b.X-a.X))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Float64s(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			x0 := int(math.Ceil(xs[i] - 0.5))
			x1 := int(math.Floor(xs[i+1] - 0.5))
			for x := x0; x <= x1; x++ {
				if x >= rect.Min.X && x < rect.Max.X {
					mask.SetAlpha(x, y, color.Alpha{A: 0xff})
				}
			}
		}
	}

	return mask
}

// featherAlpha softens only the alpha transition of the mask with a
// small Gaussian blur. The face interior keeps full opacity; only the
// edge ramps, so the blend has no hard cutout while the face center
// stays 100% source pixels.
func featherAlpha(mask *image.Alpha, radius int) *image.Alpha {
	rect := mask.Rect

	// Lift the alpha channel into a gray NRGBA so imaging can blur it.
	gray := image.NewNRGBA(rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			a := mask.AlphaAt(x, y).A
			gray.SetNRGBA(x, y, color.NRGBA{R: a, G: a, B: a, A: 0xff})
		}
	}

	blurred := imaging.Blur(gray, float64(radius)/2)

	out := image.NewAlpha(rect)
	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			out.SetAlpha(rect.Min.X+x, rect.Min.Y+y, color.Alpha{A: blurred.NRGBAAt(x, y).R})
		}
	}
	return out
}

// BuildCoreFaceData derives the compositing payload for a face box.
// src carries the identity-lock pixels already mapped into canvas
// coordinates over the face box; the returned Pixels are those lock
// pixels with the feathered mask baked into their alpha channel.
func BuildCoreFaceData(src image.Image, faceBox geometry.Box, feather int) *CoreFaceData {
	feather = ClampFeather(feather)
	poly := facegeom.BuildCorePolygon(faceBox)
	padded := poly.Bounds().Pad(feather, src.Bounds())

	mask := featherAlpha(rasterizePolygon(poly, padded.Rect()), feather)

	pixels := image.NewNRGBA(padded.Rect())
	for y := padded.YMin; y < padded.YMax; y++ {
		for x := padded.XMin; x < padded.XMax; x++ {
			r, g, b, _ := src.At(x, y).RGBA()
			a := mask.AlphaAt(x, y).A
			pixels.SetNRGBA(x, y, color.NRGBA{
				R: uint8(r >> 8),
				G: uint8(g >> 8),
				B: uint8(b >> 8),
				A: a,
			})
		}
	}

	return &CoreFaceData{
		Polygon: poly,
		Mask:    mask,
		Bounds:  padded,
		Pixels:  pixels,
	}
}
