package facegeom

import "github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/geometry"

// Core-face polygon proportions, relative to the full face box. The
// polygon covers eyes/nose/mouth/inner cheeks only: the top edge sits
// at eye level (forehead and hairline excluded), the bottom edge stays
// above the chin (jaw silhouette excluded), and the side vertices stop
// at the inner-cheek lines (ears excluded). Copying anything wider is
// what produces visible seams with hats, new hairstyles, or different
// scene lighting.
const (
	eyeLineRatio    = 0.30 // top of polygon, fraction of box height
	chinLineRatio   = 0.88 // bottom of polygon, fraction of box height
	innerCheekRatio = 0.18 // inset of side vertices, fraction of box width
	eyeSpanRatio    = 0.32 // half-width of the eye-level edge
	chinSpanRatio   = 0.20 // half-width of the chin-level edge
)

// BuildCorePolygon constructs the minimal diamond-like core-face region
// strictly inside the given face box. This is the only area the
// compositor ever pixel-copies.
func BuildCorePolygon(box geometry.Box) geometry.Polygon {
	w := float64(box.Width())
	h := float64(box.Height())
	left := float64(box.XMin)
	top := float64(box.YMin)
	cx := left + w/2

	eyeY := top + h*eyeLineRatio
	chinY := top + h*chinLineRatio
	midY := (eyeY + chinY) / 2

	return geometry.Polygon{
		{X: cx - w*eyeSpanRatio, Y: eyeY},
		{X: cx + w*eyeSpanRatio, Y: eyeY},
		{X: left + w - w*innerCheekRatio, Y: midY},
		{X: cx + w*chinSpanRatio, Y: chinY},
		{X: cx - w*chinSpanRatio, Y: chinY},
		{X: left + w*innerCheekRatio, Y: midY},
	}
}
