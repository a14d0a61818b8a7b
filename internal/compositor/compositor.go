package compositor

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	xdraw "golang.org/x/image/draw"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/geometry"
)

// Result is the outcome of a composite pass.
type Result struct {
	Image      *image.NRGBA
	Composited bool
}

// Compositor overwrites the core face region of a generated image with
// pixels derived from the original identity image.
type Compositor struct {
	feather int
	log     logrus.FieldLogger
}

// New creates a Compositor with the given feather radius (hard-capped).
func New(feather int, log logrus.FieldLogger) *Compositor {
	return &Compositor{feather: ClampFeather(feather), log: log}
}

// CompositeFaceBack maps the locked face crop onto the selected face
// box of the generated image, scaling horizontally and vertically with
// independent factors, and overlays only the core-face polygon through
// a feathered alpha mask. The operation is a pure function of its
// inputs: compositing the same crop onto the same image twice yields
// identical pixels in the core region.
func (c *Compositor) CompositeFaceBack(generated image.Image, faceCrop image.Image, targetBox geometry.Box) (*Result, error) {
	if generated == nil || faceCrop == nil {
		return nil, fmt.Errorf("composite: nil image")
	}
	if targetBox.Empty() {
		return nil, fmt.Errorf("composite: empty target box")
	}
	bounds := generated.Bounds()
	if !targetBox.Rect().In(bounds) {
		targetBox = geometry.FromRect(targetBox.Rect().Intersect(bounds))
		if targetBox.Empty() {
			return nil, fmt.Errorf("composite: target box outside image")
		}
	}

	// Independent horizontal/vertical scaling of the locked pixels
	// into the generated face's box.
	resized := imaging.Resize(faceCrop, targetBox.Width(), targetBox.Height(), imaging.Lanczos)

	// Map the resized lock into canvas coordinates, then bake the
	// feathered mask into its alpha channel.
	src := image.NewNRGBA(targetBox.Rect())
	xdraw.Copy(src, targetBox.Rect().Min, resized, resized.Bounds(), xdraw.Src, nil)
	core := BuildCoreFaceData(src, targetBox, c.feather)

	canvas := imaging.Clone(generated)
	xdraw.Draw(canvas, core.Bounds.Rect(), core.Pixels, core.Bounds.Rect().Min, xdraw.Over)

	c.log.WithFields(logrus.Fields{
		"target":  targetBox,
		"feather": c.feather,
	}).Debug("core face composited")

	return &Result{Image: canvas, Composited: true}, nil
}
