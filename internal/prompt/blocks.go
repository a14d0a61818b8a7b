package prompt

// Fixed instruction blocks. These are append-only configuration assets:
// versioned constants composed by pure functions, never templated per
// request, so their exact wording is directly testable.

// IdentityLockBlockV1 is the non-negotiable identity directive for the
// identity-critical engines.
const IdentityLockBlockV1 = `IDENTITY LOCK (non-negotiable):
Reuse the pixels of the person in Image 1 exactly. The face must match
Image 1 exactly. Do not beautify, do not symmetrize, do not reinterpret
any part of the face. Treat the face as read-only reference pixels.`

// NegativeDriftBlockV1 lists the explicit bans that counter the model's
// tendency to "improve" faces.
const NegativeDriftBlockV1 = `FORBIDDEN ADJUSTMENTS:
- inventing facial features that are not in Image 1
- smoothing or retouching skin
- changing eye, eyebrow, or lip geometry
- "balancing" or correcting natural asymmetry
- altering apparent age, expression intensity, or gaze direction`

// PoseAnchorBlockV1 pins orientation to the identity image.
const PoseAnchorBlockV1 = `POSE ANCHOR:
Head orientation must match Image 1 within 4 degrees of turn or tilt.
Body posture follows Image 1 unless the garment requires a minor
adjustment; the face never does.`

// FaceDeemphasisBlockV1 keeps the face from becoming the optical focus,
// which reduces the model's incentive to re-render it.
const FaceDeemphasisBlockV1 = `COMPOSITION:
The face must not be the optically dominant element of the frame. Let
the garment and the environment carry the visual emphasis; keep the
face in natural, unexaggerated light.`

// ResembleBlockV1 is the looser directive for the free-creative engine.
const ResembleBlockV1 = `The person in the output should strongly resemble the person in
Image 1. Mild photographic refinement is acceptable; do not change the
person's recognizable identity.`

// VariantDifferentiationBlockV1 is appended when a three-variant run is
// regenerated after near-duplicate output.
const VariantDifferentiationBlockV1 = `VARIANT DIFFERENTIATION (strict):
The three variants must read as clearly different photographs.
- editorial: composed studio-grade framing, deliberate styling, polished light
- candid: off-center spontaneous framing, imperfect natural light, mid-motion feel
- environmental: wide framing where the location dominates, subject integrated into the scene
Differ in lighting, framing, background emphasis, and pose energy. Do
not reuse the same camera angle or background treatment across variants.`

// moodDirectives style each planned variant mood. The label travels
// with the resolved scene; labels outside this set pass through as-is.
var moodDirectives = map[string]string{
	"editorial":     "composed studio-grade framing, deliberate styling, polished light",
	"candid":        "off-center spontaneous framing, imperfect natural light, mid-motion feel",
	"environmental": "wide framing with the location dominant, subject integrated into the scene",
}

// garmentHeader introduces the garment reference image.
const garmentHeader = `GARMENT (Image 2):
Dress the person in the garment shown in Image 2, preserving its true
color, pattern, and fit.`
