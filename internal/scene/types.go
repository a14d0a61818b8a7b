package scene

import "context"

// Policy tags forced on every resolver output. These are architectural
// guarantees, not model-negotiable preferences: whatever the external
// mapper returns, the resolver overwrites these four fields.
const (
	LightingModeEnvironmentCoherent = "environment-coherent"
	PosePolicyInherit               = "inherit"
	FacePolicyImmutable             = "immutable"
	CameraPolicyInherit             = "inherit"
)

// Fallback records why a deterministic safe preset was substituted.
type Fallback struct {
	Reason   string
	PresetID string
}

// IntelOutput is the resolved scene for one generation request. It
// describes only the empty environment, never a person.
type IntelOutput struct {
	PresetID     string
	VariantLabel string
	AnchorZone   string

	LightingMode string
	PosePolicy   string
	FacePolicy   string
	CameraPolicy string

	LightingNotes string
	RealismNotes  []string

	Fallback *Fallback
}

// Request carries the caller's scene intent. At most one of
// PresetDescription, PresetID, UserRequest drives resolution, in that
// priority order.
type Request struct {
	UserRequest       string
	PresetID          string
	PresetDescription string
	VariantLabel      string
	IdentityImageRef  string
}

// MappedScene is the strict JSON schema the external mapper must
// return for free-text requests.
type MappedScene struct {
	PresetID     string   `json:"preset_id"`
	VariantLabel string   `json:"variant_label"`
	AnchorZone   string   `json:"anchor_zone"`
	RealismNotes []string `json:"realism_notes"`
}

// Judge is the resolver's view of the external reasoning model.
type Judge interface {
	// MapScene maps a free-text scene request onto one of the
	// enumerated preset ids.
	MapScene(ctx context.Context, userRequest string, presetIDs []string) (MappedScene, error)
	// RefineRealism suggests camera/lighting realism language around an
	// authoritative environment description, never replacing it.
	RefineRealism(ctx context.Context, anchor string) ([]string, error)
}
