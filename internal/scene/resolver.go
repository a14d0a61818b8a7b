package scene

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Resolver turns a scene request into a strict, person-agnostic
// environment description. Resolution never fails: every error path
// lands on the deterministic safe preset with a recorded reason.
type Resolver struct {
	judge Judge
	log   logrus.FieldLogger
}

// NewResolver creates a Resolver. judge may be nil, in which case every
// path that would consult the external model uses its deterministic
// fallback instead.
func NewResolver(judge Judge, log logrus.FieldLogger) *Resolver {
	return &Resolver{judge: judge, log: log}
}

// Resolve produces the scene output for a request.
//
// Priority: a concrete preset description is authoritative; the
// external model only refines realism language around it. A
// preset id selects from the catalog. Free text is mapped onto the
// enumerated preset ids by the external model with strict JSON output.
// Any failure falls back to the safe preset.
func (r *Resolver) Resolve(ctx context.Context, req Request) *IntelOutput {
	var out *IntelOutput

	switch {
	case req.PresetDescription != "":
		out = r.resolveAuthoritative(ctx, req)
	case req.PresetID != "":
		out = r.resolvePreset(ctx, req)
	case req.UserRequest != "":
		out = r.resolveFreeText(ctx, req)
	default:
		out = r.safeOutput("no scene input provided", req.VariantLabel)
	}

	return force(out)
}

func (r *Resolver) resolveAuthoritative(ctx context.Context, req Request) *IntelOutput {
	presetID := req.PresetID
	if presetID == "" {
		presetID = "custom"
	}
	out := &IntelOutput{
		PresetID:     presetID,
		VariantLabel: req.VariantLabel,
		AnchorZone:   req.PresetDescription,
	}
	r.refineOrDefault(ctx, req.PresetDescription, nil, out)
	return out
}

func (r *Resolver) resolvePreset(ctx context.Context, req Request) *IntelOutput {
	preset, ok := LookupPreset(req.PresetID)
	if !ok {
		r.log.WithField("preset", req.PresetID).Warn("unknown scene preset, using safe fallback")
		return r.safeOutput("unknown preset id: "+req.PresetID, req.VariantLabel)
	}
	out := &IntelOutput{
		PresetID:      preset.ID,
		VariantLabel:  req.VariantLabel,
		AnchorZone:    preset.Anchor,
		LightingNotes: preset.Lighting,
	}
	r.refineOrDefault(ctx, preset.Anchor, preset.Realism, out)
	return out
}

func (r *Resolver) resolveFreeText(ctx context.Context, req Request) *IntelOutput {
	if r.judge == nil {
		return r.safeOutput("no scene mapper configured", req.VariantLabel)
	}

	mapped, err := r.judge.MapScene(ctx, req.UserRequest, PresetIDs())
	if err != nil {
		r.log.WithError(err).Warn("scene mapping failed, using safe fallback")
		return r.safeOutput("scene mapping failed: "+err.Error(), req.VariantLabel)
	}

	preset, ok := LookupPreset(mapped.PresetID)
	if !ok {
		r.log.WithField("preset", mapped.PresetID).Warn("mapper returned unknown preset, using safe fallback")
		return r.safeOutput("mapper returned unknown preset id: "+mapped.PresetID, req.VariantLabel)
	}

	anchor := mapped.AnchorZone
	if anchor == "" {
		anchor = preset.Anchor
	}
	variant := mapped.VariantLabel
	if variant == "" {
		variant = req.VariantLabel
	}
	realism := mapped.RealismNotes
	if len(realism) == 0 {
		realism = preset.Realism
	}

	return &IntelOutput{
		PresetID:      preset.ID,
		VariantLabel:  variant,
		AnchorZone:    anchor,
		LightingNotes: preset.Lighting,
		RealismNotes:  realism,
	}
}

// refineOrDefault asks the external model for realism language. A
// failed call keeps the deterministic notes and annotates out.Fallback
// so every external failure is visible to the caller.
func (r *Resolver) refineOrDefault(ctx context.Context, anchor string, deterministic []string, out *IntelOutput) {
	if r.judge != nil {
		notes, err := r.judge.RefineRealism(ctx, anchor)
		if err == nil && len(notes) > 0 {
			out.RealismNotes = notes
			return
		}
		if err != nil {
			r.log.WithError(err).Debug("realism refinement failed, using deterministic notes")
			out.Fallback = &Fallback{
				Reason:   "realism refinement failed: " + err.Error(),
				PresetID: out.PresetID,
			}
		}
	}
	if len(deterministic) > 0 {
		out.RealismNotes = deterministic
		return
	}
	out.RealismNotes = []string{"natural light falloff consistent with the environment"}
}

// safeOutput builds the hard-coded deterministic fallback scene.
func (r *Resolver) safeOutput(reason, variant string) *IntelOutput {
	preset, _ := LookupPreset(SafePresetID)
	return &IntelOutput{
		PresetID:      preset.ID,
		VariantLabel:  variant,
		AnchorZone:    preset.Anchor,
		LightingNotes: preset.Lighting,
		RealismNotes:  preset.Realism,
		Fallback:      &Fallback{Reason: reason, PresetID: preset.ID},
	}
}

// force overwrites the four policy fields with their fixed values.
func force(out *IntelOutput) *IntelOutput {
	out.LightingMode = LightingModeEnvironmentCoherent
	out.PosePolicy = PosePolicyInherit
	out.FacePolicy = FacePolicyImmutable
	out.CameraPolicy = CameraPolicyInherit
	return out
}
