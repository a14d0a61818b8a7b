package scene

import (
	"context"
	"fmt"
	"strings"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/reasoning"
)

const mapSceneInstruction = `You map a user's scene request onto exactly one preset id from the
provided list. Respond with strict JSON only:
{"preset_id": "...", "variant_label": "...", "anchor_zone": "...", "realism_notes": ["..."]}
anchor_zone describes ONLY the empty environment: location, surfaces,
lighting, camera intent. Never describe a person, body, face, or
clothing. Never invent preset ids outside the list.`

const refineRealismInstruction = `You refine camera and lighting realism language around an existing
environment description. You must not replace or contradict the
description. Respond with strict JSON only:
{"realism_notes": ["..."]}
Notes describe photographic realism cues (light falloff, texture,
depth of field). Never describe a person.`

// ModelJudge implements Judge on top of the reasoning model client.
type ModelJudge struct {
	client *reasoning.Client
}

// NewModelJudge wraps a reasoning client as a scene Judge.
func NewModelJudge(client *reasoning.Client) *ModelJudge {
	return &ModelJudge{client: client}
}

// MapScene implements Judge.
func (j *ModelJudge) MapScene(ctx context.Context, userRequest string, presetIDs []string) (MappedScene, error) {
	prompt := fmt.Sprintf("Preset ids: %s\n\nScene request: %s",
		strings.Join(presetIDs, ", "), userRequest)

	var mapped MappedScene
	if err := j.client.Complete(ctx, mapSceneInstruction, prompt, nil, &mapped); err != nil {
		return MappedScene{}, fmt.Errorf("map scene: %w", err)
	}
	if mapped.PresetID == "" {
		return MappedScene{}, fmt.Errorf("map scene: empty preset id in judgment")
	}
	return mapped, nil
}

// RefineRealism implements Judge.
func (j *ModelJudge) RefineRealism(ctx context.Context, anchor string) ([]string, error) {
	var out struct {
		RealismNotes []string `json:"realism_notes"`
	}
	prompt := "Environment description:\n" + anchor
	if err := j.client.Complete(ctx, refineRealismInstruction, prompt, nil, &out); err != nil {
		return nil, fmt.Errorf("refine realism: %w", err)
	}
	return out.RealismNotes, nil
}
