package prompt

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/routing"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/scene"
)

// Assembled is the final instruction payload for the generative model.
type Assembled struct {
	Text               string
	ModelID            string
	Temperature        float64
	RequiredAssertions []string
}

// Assembler composes generation prompts from the fixed instruction
// blocks, the resolved scene, and the garment description.
type Assembler struct {
	log logrus.FieldLogger
}

// NewAssembler creates an Assembler.
func NewAssembler(log logrus.FieldLogger) *Assembler {
	return &Assembler{log: log}
}

// Assemble builds the prompt for the engine. Identity-critical engines
// get the full fixed block set; the free-creative engine gets the
// looser resemble directive. The assembled text is scanned by the
// biometric filter before it is returned; a match fails assembly with
// a policy violation.
func (a *Assembler) Assemble(useCase routing.UseCase, spec routing.Spec, sceneOut *scene.IntelOutput, garmentDescription string) (*Assembled, error) {
	if sceneOut == nil {
		return nil, fmt.Errorf("assemble: scene output is required")
	}

	var b strings.Builder
	var assertions []string

	if spec.IdentityCritical {
		b.WriteString(IdentityLockBlockV1)
		b.WriteString("\n\n")
		b.WriteString(NegativeDriftBlockV1)
		b.WriteString("\n\n")
		b.WriteString(PoseAnchorBlockV1)
		b.WriteString("\n\n")
		b.WriteString(FaceDeemphasisBlockV1)
		assertions = append(assertions,
			"identity-lock",
			"negative-drift",
			"pose-anchor",
			"face-de-emphasis",
		)
	} else {
		b.WriteString(ResembleBlockV1)
		assertions = append(assertions, "identity-resemblance")
	}

	b.WriteString("\n\n")
	b.WriteString(garmentHeader)
	if garmentDescription != "" {
		b.WriteString("\nGarment details: ")
		b.WriteString(garmentDescription)
	}

	b.WriteString("\n\nSCENE:\n")
	b.WriteString(sceneOut.AnchorZone)
	if sceneOut.LightingNotes != "" {
		b.WriteString("\nLighting: ")
		b.WriteString(sceneOut.LightingNotes)
	}
	for _, note := range sceneOut.RealismNotes {
		b.WriteString("\n- ")
		b.WriteString(note)
	}

	if sceneOut.VariantLabel != "" {
		b.WriteString("\nMOOD: ")
		b.WriteString(sceneOut.VariantLabel)
		if directive, ok := moodDirectives[sceneOut.VariantLabel]; ok {
			b.WriteString(": ")
			b.WriteString(directive)
		}
	}

	b.WriteString("\n\nPOLICIES: lighting=")
	b.WriteString(sceneOut.LightingMode)
	b.WriteString(", pose=")
	b.WriteString(sceneOut.PosePolicy)
	b.WriteString(", face=")
	b.WriteString(sceneOut.FacePolicy)
	b.WriteString(", camera=")
	b.WriteString(sceneOut.CameraPolicy)
	assertions = append(assertions, "face-policy-immutable")

	text := b.String()
	if err := FilterBiometricLanguage(text); err != nil {
		a.log.WithError(err).WithFields(logrus.Fields{
			"use_case": useCase,
			"engine":   spec.Engine,
		}).Error("prompt assembly rejected")
		return nil, err
	}

	a.log.WithFields(logrus.Fields{
		"use_case":    useCase,
		"engine":      spec.Engine,
		"model":       spec.ModelID,
		"temperature": spec.Temperature,
		"chars":       len(text),
	}).Debug("prompt assembled")

	return &Assembled{
		Text:               text,
		ModelID:            spec.ModelID,
		Temperature:        spec.Temperature,
		RequiredAssertions: assertions,
	}, nil
}

// WithVariantDifferentiation appends the strict differentiation block
// for a regenerated multi-variant run.
func WithVariantDifferentiation(assembled *Assembled) *Assembled {
	out := *assembled
	out.Text = assembled.Text + "\n\n" + VariantDifferentiationBlockV1
	out.RequiredAssertions = append(append([]string{}, assembled.RequiredAssertions...), "variant-differentiation")
	return &out
}
