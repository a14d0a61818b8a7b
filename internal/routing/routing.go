package routing

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/config"
)

// UseCase tags the kind of generation being requested.
type UseCase string

// Engine names a (model, temperature, prompt-style) configuration.
type Engine string

const (
	UseCaseTryOn    UseCase = "tryon"
	UseCaseUGC      UseCase = "ugc"
	UseCaseCampaign UseCase = "campaign"

	EngineIdentityFast   Engine = "identity-fast"
	EngineIdentityLocked Engine = "identity-locked-high-fidelity"
	EngineCreativeFree   Engine = "creative-free"
)

// ErrForbiddenRoute is a configuration error: the requested
// use-case/engine combination is architecturally disallowed. Never
// retried.
var ErrForbiddenRoute = errors.New("forbidden use-case/engine combination")

// Spec describes one engine's fixed configuration.
type Spec struct {
	Engine           Engine
	ModelID          string
	Temperature      float64
	Description      string
	IdentityCritical bool
	// PixelCorrection reports whether post-generation face compositing
	// runs for this engine. Always true for identity-critical engines.
	PixelCorrection bool
}

var engineSpecs = map[Engine]Spec{
	EngineIdentityFast: {
		Engine:           EngineIdentityFast,
		ModelID:          config.ModelIdentityFast,
		Temperature:      config.TemperatureIdentityFast,
		Description:      "fast identity-constrained generation, flash-tier model",
		IdentityCritical: true,
		PixelCorrection:  true,
	},
	EngineIdentityLocked: {
		Engine:           EngineIdentityLocked,
		ModelID:          config.ModelIdentityLocked,
		Temperature:      config.TemperatureIdentityLocked,
		Description:      "high-fidelity identity-locked generation, pro-tier model",
		IdentityCritical: true,
		PixelCorrection:  true,
	},
	EngineCreativeFree: {
		Engine:           EngineCreativeFree,
		ModelID:          config.ModelCreativeFree,
		Temperature:      config.TemperatureCreativeFree,
		Description:      "free creative generation, no identity constraint",
		IdentityCritical: false,
		PixelCorrection:  false,
	},
}

// EngineSpec returns the fixed configuration for an engine.
func EngineSpec(engine Engine) (Spec, bool) {
	spec, ok := engineSpecs[engine]
	return spec, ok
}

// Decision is the structured routing record emitted for observability.
type Decision struct {
	UseCase     UseCase
	Engine      Engine
	Description string
	Warning     string
}

// Guard enforces which engine may serve which use-case. It must run
// before any external network call.
type Guard struct {
	log logrus.FieldLogger
}

// NewGuard creates a routing guard.
func NewGuard(log logrus.FieldLogger) *Guard {
	return &Guard{log: log}
}

// Authorize applies the rule table. Try-on may use either identity
// engine; try-on with the free-creative engine is a hard configuration
// error, because that engine has no identity constraint and is known to
// drift facial identity. UGC and campaign may use the creative engine
// freely; an identity engine there is allowed but logged as a
// quality-suboptimal choice.
func (g *Guard) Authorize(useCase UseCase, engine Engine) (*Decision, error) {
	spec, ok := engineSpecs[engine]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q: %w", engine, ErrForbiddenRoute)
	}

	decision := &Decision{
		UseCase:     useCase,
		Engine:      engine,
		Description: spec.Description,
	}

	switch useCase {
	case UseCaseTryOn:
		if engine == EngineCreativeFree {
			return nil, fmt.Errorf("try-on must not use the free-creative engine: %w", ErrForbiddenRoute)
		}
	case UseCaseUGC, UseCaseCampaign:
		if spec.IdentityCritical {
			decision.Warning = "identity engine for non-tryon use case; output quality may be suboptimal"
		}
	default:
		return nil, fmt.Errorf("unknown use case %q: %w", useCase, ErrForbiddenRoute)
	}

	entry := g.log.WithFields(logrus.Fields{
		"use_case": useCase,
		"engine":   engine,
		"model":    spec.ModelID,
		"desc":     spec.Description,
	})
	if decision.Warning != "" {
		entry.Warn(decision.Warning)
	} else {
		entry.Info("generation route authorized")
	}

	return decision, nil
}
