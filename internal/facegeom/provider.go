package facegeom

import (
	"github.com/sirupsen/logrus"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/config"
)

// SelectProvider chooses the face geometry backend: the pigo detector
// when a cascade file is configured and loadable, the aspect-ratio
// heuristic otherwise. Mirrors auto backend selection with fallback.
func SelectProvider(cfg *config.Config, log logrus.FieldLogger) Provider {
	if cfg.PigoCascadePath != "" {
		provider, err := NewPigoProvider(cfg.PigoCascadePath, log)
		if err == nil {
			log.WithField("provider", provider.Name()).Info("face geometry provider selected")
			return provider
		}
		log.WithError(err).Warn("pigo detector unavailable, falling back to heuristic estimator")
	}

	provider := NewHeuristicProvider()
	log.WithField("provider", provider.Name()).Info("face geometry provider selected")
	return provider
}
