package pipeline

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/variants"
)

// VariantValidator checks a finished variant run for pairwise
// distinctness.
type VariantValidator interface {
	Validate(ctx context.Context, candidates []variants.Candidate) variants.Result
}

// variantMoods is the fixed mood plan for a three-variant run.
var variantMoods = []string{
	variants.MoodEditorial,
	variants.MoodCandid,
	variants.MoodEnvironmental,
}

// VariantRun is the outcome of one multi-variant request.
type VariantRun struct {
	Attempts   []*Attempt
	Validation variants.Result
	// TooSimilar suggests regenerating with Differentiate set.
	TooSimilar bool
}

// RunVariants executes three independent attempts, one per mood, then
// validates the accepted outputs for pairwise distinctness. Each
// attempt is a full pipeline run; one failing attempt fails the run.
func (p *Pipeline) RunVariants(ctx context.Context, req Request) (*VariantRun, error) {
	attempts := make([]*Attempt, len(variantMoods))

	g, gctx := errgroup.WithContext(ctx)
	for i, mood := range variantMoods {
		i, mood := i, mood
		g.Go(func() error {
			variantReq := req
			variantReq.Scene.VariantLabel = mood

			attempt, err := p.Run(gctx, variantReq)
			attempts[i] = attempt
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return &VariantRun{Attempts: attempts}, err
	}

	candidates := make([]variants.Candidate, 0, len(attempts))
	for i, attempt := range attempts {
		candidates = append(candidates, variants.Candidate{
			Mood:  variantMoods[i],
			Image: attempt.Image,
		})
	}

	validation := p.validator.Validate(ctx, candidates)
	if validation.TooSimilar {
		p.log.WithFields(logrus.Fields{
			"session": req.SessionID,
			"pairs":   len(validation.Pairs),
		}).Warn("variant run too similar, regeneration with differentiation advised")
	}

	return &VariantRun{
		Attempts:   attempts,
		Validation: validation,
		TooSimilar: validation.TooSimilar,
	}, nil
}
