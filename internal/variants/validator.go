package variants

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/reasoning"
)

// Intended moods for a three-variant run.
const (
	MoodEditorial     = "editorial"
	MoodCandid        = "candid"
	MoodEnvironmental = "environmental"
)

// MinDifferenceScore is the floor below which a variant pair counts as
// too similar and the run should be regenerated with the strict
// differentiation block.
const MinDifferenceScore = 30

// Candidate is one generated variant tagged with its intended mood.
type Candidate struct {
	Mood  string
	Image []byte
}

// PairScore is the judged difference of one variant pair.
type PairScore struct {
	MoodA      string
	MoodB      string
	Score      int
	TooSimilar bool
}

// Result summarizes the pairwise validation.
type Result struct {
	TooSimilar  bool
	Pairs       []PairScore
	JudgeFailed bool
}

// Judge compares two variant images and returns a 0-100 visual
// difference score covering lighting, framing, background emphasis and
// pose energy.
type Judge interface {
	CompareVariants(ctx context.Context, a, b []byte) (int, error)
}

// Validator confirms that the variants of one request are pairwise
// distinct enough to be worth returning.
type Validator struct {
	judge    Judge
	minScore int
	log      logrus.FieldLogger
}

// NewValidator creates a Validator.
func NewValidator(judge Judge, log logrus.FieldLogger) *Validator {
	return &Validator{judge: judge, minScore: MinDifferenceScore, log: log}
}

// Validate scores every pair. Any pair under the floor marks the run
// too similar. A failing judge call fails open; the pair is assumed
// sufficiently different.
func (v *Validator) Validate(ctx context.Context, candidates []Candidate) Result {
	var result Result

	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			pair := PairScore{MoodA: candidates[i].Mood, MoodB: candidates[j].Mood}

			score, err := v.judge.CompareVariants(ctx, candidates[i].Image, candidates[j].Image)
			if err != nil {
				v.log.WithError(err).WithFields(logrus.Fields{
					"pair": pair.MoodA + "/" + pair.MoodB,
				}).Warn("variant comparison failed, assuming sufficiently different")
				result.JudgeFailed = true
				pair.Score = 100
				result.Pairs = append(result.Pairs, pair)
				continue
			}

			pair.Score = score
			pair.TooSimilar = score < v.minScore
			if pair.TooSimilar {
				result.TooSimilar = true
			}
			result.Pairs = append(result.Pairs, pair)
		}
	}

	v.log.WithFields(logrus.Fields{
		"pairs":       len(result.Pairs),
		"too_similar": result.TooSimilar,
	}).Info("variant validation complete")

	return result
}

const compareInstruction = `You compare two generated photographs of the same person and garment.
Score how visually DIFFERENT they are on a 0-100 scale considering
lighting, framing, background emphasis, and pose energy. 0 means
near-identical, 100 means completely different treatments. Respond with
strict JSON only: {"difference_score": <0-100>}`

// ModelJudge implements Judge on the reasoning model client.
type ModelJudge struct {
	client *reasoning.Client
}

// NewModelJudge wraps a reasoning client as a variant Judge.
func NewModelJudge(client *reasoning.Client) *ModelJudge {
	return &ModelJudge{client: client}
}

// CompareVariants implements Judge.
func (j *ModelJudge) CompareVariants(ctx context.Context, a, b []byte) (int, error) {
	var out struct {
		DifferenceScore int `json:"difference_score"`
	}
	err := j.client.Complete(ctx, compareInstruction,
		"Compare Image 1 and Image 2.", [][]byte{a, b}, &out)
	if err != nil {
		return 0, fmt.Errorf("compare variants: %w", err)
	}
	if out.DifferenceScore < 0 || out.DifferenceScore > 100 {
		return 0, fmt.Errorf("difference score %d outside 0-100", out.DifferenceScore)
	}
	return out.DifferenceScore, nil
}
