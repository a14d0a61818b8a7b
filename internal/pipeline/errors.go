package pipeline

import (
	"context"
	"errors"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/facegeom"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/generation"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/httpx"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/prompt"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/routing"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/similarity"
)

// ErrBadInput marks a rejected request: missing or undecodable images,
// missing garment data. Surfaced to the caller; never retried by the
// core.
var ErrBadInput = errors.New("invalid request input")

// Category classifies an attempt failure so the caller-facing layer
// can distinguish "try a different photo" from "try again" from
// "internal error".
type Category int

const (
	CategoryUnknown Category = iota
	// CategoryPolicy: configuration/policy violations. Always fatal,
	// never retried.
	CategoryPolicy
	// CategoryInput: bad request input; the caller should change it.
	CategoryInput
	// CategoryDetection: no usable face in the generated image. The
	// caller may retry the whole attempt; the core does not.
	CategoryDetection
	// CategorySimilarity: generation succeeded but failed the identity
	// check; the pre-gate image was discarded.
	CategorySimilarity
	// CategoryTransient: external service failure that survived the
	// bounded retry.
	CategoryTransient
	// CategoryCanceled: the caller aborted the request.
	CategoryCanceled
)

// Classify maps an attempt error onto its taxonomy category.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryUnknown
	case errors.Is(err, routing.ErrForbiddenRoute),
		errors.Is(err, prompt.ErrBiometricDescriptor),
		errors.Is(err, generation.ErrImageCount):
		return CategoryPolicy
	case errors.Is(err, ErrBadInput):
		return CategoryInput
	case errors.Is(err, facegeom.ErrNoFace):
		return CategoryDetection
	case errors.Is(err, similarity.ErrRejected):
		return CategorySimilarity
	case errors.Is(err, httpx.ErrUnavailable):
		return CategoryTransient
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CategoryCanceled
	default:
		return CategoryUnknown
	}
}

// String implements fmt.Stringer.
func (c Category) String() string {
	switch c {
	case CategoryPolicy:
		return "policy-violation"
	case CategoryInput:
		return "input-error"
	case CategoryDetection:
		return "detection-failure"
	case CategorySimilarity:
		return "similarity-rejected"
	case CategoryTransient:
		return "service-unavailable"
	case CategoryCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}
