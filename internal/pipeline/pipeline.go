package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/compositor"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/config"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/facegeom"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/facelock"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/generation"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/prompt"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/routing"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/scene"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/similarity"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/pkg/imgutil"
)

const outputQuality = 95

// Generator abstracts the generation invoker for testability.
type Generator interface {
	Invoke(ctx context.Context, req generation.Request) (*generation.Result, error)
}

// Request is one try-on generation request.
type Request struct {
	SessionID string
	UseCase   routing.UseCase
	Engine    routing.Engine

	IdentityImage      []byte
	GarmentImage       []byte
	GarmentDescription string

	Scene       scene.Request
	AspectRatio string

	// Differentiate appends the strict variant-differentiation block;
	// set by callers regenerating a too-similar variant run.
	Differentiate bool
}

// Pipeline wires the full identity-lock generation flow. Steps within
// one attempt run strictly sequentially; attempts across sessions are
// fully independent.
type Pipeline struct {
	guard     *routing.Guard
	resolver  *scene.Resolver
	locks     *facelock.Store
	assembler *prompt.Assembler
	generator Generator
	comp      *compositor.Compositor
	gate      *similarity.Gate
	provider  facegeom.Provider
	selector  *facegeom.Selector
	validator VariantValidator

	// workers bounds CPU-bound image work so it doesn't serialize
	// against network waits.
	workers *semaphore.Weighted
	log     logrus.FieldLogger
}

// Options collects pipeline dependencies.
type Options struct {
	Config    *config.Config
	Guard     *routing.Guard
	Resolver  *scene.Resolver
	Locks     *facelock.Store
	Assembler *prompt.Assembler
	Generator Generator
	Composite *compositor.Compositor
	Gate      *similarity.Gate
	Provider  facegeom.Provider
	Selector  *facegeom.Selector
	Validator VariantValidator
	Logger    logrus.FieldLogger
}

// New assembles a Pipeline.
func New(opts Options) *Pipeline {
	workerCount := 4
	if opts.Config != nil && opts.Config.MaxImageWorkers > 0 {
		workerCount = opts.Config.MaxImageWorkers
	}
	return &Pipeline{
		guard:     opts.Guard,
		resolver:  opts.Resolver,
		locks:     opts.Locks,
		assembler: opts.Assembler,
		generator: opts.Generator,
		comp:      opts.Composite,
		gate:      opts.Gate,
		provider:  opts.Provider,
		selector:  opts.Selector,
		validator: opts.Validator,
		workers:   semaphore.NewWeighted(int64(workerCount)),
		log:       opts.Logger,
	}
}

// Run executes one GenerationAttempt: routing, scene resolution and
// identity lock, prompt assembly, generation, face selection,
// compositing, and the similarity gate. The returned attempt always
// carries its stage trail, also on failure.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Attempt, error) {
	attempt := &Attempt{
		ID:        uuid.NewString(),
		SessionID: req.SessionID,
		UseCase:   req.UseCase,
		Engine:    req.Engine,
	}
	log := p.log.WithFields(logrus.Fields{"attempt": attempt.ID, "session": req.SessionID})

	if len(req.IdentityImage) == 0 || len(req.GarmentImage) == 0 {
		return attempt, fmt.Errorf("identity and garment images are required: %w", ErrBadInput)
	}

	// Stage 1: routing. Must run before any external call.
	start := time.Now()
	spec, err := p.authorize(req)
	if err != nil {
		attempt.record(1, "Engine Routing", StageFail, start, err.Error())
		return attempt, err
	}
	attempt.record(1, "Engine Routing", StagePass, start, spec.Description)

	// Stage 2: scene resolution and identity lock run concurrently;
	// neither depends on the other. The lock is only extracted for
	// engines that composite.
	start = time.Now()
	var lock *facelock.State
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		attempt.Scene = p.resolver.Resolve(gctx, req.Scene)
		return nil
	})
	if spec.PixelCorrection {
		g.Go(func() error {
			var lockErr error
			lock, lockErr = p.locks.Acquire(gctx, req.SessionID, req.IdentityImage)
			return lockErr
		})
	}
	if err := g.Wait(); err != nil {
		attempt.record(2, "Scene + Face Lock", StageFail, start, err.Error())
		return attempt, fmt.Errorf("acquire face lock: %w", err)
	}
	if spec.PixelCorrection {
		attempt.record(2, "Scene + Face Lock", StagePass, start, attempt.Scene.PresetID)
	} else {
		attempt.record(2, "Scene Resolution", StagePass, start, attempt.Scene.PresetID)
		attempt.record(2, "Face Lock", StageSkip, start, "pixel correction disabled for engine")
	}

	// Stage 3: prompt assembly with the biometric filter.
	start = time.Now()
	assembled, err := p.assembler.Assemble(req.UseCase, spec, attempt.Scene, req.GarmentDescription)
	if err != nil {
		attempt.record(3, "Prompt Assembly", StageFail, start, err.Error())
		return attempt, err
	}
	if req.Differentiate {
		assembled = prompt.WithVariantDifferentiation(assembled)
	}
	attempt.Prompt = assembled
	attempt.record(3, "Prompt Assembly", StagePass, start, "")

	// Stage 4: generation, the only model network call.
	start = time.Now()
	genReq := generation.Request{
		ModelID:     assembled.ModelID,
		Temperature: assembled.Temperature,
		Prompt:      assembled.Text,
		AspectRatio: req.AspectRatio,
		Images: []generation.ReferenceImage{
			{Data: req.IdentityImage, Label: "identity reference"},
			{Data: req.GarmentImage, Label: "garment reference"},
		},
	}
	if lock != nil {
		genReq.Images = append(genReq.Images, generation.ReferenceImage{
			Data: lock.FaceCropJPEG, Label: "locked face crop",
		})
	}
	genResult, err := p.generator.Invoke(ctx, genReq)
	if err != nil {
		attempt.record(4, "Generation", StageFail, start, err.Error())
		return attempt, err
	}
	attempt.record(4, "Generation", StagePass, start, fmt.Sprintf("%d bytes", len(genResult.Data)))

	if !spec.PixelCorrection {
		// Creative engines return the raw output; there is no lock to
		// composite and no identity gate to clear.
		start = time.Now()
		attempt.record(5, "Face Compositing", StageSkip, start, "pixel correction disabled for engine")
		attempt.Image = genResult.Data
		attempt.MimeType = genResult.MimeType
		attempt.Accepted = true
		return attempt, nil
	}

	// Stages 5-7 are CPU-bound; run them under the worker limit.
	if err := p.workers.Acquire(ctx, 1); err != nil {
		return attempt, err
	}
	defer p.workers.Release(1)

	// Stage 5: face selection in the generated image.
	start = time.Now()
	genImg, err := imgutil.Decode(genResult.Data)
	if err != nil {
		attempt.record(5, "Face Selection", StageFail, start, err.Error())
		return attempt, fmt.Errorf("decode generated image: %w", err)
	}
	faces, err := p.provider.Detect(genImg)
	if err != nil {
		attempt.record(5, "Face Selection", StageFail, start, err.Error())
		return attempt, fmt.Errorf("detect faces in generated image: %w", err)
	}
	subject, err := p.selector.SelectPrimaryFace(faces, genImg.Bounds().Dx(), genImg.Bounds().Dy())
	if err != nil {
		attempt.record(5, "Face Selection", StageFail, start, err.Error())
		return attempt, err
	}
	attempt.record(5, "Face Selection", StagePass, start, fmt.Sprintf("%d candidate(s)", len(faces)))

	// Stage 6: composite the locked face back over the core region.
	start = time.Now()
	composited, err := p.comp.CompositeFaceBack(genImg, lock.FaceCrop, subject.Box)
	if err != nil {
		attempt.record(6, "Face Compositing", StageFail, start, err.Error())
		return attempt, fmt.Errorf("composite face: %w", err)
	}
	attempt.record(6, "Face Compositing", StagePass, start, "")

	// Stage 7: similarity gate. On failure the pre-gate image is
	// discarded; the caller never receives partially-trusted pixels.
	start = time.Now()
	region := subject.Box.Rect()
	gateResult, err := p.gate.AssertImproved(
		lock.FaceCrop,
		imgutil.Crop(genImg, region),
		imgutil.Crop(composited.Image, region),
	)
	attempt.SimBefore = &gateResult.SimBefore
	attempt.SimAfter = &gateResult.SimAfter
	if err != nil {
		attempt.record(7, "Similarity Gate", StageFail, start,
			fmt.Sprintf("before=%.3f after=%.3f", gateResult.SimBefore, gateResult.SimAfter))
		return attempt, err
	}
	attempt.record(7, "Similarity Gate", StagePass, start,
		fmt.Sprintf("before=%.3f after=%.3f", gateResult.SimBefore, gateResult.SimAfter))

	data, err := imgutil.EncodeJPEG(composited.Image, outputQuality)
	if err != nil {
		return attempt, fmt.Errorf("encode output: %w", err)
	}
	attempt.Image = data
	attempt.MimeType = "image/jpeg"
	attempt.Accepted = true

	log.WithFields(logrus.Fields{
		"sim_before": gateResult.SimBefore,
		"sim_after":  gateResult.SimAfter,
	}).Info("attempt accepted")

	return attempt, nil
}

func (p *Pipeline) authorize(req Request) (routing.Spec, error) {
	if _, err := p.guard.Authorize(req.UseCase, req.Engine); err != nil {
		return routing.Spec{}, err
	}
	spec, ok := routing.EngineSpec(req.Engine)
	if !ok {
		return routing.Spec{}, fmt.Errorf("unknown engine %q: %w", req.Engine, routing.ErrForbiddenRoute)
	}
	return spec, nil
}
