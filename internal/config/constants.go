package config

// Model identifiers per engine. These are tuned together with the fixed
// temperatures below; neither is request-tunable.
const (
	ModelIdentityFast   = "gemini-2.5-flash-image"
	ModelIdentityLocked = "gemini-3-pro-image-preview"
	ModelCreativeFree   = "gemini-2.5-flash-image"

	DefaultReasoningModel = "gemini-3-pro-preview"
)

// Fixed sampling temperatures per engine. Temperature variance is a
// primary cause of identity drift, so identity-critical engines run
// near-deterministic.
const (
	TemperatureIdentityFast   = 0.08
	TemperatureIdentityLocked = 0.05
	TemperatureCreativeFree   = 0.30
)

// Similarity gate thresholds. Tuned for the channel-statistics metric;
// re-tune before swapping in a different metric.
const (
	MinSimilarityImprovement = 0.05
	MinSimilarityFloor       = 0.80
)

// Face compositing and selection thresholds.
const (
	// MaxFeatherRadiusPx is a hard cap: wider feathers visibly blur
	// identity-defining detail into the generated surroundings.
	MaxFeatherRadiusPx = 4

	// MinFaceAreaRatio drops detected faces smaller than this fraction
	// of the largest face (mirrors, posters, background people).
	MinFaceAreaRatio = 0.60

	MaxYawDegrees  = 30.0
	MaxRollDegrees = 20.0
)

// MaxTransientRetries bounds automatic retries of external calls that
// failed with a transport-level error. Content-policy and validation
// failures are never retried.
const MaxTransientRetries = 1
