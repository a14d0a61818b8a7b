package config

import "time"

// Config holds all runtime configuration for the try-on core.
type Config struct {
	APIKey               string
	ImageModelBaseURL    string
	ImageModelAPIVersion string
	ReasoningModelID     string

	RequestTimeout    time.Duration // reasoning/vision calls
	GenerationTimeout time.Duration // image generation calls
	LockTTL           time.Duration // face-lock store eviction

	PigoCascadePath string // optional; enables the real face detector
	MaxImageWorkers int    // CPU-bound image work concurrency

	MinSimilarityGain     float64
	MinAbsoluteSimilarity float64
	FeatherRadius         int
}
