package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load loads and validates configuration from environment variables.
// A .env file is honored when present so local runs don't need an
// exported environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		// Default values
		ImageModelBaseURL:     "https://generativelanguage.googleapis.com",
		ImageModelAPIVersion:  "v1beta",
		ReasoningModelID:      DefaultReasoningModel,
		RequestTimeout:        90 * time.Second,
		GenerationTimeout:     180 * time.Second,
		LockTTL:               30 * time.Minute,
		MaxImageWorkers:       4,
		MinSimilarityGain:     MinSimilarityImprovement,
		MinAbsoluteSimilarity: MinSimilarityFloor,
		FeatherRadius:         MaxFeatherRadiusPx,
	}

	cfg.APIKey = strings.TrimSpace(os.Getenv("GENAI_API_KEY"))

	if val := getEnv("GENAI_BASE_URL"); val != "" {
		cfg.ImageModelBaseURL = strings.TrimRight(val, "/")
	}
	if val := getEnv("GENAI_API_VERSION"); val != "" {
		cfg.ImageModelAPIVersion = val
	}
	if val := getEnv("REASONING_MODEL"); val != "" {
		cfg.ReasoningModelID = val
	}
	if val := getEnvInt("REQUEST_TIMEOUT_SECONDS"); val > 0 {
		cfg.RequestTimeout = time.Duration(val) * time.Second
	}
	if val := getEnvInt("GENERATION_TIMEOUT_SECONDS"); val > 0 {
		cfg.GenerationTimeout = time.Duration(val) * time.Second
	}
	if val := getEnvInt("FACE_LOCK_TTL_MINUTES"); val > 0 {
		cfg.LockTTL = time.Duration(val) * time.Minute
	}
	if val := getEnv("PIGO_CASCADE_PATH"); val != "" {
		cfg.PigoCascadePath = val
	}
	if val := getEnvInt("MAX_IMAGE_WORKERS"); val > 0 {
		cfg.MaxImageWorkers = val
	}
	if val := getEnvFloat("MIN_SIMILARITY_GAIN"); val > 0 {
		cfg.MinSimilarityGain = val
	}
	if val := getEnvFloat("MIN_ABSOLUTE_SIMILARITY"); val > 0 {
		cfg.MinAbsoluteSimilarity = val
	}
	if val := getEnvInt("FEATHER_RADIUS"); val > 0 {
		cfg.FeatherRadius = val
	}
	if cfg.FeatherRadius > MaxFeatherRadiusPx {
		// Larger feathers bleed identity detail into the generated scene.
		cfg.FeatherRadius = MaxFeatherRadiusPx
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GENAI_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getEnvInt(key string) int {
	value := getEnv(key)
	if value == "" {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return parsed
}

func getEnvFloat(key string) float64 {
	value := getEnv(key)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return parsed
}
