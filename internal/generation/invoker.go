package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/config"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/httpx"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/pkg/imgutil"
)

// Reference image slots. Exactly two or three images travel with every
// call: identity, garment, and optionally the locked face crop.
const (
	minReferenceImages = 2
	maxReferenceImages = 3
)

// ErrImageCount is a contract violation: the wrong number of reference
// images for a generation call. Never retried; the call is aborted
// before any network I/O.
var ErrImageCount = errors.New("generation requires exactly 2 or 3 reference images")

// ReferenceImage is one inline image attached to a generation call.
type ReferenceImage struct {
	Data  []byte
	Label string
}

// Request carries everything the generative model needs for one
// attempt.
type Request struct {
	ModelID     string
	Temperature float64
	Prompt      string
	AspectRatio string
	Images      []ReferenceImage
}

// Result is the raw generation output.
type Result struct {
	Data     []byte
	MimeType string
	ModelID  string
}

// Invoker is the single integration point with the external generative
// image model; no other component performs network I/O to it.
type Invoker struct {
	baseURL    string
	apiVersion string
	apiKey     string
	httpClient *http.Client
	log        logrus.FieldLogger
}

// Options configures the Invoker.
type Options struct {
	BaseURL    string
	APIVersion string
	APIKey     string
	HTTPClient *http.Client
	Logger     logrus.FieldLogger
}

// NewInvoker creates the generation client.
func NewInvoker(opts Options) *Invoker {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	apiVersion := opts.APIVersion
	if apiVersion == "" {
		apiVersion = "v1beta"
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = httpx.NewClient(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Invoker{
		baseURL:    baseURL,
		apiVersion: apiVersion,
		apiKey:     opts.APIKey,
		httpClient: httpClient,
		log:        logger,
	}
}

// Invoke sends the prompt and reference images to the model and returns
// the generated image bytes. Transport failures get one bounded retry;
// content and validation failures do not.
func (inv *Invoker) Invoke(ctx context.Context, req Request) (*Result, error) {
	if len(req.Images) < minReferenceImages || len(req.Images) > maxReferenceImages {
		return nil, fmt.Errorf("%d images attached: %w", len(req.Images), ErrImageCount)
	}
	if req.ModelID == "" {
		return nil, fmt.Errorf("model id is required")
	}

	parts := []part{{Text: req.Prompt}}
	for i, img := range req.Images {
		label := img.Label
		if label == "" {
			label = fmt.Sprintf("reference %d", i+1)
		}
		parts = append(parts,
			part{Text: fmt.Sprintf("Image %d (%s):", i+1, label)},
			part{InlineData: &blob{
				Data:     imgutil.ToBase64(img.Data),
				MimeType: imgutil.SniffMime(img.Data),
			}},
		)
	}

	payload := generateContentRequest{
		Contents: []content{{Role: "user", Parts: parts}},
		GenerationConfig: generationConfig{
			Temperature:        req.Temperature,
			ResponseModalities: []string{"IMAGE"},
		},
	}
	if req.AspectRatio != "" {
		payload.GenerationConfig.ImageConfig = &imageConfig{AspectRatio: req.AspectRatio}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	inv.log.WithFields(logrus.Fields{
		"model":       req.ModelID,
		"temperature": req.Temperature,
		"images":      len(req.Images),
	}).Info("invoking generative model")

	url := fmt.Sprintf("%s/%s/models/%s:generateContent", inv.baseURL, inv.apiVersion, req.ModelID)
	resp, err := httpx.DoWithRetry(ctx, inv.httpClient, config.MaxTransientRetries, inv.log, func() (*http.Request, error) {
		httpReq, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("content-type", "application/json")
		httpReq.Header.Set("x-goog-api-key", inv.apiKey)
		return httpReq, nil
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("generation API %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	data, mime, err := extractImage(decoded)
	if err != nil {
		return nil, err
	}

	inv.log.WithFields(logrus.Fields{"model": req.ModelID, "bytes": len(data)}).
		Debug("generation complete")

	return &Result{Data: data, MimeType: mime, ModelID: req.ModelID}, nil
}

// extractImage returns the first inline image from the response.
func extractImage(resp generateContentResponse) ([]byte, string, error) {
	if len(resp.Candidates) == 0 {
		return nil, "", fmt.Errorf("no candidates in generation response")
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.InlineData != nil && p.InlineData.Data != "" {
			data, err := imgutil.FromBase64(p.InlineData.Data)
			if err != nil {
				return nil, "", fmt.Errorf("decode generated image: %w", err)
			}
			return data, p.InlineData.MimeType, nil
		}
	}
	return nil, "", fmt.Errorf("generation response contained no image")
}
