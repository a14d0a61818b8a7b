package reasoning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/config"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/httpx"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/pkg/imgutil"
)

// reasoningTemperature keeps structured judgments near-deterministic.
const reasoningTemperature = 0.1

// Client talks to the external reasoning/vision model. It is used for
// scene resolution and variant comparison; responses must be strict
// JSON matching the caller's schema. Malformed output is a failure,
// never partially parsed.
type Client struct {
	baseURL    string
	apiVersion string
	apiKey     string
	model      string
	httpClient *http.Client
	log        logrus.FieldLogger
}

// Options configures the client.
type Options struct {
	BaseURL    string
	APIVersion string
	APIKey     string
	Model      string
	HTTPClient *http.Client
	Logger     logrus.FieldLogger
}

// New creates a reasoning model client.
func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	apiVersion := opts.APIVersion
	if apiVersion == "" {
		apiVersion = "v1beta"
	}
	model := opts.Model
	if model == "" {
		model = config.DefaultReasoningModel
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = httpx.NewClient(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{
		baseURL:    baseURL,
		apiVersion: apiVersion,
		apiKey:     opts.APIKey,
		model:      model,
		httpClient: httpClient,
		log:        logger,
	}
}

// Complete sends system instructions, a user prompt and optional inline
// images, and unmarshals the model's JSON reply into out.
func (c *Client) Complete(ctx context.Context, systemInstruction, userPrompt string, images [][]byte, out interface{}) error {
	parts := []part{{Text: userPrompt}}
	for i, img := range images {
		parts = append(parts,
			part{Text: fmt.Sprintf("Image %d:", i+1)},
			part{InlineData: &blob{
				Data:     imgutil.ToBase64(img),
				MimeType: imgutil.SniffMime(img),
			}},
		)
	}

	payload := generateContentRequest{
		Contents:          []content{{Role: "user", Parts: parts}},
		SystemInstruction: &content{Role: "user", Parts: []part{{Text: systemInstruction}}},
		GenerationConfig: generationConfig{
			Temperature:      reasoningTemperature,
			ResponseMimeType: "application/json",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/models/%s:generateContent", c.baseURL, c.apiVersion, c.model)
	resp, err := httpx.DoWithRetry(ctx, c.httpClient, config.MaxTransientRetries, c.log, func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("content-type", "application/json")
		req.Header.Set("x-goog-api-key", c.apiKey)
		return req, nil
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("reasoning API %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}

	var decoded generateContentResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}

	text := extractText(decoded)
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("reasoning model returned no text content")
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("malformed judgment JSON: %w", err)
	}
	return nil
}

func extractText(resp generateContentResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
