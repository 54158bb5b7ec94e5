package churn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/asset-lifecycle/internal"
)

// ModelClient talks to the external churn model service over HTTP. The
// engine only consumes scores; training and serving live elsewhere.
type ModelClient struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

type ModelClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func NewModelClient(config ModelClientConfig, logger *slog.Logger) *ModelClient {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ModelClient{
		baseURL:    config.BaseURL,
		apiKey:     config.APIKey,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type predictResponse struct {
	Probability  float64  `json:"probability"`
	Prediction   int      `json:"prediction"`
	TopFactors   []Factor `json:"top_factors"`
	ModelVersion string   `json:"model_version"`
}

// Predict posts the feature vector to the model service and maps the
// score to a risk category. Any transport or non-2xx failure surfaces as
// ErrChurnModelUnavailable so callers can degrade uniformly.
func (c *ModelClient) Predict(ctx context.Context, features Features) (*Prediction, error) {
	if c.baseURL == "" {
		return nil, internal.ErrChurnModelUnavailable
	}

	payload, err := json.Marshal(features)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal features: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+"/predict", bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create model request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("churn model request failed", "error", err)
		return nil, internal.ErrChurnModelUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.logger.Error("churn model returned non-OK status",
			"status", resp.StatusCode,
			"body", string(body))
		return nil, internal.ErrChurnModelUnavailable
	}

	var parsed predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.logger.Error("failed to decode churn model response", "error", err)
		return nil, internal.ErrChurnModelUnavailable
	}

	category, level := Categorize(parsed.Probability)
	return &Prediction{
		Probability:  parsed.Probability,
		Prediction:   parsed.Prediction,
		RiskCategory: category,
		RiskLevel:    level,
		TopFactors:   parsed.TopFactors,
		ModelVersion: parsed.ModelVersion,
	}, nil
}

// Info fetches the model service's metadata.
func (c *ModelClient) Info(ctx context.Context) (*ModelInfo, error) {
	if c.baseURL == "" {
		return nil, internal.ErrChurnModelUnavailable
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.baseURL+"/model/info", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create model info request: %w", err)
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("churn model info request failed", "error", err)
		return nil, internal.ErrChurnModelUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("churn model info returned non-OK status", "status", resp.StatusCode)
		return nil, internal.ErrChurnModelUnavailable
	}

	var info ModelInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		c.logger.Error("failed to decode churn model info", "error", err)
		return nil, internal.ErrChurnModelUnavailable
	}
	return &info, nil
}
