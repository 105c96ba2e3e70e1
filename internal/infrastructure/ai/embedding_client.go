// Package ai implements the §6 embedding-service contract, grounded on the
// teacher's gemini_client.go raw-HTTP-JSON shape (api key, base URL,
// *http.Client with a fixed timeout), adapted from text generation to an
// embeddings endpoint with asymmetric "query:"/"passage:" prefixing (§4.4).
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"routeplanner/internal/domain/repository"
)

// EmbeddingClient calls an embeddings endpoint that accepts a batch of
// input strings and returns one unit-norm vector per input.
type EmbeddingClient struct {
	apiKey         string
	baseURL        string
	httpClient     *http.Client
	requiresPrefix bool
}

// Config selects the endpoint and whether the configured model expects the
// asymmetric "query:"/"passage:" input prefix (§4.4).
type Config struct {
	APIKey         string
	BaseURL        string
	Timeout        time.Duration
	RequiresPrefix bool
}

func NewEmbeddingClient(cfg Config) *EmbeddingClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &EmbeddingClient{
		apiKey:         cfg.APIKey,
		baseURL:        cfg.BaseURL,
		httpClient:     &http.Client{Timeout: timeout},
		requiresPrefix: cfg.RequiresPrefix,
	}
}

var _ repository.Embedder = (*EmbeddingClient)(nil)

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed implements the Embedder contract: encode a single string, applying
// the asymmetric prefix when the configured model requires it.
func (c *EmbeddingClient) Embed(ctx context.Context, text string, isQuery bool) ([]float32, error) {
	input := text
	if c.requiresPrefix {
		if isQuery {
			input = "query: " + text
		} else {
			input = "passage: " + text
		}
	}

	body, err := json.Marshal(embeddingRequest{Input: []string{input}})
	if err != nil {
		return nil, fmt.Errorf("embedding: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("embedding: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("embedding: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding: upstream status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("embedding: decode response: %w", err)
	}
	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("embedding: empty response for input")
	}
	return parsed.Data[0].Embedding, nil
}
