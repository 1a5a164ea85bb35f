package suggestion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"pantry-planner/domain"
	"pantry-planner/internal/config"
)

type (
	// OllamaClient is the thin boundary to the external text-generation
	// service. Callers treat it as opaque: a prompt goes in, text or a
	// parsed structured value comes out, or an error.
	OllamaClient interface {
		Generate(ctx context.Context, prompt string) (string, error)
		GenerateStructured(ctx context.Context, prompt string) (interface{}, string, error)
		ListModels(ctx context.Context) ([]domain.ModelInfo, error)
		Ping(ctx context.Context) error
	}

	ollamaClient struct {
		cfg        *config.Store
		httpClient *http.Client
	}

	generateRequest struct {
		Model  string `json:"model"`
		Prompt string `json:"prompt"`
		Stream bool   `json:"stream"`
		Format string `json:"format,omitempty"`
	}

	generateResponse struct {
		Response string `json:"response"`
	}
)

func NewOllamaClient(cfg *config.Store) OllamaClient {
	return &ollamaClient{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

func (c *ollamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, "")
}

// GenerateStructured asks the model for JSON output and parses it. When
// the model returns text that is not valid JSON, the raw text is
// returned with a nil value so callers can fall back to plain output.
func (c *ollamaClient) GenerateStructured(ctx context.Context, prompt string) (interface{}, string, error) {
	raw, err := c.generate(ctx, prompt, "json")
	if err != nil {
		return nil, "", err
	}

	cleaned := stripCodeFences(raw)

	var value interface{}
	if err := json.Unmarshal([]byte(cleaned), &value); err != nil {
		return nil, raw, nil
	}
	return value, raw, nil
}

func (c *ollamaClient) generate(ctx context.Context, prompt string, format string) (string, error) {
	snapshot := c.cfg.Current()

	ctx, cancel := context.WithTimeout(ctx, snapshot.OllamaTimeout())
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Model:  snapshot.OllamaModel,
		Prompt: prompt,
		Stream: false,
		Format: format,
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/api/generate", strings.TrimSuffix(snapshot.OllamaHost, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama error: %s - %s", resp.Status, string(bodyBytes))
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding ollama response: %w", err)
	}
	return result.Response, nil
}

func (c *ollamaClient) ListModels(ctx context.Context) ([]domain.ModelInfo, error) {
	snapshot := c.cfg.Current()

	ctx, cancel := context.WithTimeout(ctx, snapshot.OllamaTimeout())
	defer cancel()

	url := fmt.Sprintf("%s/api/tags", strings.TrimSuffix(snapshot.OllamaHost, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama error: %s", resp.Status)
	}

	var tags struct {
		Models []struct {
			Name       string `json:"name"`
			Size       int64  `json:"size"`
			ModifiedAt string `json:"modified_at"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decoding ollama response: %w", err)
	}

	models := make([]domain.ModelInfo, 0, len(tags.Models))
	for _, m := range tags.Models {
		models = append(models, domain.ModelInfo{
			Name:     m.Name,
			Size:     m.Size,
			Modified: m.ModifiedAt,
		})
	}
	return models, nil
}

func (c *ollamaClient) Ping(ctx context.Context) error {
	_, err := c.Generate(ctx, "Reply with the single word: ok")
	return err
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSuffix(s, "```")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
