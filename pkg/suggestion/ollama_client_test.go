package suggestion_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-planner/internal/config"
	"pantry-planner/pkg/suggestion"
)

func newClientAgainst(url string) suggestion.OllamaClient {
	store := config.NewStore(config.Config{
		OllamaHost:           url,
		OllamaModel:          "llama3",
		OllamaTimeoutSeconds: 5,
	})
	return suggestion.NewOllamaClient(store)
}

func generateServer(t *testing.T, response string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)

		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
			Stream bool   `json:"stream"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req.Model)
		assert.False(t, req.Stream)
		assert.NotEmpty(t, req.Prompt)

		_ = json.NewEncoder(w).Encode(map[string]string{"response": response})
	}))
}

func TestGenerate_ReturnsModelText(t *testing.T) {
	server := generateServer(t, "cook the pasta")
	defer server.Close()

	client := newClientAgainst(server.URL)
	text, err := client.Generate(context.Background(), "what should I cook?")
	require.NoError(t, err)
	assert.Equal(t, "cook the pasta", text)
}

func TestGenerate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newClientAgainst(server.URL)
	_, err := client.Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestGenerate_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newClientAgainst(server.URL)
	_, err := client.Generate(context.Background(), "hello")
	assert.Error(t, err)
}

func TestGenerateStructured_ParsesJSON(t *testing.T) {
	server := generateServer(t, `{"meal_name":"omelette","ingredients":["eggs"]}`)
	defer server.Close()

	client := newClientAgainst(server.URL)
	value, raw, err := client.GenerateStructured(context.Background(), "suggest a meal")
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	parsed, ok := value.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "omelette", parsed["meal_name"])
}

func TestGenerateStructured_StripsCodeFences(t *testing.T) {
	server := generateServer(t, "```json\n{\"meal_name\":\"soup\"}\n```")
	defer server.Close()

	client := newClientAgainst(server.URL)
	value, _, err := client.GenerateStructured(context.Background(), "suggest a meal")
	require.NoError(t, err)

	parsed, ok := value.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "soup", parsed["meal_name"])
}

func TestGenerateStructured_NonJSONFallsBackToRaw(t *testing.T) {
	server := generateServer(t, "I would suggest an omelette.")
	defer server.Close()

	client := newClientAgainst(server.URL)
	value, raw, err := client.GenerateStructured(context.Background(), "suggest a meal")
	require.NoError(t, err)
	assert.Nil(t, value)
	assert.Equal(t, "I would suggest an omelette.", raw)
}

func TestListModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"models": []map[string]interface{}{
				{"name": "llama3", "size": int64(4200000000), "modified_at": "2026-08-01T10:00:00Z"},
				{"name": "mistral", "size": int64(3800000000), "modified_at": "2026-07-15T09:00:00Z"},
			},
		})
	}))
	defer server.Close()

	client := newClientAgainst(server.URL)
	models, err := client.ListModels(context.Background())
	require.NoError(t, err)

	require.Len(t, models, 2)
	assert.Equal(t, "llama3", models[0].Name)
	assert.Equal(t, int64(4200000000), models[0].Size)
}
