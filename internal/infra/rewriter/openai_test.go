package rewriter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRewriterConfig() Config {
	return Config{
		Provider:          ProviderOpenAI,
		Model:             "gpt-4o-mini",
		MaxTokens:         1024,
		Timeout:           5 * time.Second,
		RequestsPerMinute: 0, // no pacing in tests
	}
}

func chatCompletionResponse(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message": map[string]any{
				"role":    "assistant",
				"content": content,
			},
		}},
	}
}

func TestOpenAI_Rewrite(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		gotPrompt = req.Messages[0].Content

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletionResponse(
			"BAŞLIK: Yeni Bonus Dönemi\nKISA AÇIKLAMA: Özet.\nANA İÇERİK: Detaylı metin."))
	}))
	defer srv.Close()

	o := NewOpenAIWithBaseURL("test-key", srv.URL, testRewriterConfig())
	o.metricsRecorder = NoopCallMetrics{}

	result, err := o.Rewrite(context.Background(), "Source Title", "Source content here.")
	require.NoError(t, err)

	assert.Equal(t, "Yeni Bonus Dönemi", result.Title)
	assert.Equal(t, "Özet.", result.Excerpt)
	assert.Equal(t, "Detaylı metin.", result.Body)

	assert.Contains(t, gotPrompt, "Source Title")
	assert.Contains(t, gotPrompt, "Source content here.")
	assert.Contains(t, gotPrompt, "BAŞLIK:")
}

func TestOpenAI_GenerateMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletionResponse(
			"SEO BAŞLIK: Bonus Dönemi\nMETA AÇIKLAMA: Açıklama.\nETİKETLER: bonus, casino, bahis, kampanya"))
	}))
	defer srv.Close()

	o := NewOpenAIWithBaseURL("test-key", srv.URL, testRewriterConfig())
	o.metricsRecorder = NoopCallMetrics{}

	meta, err := o.GenerateMetadata(context.Background(), "Başlık", "Gövde.")
	require.NoError(t, err)

	assert.Equal(t, "Bonus Dönemi", meta.MetaTitle)
	assert.Equal(t, "Açıklama.", meta.MetaDescription)
	assert.Len(t, meta.Tags, 4)
}

func TestOpenAI_Rewrite_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"upstream down"}}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	o := NewOpenAIWithBaseURL("test-key", srv.URL, testRewriterConfig())
	o.metricsRecorder = NoopCallMetrics{}

	_, err := o.Rewrite(context.Background(), "t", "c")
	assert.Error(t, err, "non-OK gateway response is an item-level error")
}

func TestOpenAI_Rewrite_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletionResponse(""))
	}))
	defer srv.Close()

	o := NewOpenAIWithBaseURL("test-key", srv.URL, testRewriterConfig())
	o.metricsRecorder = NoopCallMetrics{}

	_, err := o.Rewrite(context.Background(), "t", "c")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("REWRITER_TYPE", "openai")
	t.Setenv("REWRITER_MODEL", "gpt-4o")
	t.Setenv("REWRITER_REQUESTS_PER_MINUTE", "30")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, 30, cfg.RequestsPerMinute)
}

func TestLoadConfig_UnknownProvider(t *testing.T) {
	t.Setenv("REWRITER_TYPE", "gemini")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestNew_SelectsProvider(t *testing.T) {
	cfg := testRewriterConfig()
	rw, err := New(cfg, "key")
	require.NoError(t, err)
	_, ok := rw.(*OpenAI)
	assert.True(t, ok)

	cfg.Provider = ProviderClaude
	rw, err = New(cfg, "key")
	require.NoError(t, err)
	_, ok = rw.(*Claude)
	assert.True(t, ok)
}
