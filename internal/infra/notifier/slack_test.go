package notifier_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"betpress/internal/domain/entity"
	"betpress/internal/infra/notifier"
)

func sampleArticle() *entity.Article {
	return &entity.Article{
		ID:          7,
		Title:       "Yeni Lisans Düzenlemesi Yürürlükte",
		Slug:        "yeni-lisans-duzenlemesi-yururlukte",
		Excerpt:     "Regülasyon değişikliği sektörde geniş yankı uyandırdı.",
		Category:    entity.CategoryRegulation,
		SourceFeed:  "İGaming Haber",
		PublishedAt: time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
	}
}

func newNotifier(url string) *notifier.SlackNotifier {
	return notifier.NewSlackNotifier(notifier.SlackConfig{
		Enabled:       true,
		WebhookURL:    url,
		PublicBaseURL: "https://betpress.example.com/",
		Timeout:       5 * time.Second,
	})
}

func TestSlackNotifier_SendsBlockKitPayload(t *testing.T) {
	var captured []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		captured, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	n := newNotifier(server.URL)
	if err := n.NotifyArticle(t.Context(), sampleArticle()); err != nil {
		t.Fatalf("NotifyArticle() error = %v", err)
	}

	var payload struct {
		Text   string `json:"text"`
		Blocks []struct {
			Type string `json:"type"`
			Text *struct {
				Text string `json:"text"`
			} `json:"text"`
		} `json:"blocks"`
	}
	if err := json.Unmarshal(captured, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if !strings.Contains(payload.Text, "Yeni Lisans Düzenlemesi Yürürlükte") {
		t.Errorf("fallback text = %q, want the article title", payload.Text)
	}
	if len(payload.Blocks) != 2 || payload.Blocks[0].Type != "section" {
		t.Fatalf("blocks = %+v, want section then context", payload.Blocks)
	}
	section := payload.Blocks[0].Text.Text
	if !strings.Contains(section, "https://betpress.example.com/haber/yeni-lisans-duzenlemesi-yururlukte") {
		t.Errorf("section text %q is missing the public article link", section)
	}
}

func TestSlackNotifier_StatusClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		retryAfter string
		check      func(t *testing.T, err error)
	}{
		{
			name:   "429 maps to RateLimitError with Retry-After",
			status: http.StatusTooManyRequests, retryAfter: "7",
			check: func(t *testing.T, err error) {
				var rl *notifier.RateLimitError
				if !errors.As(err, &rl) {
					t.Fatalf("error = %v, want RateLimitError", err)
				}
				if rl.RetryAfter != 7*time.Second {
					t.Errorf("RetryAfter = %v, want 7s", rl.RetryAfter)
				}
			},
		},
		{
			name:   "404 maps to ClientError",
			status: http.StatusNotFound,
			check: func(t *testing.T, err error) {
				var ce *notifier.ClientError
				if !errors.As(err, &ce) {
					t.Fatalf("error = %v, want ClientError", err)
				}
			},
		},
		{
			name:   "500 maps to ServerError",
			status: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				var se *notifier.ServerError
				if !errors.As(err, &se) {
					t.Fatalf("error = %v, want ServerError", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				attempts++
				if tt.retryAfter != "" {
					w.Header().Set("Retry-After", tt.retryAfter)
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			err := newNotifier(server.URL).NotifyArticle(t.Context(), sampleArticle())
			if err == nil {
				t.Fatal("NotifyArticle() should fail")
			}
			tt.check(t, err)
			if attempts != 1 {
				t.Errorf("attempts = %d, want exactly one (no retries)", attempts)
			}
		})
	}
}
