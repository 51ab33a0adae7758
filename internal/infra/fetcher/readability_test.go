package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<!DOCTYPE html>
<html><head><title>Büyük İkramiye</title></head><body>
<nav>menü menü menü</nav>
<article>
<h1>Büyük İkramiye Kazanıldı</h1>
<p>Dün akşam oynanan çekilişte rekor ikramiye kazanıldı. Talihli, kuponunu
şehir merkezindeki bir bayiden aldığını açıkladı. Yetkililer ödemenin bu
hafta içinde yapılacağını duyurdu.</p>
<p>Uzmanlar bu tür büyük ikramiyelerin satışları belirgin şekilde
artırdığını belirtiyor.</p>
</article>
<footer>telif hakkı</footer>
</body></html>`

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.DenyPrivateIPs = false // httptest listens on loopback
	return cfg
}

func TestReadabilityFetcher_FetchContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	f := NewReadabilityFetcher(testConfig())
	text, err := f.FetchContent(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Contains(t, text, "rekor ikramiye")
	assert.NotContains(t, text, "<p>")
}

func TestReadabilityFetcher_FetchContent_BodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>" + strings.Repeat("a", 4096) + "</body></html>"))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxBodySize = 1024
	f := NewReadabilityFetcher(cfg)
	_, err := f.FetchContent(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBodyTooLarge))
}

func TestReadabilityFetcher_FetchContent_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewReadabilityFetcher(testConfig())
	_, err := f.FetchContent(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		deny    bool
		wantErr error
	}{
		{"valid https, no IP check", "https://example.com/article", false, nil},
		{"bad scheme", "ftp://example.com/x", true, ErrInvalidURL},
		{"empty hostname", "https:///path", true, ErrInvalidURL},
		{"loopback blocked", "http://127.0.0.1/x", true, ErrPrivateIP},
		{"localhost blocked", "http://localhost/x", true, ErrPrivateIP},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateURL(tt.url, tt.deny)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CONTENT_FETCH_ENABLED", "true")
	t.Setenv("CONTENT_FETCH_THRESHOLD", "2000")
	t.Setenv("CONTENT_FETCH_TIMEOUT", "5s")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 2000, cfg.Threshold)
	assert.Equal(t, "5s", cfg.Timeout.String())
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.MaxRedirects = 99
	assert.Error(t, cfg.Validate())
}
