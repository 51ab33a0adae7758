package feeds

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"betpress/internal/usecase/process"
)

type stubRunner struct {
	summary *process.RunSummary
	err     error
}

func (s *stubRunner) ProcessAll(context.Context) (*process.RunSummary, error) {
	return s.summary, s.err
}

func newMux(runner Runner) *http.ServeMux {
	mux := http.NewServeMux()
	Register(mux, runner, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return mux
}

func TestProcessReturnsSummary(t *testing.T) {
	mux := newMux(&stubRunner{summary: &process.RunSummary{
		Processed: 2,
		Articles: []process.ArticleRef{
			{Title: "Derbi Sonucu", Slug: "derbi-sonucu"},
			{Title: "Yeni Slot", Slug: "yeni-slot"},
		},
		Errors: []string{"feed https://down.example.com/rss: fetch failed"},
	}})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/api/feeds/process", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp ProcessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Success || resp.Processed != 2 {
		t.Errorf("resp = %+v", resp)
	}
	if len(resp.Articles) != 2 || resp.Articles[0].Slug != "derbi-sonucu" {
		t.Errorf("articles = %+v", resp.Articles)
	}
	if len(resp.Errors) != 1 {
		t.Errorf("errors = %+v", resp.Errors)
	}
}

func TestProcessEmptyRunKeepsArraysNonNull(t *testing.T) {
	mux := newMux(&stubRunner{summary: &process.RunSummary{}})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/api/feeds/process", nil))

	body := rec.Body.String()
	if strings.Contains(body, "null") {
		t.Errorf("body has null arrays: %s", body)
	}
}

func TestProcessRunFailure(t *testing.T) {
	mux := newMux(&stubRunner{err: errors.New("list active feeds: connection refused")})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/api/feeds/process", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp["error"] == "" {
		t.Error("error field missing")
	}
	if strings.Contains(resp["error"], "connection refused") {
		t.Errorf("error leaked internals: %q", resp["error"])
	}
}

func TestProcessMethodNotAllowed(t *testing.T) {
	mux := newMux(&stubRunner{summary: &process.RunSummary{}})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/feeds/process", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
