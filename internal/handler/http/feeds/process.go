// Package feeds exposes the pipeline trigger endpoint.
package feeds

import (
	"context"
	"log/slog"
	"net/http"

	"betpress/internal/handler/http/respond"
	"betpress/internal/usecase/process"
)

// Runner runs one full ingestion pass over all active feeds.
type Runner interface {
	ProcessAll(ctx context.Context) (*process.RunSummary, error)
}

// ProcessResponse is the run summary returned to the caller.
type ProcessResponse struct {
	Success   bool                 `json:"success"`
	Processed int                  `json:"processed"`
	Articles  []process.ArticleRef `json:"articles"`
	Errors    []string             `json:"errors"`
}

// ProcessHandler serves POST /api/feeds/process. The run executes
// synchronously; the response reports how many articles were published
// and which feeds failed.
type ProcessHandler struct {
	Runner Runner
	Logger *slog.Logger
}

func (h ProcessHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Runner.ProcessAll(r.Context())
	if err != nil {
		h.Logger.Error("feed processing run failed", slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := ProcessResponse{
		Success:   true,
		Processed: summary.Processed,
		Articles:  summary.Articles,
		Errors:    summary.Errors,
	}
	if resp.Articles == nil {
		resp.Articles = []process.ArticleRef{}
	}
	if resp.Errors == nil {
		resp.Errors = []string{}
	}
	respond.JSON(w, http.StatusOK, resp)
}

// Register mounts the processing endpoint on mux.
func Register(mux *http.ServeMux, runner Runner, logger *slog.Logger) {
	mux.Handle("POST /api/feeds/process", ProcessHandler{Runner: runner, Logger: logger})
}
