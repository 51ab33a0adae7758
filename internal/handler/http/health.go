// Package http assembles the API's routes and cross-cutting middleware.
package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"betpress/internal/handler/http/respond"
	"betpress/internal/usecase/notify"
)

// HealthResponse is the /healthz body.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version,omitempty"`
	Checks    map[string]CheckStatus `json:"checks"`
}

// CheckStatus reports one dependency's health.
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthHandler serves GET /healthz. It pings the database and reports
// notification channel state. A failing database turns the overall
// status unhealthy (503); a tripped notification breaker only degrades it.
type HealthHandler struct {
	DB      *sql.DB
	Notify  notify.Service
	Version string
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.Version,
		Checks:    map[string]CheckStatus{},
	}
	code := http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if h.DB == nil {
		resp.Checks["database"] = CheckStatus{Status: "unhealthy", Message: "not configured"}
		resp.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	} else if err := h.DB.PingContext(ctx); err != nil {
		resp.Checks["database"] = CheckStatus{Status: "unhealthy", Message: respond.Sanitize(err.Error())}
		resp.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	} else {
		resp.Checks["database"] = CheckStatus{Status: "healthy"}
	}

	if h.Notify != nil {
		for _, ch := range h.Notify.ChannelHealth() {
			status := CheckStatus{Status: "healthy"}
			switch {
			case !ch.Enabled:
				status = CheckStatus{Status: "disabled"}
			case ch.BreakerOpen:
				status = CheckStatus{Status: "degraded", Message: "circuit breaker open"}
				if resp.Status == "healthy" {
					resp.Status = "degraded"
				}
			}
			resp.Checks["notify_"+ch.Name] = status
		}
	}

	respond.JSON(w, code, resp)
}
