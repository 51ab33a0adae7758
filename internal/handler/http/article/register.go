package article

import (
	"net/http"

	"betpress/internal/common/pagination"
	"betpress/internal/usecase/article"
)

// Register mounts the article read endpoints on mux.
func Register(mux *http.ServeMux, svc *article.Service, cfg pagination.Config) {
	mux.Handle("GET /api/articles", ListHandler{Service: svc, Config: cfg})
	mux.Handle("GET /api/articles/{id}", GetHandler{Service: svc})
}
