package article

import (
	"net/http"

	"betpress/internal/common/pagination"
	"betpress/internal/handler/http/respond"
	"betpress/internal/usecase/article"
)

// ListHandler serves GET /api/articles with page/limit query parameters.
type ListHandler struct {
	Service *article.Service
	Config  pagination.Config
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, h.Config)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.Service.ListPublished(r.Context(), params)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := ListResponse{
		Data:       make([]ListItemDTO, 0, len(result.Data)),
		Pagination: result.Pagination,
	}
	for _, a := range result.Data {
		resp.Data = append(resp.Data, toListItemDTO(a))
	}
	respond.JSON(w, http.StatusOK, resp)
}
