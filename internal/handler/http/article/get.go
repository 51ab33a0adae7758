package article

import (
	"errors"
	"net/http"
	"strconv"

	"betpress/internal/handler/http/respond"
	"betpress/internal/usecase/article"
)

// GetHandler serves GET /api/articles/{id}. A non-numeric path value is
// treated as a slug, so pretty URLs resolve through the same route.
type GetHandler struct {
	Service *article.Service
}

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("id")

	if id, err := strconv.ParseInt(key, 10, 64); err == nil {
		h.write(w, func() (any, error) {
			a, err := h.Service.Get(r.Context(), id)
			if err != nil {
				return nil, err
			}
			return toDTO(a), nil
		})
		return
	}

	h.write(w, func() (any, error) {
		a, err := h.Service.GetBySlug(r.Context(), key)
		if err != nil {
			return nil, err
		}
		return toDTO(a), nil
	})
}

func (h GetHandler) write(w http.ResponseWriter, lookup func() (any, error)) {
	dto, err := lookup()
	switch {
	case err == nil:
		respond.JSON(w, http.StatusOK, dto)
	case errors.Is(err, article.ErrArticleNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	case errors.Is(err, article.ErrInvalidArticleID), errors.Is(err, article.ErrInvalidSlug):
		respond.SafeError(w, http.StatusBadRequest, err)
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}
