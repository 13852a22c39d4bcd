package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/cms"
)

// resourceRepo is the by-id slice of every repository: fetch, partial
// update, delete. Handlers decode the request body onto the fetched
// record inside the mutate callback, so absent JSON fields keep their
// stored values.
type resourceRepo[T any] interface {
	Get(id string) (*T, error)
	Update(id string, mutate func(*T)) (*T, error)
	Delete(id string) error
}

func resourceHandler[T any](s *Server, prefix string, repo resourceRepo[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, prefix)
		if id == "" || strings.Contains(id, "/") {
			writeError(w, http.StatusBadRequest, "Invalid resource path")
			return
		}

		switch r.Method {
		case http.MethodGet:
			item, err := repo.Get(id)
			respondResource(w, item, err)
		case http.MethodPut:
			body, err := io.ReadAll(r.Body)
			if err != nil || !json.Valid(body) {
				writeError(w, http.StatusBadRequest, "Invalid JSON body")
				return
			}
			item, err := repo.Update(id, func(v *T) {
				_ = json.Unmarshal(body, v)
			})
			respondResource(w, item, err)
		case http.MethodDelete:
			if err := repo.Delete(id); err != nil {
				respondResource[T](w, nil, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"message": "Resource deleted successfully"})
		default:
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	}
}

func respondResource[T any](w http.ResponseWriter, item *T, err error) {
	switch {
	case errors.Is(err, cms.ErrNotFound):
		writeError(w, http.StatusNotFound, "Resource not found")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Storage error")
	default:
		writeJSON(w, http.StatusOK, item)
	}
}
