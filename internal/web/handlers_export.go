package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/cms"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q query parameter is required")
		return
	}
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	results, err := s.idx.Search(query, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Search failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

func (s *Server) handleExportSummaries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	data, err := s.content.ExportSummariesJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Export failed")
		return
	}
	sendAttachment(w, "summaries.json", "application/json", data)
}

func (s *Server) handleExportFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	data, err := s.content.ExportFilesJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Export failed")
		return
	}
	sendAttachment(w, "files.json", "application/json", data)
}

func (s *Server) handleExportSummaryText(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id query parameter is required")
		return
	}
	summary, err := s.content.Summaries.Get(id)
	if err != nil {
		respondResource[cms.Summary](w, nil, err)
		return
	}
	sendAttachment(w, id+".txt", "text/plain; charset=utf-8", cms.RenderSummaryText(*summary))
}

func sendAttachment(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
