package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/auth"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/bus"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/cms"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/search"
)

type Server struct {
	content *cms.CMS
	auth    *auth.Service
	idx     *search.Index
	cache   *cache.Cache
}

func NewServer(content *cms.CMS, authSvc *auth.Service, idx *search.Index) *Server {
	return &Server{
		content: content,
		auth:    authSvc,
		idx:     idx,
		cache:   cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc("/me", s.handleMe)
	mux.HandleFunc("/search", s.handleSearch)

	mux.HandleFunc("/projects", s.handleProjects)
	mux.HandleFunc("/projects/all", s.requireAdmin(s.handleAllProjects))
	mux.HandleFunc("/projects/featured", s.handleFeaturedProjects)
	mux.HandleFunc("/projects/create", s.requireAdmin(s.handleCreateProject))
	mux.HandleFunc("/projects/view", s.handleProjectView)
	mux.HandleFunc("/projects/like", s.handleProjectLike)
	mux.HandleFunc("/projects/", s.requireAdmin(resourceHandler(s, "/projects/", s.content.Projects)))

	mux.HandleFunc("/experiences", s.handleExperiences)
	mux.HandleFunc("/experiences/create", s.requireAdmin(s.handleCreateExperience))
	mux.HandleFunc("/experiences/", s.requireAdmin(resourceHandler(s, "/experiences/", s.content.Experiences)))

	mux.HandleFunc("/skills", s.handleSkills)
	mux.HandleFunc("/skills/create", s.requireAdmin(s.handleCreateSkill))
	mux.HandleFunc("/skills/", s.requireAdmin(resourceHandler(s, "/skills/", s.content.Skills)))

	mux.HandleFunc("/education", s.handleEducation)
	mux.HandleFunc("/education/create", s.requireAdmin(s.handleCreateEducation))
	mux.HandleFunc("/education/", s.requireAdmin(resourceHandler(s, "/education/", s.content.Education)))

	mux.HandleFunc("/settings", s.handleSettings)
	mux.HandleFunc("/settings/update", s.requireAdmin(s.handleUpdateSettings))

	mux.HandleFunc("/blog", s.handleBlog)
	mux.HandleFunc("/blog/all", s.requireAdmin(s.handleAllBlog))
	mux.HandleFunc("/blog/create", s.requireAdmin(s.handleCreateBlogPost))
	mux.HandleFunc("/blog/view", s.handleBlogView)
	mux.HandleFunc("/blog/like", s.handleBlogLike)
	mux.HandleFunc("/blog/slug/", s.handleBlogBySlug)
	mux.HandleFunc("/blog/", s.requireAdmin(resourceHandler(s, "/blog/", s.content.BlogPosts)))

	mux.HandleFunc("/files", s.handleFiles)
	mux.HandleFunc("/files/create", s.requireAdmin(s.handleCreateFile))
	mux.HandleFunc("/files/", s.requireAdmin(resourceHandler(s, "/files/", s.content.Files)))

	mux.HandleFunc("/summaries", s.handleSummaries)
	mux.HandleFunc("/summaries/create", s.requireAdmin(s.handleCreateSummary))
	mux.HandleFunc("/summaries/", s.requireAdmin(resourceHandler(s, "/summaries/", s.content.Summaries)))

	mux.HandleFunc("/analytics", s.requireAdmin(s.handleAnalytics))
	mux.HandleFunc("/analytics/track", s.handleAnalyticsTrack)

	mux.HandleFunc("/export/summaries", s.handleExportSummaries)
	mux.HandleFunc("/export/summaries/text", s.handleExportSummaryText)
	mux.HandleFunc("/export/files", s.handleExportFiles)

	return mux
}

// InvalidateOnChange flushes the read cache whenever the bus announces
// a committed write, so cached list responses never outlive the data
// they were built from.
func (s *Server) InvalidateOnChange(ctx context.Context, events *bus.Bus) {
	ch, cancel := events.Subscribe()
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			s.cache.Flush()
		}
	}
}

func (s *Server) getCachedData(key string, fetchFunc func() (interface{}, error)) (interface{}, error) {
	if data, found := s.cache.Get(key); found {
		return data, nil
	}

	data, err := fetchFunc()
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, data, cache.DefaultExpiration)
	return data, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
