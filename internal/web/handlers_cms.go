package web

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/cms"
)

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	data, err := s.getCachedData("projects:published", func() (interface{}, error) {
		return s.content.Projects.Published()
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load projects")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleAllProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	projects, err := s.content.Projects.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load projects")
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleFeaturedProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	data, err := s.getCachedData("projects:featured", func() (interface{}, error) {
		return s.content.Projects.Featured()
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load projects")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var project cms.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if project.Title == "" || project.Description == "" {
		writeError(w, http.StatusBadRequest, "Title and description are required")
		return
	}
	created, err := s.content.Projects.Create(project)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create project")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleProjectView(w http.ResponseWriter, r *http.Request) {
	counterHandler(w, r, s.content.Projects.IncrementViews)
}

func (s *Server) handleProjectLike(w http.ResponseWriter, r *http.Request) {
	counterHandler(w, r, s.content.Projects.IncrementLikes)
}

func (s *Server) handleBlogView(w http.ResponseWriter, r *http.Request) {
	counterHandler(w, r, s.content.BlogPosts.IncrementViews)
}

func (s *Server) handleBlogLike(w http.ResponseWriter, r *http.Request) {
	counterHandler(w, r, s.content.BlogPosts.IncrementLikes)
}

// counterHandler covers the public view/like endpoints. They take the
// target id as a query parameter so the frontend can fire them without
// building a per-resource URL.
func counterHandler[T any](w http.ResponseWriter, r *http.Request, bump func(string) (*T, error)) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id query parameter is required")
		return
	}
	item, err := bump(id)
	respondResource(w, item, err)
}

func (s *Server) handleExperiences(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	data, err := s.getCachedData("experiences", func() (interface{}, error) {
		return s.content.Experiences.List()
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load experiences")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleCreateExperience(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var experience cms.Experience
	if err := json.NewDecoder(r.Body).Decode(&experience); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if experience.Title == "" || experience.Company == "" {
		writeError(w, http.StatusBadRequest, "Title and company are required")
		return
	}
	created, err := s.content.Experiences.Create(experience)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create experience")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if category := r.URL.Query().Get("category"); category != "" {
		skills, err := s.content.Skills.ByCategory(cms.SkillCategory(category))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load skills")
			return
		}
		writeJSON(w, http.StatusOK, skills)
		return
	}
	data, err := s.getCachedData("skills", func() (interface{}, error) {
		return s.content.Skills.List()
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load skills")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleCreateSkill(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var skill cms.Skill
	if err := json.NewDecoder(r.Body).Decode(&skill); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if skill.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	created, err := s.content.Skills.Create(skill)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create skill")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleEducation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	data, err := s.getCachedData("education", func() (interface{}, error) {
		return s.content.Education.List()
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load education")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleCreateEducation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var education cms.Education
	if err := json.NewDecoder(r.Body).Decode(&education); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if education.Degree == "" || education.School == "" {
		writeError(w, http.StatusBadRequest, "Degree and school are required")
		return
	}
	created, err := s.content.Education.Create(education)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create education entry")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	settings, err := s.content.Settings.Get()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil || !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	settings, err := s.content.Settings.Update(func(current *cms.Settings) {
		_ = json.Unmarshal(body, current)
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleBlog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	data, err := s.getCachedData("blog:published", func() (interface{}, error) {
		return s.content.BlogPosts.Published()
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load blog posts")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleAllBlog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	posts, err := s.content.BlogPosts.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load blog posts")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) handleCreateBlogPost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var post cms.BlogPost
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if post.Title == "" || post.Content == "" {
		writeError(w, http.StatusBadRequest, "Title and content are required")
		return
	}
	created, err := s.content.BlogPosts.Create(post)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create blog post")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleBlogBySlug(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	postSlug := r.URL.Path[len("/blog/slug/"):]
	if postSlug == "" {
		writeError(w, http.StatusBadRequest, "Slug is required")
		return
	}
	post, err := s.content.BlogPosts.GetBySlug(postSlug)
	respondResource(w, post, err)
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	data, err := s.getCachedData("files", func() (interface{}, error) {
		return s.content.Files.List()
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load files")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleCreateFile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var file cms.StudyFile
	if err := json.NewDecoder(r.Body).Decode(&file); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if file.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	created, err := s.content.Files.Create(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create file record")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleSummaries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	data, err := s.getCachedData("summaries", func() (interface{}, error) {
		return s.content.Summaries.List()
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load summaries")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleCreateSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var summary cms.Summary
	if err := json.NewDecoder(r.Body).Decode(&summary); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if summary.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	created, err := s.content.Summaries.Create(summary)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create summary")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	records, err := s.content.Analytics.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load analytics")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleAnalyticsTrack(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var req struct {
		Path string `json:"path"`
	}
	// The body is optional; a bare POST still counts a page view.
	_ = json.NewDecoder(r.Body).Decode(&req)

	record, err := s.content.Analytics.Track(func(a *cms.Analytics) {
		a.PageViews++
		if req.Path == "" {
			return
		}
		for i := range a.PopularPages {
			if a.PopularPages[i].Path == req.Path {
				a.PopularPages[i].Views++
				return
			}
		}
		a.PopularPages = append(a.PopularPages, cms.PageStat{Path: req.Path, Views: 1})
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record page view")
		return
	}
	writeJSON(w, http.StatusOK, record)
}
