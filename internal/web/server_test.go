package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/auth"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/bus"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/cms"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/search"
	"github.com/Fitrah-Andhika-Ramadhan/fitlearned-backend/internal/store"
)

func newTestServer(t *testing.T) (*Server, *cms.CMS) {
	t.Helper()

	kv := store.NewMemory()
	events := bus.New()
	content := cms.New(kv, events)

	authSvc := auth.NewService(kv, "test-secret", events)
	require.NoError(t, authSvc.EnsureAdmin())

	idx, err := search.OpenMem(content)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	return NewServer(content, authSvc, idx), content
}

func loginAdmin(t *testing.T, handler http.Handler) string {
	t.Helper()

	body := bytes.NewBufferString(`{"email":"admin@fitlearned.com","password":"admin123"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp loginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.True(t, resp.Success)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	handler := srv.Handler()

	body := bytes.NewBufferString(`{"email":"admin@fitlearned.com","password":"nope"}`)
	req := httptest.NewRequest(http.MethodPost, "/login", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp loginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.False(t, resp.Success)
	require.Equal(t, "Invalid email or password", resp.Error)
}

func TestLoginThenMe(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	handler := srv.Handler()
	loginAdmin(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User *auth.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.User)
	require.Equal(t, "admin@fitlearned.com", resp.User.Email)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodPost, "/projects/create", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/projects/create", bytes.NewBufferString(`{}`))
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateProjectValidatesRequiredFields(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	handler := srv.Handler()
	token := loginAdmin(t, handler)

	req := httptest.NewRequest(http.MethodPost, "/projects/create", bytes.NewBufferString(`{"title":"Only a title"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAndPartialUpdateProject(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	handler := srv.Handler()
	token := loginAdmin(t, handler)

	body := bytes.NewBufferString(`{"title":"Portfolio","description":"My site","status":"draft"}`)
	req := httptest.NewRequest(http.MethodPost, "/projects/create", body)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created cms.Project
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	require.NotEmpty(t, created.ID)

	req = httptest.NewRequest(http.MethodPut, "/projects/"+created.ID, bytes.NewBufferString(`{"status":"published"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated cms.Project
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	require.Equal(t, cms.StatusPublished, updated.Status)
	require.Equal(t, "Portfolio", updated.Title, "fields absent from the body keep their stored values")
	require.Equal(t, created.ID, updated.ID)
}

func TestResourceNotFound(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	handler := srv.Handler()
	token := loginAdmin(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/projects/no-such-id", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublicProjectsListsOnlyPublished(t *testing.T) {
	t.Parallel()

	srv, content := newTestServer(t)
	handler := srv.Handler()

	_, err := content.Projects.Create(cms.Project{Title: "Live", Description: "x", Status: cms.StatusPublished})
	require.NoError(t, err)
	_, err = content.Projects.Create(cms.Project{Title: "Draft", Description: "x", Status: cms.StatusDraft})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var projects []cms.Project
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&projects))
	require.Len(t, projects, 1)
	require.Equal(t, "Live", projects[0].Title)
}

func TestViewCounterEndpoint(t *testing.T) {
	t.Parallel()

	srv, content := newTestServer(t)
	handler := srv.Handler()

	project, err := content.Projects.Create(cms.Project{Title: "Counted", Description: "x", Status: cms.StatusPublished})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/projects/view?id="+project.ID, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var bumped cms.Project
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&bumped))
	require.Equal(t, 1, bumped.Views)
}

func TestExportSummariesSetsDownloadHeaders(t *testing.T) {
	t.Parallel()

	srv, content := newTestServer(t)
	handler := srv.Handler()

	_, err := content.Summaries.Create(cms.Summary{Title: "Notes"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/export/summaries", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, `attachment; filename="summaries.json"`, rec.Header().Get("Content-Disposition"))

	var exported []cms.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &exported))
	require.Len(t, exported, 1)
}

func TestSearchEndpoint(t *testing.T) {
	t.Parallel()

	srv, content := newTestServer(t)
	handler := srv.Handler()

	_, err := content.Projects.Create(cms.Project{
		Title:       "Distributed tracing dashboard",
		Description: "Observability for microservices",
		Status:      cms.StatusPublished,
	})
	require.NoError(t, err)
	require.NoError(t, srv.idx.Rebuild())

	req := httptest.NewRequest(http.MethodGet, "/search?q=tracing", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Query   string          `json:"query"`
		Count   int             `json:"count"`
		Results []search.Result `json:"results"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, 1, resp.Count)

	req = httptest.NewRequest(http.MethodGet, "/search", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCachedListServesFlushedDataAfterWrite(t *testing.T) {
	t.Parallel()

	srv, content := newTestServer(t)
	handler := srv.Handler()

	fetch := func() []cms.Skill {
		req := httptest.NewRequest(http.MethodGet, "/skills", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var skills []cms.Skill
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&skills))
		return skills
	}

	require.Empty(t, fetch())

	_, err := content.Skills.Create(cms.Skill{Name: "Go", Category: cms.SkillBackend})
	require.NoError(t, err)

	// Without a flush the cached empty list is still served.
	require.Empty(t, fetch())

	srv.cache.Flush()
	require.Len(t, fetch(), 1)
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
