package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jobsift/jobsift/internal/assist"
	"github.com/jobsift/jobsift/internal/document"
	"github.com/jobsift/jobsift/internal/scrape"
	"github.com/jobsift/jobsift/internal/search"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeScraper struct{ posting scrape.Posting }

func (f fakeScraper) Extract(context.Context, string) scrape.Posting { return f.posting }

type fakeSearcher struct{ out search.Outcome }

func (f fakeSearcher) Search(context.Context, search.Query) search.Outcome { return f.out }

type fakeAssistant struct {
	available bool
	reply     string
}

func (f fakeAssistant) Available() bool { return f.available }
func (f fakeAssistant) CustomizeCV(context.Context, string, string, string, string) (string, error) {
	return f.reply, nil
}
func (f fakeAssistant) CoverLetter(context.Context, string, string, string, string, string) (string, error) {
	return f.reply, nil
}
func (f fakeAssistant) ResearchCompany(context.Context, string, string) (assist.CompanyResearch, error) {
	return assist.CompanyResearch{Overview: f.reply}, nil
}

func testServer(t *testing.T) *Server {
	t.Helper()
	files, err := document.NewProcessor(t.TempDir(), document.NewExtractor())
	if err != nil {
		t.Fatalf("new processor: %v", err)
	}
	return &Server{
		Scraper: fakeScraper{posting: scrape.Posting{Title: "Gopher", Source: "generic"}},
		Files:   files,
		Search:  fakeSearcher{out: search.Outcome{Available: true, Jobs: []search.Result{}}},
		Assist:  fakeAssistant{available: true, reply: "generated"},
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestScrapeEndpoint(t *testing.T) {
	r := testServer(t).Router()

	w := doJSON(t, r, http.MethodPost, "/api/scrape", map[string]string{"url": "https://example.org/job/1"})
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool           `json:"success"`
		JobInfo scrape.Posting `json:"job_info"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.JobInfo.Title != "Gopher" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestScrapeEndpoint_MissingURL(t *testing.T) {
	r := testServer(t).Router()
	w := doJSON(t, r, http.MethodPost, "/api/scrape", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSearchEndpoint_UnavailableIs503(t *testing.T) {
	s := testServer(t)
	s.Search = fakeSearcher{out: search.Outcome{}}
	w := doJSON(t, s.Router(), http.MethodPost, "/api/search", map[string]any{"term": "go"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestSearchEndpoint_EmptyResultIsOK(t *testing.T) {
	r := testServer(t).Router()
	w := doJSON(t, r, http.MethodPost, "/api/search", map[string]any{"term": "go", "site": "indeed"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"count":0`) {
		t.Fatalf("expected zero count, got %s", w.Body.String())
	}
}

func uploadRequest(t *testing.T, field, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/cvs", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadEndpoint_StoresAndExtracts(t *testing.T) {
	r := testServer(t).Router()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "cv_file", "resume.txt", []byte("plain cv text")))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Filepath string `json:"filepath"`
		CVText   string `json:"cv_text"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.CVText != "plain cv text" || resp.Filepath == "" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestUploadEndpoint_RejectsBadExtension(t *testing.T) {
	r := testServer(t).Router()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "cv_file", "malware.exe", []byte("nope")))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUploadEndpoint_MissingFile(t *testing.T) {
	r := testServer(t).Router()

	req := httptest.NewRequest(http.MethodPost, "/api/cvs", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestListAndFetchCVs(t *testing.T) {
	s := testServer(t)
	r := s.Router()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "cv_file", "resume.txt", []byte("listed cv")))
	if w.Code != http.StatusOK {
		t.Fatalf("upload failed: %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cvs", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list failed: %d", w.Code)
	}
	var list struct {
		CVs []document.CVFile `json:"cvs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.CVs) != 1 {
		t.Fatalf("expected one cv, got %d", len(list.CVs))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cvs/"+list.CVs[0].Filename, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("fetch failed: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "listed cv") {
		t.Fatalf("expected extracted text, got %s", w.Body.String())
	}
}

func TestCustomizeEndpoint_UnavailableAssistantIs503(t *testing.T) {
	s := testServer(t)
	s.Assist = fakeAssistant{available: false}
	w := doJSON(t, s.Router(), http.MethodPost, "/api/customize", map[string]any{"cv_text": "cv"})
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestCustomizeEndpoint_SavesArtifact(t *testing.T) {
	s := testServer(t)
	w := doJSON(t, s.Router(), http.MethodPost, "/api/customize", map[string]any{
		"cv_text": "cv", "job_description": "jd", "job_id": 4,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		CustomizedCV string `json:"customized_cv"`
		CVPath       string `json:"cv_path"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.CustomizedCV != "generated" || !strings.Contains(resp.CVPath, "custom_cv_1_4_") {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestResearchEndpoint(t *testing.T) {
	s := testServer(t)
	w := doJSON(t, s.Router(), http.MethodPost, "/api/research", map[string]any{"company": "Acme"})
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "generated") {
		t.Fatalf("expected research payload, got %s", w.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	r := testServer(t).Router()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
