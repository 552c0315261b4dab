package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mskaar/pensum/internal/canvas"
	"github.com/mskaar/pensum/internal/index"
	"github.com/mskaar/pensum/internal/logger"
)

type stubAnswerer struct {
	answer string
	err    error
}

func (s *stubAnswerer) Answer(ctx context.Context, question string) (string, error) {
	return s.answer, s.err
}

type stubCanvas struct {
	courses []canvas.Course
}

func (s *stubCanvas) Courses(ctx context.Context) ([]canvas.Course, error) {
	return s.courses, nil
}

func (s *stubCanvas) Assignments(ctx context.Context, courseID int) ([]canvas.Assignment, error) {
	return []canvas.Assignment{{ID: 10, Name: "Oblig 1"}}, nil
}

func (s *stubCanvas) Files(ctx context.Context, courseID int) ([]canvas.File, error) {
	return nil, nil
}

func (s *stubCanvas) FileDownloadURL(ctx context.Context, courseID, fileID int) (string, error) {
	return "https://files.example.com/signed", nil
}

func (s *stubCanvas) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("%PDF-1.4")), nil
}

func testHandler(answerer Answerer, store *index.Store) *Handler {
	refresh := func(ctx context.Context) (int, error) { return store.Len(), nil }
	return NewHandler(answerer, &stubCanvas{}, store, refresh, true, true, logger.New("error", "text"))
}

func readyStore(t *testing.T) *index.Store {
	t.Helper()
	store := index.NewStore("")
	err := store.Replace(
		[]index.Document{{ID: "course:1", Kind: index.KindCourse, CourseID: 1, Content: "Course: Algorithms (IN2010)"}},
		[][]float32{{1, 0}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestQA_Answers(t *testing.T) {
	h := testHandler(&stubAnswerer{answer: "The deadline is Friday."}, readyStore(t))

	req := httptest.NewRequest(http.MethodPost, "/qa", strings.NewReader(`{"query":"when is the deadline?"}`))
	rec := httptest.NewRecorder()
	h.QA(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp qaResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Result != "The deadline is Friday." {
		t.Errorf("result = %q", resp.Result)
	}
	if resp.Query != "when is the deadline?" {
		t.Errorf("query echoed as %q", resp.Query)
	}
}

func TestQA_EmptyQueryIsBadRequest(t *testing.T) {
	h := testHandler(&stubAnswerer{}, readyStore(t))

	req := httptest.NewRequest(http.MethodPost, "/qa", strings.NewReader(`{"query":"  "}`))
	rec := httptest.NewRecorder()
	h.QA(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestQA_StoreNotReadyIs503(t *testing.T) {
	h := testHandler(&stubAnswerer{err: index.ErrNotReady}, index.NewStore(""))

	req := httptest.NewRequest(http.MethodPost, "/qa", strings.NewReader(`{"query":"anything"}`))
	rec := httptest.NewRecorder()
	h.QA(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "STORE_NOT_READY") {
		t.Errorf("body = %s, want STORE_NOT_READY code", rec.Body.String())
	}
}

func TestQA_QuotaErrorIs402(t *testing.T) {
	h := testHandler(&stubAnswerer{err: errors.New("insufficient_quota: billing limit reached")}, readyStore(t))

	req := httptest.NewRequest(http.MethodPost, "/qa", strings.NewReader(`{"query":"anything"}`))
	rec := httptest.NewRecorder()
	h.QA(rec, req)

	if rec.Code != http.StatusPaymentRequired {
		t.Errorf("status = %d, want 402", rec.Code)
	}
}

func TestHealth_DegradedWhenStoreEmpty(t *testing.T) {
	h := testHandler(&stubAnswerer{}, index.NewStore(""))

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "degraded" {
		t.Errorf("status = %q, want degraded", resp.Status)
	}
	if resp.VectorDBReady {
		t.Error("vector_db_ready = true for empty store")
	}
}

func TestHealth_HealthyWhenReady(t *testing.T) {
	h := testHandler(&stubAnswerer{}, readyStore(t))

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "healthy" || resp.DocumentsLoaded != 1 {
		t.Errorf("got status %q with %d documents", resp.Status, resp.DocumentsLoaded)
	}
}

func TestContext_FiltersInfoHubs(t *testing.T) {
	h := testHandler(&stubAnswerer{}, readyStore(t))
	h.canvas = &stubCanvas{courses: []canvas.Course{
		{ID: 1, Name: "Algorithms", CourseCode: "IN2010"},
		{ID: 2, Name: "Velkommen til UiO", CourseCode: "INFO"},
	}}

	rec := httptest.NewRecorder()
	h.Context(rec, httptest.NewRequest(http.MethodGet, "/context", nil))

	var resp contextResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Courses) != 1 || resp.Courses[0].ID != 1 {
		t.Errorf("courses = %v, want only course 1", resp.Courses)
	}
	if len(resp.AssignmentsByCourse) != 1 || len(resp.AssignmentsByCourse[0].Assignments) != 1 {
		t.Errorf("assignments_by_course = %v", resp.AssignmentsByCourse)
	}
}

func TestDebugDocs_EmptyStoreReturnsEmptyList(t *testing.T) {
	h := testHandler(&stubAnswerer{}, index.NewStore(""))

	rec := httptest.NewRecorder()
	h.DebugDocs(rec, httptest.NewRequest(http.MethodGet, "/debug/docs", nil))

	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("body = %s, want []", body)
	}
}

func TestRefresh_ReportsDocumentCount(t *testing.T) {
	h := testHandler(&stubAnswerer{}, readyStore(t))

	rec := httptest.NewRecorder()
	h.Refresh(rec, httptest.NewRequest(http.MethodPost, "/refresh-embeddings", nil))

	var resp refreshResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.DocumentsLoaded != 1 {
		t.Errorf("documents_loaded = %d, want 1", resp.DocumentsLoaded)
	}
}

func TestProxyPDF_StreamsWithPDFContentType(t *testing.T) {
	h := testHandler(&stubAnswerer{}, readyStore(t))

	req := httptest.NewRequest(http.MethodGet, "/proxy/pdf/1/7", nil)
	req.SetPathValue("courseID", "1")
	req.SetPathValue("fileID", "7")
	rec := httptest.NewRecorder()
	h.ProxyPDF(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF") {
		t.Errorf("body = %q, want PDF bytes", rec.Body.String())
	}
}

func TestProxyPDF_RejectsNonNumericIDs(t *testing.T) {
	h := testHandler(&stubAnswerer{}, readyStore(t))

	req := httptest.NewRequest(http.MethodGet, "/proxy/pdf/abc/7", nil)
	req.SetPathValue("courseID", "abc")
	req.SetPathValue("fileID", "7")
	rec := httptest.NewRecorder()
	h.ProxyPDF(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
