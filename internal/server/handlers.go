package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/mskaar/pensum/internal/apperr"
	"github.com/mskaar/pensum/internal/canvas"
	"github.com/mskaar/pensum/internal/index"
	"github.com/mskaar/pensum/internal/logger"
)

// Answerer answers a question over the indexed course content.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// CanvasSource is the slice of the Canvas client the handlers need.
type CanvasSource interface {
	Courses(ctx context.Context) ([]canvas.Course, error)
	Assignments(ctx context.Context, courseID int) ([]canvas.Assignment, error)
	Files(ctx context.Context, courseID int) ([]canvas.File, error)
	FileDownloadURL(ctx context.Context, courseID, fileID int) (string, error)
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

// RefreshFunc rebuilds the index and returns the new document count.
type RefreshFunc func(ctx context.Context) (int, error)

// Handler holds the endpoint dependencies.
type Handler struct {
	answerer Answerer
	canvas   CanvasSource
	store    *index.Store
	refresh  RefreshFunc
	log      *logger.Logger

	canvasConfigured bool
	openaiConfigured bool
}

// NewHandler wires the endpoints together.
func NewHandler(answerer Answerer, canvasSource CanvasSource, store *index.Store, refresh RefreshFunc, canvasConfigured, openaiConfigured bool, log *logger.Logger) *Handler {
	return &Handler{
		answerer:         answerer,
		canvas:           canvasSource,
		store:            store,
		refresh:          refresh,
		log:              log,
		canvasConfigured: canvasConfigured,
		openaiConfigured: openaiConfigured,
	}
}

type qaRequest struct {
	Query string `json:"query"`
}

type qaResponse struct {
	Query  string `json:"query"`
	Result string `json:"result"`
}

// QA answers a question from the indexed course content.
func (h *Handler) QA(w http.ResponseWriter, r *http.Request) {
	var req qaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperr.New(apperr.CodeInvalidRequest, "Request body must be JSON with a \"query\" field."))
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		h.writeError(w, apperr.New(apperr.CodeInvalidRequest, "Query must not be empty."))
		return
	}

	answer, err := h.answerer.Answer(r.Context(), req.Query)
	if err != nil {
		if errors.Is(err, index.ErrNotReady) {
			h.writeError(w, apperr.Wrap(err, apperr.CodeStoreNotReady, "Vector store not ready. Check the OpenAI API key and restart the application."))
			return
		}
		h.writeError(w, apperr.ClassifyUpstream(err))
		return
	}

	h.writeJSON(w, qaResponse{Query: req.Query, Result: answer}, http.StatusOK)
}

type healthResponse struct {
	Status           string `json:"status"`
	VectorDBReady    bool   `json:"vector_db_ready"`
	DocumentsLoaded  int    `json:"documents_loaded"`
	OpenAIConfigured bool   `json:"openai_configured"`
	CanvasConfigured bool   `json:"canvas_configured"`
	Message          string `json:"message,omitempty"`
}

// Health reports service status. The status degrades when the store has
// no documents to answer from.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:           "healthy",
		VectorDBReady:    h.store.Ready(),
		DocumentsLoaded:  h.store.Len(),
		OpenAIConfigured: h.openaiConfigured,
		CanvasConfigured: h.canvasConfigured,
	}
	if !resp.VectorDBReady {
		resp.Status = "degraded"
		resp.Message = "Vector database not initialized, QA functionality unavailable"
	}

	h.writeJSON(w, resp, http.StatusOK)
}

type courseAssignments struct {
	CourseID    int                 `json:"course_id"`
	Assignments []canvas.Assignment `json:"assignments"`
}

type courseFiles struct {
	CourseID int           `json:"course_id"`
	Files    []canvas.File `json:"files"`
}

type contextResponse struct {
	Courses             []canvas.Course     `json:"courses"`
	AssignmentsByCourse []courseAssignments `json:"assignments_by_course"`
	FilesByCourse       []courseFiles       `json:"files_by_course"`
}

// Context returns the raw Canvas data the index is built from: filtered
// courses plus their assignments and files.
func (h *Handler) Context(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	all, err := h.canvas.Courses(ctx)
	if err != nil {
		h.writeError(w, apperr.Wrap(err, apperr.CodeUpstream, "Failed to fetch courses from Canvas."))
		return
	}
	courses := canvas.FilterCourses(all)

	resp := contextResponse{Courses: courses}
	for _, course := range courses {
		assignments, err := h.canvas.Assignments(ctx, course.ID)
		if err != nil {
			h.writeError(w, apperr.Wrap(err, apperr.CodeUpstream, "Failed to fetch assignments from Canvas."))
			return
		}
		resp.AssignmentsByCourse = append(resp.AssignmentsByCourse, courseAssignments{CourseID: course.ID, Assignments: assignments})

		files, err := h.canvas.Files(ctx, course.ID)
		if err != nil {
			h.writeError(w, apperr.Wrap(err, apperr.CodeUpstream, "Failed to fetch files from Canvas."))
			return
		}
		resp.FilesByCourse = append(resp.FilesByCourse, courseFiles{CourseID: course.ID, Files: files})
	}

	h.writeJSON(w, resp, http.StatusOK)
}

type refreshResponse struct {
	Message         string `json:"message"`
	DocumentsLoaded int    `json:"documents_loaded"`
}

// Refresh rebuilds the index from Canvas and re-embeds everything.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	count, err := h.refresh(r.Context())
	if err != nil {
		h.writeError(w, apperr.Wrap(err, apperr.CodeInternal, "Failed to refresh embeddings: "+err.Error()))
		return
	}

	h.writeJSON(w, refreshResponse{
		Message:         "Embeddings refreshed successfully",
		DocumentsLoaded: count,
	}, http.StatusOK)
}

// DebugDocs returns the metadata of every indexed document.
func (h *Handler) DebugDocs(w http.ResponseWriter, r *http.Request) {
	metas := h.store.Metas()
	if metas == nil {
		metas = []index.Meta{}
	}
	h.writeJSON(w, metas, http.StatusOK)
}

// ProxyPDF streams a course file through the backend so the frontend
// never sees the Canvas token.
func (h *Handler) ProxyPDF(w http.ResponseWriter, r *http.Request) {
	courseID, err1 := strconv.Atoi(r.PathValue("courseID"))
	fileID, err2 := strconv.Atoi(r.PathValue("fileID"))
	if err1 != nil || err2 != nil {
		h.writeError(w, apperr.New(apperr.CodeInvalidRequest, "Course and file IDs must be integers."))
		return
	}

	url, err := h.canvas.FileDownloadURL(r.Context(), courseID, fileID)
	if err != nil {
		h.writeError(w, apperr.Wrap(err, apperr.CodeUpstream, "Failed to resolve file download URL."))
		return
	}

	body, err := h.canvas.Download(r.Context(), url)
	if err != nil {
		h.writeError(w, apperr.Wrap(err, apperr.CodeUpstream, "Failed to download file from Canvas."))
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/pdf")
	if _, err := io.Copy(w, body); err != nil {
		h.log.Error("Failed to stream file", err)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("Failed to encode JSON response", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, appErr *apperr.Error) {
	h.log.With("error_code", appErr.Code).
		With("status_code", appErr.StatusCode()).
		Error(appErr.Message, appErr.Err)

	h.writeJSON(w, appErr, appErr.StatusCode())
}
