package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pethoang/ExamGen10/internal/handler/views"
	appI18n "github.com/pethoang/ExamGen10/internal/i18n"
	"github.com/pethoang/ExamGen10/internal/llm"
	"github.com/pethoang/ExamGen10/internal/model"
	"github.com/pethoang/ExamGen10/internal/numbering"
	"github.com/pethoang/ExamGen10/internal/render"
	"github.com/pethoang/ExamGen10/internal/store"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store  *store.Store
	llm    *llm.Client
	config model.ServerConfig
}

// New creates a new Handler.
func New(s *store.Store, l *llm.Client, cfg model.ServerConfig) (*Handler, error) {
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = 5 << 20
	}
	return &Handler{store: s, llm: l, config: cfg}, nil
}

// BasePathMiddleware stores the deployment base path in the request context
// so views can build correct links under sub-path mounts.
func (h *Handler) BasePathMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := model.ContextWithBasePath(r.Context(), h.config.BasePath)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.csrfMiddleware)
		r.Get("/login", h.handleLoginPage)
		r.Post("/login", h.handleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.csrfMiddleware)
		r.Use(h.requireAuth)

		r.Post("/logout", h.handleLogout)

		r.Get("/", h.handleIndex)
		r.Post("/samples", h.handleUploadSample)
		r.Get("/samples/{sampleID}/analysis", h.handleAnalysisPage)
		r.Post("/samples/{sampleID}/analysis", h.handleSaveAnalysis)
		r.Get("/exams/{examID}", h.handleExamPage)
		r.Post("/exams/{examID}/questions/{questionID}", h.handleUpdateQuestion)
		r.Get("/exams/{examID}/export", h.handleExportExam)
		r.Post("/exams/{examID}/delete", h.handleDeleteExam)

		r.Route("/admin", func(r chi.Router) {
			r.Use(requireRole(model.UserRoleAdmin))
			r.Get("/users", h.handleAdminUsersPage)
			r.Post("/users", h.handleCreateUser)
			r.Post("/users/{userID}/toggle", h.handleToggleUserActive)
		})
	})
}

func (h *Handler) path(route string) string {
	return h.config.BasePath + route
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	samples, err := h.store.ListSamples()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	exams, err := h.store.ListExams()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.IndexPage(r.Context(), w, views.IndexData{Samples: samples, Exams: exams}); err != nil {
		slog.Error("render error", "error", err)
	}
}

// handleUploadSample accepts a pasted or uploaded sample text, stores it,
// and runs the analysis service. An analysis failure is not fatal: the
// stated fallback record is stored instead and the user can edit it.
func (h *Handler) handleUploadSample(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.config.MaxUploadSize); err != nil {
		http.Error(w, "upload too large", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	text := r.FormValue("text")

	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, h.config.MaxUploadSize))
		if err != nil {
			http.Error(w, "failed to read file", http.StatusInternalServerError)
			return
		}
		if len(data) > 0 {
			text = string(data)
		}
		if name == "" {
			name = header.Filename
		}
	}

	if strings.TrimSpace(text) == "" {
		http.Error(w, "sample text cannot be empty", http.StatusBadRequest)
		return
	}
	if name == "" {
		name = "untitled sample"
	}

	matrix, err := h.store.GetDefaultMatrix()
	if err != nil {
		slog.Warn("failed to load default matrix", "error", err)
	}

	sampleID, err := h.store.InsertSample(model.Sample{Name: name, Text: text, Matrix: matrix})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	analysis, err := h.llm.Analyze(r.Context(), text)
	if err != nil {
		slog.Warn("analysis failed, using fallback", "sample_id", sampleID, "error", err)
		analysis = model.DefaultAnalysis()
	}
	if err := h.store.SetAnalysis(sampleID, analysis); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.path(fmt.Sprintf("/samples/%d/analysis", sampleID)), http.StatusSeeOther)
}

func (h *Handler) handleAnalysisPage(w http.ResponseWriter, r *http.Request) {
	sampleID, err := strconv.ParseInt(chi.URLParam(r, "sampleID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid sample ID", http.StatusBadRequest)
		return
	}

	sample, err := h.store.GetSample(sampleID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	analysis, err := h.store.GetAnalysis(sampleID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if analysis == nil {
		fallback := model.DefaultAnalysis()
		analysis = &fallback
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.AnalysisPage(r.Context(), w, views.AnalysisData{
		Sample:   sample,
		Analysis: *analysis,
	}); err != nil {
		slog.Error("render error", "error", err)
	}
}

// handleSaveAnalysis replaces the stored analysis and matrix with the
// submitted values, and optionally runs generation.
func (h *Handler) handleSaveAnalysis(w http.ResponseWriter, r *http.Request) {
	sampleID, err := strconv.ParseInt(chi.URLParam(r, "sampleID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid sample ID", http.StatusBadRequest)
		return
	}

	avgWords, err := strconv.Atoi(r.FormValue("average_word_count"))
	if err != nil || avgWords <= 0 {
		avgWords = model.DefaultAnalysis().Reading.AverageWordCount
	}
	analysis := model.Analysis{
		Difficulty: r.FormValue("difficulty"),
		Structure:  r.FormValue("structure"),
		Level:      r.FormValue("level"),
		Reading: model.ReadingStats{
			AverageWordCount: avgWords,
			Difficulty:       r.FormValue("reading_difficulty"),
		},
	}
	matrix := r.FormValue("matrix")

	if err := h.store.SetAnalysis(sampleID, analysis); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := h.store.UpdateSampleMatrix(sampleID, matrix); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := h.store.SetDefaultMatrix(matrix); err != nil {
		slog.Warn("failed to store default matrix", "error", err)
	}

	if r.FormValue("action") != "generate" {
		http.Redirect(w, r, h.path(fmt.Sprintf("/samples/%d/analysis", sampleID)), http.StatusSeeOther)
		return
	}

	exam, err := h.llm.Generate(r.Context(), matrix, analysis)
	if err != nil {
		slog.Error("generation failed", "sample_id", sampleID, "error", err)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadGateway)
		if err := views.ErrorPage(r.Context(), w, views.ErrorData{
			Title:    appI18n.T(r.Context(), "GenerationFailedTitle"),
			Message:  appI18n.T(r.Context(), "GenerationFailedHint"),
			BackPath: h.path(fmt.Sprintf("/samples/%d/analysis", sampleID)),
		}); err != nil {
			slog.Error("render error", "error", err)
		}
		return
	}

	examID, err := h.store.InsertExam(sampleID, exam)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.path(fmt.Sprintf("/exams/%d", examID)), http.StatusSeeOther)
}

func (h *Handler) handleExamPage(w http.ResponseWriter, r *http.Request) {
	exam, ok := h.loadExam(w, r)
	if !ok {
		return
	}

	// Selection is presentation state only: it lives in the query string
	// and never touches the stored exam.
	editing := r.URL.Query().Get("editing")

	var warning string
	if err := numbering.ValidateIDs(exam.Sections); err != nil {
		slog.Warn("exam has duplicate question ids", "exam_id", exam.ID, "error", err)
		warning = err.Error()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.ExamPage(r.Context(), w, views.ExamData{
		ExamID:  exam.ID,
		Exam:    render.Exam(exam, editing),
		Warning: warning,
	}); err != nil {
		slog.Error("render error", "error", err)
	}
}

// handleUpdateQuestion saves edited raw content for one question. This is
// the explicit save action; merely toggling edit mode changes nothing.
func (h *Handler) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	exam, ok := h.loadExam(w, r)
	if !ok {
		return
	}
	questionID := chi.URLParam(r, "questionID")
	content := r.FormValue("content")

	found := false
	for i := range exam.Sections {
		for j := range exam.Sections[i].Questions {
			if exam.Sections[i].Questions[j].ID == questionID {
				exam.Sections[i].Questions[j].Content = content
				found = true
			}
		}
	}
	if !found {
		http.Error(w, "unknown question", http.StatusNotFound)
		return
	}

	if err := h.store.UpdateExam(exam.ID, exam); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, h.path(fmt.Sprintf("/exams/%d", exam.ID)), http.StatusSeeOther)
}

// handleExportExam serves the Word-compatible document. The body and the
// answer key are both derived fresh from the stored exam here, so they
// cannot disagree with each other.
func (h *Handler) handleExportExam(w http.ResponseWriter, r *http.Request) {
	exam, ok := h.loadExam(w, r)
	if !ok {
		return
	}

	doc := render.Document(exam)
	filename := strings.ReplaceAll(exam.Title, `"`, "") + ".doc"
	w.Header().Set("Content-Type", "application/msword")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(doc); err != nil {
		slog.Error("write export", "exam_id", exam.ID, "error", err)
	}
}

func (h *Handler) handleDeleteExam(w http.ResponseWriter, r *http.Request) {
	examID, err := strconv.ParseInt(chi.URLParam(r, "examID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid exam ID", http.StatusBadRequest)
		return
	}
	if err := h.store.DeleteExam(examID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, h.path("/"), http.StatusSeeOther)
}

func (h *Handler) loadExam(w http.ResponseWriter, r *http.Request) (model.Exam, bool) {
	examID, err := strconv.ParseInt(chi.URLParam(r, "examID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid exam ID", http.StatusBadRequest)
		return model.Exam{}, false
	}
	exam, err := h.store.GetExam(examID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return model.Exam{}, false
	}
	return exam, true
}
