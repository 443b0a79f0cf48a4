// Package views renders the HTML pages from templates on an embedded
// filesystem. Each page template defines a "content" block inside the
// shared layout.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	appI18n "github.com/pethoang/ExamGen10/internal/i18n"
	"github.com/pethoang/ExamGen10/internal/model"
	"github.com/pethoang/ExamGen10/internal/render"
	"github.com/pethoang/ExamGen10/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{
		"index.html", "analysis.html", "exam.html",
		"login.html", "admin.html", "error.html",
	} {
		pages[name] = template.Must(template.ParseFS(templateFS,
			"templates/layout.html", "templates/"+name))
	}
}

// Page wraps per-request state every template needs: translations, the
// base path, the CSRF token, the signed-in user, and the page's own data.
type Page struct {
	ctx  context.Context
	Data any
}

// T translates a message ID using the request's localizer.
func (p Page) T(id string) string { return appI18n.T(p.ctx, id) }

// Path prefixes a route with the deployment base path.
func (p Page) Path(route string) string {
	return model.BasePathFromContext(p.ctx) + route
}

// CSRFToken returns the token for form submissions.
func (p Page) CSRFToken() string { return model.CSRFTokenFromContext(p.ctx) }

// User returns the signed-in user, or nil.
func (p Page) User() *model.User { return model.UserFromContext(p.ctx) }

func renderPage(ctx context.Context, w io.Writer, name string, data any) error {
	tmpl, ok := pages[name]
	if !ok {
		return fmt.Errorf("unknown page template %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout.html", Page{ctx: ctx, Data: data})
}

// IndexData feeds the home page.
type IndexData struct {
	Samples []model.Sample
	Exams   []store.ExamSummary
}

// IndexPage renders the home page with the upload form and saved work.
func IndexPage(ctx context.Context, w io.Writer, data IndexData) error {
	return renderPage(ctx, w, "index.html", data)
}

// AnalysisData feeds the analysis review page.
type AnalysisData struct {
	Sample   model.Sample
	Analysis model.Analysis
	Error    string
}

// AnalysisPage renders the editable analysis and matrix form.
func AnalysisPage(ctx context.Context, w io.Writer, data AnalysisData) error {
	return renderPage(ctx, w, "analysis.html", data)
}

// ExamData feeds the preview page.
type ExamData struct {
	ExamID  int64
	Exam    render.ExamView
	Warning string
}

// ExamPage renders the numbered exam preview.
func ExamPage(ctx context.Context, w io.Writer, data ExamData) error {
	return renderPage(ctx, w, "exam.html", data)
}

// LoginPage renders the sign-in form, optionally with an error message.
func LoginPage(ctx context.Context, w io.Writer, errMsg string) error {
	return renderPage(ctx, w, "login.html", errMsg)
}

// AdminData feeds the user management page.
type AdminData struct {
	Users []model.User
	Error string
}

// AdminPage renders the user management page.
func AdminPage(ctx context.Context, w io.Writer, data AdminData) error {
	return renderPage(ctx, w, "admin.html", data)
}

// ErrorData feeds the retryable-error page.
type ErrorData struct {
	Title    string
	Message  string
	BackPath string
}

// ErrorPage renders a user-facing failure with a retry link.
func ErrorPage(ctx context.Context, w io.Writer, data ErrorData) error {
	return renderPage(ctx, w, "error.html", data)
}
