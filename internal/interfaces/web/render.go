package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/riskibarqy/football-portal/internal/domain/league"
	"github.com/riskibarqy/football-portal/internal/domain/match"
	"github.com/riskibarqy/football-portal/internal/domain/session"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	layoutTemplate = "layout.html"
	pagePrefix     = "page_"
)

// PageData is what every page template receives. Page-specific values go in
// Data.
type PageData struct {
	Title   string
	Nav     string
	Session session.Session
	Banner  string
	Notice  string
	Data    any
}

// Renderer executes the layout with one page template into a pooled buffer,
// so a failing template never leaves a half-written response.
type Renderer struct {
	pages  map[string]*template.Template
	logger *logging.Logger
}

func NewRenderer(logger *logging.Logger) (*Renderer, error) {
	if logger == nil {
		logger = logging.Default()
	}

	base, err := template.New(layoutTemplate).Funcs(templateFuncs()).ParseFS(templateFS, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout templates: %w", err)
	}

	files, err := fs.Glob(templateFS, "templates/"+pagePrefix+"*.html")
	if err != nil {
		return nil, fmt.Errorf("list page templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", file, err)
		}
		if _, err := clone.ParseFS(templateFS, file); err != nil {
			return nil, fmt.Errorf("parse page template %s: %w", file, err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(path.Base(file), pagePrefix), ".html")
		pages[name] = clone
	}

	return &Renderer{pages: pages, logger: logger}, nil
}

// Page renders the named page with status.
func (r *Renderer) Page(ctx context.Context, w http.ResponseWriter, status int, name string, data PageData) {
	tmpl, ok := r.pages[name]
	if !ok {
		r.logger.ErrorContext(ctx, "unknown page template", "page", name)
		http.Error(w, "Something went wrong on our side. Please try again.", http.StatusInternalServerError)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := tmpl.ExecuteTemplate(buf, layoutTemplate, data); err != nil {
		r.logger.ErrorContext(ctx, "render page failed", "page", name, "error", err)
		http.Error(w, "Something went wrong on our side. Please try again.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.DebugContext(ctx, "write page failed", "page", name, "error", err)
	}
}

// Error renders the error page with message as its banner.
func (r *Renderer) Error(ctx context.Context, w http.ResponseWriter, status int, message string) {
	current, _ := session.FromContext(ctx)
	r.Page(ctx, w, status, "error", PageData{
		Title:   http.StatusText(status),
		Session: current,
		Banner:  message,
		Data:    status,
	})
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"number":   formatNumber,
		"initials": league.Initials,
		"flag":     flagPath,
		"date":     func(t time.Time) string { return formatTime(t, "02 Jan 2006") },
		"datetime": func(t time.Time) string { return formatTime(t, "02 Jan 2006 15:04") },
		"kickoff":  kickoff,
		"phase":    phaseLabel,
		"add":      func(a, b int) int { return a + b },
		"upper":    strings.ToUpper,
		"goals":    goals,
		"signed":   signed,
		"dict":     dict,
	}
}

func formatNumber(v any) string {
	printer := message.NewPrinter(language.English)
	switch n := v.(type) {
	case int:
		return printer.Sprintf("%d", n)
	case int64:
		return printer.Sprintf("%d", n)
	case float64:
		return printer.Sprintf("%.1f", n)
	default:
		return fmt.Sprint(v)
	}
}

// flagPath points at the local flag proxy. Empty codes have no flag.
func flagPath(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	return "/flags/" + code + ".png"
}

func formatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}

// kickoff shows the kickoff time in the timezone the list was requested in.
func kickoff(t time.Time, timezone string) string {
	if t.IsZero() {
		return "TBD"
	}
	if loc, err := time.LoadLocation(timezone); err == nil {
		t = t.In(loc)
	}
	return t.Format("15:04")
}

func phaseLabel(m match.Match) string {
	switch m.Phase() {
	case match.PhaseLive:
		if m.Elapsed > 0 {
			return fmt.Sprintf("%d'", m.Elapsed)
		}
		return "LIVE"
	case match.PhaseFinished:
		return "FT"
	case match.PhaseUpcoming:
		return "Upcoming"
	default:
		if m.StatusLong != "" {
			return m.StatusLong
		}
		return m.Status
	}
}

func goals(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}

// dict builds the argument map for partials that need more than one value.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict needs key/value pairs, got %d values", len(pairs))
	}
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}

func signed(v int) string {
	if v > 0 {
		return fmt.Sprintf("+%d", v)
	}
	return fmt.Sprint(v)
}
