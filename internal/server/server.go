package server

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yuin/goldmark"

	"github.com/TobiSchelling/streamdash/internal/chart"
	"github.com/TobiSchelling/streamdash/internal/dashboard"
	"github.com/TobiSchelling/streamdash/internal/logging"
	"github.com/TobiSchelling/streamdash/internal/metrics"
	"github.com/TobiSchelling/streamdash/internal/pipeline"
	"github.com/TobiSchelling/streamdash/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var md = goldmark.New()

// Logo is the sidebar image.
type Logo struct {
	Data        []byte
	ContentType string
}

// LoadLogo reads the logo at path, or the built-in logo when path is empty.
func LoadLogo(path string) (Logo, error) {
	if path == "" {
		data, err := staticFS.ReadFile("static/logo.svg")
		if err != nil {
			return Logo{}, fmt.Errorf("loading built-in logo: %w", err)
		}
		return Logo{Data: data, ContentType: "image/svg+xml"}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Logo{}, fmt.Errorf("loading logo: %w", err)
	}
	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		ct = http.DetectContentType(data)
	}
	return Logo{Data: data, ContentType: ct}, nil
}

// Server is the HTTP server for the dashboard.
type Server struct {
	result *pipeline.Result
	title  string
	logo   Logo
	pages  map[string]*template.Template
	router chi.Router
}

// New creates a Server over a finished load. A failed load is served as an
// error page on every route.
func New(result *pipeline.Result, title string, logo Logo) (*Server, error) {
	funcMap := template.FuncMap{
		"markdown": renderMarkdown,
	}

	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	// Each page gets its own clone of base so the page's blocks don't collide.
	pageNames := []string{"dashboard.html", "error.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		_, err = clone.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	s := &Server{result: result, title: title, logo: logo, pages: pages, router: chi.NewRouter()}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)

	staticSub, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))
	r.Get("/logo", s.handleLogo)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/view", s.handleView)
	})
}

type renderedChart struct {
	Title string
	SVG   template.HTML
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if !s.result.OK() {
		s.renderError(w)
		return
	}

	v := view.Select(r.URL.Query().Get("page"), r.URL.Query().Get("stat"))
	panel, err := dashboard.Render(s.result.Session, v)
	if err != nil {
		logging.Err(err).Str("view", v.Name()).Msg("Rendering view failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	charts := make([]renderedChart, 0, len(panel.Charts))
	for _, spec := range panel.Charts {
		svg, err := chart.RenderSVG(spec)
		if err != nil && !errors.Is(err, chart.ErrNoData) {
			logging.Err(err).Str("chart", spec.Title).Msg("Drawing chart failed")
		}
		charts = append(charts, renderedChart{Title: spec.Title, SVG: template.HTML(svg)}) //nolint: gosec
	}

	s.render(w, http.StatusOK, "dashboard.html", map[string]any{
		"Title":  s.title,
		"Pages":  view.Pages,
		"Stats":  view.StatLabels(),
		"Page":   v.Page(),
		"Stat":   view.StatOf(v),
		"Rows":   s.result.Session.Len(),
		"Panel":  panel,
		"Charts": charts,
	})
}

func (s *Server) renderError(w http.ResponseWriter) {
	s.render(w, http.StatusServiceUnavailable, "error.html", map[string]any{
		"Title":   s.title,
		"Message": userMessage(s.result.Err()),
	})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	if !s.result.OK() {
		respondJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "error",
			"error":  userMessage(s.result.Err()),
		})
		return
	}

	v := view.Select(r.URL.Query().Get("page"), r.URL.Query().Get("stat"))
	panel, err := dashboard.Render(s.result.Session, v)
	if err != nil {
		logging.Err(err).Str("view", v.Name()).Msg("Rendering view failed")
		respondJSON(w, http.StatusInternalServerError, map[string]any{"status": "error", "error": "render failed"})
		return
	}
	respondJSON(w, http.StatusOK, panel)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.result.OK() {
		respondJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "error",
			"source": s.result.Source,
			"error":  userMessage(s.result.Err()),
		})
		return
	}
	sess := s.result.Session
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"source":    sess.Source,
		"session":   sess.ID,
		"rows":      sess.Len(),
		"loaded_at": sess.LoadedAt.Format(time.RFC3339),
	})
}

func (s *Server) handleLogo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", s.logo.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(s.logo.Data)))
	w.Write(s.logo.Data)
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		logging.Error().Str("template", name).Msg("Template not found")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		logging.Err(err).Str("template", name).Msg("Error rendering template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Err(err).Msg("Failed to write JSON response")
	}
}

func userMessage(err error) string {
	if err == nil {
		return "The dataset has not been loaded."
	}
	return err.Error()
}

func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String()) //nolint: gosec
}

// requestLogger records a metric and a debug log line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(status), elapsed)
		logging.Debug().
			Str("request_id", chimiddleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("route", route).
			Int("status", status).
			Dur("elapsed", elapsed).
			Msg("HTTP request")
	})
}

// Serve starts the HTTP server on addr.
func Serve(srv *Server, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logging.Info().Str("addr", "http://"+addr).Msg("Server listening")
	return httpServer.ListenAndServe()
}
