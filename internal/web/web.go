// Package web serves the league generator form.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/ligas/internal/league"
	"github.com/charmbracelet/ligas/internal/proto"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

//go:embed templates static
var assets embed.FS

// DefaultAddr is the address the server listens on by default.
const DefaultAddr = "localhost:7860"

const shutdownTimeout = 10 * time.Second

// Generator runs one generation for the given input.
type Generator interface {
	Generate(ctx context.Context, input string) proto.Result
}

// Config is the server configuration.
type Config struct {
	Addr  string
	Title string

	// RateLimit is the number of generations allowed per second across
	// all clients. Zero disables the limit.
	RateLimit float64
	RateBurst int
}

// Server is the web front end.
type Server struct {
	config   Config
	gen      Generator
	logger   *log.Logger
	tmpl     *template.Template
	static   http.Handler
	limiter  *rate.Limiter
	renderer *renderer
}

// New creates a Server.
func New(gen Generator, config Config, logger *log.Logger) (*Server, error) {
	if config.Addr == "" {
		config.Addr = DefaultAddr
	}
	if config.Title == "" {
		config.Title = "Generador de Ligas"
	}
	if logger == nil {
		logger = log.Default()
	}

	tmpl, err := template.ParseFS(assets, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("web: parse templates: %w", err)
	}
	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, fmt.Errorf("web: static assets: %w", err)
	}

	s := &Server{
		config:   config,
		gen:      gen,
		logger:   logger,
		tmpl:     tmpl,
		static:   http.StripPrefix("/static/", http.FileServerFS(static)),
		renderer: newRenderer(),
	}
	if config.RateLimit > 0 {
		burst := max(config.RateBurst, 1)
		s.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), burst)
	}
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /{$}", s.handleGenerate)
	mux.Handle("GET /static/", s.static)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return s.logRequests(mux)
}

// Run listens on the configured address until ctx is canceled, then shuts
// the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("web: listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", "http://"+ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("web: serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx) //nolint:wrapcheck
	})
	return g.Wait() //nolint:wrapcheck
}

type page struct {
	Title    string
	Input    string
	Examples []string
	Output   template.HTML
	Failed   bool
	Kind     string
	Reason   string
	Error    string
}

func (s *Server) newPage(input string) page {
	return page{
		Title:    s.config.Title,
		Input:    input,
		Examples: league.Examples,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, s.newPage(""))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	input := r.FormValue("prompt")
	p := s.newPage(input)

	if strings.TrimSpace(input) == "" {
		s.render(w, http.StatusOK, p)
		return
	}

	if s.limiter != nil && !s.limiter.Allow() {
		p.Failed = true
		p.Kind = "rate-limit"
		p.Reason = "Demasiadas solicitudes."
		p.Error = "Espera unos segundos e inténtalo de nuevo."
		s.render(w, http.StatusTooManyRequests, p)
		return
	}

	start := time.Now()
	result := s.gen.Generate(r.Context(), input)
	logger := s.logger.With("duration", time.Since(start), "chars", len(input))

	if !result.OK() {
		logger.Warn("generation failed", "kind", result.Kind, "err", result.Err)
		p.Failed = true
		p.Kind = result.Kind.String()
		p.Reason = league.Reason(result.Kind)
		p.Error = result.String()
		s.render(w, http.StatusOK, p)
		return
	}

	if missing := league.Missing(result.Text); len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for _, f := range missing {
			names = append(names, f.Name)
		}
		logger.Warn("answer is missing fields", "fields", strings.Join(names, ", "))
	} else {
		logger.Debug("generated")
	}

	out, err := s.renderer.Render(result.Text)
	if err != nil {
		logger.Error("could not render markdown", "err", err)
		out = template.HTML(template.HTMLEscapeString(result.Text)) //nolint:gosec
	}
	p.Output = out
	s.render(w, http.StatusOK, p)
}

func (s *Server) render(w http.ResponseWriter, status int, p page) {
	var sb strings.Builder
	if err := s.tmpl.ExecuteTemplate(&sb, "index.html.tmpl", p); err != nil {
		s.logger.Error("could not render page", "err", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(sb.String()))
}
