package preview

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/seqtree/internal/errors"
	"github.com/vango-dev/seqtree/pkg/builder"
	"github.com/vango-dev/seqtree/pkg/render"
	"github.com/vango-dev/seqtree/pkg/rendertree"
	"github.com/vango-dev/seqtree/pkg/script"
	"github.com/vango-dev/seqtree/pkg/telemetry"
)

// ReloadPath is the live-reload websocket route.
const ReloadPath = "/_seqtree/reload"

var validScriptName = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Config configures the preview server.
type Config struct {
	// ScriptsDir holds the *.json build scripts.
	ScriptsDir string

	// BuilderOptions apply to every build pass.
	BuilderOptions []builder.Option

	// Render configures the HTML renderer.
	Render render.Config

	// Registry resolves components. Defaults to script.NewRegistry().
	Registry *script.Registry

	// Metrics, when set, observes builds and requests.
	Metrics *telemetry.Metrics

	// Gatherer backs /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// Tracer starts request spans. Nil uses the global provider.
	Tracer trace.Tracer

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Watch enables live reload.
	Watch bool

	// PollInterval is the watcher interval.
	PollInterval time.Duration
}

// Server renders build scripts over HTTP.
type Server struct {
	config  Config
	logger  *slog.Logger
	hub     *ReloadHub
	watcher *Watcher
	router  chi.Router

	mu      sync.Mutex
	failing map[string]bool // scripts whose last rebuild failed
}

// New creates a preview server.
func New(config Config) *Server {
	if config.Registry == nil {
		config.Registry = script.NewRegistry()
	}
	if config.Gatherer == nil {
		config.Gatherer = prometheus.DefaultGatherer
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:  config,
		logger:  logger.With("component", "preview"),
		hub:     NewReloadHub(),
		failing: make(map[string]bool),
	}
	if config.Watch {
		s.watcher = NewWatcher(config.ScriptsDir, config.PollInterval)
		s.watcher.OnChange(s.scriptsChanged)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(telemetry.Tracing(s.config.Tracer))
	if s.config.Metrics != nil {
		r.Use(s.config.Metrics.Middleware)
	}

	r.Get("/", s.handleIndex)
	r.Get("/scripts/{name}", s.handlePage)
	r.Get("/scripts/{name}/frames", s.handleFrames)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	r.Get(ReloadPath, s.hub.HandleWebSocket)
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the live-reload hub.
func (s *Server) Hub() *ReloadHub {
	return s.hub
}

// ListenAndServe serves on addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watcher != nil {
		go func() {
			if err := s.watcher.Start(ctx); err != nil && !stderrors.Is(err, context.Canceled) {
				s.logger.Warn("watcher stopped", "error", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", addr, "scripts", s.config.ScriptsDir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.FromError(err, errors.CodePreview)
	case <-ctx.Done():
	}

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.FromError(err, errors.CodePreview)
	}
	return nil
}

func (s *Server) scriptsChanged(paths []string) {
	for _, p := range paths {
		name := strings.TrimSuffix(filepath.Base(p), ".json")
		_, err := s.build(context.Background(), name)

		s.mu.Lock()
		wasFailing := s.failing[name]
		if err != nil {
			s.failing[name] = true
		} else {
			delete(s.failing, name)
		}
		s.mu.Unlock()

		if err != nil {
			s.logger.Warn("script failed", "script", name, "error", err)
			s.hub.NotifyError(name, errorText(err))
			continue
		}
		if wasFailing {
			s.hub.ClearError(name)
		}
		s.logger.Info("script changed", "script", name, "clients", s.hub.ClientCount())
		s.hub.NotifyReload(name)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	scripts, err := script.LoadDir(s.config.ScriptsDir)
	if err != nil {
		s.writeError(w, err)
		return
	}

	// The index is itself built with a builder.
	rec := rendertree.NewRecorder()
	err = builder.RunContext(r.Context(), rec, func(b *builder.Builder) {
		b.Element("main").Element("h1").Text("Scripts").Close()
		b.Element("ul")
		for _, sc := range scripts {
			label := sc.Name
			if sc.Title != "" {
				label = sc.Name + ": " + sc.Title
			}
			b.Element("li").
				Element("a", builder.A("href", "/scripts/"+sc.Name)).Text(label).Close().
				Text(" ").
				Element("a", builder.A("href", "/scripts/"+sc.Name+"/frames")).Text("frames").Close().
				Close()
		}
		b.CloseAll()
	}, builder.WithLineMode(builder.LineCounter))
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writePage(w, "seqtree preview", "", rec.Frames())
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	frames, err := s.build(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writePage(w, name, name, frames)
}

func (s *Server) handleFrames(w http.ResponseWriter, r *http.Request) {
	frames, err := s.build(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rendertree.EncodeFrames(frames)); err != nil {
		s.logger.Warn("write frames failed", "error", err)
	}
}

func (s *Server) build(ctx context.Context, name string) ([]rendertree.Frame, error) {
	if !validScriptName.MatchString(name) {
		return nil, errNotFound
	}
	path := filepath.Join(s.config.ScriptsDir, name+".json")
	if _, err := os.Stat(path); err != nil {
		return nil, errNotFound
	}
	sc, err := script.Load(path)
	if err != nil {
		return nil, err
	}

	opts := append([]builder.Option{}, s.config.BuilderOptions...)
	if s.config.Metrics != nil {
		opts = append(opts, builder.WithObserver(s.config.Metrics))
	}
	return sc.Frames(ctx, s.config.Registry, opts...)
}

// writePage wraps frames in a document. With watching enabled it adds the
// reload client, tagged with the script name so other scripts' changes are
// ignored.
func (s *Server) writePage(w http.ResponseWriter, title, name string, frames []rendertree.Frame) {
	page := render.PageData{
		Title: title,
		Body:  frames,
	}
	if s.watcher != nil {
		if name != "" {
			page.Scripts = append(page.Scripts, render.ScriptTag{
				Inline: fmt.Sprintf("document.body.setAttribute('data-script', %q);", name),
			})
		}
		page.Scripts = append(page.Scripts, render.ScriptTag{Inline: reloadClientScript})
	}

	var buf strings.Builder
	if err := render.NewRenderer(s.config.Render).RenderPage(&buf, page); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := io.WriteString(w, buf.String()); err != nil {
		s.logger.Warn("write page failed", "error", err)
	}
}

var errNotFound = stderrors.New("script not found")

// writeError maps not-found to 404 and build or render failures to 422
// with the compact error text.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	if stderrors.Is(err, errNotFound) {
		http.Error(w, "script not found", http.StatusNotFound)
		return
	}
	s.logger.Warn("preview failed", "error", err)
	http.Error(w, errorText(err), http.StatusUnprocessableEntity)
}

func errorText(err error) string {
	var se *errors.Error
	if stderrors.As(err, &se) {
		return se.FormatCompact()
	}
	return err.Error()
}
