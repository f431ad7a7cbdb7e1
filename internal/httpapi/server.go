package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"igdash/internal/metrics"
	"igdash/pkg/config"
	"igdash/pkg/dashboard"
	"igdash/pkg/logger"
	"igdash/pkg/models"
	"igdash/pkg/provider"
)

// Dashboard is the service behind the API routes
type Dashboard interface {
	Search(ctx context.Context, username string) ([]models.SearchResult, error)
	Profile(ctx context.Context, username string) (models.Profile, error)
	Media(ctx context.Context, req dashboard.MediaRequest) (models.MediaPage, error)
	Image(ctx context.Context, url string) (*provider.Image, error)
}

// Server serves the dashboard API
type Server struct {
	dashboard Dashboard
	cfg       *config.Config
	logger    logger.Logger
	started   time.Time
	routes    map[string]bool
}

// NewServer creates a new API server
func NewServer(d Dashboard, cfg *config.Config, log logger.Logger) *Server {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Server{
		dashboard: d,
		cfg:       cfg,
		logger:    log.WithField("component", "httpapi"),
		started:   time.Now(),
		routes:    map[string]bool{},
	}
}

// Handler builds the routed handler wrapped in the middleware chain
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.handle(mux, "/api/search", s.handleSearch)
	s.handle(mux, "/api/profile", s.handleProfile)
	s.handle(mux, "/api/media", s.handleMedia)
	s.handle(mux, "/image-proxy", s.handleImageProxy)
	s.handle(mux, "/health", s.handleHealth)
	if s.cfg.Metrics.Enabled {
		s.handle(mux, s.cfg.Metrics.Path, metrics.Handler().ServeHTTP)
	}
	mux.HandleFunc("/", s.handleNotFound)

	var h http.Handler = mux
	h = cors(h)
	h = securityHeaders(h)
	h = s.accessLog(h)
	h = requestID(h)
	h = s.recoverer(h)
	return h
}

func (s *Server) handle(mux *http.ServeMux, path string, h http.HandlerFunc) {
	s.routes[path] = true
	mux.HandleFunc(path, h)
}

// routeLabel keeps metric label cardinality bounded
func (s *Server) routeLabel(path string) string {
	if s.routes[path] {
		return path
	}
	return "unmatched"
}

// ListenAndServe serves on the configured port until ctx is cancelled,
// then drains in-flight requests for up to the shutdown timeout
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.LogComponentStart(s.logger, "httpapi", map[string]interface{}{
			"addr":        srv.Addr,
			"environment": s.cfg.Server.Environment,
			"metrics":     s.cfg.Metrics.Enabled,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.LogComponentStop(s.logger, "httpapi", ctx.Err().Error())
	return nil
}
