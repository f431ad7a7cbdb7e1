package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"

	"igdash/internal/metrics"
	"igdash/pkg/dashboard"
	"igdash/pkg/errors"
)

const msgImageFetchFailed = "Failed to fetch the image."

var availableRoutes = []string{
	"GET /health",
	"POST /api/search",
	"POST /api/profile",
	"POST /api/media",
	"GET /image-proxy?url=<encoded_image_url>",
}

type errorResponse struct {
	Error string `json:"error"`
}

type notFoundResponse struct {
	Error           string   `json:"error"`
	Message         string   `json:"message"`
	AvailableRoutes []string `json:"availableRoutes"`
}

type healthResponse struct {
	Status      string  `json:"status"`
	Timestamp   string  `json:"timestamp"`
	Uptime      float64 `json:"uptime"`
	Environment string  `json:"environment"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodPost) {
		return
	}

	req, err := decodeLookup(w, r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	results, err := s.dashboard.Search(r.Context(), req.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodPost) {
		return
	}

	req, err := decodeLookup(w, r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	profile, err := s.dashboard.Profile(r.Context(), req.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodPost) {
		return
	}

	req, err := decodeLookup(w, r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	page, err := s.dashboard.Media(r.Context(), dashboard.MediaRequest{
		Username:        req.Username,
		Amount:          int(req.Amount),
		PaginationToken: req.PaginationToken,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, page)
}

// handleImageProxy relays an image so the browser can load it from our origin
func (s *Server) handleImageProxy(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodGet) {
		return
	}

	img, err := s.dashboard.Image(r.Context(), r.URL.Query().Get("url"))
	if err != nil {
		if errors.IsValidation(err) {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: msgImageFetchFailed})
		return
	}
	defer img.Body.Close()

	if img.ContentType != "" {
		w.Header().Set("Content-Type", img.ContentType)
	}
	if img.ContentLength > 0 {
		w.Header().Set("Content-Length", fmt.Sprint(img.ContentLength))
	}
	w.WriteHeader(http.StatusOK)

	n, err := io.Copy(w, img.Body)
	metrics.AddProxiedBytes(n)
	if err != nil {
		// headers are already sent, nothing useful to tell the client
		s.logger.WithError(err).WithField("bytes", n).Warn("image relay interrupted")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodGet) {
		return
	}
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:      "OK",
		Timestamp:   time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		Uptime:      time.Since(s.started).Seconds(),
		Environment: s.cfg.Server.Environment,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusNotFound, notFoundResponse{
		Error:           "Not Found",
		Message:         fmt.Sprintf("Route %s not found", r.URL.RequestURI()),
		AvailableRoutes: availableRoutes,
	})
}

func (s *Server) allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	s.writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
	return false
}

// writeError maps a service error to a status and a client-safe message
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if errors.TypeOf(err) == errors.ErrorTypeInternal {
		if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
			hub.CaptureException(err)
		} else {
			sentry.CaptureException(err)
		}
	}
	s.writeJSON(w, status, errorResponse{Error: errors.PublicMessage(err, s.cfg.IsProduction())})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.WithError(err).Warn("failed to encode response")
	}
}
