package server

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NVIDIA/implindex/pkg/defaults"
	"github.com/NVIDIA/implindex/pkg/serializer"
)

const (
	pathHealth       = "/health"
	pathReady        = "/ready"
	pathMetrics      = "/metrics"
	pathTraits       = "/v1/traits"
	pathImplementors = "/v1/implementors"
	pathFragments    = "/v1/fragments"
)

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	// System endpoints (no rate limiting)
	mux.HandleFunc(pathHealth, s.handleHealth)
	mux.HandleFunc(pathReady, s.handleReady)
	mux.Handle(pathMetrics, promhttp.Handler())

	// API endpoints with middleware
	mux.HandleFunc(pathTraits, s.withMiddleware(s.handleTraits))
	mux.HandleFunc(pathImplementors, s.withMiddleware(s.handleImplementors))
	mux.Handle(pathFragments, http.TimeoutHandler(
		s.withMiddleware(s.handleFragments),
		defaults.PublishHandlerTimeout,
		"fragment publication timed out"))

	reserved := s.builtinRoutes()
	for path, handler := range s.config.Handlers {
		if slices.Contains(reserved, path) {
			slog.Warn("ignoring handler for built-in route", "path", path)
			continue
		}
		if path == "/" {
			mux.HandleFunc(path, handler)
			continue
		}
		mux.HandleFunc(path, s.withMiddleware(handler))
	}

	return mux
}

func (s *Server) builtinRoutes() []string {
	return []string{pathHealth, pathReady, pathMetrics, pathTraits, pathImplementors, pathFragments}
}

// routes lists everything the server answers, for the root document.
func (s *Server) routes() []string {
	routes := []string{
		"GET " + pathTraits,
		"GET " + pathImplementors,
		"POST " + pathFragments,
		"GET " + pathHealth,
		"GET " + pathReady,
		"GET " + pathMetrics,
	}
	for path := range s.config.Handlers {
		if path != "/" && !slices.Contains(s.builtinRoutes(), path) {
			routes = append(routes, path)
		}
	}
	slices.Sort(routes[len(s.builtinRoutes()):])
	return routes
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, r, http.MethodGet)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	slog.Debug("handling default route",
		"path", r.URL.Path,
		"method", r.Method,
		"remote_addr", r.RemoteAddr,
		"user_agent", r.UserAgent(),
	)

	resp := struct {
		Name      string   `json:"name"`
		Version   string   `json:"version"`
		Ready     bool     `json:"ready"`
		Timestamp string   `json:"timestamp"`
		Routes    []string `json:"routes"`
	}{
		Name:      s.config.Name,
		Version:   s.config.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Routes:    s.routes(),
	}

	s.mu.RLock()
	resp.Ready = s.ready
	s.mu.RUnlock()

	serializer.RespondJSON(w, http.StatusOK, resp)
}
