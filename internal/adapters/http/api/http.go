// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/blogroutes/internal/domain/blog"
	"github.com/okian/blogroutes/internal/domain/model"
	"github.com/okian/blogroutes/pkg/logger"
	"github.com/okian/blogroutes/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HandleFunc is a pure route handler: it parses its inputs from the request
// and returns the message to serialize, or an error to translate.
type HandleFunc func(r *http.Request) (model.Message, error)

// Route is one entry of the static route table.
type Route struct {
	Method  string
	Pattern string
	Name    string
	Handle  HandleFunc
}

// Server wires HTTP routes for the blog API.
type Server struct {
	log             logger.Logger
	exposeMetrics   bool
	routes          []Route
	healthHandler   *HealthHandler
	fallbackHandler http.HandlerFunc
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for access and error logs.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetricsEndpoint controls whether GET /metrics is registered.
func WithMetricsEndpoint(enabled bool) Option {
	return func(s *Server) {
		s.exposeMetrics = enabled
	}
}

// NewServer creates a new API server. The route table is built here once and
// never changes afterwards.
func NewServer(opts ...Option) *Server {
	s := &Server{
		log:           logger.Nop(),
		exposeMetrics: true,
		healthHandler: NewHealthHandler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes = blogRoutes()
	return s
}

// Routes returns a copy of the route table in registration order.
func (s *Server) Routes() []Route {
	out := make([]Route, len(s.routes))
	copy(out, s.routes)
	return out
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	for _, rt := range s.routes {
		mux.HandleFunc(rt.Method+" "+rt.Pattern, MetricsMiddleware(s.serve(rt), rt.Name))
	}
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	if s.exposeMetrics {
		mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	}
	mux.HandleFunc("/", MetricsMiddleware(s.fallback(mux), "unmatched"))
}

// Handler wraps h with request id and access logging middleware.
func (s *Server) Handler(h http.Handler) http.Handler {
	return RequestIDMiddleware(AccessLogMiddleware(s.log, h))
}

// serve adapts a pure route handler to net/http.
func (s *Server) serve(rt Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg, err := rt.Handle(r)
		if err == nil {
			writeJSON(w, http.StatusOK, msg)
			return
		}

		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			for _, f := range verr.Fields {
				metrics.RecordValidationFailure(rt.Name, f.Param())
			}
			s.log.Debug(r.Context(), "request rejected", logger.String("route", rt.Name), logger.Error(err))
			writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Detail: verr.Fields})
		case errors.Is(err, blog.ErrBlogNotFound):
			metrics.RecordNotFound(rt.Name)
			writeDetail(w, http.StatusNotFound)
		default:
			s.log.Error(r.Context(), "handler failed", logger.String("route", rt.Name), logger.Error(err))
			writeDetail(w, http.StatusInternalServerError)
		}
	}
}

// fallback answers requests no route matched. A trailing slash on a known
// path redirects to the path without it, a known path with another method
// gets 405, anything else 404.
func (s *Server) fallback(mux *http.ServeMux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if path := r.URL.Path; len(path) > 1 && strings.HasSuffix(path, "/") {
			trimmed := strings.TrimSuffix(path, "/")
			if routed(mux, r, trimmed) {
				target := trimmed
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				w.Header().Set("Location", target)
				w.WriteHeader(http.StatusTemporaryRedirect)
				return
			}
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead && routed(mux, r, r.URL.Path) {
			w.Header().Set("Allow", "GET, HEAD")
			writeDetail(w, http.StatusMethodNotAllowed)
			return
		}
		metrics.RecordNotFound("unmatched")
		writeDetail(w, http.StatusNotFound)
	}
}

// routed reports whether a GET for path reaches a registered route rather
// than the fallback.
func routed(mux *http.ServeMux, r *http.Request, path string) bool {
	get := r.Clone(r.Context())
	get.Method = http.MethodGet
	get.URL.Path = path
	get.URL.RawPath = ""
	_, pattern := mux.Handler(get)
	return pattern != "" && pattern != "/"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail writes {"detail": <status text>}.
func writeDetail(w http.ResponseWriter, status int) {
	writeJSON(w, status, detailResponse{Detail: http.StatusText(status)})
}
