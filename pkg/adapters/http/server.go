package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/goban"
	"github.com/aretw0/goban/internal/dto"
	"github.com/aretw0/goban/internal/logging"
	"github.com/aretw0/goban/internal/service"
	"github.com/aretw0/goban/pkg/domain"
	"github.com/aretw0/goban/pkg/observability"
	"github.com/aretw0/goban/pkg/rules"
	"github.com/aretw0/goban/pkg/sgf"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBody bounds request bodies; a 19x19 record with heavy commentary stays far below it.
const maxBody = 4 << 20

// Server serves the stateless game API. Every request carries its game as SGF.
type Server struct {
	svc      *service.Service
	logger   *slog.Logger
	registry *prometheus.Registry
	duration *prometheus.HistogramVec
}

// Option configures the Server.
type Option func(*config)

type config struct {
	rules    domain.Ruleset
	logger   *slog.Logger
	registry *prometheus.Registry
}

// WithRuleset sets the rules for new games and records without RU.
func WithRuleset(rs domain.Ruleset) Option {
	return func(c *config) { c.rules = rs }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithRegistry exposes metrics on an existing registry instead of a private one.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(c *config) { c.registry = reg }
}

// NewServer wires the service, the metrics and the logger.
func NewServer(opts ...Option) *Server {
	cfg := config{rules: domain.DefaultRuleset(), logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.registry == nil {
		cfg.registry = prometheus.NewRegistry()
	}

	metrics := observability.NewMetrics(cfg.registry)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "goban_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "status"},
	)
	cfg.registry.MustRegister(duration)

	return &Server{
		svc: service.New(
			goban.WithRuleset(cfg.rules),
			goban.WithLogger(cfg.logger),
			goban.WithLifecycleHooks(metrics.Hooks()),
		),
		logger:   cfg.logger,
		registry: cfg.registry,
		duration: duration,
	}
}

// NewHandler creates the HTTP handler with default options.
func NewHandler(opts ...Option) http.Handler {
	return NewServer(opts...).Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/validate", s.Validate)
		r.Post("/play", s.Play)
		r.Post("/legal", s.Legal)
		r.Post("/score", s.Score)
	})
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// observe records latency per route pattern, so that metrics stay bounded.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		s.duration.WithLabelValues(route, strconv.Itoa(rec.status)).Observe(time.Since(start).Seconds())
		s.logger.Debug("HTTP request", "method", r.Method, "route", route, "status", rec.status)
	})
}

// Validate handles POST /v1/validate. Invalid records are a 200 with valid=false.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body dto.ValidateRequest
	if !s.decode(w, r, &body) {
		return
	}
	s.respond(w, http.StatusOK, s.svc.Validate(body))
}

// Play handles POST /v1/play.
func (s *Server) Play(w http.ResponseWriter, r *http.Request) {
	var body dto.PlayRequest
	if !s.decode(w, r, &body) {
		return
	}
	resp, err := s.svc.Play(body)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, http.StatusOK, resp)
}

// Legal handles POST /v1/legal.
func (s *Server) Legal(w http.ResponseWriter, r *http.Request) {
	var body dto.GameRequest
	if !s.decode(w, r, &body) {
		return
	}
	resp, err := s.svc.Legal(body)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, http.StatusOK, resp)
}

// Score handles POST /v1/score.
func (s *Server) Score(w http.ResponseWriter, r *http.Request) {
	var body dto.ScoreRequest
	if !s.decode(w, r, &body) {
		return
	}
	resp, err := s.svc.Score(body)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.respond(w, http.StatusOK, resp)
}

// -- Helpers --

type errorBody struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "err", err)
		s.respond(w, http.StatusBadRequest, errorBody{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}

// fail maps errors to statuses: malformed input 400, rule violations 422,
// requests the game state does not allow 409.
func (s *Server) fail(w http.ResponseWriter, err error) {
	body := errorBody{Error: err.Error()}
	status := http.StatusInternalServerError

	var illegal *rules.IllegalMoveError
	var syntax *sgf.SyntaxError
	switch {
	case errors.As(err, &illegal):
		status = http.StatusUnprocessableEntity
		body.Reason = observability.Reason(illegal.Reason)
	case errors.Is(err, domain.ErrGameOver), errors.Is(err, domain.ErrNotInScoringPhase):
		status = http.StatusConflict
	case errors.As(err, &syntax):
		status = http.StatusBadRequest
		body.Line, body.Column = syntax.Line, syntax.Column
	case errors.Is(err, service.ErrBadRequest), errors.Is(err, domain.ErrOutOfBounds):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("Request failed", "err", err)
	}
	s.respond(w, status, body)
}
