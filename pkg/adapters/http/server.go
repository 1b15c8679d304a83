package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/labyrinth"
	"github.com/aretw0/labyrinth/internal/compiler"
	"github.com/aretw0/labyrinth/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxSamples bounds the sampled travel times computed per request.
const maxSamples = 100

// Engine defines the subset of the Labyrinth engine served over HTTP.
type Engine interface {
	Mazes() ([]string, error)
	Describe(name string) (*labyrinth.Description, error)
	Validate(name string) error
	Discover(ctx context.Context, name, startID, policy string) (*labyrinth.Result, error)
	SampleTravelTime(route *domain.Route) (int, error)
	Route(ctx context.Context, id string) (*domain.RouteRecord, error)
	Routes(ctx context.Context) ([]string, error)
	DeleteRoute(ctx context.Context, id string) error
}

// Server serves the JSON API for an Engine.
type Server struct {
	Engine  Engine
	Logger  *slog.Logger
	Metrics http.Handler
}

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// WithMetricsHandler mounts h (usually promhttp.HandlerFor) on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	server := &Server{
		Engine: engine,
		Logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)
	if validator, err := loadRequestValidator(); err != nil {
		server.Logger.Error("request validation disabled", "error", err)
	} else {
		r.Use(validator.middleware(server))
	}

	r.Get("/openapi.yaml", server.GetOpenAPI)
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/mazes", server.ListMazes)
	r.Get("/mazes/{name}", server.DescribeMaze)
	r.Get("/mazes/{name}/validate", server.ValidateMaze)
	r.Post("/mazes/{name}/routes", server.DiscoverRoute)
	r.Get("/routes", server.ListRoutes)
	r.Get("/routes/{id}", server.GetRoute)
	r.Delete("/routes/{id}", server.DeleteRoute)
	if server.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.Metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// DiscoverRequest is the body of POST /mazes/{name}/routes. Every field is optional.
type DiscoverRequest struct {
	Start   string `json:"start,omitempty"`
	Policy  string `json:"policy,omitempty"`
	Samples int    `json:"samples,omitempty"`
}

// DiscoverResponse carries the persisted record plus its textual rendering.
type DiscoverResponse struct {
	Route     *domain.RouteRecord `json:"route"`
	Rendering string              `json:"rendering"`
	Samples   []int               `json:"samples,omitempty"`
}

// ValidateResponse is returned by GET /mazes/{name}/validate.
type ValidateResponse struct {
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "labyrinth-http",
		"version": labyrinth.Version,
	})
}

// ListMazes handles the GET /mazes request.
func (s *Server) ListMazes(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.Mazes()
	if err != nil {
		s.writeError(w, "list mazes", err)
		return
	}
	s.writeJSON(w, http.StatusOK, names)
}

// DescribeMaze handles the GET /mazes/{name} request.
func (s *Server) DescribeMaze(w http.ResponseWriter, r *http.Request) {
	desc, err := s.Engine.Describe(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, "describe maze", err)
		return
	}
	s.writeJSON(w, http.StatusOK, desc)
}

// ValidateMaze handles the GET /mazes/{name}/validate request.
// Definition problems are reported in the body with status 200.
func (s *Server) ValidateMaze(w http.ResponseWriter, r *http.Request) {
	err := s.Engine.Validate(chi.URLParam(r, "name"))
	var defErr *compiler.DefinitionError
	switch {
	case err == nil:
		s.writeJSON(w, http.StatusOK, ValidateResponse{Valid: true})
	case errors.As(err, &defErr):
		s.writeJSON(w, http.StatusOK, ValidateResponse{Valid: false, Problems: defErr.Problems})
	default:
		s.writeError(w, "validate maze", err)
	}
}

// DiscoverRoute handles the POST /mazes/{name}/routes request.
func (s *Server) DiscoverRoute(w http.ResponseWriter, r *http.Request) {
	var body DiscoverRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.Logger.Warn("DiscoverRoute: invalid request body", "error", err)
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return
		}
	}
	if body.Samples < 0 || body.Samples > maxSamples {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "samples must be between 0 and 100"})
		return
	}

	res, err := s.Engine.Discover(r.Context(), chi.URLParam(r, "name"), body.Start, body.Policy)
	if err != nil {
		s.writeError(w, "discover route", err)
		return
	}

	resp := DiscoverResponse{
		Route:     res.Record,
		Rendering: res.Discovery.Route.String(),
	}
	// Sampling a route without passage only repeats Unreachable.
	for i := 0; res.Record.Reachable && i < body.Samples; i++ {
		t, err := s.Engine.SampleTravelTime(res.Discovery.Route)
		if err != nil {
			s.writeError(w, "sample travel time", err)
			return
		}
		resp.Samples = append(resp.Samples, t)
	}
	s.writeJSON(w, http.StatusCreated, resp)
}

// ListRoutes handles the GET /routes request.
func (s *Server) ListRoutes(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Engine.Routes(r.Context())
	if err != nil {
		s.writeError(w, "list routes", err)
		return
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// GetRoute handles the GET /routes/{id} request.
func (s *Server) GetRoute(w http.ResponseWriter, r *http.Request) {
	rec, err := s.Engine.Route(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, "get route", err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// DeleteRoute handles the DELETE /routes/{id} request.
func (s *Server) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.DeleteRoute(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, "delete route", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err)
	} else {
		s.Logger.Debug(op+" rejected", "error", err, "status", status)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	var defErr *compiler.DefinitionError
	switch {
	case errors.Is(err, domain.ErrMazeNotFound),
		errors.Is(err, domain.ErrRouteNotFound),
		errors.Is(err, domain.ErrCellNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownPolicy):
		return http.StatusBadRequest
	case errors.As(err, &defErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
