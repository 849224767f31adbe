// Package server exposes projections and the target solver over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/theirongolddev/lifeplan/internal/config"
	"github.com/theirongolddev/lifeplan/internal/model"
	"github.com/theirongolddev/lifeplan/internal/projection"
	"github.com/theirongolddev/lifeplan/internal/store"
)

// Calculation outcomes reported in response metadata.
const (
	OutcomeSuccess = "SUCCESS"
	OutcomeFailure = "FAILURE"
)

const maxBodySize = 1 << 20

// Config configures the API service.
type Config struct {
	Addr       string
	Tables     config.CostTables
	Cache      store.Cache // nil disables memoization
	Iterations int
	UpperBound float64
}

// Metadata describes one calculation.
type Metadata struct {
	CalculationID string `json:"calculation_id"`
	StartedAt     string `json:"started_at"`
	CompletedAt   string `json:"completed_at"`
	DurationMs    int64  `json:"duration_ms"`
	Outcome       string `json:"outcome"`
}

// Envelope wraps every successful calculation response.
type Envelope struct {
	Metadata Metadata `json:"metadata"`
	Result   any      `json:"result"`
}

// ErrorResponse is returned for rejected requests.
type ErrorResponse struct {
	Status  int                `json:"status"`
	Message string             `json:"message"`
	Fields  []model.FieldError `json:"fields,omitempty"`
}

// Status is the service state returned by /v1/status.
type Status struct {
	StartedAt    time.Time `json:"started_at"`
	Requests     int64     `json:"requests"`
	Failures     int64     `json:"failures"`
	Solves       int64     `json:"solves"`
	CacheHits    int64     `json:"cache_hits"`
	CacheEnabled bool      `json:"cache_enabled"`
	LastError    string    `json:"last_error,omitempty"`
}

// PlanRequest is the body of /v1/project and /v1/summary.
type PlanRequest struct {
	Plan *model.HouseholdPlan `json:"plan"`
}

// SolveRequest is the body of /v1/solve.
type SolveRequest struct {
	Plan   *model.HouseholdPlan `json:"plan"`
	Target projection.Target    `json:"target"`
}

// SolveResult is the result of /v1/solve.
type SolveResult struct {
	projection.Solution
	Target projection.Target `json:"target"`
	Cached bool              `json:"cached"`
}

// CompareRequest is the body of /v1/compare.
type CompareRequest struct {
	Plan    *model.HouseholdPlan `json:"plan"`
	Variant model.Variant        `json:"variant"`
}

// CompareResult is the result of /v1/compare.
type CompareResult struct {
	Name string `json:"name,omitempty"`
	projection.Comparison
}

// Service serves the lifeplan HTTP API.
type Service struct {
	cfg Config

	mu        sync.RWMutex
	startedAt time.Time
	requests  int64
	failures  int64
	solves    int64
	cacheHits int64
	lastError string

	now func() time.Time
}

// New returns a configured API service.
func New(cfg Config) *Service {
	if cfg.Addr == "" {
		cfg.Addr = config.DefaultConfig().Server.Addr
	}
	if cfg.Tables.Education == nil {
		cfg.Tables = config.DefaultCostTables()
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = projection.DefaultIterations
	}
	if cfg.UpperBound <= 0 {
		cfg.UpperBound = projection.DefaultUpperBound
	}

	return &Service{
		cfg:       cfg,
		startedAt: time.Now(),
		now:       time.Now,
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (s *Service) Run(ctx context.Context) error {
	srv := &fasthttp.Server{
		Handler:            s.Handler,
		Name:               "lifeplan",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       30 * time.Second,
		MaxRequestBodySize: maxBodySize,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("lifeplan api listening on %s", s.cfg.Addr)
		if err := srv.ListenAndServe(s.cfg.Addr); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("api server shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		return fmt.Errorf("api http server: %w", err)
	}
}

// Handler routes a request to its endpoint.
func (s *Service) Handler(ctx *fasthttp.RequestCtx) {
	s.mu.Lock()
	s.requests++
	s.mu.Unlock()

	path := string(ctx.Path())
	get, post := ctx.IsGet(), ctx.IsPost()

	switch {
	case path == "/healthz" && get:
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString("ok\n")
	case path == "/v1/status" && get:
		s.writeJSON(ctx, fasthttp.StatusOK, s.snapshotStatus())
	case path == "/v1/costs" && get:
		s.calculate(ctx, func() (any, string, error) {
			return s.cfg.Tables, OutcomeSuccess, nil
		})
	case path == "/v1/project" && post:
		s.handleProject(ctx)
	case path == "/v1/summary" && post:
		s.handleSummary(ctx)
	case path == "/v1/solve" && post:
		s.handleSolve(ctx)
	case path == "/v1/compare" && post:
		s.handleCompare(ctx)
	case isRoute(path):
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed", nil)
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, "not found", nil)
	}
}

func isRoute(path string) bool {
	switch path {
	case "/healthz", "/v1/status", "/v1/costs", "/v1/project", "/v1/summary", "/v1/solve", "/v1/compare":
		return true
	}
	return false
}

func (s *Service) handleProject(ctx *fasthttp.RequestCtx) {
	var req PlanRequest
	if !s.decode(ctx, &req) || !s.validatePlan(ctx, req.Plan) {
		return
	}
	s.calculate(ctx, func() (any, string, error) {
		return projection.Project(*req.Plan, s.cfg.Tables), OutcomeSuccess, nil
	})
}

func (s *Service) handleSummary(ctx *fasthttp.RequestCtx) {
	var req PlanRequest
	if !s.decode(ctx, &req) || !s.validatePlan(ctx, req.Plan) {
		return
	}
	s.calculate(ctx, func() (any, string, error) {
		sum := projection.Summarize(projection.Project(*req.Plan, s.cfg.Tables))
		return sum, OutcomeSuccess, nil
	})
}

func (s *Service) handleSolve(ctx *fasthttp.RequestCtx) {
	var req SolveRequest
	if !s.decode(ctx, &req) || !s.validatePlan(ctx, req.Plan) {
		return
	}
	if req.Target.Age <= 0 || math.IsNaN(req.Target.Asset) || math.IsInf(req.Target.Asset, 0) {
		s.writeError(ctx, fasthttp.StatusBadRequest, "target needs a positive age and a finite asset", nil)
		return
	}

	s.calculate(ctx, func() (any, string, error) {
		sol, hit, err := store.Solve(ctx, s.cfg.Cache, store.Query{
			Plan:       *req.Plan,
			Target:     req.Target,
			Tables:     s.cfg.Tables,
			Iterations: s.cfg.Iterations,
			UpperBound: s.cfg.UpperBound,
		})
		if err != nil {
			// The answer is still valid; only memoization failed.
			log.Printf("lifeplan api solver cache: %v", err)
			s.recordError(err)
		}

		s.mu.Lock()
		s.solves++
		if hit {
			s.cacheHits++
		}
		s.mu.Unlock()

		outcome := OutcomeSuccess
		if !sol.Reached {
			outcome = OutcomeFailure
		}
		return SolveResult{Solution: sol, Target: req.Target, Cached: hit}, outcome, nil
	})
}

func (s *Service) handleCompare(ctx *fasthttp.RequestCtx) {
	var req CompareRequest
	if !s.decode(ctx, &req) || !s.validatePlan(ctx, req.Plan) {
		return
	}
	if req.Variant.IsZero() {
		s.writeError(ctx, fasthttp.StatusBadRequest, "variant changes nothing", nil)
		return
	}
	variant := req.Variant.Apply(*req.Plan)
	if err := variant.Validate(); err != nil {
		s.writeValidation(ctx, "invalid variant", err)
		return
	}

	s.calculate(ctx, func() (any, string, error) {
		c := projection.Compare(*req.Plan, variant, s.cfg.Tables)
		return CompareResult{Name: req.Variant.Name, Comparison: c}, OutcomeSuccess, nil
	})
}

// calculate times fn and writes its result inside an Envelope.
func (s *Service) calculate(ctx *fasthttp.RequestCtx, fn func() (any, string, error)) {
	started := s.now()
	result, outcome, err := fn()
	if err != nil {
		s.writeError(ctx, fasthttp.StatusInternalServerError, err.Error(), nil)
		return
	}
	completed := s.now()

	s.writeJSON(ctx, fasthttp.StatusOK, Envelope{
		Metadata: Metadata{
			CalculationID: uuid.NewString(),
			StartedAt:     started.UTC().Format(time.RFC3339Nano),
			CompletedAt:   completed.UTC().Format(time.RFC3339Nano),
			DurationMs:    completed.Sub(started).Milliseconds(),
			Outcome:       outcome,
		},
		Result: result,
	})
}

func (s *Service) decode(ctx *fasthttp.RequestCtx, v any) bool {
	body := ctx.PostBody()
	if len(bytes.TrimSpace(body)) == 0 {
		s.writeError(ctx, fasthttp.StatusBadRequest, "request body is empty", nil)
		return false
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error(), nil)
		return false
	}
	return true
}

func (s *Service) validatePlan(ctx *fasthttp.RequestCtx, plan *model.HouseholdPlan) bool {
	if plan == nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "plan is required", nil)
		return false
	}
	if err := plan.Validate(); err != nil {
		s.writeValidation(ctx, "invalid plan", err)
		return false
	}
	return true
}

func (s *Service) writeValidation(ctx *fasthttp.RequestCtx, message string, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		s.writeError(ctx, fasthttp.StatusUnprocessableEntity, message, verr.Fields)
		return
	}
	s.writeError(ctx, fasthttp.StatusUnprocessableEntity, message+": "+err.Error(), nil)
}

func (s *Service) writeError(ctx *fasthttp.RequestCtx, status int, message string, fields []model.FieldError) {
	s.mu.Lock()
	s.failures++
	s.mu.Unlock()

	s.writeJSON(ctx, status, ErrorResponse{Status: status, Message: message, Fields: fields})
}

func (s *Service) writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("lifeplan api encode: %v", err)
		s.recordError(err)
		ctx.Error("encoding response failed", fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

func (s *Service) recordError(err error) {
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:    s.startedAt,
		Requests:     s.requests,
		Failures:     s.failures,
		Solves:       s.solves,
		CacheHits:    s.cacheHits,
		CacheEnabled: s.cfg.Cache != nil,
		LastError:    s.lastError,
	}
}
