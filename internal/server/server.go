package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/uwimana/agritwin/internal/config"
	"github.com/uwimana/agritwin/internal/engine"
	"github.com/uwimana/agritwin/pkg/constants"
	"github.com/uwimana/agritwin/pkg/histogram"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger          *zap.Logger
	cfg             *config.Configuration
	eng             *engine.Engine
	maxRequestBytes int64
	requestTimeout  time.Duration
	version         string
	warnings        []string
}

// NewHandler constructs the HTTP handler that serves the dashboard and
// projection API. The configuration is read-only after this point and
// must pass startup validation; every request runs against the same
// calibrated parameters and lever table.
func NewHandler(logger *zap.Logger, cfg *config.Configuration, srvCfg *Config, version string) (http.Handler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.DefaultConfiguration()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	maxRequestBytes := constants.DefaultMaxRequestBytes
	requestTimeout := mustDefaultTimeout()
	if srvCfg != nil {
		if srvCfg.RequestBytes() > 0 {
			maxRequestBytes = srvCfg.RequestBytes()
		}
		if srvCfg.Timeout() > 0 {
			requestTimeout = srvCfg.Timeout()
		}
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:          logger,
		cfg:             cfg,
		eng:             engine.New(logger, cfg.Interventions),
		maxRequestBytes: maxRequestBytes,
		requestTimeout:  requestTimeout,
		version:         trimmedVersion,
		warnings:        cfg.ValidateConfiguration(),
	}

	mux := http.NewServeMux()

	// Projection API endpoint
	mux.HandleFunc("/api/projection", h.handleProjection)

	// Per-lever sensitivity analysis
	mux.HandleFunc("/api/sensitivity", h.handleSensitivity)

	// Model metadata for the UI lever panel
	mux.HandleFunc("/api/model-params", h.handleModelParams)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	// Liveness probe
	mux.HandleFunc("/health", h.handleHealth)

	// Static assets (web UI)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	mux.Handle("/", fileServer)

	return mux, nil
}

func mustDefaultTimeout() time.Duration {
	d, err := time.ParseDuration(constants.DefaultRequestTimeout)
	if err != nil {
		panic(fmt.Sprintf("invalid default request timeout: %v", err))
	}
	return d
}

type projectionRequest struct {
	Interventions map[string]float64 `json:"interventions"`
	NSimulations  int                `json:"n_simulations"`
	Seed          *int64             `json:"seed"`
}

type projectionResponse struct {
	Result    engine.Result        `json:"result"`
	Histogram *histogram.Histogram `json:"histogram,omitempty"`
	Vector    []float64            `json:"vector"`
	Runs      int                  `json:"runs"`
	Seed      int64                `json:"seed"`
	Warnings  []string             `json:"warnings,omitempty"`
	Duration  string               `json:"duration"`
}

// decodeRequest parses and bounds one API request body. A body without
// an interventions payload is an input validation error at this
// boundary; individual levers omitted from the payload are
// default-filled later.
func (h *handler) decodeRequest(w http.ResponseWriter, r *http.Request, op string) (projectionRequest, bool) {
	if h.maxRequestBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestBytes)
	}

	var payload projectionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestBytes), op)
			return payload, false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return payload, false
	}

	if payload.Interventions == nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing interventions payload", op)
		return payload, false
	}

	return payload, true
}

// resolveRuns applies the default and the per-request cap to a
// requested path count.
func (h *handler) resolveRuns(requested int, warnings []string) (int, []string) {
	runs := requested
	if runs <= 0 {
		runs = h.cfg.Simulation.DefaultRuns
	}
	if max := h.cfg.Simulation.MaxRuns; max > 0 && runs > max {
		warnings = append(warnings, fmt.Sprintf("requested %d paths exceeds the per-request cap, running %d", runs, max))
		runs = max
	}
	return runs, warnings
}

func (h *handler) resolveSeed(requested *int64) int64 {
	if requested != nil {
		return *requested
	}
	return h.cfg.Simulation.Seed
}

func (h *handler) handleProjection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	payload, ok := h.decodeRequest(w, r, "server.handleProjection")
	if !ok {
		return
	}

	runs, warnings := h.resolveRuns(payload.NSimulations, append([]string(nil), h.warnings...))
	seed := h.resolveSeed(payload.Seed)
	vector := engine.VectorFromRaw(h.eng.Specs(), payload.Interventions)

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	result, err := h.eng.Project(ctx, h.cfg.Parameters, vector, runs, seed)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		h.respondError(w, status, fmt.Sprintf("projection failed: %v", err))
		return
	}

	hist := histogram.Compute(result.Distribution, constants.HistogramBins)
	result.Distribution = sampleDistribution(result.Distribution, h.cfg.Simulation.MaxDistributionPoints)

	elapsed := time.Since(start)
	response := projectionResponse{
		Result:    result,
		Histogram: &hist,
		Vector:    vector,
		Runs:      result.Runs,
		Seed:      seed,
		Warnings:  warnings,
		Duration:  elapsed.String(),
	}

	h.logger.Info("projection computed",
		zap.String("op", "server.handleProjection"),
		zap.Int("runs", result.Runs),
		zap.Int64("seed", seed),
		zap.Float64("probability", result.Probability),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

type sensitivityResponse struct {
	BaselineProbability float64                  `json:"baselineProbability"`
	Levers              []engine.SensitivityEntry `json:"levers"`
	Runs                int                      `json:"runs"`
	Seed                int64                    `json:"seed"`
	Warnings            []string                 `json:"warnings,omitempty"`
	Duration            string                   `json:"duration"`
}

func (h *handler) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	payload, ok := h.decodeRequest(w, r, "server.handleSensitivity")
	if !ok {
		return
	}

	runs, warnings := h.resolveRuns(payload.NSimulations, append([]string(nil), h.warnings...))
	seed := h.resolveSeed(payload.Seed)
	baseline := engine.VectorFromRaw(h.eng.Specs(), payload.Interventions)

	// One projection per lever plus the baseline shares the budget of a
	// single request.
	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	baseProb, entries, err := h.eng.Sensitivity(ctx, h.cfg.Parameters, baseline, runs, seed)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		h.respondErrorWithOp(w, status, fmt.Sprintf("sensitivity analysis failed: %v", err), "server.handleSensitivity")
		return
	}

	elapsed := time.Since(start)

	h.logger.Info("sensitivity analysis computed",
		zap.String("op", "server.handleSensitivity"),
		zap.Int("runs", runs),
		zap.Int64("seed", seed),
		zap.Float64("baselineProbability", baseProb),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, sensitivityResponse{
		BaselineProbability: baseProb,
		Levers:              entries,
		Runs:                runs,
		Seed:                seed,
		Warnings:            warnings,
		Duration:            elapsed.String(),
	})
}

type modelParamsResponse struct {
	Parameters    engine.Parameters         `json:"parameters"`
	Interventions []engine.InterventionSpec `json:"interventions"`
	DefaultRuns   int                       `json:"defaultRuns"`
	MaxRuns       int                       `json:"maxRuns"`
	Seed          int64                     `json:"seed"`
}

func (h *handler) handleModelParams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, modelParamsResponse{
		Parameters:    h.cfg.Parameters,
		Interventions: h.eng.Specs(),
		DefaultRuns:   h.cfg.Simulation.DefaultRuns,
		MaxRuns:       h.cfg.Simulation.MaxRuns,
		Seed:          h.cfg.Simulation.Seed,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sampleDistribution sorts a copy of the distribution and thins it to
// at most max points, keeping both endpoints so the tails survive.
// Distributions already under the cap pass through untouched.
func sampleDistribution(values []float64, max int) []float64 {
	if max <= 0 || len(values) <= max {
		return values
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	sampled := make([]float64, max)
	step := float64(len(sorted)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		sampled[i] = sorted[int(float64(i)*step)]
	}
	sampled[max-1] = sorted[len(sorted)-1]
	return sampled
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondErrorWithOp(w, status, msg, "server.handleProjection")
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
