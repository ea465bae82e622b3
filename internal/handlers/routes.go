package handlers

import "net/http"

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{Checks: deps.HealthChecks}
	analysis := AnalysisHandler{Reports: deps.Reports, Artifacts: deps.Artifacts, Limiter: deps.Limiter}

	mux.HandleFunc("/healthz", health.Handle)
	mux.HandleFunc("/api/v1/analysis", analysis.Get)
	mux.HandleFunc("/api/v1/analysis/{ref}", analysis.Get)
	mux.HandleFunc("/analysis/{ref}", analysis.Get)
}

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Reports   ReportService
	Artifacts ArtifactReader
	Limiter   RateLimiter

	// HealthChecks are reported by /healthz, keyed by dependency name.
	HealthChecks map[string]HealthCheck
}
