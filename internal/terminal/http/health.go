package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/gemterm/internal/terminal/store"
	"github.com/aussiebroadwan/gemterm/pkg/httpx"
	"github.com/aussiebroadwan/gemterm/pkg/jwtx"
	"github.com/aussiebroadwan/gemterm/pkg/termsdk"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning uptime and version. Always 200 while the process is serving.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	termsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, termsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe checking the database and session signing keys.
//	@Description	The analysis check reports "fallback" when no generative provider is configured; that does not make the service unready.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	termsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	termsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	keys *jwtx.KeyManager,
	analysisConfigured bool,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &termsdk.HealthChecks{
			Database: "ok",
			Signer:   "ok",
			Analysis: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if keys == nil || keys.NumKeys() == 0 {
			checks.Signer = "error: no keys loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		if !analysisConfigured {
			checks.Analysis = "fallback"
		}

		httpx.WriteJSON(w, statusCode, termsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
