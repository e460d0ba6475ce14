package http

import (
	"net/http"
	"time"

	"github.com/hearthsocial/hearth/internal/security/store"
	"github.com/hearthsocial/hearth/pkg/httpx"
	"github.com/hearthsocial/hearth/pkg/jwtx"
	"github.com/hearthsocial/hearth/pkg/securitysdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Answers 200 only when the store responds to a ping and token verification keys are loaded; 503 otherwise, with the failing check named.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	securitysdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	securitysdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	keys *jwtx.KeySet,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &securitysdk.HealthChecks{
			Database: "ok",
			Keys:     "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		// Check database connectivity
		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		// Check that token verification keys are loaded
		if !keys.IsReady() {
			checks.Keys = "error: no keys loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := securitysdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		httpx.WriteJSON(w, statusCode, response)
	}
}
