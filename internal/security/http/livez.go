package http

import (
	"net/http"
	"time"

	"github.com/hearthsocial/hearth/pkg/httpx"
	"github.com/hearthsocial/hearth/pkg/securitysdk"
)

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Reports uptime and version. Answers 200 whenever the process is up, regardless of dependency state.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	securitysdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := securitysdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		}
		httpx.WriteJSON(w, http.StatusOK, response)
	}
}
