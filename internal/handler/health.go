package handler

import "net/http"

// HandleHealthz reports process liveness.
//
//	@Summary  Health check
//	@Tags     ops
//	@Produce  json
//	@Success  200  {object}  map[string]string
//	@Router   /healthz [get]
func HandleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
