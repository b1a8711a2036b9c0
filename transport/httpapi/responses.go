package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/ravigohel142996/itihas-heritage-assistant/core/heritage"
)

// statusCode maps a response class onto an HTTP status. Degraded payloads are
// 200s: they carry well-formed content the UI renders, with the machine-
// readable reason inside the body.
func statusCode(status heritage.Status) int {
	if status == heritage.StatusRejected {
		return http.StatusTooManyRequests
	}
	return http.StatusOK
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}
