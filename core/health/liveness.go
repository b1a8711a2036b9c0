package health

import "net/http"

// Liveness indicates the service process is running. Always 200 with "ALIVE";
// no dependency checks.
func Liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ALIVE"))
	}
}
