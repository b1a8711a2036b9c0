package health

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/ravigohel142996/itihas-heritage-assistant/core/logger"
)

// Probe verifies one service dependency.
type Probe func(context.Context) error

// Readiness verifies every dependency probe. Returns "READY" when all pass,
// 503 when any fail. With no probes it behaves like Liveness.
func Readiness(log *slog.Logger, probes ...Probe) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return func(w http.ResponseWriter, r *http.Request) {
		for _, probe := range probes {
			if err := probe(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				http.Error(w, "NOT READY", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
