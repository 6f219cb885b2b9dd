package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/felixgeelhaar/checklist/pkg/observability"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// OwnerHeader carries the owner identity resolved by the upstream authenticator.
const OwnerHeader = "X-Owner-ID"

// CorrelationHeader lets callers thread their own correlation id through logs and events.
const CorrelationHeader = "X-Correlation-ID"

type ownerKey struct{}

// OwnerIdentity rejects requests without a valid owner identity with 401 and
// stores the owner in the request context otherwise.
func OwnerIdentity(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(OwnerHeader)
			if raw == "" {
				writeError(w, http.StatusUnauthorized, "missing "+OwnerHeader+" header")
				return
			}
			ownerID, err := uuid.Parse(raw)
			if err != nil {
				logger.DebugContext(r.Context(), "rejected owner identity", "error", err)
				writeError(w, http.StatusUnauthorized, "invalid "+OwnerHeader+" header")
				return
			}

			ctx := context.WithValue(r.Context(), ownerKey{}, ownerID)
			ctx = observability.WithOwnerID(ctx, ownerID.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerFromContext returns the owner set by OwnerIdentity.
func OwnerFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ownerKey{}).(uuid.UUID)
	return id, ok
}

// RequestLogger logs one line per request. The chi request id is copied into
// the context so every log line of the request carries it.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := observability.WithRequestID(r.Context(), chimiddleware.GetReqID(r.Context()))
			ctx = observability.WithCorrelationID(ctx, r.Header.Get(CorrelationHeader))
			r = r.WithContext(ctx)

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.InfoContext(ctx, "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				observability.DurationKey, time.Since(start).Milliseconds(),
			)
		})
	}
}
