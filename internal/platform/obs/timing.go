package obs

import (
	"accident-alert-service/internal/platform/metrics"
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	reqID, _ := ctx.Value(RequestIDKey).(string)
	return reqID
}

// Time starts timing op; call the returned func with a pointer to the named error result.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			metrics.OperationDurationSeconds.WithLabelValues(name, "error").Observe(dur.Seconds())
			log.Debug().Str("req_id", reqID).Str("op", name).Dur("dur", dur).Err(*errp).Msg("operation failed")
			return
		}
		metrics.OperationDurationSeconds.WithLabelValues(name, "ok").Observe(dur.Seconds())
		log.Debug().Str("req_id", reqID).Str("op", name).Dur("dur", dur).Msg("operation done")
	}
}
