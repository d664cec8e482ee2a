package database

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
)

// NewCommandLogger returns a command monitor that logs every command the
// driver sends. Commands slower than slowThreshold are logged at warn level;
// failures at error level. A zero threshold disables slow detection.
func NewCommandLogger(logger zerolog.Logger, slowThreshold time.Duration) *event.CommandMonitor {
	return &event.CommandMonitor{
		Started: func(_ context.Context, evt *event.CommandStartedEvent) {
			logger.Trace().
				Int64("request_id", evt.RequestID).
				Str("db", evt.DatabaseName).
				Str("command", evt.CommandName).
				RawJSON("body", []byte(evt.Command.String())).
				Msg("mongo command started")
		},
		Succeeded: func(_ context.Context, evt *event.CommandSucceededEvent) {
			e := logger.Debug()
			if slowThreshold > 0 && evt.Duration >= slowThreshold {
				e = logger.Warn().Bool("slow", true)
			}
			e.Int64("request_id", evt.RequestID).
				Str("command", evt.CommandName).
				Dur("duration", evt.Duration).
				Msg("mongo command succeeded")
		},
		Failed: func(_ context.Context, evt *event.CommandFailedEvent) {
			logger.Error().
				Int64("request_id", evt.RequestID).
				Str("command", evt.CommandName).
				Dur("duration", evt.Duration).
				Str("failure", evt.Failure).
				Msg("mongo command failed")
		},
	}
}
