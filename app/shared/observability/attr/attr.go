// Package attr holds the slog attribute helpers used across modules so that log keys
// stay consistent.
package attr

import (
	"context"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type correlationKey struct{}

// WithCorrelationID stores a correlation ID on the context.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationIDFrom returns the correlation ID stored on the context, if any.
func CorrelationIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

// Error renders an error under the "error" key. A nil error renders as an empty string.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func GameID(key string, id uuid.UUID) slog.Attr { return slog.String(key, id.String()) }

func PlayerID(key string, id uuid.UUID) slog.Attr { return slog.String(key, id.String()) }

// ExtractCorrelationID reads the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String("correlation_id", CorrelationIDFrom(ctx))
}

// CorrelationIDFromMsg reads the correlation ID watermill's middleware stores in metadata.
func CorrelationIDFromMsg(msg *message.Message) slog.Attr {
	return slog.String("correlation_id", msg.Metadata.Get("correlation_id"))
}
