// Package attr provides typed slog attributes shared across modules.
package attr

import (
	"context"
	"log/slog"

	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

type correlationIDKey struct{}

// WithCorrelationID stores a correlation ID on the context for later
// extraction by log statements.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationID returns the correlation ID stored on the context, if any.
func CorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// ExtractCorrelationID returns a correlation_id attribute from the context.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String("correlation_id", CorrelationID(ctx))
}

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Error(err error) slog.Attr { return slog.Any("error", err) }

func UserID(key string, id sharedtypes.UserID) slog.Attr {
	return slog.String(key, string(id))
}

func ChallengeID(key string, id sharedtypes.ChallengeID) slog.Attr {
	return slog.String(key, string(id))
}

func CommentID(key string, id sharedtypes.CommentID) slog.Attr {
	return slog.String(key, string(id))
}

func Points(key string, p sharedtypes.Points) slog.Attr {
	return slog.Int(key, int(p))
}
