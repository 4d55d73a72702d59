package engagementhandlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"

	engagementservice "github.com/piclink-games/piclink-backend/app/modules/engagement/application"
	"github.com/piclink-games/piclink-backend/app/shared/attr"
	"github.com/piclink-games/piclink-backend/app/shared/observability/metrics"
	"github.com/piclink-games/piclink-backend/app/shared/utils"
)

// EngagementHandlers handles engagement events.
type EngagementHandlers struct {
	service        engagementservice.Service
	logger         *slog.Logger
	tracer         trace.Tracer
	metrics        metrics.EngagementMetrics
	helpers        utils.Helpers
	handlerWrapper func(handlerName string, unmarshalTo interface{}, handlerFunc func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error)) message.HandlerFunc
}

// NewEngagementHandlers creates a new EngagementHandlers.
func NewEngagementHandlers(
	service engagementservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
	helpers utils.Helpers,
	engagementMetrics metrics.EngagementMetrics,
) Handlers {
	return &EngagementHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		helpers: helpers,
		metrics: engagementMetrics,
		handlerWrapper: func(handlerName string, unmarshalTo interface{}, handlerFunc func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error)) message.HandlerFunc {
			return handlerWrapper(handlerName, unmarshalTo, handlerFunc, logger, engagementMetrics, tracer, helpers)
		},
	}
}

// handlerWrapper handles the tracing, logging, and metrics common to all
// handlers.
func handlerWrapper(
	handlerName string,
	unmarshalTo interface{},
	handlerFunc func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error),
	logger *slog.Logger,
	engagementMetrics metrics.EngagementMetrics,
	tracer trace.Tracer,
	helpers utils.Helpers,
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx, span := tracer.Start(msg.Context(), handlerName)
		defer span.End()

		engagementMetrics.RecordHandlerAttempt(ctx, handlerName)

		startTime := time.Now()
		defer func() {
			engagementMetrics.RecordHandlerDuration(ctx, handlerName, time.Since(startTime))
		}()

		logger.InfoContext(ctx, handlerName+" triggered",
			attr.String("message_id", msg.UUID),
			attr.String("correlation_id", msg.Metadata.Get("correlation_id")),
		)

		if unmarshalTo != nil {
			if err := helpers.UnmarshalPayload(msg, unmarshalTo); err != nil {
				logger.ErrorContext(ctx, "Failed to unmarshal payload",
					attr.String("message_id", msg.UUID),
					attr.Error(err),
				)
				engagementMetrics.RecordHandlerFailure(ctx, handlerName)
				return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
			}
		}

		result, err := handlerFunc(ctx, msg, unmarshalTo)
		if err != nil {
			logger.ErrorContext(ctx, "Error in "+handlerName,
				attr.String("message_id", msg.UUID),
				attr.Error(err),
			)
			engagementMetrics.RecordHandlerFailure(ctx, handlerName)
			return nil, err
		}

		return result, nil
	}
}
