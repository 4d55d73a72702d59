package engagementrouter

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/piclink-games/piclink-backend/app/eventbus"
	engagementservice "github.com/piclink-games/piclink-backend/app/modules/engagement/application"
	engagementhandlers "github.com/piclink-games/piclink-backend/app/modules/engagement/infrastructure/handlers"
	"github.com/piclink-games/piclink-backend/app/shared/attr"
	"github.com/piclink-games/piclink-backend/app/shared/events"
	sharedmetrics "github.com/piclink-games/piclink-backend/app/shared/observability/metrics"
	"github.com/piclink-games/piclink-backend/app/shared/utils"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

// EngagementRouter wires comment events into the reward guard.
type EngagementRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     eventbus.EventBus
	publisher      eventbus.EventBus
	helper         utils.Helpers
	tracer         trace.Tracer
	metricsBuilder *metrics.PrometheusMetricsBuilder
	metricsEnabled bool
}

func NewEngagementRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
	prometheusRegistry *prometheus.Registry,
) *EngagementRouter {
	inTestEnv := os.Getenv(TestEnvironmentFlag) == TestEnvironmentValue

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && !inTestEnv {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}
	return &EngagementRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		publisher:      publisher,
		helper:         utils.NewHelpers(),
		tracer:         tracer,
		metricsBuilder: metricsBuilder,
		metricsEnabled: prometheusRegistry != nil && !inTestEnv,
	}
}

// Configure registers middleware and handlers on the router held by the
// EngagementRouter.
func (r *EngagementRouter) Configure(routerCtx context.Context, service engagementservice.Service, engagementMetrics sharedmetrics.EngagementMetrics) error {
	if r.metricsEnabled && r.metricsBuilder != nil {
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	handlers := engagementhandlers.NewEngagementHandlers(service, r.logger, r.tracer, r.helper, engagementMetrics)

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
	)

	if err := r.RegisterHandlers(routerCtx, handlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// RegisterHandlers maps event topics to handlers and publishes any follow-up
// messages on the topic recorded in their metadata.
func (r *EngagementRouter) RegisterHandlers(ctx context.Context, handlers engagementhandlers.Handlers) error {
	eventsToHandlers := map[string]message.HandlerFunc{
		events.CommentCreatedV1: handlers.HandleCommentCreated,
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := fmt.Sprintf("engagement.%s", topic)
		r.Router.AddHandler(
			handlerName,
			topic,
			r.subscriber,
			"",
			nil,
			func(msg *message.Message) ([]*message.Message, error) {
				messages, err := handlerFunc(msg)
				if err != nil {
					r.logger.ErrorContext(ctx, "Error processing message",
						attr.String("message_id", msg.UUID),
						attr.Error(err),
					)
					return nil, err
				}
				for _, m := range messages {
					publishTopic := m.Metadata.Get("topic")
					if publishTopic == "" {
						r.logger.Error("handler message missing publish topic, dropped",
							attr.String("handler", handlerName),
							attr.String("message_id", m.UUID),
						)
						continue
					}
					if err := r.publisher.Publish(publishTopic, m); err != nil {
						return nil, fmt.Errorf("failed to publish to %s: %w", publishTopic, err)
					}
				}
				return nil, nil
			},
		)
	}
	return nil
}

func (r *EngagementRouter) Close() error {
	return r.Router.Close()
}
