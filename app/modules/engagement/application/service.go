package engagementservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	engagementdb "github.com/piclink-games/piclink-backend/app/modules/engagement/infrastructure/repositories"
	leaderboardservice "github.com/piclink-games/piclink-backend/app/modules/leaderboard/application"
	userdb "github.com/piclink-games/piclink-backend/app/modules/user/infrastructure/repositories"
	"github.com/piclink-games/piclink-backend/app/shared/attr"
	"github.com/piclink-games/piclink-backend/app/shared/observability/metrics"
	"github.com/piclink-games/piclink-backend/app/shared/retry"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// UserCredits is the slice of the user repository the guard needs to apply
// the creator bonus inside the reward transaction. userdb.Repository
// satisfies it.
type UserCredits interface {
	EnsureUser(ctx context.Context, db bun.IDB, user *userdb.User) error
	CreditPoints(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, points sharedtypes.Points, exp sharedtypes.Exp, challengesSolved int) error
}

// EngagementService implements the Service interface.
type EngagementService struct {
	rewards     engagementdb.Repository
	credits     UserCredits
	coordinator leaderboardservice.Coordinator
	logger      *slog.Logger
	metrics     metrics.EngagementMetrics
	tracer      trace.Tracer
	db          *bun.DB
	retryPolicy retry.Policy
}

// NewEngagementService creates a new EngagementService.
func NewEngagementService(
	rewards engagementdb.Repository,
	credits UserCredits,
	coordinator leaderboardservice.Coordinator,
	logger *slog.Logger,
	engagementMetrics metrics.EngagementMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *EngagementService {
	return &EngagementService{
		rewards:     rewards,
		credits:     credits,
		coordinator: coordinator,
		logger:      logger,
		metrics:     engagementMetrics,
		tracer:      tracer,
		db:          db,
		retryPolicy: retry.DefaultPolicy(),
	}
}

// serviceWrapper wraps a service operation with tracing, metrics, and panic
// recovery.
func (s *EngagementService) serviceWrapper(
	ctx context.Context,
	operationName string,
	commentID sharedtypes.CommentID,
	op func(ctx context.Context) (CommentRewardOperationResult, error),
) (result CommentRewardOperationResult, err error) {

	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("comment_id", commentID.String()),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.CommentID("comment_id", commentID),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			result = CommentRewardOperationResult{}
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.CommentID("comment_id", commentID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsSuccess() {
		s.metrics.RecordOperationSuccess(ctx, operationName)
	}

	return result, nil
}

func (s *EngagementService) runInTx(ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}
