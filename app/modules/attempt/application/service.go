package attemptservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	attemptdb "github.com/piclink-games/piclink-backend/app/modules/attempt/infrastructure/repositories"
	challengedb "github.com/piclink-games/piclink-backend/app/modules/challenge/infrastructure/repositories"
	leaderboardservice "github.com/piclink-games/piclink-backend/app/modules/leaderboard/application"
	userdb "github.com/piclink-games/piclink-backend/app/modules/user/infrastructure/repositories"
	"github.com/piclink-games/piclink-backend/app/shared/attr"
	"github.com/piclink-games/piclink-backend/app/shared/observability/metrics"
	"github.com/piclink-games/piclink-backend/app/shared/results"
	"github.com/piclink-games/piclink-backend/app/shared/retry"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// UserCredits is the slice of the user repository the tracker needs:
// durable point/exp adjustment inside the attempt transaction.
// userdb.Repository satisfies it.
type UserCredits interface {
	EnsureUser(ctx context.Context, db bun.IDB, user *userdb.User) error
	CreditPoints(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, points sharedtypes.Points, exp sharedtypes.Exp, challengesSolved int) error
}

// AttemptService implements the Service interface.
type AttemptService struct {
	repo        attemptdb.Repository
	challenges  challengedb.Repository
	credits     UserCredits
	coordinator leaderboardservice.Coordinator
	logger      *slog.Logger
	metrics     metrics.AttemptMetrics
	tracer      trace.Tracer
	db          *bun.DB
	retryPolicy retry.Policy
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(
	repo attemptdb.Repository,
	challenges challengedb.Repository,
	credits UserCredits,
	coordinator leaderboardservice.Coordinator,
	logger *slog.Logger,
	attemptMetrics metrics.AttemptMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *AttemptService {
	return &AttemptService{
		repo:        repo,
		challenges:  challenges,
		credits:     credits,
		coordinator: coordinator,
		logger:      logger,
		metrics:     attemptMetrics,
		tracer:      tracer,
		db:          db,
		retryPolicy: retry.DefaultPolicy(),
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *AttemptService,
	ctx context.Context,
	operationName string,
	userID sharedtypes.UserID,
	challengeID sharedtypes.ChallengeID,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {

	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("user_id", userID.String()),
		attribute.String("challenge_id", challengeID.String()),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, operationName+" triggered",
		attr.String("operation", operationName),
		attr.UserID("user_id", userID),
		attr.ChallengeID("challenge_id", challengeID),
		attr.ExtractCorrelationID(ctx),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.UserID("user_id", userID),
				attr.ChallengeID("challenge_id", challengeID),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.UserID("user_id", userID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.UserID("user_id", userID),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.metrics.RecordOperationSuccess(ctx, operationName)
	}

	return result, nil
}

// creditUser adjusts the player's durable totals within the surrounding
// transaction, creating a minimal user row first if none exists yet.
func (s *AttemptService) creditUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, points sharedtypes.Points, exp sharedtypes.Exp, challengesSolved int) error {
	err := s.credits.CreditPoints(ctx, db, userID, points, exp, challengesSolved)
	if !errors.Is(err, userdb.ErrNotFound) {
		return err
	}
	if err := s.credits.EnsureUser(ctx, db, &userdb.User{ID: userID}); err != nil {
		return err
	}
	return s.credits.CreditPoints(ctx, db, userID, points, exp, challengesSolved)
}

// runInTx ensures fn runs within a transaction when a database is attached;
// unit tests run with a nil db and plain repository calls.
func (s *AttemptService) runInTx(ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}
