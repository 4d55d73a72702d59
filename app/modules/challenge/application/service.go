package challengeservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	challengedb "github.com/piclink-games/piclink-backend/app/modules/challenge/infrastructure/repositories"
	leaderboardservice "github.com/piclink-games/piclink-backend/app/modules/leaderboard/application"
	userdb "github.com/piclink-games/piclink-backend/app/modules/user/infrastructure/repositories"
	"github.com/piclink-games/piclink-backend/app/shared/attr"
	"github.com/piclink-games/piclink-backend/app/shared/dedupe"
	"github.com/piclink-games/piclink-backend/app/shared/observability/metrics"
	"github.com/piclink-games/piclink-backend/app/shared/retry"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// UserCredits is the slice of the user repository needed to pay the creation
// bonus inside the creation transaction. userdb.Repository satisfies it.
type UserCredits interface {
	EnsureUser(ctx context.Context, db bun.IDB, user *userdb.User) error
	CreditPoints(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, points sharedtypes.Points, exp sharedtypes.Exp, challengesSolved int) error
}

// ProfileReader supplies creator profiles for read-path enrichment.
type ProfileReader interface {
	GetProfile(ctx context.Context, userID sharedtypes.UserID) (*sharedtypes.Profile, error)
}

// ChallengeService implements the Service interface.
type ChallengeService struct {
	repo        challengedb.Repository
	credits     UserCredits
	profiles    ProfileReader
	coordinator leaderboardservice.Coordinator
	dedup       *dedupe.Deduplicator
	prefetch    *PrefetchCache
	logger      *slog.Logger
	metrics     metrics.ChallengeMetrics
	tracer      trace.Tracer
	db          *bun.DB
	retryPolicy retry.Policy
}

// NewChallengeService creates a new ChallengeService.
func NewChallengeService(
	repo challengedb.Repository,
	credits UserCredits,
	profiles ProfileReader,
	coordinator leaderboardservice.Coordinator,
	logger *slog.Logger,
	challengeMetrics metrics.ChallengeMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	dedupeTimeout time.Duration,
	prefetchLimit int,
) *ChallengeService {
	return &ChallengeService{
		repo:        repo,
		credits:     credits,
		profiles:    profiles,
		coordinator: coordinator,
		dedup:       dedupe.New(dedupeTimeout),
		prefetch:    NewPrefetchCache(prefetchLimit),
		logger:      logger,
		metrics:     challengeMetrics,
		tracer:      tracer,
		db:          db,
		retryPolicy: retry.DefaultPolicy(),
	}
}

// serviceWrapper wraps a service operation with tracing, metrics, and panic
// recovery.
func serviceWrapper[T any](
	s *ChallengeService,
	ctx context.Context,
	operationName string,
	challengeID sharedtypes.ChallengeID,
	op func(ctx context.Context) (T, error),
) (result T, err error) {

	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("challenge_id", challengeID.String()),
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
				attr.ChallengeID("challenge_id", challengeID),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			var zero T
			result = zero
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.ChallengeID("challenge_id", challengeID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	s.metrics.RecordOperationSuccess(ctx, operationName)
	return result, nil
}

func (s *ChallengeService) runInTx(ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}
