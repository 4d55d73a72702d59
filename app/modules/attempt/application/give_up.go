package attemptservice

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"

	attemptdb "github.com/piclink-games/piclink-backend/app/modules/attempt/infrastructure/repositories"
	challengedb "github.com/piclink-games/piclink-backend/app/modules/challenge/infrastructure/repositories"
	"github.com/piclink-games/piclink-backend/app/shared/attr"
	"github.com/piclink-games/piclink-backend/app/shared/results"
	"github.com/piclink-games/piclink-backend/app/shared/retry"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// GiveUp finalizes the attempt with zero points. Surrendering twice, or
// after a solve, returns the prior terminal state unchanged.
func (s *AttemptService) GiveUp(ctx context.Context, userID sharedtypes.UserID, challengeID sharedtypes.ChallengeID) (GiveUpOperationResult, error) {
	return withTelemetry(s, ctx, "GiveUp", userID, challengeID, func(ctx context.Context) (GiveUpOperationResult, error) {
		challenge, err := s.challenges.GetChallenge(ctx, nil, challengeID)
		if errors.Is(err, challengedb.ErrNotFound) {
			return results.FailureResult[GiveUpResult](ErrChallengeNotFound), nil
		}
		if err != nil {
			return GiveUpOperationResult{}, err
		}

		var out GiveUpResult
		err = retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
			return s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
				res, txErr := s.applyGiveUp(ctx, db, challenge, userID)
				if txErr != nil {
					return txErr
				}
				out = res
				return nil
			})
		})
		if err != nil {
			return GiveUpOperationResult{}, err
		}

		if !out.AlreadyComplete {
			s.logger.InfoContext(ctx, "Challenge surrendered",
				attr.UserID("user_id", userID),
				attr.ChallengeID("challenge_id", challengeID),
			)
		}

		return results.SuccessResult[GiveUpResult, error](out), nil
	})
}

func (s *AttemptService) applyGiveUp(ctx context.Context, db bun.IDB, challenge *challengedb.Challenge, userID sharedtypes.UserID) (GiveUpResult, error) {
	attempt, created, err := s.repo.GetOrCreateAttempt(ctx, db, userID, challenge.ID)
	if err != nil {
		return GiveUpResult{}, err
	}
	if created {
		if err := s.challenges.IncrementPlayersPlayed(ctx, db, challenge.ID); err != nil {
			return GiveUpResult{}, err
		}
	}

	if attempt.GameOver {
		return GiveUpResult{
			GameOver:        true,
			Solved:          attempt.IsSolved,
			AlreadyComplete: true,
			PointsEarned:    attempt.PointsEarned,
		}, nil
	}

	attempt.GameOver = true
	attempt.PointsEarned = 0

	dbStart := time.Now()
	err = s.repo.UpdateAttempt(ctx, db, attempt)
	s.metrics.RecordDBQueryDuration(ctx, time.Since(dbStart))
	if errors.Is(err, attemptdb.ErrAlreadyFinalized) {
		prior, getErr := s.repo.GetAttempt(ctx, db, userID, challenge.ID)
		if getErr != nil {
			return GiveUpResult{}, getErr
		}
		return GiveUpResult{
			GameOver:        true,
			Solved:          prior.IsSolved,
			AlreadyComplete: true,
			PointsEarned:    prior.PointsEarned,
		}, nil
	}
	if err != nil {
		return GiveUpResult{}, err
	}

	return GiveUpResult{GameOver: true}, nil
}
