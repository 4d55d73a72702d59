package attemptservice

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"

	attemptdb "github.com/piclink-games/piclink-backend/app/modules/attempt/infrastructure/repositories"
	attemptdomain "github.com/piclink-games/piclink-backend/app/modules/attempt/domain"
	challengedb "github.com/piclink-games/piclink-backend/app/modules/challenge/infrastructure/repositories"
	"github.com/piclink-games/piclink-backend/app/shared/attr"
	"github.com/piclink-games/piclink-backend/app/shared/results"
	"github.com/piclink-games/piclink-backend/app/shared/retry"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// SubmitGuess records a guess against the challenge, scores it, and on a
// solve persists the reward and propagates it to the derived views. A
// terminal attempt is returned as-is; it is never re-scored.
func (s *AttemptService) SubmitGuess(ctx context.Context, userID sharedtypes.UserID, challengeID sharedtypes.ChallengeID, guess string) (GuessOperationResult, error) {
	return withTelemetry(s, ctx, "SubmitGuess", userID, challengeID, func(ctx context.Context) (GuessOperationResult, error) {
		challenge, err := s.challenges.GetChallenge(ctx, nil, challengeID)
		if errors.Is(err, challengedb.ErrNotFound) {
			return results.FailureResult[GuessResult](ErrChallengeNotFound), nil
		}
		if err != nil {
			return GuessOperationResult{}, err
		}

		var out GuessResult
		err = retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
			return s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
				res, txErr := s.applyGuess(ctx, db, challenge, userID, guess)
				if txErr != nil {
					return txErr
				}
				out = res
				return nil
			})
		})
		if err != nil {
			return GuessOperationResult{}, err
		}

		if out.AlreadyComplete {
			return results.SuccessResult[GuessResult, error](out), nil
		}

		s.metrics.RecordGuessOutcome(ctx, out.Correct)

		// Propagation is best-effort and isolated: the reward is already
		// durable, so a cache or ranking hiccup never fails the guess.
		if out.Solved {
			s.coordinator.OnPointsAwarded(ctx, userID, out.PointsEarned)
		}

		return results.SuccessResult[GuessResult, error](out), nil
	})
}

// applyGuess runs the state transition against the store. Transient errors
// bubble up for the retry wrapper; logical outcomes return in GuessResult.
func (s *AttemptService) applyGuess(ctx context.Context, db bun.IDB, challenge *challengedb.Challenge, userID sharedtypes.UserID, guess string) (GuessResult, error) {
	attempt, created, err := s.repo.GetOrCreateAttempt(ctx, db, userID, challenge.ID)
	if err != nil {
		return GuessResult{}, err
	}
	if created {
		if err := s.challenges.IncrementPlayersPlayed(ctx, db, challenge.ID); err != nil {
			return GuessResult{}, err
		}
	}

	if attempt.GameOver {
		return priorGuessResult(attempt), nil
	}

	attempt.AttemptsMade++
	correct := attemptdomain.NormalizeAnswer(guess) == attemptdomain.NormalizeAnswer(challenge.Answer)

	if correct {
		points, scoreErr := attemptdomain.PotentialScore(attempt.AttemptsMade, len(attempt.HintsUsed), len(challenge.Images))
		if scoreErr != nil {
			return GuessResult{}, retry.Permanent(scoreErr)
		}
		attempt.IsSolved = true
		attempt.GameOver = true
		attempt.PointsEarned = points
	} else if attempt.AttemptsMade >= attemptdomain.MaxAttempts {
		attempt.GameOver = true
	}

	dbStart := time.Now()
	err = s.repo.UpdateAttempt(ctx, db, attempt)
	s.metrics.RecordDBQueryDuration(ctx, time.Since(dbStart))
	if errors.Is(err, attemptdb.ErrAlreadyFinalized) {
		// Lost a race against a concurrent terminal transition; serve the
		// winner's result.
		prior, getErr := s.repo.GetAttempt(ctx, db, userID, challenge.ID)
		if getErr != nil {
			return GuessResult{}, getErr
		}
		return priorGuessResult(prior), nil
	}
	if err != nil {
		return GuessResult{}, err
	}

	if attempt.IsSolved {
		if err := s.challenges.IncrementPlayersCompleted(ctx, db, challenge.ID); err != nil {
			return GuessResult{}, err
		}
		if err := s.creditUser(ctx, db, userID, attempt.PointsEarned, sharedtypes.Exp(attempt.PointsEarned), 1); err != nil {
			return GuessResult{}, err
		}
		s.logger.InfoContext(ctx, "Challenge solved",
			attr.UserID("user_id", userID),
			attr.ChallengeID("challenge_id", challenge.ID),
			attr.Int("attempts_made", attempt.AttemptsMade),
			attr.Points("points_earned", attempt.PointsEarned),
		)
	}

	return GuessResult{
		UserID:       userID,
		ChallengeID:  challenge.ID,
		Correct:      correct,
		Solved:       attempt.IsSolved,
		GameOver:     attempt.GameOver,
		AttemptsMade: attempt.AttemptsMade,
		AttemptsLeft: attemptdomain.MaxAttempts - attempt.AttemptsMade,
		PointsEarned: attempt.PointsEarned,
	}, nil
}

func priorGuessResult(attempt *attemptdb.Attempt) GuessResult {
	return GuessResult{
		UserID:          attempt.UserID,
		ChallengeID:     attempt.ChallengeID,
		Solved:          attempt.IsSolved,
		GameOver:        true,
		AlreadyComplete: true,
		AttemptsMade:    attempt.AttemptsMade,
		AttemptsLeft:    0,
		PointsEarned:    attempt.PointsEarned,
	}
}
