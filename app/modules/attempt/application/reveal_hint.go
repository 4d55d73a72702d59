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

// RevealHint records a hint reveal for the attempt and returns the hint text
// together with the potential score of the next guess. Revealing the same
// image twice is rejected, and a positive hintCost debits the player's
// standing points immediately.
func (s *AttemptService) RevealHint(ctx context.Context, userID sharedtypes.UserID, challengeID sharedtypes.ChallengeID, imageIndex int, hintCost sharedtypes.Points) (HintOperationResult, error) {
	return withTelemetry(s, ctx, "RevealHint", userID, challengeID, func(ctx context.Context) (HintOperationResult, error) {
		challenge, err := s.challenges.GetChallenge(ctx, nil, challengeID)
		if errors.Is(err, challengedb.ErrNotFound) {
			return results.FailureResult[HintResult](ErrChallengeNotFound), nil
		}
		if err != nil {
			return HintOperationResult{}, err
		}

		if imageIndex < 0 || imageIndex >= len(challenge.Images) {
			return results.FailureResult[HintResult](ErrInvalidHintIndex), nil
		}

		var out HintResult
		var rejection error
		err = retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
			return s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
				res, rej, txErr := s.applyHint(ctx, db, challenge, userID, imageIndex, hintCost)
				if txErr != nil {
					return txErr
				}
				out, rejection = res, rej
				return nil
			})
		})
		if err != nil {
			return HintOperationResult{}, err
		}
		if rejection != nil {
			return results.FailureResult[HintResult](rejection), nil
		}

		if hintCost > 0 {
			// The debit is already durable; derived views follow best-effort.
			s.coordinator.OnPointsAwarded(ctx, userID, -hintCost)
		}

		s.logger.InfoContext(ctx, "Hint revealed",
			attr.UserID("user_id", userID),
			attr.ChallengeID("challenge_id", challengeID),
			attr.Int("image_index", imageIndex),
			attr.Int("hints_used", len(out.HintsUsed)),
		)

		return results.SuccessResult[HintResult, error](out), nil
	})
}

// applyHint runs the reveal transition. Business rejections come back as the
// middle return so the retry wrapper never replays them.
func (s *AttemptService) applyHint(ctx context.Context, db bun.IDB, challenge *challengedb.Challenge, userID sharedtypes.UserID, imageIndex int, hintCost sharedtypes.Points) (HintResult, error, error) {
	attempt, created, err := s.repo.GetOrCreateAttempt(ctx, db, userID, challenge.ID)
	if err != nil {
		return HintResult{}, nil, err
	}
	if created {
		if err := s.challenges.IncrementPlayersPlayed(ctx, db, challenge.ID); err != nil {
			return HintResult{}, nil, err
		}
	}

	if attempt.GameOver {
		return HintResult{}, ErrAlreadyComplete, nil
	}
	if attempt.HintRevealed(imageIndex) {
		return HintResult{}, ErrHintAlreadyRevealed, nil
	}

	attempt.HintsUsed = append(attempt.HintsUsed, imageIndex)

	dbStart := time.Now()
	err = s.repo.UpdateAttempt(ctx, db, attempt)
	s.metrics.RecordDBQueryDuration(ctx, time.Since(dbStart))
	if errors.Is(err, attemptdb.ErrAlreadyFinalized) {
		return HintResult{}, ErrAlreadyComplete, nil
	}
	if err != nil {
		return HintResult{}, nil, err
	}

	if hintCost > 0 {
		if err := s.creditUser(ctx, db, userID, -hintCost, 0, 0); err != nil {
			return HintResult{}, nil, err
		}
	}

	// The next guess will be attempt AttemptsMade+1 with the new hint count.
	potential, scoreErr := attemptdomain.PotentialScore(attempt.AttemptsMade+1, len(attempt.HintsUsed), len(challenge.Images))
	if scoreErr != nil {
		return HintResult{}, ErrAlreadyComplete, nil
	}

	return HintResult{
		ImageIndex:     imageIndex,
		HintText:       challenge.Images[imageIndex].Description,
		HintsUsed:      attempt.HintsUsed,
		PotentialScore: potential,
	}, nil, nil
}
