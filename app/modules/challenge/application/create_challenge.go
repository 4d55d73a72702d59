package challengeservice

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	attemptdomain "github.com/piclink-games/piclink-backend/app/modules/attempt/domain"
	challengedb "github.com/piclink-games/piclink-backend/app/modules/challenge/infrastructure/repositories"
	userdb "github.com/piclink-games/piclink-backend/app/modules/user/infrastructure/repositories"
	"github.com/piclink-games/piclink-backend/app/shared/attr"
	"github.com/piclink-games/piclink-backend/app/shared/results"
	"github.com/piclink-games/piclink-backend/app/shared/retry"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// MaxImages caps the linked image set per challenge.
const MaxImages = 3

// CreateChallenge stores a new challenge and pays the creator the flat
// creation bonus in the same transaction.
func (s *ChallengeService) CreateChallenge(ctx context.Context, creatorID sharedtypes.UserID, images []challengedb.ChallengeImage, answer string) (CreateChallengeOperationResult, error) {
	return serviceWrapper(s, ctx, "CreateChallenge", "", func(ctx context.Context) (CreateChallengeOperationResult, error) {
		if validationErr := validateCreation(images, answer); validationErr != nil {
			return results.FailureResult[CreateChallengeResult](validationErr), nil
		}

		challenge := &challengedb.Challenge{
			ID:            sharedtypes.ChallengeID(uuid.NewString()),
			CreatorID:     creatorID,
			Images:        images,
			Answer:        answer,
			BaseMaxScore:  attemptdomain.BaseScore,
			HintDeduction: attemptdomain.HintPenalty(len(images)),
		}

		err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
			return s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
				if txErr := s.repo.CreateChallenge(ctx, db, challenge); txErr != nil {
					return txErr
				}
				return s.creditCreator(ctx, db, creatorID)
			})
		})
		if err != nil {
			return CreateChallengeOperationResult{}, err
		}

		s.logger.InfoContext(ctx, "Challenge created",
			attr.ChallengeID("challenge_id", challenge.ID),
			attr.UserID("creator_id", creatorID),
			attr.Int("image_count", len(images)),
		)

		// The bonus is durable; derived views follow best-effort.
		s.coordinator.OnPointsAwarded(ctx, creatorID, attemptdomain.CreationBonusPoints)

		return results.SuccessResult[CreateChallengeResult, error](CreateChallengeResult{
			Challenge:   challenge,
			BonusPoints: attemptdomain.CreationBonusPoints,
			BonusExp:    attemptdomain.CreationBonusExp,
		}), nil
	})
}

func validateCreation(images []challengedb.ChallengeImage, answer string) error {
	if len(images) == 0 {
		return ErrNoImages
	}
	if len(images) > MaxImages {
		return ErrTooManyImages
	}
	if strings.TrimSpace(answer) == "" {
		return ErrEmptyAnswer
	}
	return nil
}

func (s *ChallengeService) creditCreator(ctx context.Context, db bun.IDB, creatorID sharedtypes.UserID) error {
	err := s.credits.CreditPoints(ctx, db, creatorID, attemptdomain.CreationBonusPoints, attemptdomain.CreationBonusExp, 0)
	if !errors.Is(err, userdb.ErrNotFound) {
		return err
	}
	if err := s.credits.EnsureUser(ctx, db, &userdb.User{ID: creatorID}); err != nil {
		return err
	}
	return s.credits.CreditPoints(ctx, db, creatorID, attemptdomain.CreationBonusPoints, attemptdomain.CreationBonusExp, 0)
}
