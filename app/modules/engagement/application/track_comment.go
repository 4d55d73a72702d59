package engagementservice

import (
	"context"
	"errors"

	"github.com/uptrace/bun"

	attemptdomain "github.com/piclink-games/piclink-backend/app/modules/attempt/domain"
	engagementdb "github.com/piclink-games/piclink-backend/app/modules/engagement/infrastructure/repositories"
	userdb "github.com/piclink-games/piclink-backend/app/modules/user/infrastructure/repositories"
	"github.com/piclink-games/piclink-backend/app/shared/attr"
	"github.com/piclink-games/piclink-backend/app/shared/results"
	"github.com/piclink-games/piclink-backend/app/shared/retry"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// TrackComment grants the creator a one-time flat bonus for a comment on
// their challenge. The reward row's unique comment id is the at-most-once
// guarantee; losing the insert race reports Granted=false, same as seeing
// the comment again. Self-comments never grant.
func (s *EngagementService) TrackComment(ctx context.Context, challengeID sharedtypes.ChallengeID, commentID sharedtypes.CommentID, commenterID, creatorID sharedtypes.UserID) (CommentRewardOperationResult, error) {
	return s.serviceWrapper(ctx, "TrackComment", commentID, func(ctx context.Context) (CommentRewardOperationResult, error) {
		out := CommentRewardResult{
			ChallengeID: challengeID,
			CommentID:   commentID,
			CreatorID:   creatorID,
		}

		if commenterID == creatorID {
			return results.SuccessResult[CommentRewardResult, error](out), nil
		}

		reward := &engagementdb.CommentReward{
			CommentID:   commentID,
			ChallengeID: challengeID,
			CommenterID: commenterID,
			CreatorID:   creatorID,
			Points:      attemptdomain.CommentBonusPoints,
			Exp:         attemptdomain.CommentBonusExp,
		}

		var granted bool
		err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
			return s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
				inserted, txErr := s.rewards.InsertRewardIfAbsent(ctx, db, reward)
				if txErr != nil {
					return txErr
				}
				granted = inserted
				if !inserted {
					return nil
				}
				return s.creditCreator(ctx, db, creatorID)
			})
		})
		if err != nil {
			return CommentRewardOperationResult{}, err
		}

		if !granted {
			s.metrics.RecordRewardDuplicate(ctx)
			return results.SuccessResult[CommentRewardResult, error](out), nil
		}

		out.Granted = true
		out.Points = reward.Points
		out.Exp = reward.Exp

		s.logger.InfoContext(ctx, "Comment reward granted",
			attr.CommentID("comment_id", commentID),
			attr.UserID("creator_id", creatorID),
			attr.Points("points", reward.Points),
		)
		s.metrics.RecordRewardGranted(ctx)

		// The bonus is durable; derived views follow best-effort.
		s.coordinator.OnPointsAwarded(ctx, creatorID, reward.Points)

		return results.SuccessResult[CommentRewardResult, error](out), nil
	})
}

func (s *EngagementService) creditCreator(ctx context.Context, db bun.IDB, creatorID sharedtypes.UserID) error {
	err := s.credits.CreditPoints(ctx, db, creatorID, attemptdomain.CommentBonusPoints, attemptdomain.CommentBonusExp, 0)
	if !errors.Is(err, userdb.ErrNotFound) {
		return err
	}
	if err := s.credits.EnsureUser(ctx, db, &userdb.User{ID: creatorID}); err != nil {
		return err
	}
	return s.credits.CreditPoints(ctx, db, creatorID, attemptdomain.CommentBonusPoints, attemptdomain.CommentBonusExp, 0)
}
