package engagementhandlers

import (
	"context"

	engagementservice "github.com/piclink-games/piclink-backend/app/modules/engagement/application"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// FakeEngagementService is a programmable stub for the reward guard.
type FakeEngagementService struct {
	TrackCommentFunc func(ctx context.Context, challengeID sharedtypes.ChallengeID, commentID sharedtypes.CommentID, commenterID, creatorID sharedtypes.UserID) (engagementservice.CommentRewardOperationResult, error)
}

func (f *FakeEngagementService) TrackComment(ctx context.Context, challengeID sharedtypes.ChallengeID, commentID sharedtypes.CommentID, commenterID, creatorID sharedtypes.UserID) (engagementservice.CommentRewardOperationResult, error) {
	if f.TrackCommentFunc != nil {
		return f.TrackCommentFunc(ctx, challengeID, commentID, commenterID, creatorID)
	}
	return engagementservice.CommentRewardOperationResult{}, nil
}

var _ engagementservice.Service = (*FakeEngagementService)(nil)
