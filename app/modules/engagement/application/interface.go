package engagementservice

import (
	"context"

	"github.com/piclink-games/piclink-backend/app/shared/results"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// CommentRewardResult reports whether the creator bonus was granted for the
// comment. Granted is false for self-comments and for comments already
// rewarded; neither is an error.
type CommentRewardResult struct {
	ChallengeID sharedtypes.ChallengeID `json:"challenge_id"`
	CommentID   sharedtypes.CommentID   `json:"comment_id"`
	CreatorID   sharedtypes.UserID      `json:"creator_id"`
	Granted     bool                    `json:"granted"`
	Points      sharedtypes.Points      `json:"points"`
	Exp         sharedtypes.Exp         `json:"exp"`
}

type CommentRewardOperationResult = results.OperationResult[CommentRewardResult, error]

// Service is the comment reward guard exposed to the event handlers.
type Service interface {
	TrackComment(ctx context.Context, challengeID sharedtypes.ChallengeID, commentID sharedtypes.CommentID, commenterID, creatorID sharedtypes.UserID) (CommentRewardOperationResult, error)
}

var _ Service = (*EngagementService)(nil)
