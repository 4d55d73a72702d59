package events

import sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"

// EngagementStream is the JetStream stream backing the engagement topics.
const (
	EngagementStream        = "engagement"
	EngagementStreamSubject = "engagement.>"
)

// Topic constants are versioned so payload changes can roll out side by side.
const (
	CommentCreatedV1       = "engagement.comment.created.v1"
	CommentRewardGrantedV1 = "engagement.comment.reward.granted.v1"
	ChallengeCreatedV1     = "challenge.created.v1"
)

// CommentCreatedPayload announces a qualifying comment on a challenge.
type CommentCreatedPayload struct {
	ChallengeID sharedtypes.ChallengeID `json:"challenge_id"`
	CommentID   sharedtypes.CommentID   `json:"comment_id"`
	CommenterID sharedtypes.UserID      `json:"commenter_id"`
	CreatorID   sharedtypes.UserID      `json:"creator_id"`
}

// CommentRewardGrantedPayload reports a first-time creator bonus.
type CommentRewardGrantedPayload struct {
	ChallengeID sharedtypes.ChallengeID `json:"challenge_id"`
	CommentID   sharedtypes.CommentID   `json:"comment_id"`
	CreatorID   sharedtypes.UserID      `json:"creator_id"`
	Points      sharedtypes.Points      `json:"points"`
	Exp         sharedtypes.Exp         `json:"exp"`
}

// ChallengeCreatedPayload announces a freshly published challenge.
type ChallengeCreatedPayload struct {
	ChallengeID sharedtypes.ChallengeID `json:"challenge_id"`
	CreatorID   sharedtypes.UserID      `json:"creator_id"`
}
