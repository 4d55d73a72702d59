package engagementdb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// CommentReward is the audit row proving a creator bonus was granted for a
// comment. The unique comment id is what makes the grant at-most-once: the
// row is written once and never mutated or deleted.
type CommentReward struct {
	bun.BaseModel `bun:"table:comment_rewards,alias:cr"`

	CommentID   sharedtypes.CommentID   `bun:"comment_id,pk"`
	ChallengeID sharedtypes.ChallengeID `bun:"challenge_id,notnull"`
	CommenterID sharedtypes.UserID      `bun:"commenter_id,notnull"`
	CreatorID   sharedtypes.UserID      `bun:"creator_id,notnull"`
	Points      sharedtypes.Points      `bun:"points,notnull"`
	Exp         sharedtypes.Exp         `bun:"exp,notnull"`
	CreatedAt   time.Time               `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}
