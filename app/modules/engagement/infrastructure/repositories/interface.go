package engagementdb

import (
	"context"

	"github.com/uptrace/bun"

	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// Repository is the persistence boundary for comment rewards. A nil bun.IDB
// means the repository's own connection; callers pass a transaction when
// they need the operation inside one.
type Repository interface {
	// InsertRewardIfAbsent writes the reward row unless one already exists
	// for the comment id. The insert is atomic: under concurrent calls with
	// the same comment id exactly one returns inserted=true.
	InsertRewardIfAbsent(ctx context.Context, db bun.IDB, reward *CommentReward) (inserted bool, err error)
	GetReward(ctx context.Context, db bun.IDB, commentID sharedtypes.CommentID) (*CommentReward, error)
}
