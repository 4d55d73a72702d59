package challengedb

import (
	"context"

	"github.com/uptrace/bun"

	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// Repository is the persistence boundary for challenges. A nil bun.IDB means
// the repository's own connection; callers pass a transaction when they need
// the operation inside one.
type Repository interface {
	CreateChallenge(ctx context.Context, db bun.IDB, challenge *Challenge) error
	GetChallenge(ctx context.Context, db bun.IDB, id sharedtypes.ChallengeID) (*Challenge, error)
	IncrementPlayersPlayed(ctx context.Context, db bun.IDB, id sharedtypes.ChallengeID) error
	IncrementPlayersCompleted(ctx context.Context, db bun.IDB, id sharedtypes.ChallengeID) error
}
