package attemptdb

import (
	"context"

	"github.com/uptrace/bun"

	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// Repository is the persistence boundary for attempts.
type Repository interface {
	// GetAttempt returns the attempt row or ErrNotFound.
	GetAttempt(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, challengeID sharedtypes.ChallengeID) (*Attempt, error)

	// GetOrCreateAttempt returns the existing row or inserts a fresh one.
	// The returned flag is true only for the caller whose insert won; under
	// concurrent first requests exactly one caller sees true.
	GetOrCreateAttempt(ctx context.Context, db bun.IDB, userID sharedtypes.UserID, challengeID sharedtypes.ChallengeID) (*Attempt, bool, error)

	// UpdateAttempt persists the mutable fields. The update is guarded on
	// game_over = false so a terminal row can never be mutated again;
	// a guarded miss returns ErrAlreadyFinalized.
	UpdateAttempt(ctx context.Context, db bun.IDB, attempt *Attempt) error
}
